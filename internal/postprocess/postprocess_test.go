package postprocess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/magnetsetup/internal/model"
	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/testutil"
	"github.com/vk/magnetsetup/internal/topology"
)

func enumerate(t *testing.T, geom selector.Geometry, o testutil.InsertOptions) *topology.Topology {
	t.Helper()
	in, err := model.DecodeInsert([]byte(testutil.InsertYAML(o)))
	require.NoError(t, err)
	sel := selector.Selector{Method: selector.CFPDES, Time: selector.Static, Geometry: geom, Model: selector.ThermoElectric, Cooling: selector.Mean}
	topo, err := topology.Enumerate(sel, in)
	require.NoError(t, err)
	return topo
}

func TestBuild_Axi(t *testing.T) {
	// --- Arrange ---
	topo := enumerate(t, selector.Axi, testutil.InsertOptions{Sections: []int{2, 3}, Rings: 1})

	// --- Act ---
	l := Build(topo)

	// --- Assert ---
	want := []Stat{
		{Header: "Power_H1", Name: "H1_Cu%1%", Index: []string{"0:4"}, Part: "H1_Cu"},
		{Header: "Power_H2", Name: "H2_Cu%1%", Index: []string{"0:5"}, Part: "H2_Cu"},
	}
	if diff := cmp.Diff(want, l.PowerH); diff != "" {
		t.Errorf("Power_H mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "MeanT_H2", l.MeanTH[1].Header)
	assert.Equal(t, "0:3", l.IndexH)
	assert.Equal(t, []string{"H1_Cu", "H2_Cu"}, l.Parts())

	b := l.PowerBindings()["Power_H"].([]any)
	assert.Equal(t, map[string]any{"header": "Power_H1", "name": "H1_Cu%1%", "index": []any{"0:4"}}, b[0])
}

func TestBuild_3DWithLeads(t *testing.T) {
	topo := enumerate(t, selector.ThreeD, testutil.InsertOptions{Sections: []int{1, 1}, Rings: 1, Leads: true})

	l := Build(topo)

	var headers []string
	for _, s := range l.MeanTH {
		headers = append(headers, s.Header)
	}
	assert.Equal(t, []string{"MeanT_H1", "MeanT_H2", "MeanT_R1", "MeanT_iL1", "MeanT_oL2"}, headers)
	assert.Equal(t, map[string]any{"header": "Power_R1", "name": "R1"}, l.PowerH[2].Binding())
	for _, p := range l.Parts() {
		assert.True(t, topo.Registry.Has(p), p)
	}
	assert.Equal(t, map[string]any{"index_h": "0:3"}, l.FluxBindings())
}
