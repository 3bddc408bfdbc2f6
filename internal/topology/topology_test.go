package topology

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/magnetsetup/internal/model"
	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/testutil"
)

func decode(t *testing.T, o testutil.InsertOptions) *model.Insert {
	t.Helper()
	in, err := model.DecodeInsert([]byte(testutil.InsertYAML(o)))
	require.NoError(t, err)
	return in
}

func sel(geom selector.Geometry) selector.Selector {
	return selector.Selector{
		Method:   selector.CFPDES,
		Time:     selector.Static,
		Geometry: geom,
		Model:    selector.ThermoElectric,
		Cooling:  selector.Mean,
	}
}

func TestEnumerate_Axi(t *testing.T) {
	// --- Arrange ---
	in := decode(t, testutil.InsertOptions{Sections: []int{2, 3}, Rings: 1})

	// --- Act ---
	topo, err := Enumerate(sel(selector.Axi), in)

	// --- Assert ---
	require.NoError(t, err)
	wantThermal := []string{
		"H1_Cu0", "H1_Cu1", "H1_Cu2", "H1_Cu3",
		"H2_Cu0", "H2_Cu1", "H2_Cu2", "H2_Cu3", "H2_Cu4",
		"R1",
	}
	if diff := cmp.Diff(wantThermal, topo.Registry.Thermal()); diff != "" {
		t.Errorf("thermal parts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"H1_Cu", "H2_Cu", "R1"}, topo.Registry.Electric())

	wantSections := []model.SectionIndex{
		{Helix: 1, Section: 1}, {Helix: 1, Section: 2},
		{Helix: 2, Section: 1}, {Helix: 2, Section: 2}, {Helix: 2, Section: 3},
	}
	assert.Equal(t, wantSections, topo.Sections)
	assert.Equal(t, []string{"0:4", "0:5"}, topo.HelixRanges)
	assert.Empty(t, topo.Insulators)
	assert.False(t, topo.HasLeads)
	assert.Equal(t, 3, topo.NChannels)

	b := topo.Boundaries
	assert.Equal(t, []string{"H1_Interface0", "H1_Interface1", "H2_Interface0", "H2_Interface1", "R1_BP"}, b.ThermalNeumann)
	assert.Equal(t, []string{
		"H1_Interface0", "H1_Interface1", "H2_Interface0", "H2_Interface1", "R1_BP",
		"Channel0", "Channel1", "Channel2",
	}, b.ElectricNeumann)
	assert.Equal(t, []model.Potential{
		{Name: "H1_V0", Marker: "H1", Value: "0"},
		{Name: "H2_V0", Marker: "H2", Value: "V0:V0"},
	}, b.ElectricDirichlet)
	assert.Equal(t, []string{"R1_BP", "H1_HP", "H_HP"}, b.MechanicalDirichlet)
	assert.Equal(t, []string{"InfV1", "InfR1"}, b.MagneticDirichlet)
}

func TestEnumerate_RingAlternation(t *testing.T) {
	in := decode(t, testutil.InsertOptions{Sections: []int{1, 1, 1, 1}, Rings: 3})

	topo, err := Enumerate(sel(selector.Axi), in)

	require.NoError(t, err)
	assert.Equal(t, []string{"R1_BP", "R2_HP", "R3_BP", "H1_HP", "H_HP"}, topo.Boundaries.MechanicalDirichlet)
}

func TestEnumerate_3DWithLeads(t *testing.T) {
	// --- Arrange ---
	in := decode(t, testutil.InsertOptions{
		Sections: []int{2, 2, 2},
		Rings:    2,
		Leads:    true,
		Insulation: map[int]model.Insulation{
			0: {Kind: model.InsulationGlue},
			2: {Kind: model.InsulationKapton, Count: 6},
		},
	})

	// --- Act ---
	topo, err := Enumerate(sel(selector.ThreeD), in)

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, topo.HasLeads)
	assert.Empty(t, topo.Sections)
	assert.Empty(t, topo.HelixRanges)
	assert.Equal(t, []string{"H1_Cu", "Isolant1", "H2_Cu", "H3_Cu", "Kaptons3", "R1", "R2", "iL1", "oL2"}, topo.Registry.Thermal())
	assert.Equal(t, []string{"H1_Cu", "H2_Cu", "H3_Cu", "R1", "R2", "iL1", "oL2"}, topo.Registry.Electric())

	wantIns := []model.InsulatorPart{
		{Helix: 1, Name: "Isolant1", Marker: model.Marker{Name: "H1_Isolant"}},
		{Helix: 3, Name: "Kaptons3", Marker: model.Marker{Name: "Kapton%1%", Index: "0:6"}},
	}
	if diff := cmp.Diff(wantIns, topo.Insulators); diff != "" {
		t.Errorf("insulators mismatch (-want +got):\n%s", diff)
	}

	b := topo.Boundaries
	assert.Equal(t, []model.Potential{
		{Name: "Inner1_LV0", Marker: "iL1", Value: "0"},
		{Name: "OuterL2_LV0", Marker: "oL2", Value: "V0:V0"},
	}, b.ElectricDirichlet)
	assert.Equal(t, []string{"R1_BP", "R2_HP", "Inner1_LV0", "OuterL2_LV0"}, b.MechanicalDirichlet)
	assert.Equal(t, []string{"InfV00", "InfV01", "InfV1", "InfR1"}, b.MagneticDirichlet)
	assert.Contains(t, b.ThermalNeumann, "Inner1_LV0")
	assert.NotContains(t, b.ElectricNeumann, "Inner1_LV0")
	assert.NotContains(t, b.ElectricNeumann, "OuterL2_LV0")
	assert.Contains(t, b.ElectricNeumann, "OuterL2_Others")
}

func TestEnumerate_AxiIgnoresLeads(t *testing.T) {
	in := decode(t, testutil.InsertOptions{Sections: []int{1, 1}, Rings: 1, Leads: true})

	topo, err := Enumerate(sel(selector.Axi), in)

	require.NoError(t, err)
	assert.False(t, topo.HasLeads)
	assert.False(t, topo.Registry.Has(InnerLead))
	assert.Equal(t, "H1_V0", topo.Boundaries.ElectricDirichlet[0].Name)
}

func TestEnumerate_UnsupportedGeometry(t *testing.T) {
	in := decode(t, testutil.InsertOptions{Sections: []int{1}})
	s := sel("2D")

	_, err := Enumerate(s, in)

	require.Error(t, err)
	assert.True(t, errors.Is(err, selector.ErrUnsupportedGeometryClass))
}
