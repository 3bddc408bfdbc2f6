package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/magnetsetup/internal/model"
	"github.com/vk/magnetsetup/internal/policy"
	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/units"
)

func chars() model.Characteristics {
	return model.Characteristics{
		NHelices:  2,
		NRings:    1,
		NChannels: 3,
		Nsections: []int{2, 3},
		Zmin:      []float64{-200, -210, -220},
		Zmax:      []float64{200, 210, 220},
		Dh:        []float64{2, 2.5, 3},
		Sh:        []float64{100, 120, 140},
	}
}

func resolve(t *testing.T, sel selector.Selector) policy.Policy {
	t.Helper()
	pol, err := policy.For(sel)
	require.NoError(t, err)
	return pol
}

func names(ps []Parameter) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestBuild_AxiThermoElectric(t *testing.T) {
	// --- Arrange ---
	sel := selector.Selector{Method: selector.CFPDES, Time: selector.Static, Geometry: selector.Axi, Model: selector.ThermoElectric, Cooling: selector.Mean}

	// --- Act ---
	ps, err := Build(resolve(t, sel), chars(), DefaultConstants())

	// --- Assert ---
	require.NoError(t, err)
	got := names(ps)
	assert.Equal(t, []string{"Tinit", "mu0", "h", "Tw", "dTw"}, got[:5])
	assert.Equal(t, []string{"h0", "Tw0", "dTw0", "Zmin0", "Zmax0", "Sh0", "Dh0"}, got[5:12])
	// 5 constants, 3 channels x 7, 5 U and 5 N
	assert.Len(t, ps, 5+21+10)
	assert.Equal(t, "U_H1_Cu1", got[26])
	assert.Equal(t, "U_H2_Cu3", got[30])
	assert.Equal(t, "N_H1_Cu1", got[31])

	last := ps[len(ps)-1]
	assert.Equal(t, Parameter{Name: "N_H2_Cu3", Value: 3}, last)
	assert.Equal(t, Parameter{Name: "U_H1_Cu1", Value: "1"}, ps[26])
	assert.Equal(t, Parameter{Name: "Sh2", Value: 140.0}, ps[5+14+5])
}

func TestBuild_ElasticityFlags(t *testing.T) {
	sel := selector.Selector{Method: selector.CFPDES, Time: selector.Static, Geometry: selector.ThreeD, Model: selector.ThermoMagnetoElastic, Cooling: selector.Mean}

	ps, err := Build(resolve(t, sel), chars(), DefaultConstants())

	require.NoError(t, err)
	assert.Equal(t, Parameter{Name: "bool_laplace", Value: "1"}, ps[0])
	assert.Equal(t, Parameter{Name: "bool_dilatation", Value: "1"}, ps[1])
	assert.NotContains(t, names(ps), "U_H1_Cu1")

	sel.Method = selector.CG
	ps, err = Build(resolve(t, sel), chars(), DefaultConstants())
	require.NoError(t, err)
	assert.Equal(t, "Tinit", ps[0].Name)
}

func TestBuild_ElasticityFlagsFollowPolicy(t *testing.T) {
	// --- Arrange ---
	// The flags come from the resolved policy alone, not from the selector axes.
	sel := selector.Selector{Method: selector.CG, Time: selector.Static, Geometry: selector.Axi, Model: selector.ThermoElectric, Cooling: selector.Mean}
	on := resolve(t, sel)
	require.False(t, on.ElasticityFlags)
	on.ElasticityFlags = true

	off := resolve(t, selector.Selector{Method: selector.CFPDES, Time: selector.Static, Geometry: selector.ThreeD, Model: selector.ThermoMagnetoElastic, Cooling: selector.Mean})
	require.True(t, off.ElasticityFlags)
	off.ElasticityFlags = false

	// --- Act ---
	withFlags, err := Build(on, chars(), DefaultConstants())
	require.NoError(t, err)
	withoutFlags, err := Build(off, chars(), DefaultConstants())
	require.NoError(t, err)

	// --- Assert ---
	assert.Equal(t, []string{"bool_laplace", "bool_dilatation", "Tinit"}, names(withFlags)[:3])
	assert.Contains(t, names(withFlags), "U_H1_Cu1")
	assert.NotContains(t, names(withoutFlags), "bool_laplace")
	assert.Equal(t, "Tinit", withoutFlags[0].Name)
}

func TestConstants_Convert(t *testing.T) {
	c := DefaultConstants()

	mm, err := c.Convert(units.NewSystem(units.Millimeter))
	require.NoError(t, err)

	assert.InDelta(t, c.Mu0*1e-3, mm.Mu0, 1e-15)
	assert.InDelta(t, c.H*1e-6, mm.H, 1e-9)
	assert.Equal(t, c.Tw, mm.Tw)

	si, err := c.Convert(units.NewSystem(units.Meter))
	require.NoError(t, err)
	assert.InDelta(t, c.H, si.H, 1e-9)
}

func TestBindings(t *testing.T) {
	got := Bindings([]Parameter{{Name: "Tinit", Value: 293.0}})
	assert.Equal(t, []any{map[string]any{"name": "Tinit", "value": 293.0}}, got)
}
