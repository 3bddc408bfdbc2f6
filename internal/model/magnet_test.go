package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/magnetsetup/internal/units"
)

func copper() map[string]any {
	return map[string]any{
		"name":                   "Cu",
		"ThermalConductivity":    380.0,
		"Young":                  117e9,
		"VolumicMass":            8900.0,
		"ElectricalConductivity": 5.8e7,
		"Rpe":                    481e6,
	}
}

func TestDecodeMagnetData(t *testing.T) {
	rec := map[string]any{
		"geom": "HL-test.yaml",
		"Helix": []any{
			map[string]any{"material": copper(), "insulator": map[string]any{"name": "Glue"}},
		},
		"Ring": []any{},
	}

	md, err := DecodeMagnetData(rec)
	require.NoError(t, err)
	assert.Equal(t, "HL-test.yaml", md.Geom)
	require.Len(t, md.Helix, 1)
	assert.Equal(t, "Glue", md.Helix[0].Insulator["name"])
}

func TestMagnetData_Check(t *testing.T) {
	in := &Insert{Helices: make([]Helix, 2), Rings: make([]Ring, 1)}
	md := &MagnetData{
		Helix: []PartData{{Material: copper()}, {Material: copper()}},
		Ring:  []PartData{{Material: copper()}},
	}
	require.NoError(t, md.Check(in))

	in.Leads = make([]Lead, 2)
	require.ErrorIs(t, md.Check(in), ErrInvalidGeometry)

	md.Lead = []PartData{{Material: copper()}, {Material: copper()}}
	require.NoError(t, md.Check(in))

	md.Ring = nil
	require.ErrorIs(t, md.Check(in), ErrInvalidGeometry)
}

func TestMagnetData_Convert(t *testing.T) {
	md := &MagnetData{
		Helix: []PartData{{Material: copper(), Insulator: map[string]any{"ThermalConductivity": 1.2}}},
	}

	got, err := md.Convert(units.NewSystem(units.Millimeter))

	require.NoError(t, err)
	assert.InDelta(t, 0.38, got.Helix[0].Material["ThermalConductivity"], 1e-12)
	assert.Equal(t, 1.2, got.Helix[0].Insulator["ThermalConductivity"])
	assert.Equal(t, 380.0, md.Helix[0].Material["ThermalConductivity"])
}

func TestPartRegistry(t *testing.T) {
	thermal := []string{"H1_Cu", "R1"}
	reg := NewPartRegistry(thermal, []string{"H1_Cu"})
	thermal[0] = "mutated"

	assert.Equal(t, []string{"H1_Cu", "R1"}, reg.Thermal())
	assert.True(t, reg.Has("R1"))
	assert.False(t, reg.Has("iL1"))

	got := reg.Electric()
	got[0] = "mutated"
	assert.Equal(t, []string{"H1_Cu"}, reg.Electric())
}

func TestMarker_Binding(t *testing.T) {
	assert.Equal(t, "H1_Isolant", Marker{Name: "H1_Isolant"}.Binding())
	assert.Equal(t, map[string]any{"name": "Kapton%1%", "index1": "0:4"}, Marker{Name: "Kapton%1%", Index: "0:4"}.Binding())
}
