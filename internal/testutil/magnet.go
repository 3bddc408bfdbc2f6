package testutil

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vk/magnetsetup/internal/model"
)

// InsertOptions describes a fixture Insert geometry.
type InsertOptions struct {
	Name     string
	Sections []int
	Rings    int
	Leads    bool
	// Insulation is keyed by 0-based helix index.
	Insulation map[int]model.Insulation
}

// InsertYAML renders an Insert geometry record. Channels are NHelices+1.
func InsertYAML(o InsertOptions) string {
	name := o.Name
	if name == "" {
		name = "HL-test"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "!<Insert>\nname: %s\nhelices:\n", name)
	for i, n := range o.Sections {
		r1 := 19.3 + 6*float64(i)
		fmt.Fprintf(&b, "  - name: H%d\n    r: [%g, %g]\n    z: [-226, 108]\n    sections: %d\n", i+1, r1, r1+4.9, n)
		if ins, ok := o.Insulation[i]; ok {
			fmt.Fprintf(&b, "    insulation: {kind: %s, count: %d}\n", ins.Kind, ins.Count)
		}
	}
	b.WriteString("rings:")
	if o.Rings == 0 {
		b.WriteString(" []")
	}
	b.WriteString("\n")
	for i := range o.Rings {
		fmt.Fprintf(&b, "  - name: R%d\n", i+1)
	}
	if o.Leads {
		b.WriteString("currentleads:\n  - name: inner\n  - name: outer\n")
	} else {
		b.WriteString("currentleads: []\n")
	}
	b.WriteString("channels:\n")
	for i := range len(o.Sections) + 1 {
		fmt.Fprintf(&b, "  - {zmin: %d, zmax: %d, dh: %g, sh: %g}\n", -200-10*i, 200+10*i, 2+0.5*float64(i), 100+20*float64(i))
	}
	return b.String()
}

// Copper returns a conductor material record in SI units.
func Copper() map[string]any {
	return map[string]any{
		"name":                   "CuCrZr",
		"ThermalConductivity":    380.0,
		"Young":                  117e9,
		"VolumicMass":            8900.0,
		"ElectricalConductivity": 5.8e7,
		"Rpe":                    481e6,
		"Poisson":                0.33,
	}
}

// Glue returns an insulator record. Insulator records are not converted.
func Glue() map[string]any {
	return map[string]any{
		"name":                "Glue",
		"ThermalConductivity": 1.2,
	}
}

// MagnetData returns a magnet record matching the given part counts.
func MagnetData(geom string, helices, rings, leads int) map[string]any {
	part := func(withInsulator bool) map[string]any {
		p := map[string]any{"material": Copper()}
		if withInsulator {
			p["insulator"] = Glue()
		}
		return p
	}
	rec := map[string]any{"geom": geom}
	var hs, rs, ls []any
	for range helices {
		hs = append(hs, part(true))
	}
	for range rings {
		rs = append(rs, part(false))
	}
	for range leads {
		ls = append(ls, part(false))
	}
	rec["Helix"] = hs
	rec["Ring"] = rs
	rec["Lead"] = ls
	return rec
}

// MagnetDataJSON returns MagnetData encoded as a data file.
func MagnetDataJSON(geom string, helices, rings, leads int) string {
	raw, err := json.MarshalIndent(MagnetData(geom, helices, rings, leads), "", "  ")
	if err != nil {
		panic(err)
	}
	return string(raw)
}
