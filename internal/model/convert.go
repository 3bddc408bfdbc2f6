// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"fmt"

	"github.com/vk/magnetsetup/internal/units"
)

// Convert returns a copy of the characteristics with every length and area
// expressed in the system's base length. The receiver is not modified.
func (c Characteristics) Convert(sys units.System) (Characteristics, error) {
	out := Characteristics{
		NHelices:  c.NHelices,
		NRings:    c.NRings,
		NChannels: c.NChannels,
		Nsections: append([]int(nil), c.Nsections...),
	}
	lengths := []struct {
		name string
		src  []float64
		dst  *[]float64
	}{
		{"R1", c.R1, &out.R1},
		{"R2", c.R2, &out.R2},
		{"Z1", c.Z1, &out.Z1},
		{"Z2", c.Z2, &out.Z2},
		{"Zmin", c.Zmin, &out.Zmin},
		{"Zmax", c.Zmax, &out.Zmax},
		{"Dh", c.Dh, &out.Dh},
	}
	for _, l := range lengths {
		v, err := sys.Lengths(l.src)
		if err != nil {
			return Characteristics{}, fmt.Errorf("converting %s: %w", l.name, err)
		}
		*l.dst = v
	}
	sh, err := sys.Areas(c.Sh)
	if err != nil {
		return Characteristics{}, fmt.Errorf("converting Sh: %w", err)
	}
	out.Sh = sh
	return out, nil
}
