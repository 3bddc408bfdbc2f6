// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines MagnetData, the material records attached to each part of
// a geometry.
package model

import (
	"encoding/json"
	"fmt"

	"github.com/vk/magnetsetup/internal/units"
)

// PartData carries the records of one structural part.
type PartData struct {
	Material  map[string]any `json:"material"`
	Insulator map[string]any `json:"insulator,omitempty"`
}

// MagnetData is the material description of a magnet.
type MagnetData struct {
	// Geom references the geometry file. A relative path is resolved against
	// the working directory (--wd), not the data file location.
	Geom  string     `json:"geom"`
	Helix []PartData `json:"Helix"`
	Ring  []PartData `json:"Ring"`
	Lead  []PartData `json:"Lead"`
}

// DecodeMagnetData builds MagnetData from a generic record as returned by a
// record provider.
func DecodeMagnetData(rec map[string]any) (*MagnetData, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding magnet record: %w", err)
	}
	var md MagnetData
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, fmt.Errorf("%w: magnet record: %v", ErrInvalidGeometry, err)
	}
	return &md, nil
}

// Check verifies the records match the part counts of the geometry.
func (m *MagnetData) Check(in *Insert) error {
	if len(m.Helix) != len(in.Helices) {
		return fmt.Errorf("%w: %d helix records for %d helices", ErrInvalidGeometry, len(m.Helix), len(in.Helices))
	}
	if len(m.Ring) != len(in.Rings) {
		return fmt.Errorf("%w: %d ring records for %d rings", ErrInvalidGeometry, len(m.Ring), len(in.Rings))
	}
	if in.HasLeads() && len(m.Lead) != len(in.Leads) {
		return fmt.Errorf("%w: %d lead records for %d leads", ErrInvalidGeometry, len(m.Lead), len(in.Leads))
	}
	for i, h := range m.Helix {
		if h.Material == nil {
			return fmt.Errorf("%w: helix %d has no material", ErrInvalidGeometry, i+1)
		}
	}
	for i, r := range m.Ring {
		if r.Material == nil {
			return fmt.Errorf("%w: ring %d has no material", ErrInvalidGeometry, i+1)
		}
	}
	return nil
}

// Convert returns a copy whose material records are expressed in the system's
// base length. Insulator records are copied as is.
func (m *MagnetData) Convert(sys units.System) (*MagnetData, error) {
	out := &MagnetData{Geom: m.Geom}
	var err error
	if out.Helix, err = convertParts("Helix", m.Helix, sys); err != nil {
		return nil, err
	}
	if out.Ring, err = convertParts("Ring", m.Ring, sys); err != nil {
		return nil, err
	}
	if out.Lead, err = convertParts("Lead", m.Lead, sys); err != nil {
		return nil, err
	}
	return out, nil
}

func convertParts(kind string, parts []PartData, sys units.System) ([]PartData, error) {
	if parts == nil {
		return nil, nil
	}
	out := make([]PartData, len(parts))
	for i, p := range parts {
		mat, err := sys.Material(p.Material)
		if err != nil {
			return nil, fmt.Errorf("%s[%d] material: %w", kind, i, err)
		}
		out[i] = PartData{Material: mat, Insulator: copyRecord(p.Insulator)}
	}
	return out, nil
}

func copyRecord(rec map[string]any) map[string]any {
	if rec == nil {
		return nil
	}
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
