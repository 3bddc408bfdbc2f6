// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the PartRegistry and the boundary collections produced by
// topology enumeration.
package model

import "slices"

// PartRegistry is the ordered set of thermal and electric part names of a run.
// It is immutable: accessors return copies.
type PartRegistry struct {
	thermal  []string
	electric []string
}

// NewPartRegistry freezes the given part lists.
func NewPartRegistry(thermal, electric []string) *PartRegistry {
	return &PartRegistry{
		thermal:  slices.Clone(thermal),
		electric: slices.Clone(electric),
	}
}

// Thermal returns the thermal parts in enumeration order.
func (r *PartRegistry) Thermal() []string { return slices.Clone(r.thermal) }

// Electric returns the electric parts in enumeration order.
func (r *PartRegistry) Electric() []string { return slices.Clone(r.electric) }

// Has reports whether name is a thermal or electric part.
func (r *PartRegistry) Has(name string) bool {
	return slices.Contains(r.thermal, name) || slices.Contains(r.electric, name)
}

// SectionIndex identifies section j of helix i, both 1-based.
type SectionIndex struct {
	Helix   int
	Section int
}

// Marker is the mesh marker of a part. Index is set for markers spanning a
// range of mesh regions, as in "Kapton%1%" over "0:4".
type Marker struct {
	Name  string
	Index string
}

// Binding returns the marker in the shape material templates expect: a plain
// string, or a {name, index1} record for ranged markers.
func (m Marker) Binding() any {
	if m.Index == "" {
		return m.Name
	}
	return map[string]any{"name": m.Name, "index1": m.Index}
}

// InsulatorPart is an insulating sub-part wrapped around a 3D helix.
type InsulatorPart struct {
	// Helix is the 1-based helix index.
	Helix  int
	Name   string
	Marker Marker
}

// Potential is an electric Dirichlet entry.
type Potential struct {
	Name   string
	Marker string
	Value  string
}

// BoundaryGroups holds the named boundary collections in emission order.
type BoundaryGroups struct {
	MechanicalDirichlet []string
	MagneticDirichlet   []string
	ElectricDirichlet   []Potential
	ThermalNeumann      []string
	ElectricNeumann     []string
}
