// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Insert geometry and its YAML loader.
//
// An Insert is a stack of concentric helices separated by cooling channels and
// joined by rings. The loader accepts only records whose root node carries the
// Insert tag; any other record type is rejected before decoding so a Bitter or
// Supra record is never mistaken for a partial Insert.
package model

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedRecordType is returned when a geometry record is not an
	// Insert.
	ErrUnsupportedRecordType = errors.New("unsupported record type")
	// ErrInvalidGeometry is returned when a geometry record is structurally
	// inconsistent.
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// InsertTag is the record type accepted by LoadInsert.
const InsertTag = "Insert"

// Insulation kinds carried by 3D helices.
const (
	InsulationGlue   = "Glue"
	InsulationKapton = "Kapton"
)

// Insert is the format-agnostic representation of an insert magnet.
type Insert struct {
	Name          string
	Helices       []Helix
	Rings         []Ring
	Leads         []Lead
	Channels      []Channel
	FSInformation *FSInfo
}

// Helix is one helical winding.
type Helix struct {
	Name       string      `yaml:"name"`
	R          []float64   `yaml:"r"`
	Z          []float64   `yaml:"z"`
	Sections   int         `yaml:"sections"`
	Insulation *Insulation `yaml:"insulation,omitempty"`
}

// Insulation describes the insulating sub-parts wrapped around a 3D helix.
type Insulation struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
}

// Ring joins two consecutive helices.
type Ring struct {
	Name string `yaml:"name"`
}

// Lead is a current lead. The first lead is the inner one.
type Lead struct {
	Name string `yaml:"name"`
}

// Channel is a cooling channel. Lengths are in millimeters, Sh in mm².
type Channel struct {
	Zmin float64 `yaml:"zmin"`
	Zmax float64 `yaml:"zmax"`
	Dh   float64 `yaml:"dh"`
	Sh   float64 `yaml:"sh"`
}

type insertYAML struct {
	Name         string    `yaml:"name"`
	Helices      []Helix   `yaml:"helices"`
	Rings        []Ring    `yaml:"rings"`
	CurrentLeads []Lead    `yaml:"currentleads"`
	Channels     []Channel `yaml:"channels"`
}

// LoadInsert reads and decodes an Insert geometry file.
func LoadInsert(path string) (*Insert, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read geometry file %s: %w", path, err)
	}
	in, err := DecodeInsert(data)
	if err != nil {
		return nil, fmt.Errorf("geometry file %s: %w", path, err)
	}
	in.FSInformation = NewFSInfo(path)
	return in, nil
}

// DecodeInsert decodes an Insert from YAML text.
func DecodeInsert(data []byte) (*Insert, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty record", ErrInvalidGeometry)
	}
	root := doc.Content[0]
	if tag := recordTag(root.Tag); tag != InsertTag {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrUnsupportedRecordType, tag, InsertTag)
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: Insert record is not a mapping", ErrInvalidGeometry)
	}
	root.Tag = "!!map"

	var raw insertYAML
	if err := root.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	in := &Insert{
		Name:     raw.Name,
		Helices:  raw.Helices,
		Rings:    raw.Rings,
		Leads:    raw.CurrentLeads,
		Channels: raw.Channels,
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

// recordTag strips the YAML tag decorations so `!<Insert>`, `!Insert` and a
// resolved verbatim tag compare equal.
func recordTag(tag string) string {
	tag = strings.TrimPrefix(tag, "!")
	tag = strings.TrimPrefix(tag, "<")
	tag = strings.TrimSuffix(tag, ">")
	tag = strings.TrimPrefix(tag, "!")
	return tag
}

// Validate checks the structural invariants of the geometry.
func (in *Insert) Validate() error {
	if len(in.Helices) == 0 {
		return fmt.Errorf("%w: no helix", ErrInvalidGeometry)
	}
	for i, h := range in.Helices {
		if len(h.R) != 2 || len(h.Z) != 2 {
			return fmt.Errorf("%w: helix %d must have r and z as [min, max]", ErrInvalidGeometry, i+1)
		}
		if h.Sections < 1 {
			return fmt.Errorf("%w: helix %d has %d sections", ErrInvalidGeometry, i+1, h.Sections)
		}
		if h.Insulation != nil && h.Insulation.Kind != InsulationGlue && h.Insulation.Count < 1 {
			return fmt.Errorf("%w: helix %d insulation %q needs a positive count", ErrInvalidGeometry, i+1, h.Insulation.Kind)
		}
	}
	if n := len(in.Leads); n != 0 && n != 2 {
		return fmt.Errorf("%w: %d current leads (want 0 or 2)", ErrInvalidGeometry, n)
	}
	if len(in.Channels) != len(in.Helices)+1 {
		return fmt.Errorf("%w: %d channels for %d helices (want %d)", ErrInvalidGeometry, len(in.Channels), len(in.Helices), len(in.Helices)+1)
	}
	return nil
}

// HasLeads reports whether the geometry carries current leads.
func (in *Insert) HasLeads() bool { return len(in.Leads) == 2 }

// Characteristics holds the counts and per-helix or per-channel arrays derived
// from an Insert. Lengths are in millimeters until converted.
type Characteristics struct {
	NHelices  int
	NRings    int
	NChannels int
	Nsections []int

	R1, R2 []float64
	Z1, Z2 []float64

	Zmin, Zmax []float64
	Dh, Sh     []float64
}

// Characteristics derives the counts and numeric arrays of the geometry.
func (in *Insert) Characteristics() Characteristics {
	c := Characteristics{
		NHelices:  len(in.Helices),
		NRings:    len(in.Rings),
		NChannels: len(in.Channels),
	}
	for _, h := range in.Helices {
		c.Nsections = append(c.Nsections, h.Sections)
		c.R1 = append(c.R1, h.R[0])
		c.R2 = append(c.R2, h.R[1])
		c.Z1 = append(c.Z1, h.Z[0])
		c.Z2 = append(c.Z2, h.Z[1])
	}
	for _, ch := range in.Channels {
		c.Zmin = append(c.Zmin, ch.Zmin)
		c.Zmax = append(c.Zmax, ch.Zmax)
		c.Dh = append(c.Dh, ch.Dh)
		c.Sh = append(c.Sh, ch.Sh)
	}
	return c
}
