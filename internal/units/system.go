package units

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingProperty is returned when a material record lacks one of the
// properties that must be converted.
var ErrMissingProperty = errors.New("missing material property")

// Length is the base length unit of the generated model.
type Length string

const (
	Meter      Length = "meter"
	Millimeter Length = "millimeter"
)

// ParseLength validates a base length name.
func ParseLength(s string) (Length, error) {
	switch Length(s) {
	case Meter, Millimeter:
		return Length(s), nil
	}
	return "", fmt.Errorf("%w: base length %q (want meter or millimeter)", ErrUnsupportedUnit, s)
}

// Symbol returns the unit symbol of the base length.
func (l Length) Symbol() string {
	if l == Millimeter {
		return "mm"
	}
	return "m"
}

// materialProperties lists the converted material properties, their SI unit,
// and the target unit with %[1]s standing for the base length symbol.
var materialProperties = []struct {
	key, from, to string
}{
	{"ThermalConductivity", "W/m/K", "W/%[1]s/K"},
	{"Young", "Pa", "kg/%[1]s/s^2"},
	{"VolumicMass", "kg/m^3", "kg/%[1]s^3"},
	{"ElectricalConductivity", "S/m", "S/%[1]s"},
	{"Rpe", "Pa", "kg/%[1]s/s^2"},
}

// System applies conversions into a fixed base length.
type System struct {
	Base Length
}

// NewSystem returns a System for the given base length.
func NewSystem(base Length) System {
	return System{Base: base}
}

func (s System) to(pattern string) string {
	return fmt.Sprintf(pattern, s.Base.Symbol())
}

// Length converts a length given in millimeters.
func (s System) Length(mm float64) (float64, error) {
	return Convert(mm, "mm", s.Base.Symbol())
}

// Lengths converts a slice of millimeter lengths into a new slice.
func (s System) Lengths(mm []float64) ([]float64, error) {
	return s.each(mm, "mm", s.Base.Symbol())
}

// Areas converts a slice of mm² areas into a new slice.
func (s System) Areas(mm2 []float64) ([]float64, error) {
	return s.each(mm2, "mm^2", s.to("%[1]s^2"))
}

func (s System) each(in []float64, from, to string) ([]float64, error) {
	src, err := Parse(from)
	if err != nil {
		return nil, err
	}
	dst, err := Parse(to)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(in))
	for i, v := range in {
		if out[i], err = ConvertUnit(v, src, dst); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Permeability converts a magnetic permeability given in H/m.
func (s System) Permeability(v float64) (float64, error) {
	return Convert(v, "H/m", s.to("H/%[1]s"))
}

// Convection converts a convection coefficient given in W/m²/K.
func (s System) Convection(v float64) (float64, error) {
	return Convert(v, "W/m^2/K", s.to("W/%[1]s^2/K"))
}

// Material returns a copy of a material record with its physical properties
// converted from SI into the base length. Other keys are copied unchanged.
func (s System) Material(rec map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	for _, p := range materialProperties {
		raw, ok := rec[p.key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingProperty, p.key)
		}
		v, err := toFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p.key, err)
		}
		if out[p.key], err = Convert(v, p.from, s.to(p.to)); err != nil {
			return nil, fmt.Errorf("property %s: %w", p.key, err)
		}
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("not a number: %v (%T)", v, v)
}
