// Package selector defines the five axes that drive model assembly: the
// numerical method, the time regime, the geometry class, the physics model
// and the cooling model. Values are parsed from their command-line names and
// rejected early when unknown.
package selector

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedValue is returned for an unknown method, time regime or
	// cooling value.
	ErrUnsupportedValue = errors.New("unsupported selector value")
	// ErrUnsupportedGeometryClass is returned for a geometry class outside
	// {Axi, 3D}.
	ErrUnsupportedGeometryClass = errors.New("unsupported geometry class")
	// ErrUnsupportedPhysicsModel is returned for a physics model outside
	// {thelec, mag, thmag, thmagel}.
	ErrUnsupportedPhysicsModel = errors.New("unsupported physics model")
)

// Method is the numerical method used by the solver.
type Method string

const (
	CFPDES Method = "cfpdes"
	CG     Method = "CG"
	HDG    Method = "HDG"
	CRB    Method = "CRB"
)

// Time is the time regime.
type Time string

const (
	Static    Time = "static"
	Transient Time = "transient"
)

// Geometry is the geometry class.
type Geometry string

const (
	Axi    Geometry = "Axi"
	ThreeD Geometry = "3D"
)

// Dim returns the spatial dimension of the geometry class.
func (g Geometry) Dim() int {
	if g == ThreeD {
		return 3
	}
	return 2
}

// Model is the coupled physics being solved.
type Model string

const (
	ThermoElectric       Model = "thelec"
	Magnetic             Model = "mag"
	ThermoMagnetic       Model = "thmag"
	ThermoMagnetoElastic Model = "thmagel"
)

// Cooling is the cooling model applied on channels.
type Cooling string

const (
	Mean Cooling = "mean"
	Grad Cooling = "grad"
)

var (
	Methods    = []Method{CFPDES, CG, HDG, CRB}
	Times      = []Time{Static, Transient}
	Geometries = []Geometry{Axi, ThreeD}
	Models     = []Model{ThermoElectric, Magnetic, ThermoMagnetic, ThermoMagnetoElastic}
	Coolings   = []Cooling{Mean, Grad}
)

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	return parse(s, Methods, ErrUnsupportedValue, "method")
}

// ParseTime validates a time regime name.
func ParseTime(s string) (Time, error) {
	return parse(s, Times, ErrUnsupportedValue, "time")
}

// ParseGeometry validates a geometry class name.
func ParseGeometry(s string) (Geometry, error) {
	return parse(s, Geometries, ErrUnsupportedGeometryClass, "geometry")
}

// ParseModel validates a physics model name.
func ParseModel(s string) (Model, error) {
	return parse(s, Models, ErrUnsupportedPhysicsModel, "model")
}

// ParseCooling validates a cooling model name.
func ParseCooling(s string) (Cooling, error) {
	return parse(s, Coolings, ErrUnsupportedValue, "cooling")
}

func parse[T ~string](s string, valid []T, sentinel error, axis string) (T, error) {
	for _, v := range valid {
		if string(v) == s {
			return v, nil
		}
	}
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = string(v)
	}
	return "", fmt.Errorf("%w: %s %q (valid: %s)", sentinel, axis, s, strings.Join(names, ", "))
}

func contains[T comparable](valid []T, v T) bool {
	for _, x := range valid {
		if x == v {
			return true
		}
	}
	return false
}

// Selector is the five-axis tuple chosen for a run.
type Selector struct {
	Method   Method
	Time     Time
	Geometry Geometry
	Model    Model
	Cooling  Cooling
}

// Parse builds a Selector from raw axis names.
func Parse(method, time, geom, model, cooling string) (Selector, error) {
	var (
		sel Selector
		err error
	)
	if sel.Method, err = ParseMethod(method); err != nil {
		return Selector{}, err
	}
	if sel.Time, err = ParseTime(time); err != nil {
		return Selector{}, err
	}
	if sel.Geometry, err = ParseGeometry(geom); err != nil {
		return Selector{}, err
	}
	if sel.Model, err = ParseModel(model); err != nil {
		return Selector{}, err
	}
	if sel.Cooling, err = ParseCooling(cooling); err != nil {
		return Selector{}, err
	}
	return sel, nil
}

// Validate checks every axis against its enumeration. It catches selectors
// built by hand rather than through Parse.
func (s Selector) Validate() error {
	switch {
	case !contains(Methods, s.Method):
		return fmt.Errorf("%w: method %q", ErrUnsupportedValue, s.Method)
	case !contains(Times, s.Time):
		return fmt.Errorf("%w: time %q", ErrUnsupportedValue, s.Time)
	case !contains(Geometries, s.Geometry):
		return fmt.Errorf("%w: %q", ErrUnsupportedGeometryClass, s.Geometry)
	case !contains(Models, s.Model):
		return fmt.Errorf("%w: %q", ErrUnsupportedPhysicsModel, s.Model)
	case !contains(Coolings, s.Cooling):
		return fmt.Errorf("%w: cooling %q", ErrUnsupportedValue, s.Cooling)
	}
	return nil
}

// String renders the selector as method/time/geometry/model/cooling.
func (s Selector) String() string {
	return strings.Join([]string{string(s.Method), string(s.Time), string(s.Geometry), string(s.Model), string(s.Cooling)}, "/")
}

// All enumerates every valid selector.
func All() []Selector {
	var out []Selector
	for _, m := range Methods {
		for _, t := range Times {
			for _, g := range Geometries {
				for _, md := range Models {
					for _, c := range Coolings {
						out = append(out, Selector{Method: m, Time: t, Geometry: g, Model: md, Cooling: c})
					}
				}
			}
		}
	}
	return out
}
