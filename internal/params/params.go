// Package params builds the Parameters section of the model document from
// the geometry characteristics and a set of physical constants.
package params

import (
	"errors"
	"fmt"
	"math"

	"github.com/vk/magnetsetup/internal/model"
	"github.com/vk/magnetsetup/internal/policy"
	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/units"
)

// ErrDuplicateParameter is returned when two parameters share a name.
var ErrDuplicateParameter = errors.New("duplicate parameter")

// Parameter is one named entry of the Parameters section.
type Parameter struct {
	Name  string
	Value any
}

// Binding returns the parameter as a {name, value} record.
func (p Parameter) Binding() map[string]any {
	return map[string]any{"name": p.Name, "value": p.Value}
}

// Constants holds the physical constants written as parameters. Mu0 is in
// H/m and H in W/m²/K until converted.
type Constants struct {
	Tinit float64
	Mu0   float64
	H     float64
	Tw    float64
	DTw   float64
}

// DefaultConstants returns the constants used when settings do not override
// them.
func DefaultConstants() Constants {
	return Constants{
		Tinit: 293,
		Mu0:   4 * math.Pi * 1e-7,
		H:     58222.1,
		Tw:    290.671,
		DTw:   12.74,
	}
}

// Convert expresses mu0 and h in the system's base length.
func (c Constants) Convert(sys units.System) (Constants, error) {
	out := c
	var err error
	if out.Mu0, err = sys.Permeability(c.Mu0); err != nil {
		return Constants{}, fmt.Errorf("mu0: %w", err)
	}
	if out.H, err = sys.Convection(c.H); err != nil {
		return Constants{}, fmt.Errorf("h: %w", err)
	}
	return out, nil
}

// Build returns the parameters in document order. chars and c must already
// be converted.
func Build(pol policy.Policy, chars model.Characteristics, c Constants) ([]Parameter, error) {
	var out []Parameter
	add := func(name string, value any) {
		out = append(out, Parameter{Name: name, Value: value})
	}

	if pol.ElasticityFlags {
		add("bool_laplace", "1")
		add("bool_dilatation", "1")
	}
	add("Tinit", c.Tinit)
	add("mu0", c.Mu0)
	add("h", c.H)
	add("Tw", c.Tw)
	add("dTw", c.DTw)

	for k := range chars.NChannels {
		add(fmt.Sprintf("h%d", k), c.H)
		add(fmt.Sprintf("Tw%d", k), c.Tw)
		add(fmt.Sprintf("dTw%d", k), c.DTw)
		add(fmt.Sprintf("Zmin%d", k), chars.Zmin[k])
		add(fmt.Sprintf("Zmax%d", k), chars.Zmax[k])
		add(fmt.Sprintf("Sh%d", k), chars.Sh[k])
		add(fmt.Sprintf("Dh%d", k), chars.Dh[k])
	}

	if pol.Selector.Geometry == selector.Axi {
		for i, n := range chars.Nsections {
			for j := 1; j <= n; j++ {
				add(fmt.Sprintf("U_H%d_Cu%d", i+1, j), "1")
			}
		}
		for i, n := range chars.Nsections {
			for j := 1; j <= n; j++ {
				add(fmt.Sprintf("N_H%d_Cu%d", i+1, j), n)
			}
		}
	}

	seen := make(map[string]bool, len(out))
	for _, p := range out {
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParameter, p.Name)
		}
		seen[p.Name] = true
	}
	return out, nil
}

// Bindings converts parameters into the list handed to the model template.
func Bindings(ps []Parameter) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = p.Binding()
	}
	return out
}
