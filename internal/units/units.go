// Package units converts physical quantities between unit expressions such
// as "W/m/K" or "kg/mm^3". A unit expression is a product of recognized
// symbols, each with an optional integer exponent, separated by "*" or "/".
// Division applies to the single symbol that follows it, so "W/m/K" reads
// as W·m⁻¹·K⁻¹.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedUnit is returned when a unit expression contains a symbol
	// outside the recognized set.
	ErrUnsupportedUnit = errors.New("unsupported unit")
	// ErrIncompatibleUnits is returned when two units do not measure the
	// same physical dimension.
	ErrIncompatibleUnits = errors.New("incompatible units")
)

// dims holds SI base-dimension exponents: length, mass, time, temperature,
// electric current.
type dims [5]int

func (d dims) add(o dims, sign int) dims {
	for i := range d {
		d[i] += sign * o[i]
	}
	return d
}

type symbol struct {
	factor float64 // multiplier to the coherent SI unit
	dims   dims
}

var symbols = map[string]symbol{
	"m":  {1, dims{1, 0, 0, 0, 0}},
	"cm": {1e-2, dims{1, 0, 0, 0, 0}},
	"mm": {1e-3, dims{1, 0, 0, 0, 0}},
	"um": {1e-6, dims{1, 0, 0, 0, 0}},
	"kg": {1, dims{0, 1, 0, 0, 0}},
	"g":  {1e-3, dims{0, 1, 0, 0, 0}},
	"s":  {1, dims{0, 0, 1, 0, 0}},
	"K":  {1, dims{0, 0, 0, 1, 0}},
	"A":  {1, dims{0, 0, 0, 0, 1}},
	"J":  {1, dims{2, 1, -2, 0, 0}},
	"W":  {1, dims{2, 1, -3, 0, 0}},
	"Pa": {1, dims{-1, 1, -2, 0, 0}},
	"V":  {1, dims{2, 1, -3, 0, -1}},
	"S":  {1, dims{-2, -1, 3, 0, 2}},
	"H":  {1, dims{2, 1, -2, 0, -2}},
}

// Unit is a parsed unit expression.
type Unit struct {
	expr   string
	factor float64
	dims   dims
}

// String returns the expression the unit was parsed from.
func (u Unit) String() string { return u.expr }

// Compatible reports whether u and o measure the same dimension.
func (u Unit) Compatible(o Unit) bool { return u.dims == o.dims }

// Parse parses a unit expression.
func Parse(expr string) (Unit, error) {
	u := Unit{expr: expr, factor: 1}
	s := strings.ReplaceAll(strings.TrimSpace(expr), " ", "")
	if s == "" {
		return Unit{}, fmt.Errorf("%w: empty expression", ErrUnsupportedUnit)
	}

	sign := 1
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '/' && s[i] != '*' {
			continue
		}
		term := s[start:i]
		if err := u.apply(term, sign); err != nil {
			return Unit{}, fmt.Errorf("%w in %q", err, expr)
		}
		if i < len(s) && s[i] == '/' {
			sign = -1
		} else {
			sign = 1
		}
		start = i + 1
	}
	return u, nil
}

func (u *Unit) apply(term string, sign int) error {
	if term == "" {
		return fmt.Errorf("%w: missing symbol", ErrUnsupportedUnit)
	}
	name, exp := term, 1
	if idx := strings.IndexByte(term, '^'); idx >= 0 {
		n, err := strconv.Atoi(term[idx+1:])
		if err != nil {
			return fmt.Errorf("%w: bad exponent in %q", ErrUnsupportedUnit, term)
		}
		name, exp = term[:idx], n
	}
	if name == "1" {
		return nil
	}
	sym, ok := symbols[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedUnit, name)
	}
	exp *= sign
	u.factor *= math.Pow(sym.factor, float64(exp))
	u.dims = u.dims.add(sym.dims, exp)
	return nil
}

// Convert converts a magnitude expressed in from into the unit to.
func Convert(value float64, from, to string) (float64, error) {
	src, err := Parse(from)
	if err != nil {
		return 0, err
	}
	dst, err := Parse(to)
	if err != nil {
		return 0, err
	}
	return ConvertUnit(value, src, dst)
}

// ConvertUnit converts between two already parsed units.
func ConvertUnit(value float64, from, to Unit) (float64, error) {
	if !from.Compatible(to) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrIncompatibleUnits, from, to)
	}
	return value * from.factor / to.factor, nil
}
