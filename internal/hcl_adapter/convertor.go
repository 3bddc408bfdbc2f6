package hcl_adapter

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter turns native Go values into cty values for template evaluation.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ToCtyValue converts a native Go value into its corresponding cty.Value.
// Generic maps become objects and generic slices become tuples, so records of
// mixed value types convert without a declared schema.
func (c *Converter) ToCtyValue(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return x, nil
	case json.Number:
		return cty.ParseNumberVal(string(x))
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(x))
		for _, k := range sortedKeys(x) {
			val, err := c.ToCtyValue(x[k])
			if err != nil {
				return cty.NilVal, fmt.Errorf("%s: %w", k, err)
			}
			attrs[k] = val
		}
		return cty.ObjectVal(attrs), nil
	case []any:
		return c.tuple(len(x), func(i int) any { return x[i] })
	case []map[string]any:
		return c.tuple(len(x), func(i int) any { return x[i] })
	case []string:
		return c.tuple(len(x), func(i int) any { return x[i] })
	}

	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type for %T: %w", v, err)
	}
	return gocty.ToCtyValue(v, ty)
}

// Variables converts a set of named bindings.
func (c *Converter) Variables(bindings map[string]any) (map[string]cty.Value, error) {
	vars := make(map[string]cty.Value, len(bindings))
	for name, v := range bindings {
		val, err := c.ToCtyValue(v)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", name, err)
		}
		vars[name] = val
	}
	return vars, nil
}

func (c *Converter) tuple(n int, at func(int) any) (cty.Value, error) {
	if n == 0 {
		return cty.EmptyTupleVal, nil
	}
	elems := make([]cty.Value, n)
	for i := range n {
		val, err := c.ToCtyValue(at(i))
		if err != nil {
			return cty.NilVal, fmt.Errorf("[%d]: %w", i, err)
		}
		elems[i] = val
	}
	return cty.TupleVal(elems), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
