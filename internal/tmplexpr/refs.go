// Package tmplexpr inspects parsed HCL templates before evaluation: which
// bindings they read and which functions they call.
package tmplexpr

import (
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Refs is the result of analyzing one or more expressions. Both lists are
// sorted and free of duplicates.
type Refs struct {
	Roots     []string
	Functions []string
}

// Analyze collects the free variable roots and the called function names of
// the given expressions. For-expression iterators are local and not reported.
func Analyze(exprs ...hcl.Expression) Refs {
	roots := make(map[string]struct{})
	funcs := make(map[string]struct{})

	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		for _, t := range expr.Variables() {
			roots[t.RootName()] = struct{}{}
		}
		node, ok := expr.(hclsyntax.Node)
		if !ok {
			continue
		}
		hclsyntax.VisitAll(node, func(n hclsyntax.Node) hcl.Diagnostics {
			if call, ok := n.(*hclsyntax.FunctionCallExpr); ok {
				funcs[call.Name] = struct{}{}
			}
			return nil
		})
	}

	return Refs{Roots: sortedSet(roots), Functions: sortedSet(funcs)}
}

// Missing returns the roots that have no entry in bindings.
func (r Refs) Missing(bindings map[string]any) []string {
	var out []string
	for _, name := range r.Roots {
		if _, ok := bindings[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Unknown returns the called functions for which known reports false.
func (r Refs) Unknown(known func(string) bool) []string {
	var out []string
	for _, fn := range r.Functions {
		if !known(fn) {
			out = append(out, fn)
		}
	}
	return out
}

func sortedSet(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
