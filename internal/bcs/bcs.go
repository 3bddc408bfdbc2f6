// Package bcs builds the boundary-condition sections handed to the model
// template, filtered by the assembly policy.
package bcs

import (
	"context"
	"fmt"

	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/document"
	"github.com/vk/magnetsetup/internal/policy"
	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/templates"
	"github.com/vk/magnetsetup/internal/topology"
)

// Sections maps each emitted group to its entries.
type Sections map[policy.Group][]map[string]any

// Bindings returns the sections keyed by group name, as the model template
// expects them.
func (s Sections) Bindings() map[string]any {
	out := make(map[string]any, len(s))
	for g, entries := range s {
		list := make([]any, len(entries))
		for i, e := range entries {
			list[i] = e
		}
		out[string(g)] = list
	}
	return out
}

// Assemble builds the sections the policy includes.
func Assemble(ctx context.Context, pol policy.Policy, topo *topology.Topology, set *templates.Set, r *templates.Renderer) (Sections, error) {
	logger := ctxlog.FromContext(ctx)
	b := topo.Boundaries
	out := make(Sections, len(pol.Groups))

	for _, g := range pol.Groups {
		switch g {
		case policy.ThermalRobin:
			entries, err := robin(ctx, topo.NChannels, set, r)
			if err != nil {
				return nil, err
			}
			out[g] = entries
		case policy.ThermalNeumann:
			out[g] = valued(b.ThermalNeumann, "0")
		case policy.ElectricNeumann:
			out[g] = valued(b.ElectricNeumann, "0")
		case policy.MechanicalDirichlet:
			out[g] = valued(b.MechanicalDirichlet, "{0,0}")
		case policy.MagneticDirichlet:
			v := "0"
			if pol.Selector.Geometry == selector.ThreeD {
				v = "{0,0}"
			}
			out[g] = valued(b.MagneticDirichlet, v)
		case policy.ElectricDirichlet:
			entries := make([]map[string]any, 0, len(b.ElectricDirichlet))
			for _, p := range b.ElectricDirichlet {
				entries = append(entries, map[string]any{"name": p.Name, "value": p.Value})
			}
			out[g] = entries
		default:
			return nil, fmt.Errorf("%w: unknown boundary group %q", selector.ErrUnsupportedPhysicsModel, g)
		}
		logger.Debug("Boundary section built.", "group", string(g), "entries", len(out[g]))
	}
	return out, nil
}

func valued(names []string, value string) []map[string]any {
	out := make([]map[string]any, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]any{"name": n, "value": value})
	}
	return out
}

// robin renders the cooling template once per channel.
func robin(ctx context.Context, channels int, set *templates.Set, r *templates.Renderer) ([]map[string]any, error) {
	path, err := set.Path(templates.RoleCooling)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, channels)
	for i := range channels {
		name := topology.ChannelName(i)
		rendered, err := r.Render(ctx, path, map[string]any{"i": i})
		if err != nil {
			return nil, fmt.Errorf("cooling %s: %w", name, err)
		}
		frag, err := templates.Fragment(path, rendered, name)
		if err != nil {
			return nil, err
		}
		entry := map[string]any{"name": name}
		if _, err := document.Merge(entry, frag, document.Reject); err != nil {
			return nil, fmt.Errorf("cooling %s: %w", name, err)
		}
		out = append(out, entry)
	}
	return out, nil
}
