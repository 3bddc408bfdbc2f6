// Package materials renders the Materials section of the model document: one
// entry per thermal part, from the conductor or insulator template.
package materials

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/document"
	"github.com/vk/magnetsetup/internal/model"
	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/templates"
	"github.com/vk/magnetsetup/internal/topology"
)

// ErrMaterialMismatch is returned when the rendered materials do not cover
// exactly the thermal parts.
var ErrMaterialMismatch = errors.New("materials do not match thermal parts")

// job is one material entry to render.
type job struct {
	part   string
	role   templates.Role
	record map[string]any
	marker any
}

// Assemble renders a material entry for every thermal part of topo.
func Assemble(ctx context.Context, sel selector.Selector, topo *topology.Topology, data *model.MagnetData, set *templates.Set, r *templates.Renderer) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	jobs, err := plan(sel, topo, data)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(jobs))
	for _, j := range jobs {
		path, err := set.Path(j.role)
		if err != nil {
			return nil, err
		}
		bindings, overwritten := partBindings(j)
		if len(overwritten) > 0 {
			logger.Debug("Material record keys replaced by part bindings.", "part", j.part, "keys", overwritten)
		}
		rendered, err := r.Render(ctx, path, bindings)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", j.part, err)
		}
		entry, err := templates.Fragment(path, rendered, j.part)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", j.part, err)
		}
		if _, err := document.Merge(out, map[string]any{j.part: entry}, document.Reject); err != nil {
			return nil, fmt.Errorf("material %s: %w", j.part, err)
		}
	}

	if err := checkCoverage(out, topo.Registry.Thermal()); err != nil {
		return nil, err
	}
	logger.Debug("Materials assembled.", "count", len(out))
	return out, nil
}

func plan(sel selector.Selector, topo *topology.Topology, data *model.MagnetData) ([]job, error) {
	if len(data.Helix) < topo.NHelices || len(data.Ring) < topo.NRings {
		return nil, fmt.Errorf("%w: %d helix and %d ring records for %d helices and %d rings",
			ErrMaterialMismatch, len(data.Helix), len(data.Ring), topo.NHelices, topo.NRings)
	}

	var jobs []job
	threeD := sel.Geometry == selector.ThreeD

	for idx := range topo.NHelices {
		i := idx + 1
		mat := data.Helix[idx].Material
		if threeD {
			name := topology.HelixPart(i)
			jobs = append(jobs, job{part: name, role: templates.RoleConductor, record: mat, marker: name})
			continue
		}
		last := len(sectionsOf(topo, i)) + 1
		for j := 0; j <= last; j++ {
			role := templates.RoleConductor
			if j == 0 || j == last {
				role = templates.RoleInsulator
			}
			jobs = append(jobs, job{part: topology.SectionPart(i, j), role: role, record: mat})
		}
	}

	for _, ins := range topo.Insulators {
		rec := data.Helix[ins.Helix-1].Insulator
		if rec == nil {
			return nil, fmt.Errorf("%w: helix %d carries %s but has no insulator record", ErrMaterialMismatch, ins.Helix, ins.Name)
		}
		jobs = append(jobs, job{part: ins.Name, role: templates.RoleInsulator, record: rec, marker: ins.Marker.Binding()})
	}

	for idx := range topo.NRings {
		name := topology.RingPart(idx + 1)
		j := job{part: name, role: templates.RoleInsulator, record: data.Ring[idx].Material}
		if threeD {
			j.role, j.marker = templates.RoleConductor, name
		}
		jobs = append(jobs, j)
	}

	if topo.HasLeads {
		if len(data.Lead) != 2 {
			return nil, fmt.Errorf("%w: %d lead records for 2 leads", ErrMaterialMismatch, len(data.Lead))
		}
		for k, name := range []string{topology.InnerLead, topology.OuterLead} {
			jobs = append(jobs, job{part: name, role: templates.RoleConductor, record: data.Lead[k].Material, marker: name})
		}
	}
	return jobs, nil
}

func sectionsOf(topo *topology.Topology, helix int) []model.SectionIndex {
	var out []model.SectionIndex
	for _, s := range topo.Sections {
		if s.Helix == helix {
			out = append(out, s)
		}
	}
	return out
}

// partBindings layers the part name and marker over a copy of the material
// record. The record's own name stays available as material_name.
func partBindings(j job) (map[string]any, []string) {
	b := make(map[string]any, len(j.record)+3)
	for k, v := range j.record {
		b[k] = v
	}
	// A record may name its material explicitly; the record name is the fallback.
	if name, ok := j.record["name"]; ok {
		_, _ = document.Merge(b, map[string]any{"material_name": name}, document.KeepExisting)
	}
	part := map[string]any{"name": j.part}
	if j.marker != nil {
		part["marker"] = j.marker
	}
	overwritten, _ := document.Merge(b, part, document.Overwrite)
	return b, overwritten
}

func checkCoverage(got map[string]any, thermal []string) error {
	var missing, extra []string
	for _, p := range thermal {
		if _, ok := got[p]; !ok {
			missing = append(missing, p)
		}
	}
	for k := range got {
		if !slices.Contains(thermal, k) {
			extra = append(extra, k)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return fmt.Errorf("%w: missing [%s], unexpected [%s]", ErrMaterialMismatch, strings.Join(missing, ", "), strings.Join(extra, ", "))
}
