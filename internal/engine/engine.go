package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/magnetsetup/internal/bcs"
	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/document"
	"github.com/vk/magnetsetup/internal/materials"
	"github.com/vk/magnetsetup/internal/model"
	"github.com/vk/magnetsetup/internal/params"
	"github.com/vk/magnetsetup/internal/policy"
	"github.com/vk/magnetsetup/internal/postprocess"
	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/templates"
	"github.com/vk/magnetsetup/internal/topology"
	"github.com/vk/magnetsetup/internal/units"
)

// ErrUnknownStatsPart is returned when a statistics entry refers to a part
// the geometry does not have.
var ErrUnknownStatsPart = errors.New("statistics reference unknown part")

// Initial condition files named in the model document.
const (
	TemperatureInitFile = "tini.h5"
	PotentialInitFile   = "Vini.h5"
)

// Input is everything one assembly needs.
type Input struct {
	Selector  selector.Selector
	Linear    bool
	Length    units.Length
	Constants params.Constants
	Insert    *model.Insert
	Data      *model.MagnetData
	Templates *templates.Set
	// Renderer is created when nil.
	Renderer *templates.Renderer
	// Base is the output name prefix.
	Base string
}

// Result holds the assembled outputs.
type Result struct {
	Names    document.OutputNames
	Cfg      string
	Document document.Document
	Topology *topology.Topology
	Policy   policy.Policy
}

// Outputs returns the files to write for the result.
func (r *Result) Outputs() ([]document.Output, error) {
	raw, err := r.Document.Encode()
	if err != nil {
		return nil, err
	}
	return []document.Output{
		{Name: r.Names.Cfg, Data: []byte(r.Cfg)},
		{Name: r.Names.JSON, Data: raw},
	}, nil
}

// Assemble builds the configuration record and the model document.
func Assemble(ctx context.Context, in Input) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Assembly started.", "selector", in.Selector.String(), "linear", in.Linear, "length", string(in.Length))

	pol, err := policy.For(in.Selector)
	if err != nil {
		return nil, err
	}
	if err := in.Data.Check(in.Insert); err != nil {
		return nil, err
	}
	topo, err := topology.Enumerate(in.Selector, in.Insert)
	if err != nil {
		return nil, err
	}
	logger.Info("Geometry enumerated.",
		"insert", in.Insert.Name,
		"helices", topo.NHelices,
		"rings", topo.NRings,
		"channels", topo.NChannels,
		"thermal_parts", len(topo.Registry.Thermal()),
	)

	sys := units.NewSystem(in.Length)
	chars, err := in.Insert.Characteristics().Convert(sys)
	if err != nil {
		return nil, fmt.Errorf("converting geometry: %w", err)
	}
	data, err := in.Data.Convert(sys)
	if err != nil {
		return nil, fmt.Errorf("converting materials: %w", err)
	}
	constants, err := in.Constants.Convert(sys)
	if err != nil {
		return nil, fmt.Errorf("converting constants: %w", err)
	}

	ps, err := params.Build(pol, chars, constants)
	if err != nil {
		return nil, err
	}

	r := in.Renderer
	if r == nil {
		r = templates.NewRenderer()
	}
	sections, err := bcs.Assemble(ctx, pol, topo, in.Templates, r)
	if err != nil {
		return nil, err
	}

	post := postprocess.Build(topo)
	for _, p := range post.Parts() {
		if !topo.Registry.Has(p) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStatsPart, p)
		}
	}

	mats, err := materials.Assemble(ctx, in.Selector, topo, data, in.Templates, r)
	if err != nil {
		return nil, err
	}

	bindings, err := modelBindings(topo, ps, sections)
	if err != nil {
		return nil, err
	}
	doc, err := document.Assemble(ctx, document.Input{
		Policy:    pol,
		Set:       in.Templates,
		Renderer:  r,
		Bindings:  bindings,
		Materials: mats,
		Post:      post,
	})
	if err != nil {
		return nil, err
	}

	names := document.Names(in.Base, in.Selector, in.Linear)
	cfgPath, err := in.Templates.Path(templates.RoleCfg)
	if err != nil {
		return nil, err
	}
	stem := in.Insert.FSInformation.Stem()
	if stem == "" {
		stem = in.Insert.Name
	}
	cfg, err := r.RenderConfig(ctx, cfgPath, document.CfgBindings(in.Selector, in.Linear, stem, names.JSON))
	if err != nil {
		return nil, err
	}

	logger.Debug("Assembly finished.", "json", names.JSON, "cfg", names.Cfg)
	return &Result{Names: names, Cfg: cfg, Document: doc, Topology: topo, Policy: pol}, nil
}

// modelBindings gathers the bindings of the model template.
func modelBindings(topo *topology.Topology, ps []params.Parameter, sections bcs.Sections) (map[string]any, error) {
	indexElectric := make([]any, 0, len(topo.Sections))
	for _, s := range topo.Sections {
		indexElectric = append(indexElectric, []string{fmt.Sprint(s.Helix), fmt.Sprint(s.Section)})
	}
	indexV0 := make([]any, 0, len(topo.Boundaries.ElectricDirichlet))
	for _, p := range topo.Boundaries.ElectricDirichlet {
		indexV0 = append(indexV0, []string{p.Name, p.Marker, p.Value})
	}

	b := map[string]any{
		"part_thermic":         topo.Registry.Thermal(),
		"part_electric":        topo.Registry.Electric(),
		"index_electric":       indexElectric,
		"index_V0":             indexV0,
		"temperature_initfile": TemperatureInitFile,
		"V_initfile":           PotentialInitFile,
		"Parameters":           params.Bindings(ps),
	}
	if _, err := document.Merge(b, sections.Bindings(), document.Reject); err != nil {
		return nil, err
	}
	return b, nil
}
