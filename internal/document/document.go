// Package document assembles the model document from the rendered model
// template, the material section and the post-processing statistics, and
// writes the run outputs.
package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/policy"
	"github.com/vk/magnetsetup/internal/postprocess"
	"github.com/vk/magnetsetup/internal/templates"
)

// Document is the nested model document.
type Document map[string]any

// Encode returns the document as indented JSON. Solver expressions keep
// their <, > and & characters unescaped.
func (d Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding model document: %w", err)
	}
	return buf.Bytes(), nil
}

// Input gathers what Assemble needs.
type Input struct {
	Policy   policy.Policy
	Set      *templates.Set
	Renderer *templates.Renderer
	// Bindings are the model template bindings.
	Bindings  map[string]any
	Materials map[string]any
	Post      postprocess.Lists
}

// statistics describes one statistics fragment injected into the document.
type statistics struct {
	role     templates.Role
	key      string
	section  string
	bindings map[string]any
}

// Assemble renders the model template and completes it with materials and,
// when the policy carries cooling, the flux and statistics measures.
func Assemble(ctx context.Context, in Input) (Document, error) {
	logger := ctxlog.FromContext(ctx)

	path, err := in.Set.Path(templates.RoleModel)
	if err != nil {
		return nil, err
	}
	data, err := in.Renderer.Render(ctx, path, in.Bindings)
	if err != nil {
		return nil, err
	}
	doc := Document(data)

	mats, err := doc.section(path, "Materials")
	if err != nil {
		return nil, err
	}
	overwritten, err := Merge(mats, in.Materials, Overwrite)
	if err != nil {
		return nil, err
	}
	if len(overwritten) > 0 {
		logger.Warn("Model template materials overwritten.", "keys", overwritten)
	}

	if !in.Policy.Cooling {
		logger.Debug("Model document assembled.", "materials", len(mats))
		return doc, nil
	}

	stats := []statistics{
		{templates.RoleFlux, "Flux", in.Policy.HeatSection, in.Post.FluxBindings()},
		{templates.RoleStatsT, "Stats_T", in.Policy.HeatSection, in.Post.MeanTBindings()},
		{templates.RoleStatsPower, "Stats_Power", in.Policy.PowerSection, in.Post.PowerBindings()},
	}
	for _, st := range stats {
		if err := doc.inject(ctx, in, path, st); err != nil {
			return nil, err
		}
	}
	logger.Debug("Model document assembled.", "materials", len(mats), "heat_section", in.Policy.HeatSection, "power_section", in.Policy.PowerSection)
	return doc, nil
}

func (d Document) inject(ctx context.Context, in Input, modelPath string, st statistics) error {
	logger := ctxlog.FromContext(ctx)

	path, err := in.Set.Path(st.role)
	if err != nil {
		return err
	}
	rendered, err := in.Renderer.Render(ctx, path, st.bindings)
	if err != nil {
		return err
	}
	frag, err := templates.Fragment(path, rendered, st.key)
	if err != nil {
		return err
	}
	target, err := d.section(modelPath, "PostProcess", st.section, "Measures", "Statistics")
	if err != nil {
		return err
	}
	overwritten, err := Merge(target, frag, Overwrite)
	if err != nil {
		return err
	}
	if len(overwritten) > 0 {
		logger.Warn("Statistics overwritten.", "section", st.section, "keys", overwritten)
	}
	return nil
}

// section walks keys from the root, creating missing maps.
func (d Document) section(source string, keys ...string) (map[string]any, error) {
	cur := map[string]any(d)
	for i, k := range keys {
		raw, ok := cur[k]
		if !ok || raw == nil {
			next := map[string]any{}
			cur[k] = next
			cur = next
			continue
		}
		next, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %v is %T, want an object", templates.ErrMalformedFragment, source, keys[:i+1], raw)
		}
		cur = next
	}
	return cur, nil
}
