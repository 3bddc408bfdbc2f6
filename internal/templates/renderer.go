package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/hcl_adapter"
	"github.com/vk/magnetsetup/internal/tmplexpr"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

var (
	// ErrRender is returned when a template cannot be substituted: it does not
	// parse, references unbound names, or fails to evaluate.
	ErrRender = errors.New("render error")
	// ErrMalformedFragment is returned when rendered text is not a valid
	// document fragment, or lacks an expected key.
	ErrMalformedFragment = errors.New("malformed fragment")
)

// trailingComma matches a comma followed only by whitespace before a closing
// brace or bracket.
var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// Functions callable from templates.
var functions = map[string]function.Function{
	"jsonencode": stdlib.JSONEncodeFunc,
	"join":       stdlib.JoinFunc,
	"length":     stdlib.LengthFunc,
	"format":     stdlib.FormatFunc,
	"upper":      stdlib.UpperFunc,
	"lower":      stdlib.LowerFunc,
}

func isFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

type parsed struct {
	expr hcl.Expression
	refs tmplexpr.Refs
}

// Renderer substitutes bindings into template files. Each file is read and
// parsed once per Renderer.
type Renderer struct {
	conv  *hcl_adapter.Converter
	cache map[string]*parsed
}

// NewRenderer returns a Renderer with an empty cache.
func NewRenderer() *Renderer {
	return &Renderer{
		conv:  hcl_adapter.NewConverter(),
		cache: make(map[string]*parsed),
	}
}

// Render substitutes bindings into the template at path, repairs trailing
// commas and parses the result as a JSON object.
func (r *Renderer) Render(ctx context.Context, path string, bindings map[string]any) (map[string]any, error) {
	text, err := r.RenderConfig(ctx, path, bindings)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFragment, path, err)
	}
	return out, nil
}

// RenderConfig substitutes bindings into the template at path and returns
// the repaired text without parsing it.
func (r *Renderer) RenderConfig(ctx context.Context, path string, bindings map[string]any) (string, error) {
	logger := ctxlog.FromContext(ctx)

	text, err := r.substitute(path, bindings)
	if err != nil {
		return "", err
	}
	repaired := Repair(text)
	logger.Debug("Template rendered.", "path", path, "bindings", len(bindings), "bytes", len(repaired))
	return repaired, nil
}

// Repair removes trailing commas that precede a closing brace or bracket.
func Repair(text string) string {
	return trailingComma.ReplaceAllString(text, "$1")
}

func (r *Renderer) substitute(path string, bindings map[string]any) (string, error) {
	p, err := r.load(path)
	if err != nil {
		return "", err
	}

	if unresolved := p.refs.Missing(bindings); len(unresolved) > 0 {
		return "", fmt.Errorf("%w: %s: unresolved placeholders: %s", ErrRender, path, strings.Join(unresolved, ", "))
	}

	vars, err := r.conv.Variables(bindings)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, path, err)
	}
	val, diags := p.expr.Value(&hcl.EvalContext{Variables: vars, Functions: functions})
	if diags.HasErrors() {
		return "", fmt.Errorf("%w: %s: %s", ErrRender, path, diags.Error())
	}
	val, err = convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("%w: %s: result is not text: %v", ErrRender, path, err)
	}
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("%w: %s: template produced no text", ErrRender, path)
	}
	return val.AsString(), nil
}

func (r *Renderer) load(path string) (*parsed, error) {
	if p, ok := r.cache[path]; ok {
		return p, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, path, err)
	}
	expr, diags := hclsyntax.ParseTemplate(src, path, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrRender, diags.Error())
	}

	refs := tmplexpr.Analyze(expr)
	if unknown := refs.Unknown(isFunction); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown function %q", ErrRender, path, unknown[0])
	}

	p := &parsed{expr: expr, refs: refs}
	r.cache[path] = p
	return p, nil
}

// Fragment returns the object stored under key in a rendered fragment.
func Fragment(path string, data map[string]any, key string) (map[string]any, error) {
	raw, ok := data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q entry", ErrMalformedFragment, path, key)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s entry %q is %T, want an object", ErrMalformedFragment, path, key, raw)
	}
	return obj, nil
}
