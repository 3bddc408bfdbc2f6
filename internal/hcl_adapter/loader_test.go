package hcl_adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/magnetsetup/internal/config"
	"github.com/vk/magnetsetup/internal/testutil"
)

func TestLoader_Load(t *testing.T) {
	// --- Arrange ---
	ctx, _ := testutil.Context(t)
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"a/axi.hcl": `
setup "cfpdes" "static" "Axi" "thmagel" {
  cfg                 = "cfpdes-thmagel-Axi.cfg"
  model               = "cfpdes-thmagel-Axi.json"
  conductor_linear    = "conductor.json"
  conductor_nonlinear = "conductor-nonlinear.json"
  insulator           = "insulator.json"
  cooling      = { mean = "cooling.json", grad = "cooling-grad.json" }
  cooling_post = { mean = "flux.json", grad = "flux-grad.json" }
  stats_T      = "stats_T.json"
  stats_Power  = "stats_Power.json"
}
`,
		"b/nested/mag.hcl": `
setup "CG" "static" "3D" "mag" {
  cfg             = "CG-mag-3D.cfg"
  model           = "CG-mag-3D.json"
  model_nonlinear = "CG-mag-3D-nonlinear.json"
  insulator       = "insulator.json"
}
`,
		"ignored.txt": "not hcl",
	})

	// --- Act ---
	table, err := NewLoader().Load(ctx, root)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	e, err := table.Lookup(config.Key{Method: "cfpdes", Time: "static", Geom: "Axi", Model: "thmagel"})
	require.NoError(t, err)
	assert.Equal(t, "cfpdes-thmagel-Axi.json", e.Model)
	assert.Equal(t, map[string]string{"mean": "flux.json", "grad": "flux-grad.json"}, e.CoolingPost)
	assert.Equal(t, filepath.Join(root, "a", "axi.hcl"), e.Source)

	e, err = table.Lookup(config.Key{Method: "CG", Time: "static", Geom: "3D", Model: "mag"})
	require.NoError(t, err)
	assert.Equal(t, "CG-mag-3D-nonlinear.json", e.ModelNonlinear)
	assert.Empty(t, e.ConductorLinear)
	assert.Nil(t, e.Cooling)
}

func TestLoader_Errors(t *testing.T) {
	ctx, _ := testutil.Context(t)

	t.Run("no files", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, t.TempDir())
		require.ErrorIs(t, err, config.ErrMissingTemplateEntry)
	})

	t.Run("duplicate setup", func(t *testing.T) {
		root := t.TempDir()
		block := `setup "CG" "static" "Axi" "mag" { cfg = "a.cfg" }` + "\n"
		testutil.WriteFiles(t, root, map[string]string{"one.hcl": block, "two.hcl": block})
		_, err := NewLoader().Load(ctx, root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "defined twice")
	})

	t.Run("syntax error", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFiles(t, root, map[string]string{"bad.hcl": `setup "CG" {`})
		_, err := NewLoader().Load(ctx, root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse HCL file")
	})
}

func TestLoader_FixtureTable(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, setup := testutil.TemplateRepo(t)

	table, err := NewLoader().Load(ctx, setup)

	require.NoError(t, err)
	assert.Equal(t, 4*2*2*4, table.Len())
}
