package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/magnetsetup/internal/config"
	"github.com/vk/magnetsetup/internal/hcl_adapter"
	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/testutil"
)

func newFixtureResolver(t *testing.T) (*Resolver, string) {
	t.Helper()
	ctx, _ := testutil.Context(t)
	repo, setup := testutil.TemplateRepo(t)
	table, err := hcl_adapter.NewLoader().Load(ctx, setup)
	require.NoError(t, err)
	return NewResolver(repo, table), repo
}

func mustSel(t *testing.T, method, time, geom, model, cooling string) selector.Selector {
	t.Helper()
	sel, err := selector.Parse(method, time, geom, model, cooling)
	require.NoError(t, err)
	return sel
}

func TestResolve_AllRoles(t *testing.T) {
	// --- Arrange ---
	ctx, _ := testutil.Context(t)
	r, repo := newFixtureResolver(t)
	sel := mustSel(t, "cfpdes", "transient", "Axi", "thmagel", "grad")

	// --- Act ---
	set, err := r.Resolve(ctx, sel, true)

	// --- Assert ---
	require.NoError(t, err)
	dir := filepath.Join(repo, "cfpdes", "Axi", "thmagel")
	assert.Equal(t, dir, set.Dir)

	want := map[Role]string{
		RoleCfg:        testutil.CfgFile,
		RoleModel:      testutil.ModelFile,
		RoleConductor:  testutil.ConductorFile,
		RoleInsulator:  testutil.InsulatorFile,
		RoleCooling:    testutil.CoolingGradFile,
		RoleFlux:       testutil.FluxGradFile,
		RoleStatsT:     testutil.StatsTFile,
		RoleStatsPower: testutil.StatsPowerFile,
	}
	for role, name := range want {
		got, err := set.Path(role)
		require.NoError(t, err, role)
		assert.Equal(t, filepath.Join(dir, name), got, role)
	}
	assert.Equal(t, []string{"conductor", "insulator", "conductor-nosource"}, set.MaterialDefs)
	assert.Equal(t, map[string]string{
		"conductor": filepath.Join(dir, "conductor-def.json"),
		"insulator": filepath.Join(dir, "insulator-def.json"),
	}, set.Auxiliary)
}

func TestResolve_Nonlinear(t *testing.T) {
	ctx, _ := testutil.Context(t)
	r, _ := newFixtureResolver(t)

	set, err := r.Resolve(ctx, mustSel(t, "CG", "static", "3D", "thelec", "mean"), false)
	require.NoError(t, err)
	model, _ := set.Path(RoleModel)
	conductor, _ := set.Path(RoleConductor)
	assert.Equal(t, testutil.ModelNonlinearFile, filepath.Base(model))
	assert.Equal(t, testutil.ConductorNonlinearFile, filepath.Base(conductor))

	// Axi keeps the linear model template.
	set, err = r.Resolve(ctx, mustSel(t, "CG", "static", "Axi", "thelec", "mean"), false)
	require.NoError(t, err)
	model, _ = set.Path(RoleModel)
	assert.Equal(t, testutil.ModelFile, filepath.Base(model))
}

func TestResolve_MagneticHasNoCoolingRoles(t *testing.T) {
	ctx, _ := testutil.Context(t)
	r, _ := newFixtureResolver(t)

	set, err := r.Resolve(ctx, mustSel(t, "HDG", "static", "Axi", "mag", "mean"), true)

	require.NoError(t, err)
	for _, role := range []Role{RoleCooling, RoleFlux, RoleStatsT, RoleStatsPower} {
		_, err = set.Path(role)
		require.ErrorIs(t, err, ErrTemplateNotFound, role)
	}
}

func TestResolve_Failures(t *testing.T) {
	ctx, _ := testutil.Context(t)

	t.Run("missing combination", func(t *testing.T) {
		r := NewResolver(t.TempDir(), config.NewTable())
		_, err := r.Resolve(ctx, mustSel(t, "CRB", "static", "Axi", "mag", "mean"), true)
		require.ErrorIs(t, err, config.ErrMissingTemplateEntry)
	})

	t.Run("missing attribute", func(t *testing.T) {
		table := config.NewTable()
		require.NoError(t, table.Add(
			config.Key{Method: "CG", Time: "static", Geom: "Axi", Model: "mag"},
			&config.Entry{Cfg: "a.cfg", Model: "m.json", ConductorLinear: "c.json"},
		))
		_, err := NewResolver(t.TempDir(), table).Resolve(ctx, mustSel(t, "CG", "static", "Axi", "mag", "mean"), true)
		require.ErrorIs(t, err, config.ErrMissingTemplateEntry)
		assert.Contains(t, err.Error(), "insulator")
	})

	t.Run("unreadable file", func(t *testing.T) {
		r, repo := newFixtureResolver(t)
		require.NoError(t, os.Remove(filepath.Join(repo, "cfpdes", "3D", "thmag", testutil.StatsTFile)))
		_, err := r.Resolve(ctx, mustSel(t, "cfpdes", "static", "3D", "thmag", "mean"), true)
		require.ErrorIs(t, err, ErrTemplateNotFound)
		assert.Contains(t, err.Error(), "stats_T")
	})

	t.Run("invalid selector", func(t *testing.T) {
		r, _ := newFixtureResolver(t)
		sel := selector.Selector{Method: selector.CG, Time: selector.Static, Geometry: "2D", Model: selector.Magnetic, Cooling: selector.Mean}
		_, err := r.Resolve(ctx, sel, true)
		require.ErrorIs(t, err, selector.ErrUnsupportedGeometryClass)
	})
}

func TestNewSet(t *testing.T) {
	set := NewSet("/tpl", map[Role]string{RoleModel: "m.json"})

	got, err := set.Path(RoleModel)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tpl", "m.json"), got)
	assert.Empty(t, set.Auxiliary)

	_, err = set.Path(RoleFlux)
	require.ErrorIs(t, err, ErrTemplateNotFound)
}
