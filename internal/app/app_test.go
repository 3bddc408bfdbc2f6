package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/magnetsetup/internal/document"
	"github.com/vk/magnetsetup/internal/params"
	"github.com/vk/magnetsetup/internal/testutil"
)

// workspace writes a geometry and its data file into a fresh working
// directory.
func workspace(t *testing.T) string {
	t.Helper()
	wd := t.TempDir()
	testutil.WriteFiles(t, wd, map[string]string{
		"HL-test.yaml":      testutil.InsertYAML(testutil.InsertOptions{Sections: []int{2, 3}, Rings: 1}),
		"HL-test-data.json": testutil.MagnetDataJSON("HL-test.yaml", 2, 1, 0),
	})
	return wd
}

func baseConfig(t *testing.T, wd string) *Config {
	t.Helper()
	repo, setup := testutil.TemplateRepo(t)
	cfg, err := NewConfig(Config{
		Datafile:     "HL-test-data.json",
		WorkDir:      wd,
		Method:       "cfpdes",
		Time:         "static",
		Geom:         "Axi",
		Model:        "thelec",
		Cooling:      "mean",
		DistanceUnit: "meter",
		SettingsPath: filepath.Join(t.TempDir(), "settings.env"),
		TemplateRepo: repo,
		SetupPath:    setup,
	})
	require.NoError(t, err)
	testutil.WriteFiles(t, filepath.Dir(cfg.SettingsPath), map[string]string{"settings.env": "TW=291.5\n"})
	return cfg
}

func TestRun_Datafile(t *testing.T) {
	// --- Arrange ---
	wd := workspace(t)
	a, out, logs := SetupAppTest(t, baseConfig(t, wd))

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	raw, err := os.ReadFile(filepath.Join(wd, "HL-test-cfpdes-thelec-Axi-sim.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 291.5, doc["Parameters"].(map[string]any)["Tw"])

	cfg, err := os.ReadFile(filepath.Join(wd, "HL-test-cfpdes-thelec-Axi-sim.cfg"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "mesh.filename=$cfgdir/HL-test.med")

	assert.Contains(t, out.String(), "=== Guidelines for running a simulation (cfpdes/Axi) ===")
	assert.Contains(t, out.String(), "Material definition conductor:")
	testutil.AssertLogged(t, logs, "Model files created.")
	testutil.AssertLogged(t, logs, "run_id=")
}

func TestRun_GeometryResolvedAgainstWorkDir(t *testing.T) {
	// --- Arrange ---
	// The data file lives in records/ while the geometry it names sits at
	// the working directory root.
	wd := t.TempDir()
	testutil.WriteFiles(t, wd, map[string]string{
		"HL-test.yaml":              testutil.InsertYAML(testutil.InsertOptions{Sections: []int{2, 3}, Rings: 1}),
		"records/HL-test-data.json": testutil.MagnetDataJSON("HL-test.yaml", 2, 1, 0),
	})
	cfg := baseConfig(t, wd)
	cfg.Datafile = filepath.Join("records", "HL-test-data.json")
	a, _, logs := SetupAppTest(t, cfg)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(wd, "HL-test-cfpdes-thelec-Axi-sim.json"))
	require.NoError(t, err)
	testutil.AssertLogged(t, logs, "Magnet loaded.")
}

func TestRun_OutputsExist(t *testing.T) {
	wd := workspace(t)
	testutil.WriteFiles(t, wd, map[string]string{"HL-test-cfpdes-thelec-Axi-sim.json": "{}"})
	a, _, _ := SetupAppTest(t, baseConfig(t, wd))

	err := a.Run(context.Background())

	require.ErrorIs(t, err, document.ErrOutputExists)
	_, statErr := os.Stat(filepath.Join(wd, "HL-test-cfpdes-thelec-Axi-sim.cfg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_Magnet(t *testing.T) {
	// --- Arrange ---
	wd := workspace(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/magnet/mdata/M1", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewEncoder(w).Encode(testutil.MagnetData("HL-test.yaml", 2, 1, 0)))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := baseConfig(t, wd)
	cfg.Datafile, cfg.Magnet, cfg.APIURL = "", "M1", srv.URL
	cfg.Method, cfg.Model = "CG", "mag"
	a, out, _ := SetupAppTest(t, cfg)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(wd, "M1-CG-mag-Axi-sim.json"))
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Guidelines")
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)

	_, err = NewConfig(Config{Datafile: "a", Magnet: "b"})
	require.ErrorContains(t, err, "mutually exclusive")

	cfg, err := NewConfig(Config{Magnet: "b"})
	require.NoError(t, err)
	assert.Equal(t, params.DefaultConstants(), cfg.Constants)
	assert.Equal(t, ".", cfg.WorkingDir())
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"site.env": "URL_API=http://db.local\nTEMPLATE_REPO=/srv/templates\nHCONV=60000\n"})
	t.Setenv("TEMPLATE_REPO", "/env/templates")

	s, err := LoadSettings(filepath.Join(dir, "site.env"))

	require.NoError(t, err)
	assert.Equal(t, "http://db.local", s.APIURL)
	assert.Equal(t, "/env/templates", s.TemplateRepo)
	assert.Equal(t, 60000.0, s.Constants.H)
	assert.Equal(t, params.DefaultConstants().Tinit, s.Constants.Tinit)

	_, err = LoadSettings(filepath.Join(dir, "missing.env"))
	require.Error(t, err)
}

func TestSettings_Apply(t *testing.T) {
	s := Settings{TemplateRepo: "/srv/t", APIURL: "http://db", Constants: params.DefaultConstants()}
	cfg := &Config{Magnet: "M1", TemplateRepo: "/cli/t"}

	require.NoError(t, s.Apply(cfg))

	assert.Equal(t, "/cli/t", cfg.TemplateRepo)
	assert.Equal(t, "/cli/t", cfg.SetupPath)
	assert.Equal(t, "http://db", cfg.APIURL)

	require.Error(t, Settings{}.Apply(&Config{Datafile: "x"}))
	require.Error(t, Settings{TemplateRepo: "/t"}.Apply(&Config{Magnet: "M1"}))
}

func TestNewConfig_DataSuffix(t *testing.T) {
	_, err := NewConfig(Config{Datafile: "HL-34.json"})

	require.ErrorContains(t, err, "-data.json")
}
