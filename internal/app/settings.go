package app

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
	"github.com/vk/magnetsetup/internal/params"
)

// Settings keys, read from the settings file or the environment.
const (
	keyURLAPI       = "URL_API"
	keyTemplateRepo = "TEMPLATE_REPO"
	keySetupPath    = "SETUP_PATH"
	keyTinit        = "TINIT"
	keyTw           = "TW"
	keyDTw          = "DTW"
	keyHConv        = "HCONV"
)

// Settings are the site-wide defaults of a run.
type Settings struct {
	APIURL       string
	TemplateRepo string
	SetupPath    string
	Constants    params.Constants
}

// LoadSettings reads a dotenv settings file. Environment variables override
// file values. When path is empty DefaultSettingsFile is tried and may be
// missing.
func LoadSettings(path string) (Settings, error) {
	def := params.DefaultConstants()

	v := viper.New()
	v.SetDefault(keyTinit, def.Tinit)
	v.SetDefault(keyTw, def.Tw)
	v.SetDefault(keyDTw, def.DTw)
	v.SetDefault(keyHConv, def.H)
	for _, k := range []string{keyURLAPI, keyTemplateRepo, keySetupPath} {
		v.SetDefault(k, "")
	}
	v.AutomaticEnv()

	optional := path == ""
	if optional {
		path = DefaultSettingsFile
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	c := def
	c.Tinit = v.GetFloat64(keyTinit)
	c.Tw = v.GetFloat64(keyTw)
	c.DTw = v.GetFloat64(keyDTw)
	c.H = v.GetFloat64(keyHConv)

	return Settings{
		APIURL:       v.GetString(keyURLAPI),
		TemplateRepo: v.GetString(keyTemplateRepo),
		SetupPath:    v.GetString(keySetupPath),
		Constants:    c,
	}, nil
}

// Apply fills the fields of cfg not set on the command line. The setup table
// defaults to the template repository.
func (s Settings) Apply(cfg *Config) error {
	if cfg.APIURL == "" {
		cfg.APIURL = s.APIURL
	}
	if cfg.TemplateRepo == "" {
		cfg.TemplateRepo = s.TemplateRepo
	}
	if cfg.SetupPath == "" {
		cfg.SetupPath = s.SetupPath
	}
	if cfg.SetupPath == "" {
		cfg.SetupPath = cfg.TemplateRepo
	}
	cfg.Constants = s.Constants

	if cfg.TemplateRepo == "" {
		return fmt.Errorf("template repository not set: use --template-repo or %s", keyTemplateRepo)
	}
	if cfg.Magnet != "" && cfg.APIURL == "" {
		return fmt.Errorf("magnet database URL not set: use --api-url or %s", keyURLAPI)
	}
	return nil
}
