package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/magnetsetup/internal/params"
	"github.com/vk/magnetsetup/internal/provider"
)

// DefaultSettingsFile is read when no settings file is given. It may be
// absent.
const DefaultSettingsFile = "settings.env"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Datafile and Magnet are mutually exclusive record sources.
	Datafile string
	Magnet   string
	WorkDir  string

	Method  string
	Time    string
	Geom    string
	Model   string
	Cooling string

	Nonlinear    bool
	DistanceUnit string

	SettingsPath string
	TemplateRepo string
	SetupPath    string
	APIURL       string

	LogFormat string
	LogLevel  string

	Constants params.Constants
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	switch {
	case cfg.Datafile == "" && cfg.Magnet == "":
		return nil, errors.New("one of datafile or magnet is required")
	case cfg.Datafile != "" && cfg.Magnet != "":
		return nil, errors.New("datafile and magnet are mutually exclusive")
	case cfg.Datafile != "" && !strings.HasSuffix(cfg.Datafile, provider.DataSuffix):
		return nil, fmt.Errorf("datafile %q must end with %s", cfg.Datafile, provider.DataSuffix)
	}
	if cfg.Constants == (params.Constants{}) {
		cfg.Constants = params.DefaultConstants()
	}
	return &cfg, nil
}

// WorkingDir returns the directory inputs are read from and outputs written
// to.
func (c *Config) WorkingDir() string {
	if c.WorkDir == "" {
		return "."
	}
	return c.WorkDir
}
