package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/magnetsetup/internal/config"
	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/policy"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	table  *config.Table
}

// NewApp is the constructor for the main application. It applies the
// settings, loads the setup table and returns a ready App with its own
// isolated logger. logW receives logs, outW the user-facing summary.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// An incomplete policy table is a programmer error, so we panic.
	if err := policy.ValidateAll(); err != nil {
		panic(err)
	}

	settings, err := LoadSettings(cfg.SettingsPath)
	if err != nil {
		return nil, err
	}
	if err := settings.Apply(cfg); err != nil {
		return nil, err
	}
	logger.Debug("Settings applied.", "template_repo", cfg.TemplateRepo, "setup_path", cfg.SetupPath, "api_url", cfg.APIURL)

	table, err := loader.Load(ctx, cfg.SetupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load setup table: %w", err)
	}
	logger.Debug("Setup table loaded.", "entries", table.Len())

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		table:  table,
	}, nil
}
