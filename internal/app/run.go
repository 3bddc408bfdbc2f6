package app

import (
	"context"
	"fmt"

	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/document"
	"github.com/vk/magnetsetup/internal/engine"
	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/templates"
	"github.com/vk/magnetsetup/internal/units"
)

// Run executes one assembly based on the App configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	cfg := a.config

	sel, err := selector.Parse(cfg.Method, cfg.Time, cfg.Geom, cfg.Model, cfg.Cooling)
	if err != nil {
		return err
	}
	length, err := units.ParseLength(cfg.DistanceUnit)
	if err != nil {
		return err
	}
	linear := !cfg.Nonlinear

	set, err := templates.NewResolver(cfg.TemplateRepo, a.table).Resolve(ctx, sel, linear)
	if err != nil {
		return err
	}
	data, in, err := a.loadMagnet(ctx)
	if err != nil {
		return err
	}

	res, err := engine.Assemble(ctx, engine.Input{
		Selector:  sel,
		Linear:    linear,
		Length:    length,
		Constants: cfg.Constants,
		Insert:    in,
		Data:      data,
		Templates: set,
		Base:      a.baseName(),
	})
	if err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}

	outputs, err := res.Outputs()
	if err != nil {
		return err
	}
	if err := document.WriteOutputs(ctx, cfg.WorkingDir(), outputs); err != nil {
		return err
	}
	a.logger.Info("Model files created.", "json", res.Names.JSON, "cfg", res.Names.Cfg)

	printSummary(a.outW, res, set)
	if sel.Method == selector.CFPDES && sel.Geometry == selector.Axi {
		printGuidelines(a.outW, guidelineInput{
			WorkDir:  cfg.WorkDir,
			Geometry: data.Geom,
			Insert:   in.Name,
			Cfg:      res.Names.Cfg,
		})
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
