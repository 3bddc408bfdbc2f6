package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/document"
	"github.com/vk/magnetsetup/internal/model"
	"github.com/vk/magnetsetup/internal/provider"
)

// recordProvider returns the provider serving the magnet record of the run
// and the record name.
func (a *App) recordProvider() (provider.Provider, string) {
	if a.config.Datafile != "" {
		path := a.path(a.config.Datafile)
		name := strings.TrimSuffix(filepath.Base(path), provider.DataSuffix)
		return provider.NewDirectory(filepath.Dir(path)), name
	}
	return provider.NewHTTP(a.config.APIURL, nil), a.config.Magnet
}

// loadMagnet fetches the magnet record and its Insert geometry.
func (a *App) loadMagnet(ctx context.Context) (*model.MagnetData, *model.Insert, error) {
	logger := ctxlog.FromContext(ctx)

	p, name := a.recordProvider()
	rec, err := p.Lookup(ctx, provider.KindMagnet, name)
	if err != nil {
		return nil, nil, err
	}
	data, err := model.DecodeMagnetData(rec)
	if err != nil {
		return nil, nil, err
	}
	if data.Geom == "" {
		return nil, nil, fmt.Errorf("%w: magnet record %s names no geometry file", model.ErrInvalidGeometry, name)
	}

	in, err := model.LoadInsert(a.path(data.Geom))
	if err != nil {
		return nil, nil, err
	}
	if err := data.Check(in); err != nil {
		return nil, nil, err
	}
	logger.Info("Magnet loaded.", "record", name, "geometry", data.Geom, "insert", in.Name)
	return data, in, nil
}

// path resolves p against the working directory.
func (a *App) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.config.WorkingDir(), p)
}

// baseName returns the output base of the run.
func (a *App) baseName() string {
	return document.BaseName(a.config.Datafile, a.config.Magnet)
}
