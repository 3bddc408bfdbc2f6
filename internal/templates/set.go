// Package templates locates the template files of a run and renders them
// into document fragments.
package templates

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/magnetsetup/internal/config"
	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/fsutil"
	"github.com/vk/magnetsetup/internal/policy"
	"github.com/vk/magnetsetup/internal/selector"
)

// ErrTemplateNotFound is returned when a resolved template file is not
// readable.
var ErrTemplateNotFound = errors.New("template not found")

// Role is the logical purpose of a template file.
type Role string

const (
	RoleCfg        Role = "cfg"
	RoleModel      Role = "model"
	RoleConductor  Role = "conductor"
	RoleInsulator  Role = "insulator"
	RoleCooling    Role = "cooling"
	RoleFlux       Role = "flux"
	RoleStatsT     Role = "stats_T"
	RoleStatsPower Role = "stats_Power"
)

var roleOrder = []Role{RoleCfg, RoleModel, RoleConductor, RoleInsulator, RoleCooling, RoleFlux, RoleStatsT, RoleStatsPower}

// Set maps roles to resolved template paths.
type Set struct {
	// Dir is <repo>/<method>/<geom>/<model>.
	Dir   string
	paths map[Role]string
	// MaterialDefs lists the generic material definitions of the run.
	MaterialDefs []string
	// Auxiliary maps a material definition to the file shipped for it, when
	// the setup table names one. These files are not read.
	Auxiliary map[string]string
}

// NewSet returns a Set binding each role to a file below dir. Files are not
// probed.
func NewSet(dir string, files map[Role]string) *Set {
	s := &Set{Dir: dir, paths: make(map[Role]string, len(files)), Auxiliary: map[string]string{}}
	for role, name := range files {
		s.paths[role] = filepath.Join(dir, name)
	}
	return s
}

// Path returns the path bound to role.
func (s *Set) Path(role Role) (string, error) {
	p, ok := s.paths[role]
	if !ok {
		return "", fmt.Errorf("%w: no %s template in this setup", ErrTemplateNotFound, role)
	}
	return p, nil
}

// Resolver builds template sets from the setup table.
type Resolver struct {
	repo  string
	table *config.Table
}

// NewResolver returns a Resolver reading templates below repo.
func NewResolver(repo string, table *config.Table) *Resolver {
	return &Resolver{repo: repo, table: table}
}

// Resolve locates every template required by sel and probes each for
// readability. When linear is false the nonlinear conductor is used, and in
// 3D the nonlinear model as well.
func (r *Resolver) Resolve(ctx context.Context, sel selector.Selector, linear bool) (*Set, error) {
	logger := ctxlog.FromContext(ctx)

	pol, err := policy.For(sel)
	if err != nil {
		return nil, err
	}
	entry, err := r.table.Lookup(config.Key{
		Method: string(sel.Method),
		Time:   string(sel.Time),
		Geom:   string(sel.Geometry),
		Model:  string(sel.Model),
	})
	if err != nil {
		return nil, err
	}

	names := make(map[Role]string)
	required := []struct {
		role  Role
		attr  string
		value string
	}{
		{RoleCfg, "cfg", entry.Cfg},
		{RoleModel, "model", entry.Model},
		{RoleConductor, "conductor_linear", entry.ConductorLinear},
		{RoleInsulator, "insulator", entry.Insulator},
	}
	if !linear {
		required[2].attr, required[2].value = "conductor_nonlinear", entry.ConductorNonlinear
		if sel.Geometry == selector.ThreeD {
			required[1].attr, required[1].value = "model_nonlinear", entry.ModelNonlinear
		}
	}
	for _, req := range required {
		if names[req.role], err = entry.Require(req.attr, req.value); err != nil {
			return nil, err
		}
	}

	if pol.Cooling {
		cooling := string(sel.Cooling)
		if names[RoleCooling], err = entry.RequireKeyed("cooling", entry.Cooling, cooling); err != nil {
			return nil, err
		}
		if names[RoleFlux], err = entry.RequireKeyed("cooling_post", entry.CoolingPost, cooling); err != nil {
			return nil, err
		}
		if names[RoleStatsT], err = entry.Require("stats_T", entry.StatsT); err != nil {
			return nil, err
		}
		if names[RoleStatsPower], err = entry.Require("stats_Power", entry.StatsPower); err != nil {
			return nil, err
		}
	}

	set := NewSet(filepath.Join(r.repo, string(sel.Method), string(sel.Geometry), string(sel.Model)), names)
	set.MaterialDefs = pol.MaterialDefs
	for _, role := range roleOrder {
		path, ok := set.paths[role]
		if !ok {
			continue
		}
		if err := fsutil.CheckReadable(path); err != nil {
			return nil, fmt.Errorf("%w: %s template %s: %v", ErrTemplateNotFound, role, path, err)
		}
	}
	for _, def := range pol.MaterialDefs {
		if name, ok := entry.Filename[def]; ok {
			set.Auxiliary[def] = filepath.Join(set.Dir, name)
		}
	}

	logger.Debug("Templates resolved.", "selector", sel.String(), "linear", linear, "dir", set.Dir, "roles", len(set.paths))
	return set, nil
}
