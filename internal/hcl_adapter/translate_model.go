package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/magnetsetup/internal/config"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Setups []*SetupBlock `hcl:"setup,block"`
	Remain hcl.Body      `hcl:",remain"`
}

// SetupBlock maps a `setup "<method>" "<time>" "<geom>" "<model>"` block.
type SetupBlock struct {
	Method string `hcl:"method,label"`
	Time   string `hcl:"time,label"`
	Geom   string `hcl:"geom,label"`
	Model  string `hcl:"model,label"`

	Cfg                string            `hcl:"cfg,optional"`
	ModelFile          string            `hcl:"model,optional"`
	ModelNonlinear     string            `hcl:"model_nonlinear,optional"`
	ConductorLinear    string            `hcl:"conductor_linear,optional"`
	ConductorNonlinear string            `hcl:"conductor_nonlinear,optional"`
	Insulator          string            `hcl:"insulator,optional"`
	Cooling            map[string]string `hcl:"cooling,optional"`
	CoolingPost        map[string]string `hcl:"cooling_post,optional"`
	StatsT             string            `hcl:"stats_T,optional"`
	StatsPower         string            `hcl:"stats_Power,optional"`
	Filename           map[string]string `hcl:"filename,optional"`
}

func (b *SetupBlock) key() config.Key {
	return config.Key{Method: b.Method, Time: b.Time, Geom: b.Geom, Model: b.Model}
}

func (b *SetupBlock) translate(source string) *config.Entry {
	return &config.Entry{
		Cfg:                b.Cfg,
		Model:              b.ModelFile,
		ModelNonlinear:     b.ModelNonlinear,
		ConductorLinear:    b.ConductorLinear,
		ConductorNonlinear: b.ConductorNonlinear,
		Insulator:          b.Insulator,
		Cooling:            b.Cooling,
		CoolingPost:        b.CoolingPost,
		StatsT:             b.StatsT,
		StatsPower:         b.StatsPower,
		Filename:           b.Filename,
		Source:             source,
	}
}
