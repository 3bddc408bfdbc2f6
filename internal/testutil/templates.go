package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vk/magnetsetup/internal/policy"
	"github.com/vk/magnetsetup/internal/selector"
)

// Template file names used by the fixture setup table.
const (
	CfgFile                = "model.cfg"
	ModelFile              = "model.json"
	ModelNonlinearFile     = "model-nonlinear.json"
	ConductorFile          = "conductor.json"
	ConductorNonlinearFile = "conductor-nonlinear.json"
	InsulatorFile          = "insulator.json"
	CoolingMeanFile        = "cooling-mean.json"
	CoolingGradFile        = "cooling-grad.json"
	FluxMeanFile           = "flux-mean.json"
	FluxGradFile           = "flux-grad.json"
	StatsTFile             = "stats_T.json"
	StatsPowerFile         = "stats_Power.json"
)

const cfgTemplate = `directory=${name}/${method}/${model}/${geom}
case.dimension=${dim}
case.discretization=${method}

[${method}]
filename=$cfgdir/${jsonfile}
mesh.filename=$cfgdir/${mesh}
mesh.scale=${scale}
%{ if linear != "" ~}
solver=${linear}
%{ endif ~}
partition=${partition}
time=${time}
`

const conductorAxi = `{
  "${name}": {
    "k": "${ThermalConductivity}",
    "sigma": "${ElectricalConductivity}",
    "rho": ${jsonencode(VolumicMass)},
    "E": ${jsonencode(Young)},
  },
}
`

const conductor3D = `{
  "${name}": {
    "markers": ${jsonencode(marker)},
    "k": "${ThermalConductivity}",
    "sigma": "${ElectricalConductivity}",
    "rho": ${jsonencode(VolumicMass)},
    "E": ${jsonencode(Young)},
  },
}
`

const conductorNonlinear = `{
  "${name}": {
    "k": "${ThermalConductivity}",
    "sigma": "${ElectricalConductivity}/(1+0.0036*(heat_T-293)):heat_T",
    "Rpe": ${jsonencode(Rpe)},
  },
}
`

const insulatorAxi = `{
  "${name}": {
    "k": "${ThermalConductivity}",
    "sigma": "0",
  },
}
`

const insulator3D = `{
  "${name}": {
    "markers": ${jsonencode(marker)},
    "k": "${ThermalConductivity}",
  },
}
`

const coolingMean = `{
  "Channel${i}": {
    "expr1": "h${i}:h${i}",
    "expr2": "h${i}*Tw${i}:h${i}:Tw${i}",
  },
}
`

const coolingGrad = `{
  "Channel${i}": {
    "expr1": "h${i}:h${i}",
    "expr2": "h${i}*(Tw${i}+dTw${i}*(z-Zmin${i})/(Zmax${i}-Zmin${i})):h${i}:Tw${i}:dTw${i}:z:Zmin${i}:Zmax${i}",
  },
}
`

const fluxTemplate = `{
  "Flux": {
    "Flux_Channel": {
      "type": "flux",
      "field": "heat.temperature",
      "markers": { "name": "Channel%1%", "index1": "${index_h}" },
    },
  },
}
`

const statsTAxi = `{
  "Stats_T": {
%{ for s in meanT_H ~}
    "${s.header}": {
      "type": ["min", "max", "mean"],
      "field": "heat.temperature",
      "markers": { "name": "${s.name}", "index1": ${jsonencode(s.index)} },
    },
%{ endfor ~}
  },
}
`

const statsT3D = `{
  "Stats_T": {
%{ for s in meanT_H ~}
    "${s.header}": {
      "type": ["min", "max", "mean"],
      "field": "heat.temperature",
      "markers": "${s.name}",
    },
%{ endfor ~}
  },
}
`

const statsPowerAxi = `{
  "Stats_Power": {
%{ for s in Power_H ~}
    "${s.header}": {
      "type": "integrate",
      "expr": "2*pi*x*materials_sigma*(heat_U/2/pi)^2/(x*x)",
      "markers": { "name": "${s.name}", "index1": ${jsonencode(s.index)} },
    },
%{ endfor ~}
  },
}
`

const statsPower3D = `{
  "Stats_Power": {
%{ for s in Power_H ~}
    "${s.header}": {
      "type": "integrate",
      "expr": "materials_sigma*electric_grad_V*trans(electric_grad_V)",
      "markers": "${s.name}",
    },
%{ endfor ~}
  },
}
`

// boundaryLayout places each boundary group in the BoundaryConditions
// section of the fixture model template.
var boundaryLayout = map[policy.Group][2]string{
	policy.ThermalRobin:        {"heat", "Robin"},
	policy.ThermalNeumann:      {"heat", "Neumann"},
	policy.ElectricDirichlet:   {"electric", "Dirichlet"},
	policy.ElectricNeumann:     {"electric", "Neumann"},
	policy.MechanicalDirichlet: {"elastic", "Dirichlet"},
	policy.MagneticDirichlet:   {"magnetic", "Dirichlet"},
}

// ModelTemplate builds a model template referencing exactly the bindings
// the policy of sel provides.
func ModelTemplate(sel selector.Selector) string {
	pol, err := policy.For(sel)
	if err != nil {
		panic(err)
	}

	var b strings.Builder
	b.WriteString(`{
  "Name": "magnet",
  "ShortName": "magnet",
  "Parameters": {
%{ for p in Parameters ~}
    "${p.name}": ${jsonencode(p.value)},
%{ endfor ~}
  },
  "Models": {
    "heat": { "materials": ${jsonencode(part_thermic)} },
    "electric": {
      "materials": ${jsonencode(part_electric)},
      "sections": ${jsonencode(index_electric)},
`)
	if pol.Includes(policy.ElectricDirichlet) {
		b.WriteString(`      "potentials": {
%{ for v in index_V0 ~}
        "${v[0]}": { "marker": "${v[1]}", "expr": "${v[2]}" },
%{ endfor ~}
      },
`)
	}
	b.WriteString(`    },
  },
  "Materials": {},
  "InitialConditions": {
    "temperature": "${temperature_initfile}",
    "potential": "${V_initfile}",
  },
  "BoundaryConditions": {
`)
	var physics []string
	byPhysics := map[string][]policy.Group{}
	for _, g := range pol.Groups {
		ph := boundaryLayout[g][0]
		if _, ok := byPhysics[ph]; !ok {
			physics = append(physics, ph)
		}
		byPhysics[ph] = append(byPhysics[ph], g)
	}
	for _, ph := range physics {
		fmt.Fprintf(&b, "    %q: {\n", ph)
		for _, g := range byPhysics[ph] {
			fmt.Fprintf(&b, `      %q: {
%%{ for bc in %s ~}
        "${bc.name}": ${jsonencode(bc)},
%%{ endfor ~}
      },
`, boundaryLayout[g][1], g)
		}
		b.WriteString("    },\n")
	}
	b.WriteString(`  },
  "PostProcess": {
`)
	if pol.Cooling {
		fmt.Fprintf(&b, `    %q: { "Exports": { "fields": ["temperature"] } },
`, pol.HeatSection)
	} else {
		b.WriteString(`    "magnetic": { "Exports": { "fields": ["magnetic_potential"] } },
`)
	}
	b.WriteString(`  },
}
`)
	return b.String()
}

// SetupHCL returns a setup table covering every selector.
func SetupHCL() string {
	var b strings.Builder
	for _, m := range selector.Methods {
		for _, tm := range selector.Times {
			for _, g := range selector.Geometries {
				for _, md := range selector.Models {
					fmt.Fprintf(&b, "setup %q %q %q %q {\n", m, tm, g, md)
					fmt.Fprintf(&b, "  cfg                 = %q\n", CfgFile)
					fmt.Fprintf(&b, "  model               = %q\n", ModelFile)
					if g == selector.ThreeD {
						fmt.Fprintf(&b, "  model_nonlinear     = %q\n", ModelNonlinearFile)
					}
					fmt.Fprintf(&b, "  conductor_linear    = %q\n", ConductorFile)
					fmt.Fprintf(&b, "  conductor_nonlinear = %q\n", ConductorNonlinearFile)
					fmt.Fprintf(&b, "  insulator           = %q\n", InsulatorFile)
					if md != selector.Magnetic {
						fmt.Fprintf(&b, "  cooling      = { mean = %q, grad = %q }\n", CoolingMeanFile, CoolingGradFile)
						fmt.Fprintf(&b, "  cooling_post = { mean = %q, grad = %q }\n", FluxMeanFile, FluxGradFile)
						fmt.Fprintf(&b, "  stats_T      = %q\n", StatsTFile)
						fmt.Fprintf(&b, "  stats_Power  = %q\n", StatsPowerFile)
					}
					b.WriteString("  filename = { conductor = \"conductor-def.json\", insulator = \"insulator-def.json\" }\n")
					b.WriteString("}\n\n")
				}
			}
		}
	}
	return b.String()
}

// TemplateRepo writes a template repository covering every selector and
// its setup table into a temporary directory. It returns the repository and
// setup directories.
func TemplateRepo(t *testing.T) (repo, setup string) {
	t.Helper()

	root := t.TempDir()
	repo = filepath.Join(root, "templates")
	setup = filepath.Join(root, "setup")

	files := map[string]string{}
	for _, m := range selector.Methods {
		for _, g := range selector.Geometries {
			for _, md := range selector.Models {
				dir := fmt.Sprintf("%s/%s/%s/", m, g, md)
				sel := selector.Selector{Method: m, Time: selector.Static, Geometry: g, Model: md, Cooling: selector.Mean}
				for name, content := range templatesFor(sel) {
					files[dir+name] = content
				}
			}
		}
	}
	WriteFiles(t, repo, files)
	WriteFiles(t, setup, map[string]string{"setup.hcl": SetupHCL()})
	return repo, setup
}

func templatesFor(sel selector.Selector) map[string]string {
	files := map[string]string{
		CfgFile:                cfgTemplate,
		ModelFile:              ModelTemplate(sel),
		ConductorNonlinearFile: conductorNonlinear,
		CoolingMeanFile:        coolingMean,
		CoolingGradFile:        coolingGrad,
		FluxMeanFile:           fluxTemplate,
		FluxGradFile:           fluxTemplate,
	}
	if sel.Geometry == selector.ThreeD {
		files[ModelNonlinearFile] = ModelTemplate(sel)
		files[ConductorFile] = conductor3D
		files[InsulatorFile] = insulator3D
		files[StatsTFile] = statsT3D
		files[StatsPowerFile] = statsPower3D
	} else {
		files[ConductorFile] = conductorAxi
		files[InsulatorFile] = insulatorAxi
		files[StatsTFile] = statsTAxi
		files[StatsPowerFile] = statsPowerAxi
	}
	return files
}
