// Package policy maps a selector tuple to an explicit assembly policy: which
// boundary groups are emitted, which post-process subsections receive the
// statistics, and which optional template roles take part. The whole table
// is checked once at startup by ValidateAll, so call sites never branch on
// raw axis values.
package policy

import (
	"fmt"

	"github.com/vk/magnetsetup/internal/selector"
)

// Group names a boundary-condition section. The value is the binding name
// under which the section is handed to the model template.
type Group string

const (
	ThermalRobin        Group = "boundary_Therm_Robin"
	ThermalNeumann      Group = "boundary_Therm_Neu"
	ElectricDirichlet   Group = "boundary_Electric_Dir"
	ElectricNeumann     Group = "boundary_Electric_Neu"
	MechanicalDirichlet Group = "boundary_Meca_Dir"
	MagneticDirichlet   Group = "boundary_Maxwell_Dir"
)

// Post-process subsections of the model document.
const (
	SectionHeat        = "heat"
	SectionTemperature = "temperature"
	SectionElectric    = "electric"
	SectionMagnetic    = "magnetic"
)

// Policy is the resolved assembly plan for one selector.
type Policy struct {
	Selector selector.Selector
	// Groups lists the boundary sections emitted, in document order.
	Groups []Group
	// Cooling is true when cooling, flux and statistics templates take part.
	Cooling bool
	// HeatSection receives flux and mean temperature statistics.
	HeatSection string
	// PowerSection receives power statistics.
	PowerSection string
	// ElasticityFlags prepends the bool_laplace and bool_dilatation parameters.
	ElasticityFlags bool
	// MaterialDefs lists the generic material definition roles.
	MaterialDefs []string
}

// Includes reports whether g is emitted under this policy.
func (p Policy) Includes(g Group) bool {
	for _, x := range p.Groups {
		if x == g {
			return true
		}
	}
	return false
}

type modelRule struct {
	groups []Group
	// electric3D adds the electric Dirichlet and Neumann groups in 3D only.
	electric3D bool
	cooling    bool
}

var modelRules = map[selector.Model]modelRule{
	selector.ThermoElectric: {
		groups:     []Group{ThermalRobin, ThermalNeumann},
		electric3D: true,
		cooling:    true,
	},
	selector.Magnetic: {
		groups: []Group{MagneticDirichlet},
	},
	selector.ThermoMagnetic: {
		groups:     []Group{MagneticDirichlet, ThermalRobin, ThermalNeumann},
		electric3D: true,
		cooling:    true,
	},
	selector.ThermoMagnetoElastic: {
		groups:  []Group{MagneticDirichlet, ThermalRobin, ThermalNeumann, ElectricDirichlet, ElectricNeumann, MechanicalDirichlet},
		cooling: true,
	},
}

var heatSections = map[selector.Method]string{
	selector.CFPDES: SectionHeat,
	selector.CG:     SectionTemperature,
	selector.HDG:    SectionTemperature,
	selector.CRB:    SectionTemperature,
}

type elasticityKey struct {
	method selector.Method
	model  selector.Model
}

var elasticityFlags = map[elasticityKey]bool{
	{selector.CFPDES, selector.ThermoMagnetoElastic}: true,
}

// For resolves the policy of a selector.
func For(sel selector.Selector) (Policy, error) {
	if err := sel.Validate(); err != nil {
		return Policy{}, err
	}
	rule, ok := modelRules[sel.Model]
	if !ok {
		return Policy{}, fmt.Errorf("%w: no policy for %q", selector.ErrUnsupportedPhysicsModel, sel.Model)
	}
	heat, ok := heatSections[sel.Method]
	if !ok {
		return Policy{}, fmt.Errorf("%w: no post-process section for method %q", selector.ErrUnsupportedValue, sel.Method)
	}

	p := Policy{
		Selector:        sel,
		Groups:          append([]Group(nil), rule.groups...),
		Cooling:         rule.cooling,
		ElasticityFlags: elasticityFlags[elasticityKey{sel.Method, sel.Model}],
		MaterialDefs:    []string{"conductor", "insulator"},
	}
	if rule.electric3D && sel.Geometry == selector.ThreeD {
		p.Groups = append(p.Groups, ElectricDirichlet, ElectricNeumann)
	}
	if sel.Time == selector.Transient {
		p.MaterialDefs = append(p.MaterialDefs, "conductor-nosource")
	}
	if p.Cooling {
		p.HeatSection = heat
		p.PowerSection = powerSection(sel, heat)
	}
	return p, nil
}

func powerSection(sel selector.Selector, heat string) string {
	switch {
	case sel.Geometry == selector.ThreeD:
		return SectionElectric
	case sel.Model == selector.ThermoElectric:
		return heat
	default:
		return SectionMagnetic
	}
}

// ValidateAll resolves the policy of every selector and checks the table is
// total and self-consistent.
func ValidateAll() error {
	for _, sel := range selector.All() {
		p, err := For(sel)
		if err != nil {
			return fmt.Errorf("policy table incomplete for %s: %w", sel, err)
		}
		if len(p.Groups) == 0 {
			return fmt.Errorf("policy for %s emits no boundary group", sel)
		}
		seen := make(map[Group]bool, len(p.Groups))
		for _, g := range p.Groups {
			if seen[g] {
				return fmt.Errorf("policy for %s emits group %s twice", sel, g)
			}
			seen[g] = true
		}
		if p.Cooling && (p.HeatSection == "" || p.PowerSection == "") {
			return fmt.Errorf("policy for %s has no post-process section", sel)
		}
		if p.Cooling != p.Includes(ThermalRobin) {
			return fmt.Errorf("policy for %s: cooling templates and Robin group disagree", sel)
		}
	}
	return nil
}
