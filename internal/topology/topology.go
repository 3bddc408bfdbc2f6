// Package topology enumerates the parts, section indices and boundary names
// of an Insert, following the axisymmetric or 3D naming conventions the
// solver expects.
package topology

import (
	"fmt"

	"github.com/vk/magnetsetup/internal/model"
	"github.com/vk/magnetsetup/internal/selector"
)

// Lead part names.
const (
	InnerLead = "iL1"
	OuterLead = "oL2"
)

// Topology is the enumeration result for one geometry.
type Topology struct {
	Geometry selector.Geometry
	Registry *model.PartRegistry
	// Sections lists the conducting (helix, section) pairs. Axi only.
	Sections []model.SectionIndex
	// HelixRanges holds the "0:{sections+2}" index range of each helix. Axi only.
	HelixRanges []string
	// Insulators lists the insulating sub-parts of 3D helices.
	Insulators []model.InsulatorPart
	Boundaries model.BoundaryGroups
	HasLeads   bool
	NHelices   int
	NRings     int
	NChannels  int
}

// HelixPart returns the electric part name of helix i (1-based).
func HelixPart(i int) string { return fmt.Sprintf("H%d_Cu", i) }

// SectionPart returns the Axi part name of section j of helix i.
func SectionPart(i, j int) string { return fmt.Sprintf("H%d_Cu%d", i, j) }

// RingPart returns the part name of ring i (1-based).
func RingPart(i int) string { return fmt.Sprintf("R%d", i) }

// Enumerate walks the geometry and produces parts and boundary groups.
func Enumerate(sel selector.Selector, in *model.Insert) (*Topology, error) {
	class := sel.Geometry
	if class != selector.Axi && class != selector.ThreeD {
		return nil, fmt.Errorf("%w: %q", selector.ErrUnsupportedGeometryClass, class)
	}

	t := &Topology{
		Geometry:  class,
		HasLeads:  class == selector.ThreeD && in.HasLeads(),
		NHelices:  len(in.Helices),
		NRings:    len(in.Rings),
		NChannels: len(in.Channels),
	}
	var thermal, electric []string
	b := &t.Boundaries

	for idx, h := range in.Helices {
		i := idx + 1
		electric = append(electric, HelixPart(i))
		if class == selector.Axi {
			for j := 0; j <= h.Sections+1; j++ {
				thermal = append(thermal, SectionPart(i, j))
			}
			for j := 1; j <= h.Sections; j++ {
				t.Sections = append(t.Sections, model.SectionIndex{Helix: i, Section: j})
			}
			t.HelixRanges = append(t.HelixRanges, fmt.Sprintf("0:%d", h.Sections+2))
		} else {
			thermal = append(thermal, HelixPart(i))
			if h.Insulation != nil {
				ins := insulator(i, *h.Insulation)
				t.Insulators = append(t.Insulators, ins)
				thermal = append(thermal, ins.Name)
			}
		}
		for _, side := range []string{"Interface0", "Interface1"} {
			name := fmt.Sprintf("H%d_%s", i, side)
			b.ThermalNeumann = append(b.ThermalNeumann, name)
			b.ElectricNeumann = append(b.ElectricNeumann, name)
		}
	}

	for i := 1; i <= len(in.Rings); i++ {
		thermal = append(thermal, RingPart(i))
		electric = append(electric, RingPart(i))
		name := RingBoundary(i)
		b.MechanicalDirichlet = append(b.MechanicalDirichlet, name)
		b.ThermalNeumann = append(b.ThermalNeumann, name)
		b.ElectricNeumann = append(b.ElectricNeumann, name)
	}

	for i := range len(in.Channels) {
		b.ElectricNeumann = append(b.ElectricNeumann, ChannelName(i))
	}

	if t.HasLeads {
		thermal = append(thermal, InnerLead, OuterLead)
		electric = append(electric, InnerLead, OuterLead)
		b.ElectricDirichlet = append(b.ElectricDirichlet,
			model.Potential{Name: "Inner1_LV0", Marker: InnerLead, Value: "0"},
			model.Potential{Name: "OuterL2_LV0", Marker: OuterLead, Value: "V0:V0"},
		)
		b.MechanicalDirichlet = append(b.MechanicalDirichlet, "Inner1_LV0", "OuterL2_LV0")
		b.MagneticDirichlet = append(b.MagneticDirichlet, "InfV00", "InfV01")
		b.ThermalNeumann = append(b.ThermalNeumann,
			"Inner1_R0n", "Inner1_R1n", "Inner1_LV0", "Inner1_FixingHoles",
			"OuterL2_R0n", "OuterL2_R1n", "OuterL2_LV0", "OuterL2_CooledSurfaces", "OuterL2_Others",
		)
		b.ElectricNeumann = append(b.ElectricNeumann,
			"Inner1_R0n", "Inner1_R1n", "Inner1_FixingHoles",
			"OuterL2_R0n", "OuterL2_R1n", "OuterL2_CooledSurfaces", "OuterL2_Others",
		)
	} else {
		n := len(in.Helices)
		b.ElectricDirichlet = append(b.ElectricDirichlet,
			model.Potential{Name: "H1_V0", Marker: "H1", Value: "0"},
			model.Potential{Name: fmt.Sprintf("H%d_V0", n), Marker: fmt.Sprintf("H%d", n), Value: "V0:V0"},
		)
		b.MechanicalDirichlet = append(b.MechanicalDirichlet, "H1_HP", "H_HP")
	}

	b.MagneticDirichlet = append(b.MagneticDirichlet, "InfV1", "InfR1")

	t.Registry = model.NewPartRegistry(thermal, electric)
	return t, nil
}

// RingBoundary tags odd rings _BP and even rings _HP.
func RingBoundary(i int) string {
	if i%2 == 1 {
		return fmt.Sprintf("R%d_BP", i)
	}
	return fmt.Sprintf("R%d_HP", i)
}

// ChannelName returns the boundary name of cooling channel i (0-based).
func ChannelName(i int) string { return fmt.Sprintf("Channel%d", i) }

func insulator(i int, ins model.Insulation) model.InsulatorPart {
	if ins.Kind == model.InsulationGlue {
		return model.InsulatorPart{
			Helix:  i,
			Name:   fmt.Sprintf("Isolant%d", i),
			Marker: model.Marker{Name: fmt.Sprintf("H%d_Isolant", i)},
		}
	}
	return model.InsulatorPart{
		Helix:  i,
		Name:   fmt.Sprintf("Kaptons%d", i),
		Marker: model.Marker{Name: "Kapton%1%", Index: fmt.Sprintf("0:%d", ins.Count)},
	}
}
