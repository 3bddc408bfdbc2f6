// Package postprocess builds the statistics lists handed to the flux,
// temperature and power templates.
package postprocess

import (
	"fmt"

	"github.com/vk/magnetsetup/internal/selector"
	"github.com/vk/magnetsetup/internal/topology"
)

// Stat is one statistics entry. Part is the registry part the entry
// measures; it is not handed to templates.
type Stat struct {
	Header string
	Name   string
	Index  []string
	Part   string
}

// Binding returns the entry as a template record.
func (s Stat) Binding() map[string]any {
	b := map[string]any{"header": s.Header, "name": s.Name}
	if s.Index != nil {
		idx := make([]any, len(s.Index))
		for i, v := range s.Index {
			idx[i] = v
		}
		b["index"] = idx
	}
	return b
}

// Lists holds the post-processing bindings of a run.
type Lists struct {
	PowerH []Stat
	MeanTH []Stat
	// IndexH is the channel index range of the flux measure.
	IndexH string
}

// Build derives the statistics lists from the topology.
func Build(topo *topology.Topology) Lists {
	l := Lists{IndexH: fmt.Sprintf("0:%d", topo.NChannels)}
	add := func(suffix, name, part string, index []string) {
		l.PowerH = append(l.PowerH, Stat{Header: "Power_" + suffix, Name: name, Index: index, Part: part})
		l.MeanTH = append(l.MeanTH, Stat{Header: "MeanT_" + suffix, Name: name, Index: index, Part: part})
	}

	if topo.Geometry == selector.Axi {
		for i := 1; i <= topo.NHelices; i++ {
			add(fmt.Sprintf("H%d", i), fmt.Sprintf("H%d_Cu%%1%%", i), topology.HelixPart(i), []string{topo.HelixRanges[i-1]})
		}
		return l
	}

	for i := 1; i <= topo.NHelices; i++ {
		add(fmt.Sprintf("H%d", i), topology.HelixPart(i), topology.HelixPart(i), nil)
	}
	for i := 1; i <= topo.NRings; i++ {
		add(topology.RingPart(i), topology.RingPart(i), topology.RingPart(i), nil)
	}
	if topo.HasLeads {
		for _, lead := range []string{topology.InnerLead, topology.OuterLead} {
			add(lead, lead, lead, nil)
		}
	}
	return l
}

// Parts returns every part referenced by the lists.
func (l Lists) Parts() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(append([]Stat(nil), l.PowerH...), l.MeanTH...) {
		if !seen[s.Part] {
			seen[s.Part] = true
			out = append(out, s.Part)
		}
	}
	return out
}

// FluxBindings returns the bindings of the flux template.
func (l Lists) FluxBindings() map[string]any {
	return map[string]any{"index_h": l.IndexH}
}

// MeanTBindings returns the bindings of the mean temperature template.
func (l Lists) MeanTBindings() map[string]any {
	return map[string]any{"meanT_H": bindings(l.MeanTH)}
}

// PowerBindings returns the bindings of the power template.
func (l Lists) PowerBindings() map[string]any {
	return map[string]any{"Power_H": bindings(l.PowerH)}
}

func bindings(stats []Stat) []any {
	out := make([]any, len(stats))
	for i, s := range stats {
		out[i] = s.Binding()
	}
	return out
}
