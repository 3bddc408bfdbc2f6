package document

import (
	"github.com/vk/magnetsetup/internal/selector"
)

// Mesh defaults of the configuration record.
const (
	MeshScale     = 0.001
	MeshPartition = 0
)

// CfgBindings returns the bindings of the configuration template. name is the
// geometry file stem and jsonfile the model document name.
func CfgBindings(sel selector.Selector, linear bool, name, jsonfile string) map[string]any {
	nl := ""
	if !linear {
		nl = "nonlinear"
	}
	return map[string]any{
		"dim":       sel.Geometry.Dim(),
		"method":    string(sel.Method),
		"model":     string(sel.Model),
		"geom":      string(sel.Geometry),
		"time":      string(sel.Time),
		"linear":    nl,
		"name":      name,
		"jsonfile":  jsonfile,
		"mesh":      name + ".med",
		"scale":     MeshScale,
		"partition": MeshPartition,
	}
}
