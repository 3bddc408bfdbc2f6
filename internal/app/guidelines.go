package app

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vk/magnetsetup/internal/engine"
	"github.com/vk/magnetsetup/internal/templates"
)

// Container images and tools named in the guidelines.
const (
	salomeImage  = "/home/singularity/hifimagnet-salome-9.7.0.sif"
	feelppImage  = "/home/singularity/feelpp-toolboxes-v0.109.0.sif"
	feelppSolver = "feelpp_toolbox_coefficientformpdes"
	pyfeelScript = "cfpdes_insert_fixcurrent.py"
)

func printSummary(w io.Writer, res *engine.Result, set *templates.Set) {
	fmt.Fprintf(w, "Model: %s\n", res.Names.JSON)
	fmt.Fprintf(w, "Config: %s\n", res.Names.Cfg)

	defs := make([]string, 0, len(set.Auxiliary))
	for def := range set.Auxiliary {
		defs = append(defs, def)
	}
	sort.Strings(defs)
	for _, def := range defs {
		fmt.Fprintf(w, "Material definition %s: %s\n", def, set.Auxiliary[def])
	}
}

type guidelineInput struct {
	WorkDir  string
	Geometry string
	Insert   string
	Cfg      string
}

// printGuidelines prints the follow-up commands of a cfpdes/Axi run. They
// are never executed.
func printGuidelines(w io.Writer, in guidelineInput) {
	xao := in.Insert + "-Axi_withAir.xao"
	msh := strings.TrimSuffix(xao, ".xao") + ".msh"
	part := strings.TrimSuffix(xao, ".xao") + "_p.json"

	geocmd := fmt.Sprintf("salome -w1 -t $HIFIMAGNET/HIFIMAGNET_Cmd.py args:%s,--axi,--air,2,2,--wd,$PWD", in.Geometry)
	meshcmd := fmt.Sprintf("python3 -m python_magnetgeo.xao %s --wd $PWD mesh --group CoolingChannels --geo %s --lc=1", xao, in.Geometry)
	partcmd := fmt.Sprintf("feelpp_mesh_partition --ifile %s --ofile %s [--part NP] [--mesh.scale=0.001]", msh, part)
	feelcmd := fmt.Sprintf("[mpirun -np NP] %s --config-file %s", feelppSolver, in.Cfg)
	pyfeelcmd := fmt.Sprintf("[mpirun -np NP] python %s", pyfeelScript)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Guidelines for running a simulation (cfpdes/Axi) ===")
	fmt.Fprintln(w, "export HIFIMAGNET=/opt/SALOME-9.7.0-UB20.04/INSTALL/HIFIMAGNET/bin/salome")
	fmt.Fprintf(w, "workingdir: %s\n", in.WorkDir)
	fmt.Fprintf(w, "CAD: singularity exec %s %s\n", salomeImage, geocmd)
	fmt.Fprintf(w, "Mesh: %s\n", meshcmd)
	fmt.Fprintf(w, "Partition: singularity exec %s %s\n", feelppImage, partcmd)
	fmt.Fprintf(w, "Feel: singularity exec %s %s\n", feelppImage, feelcmd)
	fmt.Fprintf(w, "pyfeel: singularity exec %s %s\n", feelppImage, pyfeelcmd)
}
