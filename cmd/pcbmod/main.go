package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/voltlab/pcbmod/cmd/pcbmod/commands"
)

const (
	cmdName = "pcbmod"

	shortDesc = "Structural editor for KiCad PCB files."
	longDesc  = `The pcbmod Command Line Interface (CLI).

pcbmod edits .kicad_pcb files structurally: it locates footprints by
reference designator and extracts their source, toggles the visibility of
their 3D models, and shifts model coordinates, while leaving every other
byte of the board file untouched. Batches of edits can be described per
render view in a YAML file and applied in one run.
`
)

func main() {
	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
