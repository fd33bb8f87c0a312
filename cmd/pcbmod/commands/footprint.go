package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/voltlab/pcbmod/pkg/batch"
	"github.com/voltlab/pcbmod/pkg/board"
	"github.com/voltlab/pcbmod/pkg/pcberrors"
)

const (
	footprintDesc = `This command edits footprint 3D models in a .kicad_pcb file
`
	footprintExample = `  pcbmod footprint <command> [arguments]...
  # List the reference designators on a board
  pcbmod footprint list board.kicad_pcb

  # Print the source text of one footprint
  pcbmod footprint extract board.kicad_pcb U1

  # Hide the 3D models of one or more footprints
  pcbmod footprint hide board.kicad_pcb R1 R2

  # Show previously hidden 3D models
  pcbmod footprint show board.kicad_pcb R1

  # Shift the 3D model offset by a delta
  pcbmod footprint offset board.kicad_pcb U1 2 0 0

  # Set the 3D model offset to an absolute position
  pcbmod footprint position board.kicad_pcb U1 0 0 1.5
`
)

var (
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrFootprintCommandFailed = errors.New("footprint command failed")
	ErrFootprintEditFailed    = errors.New("footprint edit failed")
)

// NewFootprintCmd returns the footprint command.
func NewFootprintCmd() *cobra.Command {
	failFast := new(bool)

	cmd := &cobra.Command{
		Use:          "footprint",
		Short:        "Footprint 3D model editing",
		Long:         footprintDesc,
		Example:      footprintExample,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(failFast, "fail_fast", false, "Stop at the first failed edit")

	cmd.AddCommand(NewFootprintListCmd())
	cmd.AddCommand(NewFootprintExtractCmd())
	cmd.AddCommand(NewFootprintHideCmd(failFast))
	cmd.AddCommand(NewFootprintShowCmd(failFast))
	cmd.AddCommand(NewFootprintOffsetCmd(failFast))
	cmd.AddCommand(NewFootprintPositionCmd(failFast))

	return cmd
}

func NewFootprintListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <board>",
		Short: "List footprint reference designators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFootprintCommandFailed, err)
			}

			refs := b.References()

			if f, ok := cmd.OutOrStdout().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				cmd.Printf("Found %d footprints in %s:\n", len(refs), args[0])
			}

			for _, ref := range refs {
				cmd.Println(ref)
			}

			return nil
		},
		SilenceUsage: true,
	}
}

func NewFootprintExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <board> <reference>",
		Short: "Print the source text of one footprint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFootprintCommandFailed, err)
			}

			fp, err := b.Footprint(args[1])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFootprintCommandFailed, err)
			}

			cmd.Println(fp.Extract())

			return nil
		},
		SilenceUsage: true,
	}
}

func NewFootprintHideCmd(failFast *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "hide <board> <reference>...",
		Short: "Hide the 3D models of the given footprints",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			ops := make([]batch.Operation, 0, len(args)-1)
			for _, ref := range args[1:] {
				ops = append(ops, batch.Hide(ref))
			}

			return editBoardFile(args[0], ops, *failFast)
		},
		SilenceUsage: true,
	}
}

func NewFootprintShowCmd(failFast *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <board> <reference>...",
		Short: "Show the 3D models of the given footprints",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			ops := make([]batch.Operation, 0, len(args)-1)
			for _, ref := range args[1:] {
				ops = append(ops, batch.Show(ref))
			}

			return editBoardFile(args[0], ops, *failFast)
		},
		SilenceUsage: true,
	}
}

func NewFootprintOffsetCmd(failFast *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offset <board> <reference> <dx> <dy> <dz>",
		Short: "Shift the 3D model offset by a delta",
		Args:  cobra.ExactArgs(5),
		RunE: func(_ *cobra.Command, args []string) error {
			d, err := parseTriple(args[2:5])
			if err != nil {
				return err
			}

			return editBoardFile(args[0], []batch.Operation{
				batch.Offset(args[1], d[0], d[1], d[2]),
			}, *failFast)
		},
		SilenceUsage: true,
	}

	// Deltas may be negative; stop flag parsing at the first positional so
	// `-2` is an argument, not a shorthand flag.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func NewFootprintPositionCmd(failFast *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position <board> <reference> <x> <y> <z>",
		Short: "Set the 3D model offset to an absolute position",
		Args:  cobra.ExactArgs(5),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := parseTriple(args[2:5])
			if err != nil {
				return err
			}

			return editBoardFile(args[0], []batch.Operation{
				batch.SetPosition(args[1], v[0], v[1], v[2]),
			}, *failFast)
		},
		SilenceUsage: true,
	}

	// Coordinates may be negative; stop flag parsing at the first
	// positional so `-2` is an argument, not a shorthand flag.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func loadBoard(path string) (*board.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", pcberrors.ErrReadFile, path, err)
	}

	return board.Parse(data)
}

// editBoardFile applies ops to the board at path and writes the result back
// in place. Per-operation failures do not discard the edits that succeeded.
func editBoardFile(path string, ops []batch.Operation, failFast bool) error {
	b, err := loadBoard(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFootprintEditFailed, err)
	}

	applier := &batch.Applier{FailFast: failFast}
	res := applier.Apply(b, ops)

	err = os.WriteFile(path, res.Output, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %w %q: %w", ErrFootprintEditFailed, pcberrors.ErrWriteFile, path, err)
	}

	if err := res.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrFootprintEditFailed, err)
	}

	return nil
}

func parseTriple(args []string) ([3]float64, error) {
	var vals [3]float64

	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return vals, fmt.Errorf("%w: %q: %w", ErrInvalidArgument, arg, err)
		}

		vals[i] = v
	}

	return vals, nil
}
