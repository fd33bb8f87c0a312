package commands

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/voltlab/pcbmod/pkg/views"
)

const (
	viewsDesc = `This command applies render view batches to a board
`
	viewsExample = `  pcbmod views <command> [arguments]...
  # Apply every view in views.yaml to a board, one output file per view
  pcbmod views apply --config views.yaml --out_dir out board.kicad_pcb
`
)

var ErrViewsApplyFailed = errors.New("views apply failed")

// NewViewsCmd returns the views command.
func NewViewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "views",
		Short:        "Render view batch application",
		Long:         viewsDesc,
		Example:      viewsExample,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewViewsApplyCmd())

	return cmd
}

func NewViewsApplyCmd() *cobra.Command {
	configPath := new(string)
	outDir := new(string)
	workers := new(int)
	failFast := new(bool)

	cmd := &cobra.Command{
		Use:   "apply <board>",
		Short: "Apply every configured view to a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := views.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrViewsApplyFailed, err)
			}

			runner := &views.Runner{Workers: *workers, FailFast: *failFast}

			results, err := runner.Run(cmd.Context(), cfg, args[0], *outDir)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrViewsApplyFailed, err)
			}

			var merr error

			for _, res := range results {
				cmd.Printf("%s: %s\n", res.View, res.Path)

				for _, f := range res.Failures {
					merr = multierror.Append(merr, fmt.Errorf("view %q: %s: %w", res.View, f.Op, f.Err))
				}
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrViewsApplyFailed, merr)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(configPath, "config", "c", "views.yaml", "Path to the view configuration")
	cmd.PersistentFlags().StringVarP(outDir, "out_dir", "o", "views", "Directory for the edited board files")
	cmd.PersistentFlags().IntVar(workers, "workers", 0, "Maximum number of views processed concurrently (0 = unbounded)")
	cmd.PersistentFlags().BoolVar(failFast, "fail_fast", false, "Stop each view at its first failed edit")

	if err := cmd.MarkPersistentFlagFilename("config", "yaml", "yml"); err != nil {
		panic(err)
	}

	if err := cmd.MarkPersistentFlagDirname("out_dir"); err != nil {
		panic(err)
	}

	return cmd
}
