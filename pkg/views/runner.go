package views

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/voltlab/pcbmod/pkg/batch"
	"github.com/voltlab/pcbmod/pkg/board"
	"github.com/voltlab/pcbmod/pkg/pcberrors"
	"github.com/voltlab/pcbmod/pkg/syncs"
)

// Result is the outcome of one view.
type Result struct {
	View     string
	Path     string
	Failures []batch.Failure
}

// Runner applies every view of a [Config] to one board file, writing an
// edited copy per view. Views run in parallel; each worker parses its own
// tree from the shared input bytes, so no tree is ever shared.
type Runner struct {
	// Workers bounds the number of concurrently processed views.
	// Zero means unbounded.
	Workers int

	// FailFast stops each view's batch at its first operation failure.
	FailFast bool

	locks syncs.KeyLock
}

// Run processes every view in cfg against the board at boardPath and writes
// the results to outDir as <view>.kicad_pcb. A parse failure of the board
// aborts the whole run; per-operation failures are reported in the returned
// results.
func (r *Runner) Run(ctx context.Context, cfg *Config, boardPath, outDir string) ([]Result, error) {
	data, err := os.ReadFile(boardPath)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", pcberrors.ErrReadFile, boardPath, err)
	}

	// Fail before spawning workers if the board does not parse; nothing
	// downstream can be trusted after a parse error.
	_, err = board.Parse(data)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(outDir, 0o750)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", pcberrors.ErrWriteFile, outDir, err)
	}

	results := make([]Result, len(cfg.Views))

	g, ctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}

	for i, v := range cfg.Views {
		i, v := i, v

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("view %q: %w", v.Name, err)
			}

			res, err := r.runView(v, data, outDir)
			if err != nil {
				return fmt.Errorf("view %q: %w", v.Name, err)
			}

			results[i] = res

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *Runner) runView(v View, data []byte, outDir string) (Result, error) {
	b, err := board.Parse(data)
	if err != nil {
		return Result{}, err
	}

	applier := &batch.Applier{FailFast: r.FailFast}
	res := applier.Apply(b, v.Operations())

	outPath := filepath.Join(outDir, v.Name+".kicad_pcb")

	err = r.writeFile(outPath, res.Output)
	if err != nil {
		return Result{}, err
	}

	slog.Debug("view applied",
		"view", v.Name,
		"path", outPath,
		"operations", len(v.Operations()),
		"failures", len(res.Failures),
	)

	return Result{View: v.Name, Path: outPath, Failures: res.Failures}, nil
}

// writeFile writes data atomically: to a randomized temp file first, then
// renamed into place. Writes to the same path are serialized.
func (r *Runner) writeFile(path string, data []byte) error {
	key := filepath.Clean(path)

	r.locks.Lock(key)
	defer r.locks.Unlock(key)

	tmp := fmt.Sprintf("%s.tmp-%s", path, uuid.NewString())

	err := os.WriteFile(tmp, data, 0o600)
	if err != nil {
		return fmt.Errorf("%w %q: %w", pcberrors.ErrWriteFile, path, err)
	}

	err = os.Rename(tmp, path)
	if err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("%w %q: %w", pcberrors.ErrWriteFile, path, err)
	}

	return nil
}
