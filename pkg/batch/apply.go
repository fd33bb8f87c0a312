package batch

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/voltlab/pcbmod/pkg/board"
	"github.com/voltlab/pcbmod/pkg/pcberrors"
)

// ErrUnsupportedOperation indicates an operation kind the applier does not know.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Failure records one operation that could not be applied.
type Failure struct {
	Err error
	Op  Operation
}

// ExtractResult is the serialized text produced by one extract operation.
type ExtractResult struct {
	Reference string
	Text      string
}

// Result is the outcome of one batch. Output reflects every operation that
// succeeded, so callers may accept a partial success alongside Failures.
type Result struct {
	Output   []byte
	Extracts []ExtractResult
	Failures []Failure
}

// Err aggregates the per-operation failures, or returns nil if every
// operation succeeded.
func (r *Result) Err() error {
	var merr error

	for _, f := range r.Failures {
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", f.Op, f.Err))
	}

	return merr
}

// Applier applies operation batches to boards.
type Applier struct {
	// FailFast stops the batch at the first per-operation failure. The
	// default is to collect failures and keep going.
	FailFast bool
}

// Apply runs ops in order against b and serializes the edited board. Each
// operation resolves its target footprint against the current tree state,
// never against stale byte offsets.
func (a *Applier) Apply(b *board.Board, ops []Operation) *Result {
	res := &Result{}

	for _, op := range ops {
		err := a.applyOne(b, res, op)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Op: op, Err: err})

			if a.FailFast {
				break
			}

			continue
		}

		slog.Debug("applied operation", "op", op.String())
	}

	res.Output = b.Bytes()

	return res
}

func (a *Applier) applyOne(b *board.Board, res *Result, op Operation) error {
	fp, err := b.Footprint(op.Reference)
	if err != nil {
		return err
	}

	if op.Kind == KindExtract {
		res.Extracts = append(res.Extracts, ExtractResult{
			Reference: op.Reference,
			Text:      fp.Extract(),
		})

		return nil
	}

	models := fp.Models()
	if len(models) == 0 {
		return fmt.Errorf("%w: %s", pcberrors.ErrNoModel, op.Reference)
	}

	for _, m := range models {
		err := applyModel(m, op)
		if err != nil {
			return err
		}
	}

	return nil
}

func applyModel(m *board.Model, op Operation) error {
	switch op.Kind {
	case KindHide:
		if !m.SetHidden(true) {
			slog.Debug("model already hidden", "ref", op.Reference, "path", m.Path())
		}
	case KindShow:
		if !m.SetHidden(false) {
			slog.Debug("model already visible", "ref", op.Reference, "path", m.Path())
		}
	case KindOffset:
		return m.Translate(board.BlockOffset, op.X, op.Y, op.Z)
	case KindSetPosition:
		return m.SetXYZ(board.BlockOffset, op.X, op.Y, op.Z)
	case KindExtract:
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOperation, op.Kind)
	}

	return nil
}
