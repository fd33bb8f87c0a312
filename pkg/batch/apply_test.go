package batch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltlab/pcbmod/pkg/batch"
	"github.com/voltlab/pcbmod/pkg/board"
	"github.com/voltlab/pcbmod/pkg/pcberrors"
)

const minimalBoard = `(kicad_pcb
	(version 20241229)
	(footprint "Capacitor_SMD:C_0603_1608Metric"
		(layer "F.Cu")
		(at 50 50)
		(property "Reference" "C1"
			(at 0 -1 0)
		)
		(model "${KICAD9_3DMODEL_DIR}/Capacitor_SMD.3dshapes/C_0603_1608Metric.wrl"
			(offset
				(xyz 0 0 0)
			)
		)
	)
	(footprint "Package_SO:SOIC-8"
		(layer "F.Cu")
		(at 70 50)
		(property "Reference" "U2"
			(at 0 -2 0)
		)
	)
)
`

func apply(t *testing.T, input string, a *batch.Applier, ops ...batch.Operation) *batch.Result {
	t.Helper()

	b, err := board.Parse([]byte(input))
	require.NoError(t, err)

	return a.Apply(b, ops)
}

func TestApplyHideAndOffset(t *testing.T) {
	t.Parallel()

	// Hide then shift: the model gains a hide flag and moves to (2, 0, 0),
	// with every other byte of the file unchanged.
	res := apply(t, minimalBoard, &batch.Applier{},
		batch.Hide("C1"),
		batch.Offset("C1", 2, 0, 0),
	)
	require.NoError(t, res.Err())

	want := strings.Replace(minimalBoard,
		"(offset\n\t\t\t\t(xyz 0 0 0)",
		"(hide yes)\n\t\t\t(offset\n\t\t\t\t(xyz 2 0 0)", 1)
	assert.Equal(t, want, string(res.Output))
}

func TestApplyHideIdempotent(t *testing.T) {
	t.Parallel()

	once := apply(t, minimalBoard, &batch.Applier{}, batch.Hide("C1"))
	require.NoError(t, once.Err())

	twice := apply(t, minimalBoard, &batch.Applier{}, batch.Hide("C1"), batch.Hide("C1"))
	require.NoError(t, twice.Err())

	assert.Equal(t, string(once.Output), string(twice.Output))

	shown := apply(t, minimalBoard, &batch.Applier{}, batch.Show("C1"), batch.Show("C1"))
	require.NoError(t, shown.Err())
	assert.Equal(t, minimalBoard, string(shown.Output))
}

func TestApplyOffsetAccumulates(t *testing.T) {
	t.Parallel()

	res := apply(t, minimalBoard, &batch.Applier{},
		batch.Offset("C1", 1, 0, 0),
		batch.Offset("C1", 1, 0, 0),
	)
	require.NoError(t, res.Err())

	// Offset is additive, not idempotent: the same delta twice doubles the
	// displacement.
	assert.Contains(t, string(res.Output), "(xyz 2 0 0)")
}

func TestApplyExtract(t *testing.T) {
	t.Parallel()

	res := apply(t, minimalBoard, &batch.Applier{}, batch.Extract("C1"))
	require.NoError(t, res.Err())

	// Extract never mutates.
	assert.Equal(t, minimalBoard, string(res.Output))

	require.Len(t, res.Extracts, 1)
	assert.Equal(t, "C1", res.Extracts[0].Reference)

	sub, err := board.Parse([]byte(res.Extracts[0].Text))
	require.NoError(t, err)
	require.Len(t, sub.Footprints(), 1)
	assert.Equal(t, "C1", sub.Footprints()[0].Reference())
}

func TestApplyAmbiguous(t *testing.T) {
	t.Parallel()

	input := `(kicad_pcb
	(footprint "A"
		(property "Reference" "U1")
	)
	(footprint "B"
		(property "Reference" "U1")
	)
)
`

	for _, op := range []batch.Operation{
		batch.Extract("U1"),
		batch.Hide("U1"),
		batch.Show("U1"),
		batch.Offset("U1", 1, 0, 0),
		batch.SetPosition("U1", 1, 0, 0),
	} {
		op := op

		t.Run(op.Kind.String(), func(t *testing.T) {
			t.Parallel()

			res := apply(t, input, &batch.Applier{}, op)

			require.Len(t, res.Failures, 1)
			require.ErrorIs(t, res.Failures[0].Err, pcberrors.ErrAmbiguousReference)
			assert.Equal(t, input, string(res.Output))
		})
	}
}

func TestApplyCollectsFailures(t *testing.T) {
	t.Parallel()

	res := apply(t, minimalBoard, &batch.Applier{},
		batch.Hide("R9"), // Unknown reference.
		batch.Hide("U2"), // No model block.
		batch.Hide("C1"), // Fine.
	)

	require.Len(t, res.Failures, 2)
	assert.ErrorIs(t, res.Failures[0].Err, pcberrors.ErrFootprintNotFound)
	assert.ErrorIs(t, res.Failures[1].Err, pcberrors.ErrNoModel)

	// The batch continues past failures: C1 still got hidden.
	assert.Contains(t, string(res.Output), "(hide yes)")

	err := res.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, pcberrors.ErrFootprintNotFound)
	assert.ErrorIs(t, err, pcberrors.ErrNoModel)
}

func TestApplyFailFast(t *testing.T) {
	t.Parallel()

	res := apply(t, minimalBoard, &batch.Applier{FailFast: true},
		batch.Hide("R9"),
		batch.Hide("C1"),
	)

	require.Len(t, res.Failures, 1)

	// The batch stopped before hiding C1.
	assert.Equal(t, minimalBoard, string(res.Output))
}

func TestApplySetPosition(t *testing.T) {
	t.Parallel()

	res := apply(t, minimalBoard, &batch.Applier{},
		batch.Offset("C1", 5, 5, 5),
		batch.SetPosition("C1", 1, 2, 3),
	)
	require.NoError(t, res.Err())

	// SetPosition replaces instead of accumulating.
	assert.Contains(t, string(res.Output), "(xyz 1 2 3)")
}

func TestApplyIsolation(t *testing.T) {
	t.Parallel()

	res := apply(t, minimalBoard, &batch.Applier{}, batch.Hide("C1"))
	require.NoError(t, res.Err())

	// Bytes outside the edited model block are untouched.
	i := strings.Index(minimalBoard, `(footprint "Package_SO:SOIC-8"`)
	require.Positive(t, i)
	assert.True(t, strings.HasSuffix(string(res.Output), minimalBoard[i:]))

	j := strings.Index(minimalBoard, "(model")
	require.Positive(t, j)
	assert.True(t, strings.HasPrefix(string(res.Output), minimalBoard[:j]))
}

func TestOperationString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hide R1", batch.Hide("R1").String())
	assert.Equal(t, "offset U1 (1, 0, -2.5)", batch.Offset("U1", 1, 0, -2.5).String())
}
