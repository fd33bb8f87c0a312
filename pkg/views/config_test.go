package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltlab/pcbmod/pkg/batch"
	"github.com/voltlab/pcbmod/pkg/pcberrors"
	"github.com/voltlab/pcbmod/pkg/views"
)

func TestUnmarshalConfig(t *testing.T) {
	t.Parallel()

	input := `views:
  - name: top
    hide_footprints: [J1, J2]
    show_footprints: [U1]
    offset_footprints:
      - reference: C1
        x: 2
        z: -0.5
  - name: bottom
    hide_footprints: [U1]
`

	cfg, err := views.UnmarshalConfig([]byte(input))
	require.NoError(t, err)
	require.Len(t, cfg.Views, 2)

	ops := cfg.Views[0].Operations()
	assert.Equal(t, []batch.Operation{
		batch.Hide("J1"),
		batch.Hide("J2"),
		batch.Show("U1"),
		batch.Offset("C1", 2, 0, -0.5),
	}, ops)

	assert.Equal(t, []batch.Operation{batch.Hide("U1")}, cfg.Views[1].Operations())
}

func TestUnmarshalConfigErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		err   error
	}{
		"unknown field": {
			input: "views:\n  - name: top\n    hide: [J1]\n",
			err:   pcberrors.ErrInvalidFormat,
		},
		"not yaml": {
			input: "views: [",
			err:   pcberrors.ErrInvalidFormat,
		},
		"no views": {
			input: "views: []\n",
			err:   views.ErrNoViews,
		},
		"duplicate name": {
			input: "views:\n  - name: top\n  - name: top\n",
			err:   views.ErrDuplicateView,
		},
		"empty name": {
			input: "views:\n  - hide_footprints: [J1]\n",
			err:   views.ErrInvalidViewName,
		},
		"name with separator": {
			input: "views:\n  - name: ../top\n",
			err:   views.ErrInvalidViewName,
		},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := views.UnmarshalConfig([]byte(tc.input))
			require.ErrorIs(t, err, tc.err)
		})
	}
}
