package sexpr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltlab/pcbmod/pkg/sexpr"
)

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
	}{
		"empty":            {input: ""},
		"only whitespace":  {input: " \t\n"},
		"flat list":        {input: "(a b c)"},
		"nested":           {input: "(a (b (c d)) e)"},
		"quoted strings":   {input: `(net "GND" "a \"quoted\" name")`},
		"escaped backslash": {
			input: `(path "C:\\models\\r.wrl")`,
		},
		"mixed whitespace": {
			input: "(kicad_pcb\n\t(version 20241229)\n\t(generator \"pcbnew\")\n)\n",
		},
		"number formats": {
			input: "(at 100.000000 -50.5 0)",
		},
		"multiple roots": {
			input: "(a 1)\n(b 2)\n",
		},
		"trailing trivia": {
			input: "(a)\n\n",
		},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tree, err := sexpr.Parse([]byte(tc.input))
			require.NoError(t, err)

			assert.Equal(t, tc.input, string(tree.Bytes()))
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input  string
		offset int
	}{
		"unexpected close":    {input: "(a))", offset: 3},
		"close at start":      {input: ")", offset: 0},
		"unclosed list":       {input: "(a (b)", offset: 0},
		"unclosed inner list": {input: "(a (b", offset: 3},
		"unterminated string": {input: `(a "b`, offset: 3},
		"escaped terminator":  {input: `(a "b\")`, offset: 3},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := sexpr.Parse([]byte(tc.input))
			require.Error(t, err)

			var perr *sexpr.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.offset, perr.Offset)
		})
	}
}

func TestTreeNavigation(t *testing.T) {
	t.Parallel()

	tree, err := sexpr.Parse([]byte(`(model "r.wrl" (offset (xyz 1 2 3)))`))
	require.NoError(t, err)

	roots := tree.Roots()
	require.Len(t, roots, 1)

	model := roots[0]
	assert.Equal(t, sexpr.KindList, tree.Kind(model))
	assert.Equal(t, "model", tree.Head(model))
	assert.Equal(t, sexpr.None, tree.Parent(model))

	cs := tree.Children(model)
	require.Len(t, cs, 3)

	assert.Equal(t, sexpr.KindString, tree.Kind(cs[1]))
	assert.Equal(t, `"r.wrl"`, tree.Text(cs[1]))
	assert.Equal(t, "r.wrl", tree.Value(cs[1]))

	offset := cs[2]
	assert.Equal(t, "offset", tree.Head(offset))
	assert.Equal(t, model, tree.Parent(offset))

	xyz := tree.Children(offset)[1]
	assert.Equal(t, "xyz", tree.Head(xyz))

	nums := tree.Children(xyz)
	require.Len(t, nums, 4)
	assert.Equal(t, "2", tree.Value(nums[2]))
}

func TestTreeMutation(t *testing.T) {
	t.Parallel()

	t.Run("set text", func(t *testing.T) {
		t.Parallel()

		tree, err := sexpr.Parse([]byte("(xyz 1.000000 2 3)"))
		require.NoError(t, err)

		xyz := tree.Roots()[0]
		tree.SetText(tree.Children(xyz)[1], "4.000000")

		assert.Equal(t, "(xyz 4.000000 2 3)", string(tree.Bytes()))
	})

	t.Run("insert and remove child", func(t *testing.T) {
		t.Parallel()

		input := "(model \"r.wrl\"\n\t(offset\n\t\t(xyz 0 0 0)\n\t)\n)"

		tree, err := sexpr.Parse([]byte(input))
		require.NoError(t, err)

		model := tree.Roots()[0]
		offset := tree.Children(model)[2]

		hide := tree.NewList(tree.Lead(offset), "")
		tree.AppendChild(hide, tree.NewAtom("", "hide"))
		tree.AppendChild(hide, tree.NewAtom(" ", "yes"))
		tree.InsertChild(model, 2, hide)

		assert.Equal(t,
			"(model \"r.wrl\"\n\t(hide yes)\n\t(offset\n\t\t(xyz 0 0 0)\n\t)\n)",
			string(tree.Bytes()))

		tree.RemoveChild(model, 2)

		assert.Equal(t, input, string(tree.Bytes()))
	})
}

func TestNodeBytes(t *testing.T) {
	t.Parallel()

	tree, err := sexpr.Parse([]byte("(a 1)\n  (b\n    (c 2)\n  )\n"))
	require.NoError(t, err)

	b := tree.Roots()[1]
	assert.Equal(t, "(b\n    (c 2)\n  )", string(tree.NodeBytes(b)))

	// Single-node serialization must re-parse to an equivalent tree.
	sub, err := sexpr.Parse(tree.NodeBytes(b))
	require.NoError(t, err)
	require.Len(t, sub.Roots(), 1)
	assert.Equal(t, "b", sub.Head(sub.Roots()[0]))
}

func TestNewStringQuoting(t *testing.T) {
	t.Parallel()

	tree := sexpr.NewTree()
	id := tree.NewString("", `a "b" \c`)

	assert.Equal(t, `"a \"b\" \\c"`, tree.Text(id))
	assert.Equal(t, `a "b" \c`, tree.Value(id))
}
