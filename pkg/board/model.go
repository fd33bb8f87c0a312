package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voltlab/pcbmod/pkg/pcberrors"
	"github.com/voltlab/pcbmod/pkg/sexpr"
)

// Coordinate blocks addressable inside a model.
const (
	BlockOffset = "offset"
	BlockScale  = "scale"
	BlockRotate = "rotate"
)

const (
	hideKeyword = "hide"
	xyzKeyword  = "xyz"
)

// Model is a 3D model block embedded in a [Footprint].
type Model struct {
	tree *sexpr.Tree
	id   sexpr.NodeID
}

// Path returns the model's shape file path.
func (m *Model) Path() string {
	cs := m.tree.Children(m.id)
	if len(cs) < 2 {
		return ""
	}

	return m.tree.Value(cs[1])
}

// Hidden reports whether the model carries a hide flag. Both the bare
// `hide` token and the `(hide yes)` block form count; an explicit
// `(hide no)` block leaves the model visible.
func (m *Model) Hidden() bool {
	_, hidden := m.hideNode()

	return hidden
}

// SetHidden toggles the model's hide flag and reports whether the tree
// changed. The flag is a presence marker: hiding a hidden model and showing
// a visible one are no-ops, never duplications. An existing `(hide no)`
// block is flipped in place rather than shadowed by a second flag.
func (m *Model) SetHidden(hidden bool) bool {
	t := m.tree
	i, cur := m.hideNode()

	if hidden == cur {
		return false
	}

	if !hidden {
		t.RemoveChild(m.id, i)

		return true
	}

	if i < 0 {
		m.insertHide()

		return true
	}

	t.SetText(t.Children(t.Children(m.id)[i])[1], "yes")

	return true
}

// XYZ returns the model's coordinate triple of the given block kind,
// e.g. [BlockOffset].
func (m *Model) XYZ(block string) (x, y, z float64, err error) {
	var vals [3]float64

	ids, err := m.xyzNodes(block)
	if err != nil {
		return 0, 0, 0, err
	}

	for i, id := range ids {
		vals[i], err = strconv.ParseFloat(m.tree.Text(id), 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %s coordinate %q: %w",
				pcberrors.ErrInvalidFormat, block, m.tree.Text(id), err)
		}
	}

	return vals[0], vals[1], vals[2], nil
}

// Translate adds the given deltas to the model's coordinate triple. The
// shift is cumulative: translating twice doubles the displacement.
func (m *Model) Translate(block string, dx, dy, dz float64) error {
	return m.rewriteXYZ(block, [3]float64{dx, dy, dz}, true)
}

// SetXYZ replaces the model's coordinate triple outright.
func (m *Model) SetXYZ(block string, x, y, z float64) error {
	return m.rewriteXYZ(block, [3]float64{x, y, z}, false)
}

func (m *Model) rewriteXYZ(block string, vals [3]float64, relative bool) error {
	ids, err := m.xyzNodes(block)
	if err != nil {
		return err
	}

	for i, id := range ids {
		text := m.tree.Text(id)

		v := vals[i]
		if relative {
			cur, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return fmt.Errorf("%w: %s coordinate %q: %w",
					pcberrors.ErrInvalidFormat, block, text, err)
			}

			v += cur
		}

		m.tree.SetText(id, formatNumber(text, v))
	}

	return nil
}

// xyzNodes returns the three numeric token nodes of `(<block> (xyz X Y Z))`.
func (m *Model) xyzNodes(block string) ([3]sexpr.NodeID, error) {
	t := m.tree

	var ids [3]sexpr.NodeID

	for _, c := range t.Children(m.id) {
		if t.Kind(c) != sexpr.KindList || t.Head(c) != block {
			continue
		}

		for _, xc := range t.Children(c) {
			if t.Kind(xc) != sexpr.KindList || t.Head(xc) != xyzKeyword {
				continue
			}

			cs := t.Children(xc)
			if len(cs) != 4 {
				return ids, fmt.Errorf("%w: %s xyz has %d values",
					pcberrors.ErrInvalidFormat, block, len(cs)-1)
			}

			copy(ids[:], cs[1:])

			return ids, nil
		}
	}

	return ids, fmt.Errorf("%w: %s", pcberrors.ErrNoCoordinates, block)
}

// hideNode returns the child index of the hide flag, or -1 when absent,
// and whether the flag marks the model hidden. A bare `hide` token and a
// `(hide)` or `(hide yes)` block mean hidden; `(hide no)` means visible.
func (m *Model) hideNode() (int, bool) {
	t := m.tree

	for i, c := range t.Children(m.id) {
		if i == 0 {
			continue
		}

		switch t.Kind(c) {
		case sexpr.KindAtom:
			if t.Text(c) == hideKeyword {
				return i, true
			}
		case sexpr.KindList:
			if t.Head(c) != hideKeyword {
				continue
			}

			if cs := t.Children(c); len(cs) >= 2 && t.Value(cs[1]) == "no" {
				return i, false
			}

			return i, true
		case sexpr.KindString:
		}
	}

	return -1, false
}

// insertHide inserts a `(hide yes)` block before the model's first nested
// block, cloning that block's leading whitespace so a later removal
// restores the original bytes exactly.
func (m *Model) insertHide() {
	t := m.tree
	cs := t.Children(m.id)

	at := len(cs)
	lead := " "

	for i, c := range cs {
		if i > 0 && t.Kind(c) == sexpr.KindList {
			at = i
			lead = t.Lead(c)

			break
		}
	}

	hide := t.NewList(lead, "")
	t.AppendChild(hide, t.NewAtom("", hideKeyword))
	t.AppendChild(hide, t.NewAtom(" ", "yes"))
	t.InsertChild(m.id, at, hide)
}

// formatNumber renders v in the same style as the original literal:
// matching its decimal precision when it has one, otherwise falling back to
// the shortest exact decimal representation.
func formatNumber(orig string, v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}

	if i := strings.IndexByte(orig, '.'); i >= 0 {
		s := strconv.FormatFloat(v, 'f', len(orig)-i-1, 64)

		// A trailing-dot literal like `1.` has zero fractional digits;
		// keep its dot.
		if i == len(orig)-1 {
			s += "."
		}

		return s
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
