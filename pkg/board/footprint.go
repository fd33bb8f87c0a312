package board

import (
	"github.com/voltlab/pcbmod/pkg/sexpr"
)

const (
	footprintKeyword = "footprint"
	modelKeyword     = "model"
	propertyKeyword  = "property"
	fpTextKeyword    = "fp_text"
)

// Footprint is a single placed component on a [Board].
type Footprint struct {
	board *Board
	id    sexpr.NodeID
}

// Reference returns the footprint's reference designator, e.g. "R1".
//
// Both the `(property "Reference" "R1" ...)` form written by KiCad 7 and
// later and the legacy `(fp_text reference R1 ...)` form are recognized,
// with the property form taking precedence.
func (f *Footprint) Reference() string {
	t := f.board.tree

	var legacy string

	for _, c := range t.Children(f.id) {
		if t.Kind(c) != sexpr.KindList {
			continue
		}

		cs := t.Children(c)

		switch t.Head(c) {
		case propertyKeyword:
			if len(cs) >= 3 && t.Value(cs[1]) == "Reference" {
				return t.Value(cs[2])
			}
		case fpTextKeyword:
			if len(cs) >= 3 && t.Value(cs[1]) == "reference" {
				legacy = t.Value(cs[2])
			}
		}
	}

	return legacy
}

// Extract returns the footprint's serialized source text, starting at its
// opening parenthesis. The tree is not mutated.
func (f *Footprint) Extract() string {
	return string(f.board.tree.NodeBytes(f.id))
}

// Models returns the footprint's 3D model blocks in file order.
func (f *Footprint) Models() []*Model {
	t := f.board.tree

	var models []*Model

	for _, c := range t.Children(f.id) {
		if t.Kind(c) == sexpr.KindList && t.Head(c) == modelKeyword {
			models = append(models, &Model{tree: t, id: c})
		}
	}

	return models
}
