package board

import (
	"fmt"
	"sort"

	"github.com/voltlab/pcbmod/pkg/pcberrors"
	"github.com/voltlab/pcbmod/pkg/sexpr"
)

// Board wraps a parsed KiCad PCB file. A Board has exactly one owner for
// its entire lifetime; it must not be shared across goroutines.
type Board struct {
	tree *sexpr.Tree
}

// Parse builds a [Board] from raw .kicad_pcb bytes.
func Parse(data []byte) (*Board, error) {
	t, err := sexpr.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}

	return &Board{tree: t}, nil
}

// Bytes serializes the board. With no edits applied, the output is
// byte-identical to the parsed input.
func (b *Board) Bytes() []byte {
	return b.tree.Bytes()
}

// Footprints returns every footprint on the board in file order.
//
// Footprints are never nested inside other footprints, so the search is
// bounded: top-level blocks and their direct children are considered.
func (b *Board) Footprints() []*Footprint {
	var fps []*Footprint

	for _, root := range b.tree.Roots() {
		if b.tree.Head(root) == footprintKeyword {
			fps = append(fps, &Footprint{board: b, id: root})

			continue
		}

		for _, c := range b.tree.Children(root) {
			if b.tree.Kind(c) == sexpr.KindList && b.tree.Head(c) == footprintKeyword {
				fps = append(fps, &Footprint{board: b, id: c})
			}
		}
	}

	return fps
}

// References returns the sorted reference designators of every footprint
// that carries one.
func (b *Board) References() []string {
	var refs []string

	for _, fp := range b.Footprints() {
		if ref := fp.Reference(); ref != "" {
			refs = append(refs, ref)
		}
	}

	sort.Strings(refs)

	return refs
}

// Footprint returns the single footprint whose reference designator matches
// ref exactly (case-sensitive). It fails with
// [pcberrors.ErrFootprintNotFound] when nothing matches and
// [pcberrors.ErrAmbiguousReference] when more than one footprint matches; an
// ambiguous reference is never silently resolved.
func (b *Board) Footprint(ref string) (*Footprint, error) {
	var found *Footprint

	for _, fp := range b.Footprints() {
		if fp.Reference() != ref {
			continue
		}

		if found != nil {
			return nil, fmt.Errorf("%w: %s", pcberrors.ErrAmbiguousReference, ref)
		}

		found = fp
	}

	if found == nil {
		return nil, fmt.Errorf("%w: %s", pcberrors.ErrFootprintNotFound, ref)
	}

	return found, nil
}
