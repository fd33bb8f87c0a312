package batch

import (
	"fmt"
)

// Kind identifies an operation type.
type Kind int

const (
	// KindExtract returns the serialized text of the matched footprint
	// without mutating the board.
	KindExtract Kind = iota
	// KindHide inserts a hide flag into every model of the matched footprint.
	KindHide
	// KindShow removes the hide flag from every model of the matched footprint.
	KindShow
	// KindOffset adds deltas to the model offset triples. The shift is
	// cumulative, not idempotent.
	KindOffset
	// KindSetPosition replaces the model offset triples outright.
	KindSetPosition
)

func (k Kind) String() string {
	switch k {
	case KindExtract:
		return "extract"
	case KindHide:
		return "hide"
	case KindShow:
		return "show"
	case KindOffset:
		return "offset"
	case KindSetPosition:
		return "position"
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Operation is one unit of requested work against a single footprint.
// X, Y, Z are only meaningful for [KindOffset] and [KindSetPosition].
type Operation struct {
	Reference string
	Kind      Kind
	X, Y, Z   float64
}

// Extract creates an extract operation for ref.
func Extract(ref string) Operation {
	return Operation{Kind: KindExtract, Reference: ref}
}

// Hide creates a hide operation for ref.
func Hide(ref string) Operation {
	return Operation{Kind: KindHide, Reference: ref}
}

// Show creates a show operation for ref.
func Show(ref string) Operation {
	return Operation{Kind: KindShow, Reference: ref}
}

// Offset creates an additive offset operation for ref.
func Offset(ref string, dx, dy, dz float64) Operation {
	return Operation{Kind: KindOffset, Reference: ref, X: dx, Y: dy, Z: dz}
}

// SetPosition creates an absolute position operation for ref.
func SetPosition(ref string, x, y, z float64) Operation {
	return Operation{Kind: KindSetPosition, Reference: ref, X: x, Y: y, Z: z}
}

func (o Operation) String() string {
	switch o.Kind {
	case KindOffset, KindSetPosition:
		return fmt.Sprintf("%s %s (%g, %g, %g)", o.Kind, o.Reference, o.X, o.Y, o.Z)
	case KindExtract, KindHide, KindShow:
	}

	return fmt.Sprintf("%s %s", o.Kind, o.Reference)
}
