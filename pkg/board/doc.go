// Package board provides a structural document model for KiCad PCB files.
//
// This package locates footprints by reference designator and edits the
// visibility and placement of their embedded 3D models, while guaranteeing
// that every byte outside the edited region survives serialization
// unchanged. It performs no semantic interpretation of the board beyond the
// keywords needed for lookup.
package board
