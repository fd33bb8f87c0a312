package pcberrors

import (
	"errors"
)

var (
	// ErrFootprintNotFound indicates no footprint matched a reference designator.
	ErrFootprintNotFound = errors.New("footprint not found")

	// ErrAmbiguousReference indicates more than one footprint matched a
	// reference designator.
	ErrAmbiguousReference = errors.New("ambiguous reference")

	// ErrNoModel indicates a footprint carries no 3D model block.
	ErrNoModel = errors.New("footprint has no model")

	// ErrNoCoordinates indicates a model block has no coordinate triple of
	// the requested kind.
	ErrNoCoordinates = errors.New("model has no coordinate block")

	// ErrInvalidFormat indicates an unexpected or invalid format was encountered.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrReadFile indicates an error occurred while reading a file.
	ErrReadFile = errors.New("read file")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = errors.New("write file")
)
