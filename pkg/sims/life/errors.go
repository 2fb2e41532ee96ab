package life

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize matches any InvalidSizeError.
	ErrInvalidSize = errors.New("grid size must be a positive integer")
	// ErrOutOfBounds matches any OutOfBoundsError.
	ErrOutOfBounds = errors.New("cell out of bounds")
)

// InvalidSizeError is returned when a grid is requested with a non-positive size.
type InvalidSizeError struct {
	Size int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid grid size %d: %v", e.Size, ErrInvalidSize)
}

// Is lets errors.Is match ErrInvalidSize.
func (e *InvalidSizeError) Is(target error) bool { return target == ErrInvalidSize }

// OutOfBoundsError is returned when a coordinate falls outside [0, Size).
type OutOfBoundsError struct {
	Row, Col int
	Size     int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell (%d,%d) outside %dx%d grid: %v", e.Row, e.Col, e.Size, e.Size, ErrOutOfBounds)
}

// Is lets errors.Is match ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }
