package mandel

import (
	"errors"
	"fmt"
)

// Domain errors for parameter validation and rendering.
var (
	// ErrDegenerateDimension indicates a raster side shorter than two pixels.
	// The coordinate mapper divides by (side - 1).
	ErrDegenerateDimension = errors.New("mandel: image dimension must be at least 2 pixels")

	// ErrInvalidBounds indicates a non-finite plane bound or min >= max.
	ErrInvalidBounds = errors.New("mandel: invalid plane bounds")

	// ErrIterationRange indicates an iteration budget that does not fit a byte channel.
	ErrIterationRange = errors.New("mandel: max iterations out of range")

	// ErrBadFilename indicates a name that was not produced by Params.Filename.
	ErrBadFilename = errors.New("mandel: not a render filename")
)

// PixelError wraps an error with the pixel being emitted when it occurred.
type PixelError struct {
	Row     int
	Col     int
	Wrapped error
}

func (e *PixelError) Error() string {
	return fmt.Sprintf("pixel (row %d, col %d): %v", e.Row, e.Col, e.Wrapped)
}

func (e *PixelError) Unwrap() error {
	return e.Wrapped
}
