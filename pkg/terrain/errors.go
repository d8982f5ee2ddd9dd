package terrain

import "errors"

// Error taxonomy shared by every stage of the shading pipeline. Downstream
// packages wrap these with fmt.Errorf("...: %w", err) so callers can test
// with errors.Is.
var (
	// ErrInvalidParameter covers zero or negative zscale, thresholds outside
	// their documented range, and malformed light angles.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrOutOfBounds is returned when sampling outside the grid extent.
	// Internal ray marching never triggers it; seeing it from inside the
	// engine indicates a step-size or boundary-check defect.
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrDimensionMismatch is returned when combining grids of differing
	// dimensions. Grids are never silently resized.
	ErrDimensionMismatch = errors.New("grid dimensions do not match")
)
