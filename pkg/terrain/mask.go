package terrain

import "fmt"

// Mask is a boolean grid aligned with a HeightField, used for water
// classification and outline extraction.
type Mask struct {
	width  int
	height int
	cells  []bool
}

// NewMask returns an all-false mask of the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{width: width, height: height, cells: make([]bool, width*height)}
}

// Width returns the number of columns.
func (m *Mask) Width() int { return m.width }

// Height returns the number of rows.
func (m *Mask) Height() int { return m.height }

// At reports whether the cell at integer grid coordinates is set.
func (m *Mask) At(x, y int) (bool, error) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false, fmt.Errorf("(%d,%d) outside %dx%d mask: %w", x, y, m.width, m.height, ErrOutOfBounds)
	}
	return m.cells[y*m.width+x], nil
}

// Get is the unchecked accessor; coordinates must be in range.
func (m *Mask) Get(x, y int) bool {
	return m.cells[y*m.width+x]
}

func (m *Mask) set(x, y int, v bool) {
	m.cells[y*m.width+x] = v
}

// Set marks or clears a cell.
func (m *Mask) Set(x, y int, v bool) error {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return fmt.Errorf("(%d,%d) outside %dx%d mask: %w", x, y, m.width, m.height, ErrOutOfBounds)
	}
	m.set(x, y, v)
	return nil
}

// Count returns the number of set cells.
func (m *Mask) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Subtract clears every cell of m that is set in other. Used to keep
// classifications mutually exclusive, e.g. a water cell can never also be
// an outline cell.
func (m *Mask) Subtract(other *Mask) error {
	if other.width != m.width || other.height != m.height {
		return fmt.Errorf("mask %dx%d vs %dx%d: %w", m.width, m.height, other.width, other.height, ErrDimensionMismatch)
	}
	for i, c := range other.cells {
		if c {
			m.cells[i] = false
		}
	}
	return nil
}
