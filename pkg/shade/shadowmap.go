// Package shade computes per-cell illumination for a heightfield: cheap
// lambertian shading, occlusion-aware raytraced shading, and hemisphere
// averaged ambient occlusion. Passes run tiled across row bands with
// immutable shared inputs and disjoint output regions.
package shade

import (
	"fmt"

	"github.com/Faultbox/relief/pkg/terrain"
)

// ShadowMap is a grid of illumination values in [0,1], 0 fully shadowed
// and 1 fully lit, aligned cell-for-cell with the heightfield it was
// computed from. NoData cells carry the NoData sentinel instead of an
// intensity. A ShadowMap is immutable once a pass returns it.
type ShadowMap struct {
	width  int
	height int
	v      []float64
}

func newShadowMap(width, height int) *ShadowMap {
	return &ShadowMap{width: width, height: height, v: make([]float64, width*height)}
}

// NewShadowMap builds a shadow map from row-major illumination values, for
// callers that bring precomputed maps to the compositor. Values must lie
// in [0,1] or be the NoData sentinel, and rows must be rectangular.
func NewShadowMap(values [][]float64) (*ShadowMap, error) {
	h := len(values)
	if h == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("empty shadow map: %w", terrain.ErrInvalidParameter)
	}
	w := len(values[0])

	m := newShadowMap(w, h)
	for y, row := range values {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), w, terrain.ErrInvalidParameter)
		}
		for x, v := range row {
			if !terrain.IsNoData(v) && (v < 0 || v > 1) {
				return nil, fmt.Errorf("value %v at (%d,%d) outside [0,1]: %w", v, x, y, terrain.ErrInvalidParameter)
			}
			m.v[y*w+x] = v
		}
	}
	return m, nil
}

// Width returns the number of columns.
func (m *ShadowMap) Width() int { return m.width }

// Height returns the number of rows.
func (m *ShadowMap) Height() int { return m.height }

// At returns the illumination at integer grid coordinates.
func (m *ShadowMap) At(x, y int) (float64, error) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0, fmt.Errorf("(%d,%d) outside %dx%d shadow map: %w", x, y, m.width, m.height, terrain.ErrOutOfBounds)
	}
	return m.v[y*m.width+x], nil
}

// Value is the unchecked accessor; coordinates must be in range.
func (m *ShadowMap) Value(x, y int) float64 {
	return m.v[y*m.width+x]
}

// set clamps to [0,1] before writing; NoData passes through untouched.
func (m *ShadowMap) set(x, y int, v float64) {
	if !terrain.IsNoData(v) {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
	}
	m.v[y*m.width+x] = v
}
