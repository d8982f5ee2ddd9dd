package terrain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NormalField holds per-cell unit surface normals computed from a
// HeightField. Like its source grid it is immutable after construction and
// safe to share across goroutines.
type NormalField struct {
	width  int
	height int
	n      []r3.Vec
}

// ComputeNormals derives a unit normal for every cell from the local
// elevation neighborhood. Interior cells use central differences, edge
// cells one-sided differences, and the vertical component is scaled by
// 1/zscale so slopes are geometrically correct regardless of the grid's
// vertical units. Cells whose own elevation is NoData get a zero normal.
func ComputeNormals(f *HeightField) *NormalField {
	w, h := f.width, f.height
	nf := &NormalField{width: w, height: h, n: make([]r3.Vec, w*h)}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := f.elev[y*w+x]
			if IsNoData(c) {
				continue
			}
			gx := gradient(f, x, y, 1, 0, c)
			gy := gradient(f, x, y, 0, 1, c)
			nf.n[y*w+x] = r3.Unit(r3.Vec{X: -gx, Y: -gy, Z: 1})
		}
	}
	return nf
}

// gradient estimates the elevation slope at (x,y) along (dx,dy) in
// grid-cell units. It falls back from central to one-sided differences
// when a neighbor is missing or NoData, and to zero slope when both are.
func gradient(f *HeightField, x, y, dx, dy int, center float64) float64 {
	fwd, fok := neighbor(f, x+dx, y+dy)
	back, bok := neighbor(f, x-dx, y-dy)

	switch {
	case fok && bok:
		return (fwd - back) / (2 * f.zscale)
	case fok:
		return (fwd - center) / f.zscale
	case bok:
		return (center - back) / f.zscale
	default:
		return 0
	}
}

func neighbor(f *HeightField, x, y int) (float64, bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0, false
	}
	v := f.elev[y*f.width+x]
	if IsNoData(v) {
		return 0, false
	}
	return v, true
}

// Width returns the number of columns.
func (nf *NormalField) Width() int { return nf.width }

// Height returns the number of rows.
func (nf *NormalField) Height() int { return nf.height }

// At returns the unit normal at integer grid coordinates. Cells excluded
// as NoData return the zero vector.
func (nf *NormalField) At(x, y int) (r3.Vec, error) {
	if x < 0 || y < 0 || x >= nf.width || y >= nf.height {
		return r3.Vec{}, fmt.Errorf("(%d,%d) outside %dx%d grid: %w", x, y, nf.width, nf.height, ErrOutOfBounds)
	}
	return nf.n[y*nf.width+x], nil
}

// at is the unchecked accessor for internal loops.
func (nf *NormalField) at(x, y int) r3.Vec {
	return nf.n[y*nf.width+x]
}

// ExtractOutlines marks cells whose normal lies within thresholdAngle
// degrees of horizontal, flagging near-vertical surfaces such as building
// walls and cliff faces. thresholdAngle must be in [0,90].
func ExtractOutlines(nf *NormalField, thresholdAngle float64) (*Mask, error) {
	if math.IsNaN(thresholdAngle) || thresholdAngle < 0 || thresholdAngle > 90 {
		return nil, fmt.Errorf("outline threshold %v outside [0,90]: %w", thresholdAngle, ErrInvalidParameter)
	}

	limit := math.Sin(thresholdAngle * math.Pi / 180)
	m := NewMask(nf.width, nf.height)
	for y := 0; y < nf.height; y++ {
		for x := 0; x < nf.width; x++ {
			n := nf.at(x, y)
			if n == (r3.Vec{}) {
				continue
			}
			if n.Z <= limit {
				m.set(x, y, true)
			}
		}
	}
	return m, nil
}
