// Package terrain provides the elevation grid at the core of the shading
// pipeline: heightfields with bilinear sub-cell sampling, surface normals,
// and boolean masks derived from them.
package terrain

import (
	"fmt"
	"math"
)

// NoData is the sentinel for cells with no elevation sample. It propagates
// through interpolation and shading as transparency rather than aborting
// the pipeline.
var NoData = math.NaN()

// IsNoData reports whether v is the NoData sentinel.
func IsNoData(v float64) bool {
	return math.IsNaN(v)
}

// HeightField is an immutable-after-construction grid of elevation samples,
// row-major with row 0 at the north edge. The zscale factor converts
// vertical units to horizontal grid-spacing units: a grid with 1 m spacing
// and elevations in meters has zscale 1. It is safe to share a HeightField
// across goroutines once constructed.
type HeightField struct {
	width  int
	height int
	zscale float64
	elev   []float64
}

// NewHeightField builds a heightfield from row-major elevation values.
// All rows must have equal length and zscale must be positive.
func NewHeightField(values [][]float64, zscale float64) (*HeightField, error) {
	if zscale <= 0 || math.IsNaN(zscale) || math.IsInf(zscale, 0) {
		return nil, fmt.Errorf("zscale %v: %w", zscale, ErrInvalidParameter)
	}
	h := len(values)
	if h == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("empty elevation grid: %w", ErrInvalidParameter)
	}
	w := len(values[0])

	elev := make([]float64, 0, w*h)
	for y, row := range values {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), w, ErrInvalidParameter)
		}
		elev = append(elev, row...)
	}

	return &HeightField{width: w, height: h, zscale: zscale, elev: elev}, nil
}

// Width returns the number of columns.
func (f *HeightField) Width() int { return f.width }

// Height returns the number of rows.
func (f *HeightField) Height() int { return f.height }

// ZScale returns the vertical-to-horizontal unit ratio.
func (f *HeightField) ZScale() float64 { return f.zscale }

// ElevationAt returns the elevation at integer grid coordinates.
func (f *HeightField) ElevationAt(x, y int) (float64, error) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0, fmt.Errorf("(%d,%d) outside %dx%d grid: %w", x, y, f.width, f.height, ErrOutOfBounds)
	}
	return f.elev[y*f.width+x], nil
}

// InterpolatedElevationAt returns the bilinearly interpolated elevation at
// fractional grid coordinates. At integer coordinates it reproduces
// ElevationAt exactly. Coordinates outside [0,width-1]x[0,height-1] are an
// error.
func (f *HeightField) InterpolatedElevationAt(fx, fy float64) (float64, error) {
	if fx < 0 || fy < 0 || fx > float64(f.width-1) || fy > float64(f.height-1) {
		return 0, fmt.Errorf("(%g,%g) outside %dx%d grid: %w", fx, fy, f.width, f.height, ErrOutOfBounds)
	}
	return f.Sample(fx, fy), nil
}

// Sample returns the bilinearly interpolated elevation at fractional grid
// coordinates, clamping to the nearest edge when outside the grid. The ray
// marcher performs its own boundary test and uses Sample on the hot path.
// A NoData value in any corner with nonzero weight yields NoData; corners
// with zero weight are ignored so integer coordinates round-trip exactly.
func (f *HeightField) Sample(fx, fy float64) float64 {
	fx = clamp(fx, 0, float64(f.width-1))
	fy = clamp(fy, 0, float64(f.height-1))

	x0, y0 := int(fx), int(fy)
	if x0 > f.width-2 {
		x0 = max(f.width-2, 0)
	}
	if y0 > f.height-2 {
		y0 = max(f.height-2, 0)
	}
	x1 := min(x0+1, f.width-1)
	y1 := min(y0+1, f.height-1)

	tx := fx - float64(x0)
	ty := fy - float64(y0)

	v00 := f.elev[y0*f.width+x0]
	v10 := f.elev[y0*f.width+x1]
	v01 := f.elev[y1*f.width+x0]
	v11 := f.elev[y1*f.width+x1]

	north := lerp(v00, v10, tx)
	south := lerp(v01, v11, tx)
	return lerp(north, south, ty)
}

// lerp blends a and b, returning the endpoint exactly at t=0 and t=1 so a
// NoData value on the far side cannot leak into an on-grid sample.
func lerp(a, b, t float64) float64 {
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	return a*(1-t) + b*t
}

// ReduceResolution returns a new heightfield downsampled by the given
// factor in (0,1]. Each target cell averages its source block, skipping
// NoData cells; a block of only NoData stays NoData. Factor 1 returns an
// identical copy. Downsampling is lossy and intended for interactive
// preview, never for final output.
func (f *HeightField) ReduceResolution(factor float64) (*HeightField, error) {
	if !(factor > 0 && factor <= 1) {
		return nil, fmt.Errorf("resolution factor %v outside (0,1]: %w", factor, ErrInvalidParameter)
	}

	dw := max(int(math.Round(float64(f.width)*factor)), 1)
	dh := max(int(math.Round(float64(f.height)*factor)), 1)

	elev := make([]float64, dw*dh)
	for dy := 0; dy < dh; dy++ {
		sy0 := dy * f.height / dh
		sy1 := max((dy+1)*f.height/dh, sy0+1)
		for dx := 0; dx < dw; dx++ {
			sx0 := dx * f.width / dw
			sx1 := max((dx+1)*f.width/dw, sx0+1)

			sum, n := 0.0, 0
			for sy := sy0; sy < sy1; sy++ {
				for sx := sx0; sx < sx1; sx++ {
					v := f.elev[sy*f.width+sx]
					if IsNoData(v) {
						continue
					}
					sum += v
					n++
				}
			}
			if n == 0 {
				elev[dy*dw+dx] = NoData
			} else {
				elev[dy*dw+dx] = sum / float64(n)
			}
		}
	}

	return &HeightField{width: dw, height: dh, zscale: f.zscale, elev: elev}, nil
}

// Negate returns a heightfield with every elevation sign-flipped. NoData
// cells stay NoData.
func (f *HeightField) Negate() *HeightField {
	elev := make([]float64, len(f.elev))
	for i, v := range f.elev {
		elev[i] = -v
	}
	return &HeightField{width: f.width, height: f.height, zscale: f.zscale, elev: elev}
}

// Extent returns the minimum and maximum elevation, ignoring NoData cells.
// A grid of only NoData returns (NoData, NoData).
func (f *HeightField) Extent() (lo, hi float64) {
	lo, hi = NoData, NoData
	for _, v := range f.elev {
		if IsNoData(v) {
			continue
		}
		if IsNoData(lo) || v < lo {
			lo = v
		}
		if IsNoData(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
