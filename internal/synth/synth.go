// Package synth generates deterministic synthetic heightfields so the
// renderer and tests can run without any raster input.
package synth

import "math"

// Fractal produces value-noise terrain with the given octave count,
// amplitudes halving per octave. The same seed and dimensions always
// produce the same grid.
func Fractal(width, height int, seed int64, octaves int, amplitude float64) [][]float64 {
	if octaves < 1 {
		octaves = 1
	}

	grid := make([][]float64, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			v := 0.0
			freq := 1.0 / 32
			amp := amplitude
			for o := 0; o < octaves; o++ {
				v += valueNoise(float64(x)*freq, float64(y)*freq, seed+int64(o)) * amp
				freq *= 2
				amp /= 2
			}
			grid[y][x] = v
		}
	}
	return grid
}

// Peak produces a flat plain at base elevation with a single conical peak
// in the center, useful for shadow-casting demonstrations.
func Peak(width, height int, base, peak float64) [][]float64 {
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2
	radius := math.Min(cx, cy)
	if radius == 0 {
		radius = 1
	}

	grid := make([][]float64, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / radius
			if d >= 1 {
				grid[y][x] = base
			} else {
				grid[y][x] = base + (peak-base)*(1-d)
			}
		}
	}
	return grid
}

// Stamp sets every grid cell inside the polygon to the given elevation.
// Vertices are (x,y) grid coordinates in order; the polygon closes itself.
// Membership uses the even-odd rule, so self-intersecting outlines behave
// predictably. Fewer than three vertices is a no-op.
func Stamp(grid [][]float64, vertices [][2]float64, elev float64) {
	if len(vertices) < 3 {
		return
	}
	for y := range grid {
		for x := range grid[y] {
			if insidePolygon(float64(x), float64(y), vertices) {
				grid[y][x] = elev
			}
		}
	}
}

func insidePolygon(x, y float64, vs [][2]float64) bool {
	inside := false
	j := len(vs) - 1
	for i := range vs {
		xi, yi := vs[i][0], vs[i][1]
		xj, yj := vs[j][0], vs[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// valueNoise samples smoothed lattice noise in [-1,1] at a continuous
// position. Lattice values come from hashing the integer coordinates, so
// sampling is seam-free and order-independent.
func valueNoise(x, y float64, seed int64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	tx := smooth(x - x0)
	ty := smooth(y - y0)

	ix0, iy0 := int64(x0), int64(y0)
	v00 := lattice(ix0, iy0, seed)
	v10 := lattice(ix0+1, iy0, seed)
	v01 := lattice(ix0, iy0+1, seed)
	v11 := lattice(ix0+1, iy0+1, seed)

	a := v00 + (v10-v00)*tx
	b := v01 + (v11-v01)*tx
	return a + (b-a)*ty
}

// lattice hashes integer coordinates to a value in [-1,1].
func lattice(x, y, seed int64) float64 {
	h := uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xc2b2ae3d27d4eb4f ^ uint64(seed)*0x165667b19e3779f9
	h ^= h >> 32
	h *= 0xd6e8feb86659fd93
	h ^= h >> 32
	return float64(h%2000000)/1000000 - 1
}

// smooth is the smoothstep fade curve.
func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}
