package shade

import (
	"math"

	"github.com/Faultbox/relief/pkg/lighting"
	"github.com/Faultbox/relief/pkg/terrain"
)

// maxStep caps the march increment at half a grid cell. Larger steps can
// tunnel through thin ridges, and a missed occluder is a correctness bug
// while the occasional over-conservative shadow at grazing angles is an
// accepted approximation.
const maxStep = 0.5

// Raymarcher casts occlusion rays from grid cells toward a directional
// light by marching along the light's horizontal projection and comparing
// the ray height against the interpolated terrain surface.
type Raymarcher struct {
	// Step is the march increment in grid cells. Values outside (0,0.5]
	// fall back to 0.5.
	Step float64

	// MaxDistance bounds the trace length in grid cells. Zero means the
	// trace runs until it leaves the grid.
	MaxDistance float64
}

// TraceOcclusion reports how much light from l reaches the cell (x,y):
// 0 occluded, 1 unobstructed. The origin cell's own elevation never
// occludes it; the first terrain test happens one step from the origin.
// A NoData origin returns NoData, and NoData cells along the ray are
// treated as non-occluding. Coordinates must be inside the grid.
func (r Raymarcher) TraceOcclusion(f *terrain.HeightField, x, y int, l lighting.Light) float64 {
	h0, err := f.ElevationAt(x, y)
	if err != nil {
		// Unreachable from the engine's tiling; a defect, not user error.
		panic(err)
	}
	if terrain.IsNoData(h0) {
		return terrain.NoData
	}
	if l.BelowHorizon() {
		return 0
	}

	step := r.Step
	if step <= 0 || step > maxStep {
		step = maxStep
	}

	w := float64(f.Width() - 1)
	h := float64(f.Height() - 1)
	maxDist := r.MaxDistance
	if maxDist <= 0 {
		maxDist = math.Hypot(w, h)
	}

	dx, dy, slope := l.HorizontalStep(f.ZScale())
	fx, fy := float64(x), float64(y)

	for t := step; t <= maxDist; t += step {
		px := fx + dx*t
		py := fy + dy*t
		if px < 0 || py < 0 || px > w || py > h {
			return 1
		}
		ground := f.Sample(px, py)
		if terrain.IsNoData(ground) {
			continue
		}
		if h0+t*slope < ground {
			return 0
		}
	}
	return 1
}

// TraceSoft averages TraceOcclusion over rays spread across the light's
// angular disk, yielding fractional shadow values at penumbra edges.
// radius is in degrees of altitude; rays < 2 degenerates to a single hard
// trace.
func (r Raymarcher) TraceSoft(f *terrain.HeightField, x, y int, l lighting.Light, radius float64, rays int) float64 {
	spread := l.Spread(radius, rays)
	if len(spread) == 1 {
		return r.TraceOcclusion(f, x, y, spread[0])
	}

	sum := 0.0
	for _, sl := range spread {
		v := r.TraceOcclusion(f, x, y, sl)
		if terrain.IsNoData(v) {
			return terrain.NoData
		}
		sum += v
	}
	return sum / float64(len(spread))
}
