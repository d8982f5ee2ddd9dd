// Package water classifies heightfield cells as water by flood-filling
// connected regions of near-flat, low-lying terrain.
package water

import (
	"fmt"
	"math"

	"github.com/Faultbox/relief/pkg/terrain"
)

// Params tunes water classification. The thresholds are empirical; expose
// them to callers rather than baking in any one dataset's values.
type Params struct {
	// Cutoff is the minimum z-component of a cell's unit normal for the
	// cell to count as flat, in [0,1]. Values near 1 demand near-level
	// terrain.
	Cutoff float64

	// MinArea discards connected flat regions smaller than this many
	// cells. Must be positive.
	MinArea int

	// MaxHeight excludes cells above this elevation. Use +Inf to disable
	// the ceiling.
	MaxHeight float64
}

// DefaultParams returns a starting point for the given field: a strict
// flatness cutoff, no elevation ceiling, and a minimum region of 1/400th
// of the grid area.
func DefaultParams(f *terrain.HeightField) Params {
	return Params{
		Cutoff:    0.999,
		MinArea:   max(f.Width()*f.Height()/400, 1),
		MaxHeight: math.Inf(1),
	}
}

// Detect returns a mask of water cells. A cell is a water candidate when
// its unit normal's z-component is at least p.Cutoff and its elevation is
// at most p.MaxHeight; candidates are grouped by 4-connectivity and
// regions smaller than p.MinArea are dropped. Regions touching the grid
// boundary get no special treatment, and labeling order never affects the
// result. NoData cells are never water.
func Detect(f *terrain.HeightField, p Params) (*terrain.Mask, error) {
	if math.IsNaN(p.Cutoff) || p.Cutoff < 0 || p.Cutoff > 1 {
		return nil, fmt.Errorf("water cutoff %v outside [0,1]: %w", p.Cutoff, terrain.ErrInvalidParameter)
	}
	if p.MinArea <= 0 {
		return nil, fmt.Errorf("water min area %d: %w", p.MinArea, terrain.ErrInvalidParameter)
	}
	if math.IsNaN(p.MaxHeight) {
		return nil, fmt.Errorf("water max height NaN: %w", terrain.ErrInvalidParameter)
	}

	w, h := f.Width(), f.Height()
	nf := terrain.ComputeNormals(f)

	flat := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			elev, _ := f.ElevationAt(x, y)
			if terrain.IsNoData(elev) || elev > p.MaxHeight {
				continue
			}
			n, _ := nf.At(x, y)
			if n.Z >= p.Cutoff {
				flat[y*w+x] = true
			}
		}
	}

	mask := terrain.NewMask(w, h)
	visited := make([]bool, w*h)
	var queue, component []int

	for start := range flat {
		if !flat[start] || visited[start] {
			continue
		}

		// Breadth-first fill of one connected component.
		queue = append(queue[:0], start)
		component = component[:0]
		visited[start] = true
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			component = append(component, idx)

			x, y := idx%w, idx/w
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if flat[ni] && !visited[ni] {
					visited[ni] = true
					queue = append(queue, ni)
				}
			}
		}

		if len(component) < p.MinArea {
			continue
		}
		for _, idx := range component {
			mask.Set(idx%w, idx/w, true)
		}
	}

	return mask, nil
}
