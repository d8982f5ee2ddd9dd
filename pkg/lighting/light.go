// Package lighting describes directional light sources in the alt-azimuth
// coordinate system used by the shading engine.
package lighting

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/relief/pkg/terrain"
)

// Light is a directional light source. Azimuth is measured in degrees
// clockwise from north (0 north, 90 east); Altitude in degrees above the
// horizon (0 horizon, 90 zenith). Negative altitudes place the sun below
// the horizon.
type Light struct {
	Azimuth  float64
	Altitude float64
}

// Validate rejects non-finite angles and altitudes outside [-90,90].
// Azimuth is periodic and any finite value is accepted.
func (l Light) Validate() error {
	if math.IsNaN(l.Azimuth) || math.IsInf(l.Azimuth, 0) {
		return fmt.Errorf("light azimuth %v: %w", l.Azimuth, terrain.ErrInvalidParameter)
	}
	if math.IsNaN(l.Altitude) || l.Altitude < -90 || l.Altitude > 90 {
		return fmt.Errorf("light altitude %v outside [-90,90]: %w", l.Altitude, terrain.ErrInvalidParameter)
	}
	return nil
}

// BelowHorizon reports whether the light cannot illuminate any cell. An
// altitude of exactly 0 counts as below: grazing light is fully occluded
// by construction.
func (l Light) BelowHorizon() bool {
	return l.Altitude <= 0
}

// Direction returns the unit vector pointing from the terrain toward the
// light, in grid coordinates: +X east, +Y south (row index grows
// southward), +Z up. Azimuth 0 therefore points toward -Y.
func (l Light) Direction() r3.Vec {
	az := l.Azimuth * math.Pi / 180
	al := l.Altitude * math.Pi / 180
	return r3.Unit(r3.Vec{
		X: math.Sin(az) * math.Cos(al),
		Y: -math.Cos(az) * math.Cos(al),
		Z: math.Sin(al),
	})
}

// HorizontalStep returns the per-unit-distance horizontal direction of the
// light's projection onto the grid plane, and the vertical gain per unit
// horizontal distance in elevation units (tan(altitude) scaled by zscale).
func (l Light) HorizontalStep(zscale float64) (dx, dy, slope float64) {
	az := l.Azimuth * math.Pi / 180
	return math.Sin(az), -math.Cos(az), math.Tan(l.Altitude*math.Pi/180) * zscale
}

// Spread returns n lights fanned across the light's angular disk of the
// given radius in degrees of altitude, used for soft shadow accumulation.
// n < 2 or a zero radius returns the light itself.
func (l Light) Spread(radius float64, n int) []Light {
	if n < 2 || radius <= 0 {
		return []Light{l}
	}
	out := make([]Light, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i)/float64(n-1)*2 - 1
		alt := clampDeg(l.Altitude + t*radius)
		out = append(out, Light{Azimuth: l.Azimuth, Altitude: alt})
	}
	return out
}

func clampDeg(alt float64) float64 {
	if alt < -90 {
		return -90
	}
	if alt > 90 {
		return 90
	}
	return alt
}
