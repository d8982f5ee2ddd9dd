package lighting

import (
	"fmt"
	"math"

	"github.com/Faultbox/relief/pkg/terrain"
)

// Sample pairs a light direction with its share of the sky hemisphere's
// solid angle. Weights across a sample set sum to 1.
type Sample struct {
	Light  Light
	Weight float64
}

// HemisphereSamples builds a fixed sampling of the upper hemisphere for
// ambient occlusion: azimuths equally spaced circles, altitudes band
// centers, each sample weighted by the solid angle of its band so low
// grazing directions do not dominate sky visibility.
func HemisphereSamples(azimuths, altitudes int) ([]Sample, error) {
	if azimuths < 1 || altitudes < 1 {
		return nil, fmt.Errorf("hemisphere sampling %dx%d: %w", azimuths, altitudes, terrain.ErrInvalidParameter)
	}

	samples := make([]Sample, 0, azimuths*altitudes)
	for j := 0; j < altitudes; j++ {
		lo := float64(j) * 90 / float64(altitudes)
		hi := float64(j+1) * 90 / float64(altitudes)
		// Solid angle of the band, divided evenly among its azimuths.
		band := math.Sin(hi*math.Pi/180) - math.Sin(lo*math.Pi/180)
		w := band / float64(azimuths)
		alt := (lo + hi) / 2
		for i := 0; i < azimuths; i++ {
			az := float64(i) * 360 / float64(azimuths)
			samples = append(samples, Sample{
				Light:  Light{Azimuth: az, Altitude: alt},
				Weight: w,
			})
		}
	}
	return samples, nil
}
