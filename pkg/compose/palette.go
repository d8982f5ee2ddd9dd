package compose

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/relief/pkg/lighting"
	"github.com/Faultbox/relief/pkg/terrain"
)

// Palette is an enumerated color scheme for base shading. Names resolve to
// concrete color tables at configuration time; shading code never branches
// on strings.
type Palette int

const (
	PaletteImhof1 Palette = iota
	PaletteImhof2
	PaletteImhof3
	PaletteImhof4
	PaletteDesert
	PaletteBW
	PaletteUnicorn
)

var paletteNames = map[string]Palette{
	"imhof1":  PaletteImhof1,
	"imhof2":  PaletteImhof2,
	"imhof3":  PaletteImhof3,
	"imhof4":  PaletteImhof4,
	"desert":  PaletteDesert,
	"bw":      PaletteBW,
	"unicorn": PaletteUnicorn,
}

// ParsePalette resolves a palette name. Unknown names are an error.
func ParsePalette(name string) (Palette, error) {
	p, ok := paletteNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown palette %q: %w", name, terrain.ErrInvalidParameter)
	}
	return p, nil
}

// String returns the palette's configuration name.
func (p Palette) String() string {
	for name, v := range paletteNames {
		if v == p {
			return name
		}
	}
	return fmt.Sprintf("palette(%d)", int(p))
}

// paletteTable holds the concrete colors a palette resolves to: the fully
// lit and fully shadowed tones plus lateral tints applied to slopes facing
// across the light.
type paletteTable struct {
	light  RGBA
	shadow RGBA
	left   RGBA
	right  RGBA
}

func (p Palette) table() (paletteTable, error) {
	switch p {
	case PaletteImhof1:
		return paletteTable{
			light:  rgb(0.996, 0.973, 0.843),
			shadow: rgb(0.098, 0.255, 0.365),
			left:   rgb(0.984, 0.867, 0.655),
			right:  rgb(0.467, 0.588, 0.659),
		}, nil
	case PaletteImhof2:
		return paletteTable{
			light:  rgb(0.957, 0.925, 0.776),
			shadow: rgb(0.227, 0.302, 0.227),
			left:   rgb(0.894, 0.831, 0.569),
			right:  rgb(0.475, 0.541, 0.455),
		}, nil
	case PaletteImhof3:
		return paletteTable{
			light:  rgb(0.941, 0.945, 0.827),
			shadow: rgb(0.227, 0.275, 0.420),
			left:   rgb(0.871, 0.859, 0.647),
			right:  rgb(0.514, 0.537, 0.631),
		}, nil
	case PaletteImhof4:
		return paletteTable{
			light:  rgb(0.996, 0.937, 0.839),
			shadow: rgb(0.263, 0.204, 0.298),
			left:   rgb(0.957, 0.812, 0.624),
			right:  rgb(0.545, 0.486, 0.557),
		}, nil
	case PaletteDesert:
		return paletteTable{
			light:  rgb(0.969, 0.894, 0.725),
			shadow: rgb(0.365, 0.247, 0.165),
			left:   rgb(0.929, 0.773, 0.529),
			right:  rgb(0.631, 0.502, 0.384),
		}, nil
	case PaletteBW:
		return paletteTable{
			light:  rgb(1, 1, 1),
			shadow: rgb(0, 0, 0),
			left:   rgb(0.8, 0.8, 0.8),
			right:  rgb(0.4, 0.4, 0.4),
		}, nil
	case PaletteUnicorn:
		return paletteTable{
			light:  rgb(1, 0.949, 0.820),
			shadow: rgb(0.333, 0.102, 0.545),
			left:   rgb(1, 0.714, 0.757),
			right:  rgb(0.486, 0.545, 0.953),
		}, nil
	default:
		return paletteTable{}, fmt.Errorf("unknown palette %d: %w", int(p), terrain.ErrInvalidParameter)
	}
}

func rgb(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// SphereShade colors the heightfield from its surface normals alone: each
// cell blends between the palette's shadow and light tones by its
// orientation toward a reference sun at sunAzimuth degrees and 45 degrees
// altitude, tinted by the palette's left/right colors for slopes facing
// across the light. NoData cells come out fully transparent.
func SphereShade(f *terrain.HeightField, p Palette, sunAzimuth float64) (*ColorLayer, error) {
	if math.IsNaN(sunAzimuth) || math.IsInf(sunAzimuth, 0) {
		return nil, fmt.Errorf("sun azimuth %v: %w", sunAzimuth, terrain.ErrInvalidParameter)
	}
	tbl, err := p.table()
	if err != nil {
		return nil, err
	}

	sun := lighting.Light{Azimuth: sunAzimuth, Altitude: 45}
	dir := sun.Direction()
	// Horizontal unit vector 90 degrees clockwise of the sun, for the
	// lateral tint.
	azRad := sunAzimuth * math.Pi / 180
	across := r3.Vec{X: math.Cos(azRad), Y: math.Sin(azRad)}

	nf := terrain.ComputeNormals(f)
	out := NewColorLayer(f.Width(), f.Height(), RGBA{})
	for y, fh := 0, f.Height(); y < fh; y++ {
		for x, fw := 0, f.Width(); x < fw; x++ {
			n, _ := nf.At(x, y)
			if n == (r3.Vec{}) {
				continue // NoData stays transparent
			}

			lit := (1 + r3.Dot(n, dir)) / 2
			c := mix(tbl.shadow, tbl.light, lit)

			side := r3.Dot(n, across)
			if side > 0 {
				c = mix(c, tbl.right, side/2)
			} else if side < 0 {
				c = mix(c, tbl.left, -side/2)
			}
			c.A = 1
			out.set(x, y, c)
		}
	}
	return out, nil
}

func mix(a, b RGBA, t float64) RGBA {
	t = clamp01(t)
	return RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
