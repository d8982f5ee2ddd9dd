// Package compose builds the final per-cell color raster: a palette-driven
// base layer darkened by one or more shadow maps and finished with a water
// overlay. Layer application is ordered and non-commutative.
package compose

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Faultbox/relief/pkg/terrain"
)

// RGBA is a color with float64 channels in [0,1]. Alpha 0 marks cells
// excluded as NoData.
type RGBA struct {
	R, G, B, A float64
}

// ColorLayer is a grid of RGBA values aligned with a heightfield.
type ColorLayer struct {
	width  int
	height int
	pix    []RGBA
}

// NewColorLayer returns a layer of the given dimensions filled with c.
func NewColorLayer(width, height int, c RGBA) *ColorLayer {
	pix := make([]RGBA, width*height)
	for i := range pix {
		pix[i] = c
	}
	return &ColorLayer{width: width, height: height, pix: pix}
}

// Width returns the number of columns.
func (l *ColorLayer) Width() int { return l.width }

// Height returns the number of rows.
func (l *ColorLayer) Height() int { return l.height }

// At returns the color at integer grid coordinates.
func (l *ColorLayer) At(x, y int) (RGBA, error) {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return RGBA{}, fmt.Errorf("(%d,%d) outside %dx%d layer: %w", x, y, l.width, l.height, terrain.ErrOutOfBounds)
	}
	return l.pix[y*l.width+x], nil
}

// Pixel is the unchecked accessor; coordinates must be in range.
func (l *ColorLayer) Pixel(x, y int) RGBA {
	return l.pix[y*l.width+x]
}

func (l *ColorLayer) set(x, y int, c RGBA) {
	l.pix[y*l.width+x] = c
}

// clone returns a deep copy so compositing never mutates its input.
func (l *ColorLayer) clone() *ColorLayer {
	pix := make([]RGBA, len(l.pix))
	copy(pix, l.pix)
	return &ColorLayer{width: l.width, height: l.height, pix: pix}
}

// ToImage converts the layer to an 8-bit NRGBA image for consumers that
// export rasters. Channels are clamped to [0,1] on the way out.
func (l *ColorLayer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, l.width, l.height))
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			c := l.pix[y*l.width+x]
			img.SetNRGBA(x, y, color.NRGBA{
				R: channelByte(c.R),
				G: channelByte(c.G),
				B: channelByte(c.B),
				A: channelByte(c.A),
			})
		}
	}
	return img
}

func channelByte(v float64) uint8 {
	if !(v > 0) { // catches NaN as well
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
