package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/Faultbox/relief/pkg/compose"
	"github.com/Faultbox/relief/pkg/lighting"
	"github.com/Faultbox/relief/pkg/shade"
	"github.com/Faultbox/relief/pkg/terrain"
	"github.com/Faultbox/relief/pkg/water"
)

func terracedField(t *testing.T) *terrain.HeightField {
	t.Helper()
	grid := make([][]float64, 16)
	for y := 0; y < 16; y++ {
		grid[y] = make([]float64, 16)
		for x := 0; x < 16; x++ {
			if x >= 4 && x <= 11 && y >= 4 && y <= 11 {
				grid[y][x] = 0
			} else {
				grid[y][x] = float64(x+y) * 2
			}
		}
	}
	f, err := terrain.NewHeightField(grid, 1)
	if err != nil {
		t.Fatalf("NewHeightField() error = %v", err)
	}
	return f
}

func TestPipelineRun(t *testing.T) {
	f := terracedField(t)
	samples, err := lighting.HemisphereSamples(4, 2)
	if err != nil {
		t.Fatalf("HemisphereSamples() error = %v", err)
	}

	p := &Pipeline{
		Engine: &shade.Engine{Workers: 2},
		Steps: []Step{
			{Op: OpSphereShade, Palette: compose.PaletteImhof1, Light: lighting.Light{Azimuth: 315}},
			{Op: OpRayShade, Light: lighting.Light{Azimuth: 315, Altitude: 30}, MaxDarken: 0.7, Mode: compose.BlendMultiply},
			{Op: OpAmbientShade, Samples: samples, MaxDarken: 0.3, Mode: compose.BlendMultiply},
			{
				Op:           OpWaterOverlay,
				Water:        water.Params{Cutoff: 0.99, MinArea: 4, MaxHeight: 5},
				WaterColor:   compose.RGBA{B: 1, A: 1},
				WaterOpacity: 0.9,
			},
		},
	}

	layer, err := p.Run(context.Background(), f)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if layer.Width() != 16 || layer.Height() != 16 {
		t.Fatalf("output dims = %dx%d, want 16x16", layer.Width(), layer.Height())
	}

	// The basin interior picked up the water overlay; the slopes did not.
	basin := layer.Pixel(8, 8)
	slope := layer.Pixel(1, 1)
	if basin.B <= slope.B {
		t.Errorf("basin B=%v not bluer than slope B=%v", basin.B, slope.B)
	}

	for y := 0; y < layer.Height(); y++ {
		for x := 0; x < layer.Width(); x++ {
			c := layer.Pixel(x, y)
			for _, ch := range []float64{c.R, c.G, c.B, c.A} {
				if ch < 0 || ch > 1 {
					t.Fatalf("channel %v at (%d,%d) outside [0,1]", ch, x, y)
				}
			}
		}
	}
}

func TestPipelineShadowOnly(t *testing.T) {
	f := terracedField(t)
	p := &Pipeline{
		Steps: []Step{
			{Op: OpLambShade, Light: lighting.Light{Azimuth: 315, Altitude: 45}, MaxDarken: 1, Mode: compose.BlendMultiply},
		},
	}

	layer, err := p.Run(context.Background(), f)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// Without a sphere step the base is white, so the result is a
	// grayscale hillshade.
	c := layer.Pixel(3, 3)
	if c.R != c.G || c.G != c.B {
		t.Errorf("shadow-only render is not grayscale: %+v", c)
	}
}

func TestPipelineEmpty(t *testing.T) {
	f := terracedField(t)
	p := &Pipeline{}
	if _, err := p.Run(context.Background(), f); !errors.Is(err, terrain.ErrInvalidParameter) {
		t.Errorf("empty pipeline error = %v, want ErrInvalidParameter", err)
	}
}

func TestPipelineCancellation(t *testing.T) {
	f := terracedField(t)
	p := &Pipeline{
		Steps: []Step{
			{Op: OpRayShade, Light: lighting.Light{Azimuth: 0, Altitude: 45}, MaxDarken: 1},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Run(ctx, f); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled run error = %v, want context.Canceled", err)
	}
}

func TestParseOp(t *testing.T) {
	for _, name := range []string{"sphere", "lambert", "raytrace", "ambient", "water"} {
		op, err := ParseOp(name)
		if err != nil {
			t.Errorf("ParseOp(%q) error = %v", name, err)
			continue
		}
		if op.String() != name {
			t.Errorf("ParseOp(%q).String() = %q", name, op.String())
		}
	}
	if _, err := ParseOp("blur"); !errors.Is(err, terrain.ErrInvalidParameter) {
		t.Errorf("ParseOp(unknown) error = %v, want ErrInvalidParameter", err)
	}
}
