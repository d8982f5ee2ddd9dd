package compose

import (
	"errors"
	"testing"

	"github.com/Faultbox/relief/pkg/terrain"
)

func TestParsePalette(t *testing.T) {
	for _, name := range []string{"imhof1", "imhof2", "imhof3", "imhof4", "desert", "bw", "unicorn"} {
		p, err := ParsePalette(name)
		if err != nil {
			t.Errorf("ParsePalette(%q) error = %v", name, err)
			continue
		}
		if p.String() != name {
			t.Errorf("ParsePalette(%q).String() = %q", name, p.String())
		}
	}

	if _, err := ParsePalette("sepia"); !errors.Is(err, terrain.ErrInvalidParameter) {
		t.Errorf("ParsePalette(unknown) error = %v, want ErrInvalidParameter", err)
	}
}

func TestParseBlendMode(t *testing.T) {
	tests := []struct {
		in   string
		want BlendMode
	}{
		{"multiply", BlendMultiply},
		{"", BlendMultiply},
		{"darken", BlendDarken},
		{"lighten", BlendLighten},
	}
	for _, tt := range tests {
		got, err := ParseBlendMode(tt.in)
		if err != nil {
			t.Errorf("ParseBlendMode(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBlendMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseBlendMode("screen"); !errors.Is(err, terrain.ErrInvalidParameter) {
		t.Errorf("ParseBlendMode(unknown) error = %v, want ErrInvalidParameter", err)
	}
}

func TestSphereShade(t *testing.T) {
	// A ridge running north-south: the east face and west face must get
	// different tints, and every opaque channel stays in [0,1].
	grid := make([][]float64, 8)
	for y := 0; y < 8; y++ {
		grid[y] = make([]float64, 9)
		for x := 0; x < 9; x++ {
			d := x - 4
			if d < 0 {
				d = -d
			}
			grid[y][x] = 100 - float64(d)*5
		}
	}
	f, err := terrain.NewHeightField(grid, 1)
	if err != nil {
		t.Fatalf("NewHeightField() error = %v", err)
	}

	layer, err := SphereShade(f, PaletteImhof1, 315)
	if err != nil {
		t.Fatalf("SphereShade() error = %v", err)
	}

	east := layer.Pixel(6, 4)
	west := layer.Pixel(2, 4)
	if east == west {
		t.Error("east and west ridge faces shaded identically")
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

func TestSphereShadeNoData(t *testing.T) {
	grid := [][]float64{{100, 100}, {terrain.NoData, 100}}
	f, err := terrain.NewHeightField(grid, 1)
	if err != nil {
		t.Fatalf("NewHeightField() error = %v", err)
	}

	layer, err := SphereShade(f, PaletteBW, 315)
	if err != nil {
		t.Fatalf("SphereShade() error = %v", err)
	}
	if got := layer.Pixel(0, 1).A; got != 0 {
		t.Errorf("NoData cell alpha = %v, want 0", got)
	}
	if got := layer.Pixel(1, 1).A; got != 1 {
		t.Errorf("valid cell alpha = %v, want 1", got)
	}
}
