package synth

import (
	"math"
	"testing"
)

func TestFractalDeterministic(t *testing.T) {
	a := Fractal(32, 24, 42, 4, 50)
	b := Fractal(32, 24, 42, 4, 50)

	if len(a) != 24 || len(a[0]) != 32 {
		t.Fatalf("grid dims = %dx%d, want 32x24", len(a[0]), len(a))
	}
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				t.Fatalf("same seed diverged at (%d,%d): %v != %v", x, y, a[y][x], b[y][x])
			}
		}
	}
}

func TestFractalSeedChangesTerrain(t *testing.T) {
	a := Fractal(16, 16, 1, 4, 50)
	b := Fractal(16, 16, 2, 4, 50)

	same := true
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				same = false
			}
		}
	}
	if same {
		t.Error("different seeds produced identical terrain")
	}
}

func TestFractalBounded(t *testing.T) {
	grid := Fractal(32, 32, 7, 5, 100)

	// Amplitudes halve per octave, so the total is below 2x the base.
	limit := 200.0
	for y := range grid {
		for x := range grid[y] {
			v := grid[y][x]
			if math.IsNaN(v) || math.Abs(v) >= limit {
				t.Fatalf("value %v at (%d,%d) outside (-%v,%v)", v, x, y, limit, limit)
			}
		}
	}
}

func TestStamp(t *testing.T) {
	grid := make([][]float64, 10)
	for y := 0; y < 10; y++ {
		grid[y] = make([]float64, 10)
	}

	// A square plateau from (2,2) to (7,7).
	Stamp(grid, [][2]float64{{2, 2}, {7.5, 2}, {7.5, 7.5}, {2, 7.5}}, 50)

	if got := grid[4][4]; got != 50 {
		t.Errorf("interior cell = %v, want 50", got)
	}
	if got := grid[0][0]; got != 0 {
		t.Errorf("exterior cell = %v, want 0", got)
	}
	if got := grid[9][9]; got != 0 {
		t.Errorf("exterior cell = %v, want 0", got)
	}

	// Degenerate outlines leave the grid alone.
	Stamp(grid, [][2]float64{{1, 1}, {2, 2}}, 99)
	if got := grid[1][1]; got != 0 {
		t.Errorf("two-vertex stamp modified the grid: %v", got)
	}
}

func TestPeak(t *testing.T) {
	grid := Peak(11, 11, 10, 60)

	if got := grid[5][5]; got != 60 {
		t.Errorf("center elevation = %v, want 60", got)
	}
	if got := grid[0][0]; got != 10 {
		t.Errorf("corner elevation = %v, want base 10", got)
	}
	if got := grid[5][2]; got <= 10 || got >= 60 {
		t.Errorf("mid-slope elevation = %v, want between base and peak", got)
	}
}
