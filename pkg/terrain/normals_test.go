package terrain

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNormalsUnitLength(t *testing.T) {
	f, err := NewHeightField(testGrid(12, 9), 2.5)
	if err != nil {
		t.Fatalf("NewHeightField() error = %v", err)
	}

	nf := ComputeNormals(f)
	for y := 0; y < nf.Height(); y++ {
		for x := 0; x < nf.Width(); x++ {
			n, err := nf.At(x, y)
			if err != nil {
				t.Fatalf("At(%d,%d) error = %v", x, y, err)
			}
			if l := r3.Norm(n); math.Abs(l-1) > 1e-6 {
				t.Errorf("normal at (%d,%d) has length %v, want 1", x, y, l)
			}
		}
	}
}

func TestNormalsFlatGrid(t *testing.T) {
	grid := make([][]float64, 5)
	for y := range grid {
		grid[y] = []float64{100, 100, 100, 100, 100}
	}
	f, err := NewHeightField(grid, 1)
	if err != nil {
		t.Fatalf("NewHeightField() error = %v", err)
	}

	nf := ComputeNormals(f)
	for y := 0; y < nf.Height(); y++ {
		for x := 0; x < nf.Width(); x++ {
			n, _ := nf.At(x, y)
			if n.X != 0 || n.Y != 0 || math.Abs(n.Z-1) > 1e-12 {
				t.Errorf("flat-grid normal at (%d,%d) = %v, want (0,0,1)", x, y, n)
			}
		}
	}
}

func TestNormalsSlopeDirection(t *testing.T) {
	// Elevation rises eastward, so normals must lean west.
	grid := make([][]float64, 4)
	for y := range grid {
		grid[y] = make([]float64, 6)
		for x := range grid[y] {
			grid[y][x] = float64(x) * 3
		}
	}
	f, err := NewHeightField(grid, 1)
	if err != nil {
		t.Fatalf("NewHeightField() error = %v", err)
	}

	nf := ComputeNormals(f)
	for y := 0; y < nf.Height(); y++ {
		for x := 0; x < nf.Width(); x++ {
			n, _ := nf.At(x, y)
			if n.X >= 0 {
				t.Errorf("normal at (%d,%d) = %v, want negative X on an east-rising slope", x, y, n)
			}
			if n.Y != 0 {
				t.Errorf("normal at (%d,%d) has Y = %v, want 0", x, y, n.Y)
			}
		}
	}
}

func TestNormalsZScale(t *testing.T) {
	grid := [][]float64{{0, 10}, {0, 10}}
	steep, _ := NewHeightField(grid, 1)
	gentle, _ := NewHeightField(grid, 10)

	ns, _ := ComputeNormals(steep).At(0, 0)
	ng, _ := ComputeNormals(gentle).At(0, 0)
	if ns.Z >= ng.Z {
		t.Errorf("z-components steep %v vs gentle %v: larger zscale must flatten the slope", ns.Z, ng.Z)
	}
}

func TestNormalsNoData(t *testing.T) {
	grid := testGrid(5, 5)
	grid[2][2] = NoData
	f, _ := NewHeightField(grid, 1)

	nf := ComputeNormals(f)
	if n, _ := nf.At(2, 2); n != (r3.Vec{}) {
		t.Errorf("NoData cell normal = %v, want zero vector", n)
	}
	// Neighbors fall back to one-sided differences and stay unit length.
	if n, _ := nf.At(1, 2); math.Abs(r3.Norm(n)-1) > 1e-6 {
		t.Errorf("neighbor of NoData has length %v, want 1", r3.Norm(n))
	}
}

func TestExtractOutlines(t *testing.T) {
	// A sheer wall between two plateaus.
	grid := make([][]float64, 6)
	for y := range grid {
		grid[y] = make([]float64, 8)
		for x := range grid[y] {
			if x >= 4 {
				grid[y][x] = 100
			}
		}
	}
	f, _ := NewHeightField(grid, 1)
	nf := ComputeNormals(f)

	m, err := ExtractOutlines(nf, 10)
	if err != nil {
		t.Fatalf("ExtractOutlines() error = %v", err)
	}

	if got, _ := m.At(4, 3); !got {
		t.Error("wall cell (4,3) not marked as outline")
	}
	if got, _ := m.At(1, 3); got {
		t.Error("flat cell (1,3) marked as outline")
	}

	for _, bad := range []float64{-1, 91, math.NaN()} {
		if _, err := ExtractOutlines(nf, bad); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("ExtractOutlines(%v) error = %v, want ErrInvalidParameter", bad, err)
		}
	}
}
