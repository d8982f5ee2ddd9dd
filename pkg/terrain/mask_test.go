package terrain

import (
	"errors"
	"testing"
)

func TestMaskSetAndCount(t *testing.T) {
	m := NewMask(4, 3)
	if m.Count() != 0 {
		t.Fatalf("new mask count = %d, want 0", m.Count())
	}

	if err := m.Set(1, 2, true); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, err := m.At(1, 2); err != nil || !got {
		t.Errorf("At(1,2) = %v, %v, want true", got, err)
	}
	if m.Count() != 1 {
		t.Errorf("count = %d, want 1", m.Count())
	}

	if err := m.Set(4, 0, true); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Set out of bounds error = %v, want ErrOutOfBounds", err)
	}
	if _, err := m.At(-1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("At out of bounds error = %v, want ErrOutOfBounds", err)
	}
}

func TestMaskSubtract(t *testing.T) {
	// Classifications stay mutually exclusive: removing one mask from
	// another leaves no shared cells.
	water := NewMask(3, 3)
	walls := NewMask(3, 3)
	for _, c := range [][2]int{{0, 0}, {1, 1}, {2, 2}} {
		water.Set(c[0], c[1], true)
	}
	walls.Set(1, 1, true)
	walls.Set(2, 0, true)

	if err := water.Subtract(walls); err != nil {
		t.Fatalf("Subtract() error = %v", err)
	}

	if got := water.Get(1, 1); got {
		t.Error("cell shared with the subtracted mask survived")
	}
	if !water.Get(0, 0) || !water.Get(2, 2) {
		t.Error("unshared cells were cleared")
	}
	if walls.Get(1, 1) != true {
		t.Error("subtracted mask was mutated")
	}
}

func TestMaskSubtractDimensionMismatch(t *testing.T) {
	if err := NewMask(3, 3).Subtract(NewMask(3, 4)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Subtract mismatch error = %v, want ErrDimensionMismatch", err)
	}
}
