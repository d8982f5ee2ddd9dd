package compose

import (
	"fmt"

	"github.com/Faultbox/relief/pkg/shade"
	"github.com/Faultbox/relief/pkg/terrain"
)

// BlendMode selects how a shadow layer combines with the colors beneath it.
type BlendMode int

const (
	// BlendMultiply scales each channel by 1 - maxDarken*(1-shadow): a
	// layer can darken but never lighten the base.
	BlendMultiply BlendMode = iota

	// BlendDarken keeps the darker of the existing channel and the
	// scaled shadow value.
	BlendDarken

	// BlendLighten keeps the lighter of the existing channel and the
	// scaled shadow value.
	BlendLighten
)

// ParseBlendMode resolves a configuration name to a BlendMode.
func ParseBlendMode(name string) (BlendMode, error) {
	switch name {
	case "multiply", "":
		return BlendMultiply, nil
	case "darken":
		return BlendDarken, nil
	case "lighten":
		return BlendLighten, nil
	default:
		return 0, fmt.Errorf("unknown blend mode %q: %w", name, terrain.ErrInvalidParameter)
	}
}

// String returns the blend mode's configuration name.
func (m BlendMode) String() string {
	switch m {
	case BlendMultiply:
		return "multiply"
	case BlendDarken:
		return "darken"
	case BlendLighten:
		return "lighten"
	default:
		return fmt.Sprintf("blend(%d)", int(m))
	}
}

// Layer is one entry in an ordered composite: either a shadow map with a
// blend rule, or a water mask with an overlay color. Exactly one of Shadow
// and Water must be set.
type Layer struct {
	Shadow    *shade.ShadowMap
	Mode      BlendMode
	MaxDarken float64 // blend strength in [0,1] for shadow layers

	Water   *terrain.Mask
	Color   RGBA    // overlay color for water layers
	Opacity float64 // overlay opacity in [0,1] for water layers
}

// Composite applies layers to the base color in order and returns a new
// layer; the base is never mutated. Blending is non-commutative, so the
// caller's ordering is preserved exactly. All grids must share the base's
// dimensions.
func Composite(base *ColorLayer, layers []Layer) (*ColorLayer, error) {
	out := base.clone()
	for i, l := range layers {
		var err error
		switch {
		case l.Shadow != nil && l.Water != nil:
			err = fmt.Errorf("layer %d sets both shadow and water: %w", i, terrain.ErrInvalidParameter)
		case l.Shadow != nil:
			err = applyShadow(out, l.Shadow, l.Mode, l.MaxDarken)
		case l.Water != nil:
			err = applyWater(out, l.Water, l.Color, l.Opacity)
		default:
			err = fmt.Errorf("layer %d sets neither shadow nor water: %w", i, terrain.ErrInvalidParameter)
		}
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return out, nil
}

// AddShadeLayer darkens the base by a single shadow map, returning a new
// layer.
func AddShadeLayer(base *ColorLayer, sm *shade.ShadowMap, mode BlendMode, maxDarken float64) (*ColorLayer, error) {
	out := base.clone()
	if err := applyShadow(out, sm, mode, maxDarken); err != nil {
		return nil, err
	}
	return out, nil
}

// AddWaterLayer alpha-blends the water overlay color onto masked cells,
// returning a new layer.
func AddWaterLayer(base *ColorLayer, mask *terrain.Mask, c RGBA, opacity float64) (*ColorLayer, error) {
	out := base.clone()
	if err := applyWater(out, mask, c, opacity); err != nil {
		return nil, err
	}
	return out, nil
}

func applyShadow(dst *ColorLayer, sm *shade.ShadowMap, mode BlendMode, maxDarken float64) error {
	if sm.Width() != dst.width || sm.Height() != dst.height {
		return fmt.Errorf("shadow map %dx%d vs layer %dx%d: %w",
			sm.Width(), sm.Height(), dst.width, dst.height, terrain.ErrDimensionMismatch)
	}
	if !(maxDarken >= 0 && maxDarken <= 1) {
		return fmt.Errorf("max darken %v outside [0,1]: %w", maxDarken, terrain.ErrInvalidParameter)
	}

	for y := 0; y < dst.height; y++ {
		for x := 0; x < dst.width; x++ {
			s := sm.Value(x, y)
			c := dst.Pixel(x, y)
			if terrain.IsNoData(s) {
				c.A = 0
				dst.set(x, y, c)
				continue
			}

			scaled := 1 - maxDarken*(1-s)
			switch mode {
			case BlendMultiply:
				c.R *= scaled
				c.G *= scaled
				c.B *= scaled
			case BlendDarken:
				c.R = min(c.R, scaled)
				c.G = min(c.G, scaled)
				c.B = min(c.B, scaled)
			case BlendLighten:
				c.R = max(c.R, scaled)
				c.G = max(c.G, scaled)
				c.B = max(c.B, scaled)
			default:
				return fmt.Errorf("blend mode %d: %w", int(mode), terrain.ErrInvalidParameter)
			}
			c.R, c.G, c.B = clamp01(c.R), clamp01(c.G), clamp01(c.B)
			dst.set(x, y, c)
		}
	}
	return nil
}

func applyWater(dst *ColorLayer, mask *terrain.Mask, c RGBA, opacity float64) error {
	if mask.Width() != dst.width || mask.Height() != dst.height {
		return fmt.Errorf("water mask %dx%d vs layer %dx%d: %w",
			mask.Width(), mask.Height(), dst.width, dst.height, terrain.ErrDimensionMismatch)
	}
	if !(opacity >= 0 && opacity <= 1) {
		return fmt.Errorf("water opacity %v outside [0,1]: %w", opacity, terrain.ErrInvalidParameter)
	}

	for y := 0; y < dst.height; y++ {
		for x := 0; x < dst.width; x++ {
			if !mask.Get(x, y) {
				continue
			}
			p := dst.Pixel(x, y)
			p.R = clamp01(p.R + (c.R-p.R)*opacity)
			p.G = clamp01(p.G + (c.G-p.G)*opacity)
			p.B = clamp01(p.B + (c.B-p.B)*opacity)
			if c.A > p.A {
				p.A = c.A
			}
			dst.set(x, y, p)
		}
	}
	return nil
}
