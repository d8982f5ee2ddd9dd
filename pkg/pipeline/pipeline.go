// Package pipeline applies an ordered list of shading and overlay
// operations to a heightfield, producing a final color raster. The step
// list replaces ad-hoc call-site chaining so layer ordering — which the
// blend rules make significant — lives in data rather than control flow.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/relief/pkg/compose"
	"github.com/Faultbox/relief/pkg/lighting"
	"github.com/Faultbox/relief/pkg/shade"
	"github.com/Faultbox/relief/pkg/terrain"
	"github.com/Faultbox/relief/pkg/water"
)

// Op identifies a pipeline operation.
type Op int

const (
	// OpSphereShade replaces the base layer with palette coloring derived
	// from surface normals.
	OpSphereShade Op = iota

	// OpLambShade darkens the base with a lambertian shadow map.
	OpLambShade

	// OpRayShade darkens the base with a raytraced shadow map.
	OpRayShade

	// OpAmbientShade darkens the base with hemisphere ambient occlusion.
	OpAmbientShade

	// OpWaterOverlay blends a water color over detected water cells.
	OpWaterOverlay
)

// String returns the op's configuration name.
func (o Op) String() string {
	switch o {
	case OpSphereShade:
		return "sphere"
	case OpLambShade:
		return "lambert"
	case OpRayShade:
		return "raytrace"
	case OpAmbientShade:
		return "ambient"
	case OpWaterOverlay:
		return "water"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// ParseOp resolves a configuration name to an Op.
func ParseOp(name string) (Op, error) {
	switch name {
	case "sphere":
		return OpSphereShade, nil
	case "lambert":
		return OpLambShade, nil
	case "raytrace":
		return OpRayShade, nil
	case "ambient":
		return OpAmbientShade, nil
	case "water":
		return OpWaterOverlay, nil
	default:
		return 0, fmt.Errorf("unknown pipeline op %q: %w", name, terrain.ErrInvalidParameter)
	}
}

// Step is one operation with its parameters. Only the fields relevant to
// the op are read.
type Step struct {
	Op Op

	// Light drives lambert and raytrace steps, and sphere steps through
	// its azimuth.
	Light lighting.Light

	// MaxDarken and Mode control how shading steps blend into the base.
	MaxDarken float64
	Mode      compose.BlendMode

	// Palette applies to sphere steps.
	Palette compose.Palette

	// Samples drives ambient steps.
	Samples []lighting.Sample

	// Water, WaterColor and WaterOpacity drive water overlay steps.
	Water        water.Params
	WaterColor   compose.RGBA
	WaterOpacity float64
}

// Pipeline is a caller-owned rendering session: an engine plus an ordered
// step list. It holds no hidden global state and may be rerun against any
// number of heightfields.
type Pipeline struct {
	Engine *shade.Engine
	Steps  []Step
	Logger *zap.Logger
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *Pipeline) engine() *shade.Engine {
	if p.Engine == nil {
		return &shade.Engine{}
	}
	return p.Engine
}

// Run applies every step in order and returns the final color layer. The
// base starts white so a pipeline of pure shadow steps still produces a
// grayscale hillshade; a sphere step replaces the base outright. Steps
// never run concurrently with each other — each pass completes, then
// feeds the compositor.
func (p *Pipeline) Run(ctx context.Context, f *terrain.HeightField) (*compose.ColorLayer, error) {
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("pipeline has no steps: %w", terrain.ErrInvalidParameter)
	}

	eng := p.engine()
	out := compose.NewColorLayer(f.Width(), f.Height(), compose.RGBA{R: 1, G: 1, B: 1, A: 1})

	for i, s := range p.Steps {
		start := time.Now()
		var err error
		switch s.Op {
		case OpSphereShade:
			out, err = compose.SphereShade(f, s.Palette, s.Light.Azimuth)
		case OpLambShade:
			var sm *shade.ShadowMap
			if sm, err = eng.LambShade(ctx, f, s.Light); err == nil {
				out, err = compose.AddShadeLayer(out, sm, s.Mode, s.MaxDarken)
			}
		case OpRayShade:
			var sm *shade.ShadowMap
			if sm, err = eng.RayShade(ctx, f, s.Light); err == nil {
				out, err = compose.AddShadeLayer(out, sm, s.Mode, s.MaxDarken)
			}
		case OpAmbientShade:
			var sm *shade.ShadowMap
			if sm, err = eng.AmbientShade(ctx, f, s.Samples); err == nil {
				out, err = compose.AddShadeLayer(out, sm, s.Mode, s.MaxDarken)
			}
		case OpWaterOverlay:
			var mask *terrain.Mask
			if mask, err = water.Detect(f, s.Water); err == nil {
				out, err = compose.AddWaterLayer(out, mask, s.WaterColor, s.WaterOpacity)
			}
		default:
			err = fmt.Errorf("op %d: %w", int(s.Op), terrain.ErrInvalidParameter)
		}
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, s.Op, err)
		}

		p.logger().Debug("pipeline step done",
			zap.Int("step", i), zap.Stringer("op", s.Op),
			zap.Duration("elapsed", time.Since(start)))
	}
	return out, nil
}
