package config

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/relief/pkg/compose"
	"github.com/Faultbox/relief/pkg/lighting"
	"github.com/Faultbox/relief/pkg/pipeline"
	"github.com/Faultbox/relief/pkg/shade"
	"github.com/Faultbox/relief/pkg/terrain"
	"github.com/Faultbox/relief/pkg/water"
)

// BuildPipeline resolves the configuration into a runnable pipeline for
// the given heightfield. All string-keyed settings (palette, ops, blend
// modes) are validated and resolved here, before any shading runs.
func (c *Config) BuildPipeline(f *terrain.HeightField, log *zap.Logger) (*pipeline.Pipeline, error) {
	pal, err := compose.ParsePalette(c.Render.Palette)
	if err != nil {
		return nil, err
	}

	waterParams := water.Params{
		Cutoff:    c.Water.Cutoff,
		MinArea:   c.Water.MinArea,
		MaxHeight: c.Water.MaxHeight,
	}
	if waterParams.MinArea == 0 {
		waterParams.MinArea = water.DefaultParams(f).MinArea
	}
	if waterParams.MaxHeight == 0 {
		waterParams.MaxHeight = math.Inf(1)
	}
	waterColor, err := parseHexColor(c.Water.Color)
	if err != nil {
		return nil, err
	}

	steps := make([]pipeline.Step, 0, len(c.Render.Steps))
	for i, sc := range c.Render.Steps {
		op, err := pipeline.ParseOp(sc.Op)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		mode, err := compose.ParseBlendMode(sc.Blend)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		step := pipeline.Step{
			Op:        op,
			Light:     lighting.Light{Azimuth: sc.Azimuth, Altitude: sc.Altitude},
			MaxDarken: sc.MaxDarken,
			Mode:      mode,
			Palette:   pal,
		}
		if op == pipeline.OpAmbientShade {
			az, alt := sc.Azimuths, sc.Altitudes
			if az == 0 {
				az = 8
			}
			if alt == 0 {
				alt = 3
			}
			samples, err := lighting.HemisphereSamples(az, alt)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			step.Samples = samples
		}
		if op == pipeline.OpWaterOverlay {
			step.Water = waterParams
			step.WaterColor = waterColor
			step.WaterOpacity = c.Water.Opacity
		}
		steps = append(steps, step)
	}

	eng := &shade.Engine{
		Workers: c.Engine.Workers,
		Raymarcher: shade.Raymarcher{
			Step:        c.Engine.StepSize,
			MaxDistance: c.Engine.MaxDistance,
		},
		SunBreadth: c.Engine.SunBreadth,
		Rays:       c.Engine.Rays,
		Logger:     log,
	}

	return &pipeline.Pipeline{Engine: eng, Steps: steps, Logger: log}, nil
}

// parseHexColor parses "#rrggbb" into a fully opaque color.
func parseHexColor(s string) (compose.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return compose.RGBA{}, fmt.Errorf("color %q is not #rrggbb: %w", s, terrain.ErrInvalidParameter)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return compose.RGBA{}, fmt.Errorf("color %q: %w", s, terrain.ErrInvalidParameter)
	}
	return compose.RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: 1,
	}, nil
}
