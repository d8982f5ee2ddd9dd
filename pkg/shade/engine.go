package shade

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/relief/pkg/lighting"
	"github.com/Faultbox/relief/pkg/terrain"
)

// Engine runs shading passes over a heightfield. The zero value is usable:
// it traces with default march settings, hard shadows, one worker per CPU
// and no logging. An Engine holds no per-pass state and may be reused;
// each call is a pure function of its inputs.
type Engine struct {
	// Workers caps concurrent band workers. <= 0 means NumCPU.
	Workers int

	// Raymarcher supplies trace tuning for the raytraced and ambient
	// passes.
	Raymarcher Raymarcher

	// SunBreadth is the angular radius of the sun disk in degrees. With
	// Rays > 1 it enables soft shadow accumulation in RayShade.
	SunBreadth float64

	// Rays is the number of sub-samples across the sun disk per cell.
	Rays int

	// Logger receives per-pass debug timing. Nil disables logging.
	Logger *zap.Logger
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Engine) workers() int {
	if e.Workers <= 0 {
		return runtime.NumCPU()
	}
	return e.Workers
}

// LambShade computes lambertian illumination: per-cell max(0, n·l) with no
// occlusion. Cheap, but inherently ambiguous — a negated heightfield lit
// from the opposite azimuth shades identically. A light at or below the
// horizon yields an all-zero map.
func (e *Engine) LambShade(ctx context.Context, f *terrain.HeightField, l lighting.Light) (*ShadowMap, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	out := newShadowMap(f.Width(), f.Height())
	if l.BelowHorizon() {
		return out, nil
	}

	start := time.Now()
	// Normals must be complete before any band reads them.
	nf := terrain.ComputeNormals(f)
	dir := l.Direction()

	err := e.forEachBand(ctx, f.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x, fw := 0, f.Width(); x < fw; x++ {
				n, _ := nf.At(x, y)
				if n == (r3.Vec{}) {
					out.set(x, y, terrain.NoData)
					continue
				}
				out.set(x, y, math.Max(0, r3.Dot(n, dir)))
			}
		}
	})
	if err != nil {
		return nil, err
	}

	e.logger().Debug("lambertian pass done",
		zap.Int("width", f.Width()), zap.Int("height", f.Height()),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

// RayShade computes occlusion-aware illumination by marching a ray from
// every cell toward the light. With SunBreadth and Rays set, occlusion is
// averaged across the sun's angular disk for soft shadow edges. A light at
// or below the horizon yields an all-zero map without tracing.
func (e *Engine) RayShade(ctx context.Context, f *terrain.HeightField, l lighting.Light) (*ShadowMap, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	out := newShadowMap(f.Width(), f.Height())
	if l.BelowHorizon() {
		return out, nil
	}

	start := time.Now()
	err := e.forEachBand(ctx, f.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x, fw := 0, f.Width(); x < fw; x++ {
				out.set(x, y, e.Raymarcher.TraceSoft(f, x, y, l, e.SunBreadth, e.Rays))
			}
		}
	})
	if err != nil {
		return nil, err
	}

	e.logger().Debug("raytrace pass done",
		zap.Int("width", f.Width()), zap.Int("height", f.Height()),
		zap.Float64("azimuth", l.Azimuth), zap.Float64("altitude", l.Altitude),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

// AmbientShade approximates sky visibility by averaging hard occlusion
// traces over the given hemisphere samples, weighted by each sample's
// share of the sky's solid angle. Samples at or below the horizon
// contribute zero illumination for their weight.
func (e *Engine) AmbientShade(ctx context.Context, f *terrain.HeightField, samples []lighting.Sample) (*ShadowMap, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("ambient shading needs at least one sample: %w", terrain.ErrInvalidParameter)
	}
	total := 0.0
	for _, s := range samples {
		if err := s.Light.Validate(); err != nil {
			return nil, err
		}
		if s.Weight < 0 || math.IsNaN(s.Weight) {
			return nil, fmt.Errorf("sample weight %v: %w", s.Weight, terrain.ErrInvalidParameter)
		}
		total += s.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("sample weights sum to %v: %w", total, terrain.ErrInvalidParameter)
	}

	start := time.Now()
	out := newShadowMap(f.Width(), f.Height())
	err := e.forEachBand(ctx, f.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x, fw := 0, f.Width(); x < fw; x++ {
				sum := 0.0
				noData := false
				for _, s := range samples {
					if s.Light.BelowHorizon() {
						continue
					}
					v := e.Raymarcher.TraceOcclusion(f, x, y, s.Light)
					if terrain.IsNoData(v) {
						noData = true
						break
					}
					sum += v * s.Weight
				}
				if noData {
					out.set(x, y, terrain.NoData)
				} else {
					out.set(x, y, sum/total)
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}

	e.logger().Debug("ambient occlusion pass done",
		zap.Int("width", f.Width()), zap.Int("height", f.Height()),
		zap.Int("samples", len(samples)),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

// forEachBand partitions rows into bands and runs fn over them with
// bounded parallelism. Bands write disjoint output rows so no locking is
// needed; cancellation is checked between bands, never mid-band, and a
// cancelled pass returns no partial result.
func (e *Engine) forEachBand(ctx context.Context, height int, fn func(y0, y1 int)) error {
	workers := e.workers()
	// A few bands per worker keeps the cancellation checks frequent
	// without fragmenting the cache-friendly row sweeps.
	band := max(height/(workers*4), 1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y0 := 0; y0 < height; y0 += band {
		y0, y1 := y0, min(y0+band, height)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(y0, y1)
			return nil
		})
	}
	return g.Wait()
}
