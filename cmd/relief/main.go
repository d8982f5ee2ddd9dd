// Package main is the relief renderer: it shades a heightfield through the
// configured pipeline and writes the result as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/relief/internal/config"
	"github.com/Faultbox/relief/internal/logger"
	"github.com/Faultbox/relief/internal/synth"
	"github.com/Faultbox/relief/pkg/terrain"
)

var (
	flagOut     = flag.String("out", "relief.png", "Output PNG path")
	flagWidth   = flag.Int("width", 512, "Synthetic terrain width in cells")
	flagHeight  = flag.Int("height", 512, "Synthetic terrain height in cells")
	flagSeed    = flag.Int64("seed", 1, "Synthetic terrain seed")
	flagPreview = flag.Float64("preview", 1, "Resolution factor in (0,1] for fast previews")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	grid := synth.Fractal(*flagWidth, *flagHeight, *flagSeed, 6, 80)
	field, err := terrain.NewHeightField(grid, cfg.Render.ZScale)
	if err != nil {
		return err
	}

	if *flagPreview != 1 {
		field, err = field.ReduceResolution(*flagPreview)
		if err != nil {
			return err
		}
		logger.Log.Info("rendering preview resolution",
			zap.Int("width", field.Width()), zap.Int("height", field.Height()))
	}

	p, err := cfg.BuildPipeline(field, logger.Log)
	if err != nil {
		return err
	}

	start := time.Now()
	layer, err := p.Run(ctx, field)
	if err != nil {
		return err
	}
	logger.Log.Info("pipeline complete",
		zap.Int("steps", len(p.Steps)),
		zap.Duration("elapsed", time.Since(start)))

	out, err := os.Create(*flagOut)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := png.Encode(out, layer.ToImage()); err != nil {
		return err
	}
	logger.Log.Info("wrote render", zap.String("path", *flagOut))
	return nil
}
