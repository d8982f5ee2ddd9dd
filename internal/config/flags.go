package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWorkers = flag.Int("workers", 0, "Shading worker count (0 = one per CPU)")
	flagPalette = flag.String("palette", "", "Base palette name")
	flagZScale  = flag.Float64("zscale", 0, "Vertical exaggeration override")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWorkers > 0 {
		cfg.Engine.Workers = *flagWorkers
	}
	if *flagPalette != "" {
		cfg.Render.Palette = *flagPalette
	}
	if *flagZScale > 0 {
		cfg.Render.ZScale = *flagZScale
	}
}
