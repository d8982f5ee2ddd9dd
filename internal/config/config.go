// Package config handles render configuration loading and management.
package config

import "math"

// Config holds all renderer settings.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Render  RenderConfig  `yaml:"render"`
	Water   WaterConfig   `yaml:"water"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig tunes the shading engine.
type EngineConfig struct {
	Workers     int     `yaml:"workers"`      // 0 = one per CPU
	StepSize    float64 `yaml:"step_size"`    // ray march step in cells, 0 = 0.5
	MaxDistance float64 `yaml:"max_distance"` // trace cap in cells, 0 = grid diagonal
	SunBreadth  float64 `yaml:"sun_breadth"`  // sun disk radius in degrees, 0 = hard shadows
	Rays        int     `yaml:"rays"`         // sub-rays across the sun disk
}

// RenderConfig describes the shading pipeline.
type RenderConfig struct {
	Palette string       `yaml:"palette"`
	ZScale  float64      `yaml:"zscale"`
	Steps   []StepConfig `yaml:"steps"`
}

// StepConfig is one pipeline step. Op is one of sphere, lambert, raytrace,
// ambient or water; the remaining fields apply per op.
type StepConfig struct {
	Op        string  `yaml:"op"`
	Azimuth   float64 `yaml:"azimuth"`
	Altitude  float64 `yaml:"altitude"`
	MaxDarken float64 `yaml:"max_darken"`
	Blend     string  `yaml:"blend"`
	Azimuths  int     `yaml:"azimuths"`  // ambient hemisphere sampling
	Altitudes int     `yaml:"altitudes"` // ambient hemisphere sampling
}

// WaterConfig tunes water detection and the overlay color. The defaults
// are starting points, not constants with any principled derivation — tune
// them per dataset.
type WaterConfig struct {
	Cutoff    float64 `yaml:"cutoff"`
	MinArea   int     `yaml:"min_area"` // 0 = 1/400th of the grid area
	MaxHeight float64 `yaml:"max_height"`
	Color     string  `yaml:"color"`
	Opacity   float64 `yaml:"opacity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values: an imhof palette
// base, one raytraced pass from the northwest, and a water overlay.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Workers:    0,
			StepSize:   0.5,
			SunBreadth: 0,
			Rays:       1,
		},
		Render: RenderConfig{
			Palette: "imhof1",
			ZScale:  1,
			Steps: []StepConfig{
				{Op: "sphere", Azimuth: 315},
				{Op: "raytrace", Azimuth: 315, Altitude: 45, MaxDarken: 0.7, Blend: "multiply"},
				{Op: "ambient", Azimuths: 8, Altitudes: 3, MaxDarken: 0.3, Blend: "multiply"},
				{Op: "water"},
			},
		},
		Water: WaterConfig{
			Cutoff:    0.999,
			MinArea:   0,
			MaxHeight: math.Inf(1),
			Color:     "#4e7982",
			Opacity:   0.9,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
