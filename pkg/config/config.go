// Package config loads renderer settings from RAYTRACER_* environment
// variables.
package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. RAYTRACER_WIDTH
const Prefix = "RAYTRACER"

type Config struct {
	Port           int      `envconfig:"PORT" default:"8080"`
	Scene          string   `envconfig:"SCENE" default:"default"`
	Width          int      `envconfig:"WIDTH" default:"400"`
	Height         int      `envconfig:"HEIGHT" default:"225"`
	MaxDepth       int      `envconfig:"MAX_DEPTH" default:"5"`
	Workers        int      `envconfig:"WORKERS" default:"0"`
	TileSize       int      `envconfig:"TILE_SIZE" default:"32"`
	OutputDir      string   `envconfig:"OUTPUT_DIR" default:"output"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"localhost:3000,localhost:5173"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every out-of-range setting
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.TileSize < 1 {
		errs = append(errs, fmt.Errorf("tile size must be at least 1, got %d", c.TileSize))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	return errors.Join(errs...)
}
