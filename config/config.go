// Package config loads the abel command and server settings from a TOML
// file.
//
//	[transform]
//	dr = 1.0
//	direction = "inverse"
//	shift = -0.35
//	workers = 0
//	boundary = "zero"
//
//	[server]
//	addr = ":8080"
//	max_body_bytes = 4194304
//
//	[plot]
//	width_inches = 6
//	height_inches = 4
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hammal/abel/hansenlaw"
	"github.com/hammal/abel/signal"
)

// Config is the complete configuration.
type Config struct {
	Transform Transform `toml:"transform"`
	Server    Server    `toml:"server"`
	Plot      Plot      `toml:"plot"`
}

// Transform holds the transform defaults.
type Transform struct {
	Dr        float64 `toml:"dr"`
	Direction string  `toml:"direction"`
	Shift     float64 `toml:"shift"`
	Workers   int     `toml:"workers"`
	Boundary  string  `toml:"boundary"`
}

// Server holds the HTTP service settings.
type Server struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Plot holds the figure size.
type Plot struct {
	WidthInches  float64 `toml:"width_inches"`
	HeightInches float64 `toml:"height_inches"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Transform: Transform{
			Dr:        1,
			Direction: string(hansenlaw.Inverse),
			Boundary:  signal.ZeroFill.String(),
		},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 4 << 20,
		},
		Plot: Plot{
			WidthInches:  6,
			HeightInches: 4,
		},
	}
}

// Load reads fname over the defaults. An empty fname returns the defaults.
func Load(fname string) (Config, error) {
	cfg := Default()
	if fname == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		return cfg, err
	}
	return Parse(string(data))
}

// Parse decodes a TOML document over the defaults and validates it.
func Parse(doc string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(doc, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the enumerated and positive settings.
func (cfg Config) Validate() error {
	if _, err := cfg.Transform.Options(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Transform.Dr < 0 {
		return fmt.Errorf("config: %w: negative dr %v", hansenlaw.ErrInvalidArgument, cfg.Transform.Dr)
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: max_body_bytes must be positive, got %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Plot.WidthInches <= 0 || cfg.Plot.HeightInches <= 0 {
		return fmt.Errorf("config: plot size must be positive, got %vx%v", cfg.Plot.WidthInches, cfg.Plot.HeightInches)
	}
	return nil
}

// Options converts the transform section into transform options.
func (t Transform) Options() (hansenlaw.Options, error) {
	direction, err := hansenlaw.ParseDirection(t.Direction)
	if err != nil {
		return hansenlaw.Options{}, err
	}
	boundary, err := signal.ParseBoundary(t.Boundary)
	if err != nil {
		return hansenlaw.Options{}, err
	}
	return hansenlaw.Options{
		Dr:        t.Dr,
		Direction: direction,
		Shift:     t.Shift,
		Workers:   t.Workers,
		Shifter:   signal.SplineShifter{Boundary: boundary},
	}, nil
}
