package dla

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ConfigError describes a rejected configuration value. It unwraps to
// ErrInvalidConfiguration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dla: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// Params holds the tunables of the walk and of the rendering colors.
type Params struct {
	DownBias     float64
	MoveAttempts int

	ParticleColor color.RGBA
	// RecolorStuck paints particles with StuckColor when they freeze.
	// When false a frozen particle keeps its own color.
	RecolorStuck bool
	StuckColor   color.RGBA

	// Workers is the number of column bands planned concurrently by the
	// buffered engine. The sweep engine ignores it.
	Workers int
}

// Config controls the DLA run dimensions and seeding.
type Config struct {
	Width     int
	Height    int
	Particles int

	Seed int64

	Params Params
}

var (
	defaultParticleColor = color.RGBA{R: 255, A: 255}
	defaultStuckColor    = color.RGBA{G: 255, A: 255}
)

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:     256,
		Height:    256,
		Particles: 6000,
		Seed:      1337,
		Params: Params{
			DownBias:      DefaultDownBias,
			MoveAttempts:  DefaultMoveAttempts,
			ParticleColor: defaultParticleColor,
			RecolorStuck:  false,
			StuckColor:    defaultStuckColor,
			Workers:       4,
		},
	}
}

// OriginalConfig returns the large run the renderer was first tuned for:
// 120000 particles on a 1920x1920 field, with frozen particles turned green.
func OriginalConfig() Config {
	c := DefaultConfig()
	c.Width = 1920
	c.Height = 1920
	c.Particles = 120000
	c.Params.RecolorStuck = true
	return c
}

// Validate checks the configuration. Every failure wraps ErrInvalidConfiguration.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &ConfigError{Field: "size", Reason: fmt.Sprintf("grid dimensions must be positive, got %dx%d", c.Width, c.Height)}
	}
	if c.Width > math.MaxInt/c.Height {
		return &ConfigError{Field: "size", Reason: fmt.Sprintf("%dx%d cells overflow int", c.Width, c.Height)}
	}
	if c.Particles < 0 {
		return &ConfigError{Field: "particles", Reason: fmt.Sprintf("must not be negative, got %d", c.Particles)}
	}
	if capacity := c.Width * c.Height; c.Particles > capacity {
		return &ConfigError{Field: "particles", Reason: fmt.Sprintf("%d particles exceed %dx%d grid capacity %d", c.Particles, c.Width, c.Height, capacity)}
	}
	if !(c.Params.DownBias >= 0 && c.Params.DownBias <= 1) {
		return &ConfigError{Field: "bias", Reason: fmt.Sprintf("must be within [0, 1], got %v", c.Params.DownBias)}
	}
	if c.Params.MoveAttempts < 1 {
		return &ConfigError{Field: "attempts", Reason: fmt.Sprintf("must be at least 1, got %d", c.Params.MoveAttempts)}
	}
	if c.Params.Workers < 1 {
		return &ConfigError{Field: "workers", Reason: fmt.Sprintf("must be at least 1, got %d", c.Params.Workers)}
	}
	return nil
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unparseable values are ignored and leave the default in place; range
// checks are left to Validate.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["preset"]; ok && v == "original" {
		c = OriginalConfig()
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Height = parsed
		}
	}
	if v, ok := cfg["particles"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Particles = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["bias"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.DownBias = parsed
		}
	}
	if v, ok := cfg["attempts"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.MoveAttempts = parsed
		}
	}
	if v, ok := cfg["color"]; ok {
		if parsed, err := ParseColor(v); err == nil {
			c.Params.ParticleColor = parsed
		}
	}
	if v, ok := cfg["recolor_stuck"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.RecolorStuck = parsed
		}
	}
	if v, ok := cfg["stuck_color"]; ok {
		if parsed, err := ParseColor(v); err == nil {
			c.Params.StuckColor = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.Workers = parsed
		}
	}
	return c
}

// ParseColor accepts #rrggbb or #rrggbbaa (the leading # is optional).
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor renders c as #rrggbbaa.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
