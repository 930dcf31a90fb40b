// Package config holds the tunable defaults of the editing engine:
// viewport and export resolutions, the zoom range, history depth, the
// flood-fill barrier threshold and brush defaults. Fields may be
// loaded from a JSON file and fall back to safe defaults.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Config holds runtime configuration for one editing session.
type Config struct {
	// Interactive viewport size in pixels.
	ViewportWidth  int `json:"viewport_width"`
	ViewportHeight int `json:"viewport_height"`

	// Export output size in pixels, independent of the viewport.
	OutputWidth  int `json:"output_width"`
	OutputHeight int `json:"output_height"`

	MinZoom float64 `json:"min_zoom"`
	MaxZoom float64 `json:"max_zoom"`

	// HistoryDepth bounds the number of retained undo snapshots.
	HistoryDepth int `json:"history_depth"`

	// BarrierAlpha is the minimum mask alpha flood fill treats as a wall.
	BarrierAlpha uint8 `json:"barrier_alpha"`

	// Brush defaults. Colors are "#RRGGBB" hex with a separate alpha.
	BrushColor  string  `json:"brush_color"`
	BrushAlpha  uint8   `json:"brush_alpha"`
	BrushRadius float64 `json:"brush_radius"`

	// Mask marker color: the fixed translucent color the mask tool and
	// face masking paint with, regardless of the chosen brush color.
	MaskColor string `json:"mask_color"`
	MaskAlpha uint8  `json:"mask_alpha"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		ViewportWidth:  960,
		ViewportHeight: 540,
		OutputWidth:    1920,
		OutputHeight:   1080,
		MinZoom:        0.5,
		MaxZoom:        4.0,
		HistoryDepth:   20,
		BarrierAlpha:   8,
		BrushColor:     "#E5484D",
		BrushAlpha:     255,
		BrushRadius:    12,
		MaskColor:      "#30A46C",
		MaskAlpha:      128,
		LogLevel:       "info",
	}
}

// Validate clamps values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = d.ViewportWidth
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = d.ViewportHeight
	}
	if c.OutputWidth <= 0 {
		c.OutputWidth = d.OutputWidth
	}
	if c.OutputHeight <= 0 {
		c.OutputHeight = d.OutputHeight
	}
	if c.MinZoom <= 0 {
		c.MinZoom = d.MinZoom
	}
	if c.MaxZoom < c.MinZoom {
		c.MaxZoom = c.MinZoom
	}
	if c.HistoryDepth <= 0 {
		c.HistoryDepth = d.HistoryDepth
	}
	if c.BrushRadius <= 0 {
		c.BrushRadius = d.BrushRadius
	}
	if _, err := ParseHexColor(c.BrushColor, c.BrushAlpha); err != nil {
		return fmt.Errorf("brush_color: %w", err)
	}
	if _, err := ParseHexColor(c.MaskColor, c.MaskAlpha); err != nil {
		return fmt.Errorf("mask_color: %w", err)
	}
	return nil
}

// Load reads configuration from the given JSON file path. A missing
// file returns DefaultConfig(); a malformed file returns defaults with
// the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// BrushNRGBA returns the configured default brush color.
func (c *Config) BrushNRGBA() color.NRGBA {
	nc, _ := ParseHexColor(c.BrushColor, c.BrushAlpha)
	return nc
}

// MaskNRGBA returns the configured mask marker color.
func (c *Config) MaskNRGBA() color.NRGBA {
	nc, _ := ParseHexColor(c.MaskColor, c.MaskAlpha)
	return nc
}

// ParseHexColor parses a "#RRGGBB" hex string and attaches the given
// alpha.
func ParseHexColor(hex string, alpha uint8) (color.NRGBA, error) {
	cf, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := cf.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
