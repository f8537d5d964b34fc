// Package config loads the settings of the svg2png command.
//
// Configuration is an optional TOML file:
//
//	[render]
//	default_size = 512
//	max_dimension = 16384
//	dpi = 96
//	strict = false
//	opacity = 1.0
//
//	[assets]
//	dir = "assets"
//
//	[resources]
//	dir = "res"
//	[resources.ids]
//	"0x7f0e0001" = "raw/logo.svg"
//
//	[log]
//	level = "info"
//	file = ""
//	max_size_mb = 10
//
// Missing keys keep their default value; unknown keys are an error.
package config

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config is the top-level configuration.
type Config struct {
	// Render holds conversion settings.
	Render RenderConfig `toml:"render"`
	// Assets describes the asset bundle.
	Assets AssetsConfig `toml:"assets"`
	// Resources describes packaged resources.
	Resources ResourcesConfig `toml:"resources"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
}

// RenderConfig holds conversion settings.
type RenderConfig struct {
	// DefaultSize is the side of the square used when neither the request
	// nor the document gives a size.
	DefaultSize int `toml:"default_size"`
	// MaxDimension bounds each side of an output image.
	MaxDimension int `toml:"max_dimension"`
	// DPI converts physical document lengths (mm, in, pt...) to pixels.
	DPI float64 `toml:"dpi"`
	// Strict rejects documents using unsupported SVG elements.
	Strict bool `toml:"strict"`
	// Opacity is the global opacity the document is drawn with, in [0, 1].
	Opacity float64 `toml:"opacity"`
}

// AssetsConfig describes the asset bundle.
type AssetsConfig struct {
	// Dir is the bundle root directory. Empty disables assets.
	Dir string `toml:"dir"`
}

// ResourcesConfig maps resource identifiers to files.
type ResourcesConfig struct {
	// Dir is the directory resource paths are relative to.
	Dir string `toml:"dir"`
	// IDs maps identifiers, in decimal or 0x hexadecimal, to paths.
	IDs map[string]string `toml:"ids"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `toml:"level"`
	// File, when set, receives the logs instead of stderr.
	File string `toml:"file"`
	// MaxSizeMB is the size in megabytes after which File is rotated.
	MaxSizeMB int `toml:"max_size_mb"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			DefaultSize:  512,
			MaxDimension: 16384,
			DPI:          96,
			Opacity:      1,
		},
		Resources: ResourcesConfig{Dir: "."},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// Load reads the TOML file at path over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("loading config %s: unknown keys %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Render.DefaultSize <= 0 {
		return fmt.Errorf("render.default_size must be positive, got %d", c.Render.DefaultSize)
	}
	if c.Render.MaxDimension <= 0 {
		return fmt.Errorf("render.max_dimension must be positive, got %d", c.Render.MaxDimension)
	}
	if c.Render.DefaultSize > c.Render.MaxDimension {
		return fmt.Errorf("render.default_size %d exceeds render.max_dimension %d", c.Render.DefaultSize, c.Render.MaxDimension)
	}
	if c.Render.DPI <= 0 {
		return fmt.Errorf("render.dpi must be positive, got %v", c.Render.DPI)
	}
	if c.Render.Opacity < 0 || c.Render.Opacity > 1 {
		return fmt.Errorf("render.opacity must be between 0 and 1, got %v", c.Render.Opacity)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.MaxSizeMB < 0 {
		return fmt.Errorf("log.max_size_mb cannot be negative, got %d", c.Log.MaxSizeMB)
	}
	_, err := c.ResourceIDs()
	return err
}

// ResourceIDs returns the resource table with parsed identifiers.
func (c *Config) ResourceIDs() (map[int]string, error) {
	ids := make(map[int]string, len(c.Resources.IDs))
	for key, path := range c.Resources.IDs {
		id, err := strconv.ParseInt(key, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("resources.ids: invalid identifier %q", key)
		}
		ids[int(id)] = path
	}
	return ids, nil
}
