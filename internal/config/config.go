// Package config loads the calculator's TOML configuration. Every setting
// has a compiled-in default so the program runs without any file present.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Config is the root configuration structure.
type Config struct {
	Input   InputConfig   `toml:"input"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
}

// InputConfig bounds what may be typed before the core ever sees it.
type InputConfig struct {
	// MaxLength is the input-length ceiling in characters.
	MaxLength int `toml:"max_length"`
	// MaxLiteral is the magnitude cap for a single numeric literal.
	MaxLiteral float64 `toml:"max_literal"`
}

// DisplayConfig controls result rendering.
type DisplayConfig struct {
	// DecimalPlaces is the fixed number of places before trimming.
	DecimalPlaces int32 `toml:"decimal_places"`
	// MaxResult is the displayed-result magnitude cap, as a decimal string.
	MaxResult string `toml:"max_result"`
}

// LogConfig controls the file logger. An empty file disables logging.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			MaxLength:  50,
			MaxLiteral: 1e100,
		},
		Display: DisplayConfig{
			DecimalPlaces: 10,
			MaxResult:     "1e50",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "deskcalc", "config.toml")
}

// Load reads a TOML file over the defaults. With an empty path the default
// location is tried and silently skipped if absent; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Input.MaxLength <= 0 {
		return fmt.Errorf("input.max_length must be positive, got %d", c.Input.MaxLength)
	}
	if c.Display.DecimalPlaces < 0 {
		return fmt.Errorf("display.decimal_places must not be negative, got %d", c.Display.DecimalPlaces)
	}
	if _, err := decimal.NewFromString(c.Display.MaxResult); err != nil {
		return fmt.Errorf("display.max_result: %w", err)
	}
	return nil
}

// MaxResult returns the display cap as a decimal.
func (c *Config) MaxResult() decimal.Decimal {
	d, err := decimal.NewFromString(c.Display.MaxResult)
	if err != nil {
		// validate has already run for loaded files; defaults are valid.
		return decimal.RequireFromString(Default().Display.MaxResult)
	}
	return d
}
