// Package config loads front-end settings: embedded defaults, an optional
// YAML file, then environment overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/hailam/chessrules/internal/obslog"
)

//go:embed default.yaml
var defaultYAML []byte

// Config is the front-end configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Board   BoardConfig   `yaml:"board"`
	Sound   SoundConfig   `yaml:"sound"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// WindowConfig sizes and titles the desktop window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// BoardConfig holds the initial board display options.
type BoardConfig struct {
	Flipped         bool `yaml:"flipped"`
	ShowHints       bool `yaml:"show_hints"`
	ShowCoordinates bool `yaml:"show_coordinates"`
}

// SoundConfig controls sound effects.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// StorageConfig locates the preferences and statistics store.
type StorageConfig struct {
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory"`
}

// LogConfig configures obslog.
type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Console bool   `yaml:"console"`
	File    string `yaml:"file"`
}

// Options converts the log section for obslog.Init.
func (l LogConfig) Options() obslog.Options {
	return obslog.Options{Level: l.Level, Format: l.Format, Console: l.Console, File: l.File}
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the defaults, overlays the YAML file at path (skipped when path
// is empty), applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("CHESS_DATA_DIR")); v != "" {
		c.Storage.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_IN_MEMORY")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Storage.InMemory = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_SOUND")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Sound.Enabled = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_VOLUME")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Sound.Volume = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_FLIP")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Board.Flipped = b
		}
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("LOG_TO_CONSOLE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.Console = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		c.Log.File = v
	}
}

// Validate rejects values the front ends cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width < 400 || c.Window.Height < 300 {
		errs = append(errs, fmt.Errorf("window size %dx%d is below 400x300", c.Window.Width, c.Window.Height))
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, fmt.Errorf("sound volume %.2f outside 0..1", c.Sound.Volume))
	}
	if !obslog.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	if !obslog.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
