// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Colour modes for Display.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all addressbook configuration.
type Config struct {
	Directory Directory `yaml:"directory"`
	Display   Display   `yaml:"display"`
	Log       Log       `yaml:"log"`
}

// Directory holds contact directory limits.
type Directory struct {
	Capacity int `yaml:"capacity"`
}

// Display holds terminal output settings.
type Display struct {
	Color string `yaml:"color"` // "auto" | "always" | "never"
}

// Log holds diagnostic logging settings. Logs never go to stdout.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
	File  string `yaml:"file"`  // Empty means stderr.
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Directory: Directory{
			Capacity: 1000,
		},
		Display: Display{
			Color: ColorAuto,
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing and empty paths are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Directory.Capacity <= 0 {
		return fmt.Errorf("config: directory.capacity must be positive, got %d", c.Directory.Capacity)
	}
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("config: display.color must be \"auto\", \"always\" or \"never\", got %q", c.Display.Color)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	case "":
		return errors.New("config: log.level cannot be empty")
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRESSBOOK_CAPACITY, ADDRESSBOOK_COLOR,
// ADDRESSBOOK_LOG_LEVEL, ADDRESSBOOK_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ADDRESSBOOK_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADDRESSBOOK_CAPACITY %q: %w", v, err)
		}
		c.Directory.Capacity = n
	}
	if v := os.Getenv("ADDRESSBOOK_COLOR"); v != "" {
		c.Display.Color = v
	}
	if v := os.Getenv("ADDRESSBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ADDRESSBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Directory *rawDirectory `yaml:"directory"`
	Display   *rawDisplay   `yaml:"display"`
	Log       *rawLog       `yaml:"log"`
}

type rawDirectory struct {
	Capacity *int `yaml:"capacity"`
}

type rawDisplay struct {
	Color *string `yaml:"color"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Directory != nil && layer.Directory.Capacity != nil {
		c.Directory.Capacity = *layer.Directory.Capacity
	}
	if layer.Display != nil && layer.Display.Color != nil {
		c.Display.Color = *layer.Display.Color
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
