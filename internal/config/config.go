// Package config loads nearby configuration: defaults, an optional
// .nearby.yaml file, then NEARBY_* environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/urbanform/nearby/internal/errors"
)

// FileName is the per-project configuration file name.
const FileName = ".nearby.yaml"

// Config is the complete nearby configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SearchConfig configures the nearest-neighbor search.
type SearchConfig struct {
	// Radius is the maximum search radius in map units.
	Radius float64 `yaml:"radius" json:"radius"`

	// Workers is the number of concurrent workers for the source-feature
	// loop. 0 selects the number of CPUs.
	Workers int `yaml:"workers" json:"workers"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" json:"level"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchConfig{
			Radius:  100.0,
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the effective configuration for dir: defaults, then
// dir/.nearby.yaml if present, then environment overrides, then validation.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigError(fmt.Sprintf("reading %s", path), err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.ConfigError(fmt.Sprintf("parsing %s", path), err)
	}
	return nil
}

// applyEnvOverrides applies NEARBY_* environment variables, which take
// precedence over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NEARBY_SEARCH_RADIUS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Search.Radius = f
		}
	}
	if v := os.Getenv("NEARBY_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.Workers = n
		}
	}
	if v := os.Getenv("NEARBY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Search.Radius < 0 {
		return errors.ConfigError(
			fmt.Sprintf("search.radius must be non-negative, got %g", c.Search.Radius), nil)
	}
	if c.Search.Workers < 0 {
		return errors.ConfigError(
			fmt.Sprintf("search.workers must be non-negative, got %d", c.Search.Workers), nil)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return errors.ConfigError(
			fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level), nil)
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.ConfigError("encoding config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ConfigError(fmt.Sprintf("writing %s", path), err)
	}
	return nil
}
