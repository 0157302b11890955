// Package config provides process-level settings for html2md.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete html2md process configuration
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Workers WorkersConfig `yaml:"workers"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// File switches to JSON logs appended to this path (empty = stderr)
	File string `yaml:"file"`
}

// WorkersConfig sizes the conversion worker pool
type WorkersConfig struct {
	// Size is the number of conversions that run at once
	Size int `yaml:"size"`
	// QueueSize is how many conversions may wait for a worker
	QueueSize int `yaml:"queue_size"`
}

// CacheConfig configures the in-process result cache
type CacheConfig struct {
	// CleanupInterval is how often expired entries are purged (0 = never)
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// OutputConfig configures where summarized documents are saved
type OutputConfig struct {
	// TempDir holds html2md_*.md files (empty = system temp directory)
	TempDir string `yaml:"temp_dir"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Workers: WorkersConfig{
			Size:      4,
			QueueSize: 64,
		},
		Cache: CacheConfig{
			CleanupInterval: 10 * time.Minute,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	if c.Workers.Size < 1 {
		return fmt.Errorf("workers.size must be at least 1")
	}
	if c.Workers.QueueSize < 0 {
		return fmt.Errorf("workers.queue_size must not be negative")
	}
	if c.Cache.CleanupInterval < 0 {
		return fmt.Errorf("cache.cleanup_interval must not be negative")
	}
	return nil
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
