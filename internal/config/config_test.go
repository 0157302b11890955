package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Workers.Size)
	assert.Equal(t, 10*time.Minute, cfg.Cache.CleanupInterval)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "html2md.yaml")
	yml := `
log:
  level: debug
workers:
  size: 8
cache:
  cleanup_interval: 30s
metrics:
  addr: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Workers.Size)
	assert.Equal(t, 64, cfg.Workers.QueueSize, "unset keys keep their defaults")
	assert.Equal(t, 30*time.Second, cfg.Cache.CleanupInterval)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }},
		{"no workers", func(c *Config) { c.Workers.Size = 0 }},
		{"negative queue", func(c *Config) { c.Workers.QueueSize = -1 }},
		{"negative cleanup", func(c *Config) { c.Cache.CleanupInterval = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
