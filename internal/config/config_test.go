package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Engine.TopN)
	assert.Equal(t, "sum", cfg.Engine.EngagementMode)
	assert.True(t, cfg.Engine.CacheEnabled)
	assert.Equal(t, 7, cfg.Engine.ExperimentDurationDays)
	assert.Equal(t, 0.01, cfg.Decay.SlopeRatio)
	assert.Equal(t, 0.7, cfg.Decay.ConfidenceBar)
	assert.Equal(t, 30, cfg.Decay.WindowDays)
	assert.Equal(t, "./xelite.db", cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
engine:
  top_n: 5
  engagement_mode: reposts
decay:
  window_days: 14
logging:
  format: json
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Engine.TopN)
	assert.Equal(t, "reposts", cfg.Engine.EngagementMode)
	assert.Equal(t, 14, cfg.Decay.WindowDays)
	assert.Equal(t, "json", cfg.Logging.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.01, cfg.Decay.SlopeRatio)
}

func TestLoad_EnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("XELITE_ENGINE_TOP_N", "5")
	t.Setenv("XELITE_STORAGE_PATH", "/tmp/override.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Engine.TopN)
	assert.Equal(t, "/tmp/override.db", cfg.Storage.Path)
	// Keys without an env override keep their defaults.
	assert.Equal(t, "sum", cfg.Engine.EngagementMode)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("engine:\n  engagement_mode: clicks\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "engagement_mode")
}

func TestValidate_Rejections(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"top_n zero", func(c *Config) { c.Engine.TopN = 0 }},
		{"bad mode", func(c *Config) { c.Engine.EngagementMode = "views" }},
		{"duration zero", func(c *Config) { c.Engine.ExperimentDurationDays = 0 }},
		{"slope ratio too big", func(c *Config) { c.Decay.SlopeRatio = 1.5 }},
		{"confidence bar zero", func(c *Config) { c.Decay.ConfidenceBar = 0 }},
		{"window zero", func(c *Config) { c.Decay.WindowDays = 0 }},
		{"empty path", func(c *Config) { c.Storage.Path = "" }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
