// Package config loads engine configuration from file and environment with
// sane defaults for every tunable.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Decay   DecayConfig   `mapstructure:"decay"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig holds analyzer and experiment tunables.
type EngineConfig struct {
	// TopN bounds ranked lists in analysis output.
	TopN int `mapstructure:"top_n"`
	// EngagementMode is "sum" (all four metrics) or "reposts".
	EngagementMode string `mapstructure:"engagement_mode"`
	// CacheEnabled memoizes analyses keyed by (source, limit, mode).
	CacheEnabled bool `mapstructure:"cache_enabled"`
	// ExperimentDurationDays is the default experiment length.
	ExperimentDurationDays int `mapstructure:"experiment_duration_days"`
}

// DecayConfig holds decay-detection thresholds.
type DecayConfig struct {
	SlopeRatio    float64 `mapstructure:"slope_ratio"`
	ConfidenceBar float64 `mapstructure:"confidence_bar"`
	WindowDays    int     `mapstructure:"window_days"`
}

// StorageConfig locates the embedded database.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file plus XELITE_-prefixed
// environment variables. A missing file falls back to defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("XELITE")
	// Nested keys map onto env names with underscores: engine.top_n becomes
	// XELITE_ENGINE_TOP_N.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.top_n", 3)
	v.SetDefault("engine.engagement_mode", "sum")
	v.SetDefault("engine.cache_enabled", true)
	v.SetDefault("engine.experiment_duration_days", 7)

	v.SetDefault("decay.slope_ratio", 0.01)
	v.SetDefault("decay.confidence_bar", 0.7)
	v.SetDefault("decay.window_days", 30)

	v.SetDefault("storage.path", "./xelite.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.Engine.TopN < 1 {
		return fmt.Errorf("engine.top_n must be at least 1")
	}
	if c.Engine.EngagementMode != "sum" && c.Engine.EngagementMode != "reposts" {
		return fmt.Errorf("engine.engagement_mode must be one of: sum, reposts")
	}
	if c.Engine.ExperimentDurationDays < 1 {
		return fmt.Errorf("engine.experiment_duration_days must be at least 1")
	}
	if c.Decay.SlopeRatio <= 0 || c.Decay.SlopeRatio >= 1 {
		return fmt.Errorf("decay.slope_ratio must be in (0, 1)")
	}
	if c.Decay.ConfidenceBar <= 0 || c.Decay.ConfidenceBar >= 1 {
		return fmt.Errorf("decay.confidence_bar must be in (0, 1)")
	}
	if c.Decay.WindowDays < 1 {
		return fmt.Errorf("decay.window_days must be at least 1")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	return nil
}
