// Package models defines data structures shared across the CLI, the HTTP
// server, and the optimizer: configuration, reports, and batch summaries.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is looked up in the working directory when no explicit
// config path is given.
const DefaultConfigName = "lco.yaml"

// AppConfig is the on-disk application configuration. Every field has a
// usable default; a missing config file is not an error.
type AppConfig struct {
	ResultsDir    string `yaml:"results_dir"`
	DBPath        string `yaml:"db_path"` // empty means next to the binary
	CacheDir      string `yaml:"cache_dir"`
	CacheTTLHours int    `yaml:"cache_ttl_hours"` // 0 means entries never expire
	Workers       int    `yaml:"workers"`
	LogLevel      string `yaml:"log_level"` // debug, info, warn, error

	Optimize OptimizeOverrides `yaml:"optimize"`
}

// OptimizeOverrides overlays the optimizer defaults. Pointer fields
// distinguish "absent" from zero so a config can set just one knob.
type OptimizeOverrides struct {
	Enabled               *bool    `yaml:"enabled"`
	MinTextLength         *int     `yaml:"min_text_length"`
	MaxFeatures           *int     `yaml:"max_features"`
	MinDF                 *int     `yaml:"min_df"`
	MaxDF                 *float64 `yaml:"max_df"`
	ScoreFloor            *float64 `yaml:"score_floor"`
	ContentRatio          *float64 `yaml:"content_ratio"`
	MinKeepK              *int     `yaml:"min_keep_k"`
	PercentileThreshold   *float64 `yaml:"percentile_threshold"`
	MaxLinkDensity        *float64 `yaml:"max_link_density"`
	MinAlphanumericRatio  *float64 `yaml:"min_alphanumeric_ratio"`
	EnableCJKSegmentation *bool    `yaml:"enable_cjk_segmentation"`
}

// DefaultAppConfig returns the configuration used when no file overrides it.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		ResultsDir:    "lco-results",
		CacheDir:      ".lco-cache",
		CacheTTLHours: 0,
		Workers:       4,
		LogLevel:      "info",
	}
}

// LoadConfig reads an AppConfig from path. An empty path tries
// DefaultConfigName; if that file does not exist the defaults are returned.
// An explicit path that cannot be read is an error.
func LoadConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects configs that would misbehave at runtime.
func (c AppConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.CacheTTLHours < 0 {
		return fmt.Errorf("cache_ttl_hours must be >= 0, got %d", c.CacheTTLHours)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}

	o := c.Optimize
	if o.MaxDF != nil && (*o.MaxDF <= 0 || *o.MaxDF > 1) {
		return fmt.Errorf("optimize.max_df must be in (0, 1], got %v", *o.MaxDF)
	}
	if o.MinDF != nil && *o.MinDF < 1 {
		return fmt.Errorf("optimize.min_df must be >= 1, got %d", *o.MinDF)
	}
	if o.PercentileThreshold != nil && (*o.PercentileThreshold < 0 || *o.PercentileThreshold > 1) {
		return fmt.Errorf("optimize.percentile_threshold must be in [0, 1], got %v", *o.PercentileThreshold)
	}
	if o.ContentRatio != nil && (*o.ContentRatio <= 0 || *o.ContentRatio > 1) {
		return fmt.Errorf("optimize.content_ratio must be in (0, 1], got %v", *o.ContentRatio)
	}
	if o.MaxLinkDensity != nil && (*o.MaxLinkDensity < 0 || *o.MaxLinkDensity > 1) {
		return fmt.Errorf("optimize.max_link_density must be in [0, 1], got %v", *o.MaxLinkDensity)
	}
	if o.MinAlphanumericRatio != nil && (*o.MinAlphanumericRatio < 0 || *o.MinAlphanumericRatio > 1) {
		return fmt.Errorf("optimize.min_alphanumeric_ratio must be in [0, 1], got %v", *o.MinAlphanumericRatio)
	}

	return nil
}
