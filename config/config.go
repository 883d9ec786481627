// Package config loads the module's tunables from TOML configuration files.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all tunables for the queue and shuffle engine.
type Config struct {
	Shuffle ShuffleConfig `koanf:"shuffle"`
	Logging LoggingConfig `koanf:"logging"`
	Report  ReportConfig  `koanf:"report"`
}

// ShuffleConfig holds shuffle-related settings.
type ShuffleConfig struct {
	HistorySize     int     `koanf:"history_size"`     // recency history capacity (default: 50)
	RecentWeight    float64 `koanf:"recent_weight"`    // weight for recently played tracks (default: 0.3)
	ExtendThreshold int     `koanf:"extend_threshold"` // up-next count triggering extension (default: 5)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level           string  `koanf:"level"`            // DEBUG, INFO, WARNING, ERROR (default: WARNING)
	DisableSampling bool    `koanf:"disable_sampling"` // log every repeated message
	SamplingRate    float64 `koanf:"sampling_rate"`    // rate past the repeat threshold (default: 0.1)
}

// ReportConfig holds anomaly reporting settings.
type ReportConfig struct {
	Enabled bool `koanf:"enabled"` // requires the embedding app to init sentry
}

// Load reads configuration from the default search paths, later paths
// overriding earlier ones. Missing files are fine: defaults apply.
func Load() (*Config, error) {
	return LoadFrom(configPaths()...)
}

// LoadFrom reads configuration from explicit paths (last wins).
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Shuffle.HistorySize <= 0 {
		c.Shuffle.HistorySize = 50
	}
	if c.Shuffle.RecentWeight <= 0 || c.Shuffle.RecentWeight > 1 {
		c.Shuffle.RecentWeight = 0.3
	}
	if c.Shuffle.ExtendThreshold <= 0 {
		c.Shuffle.ExtendThreshold = 5
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "WARNING"
	}
	if c.Logging.SamplingRate <= 0 || c.Logging.SamplingRate > 1 {
		c.Logging.SamplingRate = 0.1
	}
}

func configPaths() []string {
	paths := []string{}

	// 1. XDG config dir (~/.config/upnext/config.toml)
	paths = append(paths, filepath.Join(xdg.ConfigHome, "upnext", "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}
