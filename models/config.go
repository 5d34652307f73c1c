// Package models defines the data types shared across the engine:
// page content, classification, summaries, knowledge entries and
// runtime configuration.
package models

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration. Values come from the YAML config
// file when present, otherwise from defaults; CLI flags override both.
type Config struct {
	DBPath         string  `yaml:"db_path"`
	CacheDir       string  `yaml:"cache_dir"`
	CacheTTLHours  int     `yaml:"cache_ttl_hours"`
	Workers        int     `yaml:"workers"`
	UserAgent      string  `yaml:"user_agent"`
	RatePerHost    float64 `yaml:"rate_per_host"` // requests per second per host
	CaptureEnabled bool    `yaml:"capture_enabled"`
	TaxonomyPath   string  `yaml:"taxonomy_path"` // optional taxonomy override file
	ReportDir      string  `yaml:"report_dir"`
}

// DefaultConfigPath returns the standard location of the config file.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "glean", "config.yaml")
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		DBPath:         filepath.Join(xdg.DataHome, "glean", "glean.db"),
		CacheDir:       filepath.Join(xdg.CacheHome, "glean", "pages"),
		CacheTTLHours:  24,
		Workers:        4,
		UserAgent:      "glean/0.1 (+https://github.com/gleanhq/glean)",
		RatePerHost:    1.0,
		CaptureEnabled: true,
		ReportDir:      filepath.Join(xdg.DataHome, "glean", "reports"),
	}
}

// LoadConfig reads the YAML config at path on top of the defaults. A
// missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize backfills zero or nonsense values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.CacheTTLHours <= 0 {
		c.CacheTTLHours = def.CacheTTLHours
	}
	if c.RatePerHost <= 0 {
		c.RatePerHost = def.RatePerHost
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.CacheDir == "" {
		c.CacheDir = def.CacheDir
	}
	if c.ReportDir == "" {
		c.ReportDir = def.ReportDir
	}
}

// CacheTTL returns the cache freshness window as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}
