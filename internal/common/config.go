package common

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gleanhq/glean/models"
	"github.com/gleanhq/glean/pkg/caching"
	"github.com/gleanhq/glean/pkg/classify"
	"github.com/gleanhq/glean/pkg/fetcher"
)

// ResolveConfig loads the effective configuration: flags win over the
// config file, the file wins over built-in defaults.
func ResolveConfig(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return models.Config{}, err
	}

	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("user-agent") {
		cfg.UserAgent = c.String("user-agent")
	}
	if c.IsSet("rate") {
		cfg.RatePerHost = c.Float64("rate")
	}
	if c.IsSet("taxonomy") {
		cfg.TaxonomyPath = c.String("taxonomy")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("report-dir") {
		cfg.ReportDir = c.String("report-dir")
	}

	return cfg, nil
}

// NewClassifier builds a classifier from the configured taxonomy file, or
// the built-in taxonomy when none is set.
func NewClassifier(taxonomyPath string) (*classify.Classifier, error) {
	if taxonomyPath == "" {
		return classify.Default(), nil
	}
	tax, err := classify.LoadTaxonomyFile(taxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	return classify.New(tax)
}

// NewFetcher builds the HTTP fetcher for a command, backed by a layered
// memory and disk cache. --max-age overrides the configured cache TTL and
// --force-fetch bypasses cache reads while still filling the cache.
func NewFetcher(c *cli.Context, cfg models.Config) (*fetcher.Fetcher, error) {
	ttl := cfg.CacheTTL()
	if c.IsSet("max-age") {
		parsed, err := time.ParseDuration(c.String("max-age"))
		if err != nil {
			return nil, fmt.Errorf("invalid max-age duration: %w", err)
		}
		ttl = parsed
	}

	opts := fetcher.Options{
		UserAgent:   cfg.UserAgent,
		RatePerHost: cfg.RatePerHost,
		ForceFetch:  c.Bool("force-fetch"),
	}
	if disk, err := caching.NewDisk(cfg.CacheDir, ttl); err == nil {
		opts.Cache = caching.NewLayered(caching.NewMemory(ttl), disk)
	}
	return fetcher.New(opts), nil
}

// NewLogger builds the stderr JSON logger every command shares. Quiet mode
// keeps errors only.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
