// Package fetcher retrieves page HTML politely. Bodies are served from
// cache when possible; otherwise the fetch passes a robots.txt gate and a
// per-host rate limit before going to the network.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gleanhq/glean/pkg/caching"
)

const maxBodyBytes = 10 << 20

// ErrDisallowed reports that robots.txt forbids fetching the URL.
var ErrDisallowed = errors.New("fetch disallowed by robots.txt")

// Options configure a Fetcher. Zero values get defaults.
type Options struct {
	UserAgent   string
	Timeout     time.Duration
	RatePerHost float64       // requests per second against one host
	Cache       caching.Cache // nil disables caching
	ForceFetch  bool          // skip cache reads, still fill the cache
}

type Fetcher struct {
	client     *http.Client
	userAgent  string
	cache      caching.Cache
	forceFetch bool
	limiter    *hostLimiter
	robots     *robotsGate
}

func New(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = "glean/0.1"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RatePerHost <= 0 {
		opts.RatePerHost = 1.0
	}

	return &Fetcher{
		client:     &http.Client{Timeout: opts.Timeout},
		userAgent:  opts.UserAgent,
		cache:      opts.Cache,
		forceFetch: opts.ForceFetch,
		limiter:    newHostLimiter(opts.RatePerHost, 1),
		robots:     newRobotsGate(opts.UserAgent, opts.Timeout),
	}
}

// Fetch returns the page body for url, from cache when possible.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	cacheKey := caching.Key(url)
	if f.cache != nil && !f.forceFetch {
		if data, found := f.cache.Get(cacheKey); found {
			return data, nil
		}
	}

	if !f.robots.Allowed(ctx, url) {
		return nil, fmt.Errorf("%s: %w", url, ErrDisallowed)
	}
	if err := f.limiter.Wait(ctx, url); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s, status code: %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if f.cache != nil {
		// A cache write failure must not fail the fetch.
		_ = f.cache.Set(cacheKey, body)
	}
	return body, nil
}
