package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsGate caches parsed robots.txt per host. A host whose robots.txt
// cannot be fetched is allowed; only an explicit Disallow blocks.
type robotsGate struct {
	mu        sync.RWMutex
	hosts     map[string]*robotstxt.RobotsData
	client    *http.Client
	userAgent string
}

func newRobotsGate(userAgent string, timeout time.Duration) *robotsGate {
	return &robotsGate{
		hosts:     make(map[string]*robotstxt.RobotsData),
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (g *robotsGate) Allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Let request creation report the bad URL.
		return true
	}

	data, err := g.robotsData(ctx, parsed)
	if err != nil {
		return true
	}
	return data.TestAgent(parsed.Path, g.userAgent)
}

func (g *robotsGate) robotsData(ctx context.Context, pageURL *url.URL) (*robotstxt.RobotsData, error) {
	g.mu.RLock()
	data, ok := g.hosts[pageURL.Host]
	g.mu.RUnlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", pageURL.Scheme, pageURL.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// FromResponse maps missing files to allow-all.
	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.hosts[pageURL.Host] = data
	g.mu.Unlock()
	return data, nil
}
