package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gleanhq/glean/pkg/caching"
)

func testOptions() Options {
	return Options{
		UserAgent:   "glean-test/0.1",
		Timeout:     5 * time.Second,
		RatePerHost: 1000,
	}
}

func TestFetchReturnsBody(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/page" {
			gotAgent = r.Header.Get("User-Agent")
		}
		fmt.Fprint(w, "<html><body>OK</body></html>")
	}))
	defer server.Close()

	f := New(testOptions())
	body, err := f.Fetch(context.Background(), server.URL+"/page")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != "<html><body>OK</body></html>" {
		t.Errorf("Fetch() body = %q", body)
	}
	if gotAgent != "glean-test/0.1" {
		t.Errorf("User-Agent = %q, want %q", gotAgent, "glean-test/0.1")
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := New(testOptions())
	_, err := f.Fetch(context.Background(), server.URL+"/page")
	if err == nil {
		t.Fatal("Fetch() succeeded for status 500, want error")
	}
}

func TestFetchUsesCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/page" {
			hits.Add(1)
		}
		fmt.Fprint(w, "<html>cached</html>")
	}))
	defer server.Close()

	opts := testOptions()
	opts.Cache = caching.NewMemory(time.Hour)
	f := New(opts)

	ctx := context.Background()
	first, err := f.Fetch(ctx, server.URL+"/page")
	if err != nil {
		t.Fatalf("first Fetch() error = %v", err)
	}
	second, err := f.Fetch(ctx, server.URL+"/page")
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("cached body differs: %q vs %q", first, second)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestFetchForceFetchSkipsCacheRead(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/page" {
			hits.Add(1)
		}
		fmt.Fprintf(w, "<html>version %d</html>", hits.Load())
	}))
	defer server.Close()

	cache := caching.NewMemory(time.Hour)
	opts := testOptions()
	opts.Cache = cache
	opts.ForceFetch = true
	f := New(opts)

	ctx := context.Background()
	if _, err := f.Fetch(ctx, server.URL+"/page"); err != nil {
		t.Fatalf("first Fetch() error = %v", err)
	}
	second, err := f.Fetch(ctx, server.URL+"/page")
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}

	if got := hits.Load(); got != 2 {
		t.Errorf("server hits = %d, want 2", got)
	}
	if cached, found := cache.Get(caching.Key(server.URL + "/page")); !found {
		t.Error("forced fetch did not fill the cache")
	} else if string(cached) != string(second) {
		t.Errorf("cache holds %q, want latest body %q", cached, second)
	}
}

func TestFetchHonorsRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>page</html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := New(testOptions())
	ctx := context.Background()

	if _, err := f.Fetch(ctx, server.URL+"/open"); err != nil {
		t.Fatalf("Fetch(/open) error = %v", err)
	}

	_, err := f.Fetch(ctx, server.URL+"/private/page")
	if !errors.Is(err, ErrDisallowed) {
		t.Errorf("Fetch(/private/page) error = %v, want ErrDisallowed", err)
	}
}

func TestFetchCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>page</html>")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(testOptions())
	if _, err := f.Fetch(ctx, server.URL+"/page"); err == nil {
		t.Error("Fetch() with canceled context succeeded, want error")
	}
}
