package capture

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gleanhq/glean/pkg/classify"
	"github.com/gleanhq/glean/pkg/extract"
	"github.com/gleanhq/glean/pkg/fetcher"
	"github.com/gleanhq/glean/pkg/knowledge"
)

const reactArticle = `<!DOCTYPE html>
<html>
<head><title>Understanding React</title></head>
<body>
<article>
<h1>React Fundamentals</h1>
<p>React is a JavaScript library for building user interfaces out of small reusable components, and each component manages its own slice of state independently of the rest of the page.</p>
<p>For example, calling a state setter schedules a new render of the component and of every component below it in the tree, which is how the interface stays in sync with the data.</p>
<p>Props flow from parent to child in one direction, which keeps data movement through an application predictable and makes unexpected interface changes much easier to trace.</p>
<p>A good rule when structuring an application is to lift shared state up to the closest common ancestor and pass it back down, rather than duplicating the same values in several places.</p>
</article>
</body>
</html>`

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	store, err := knowledge.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &Pipeline{
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Fetcher: fetcher.New(fetcher.Options{
			UserAgent:   "glean-test/0.1",
			Timeout:     5 * time.Second,
			RatePerHost: 1000,
		}),
		Extractor:  extract.New(),
		Classifier: classify.Default(),
		Store:      store,
		Workers:    2,
	}
}

func TestPipelineRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/articles/react-basics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, reactArticle)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	pipeline := newTestPipeline(t)
	article := server.URL + "/articles/react-basics"
	urls := []string{article, article, server.URL + "/missing"}

	results := pipeline.Run(context.Background(), urls)
	if len(results) != len(urls) {
		t.Fatalf("Run() returned %d results, want %d", len(results), len(urls))
	}

	stats := buildStats(results, time.Now())
	if stats.Saved != 1 || stats.Duplicates != 1 || stats.Failed != 1 {
		t.Fatalf("stats = %+v, want 1 saved, 1 duplicate, 1 failed", stats)
	}

	var saved *Result
	for i := range results {
		r := results[i]
		switch {
		case r.Error != nil:
			if r.ErrorType != "fetch_error" {
				t.Errorf("failed result ErrorType = %q, want %q", r.ErrorType, "fetch_error")
			}
		case !r.Duplicate:
			saved = &results[i]
		}
	}
	if saved == nil {
		t.Fatal("no saved result in pipeline output")
	}
	if saved.Entry.ID == 0 {
		t.Error("saved entry was not assigned an id")
	}
	if saved.Entry.Subject != "Web Development" {
		t.Errorf("Subject = %q, want %q", saved.Entry.Subject, "Web Development")
	}
	if saved.Entry.Topic != "React" {
		t.Errorf("Topic = %q, want %q", saved.Entry.Topic, "React")
	}

	entries, err := pipeline.Store.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("store holds %d entries after capturing the same page twice, want 1", len(entries))
	}

	foundReact := false
	for _, kw := range stats.TopKeywords {
		if strings.HasPrefix(kw, "react:") {
			foundReact = true
		}
	}
	if !foundReact {
		t.Errorf("TopKeywords = %v, want a react entry", stats.TopKeywords)
	}
}

func TestPipelineRunCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, reactArticle)
	}))
	defer server.Close()

	pipeline := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := pipeline.Run(ctx, []string{server.URL + "/page"})
	if len(results) != 1 {
		t.Fatalf("Run() returned %d results, want 1", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected an error for a canceled context")
	}
}
