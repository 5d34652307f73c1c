package capture

import (
	"errors"
	"testing"
	"time"

	"github.com/gleanhq/glean/models"
	"github.com/gleanhq/glean/pkg/report"
)

func TestBuildStats(t *testing.T) {
	results := []Result{
		{URL: "https://a.example/ok", WordCounts: map[string]int{"react": 3, "hooks": 1}},
		{URL: "https://a.example/dup", Duplicate: true, WordCounts: map[string]int{"react": 2}},
		{URL: "https://a.example/bad", Error: errors.New("boom")},
	}

	stats := buildStats(results, time.Now().Add(-2*time.Second))

	if stats.TotalURLs != 3 {
		t.Errorf("TotalURLs = %d, want 3", stats.TotalURLs)
	}
	if stats.Saved != 1 || stats.Duplicates != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 1 saved, 1 duplicate, 1 failed", stats)
	}
	if stats.TotalTimeSeconds < 2 {
		t.Errorf("TotalTimeSeconds = %f, want at least 2", stats.TotalTimeSeconds)
	}

	want := []string{"react:5", "hooks:1"}
	if len(stats.TopKeywords) != len(want) {
		t.Fatalf("TopKeywords = %v, want %v", stats.TopKeywords, want)
	}
	for i, kw := range want {
		if stats.TopKeywords[i] != kw {
			t.Errorf("TopKeywords[%d] = %q, want %q", i, stats.TopKeywords[i], kw)
		}
	}
}

func TestPageResults(t *testing.T) {
	results := []Result{
		{
			URL: "https://a.example/ok",
			Entry: models.KnowledgeEntry{
				ID:      4,
				Subject: "Database",
				Topic:   "SQL",
				Chapter: "Introduction",
			},
		},
		{URL: "https://a.example/dup", Duplicate: true},
		{URL: "https://a.example/bad", Error: errors.New("fetch failed"), ErrorType: "fetch_error"},
	}

	pages := pageResults(results)
	if len(pages) != 3 {
		t.Fatalf("pageResults() returned %d pages, want 3", len(pages))
	}

	if pages[0].Status != report.StatusSaved {
		t.Errorf("pages[0].Status = %q, want %q", pages[0].Status, report.StatusSaved)
	}
	if pages[0].EntryID != 4 || pages[0].Subject != "Database" || pages[0].Topic != "SQL" {
		t.Errorf("pages[0] = %+v, want entry 4 classified Database/SQL", pages[0])
	}
	if pages[1].Status != report.StatusDuplicate {
		t.Errorf("pages[1].Status = %q, want %q", pages[1].Status, report.StatusDuplicate)
	}
	if pages[2].Status != report.StatusFailed {
		t.Errorf("pages[2].Status = %q, want %q", pages[2].Status, report.StatusFailed)
	}
	if pages[2].Error != "fetch failed" {
		t.Errorf("pages[2].Error = %q, want %q", pages[2].Error, "fetch failed")
	}
}
