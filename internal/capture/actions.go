package capture

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gleanhq/glean/internal/common"
	"github.com/gleanhq/glean/models"
	"github.com/gleanhq/glean/pkg/extract"
	"github.com/gleanhq/glean/pkg/knowledge"
	"github.com/gleanhq/glean/pkg/mapreduce"
	"github.com/gleanhq/glean/pkg/report"
)

const reportKeywordCount = 25

// Action runs the capture pipeline for the URLs given on the command line
// and records the run in the knowledge base.
func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))
	startTime := time.Now().UTC()

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if !cfg.CaptureEnabled {
		return fmt.Errorf("capture is disabled in the config file")
	}

	urlsStr := c.String("urls")
	if urlsStr == "" {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  glean capture --urls "https://example.com,https://example.org"`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: glean capture --help")
		os.Exit(1)
	}

	urls, invalidURLs := common.SanitizeAndValidateURLs(strings.Split(urlsStr, ","))
	if len(invalidURLs) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalidURLs))
		for _, badURL := range invalidURLs {
			fmt.Fprintf(os.Stderr, "  - %s\n", badURL)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Note: URLs are auto-cleaned (whitespace trimmed, trailing punctuation removed, markdown links extracted)")
		fmt.Fprintln(os.Stderr, "      Spaces in URLs must be pre-encoded as %20.")
		os.Exit(1)
	}

	classifier, err := common.NewClassifier(cfg.TaxonomyPath)
	if err != nil {
		logger.Error("failed to build classifier", "error", err)
		os.Exit(2)
	}

	pageFetcher, err := common.NewFetcher(c, cfg)
	if err != nil {
		return err
	}

	store, err := knowledge.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open knowledge base", "error", err)
		os.Exit(2)
	}
	defer store.Close()

	pipeline := &Pipeline{
		Logger:     logger,
		Fetcher:    pageFetcher,
		Extractor:  extract.New(),
		Classifier: classifier,
		Store:      store,
		Workers:    cfg.Workers,
	}

	ctx := c.Context
	allResults := pipeline.Run(ctx, urls)

	stats := buildStats(allResults, startTime)

	run := models.CaptureRun{
		StartedAt:  startTime,
		FinishedAt: time.Now().UTC(),
		URLCount:   stats.TotalURLs,
		Saved:      stats.Saved,
		Duplicates: stats.Duplicates,
		Failed:     stats.Failed,
	}
	recorded, err := store.RecordRun(ctx, run)
	if err != nil {
		logger.Warn("failed to record capture run", "error", err)
		recorded = run
	}

	reportPath, err := report.Write(report.Build(recorded, pageResults(allResults), stats.TopKeywords), cfg.ReportDir)
	if err != nil {
		logger.Warn("failed to write run report", "error", err)
	}

	printSummary(stats, recorded.ID, reportPath)

	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d captures failed", stats.Failed, stats.TotalURLs)
	}
	return nil
}

func buildStats(results []Result, startTime time.Time) Stats {
	stats := Stats{TotalURLs: len(results)}

	intermediate := make([]map[string]int, 0, len(results))
	for _, r := range results {
		switch {
		case r.Error != nil:
			stats.Failed++
		case r.Duplicate:
			stats.Duplicates++
		default:
			stats.Saved++
		}
		if r.WordCounts != nil {
			intermediate = append(intermediate, r.WordCounts)
		}
	}

	stats.TotalTimeSeconds = time.Since(startTime).Seconds()
	stats.TopKeywords = mapreduce.TopKeywords(mapreduce.Reduce(intermediate), reportKeywordCount)
	return stats
}

func pageResults(results []Result) []report.PageResult {
	pages := make([]report.PageResult, 0, len(results))
	for _, r := range results {
		page := report.PageResult{URL: r.URL}
		switch {
		case r.Error != nil:
			page.Status = report.StatusFailed
			page.Error = r.Error.Error()
		case r.Duplicate:
			page.Status = report.StatusDuplicate
		default:
			page.Status = report.StatusSaved
			page.EntryID = r.Entry.ID
			page.Subject = r.Entry.Subject
			page.Topic = r.Entry.Topic
			page.Chapter = r.Entry.Chapter
		}
		pages = append(pages, page)
	}
	return pages
}

func printSummary(stats Stats, runID int64, reportPath string) {
	fmt.Printf("Captured %d/%d URLs (%d duplicates, %d failed) in %.1fs\n",
		stats.Saved, stats.TotalURLs, stats.Duplicates, stats.Failed, stats.TotalTimeSeconds)
	if len(stats.TopKeywords) > 0 {
		limit := 5
		if len(stats.TopKeywords) < limit {
			limit = len(stats.TopKeywords)
		}
		fmt.Printf("Top keywords: %s\n", strings.Join(stats.TopKeywords[:limit], ", "))
	}
	if runID > 0 {
		fmt.Printf("Run %d recorded", runID)
		if reportPath != "" {
			fmt.Printf("; report: %s", reportPath)
		}
		fmt.Println()
	}
}
