package capture

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gleanhq/glean/models"
	"github.com/gleanhq/glean/pkg/classify"
	"github.com/gleanhq/glean/pkg/extract"
	"github.com/gleanhq/glean/pkg/fetcher"
	"github.com/gleanhq/glean/pkg/knowledge"
	"github.com/gleanhq/glean/pkg/mapreduce"
)

// Pipeline wires the stages a URL moves through: fetch, extract, classify,
// save. One Pipeline drives a whole run; workers share its components.
type Pipeline struct {
	Logger     *slog.Logger
	Fetcher    *fetcher.Fetcher
	Extractor  *extract.Extractor
	Classifier *classify.Classifier
	Store      *knowledge.Store
	Workers    int
}

// Run processes every URL through the pipeline and returns one Result per
// URL. Failures are carried in the results, not returned as an error.
func (p *Pipeline) Run(ctx context.Context, urls []string) []Result {
	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}

	p.Logger.Info("Starting concurrent capture phase", "url_count", len(urls), "workers", workers)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(urls))
	results := make(chan Result, len(urls))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go p.worker(ctx, w, &wg, jobs, results)
	}

	for _, rawURL := range urls {
		jobs <- Job{URL: rawURL}
	}
	close(jobs)

	wg.Wait()
	close(results)
	p.Logger.Info("All capture workers finished")

	allResults := make([]Result, 0, len(urls))
	for result := range results {
		allResults = append(allResults, result)
	}
	return allResults
}

func (p *Pipeline) worker(ctx context.Context, id int, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		p.Logger.Info("Worker started job", "worker_id", id, "url", job.URL)
		results <- p.process(ctx, id, job)
	}
}

func (p *Pipeline) process(ctx context.Context, id int, job Job) Result {
	result := Result{URL: job.URL}

	// Cheap pre-check; Save still guards against races.
	if exists, err := p.Store.Exists(ctx, job.URL); err == nil && exists {
		p.Logger.Info("URL already captured, skipping fetch", "worker_id", id, "url", job.URL)
		result.Duplicate = true
		return result
	}

	html, err := p.Fetcher.Fetch(ctx, job.URL)
	if err != nil {
		p.Logger.Error("Error fetching HTML", "worker_id", id, "url", job.URL, "error", err)
		result.Error = err
		result.ErrorType = "fetch_error"
		return result
	}

	content, err := p.Extractor.FromHTML(job.URL, html)
	if err != nil {
		p.Logger.Error("Error extracting content", "worker_id", id, "url", job.URL, "error", err)
		result.Error = err
		result.ErrorType = "extract_error"
		return result
	}

	result.WordCounts = mapreduce.Map(content.ToPlainText())

	classification, err := p.Classifier.Classify(content)
	if err != nil {
		p.Logger.Error("Error classifying content", "worker_id", id, "url", job.URL, "error", err)
		result.Error = err
		result.ErrorType = "classify_error"
		return result
	}

	entry, err := p.Store.Save(ctx, models.BuildEntry(content, classification))
	if errors.Is(err, knowledge.ErrDuplicateURL) {
		p.Logger.Info("URL already captured", "worker_id", id, "url", job.URL)
		result.Duplicate = true
		return result
	}
	if err != nil {
		p.Logger.Error("Error saving entry", "worker_id", id, "url", job.URL, "error", err)
		result.Error = err
		result.ErrorType = "save_error"
		return result
	}

	result.Entry = entry
	p.Logger.Info("Worker finished processing", "worker_id", id, "url", job.URL,
		"entry_id", entry.ID, "subject", entry.Subject, "topic", entry.Topic)
	return result
}
