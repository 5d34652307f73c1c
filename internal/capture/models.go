package capture

import (
	"github.com/gleanhq/glean/models"
)

type Job struct {
	URL string
}

// Result holds the outcome of a processed job.
type Result struct {
	URL        string
	Entry      models.KnowledgeEntry
	WordCounts map[string]int
	Duplicate  bool
	Error      error
	ErrorType  string
}

// Stats summarizes a finished run for console output.
type Stats struct {
	TotalURLs        int
	Saved            int
	Duplicates       int
	Failed           int
	TotalTimeSeconds float64
	TopKeywords      []string
}
