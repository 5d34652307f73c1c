// Package report renders capture run results as YAML files, one per run,
// so study sessions leave an inspectable trail outside the database.
package report

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gleanhq/glean/models"
	"github.com/gleanhq/glean/pkg/storage"
)

// Page statuses recorded per URL in a run report.
const (
	StatusSaved     = "saved"
	StatusDuplicate = "duplicate"
	StatusFailed    = "failed"
)

// PageResult is the per-URL outcome of a capture run.
type PageResult struct {
	URL     string `yaml:"url"`
	Status  string `yaml:"status"`
	EntryID int64  `yaml:"entry_id,omitempty"`
	Subject string `yaml:"subject,omitempty"`
	Topic   string `yaml:"topic,omitempty"`
	Chapter string `yaml:"chapter,omitempty"`
	Error   string `yaml:"error,omitempty"`
}

// RunReport is the YAML document written after each capture run.
type RunReport struct {
	RunID       int64        `yaml:"run_id"`
	StartedAt   string       `yaml:"started_at"`
	FinishedAt  string       `yaml:"finished_at"`
	URLCount    int          `yaml:"url_count"`
	Saved       int          `yaml:"saved"`
	Duplicates  int          `yaml:"duplicates"`
	Failed      int          `yaml:"failed"`
	TopKeywords []string     `yaml:"top_keywords,omitempty"`
	Pages       []PageResult `yaml:"pages"`
}

// Build assembles a report from a recorded run and its page results.
func Build(run models.CaptureRun, pages []PageResult, topKeywords []string) RunReport {
	return RunReport{
		RunID:       run.ID,
		StartedAt:   run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		FinishedAt:  run.FinishedAt.Format("2006-01-02T15:04:05Z07:00"),
		URLCount:    run.URLCount,
		Saved:       run.Saved,
		Duplicates:  run.Duplicates,
		Failed:      run.Failed,
		TopKeywords: topKeywords,
		Pages:       pages,
	}
}

// Write renders the report to dir and returns the file path.
func Write(rep RunReport, dir string) (string, error) {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to YAML: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("run-%d.yaml", rep.RunID))
	store := &storage.Storage{}
	if err := store.SaveFile(path, data); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
