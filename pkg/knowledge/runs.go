package knowledge

import (
	"context"
	"fmt"

	"github.com/gleanhq/glean/models"
)

// RecordRun stores the outcome of a capture run and returns it with its
// assigned id.
func (s *Store) RecordRun(ctx context.Context, run models.CaptureRun) (models.CaptureRun, error) {
	res, err := s.writeDB.ExecContext(ctx, `
		INSERT INTO capture_runs (started_at, finished_at, url_count, saved_count, duplicate_count, failed_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.StartedAt, run.FinishedAt, run.URLCount, run.Saved, run.Duplicates, run.Failed)
	if err != nil {
		return models.CaptureRun{}, fmt.Errorf("record run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.CaptureRun{}, fmt.Errorf("get run id: %w", err)
	}
	run.ID = id
	return run, nil
}

// ListRuns returns the most recent capture runs, newest first. A limit of
// zero or less returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]models.CaptureRun, error) {
	query := `
		SELECT run_id, started_at, finished_at, url_count, saved_count, duplicate_count, failed_count
		FROM capture_runs ORDER BY run_id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.readDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.CaptureRun
	for rows.Next() {
		var run models.CaptureRun
		err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
			&run.URLCount, &run.Saved, &run.Duplicates, &run.Failed)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
