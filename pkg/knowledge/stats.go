package knowledge

import (
	"context"
	"fmt"

	"github.com/gleanhq/glean/models"
)

// Stats aggregates entry counts per subject, topic and chapter.
func (s *Store) Stats(ctx context.Context) (models.Statistics, error) {
	stats := models.Statistics{
		BySubject: make(map[string]int),
		ByTopic:   make(map[string]int),
		ByChapter: make(map[string]int),
	}

	err := s.readDB.QueryRowContext(ctx, "SELECT count(*) FROM entries").Scan(&stats.TotalEntries)
	if err != nil {
		return models.Statistics{}, fmt.Errorf("count entries: %w", err)
	}

	if err := s.countBy(ctx, "subject", stats.BySubject); err != nil {
		return models.Statistics{}, err
	}
	if err := s.countBy(ctx, "topic", stats.ByTopic); err != nil {
		return models.Statistics{}, err
	}
	if err := s.countBy(ctx, "chapter", stats.ByChapter); err != nil {
		return models.Statistics{}, err
	}

	stats.UniqueSubjects = len(stats.BySubject)
	stats.UniqueTopics = len(stats.ByTopic)
	stats.UniqueChapters = len(stats.ByChapter)
	return stats, nil
}

func (s *Store) countBy(ctx context.Context, column string, counts map[string]int) error {
	rows, err := s.readDB.QueryContext(ctx,
		"SELECT "+column+", count(*) FROM entries GROUP BY "+column)
	if err != nil {
		return fmt.Errorf("count by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		var count int
		if err := rows.Scan(&value, &count); err != nil {
			return fmt.Errorf("scan %s count: %w", column, err)
		}
		counts[value] = count
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s counts: %w", column, err)
	}
	return nil
}
