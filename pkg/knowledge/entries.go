package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gleanhq/glean/models"
)

const entryColumns = "entry_id, url, title, subject, topic, chapter, key_points, paragraphs, captured_at, saved_at"

// Attribute names a single-column lookup for GetBy.
type Attribute string

const (
	AttrSubject Attribute = "subject"
	AttrTopic   Attribute = "topic"
	AttrChapter Attribute = "chapter"
	AttrURL     Attribute = "url"
)

// attrColumns whitelists the columns GetBy may filter on.
var attrColumns = map[Attribute]string{
	AttrSubject: "subject",
	AttrTopic:   "topic",
	AttrChapter: "chapter",
	AttrURL:     "url",
}

// Exists reports whether an entry for url is already stored.
func (s *Store) Exists(ctx context.Context, url string) (bool, error) {
	var one int
	err := s.readDB.QueryRowContext(ctx, "SELECT 1 FROM entries WHERE url = ?", url).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check entry exists: %w", err)
	}
	return true, nil
}

// Save inserts a new entry, assigning its id and save time. The existence
// check and insert run in one write transaction, so concurrent saves of
// the same URL cannot both succeed; the loser gets ErrDuplicateURL and the
// store is unchanged.
func (s *Store) Save(ctx context.Context, entry models.KnowledgeEntry) (models.KnowledgeEntry, error) {
	if strings.TrimSpace(entry.URL) == "" {
		return models.KnowledgeEntry{}, models.ErrMissingURL
	}

	keyPoints, err := marshalStrings(entry.KeyPoints)
	if err != nil {
		return models.KnowledgeEntry{}, fmt.Errorf("encode key points: %w", err)
	}
	paragraphs, err := marshalStrings(entry.Paragraphs)
	if err != nil {
		return models.KnowledgeEntry{}, fmt.Errorf("encode paragraphs: %w", err)
	}

	entry.SavedAt = time.Now().UTC()
	if entry.CapturedAt.IsZero() {
		entry.CapturedAt = entry.SavedAt
	}

	tx, err := s.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return models.KnowledgeEntry{}, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM entries WHERE url = ?", entry.URL).Scan(&one)
	if err == nil {
		return models.KnowledgeEntry{}, ErrDuplicateURL
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.KnowledgeEntry{}, fmt.Errorf("check existing entry: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO entries (url, title, subject, topic, chapter, key_points, paragraphs, captured_at, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.URL, entry.Title, entry.Subject, entry.Topic, entry.Chapter,
		keyPoints, paragraphs, entry.CapturedAt, entry.SavedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.KnowledgeEntry{}, ErrDuplicateURL
		}
		return models.KnowledgeEntry{}, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.KnowledgeEntry{}, fmt.Errorf("get entry id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.KnowledgeEntry{}, fmt.Errorf("commit save: %w", err)
	}

	entry.ID = id
	return entry, nil
}

// All returns every entry in insertion order.
func (s *Store) All(ctx context.Context) ([]models.KnowledgeEntry, error) {
	return s.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries ORDER BY entry_id")
}

// GetBy returns entries whose attribute equals value exactly.
func (s *Store) GetBy(ctx context.Context, attr Attribute, value string) ([]models.KnowledgeEntry, error) {
	column, ok := attrColumns[attr]
	if !ok {
		return nil, fmt.Errorf("unsupported attribute %q", attr)
	}
	return s.queryEntries(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE "+column+" = ? ORDER BY entry_id", value)
}

// GetBySubjectTopic returns entries matching both subject and topic,
// served by the composite index.
func (s *Store) GetBySubjectTopic(ctx context.Context, subject, topic string) ([]models.KnowledgeEntry, error) {
	return s.queryEntries(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE subject = ? AND topic = ? ORDER BY entry_id",
		subject, topic)
}

// GetByID returns the entry with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (models.KnowledgeEntry, error) {
	row := s.readDB.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE entry_id = ?", id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.KnowledgeEntry{}, ErrNotFound
	}
	if err != nil {
		return models.KnowledgeEntry{}, fmt.Errorf("get entry %d: %w", id, err)
	}
	return entry, nil
}

// Delete removes the entry with the given id. Deleting an unknown id is
// not an error; it reports false.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.writeDB.ExecContext(ctx, "DELETE FROM entries WHERE entry_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete entry %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete entry %d: %w", id, err)
	}
	return affected > 0, nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.writeDB.ExecContext(ctx, "DELETE FROM entries")
	if err != nil {
		return 0, fmt.Errorf("clear entries: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear entries: %w", err)
	}
	return affected, nil
}

// Search returns entries containing text as a case-insensitive substring
// of the title, key points, paragraphs, subject or topic.
func (s *Store) Search(ctx context.Context, text string) ([]models.KnowledgeEntry, error) {
	pattern := "%" + escapeLike(text) + "%"
	query := "SELECT " + entryColumns + ` FROM entries
		WHERE title LIKE ? ESCAPE '\'
		   OR key_points LIKE ? ESCAPE '\'
		   OR paragraphs LIKE ? ESCAPE '\'
		   OR subject LIKE ? ESCAPE '\'
		   OR topic LIKE ? ESCAPE '\'
		ORDER BY entry_id`
	return s.queryEntries(ctx, query, pattern, pattern, pattern, pattern, pattern)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]models.KnowledgeEntry, error) {
	rows, err := s.readDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.KnowledgeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (models.KnowledgeEntry, error) {
	var entry models.KnowledgeEntry
	var keyPoints, paragraphs string

	err := row.Scan(&entry.ID, &entry.URL, &entry.Title, &entry.Subject,
		&entry.Topic, &entry.Chapter, &keyPoints, &paragraphs,
		&entry.CapturedAt, &entry.SavedAt)
	if err != nil {
		return models.KnowledgeEntry{}, err
	}

	if err := json.Unmarshal([]byte(keyPoints), &entry.KeyPoints); err != nil {
		return models.KnowledgeEntry{}, fmt.Errorf("decode key points: %w", err)
	}
	if err := json.Unmarshal([]byte(paragraphs), &entry.Paragraphs); err != nil {
		return models.KnowledgeEntry{}, fmt.Errorf("decode paragraphs: %w", err)
	}

	return entry, nil
}

// marshalStrings encodes a string slice as a JSON array, never null.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// escapeLike escapes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
