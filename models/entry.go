package models

import "time"

// EntryParagraphs is the display subset of page paragraphs retained on a
// saved entry.
const EntryParagraphs = 5

// KnowledgeEntry is one persisted unit of captured knowledge. IDs are
// assigned by the store and increase monotonically; URLs are unique across
// the store. Entries are immutable after save except for deletion.
type KnowledgeEntry struct {
	ID         int64     `json:"id" yaml:"id"`
	URL        string    `json:"url" yaml:"url"`
	Subject    string    `json:"subject" yaml:"subject"`
	Topic      string    `json:"topic" yaml:"topic"`
	Chapter    string    `json:"chapter" yaml:"chapter"`
	Title      string    `json:"title" yaml:"title"`
	KeyPoints  []string  `json:"key_points" yaml:"key_points"`
	Paragraphs []string  `json:"paragraphs" yaml:"paragraphs"` // first EntryParagraphs of the page
	CapturedAt time.Time `json:"captured_at" yaml:"captured_at"`
	SavedAt    time.Time `json:"saved_at" yaml:"saved_at"`
}

// BuildEntry assembles the unsaved candidate entry for a classified page.
// ID and SavedAt are zero until the store accepts it.
func BuildEntry(content PageContent, cls Classification) KnowledgeEntry {
	paragraphs := content.Paragraphs
	if len(paragraphs) > EntryParagraphs {
		paragraphs = paragraphs[:EntryParagraphs]
	}

	return KnowledgeEntry{
		URL:        content.URL,
		Subject:    cls.Subject,
		Topic:      cls.Topic,
		Chapter:    cls.Chapter,
		Title:      content.Title,
		KeyPoints:  cls.KeyPoints,
		Paragraphs: paragraphs,
		CapturedAt: content.Timestamp,
	}
}

// Statistics summarizes the current state of the knowledge store.
type Statistics struct {
	TotalEntries   int            `json:"total_entries" yaml:"total_entries"`
	BySubject      map[string]int `json:"by_subject" yaml:"by_subject"`
	ByTopic        map[string]int `json:"by_topic" yaml:"by_topic"`
	ByChapter      map[string]int `json:"by_chapter" yaml:"by_chapter"`
	UniqueSubjects int            `json:"unique_subjects" yaml:"unique_subjects"`
	UniqueTopics   int            `json:"unique_topics" yaml:"unique_topics"`
	UniqueChapters int            `json:"unique_chapters" yaml:"unique_chapters"`
}

// CaptureRun is the accounting row for one capture invocation.
type CaptureRun struct {
	ID         int64     `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	URLCount   int       `json:"url_count" yaml:"url_count"`
	Saved      int       `json:"saved" yaml:"saved"`
	Duplicates int       `json:"duplicates" yaml:"duplicates"`
	Failed     int       `json:"failed" yaml:"failed"`
}
