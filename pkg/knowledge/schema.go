package knowledge

// pragmas run once per open, outside any transaction (WAL cannot be set
// inside one).
const pragmas = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA busy_timeout = 5000;
`

// migrations apply in order; PRAGMA user_version tracks how far a database
// has come. New versions append statements here, never rewrite old ones,
// so existing databases upgrade in place without data loss.
var migrations = []string{schemaV1, schemaV2}

// v1: knowledge entries, one per captured URL.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS entries (
    entry_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    subject TEXT NOT NULL,
    topic TEXT NOT NULL,
    chapter TEXT NOT NULL,

    -- JSON arrays of strings
    key_points TEXT NOT NULL DEFAULT '[]',
    paragraphs TEXT NOT NULL DEFAULT '[]',

    captured_at TIMESTAMP NOT NULL,
    saved_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_subject ON entries(subject);
CREATE INDEX IF NOT EXISTS idx_entries_topic ON entries(topic);
CREATE INDEX IF NOT EXISTS idx_entries_chapter ON entries(chapter);
CREATE INDEX IF NOT EXISTS idx_entries_captured ON entries(captured_at);

-- Composite index for the common subject+topic drill-down
CREATE INDEX IF NOT EXISTS idx_entries_subject_topic ON entries(subject, topic);
`

// v2: capture run accounting.
const schemaV2 = `
CREATE TABLE IF NOT EXISTS capture_runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP NOT NULL,
    url_count INTEGER NOT NULL,
    saved_count INTEGER NOT NULL DEFAULT 0,
    duplicate_count INTEGER NOT NULL DEFAULT 0,
    failed_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_capture_runs_started ON capture_runs(started_at DESC);
`
