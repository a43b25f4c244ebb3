package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the runs table. created_at is stored as Unix nanoseconds so
// both drivers read it back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    input TEXT NOT NULL,
    input_hash TEXT NOT NULL,
    digit_mode TEXT NOT NULL,

    pairs INTEGER NOT NULL,
    documents INTEGER NOT NULL,
    ordered_index_sum INTEGER NOT NULL,
    decoder_key INTEGER NOT NULL,

    duration_ns INTEGER NOT NULL,
    status TEXT NOT NULL,
    error TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_input_hash ON runs(input_hash);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
`

// InsertSchemaVersion records the schema version.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const runColumns = `id, input, input_hash, digit_mode, pairs, documents, ordered_index_sum,
    decoder_key, duration_ns, status, error, created_at`
