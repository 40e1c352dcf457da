package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;
PRAGMA mmap_size = 30000000000;

-- Batches: one row per batch invocation
CREATE TABLE IF NOT EXISTS batches (
    batch_id INTEGER PRIMARY KEY AUTOINCREMENT,
    batch_key TEXT NOT NULL UNIQUE,       -- timestamp-hash ID from the results tree
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    input_count INTEGER NOT NULL,
    optimized_count INTEGER DEFAULT 0,
    skipped_count INTEGER DEFAULT 0,
    failed_count INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_batches_created ON batches(created_at DESC);

-- Runs: one row per optimization run
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    batch_id INTEGER,                     -- NULL for single-input runs
    source TEXT NOT NULL,                 -- file path or URL as given
    url TEXT,                             -- sanitized URL metadata, if any
    content_hash TEXT NOT NULL,           -- SHA256 of the input HTML
    optimization TEXT NOT NULL,           -- optimized, disabled, no_content_blocks, failed
    scoring_mode TEXT,                    -- coverage, query, structural
    score_threshold REAL,
    candidate_blocks INTEGER DEFAULT 0,
    selected_blocks INTEGER DEFAULT 0,
    input_bytes INTEGER DEFAULT 0,
    output_bytes INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,
    error_message TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (batch_id) REFERENCES batches(batch_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs(batch_id);
CREATE INDEX IF NOT EXISTS idx_runs_hash ON runs(content_hash);
CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(optimization);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`
