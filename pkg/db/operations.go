package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RunRecord represents one optimization run.
type RunRecord struct {
	RunID           int64
	BatchID         sql.NullInt64
	Source          string
	URL             sql.NullString
	ContentHash     string
	Optimization    string
	ScoringMode     sql.NullString
	ScoreThreshold  sql.NullFloat64
	CandidateBlocks int64
	SelectedBlocks  int64
	InputBytes      int64
	OutputBytes     int64
	DurationMS      int64
	ErrorMessage    sql.NullString
	CreatedAt       time.Time
}

// BatchRecord represents one batch invocation.
type BatchRecord struct {
	BatchID        int64
	BatchKey       string
	CreatedAt      time.Time
	InputCount     int64
	OptimizedCount int64
	SkippedCount   int64
	FailedCount    int64
}

const runColumns = `run_id, batch_id, source, url, content_hash, optimization,
	scoring_mode, score_threshold, candidate_blocks, selected_blocks,
	input_bytes, output_bytes, duration_ms, error_message, created_at`

func scanRun(row interface{ Scan(...interface{}) error }) (RunRecord, error) {
	var rec RunRecord
	err := row.Scan(&rec.RunID, &rec.BatchID, &rec.Source, &rec.URL,
		&rec.ContentHash, &rec.Optimization, &rec.ScoringMode,
		&rec.ScoreThreshold, &rec.CandidateBlocks, &rec.SelectedBlocks,
		&rec.InputBytes, &rec.OutputBytes, &rec.DurationMS,
		&rec.ErrorMessage, &rec.CreatedAt)
	return rec, err
}

// InsertRun records an optimization run, returning the run_id.
func (db *DB) InsertRun(rec RunRecord) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (batch_id, source, url, content_hash, optimization,
			scoring_mode, score_threshold, candidate_blocks, selected_blocks,
			input_bytes, output_bytes, duration_ms, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.BatchID, rec.Source, rec.URL, rec.ContentHash, rec.Optimization,
		rec.ScoringMode, rec.ScoreThreshold, rec.CandidateBlocks,
		rec.SelectedBlocks, rec.InputBytes, rec.OutputBytes, rec.DurationMS,
		rec.ErrorMessage)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	return runID, nil
}

// GetRun returns a single run by ID, or nil if it does not exist.
func (db *DB) GetRun(runID int64) (*RunRecord, error) {
	rec, err := scanRun(db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &rec, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, rec)
	}

	return runs, rows.Err()
}

// ListBatchRuns returns all runs belonging to a batch, in insertion order.
func (db *DB) ListBatchRuns(batchID int64) ([]RunRecord, error) {
	rows, err := db.Query(
		`SELECT `+runColumns+` FROM runs WHERE batch_id = ? ORDER BY run_id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, rec)
	}

	return runs, rows.Err()
}

// GetLatestRunByHash returns the newest run for a content hash, or nil.
// The CLI uses it to skip re-optimizing unchanged inputs.
func (db *DB) GetLatestRunByHash(contentHash string) (*RunRecord, error) {
	rec, err := scanRun(db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE content_hash = ? ORDER BY run_id DESC LIMIT 1`,
		contentHash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run by hash: %w", err)
	}
	return &rec, nil
}

// InsertBatch records a batch, returning the batch_id.
// Re-running a batch with the same key reuses the existing row and resets
// its counters.
func (db *DB) InsertBatch(batchKey string, inputCount int) (int64, error) {
	var existingID int64
	err := db.QueryRow("SELECT batch_id FROM batches WHERE batch_key = ?", batchKey).Scan(&existingID)
	if err == nil {
		_, err = db.Exec(`
			UPDATE batches
			SET input_count = ?, optimized_count = 0, skipped_count = 0, failed_count = 0
			WHERE batch_id = ?
		`, inputCount, existingID)
		if err != nil {
			return 0, fmt.Errorf("failed to reset batch: %w", err)
		}
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing batch: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO batches (batch_key, input_count) VALUES (?, ?)
	`, batchKey, inputCount)
	if err != nil {
		return 0, fmt.Errorf("failed to insert batch: %w", err)
	}

	batchID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get batch ID: %w", err)
	}

	return batchID, nil
}

// FinishBatch records final batch counters.
func (db *DB) FinishBatch(batchID int64, optimized, skipped, failed int) error {
	_, err := db.Exec(`
		UPDATE batches
		SET optimized_count = ?, skipped_count = ?, failed_count = ?
		WHERE batch_id = ?
	`, optimized, skipped, failed, batchID)
	if err != nil {
		return fmt.Errorf("failed to finish batch: %w", err)
	}
	return nil
}

// ListBatches returns the most recent batches, newest first.
func (db *DB) ListBatches(limit int) ([]BatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT batch_id, batch_key, created_at, input_count,
			optimized_count, skipped_count, failed_count
		FROM batches ORDER BY batch_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []BatchRecord
	for rows.Next() {
		var b BatchRecord
		if err := rows.Scan(&b.BatchID, &b.BatchKey, &b.CreatedAt,
			&b.InputCount, &b.OptimizedCount, &b.SkippedCount, &b.FailedCount); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}

	return batches, rows.Err()
}

// Stats summarizes the run history.
type Stats struct {
	TotalRuns       int64
	Optimized       int64
	Disabled        int64
	NoContentBlocks int64
	Failed          int64
	TotalBatches    int64
	AvgDurationMS   float64
	AvgReduction    float64 // 1 - output/input, over optimized runs with input
}

// GetStats aggregates outcome counts and averages over the run history.
func (db *DB) GetStats() (*Stats, error) {
	var stats Stats

	rows, err := db.Query(`SELECT optimization, COUNT(*) FROM runs GROUP BY optimization`)
	if err != nil {
		return nil, fmt.Errorf("failed to count outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome string
		var count int64
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		stats.TotalRuns += count
		switch outcome {
		case "optimized":
			stats.Optimized = count
		case "disabled":
			stats.Disabled = count
		case "no_content_blocks":
			stats.NoContentBlocks = count
		case "failed":
			stats.Failed = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM batches`).Scan(&stats.TotalBatches); err != nil {
		return nil, fmt.Errorf("failed to count batches: %w", err)
	}

	var avgDuration sql.NullFloat64
	if err := db.QueryRow(`SELECT AVG(duration_ms) FROM runs`).Scan(&avgDuration); err != nil {
		return nil, fmt.Errorf("failed to average duration: %w", err)
	}
	stats.AvgDurationMS = avgDuration.Float64

	var avgReduction sql.NullFloat64
	err = db.QueryRow(`
		SELECT AVG(1.0 - CAST(output_bytes AS REAL) / input_bytes)
		FROM runs
		WHERE optimization = 'optimized' AND input_bytes > 0
	`).Scan(&avgReduction)
	if err != nil {
		return nil, fmt.Errorf("failed to average reduction: %w", err)
	}
	stats.AvgReduction = avgReduction.Float64

	return &stats, nil
}

// NewNullString creates a sql.NullString from a string value.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// NewNullFloat64 creates a sql.NullFloat64 from a float64 value.
func NewNullFloat64(f float64) sql.NullFloat64 {
	if f == 0 {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

// NewNullInt64 creates a sql.NullInt64 from an int64 value.
func NewNullInt64(i int64) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: i, Valid: true}
}
