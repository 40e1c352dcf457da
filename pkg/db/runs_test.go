package db

import (
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func sampleRun(source, outcome string) RunRecord {
	return RunRecord{
		Source:          source,
		URL:             NewNullString("https://example.com/post"),
		ContentHash:     "deadbeef",
		Optimization:    outcome,
		ScoringMode:     NewNullString("coverage"),
		ScoreThreshold:  NewNullFloat64(0.12),
		CandidateBlocks: 40,
		SelectedBlocks:  12,
		InputBytes:      9000,
		OutputBytes:     3000,
		DurationMS:      45,
	}
}

func TestInsertAndGetRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun(sampleRun("page.html", "optimized"))
	if err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	if runID == 0 {
		t.Fatal("InsertRun() returned 0 ID")
	}

	rec, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("GetRun() returned nil for existing run")
	}
	if rec.Source != "page.html" {
		t.Errorf("source = %q, want %q", rec.Source, "page.html")
	}
	if rec.Optimization != "optimized" {
		t.Errorf("optimization = %q, want %q", rec.Optimization, "optimized")
	}
	if rec.ScoringMode.String != "coverage" {
		t.Errorf("scoring_mode = %q, want %q", rec.ScoringMode.String, "coverage")
	}
	if rec.SelectedBlocks != 12 {
		t.Errorf("selected_blocks = %d, want 12", rec.SelectedBlocks)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("created_at should be set by the database")
	}

	missing, err := db.GetRun(9999)
	if err != nil {
		t.Fatalf("GetRun() on missing ID failed: %v", err)
	}
	if missing != nil {
		t.Error("GetRun() on missing ID should return nil")
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, src := range []string{"a.html", "b.html", "c.html"} {
		if _, err := db.InsertRun(sampleRun(src, "optimized")); err != nil {
			t.Fatalf("InsertRun(%s) failed: %v", src, err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns(2) returned %d runs", len(runs))
	}
	// Newest first.
	if runs[0].Source != "c.html" || runs[1].Source != "b.html" {
		t.Errorf("run order = %q, %q; want c.html, b.html", runs[0].Source, runs[1].Source)
	}
}

func TestGetLatestRunByHash(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first := sampleRun("page.html", "failed")
	if _, err := db.InsertRun(first); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	second := sampleRun("page.html", "optimized")
	if _, err := db.InsertRun(second); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}

	rec, err := db.GetLatestRunByHash("deadbeef")
	if err != nil {
		t.Fatalf("GetLatestRunByHash() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("GetLatestRunByHash() returned nil for known hash")
	}
	if rec.Optimization != "optimized" {
		t.Errorf("latest run outcome = %q, want the newest insert", rec.Optimization)
	}

	none, err := db.GetLatestRunByHash("0000")
	if err != nil {
		t.Fatalf("GetLatestRunByHash() on unknown hash failed: %v", err)
	}
	if none != nil {
		t.Error("unknown hash should return nil")
	}
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	outcomes := []string{"optimized", "optimized", "failed", "no_content_blocks"}
	for _, o := range outcomes {
		if _, err := db.InsertRun(sampleRun("page.html", o)); err != nil {
			t.Fatalf("InsertRun() failed: %v", err)
		}
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}

	if stats.TotalRuns != 4 {
		t.Errorf("TotalRuns = %d, want 4", stats.TotalRuns)
	}
	if stats.Optimized != 2 {
		t.Errorf("Optimized = %d, want 2", stats.Optimized)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
	if stats.NoContentBlocks != 1 {
		t.Errorf("NoContentBlocks = %d, want 1", stats.NoContentBlocks)
	}
	// Every optimized run in the fixture keeps 3000 of 9000 bytes.
	if stats.AvgReduction < 0.66 || stats.AvgReduction > 0.67 {
		t.Errorf("AvgReduction = %f, want about 0.667", stats.AvgReduction)
	}
	if stats.AvgDurationMS != 45 {
		t.Errorf("AvgDurationMS = %f, want 45", stats.AvgDurationMS)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats() on empty database failed: %v", err)
	}
	if stats.TotalRuns != 0 {
		t.Errorf("TotalRuns = %d, want 0", stats.TotalRuns)
	}
	if stats.AvgReduction != 0 {
		t.Errorf("AvgReduction = %f, want 0", stats.AvgReduction)
	}
}
