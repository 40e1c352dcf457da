package optimize

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dtnitsch/llm-content-optimizer/models"
)

func TestBuildRunSummary(t *testing.T) {
	r := Result{
		Job:    Job{Source: "pages/scheduler.html"},
		RunDir: "lco-results/runs/example_com_scheduler-a1b2c3",
		Status: models.OptimizationApplied,
		Report: &models.Report{
			Optimization: models.OptimizationApplied,
			URL:          "https://example.com/scheduler",
			ScoringMode:  "coverage",
			Stages:       models.StageCounts{Candidates: 12, Cleaned: 11, QualityPassed: 9, Retained: 6, Selected: 5},
		},
		Optimized:          []byte(strings.Repeat("x", 400)),
		InputBytes:         2048,
		Language:           "English",
		LanguageConfidence: 0.97,
		WordCounts:         map[string]int{"scheduler": 9, "goroutine": 7, "queue": 7},
	}

	want := models.RunSummary{
		Source:          "pages/scheduler.html",
		URL:             "https://example.com/scheduler",
		RunDir:          "lco-results/runs/example_com_scheduler-a1b2c3",
		Status:          models.OptimizationApplied,
		Language:        "English",
		LanguageConf:    0.97,
		ScoringMode:     "coverage",
		CandidateBlocks: 12,
		SelectedBlocks:  5,
		InputBytes:      2048,
		OutputBytes:     400,
		EstimatedTokens: 100,
		TopKeywords:     []string{"scheduler:9", "goroutine:7", "queue:7"},
	}
	if diff := cmp.Diff(want, BuildRunSummary(r)); diff != "" {
		t.Errorf("BuildRunSummary mismatch:\n%s", diff)
	}
}

func TestBuildRunSummaryWithoutReport(t *testing.T) {
	r := Result{
		Job:    Job{Source: "bad.html"},
		Status: models.OptimizationFailed,
		Error:  errors.New("no such file"),
	}

	want := models.RunSummary{
		Source:       "bad.html",
		Status:       models.OptimizationFailed,
		ErrorMessage: "no such file",
	}
	if diff := cmp.Diff(want, BuildRunSummary(r)); diff != "" {
		t.Errorf("BuildRunSummary mismatch:\n%s", diff)
	}
}

func TestBuildBatchSummary(t *testing.T) {
	results := []Result{
		{Job: Job{Source: "a.html"}, Status: models.OptimizationApplied},
		{Job: Job{Source: "b.html"}, Status: StatusSkipped},
		{Job: Job{Source: "c.html"}, Status: models.OptimizationFailed, Error: errors.New("boom")},
		{Job: Job{Source: "d.html"}, Status: models.OptimizationNoBlocks},
	}
	aggregate := map[string]int{"scheduler": 12, "queue": 3}

	summary := BuildBatchSummary("batch-20250825120000-ab12cd", results, aggregate)

	if summary.BatchID != "batch-20250825120000-ab12cd" {
		t.Errorf("BatchID = %q", summary.BatchID)
	}
	if _, err := time.Parse(time.RFC3339, summary.GeneratedAt); err != nil {
		t.Errorf("GeneratedAt %q is not RFC3339: %v", summary.GeneratedAt, err)
	}
	if summary.TotalInputs != 4 || summary.Optimized != 1 || summary.Skipped != 1 || summary.Failed != 1 {
		t.Errorf("counts = %d/%d/%d/%d, want 4/1/1/1",
			summary.TotalInputs, summary.Optimized, summary.Skipped, summary.Failed)
	}
	if diff := cmp.Diff([]string{"scheduler:12", "queue:3"}, summary.AggregateKeywords); diff != "" {
		t.Errorf("AggregateKeywords mismatch:\n%s", diff)
	}
	if len(summary.Results) != 4 {
		t.Fatalf("Results has %d rows, want 4", len(summary.Results))
	}
	if summary.Results[2].ErrorMessage != "boom" {
		t.Errorf("failed row error = %q", summary.Results[2].ErrorMessage)
	}
	// no_content_blocks lands in no counter bucket; it only shows in its row.
	if summary.Results[3].Status != models.OptimizationNoBlocks {
		t.Errorf("no-blocks row status = %q", summary.Results[3].Status)
	}
}

func TestTerseStatusAndMode(t *testing.T) {
	statuses := []struct {
		in   string
		want int
	}{
		{models.OptimizationApplied, 0},
		{StatusSkipped, 1},
		{models.OptimizationDisabled, 2},
		{models.OptimizationNoBlocks, 3},
		{models.OptimizationFailed, 4},
		{"unheard_of", 4},
	}
	for _, tt := range statuses {
		if got := ToTerseStatus(tt.in); got != tt.want {
			t.Errorf("ToTerseStatus(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	modes := []struct {
		in, want string
	}{
		{"coverage", "c"},
		{"query", "q"},
		{"structural", "s"},
		{"", ""},
		{"novel", "u"},
	}
	for _, tt := range modes {
		if got := ToTerseMode(tt.in); got != tt.want {
			t.Errorf("ToTerseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToTerseResult(t *testing.T) {
	row := models.RunSummary{
		Source:          "pages/gc.html",
		RunDir:          "lco-results/runs/gc-abc",
		Status:          models.OptimizationApplied,
		ScoringMode:     "query",
		Language:        "English",
		CandidateBlocks: 9,
		SelectedBlocks:  4,
		InputBytes:      1500,
		OutputBytes:     600,
		EstimatedTokens: 150,
		TopKeywords:     []string{"collector:5"},
	}

	want := RunSummaryTerse{
		Source:   "pages/gc.html",
		RunDir:   "lco-results/runs/gc-abc",
		Status:   0,
		Mode:     "q",
		Lang:     "English",
		Blocks:   [2]int{9, 4},
		Bytes:    [2]int64{1500, 600},
		Tokens:   150,
		Keywords: []string{"collector:5"},
	}
	if diff := cmp.Diff(want, ToTerseResult(row)); diff != "" {
		t.Errorf("ToTerseResult mismatch:\n%s", diff)
	}
}
