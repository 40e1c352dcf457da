package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
)

// GenerateFieldsReference creates the FIELDS.yaml reference file at the
// results root if it does not already exist. It documents the report schema
// so downstream consumers (and LLM agents) can query reports without
// reading source code.
func GenerateFieldsReference(baseDir string) error {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	fieldsPath := filepath.Join(baseDir, "FIELDS.yaml")

	if _, err := os.Stat(fieldsPath); err == nil {
		// File exists, don't overwrite
		return nil
	}

	content := `# Report Fields Reference (LLM-Optimized)
# Auto-generated field documentation for llm-content-optimizer output

fields:
  # Outcome
  optimization: [optimized, disabled, no_content_blocks, failed]
  error: string (only if failed)
  url: string (source URL, metadata only)

  # Scoring
  scoring_mode: [coverage, query, structural]
  score_threshold: float (retention threshold actually applied)

  # Stage counts (blocks surviving each stage)
  stages:
    candidates: int (blocks found in the DOM)
    cleaned: int (after normalization and splitting)
    quality_passed: int (after quality gates)
    retained: int (after score-based retention)
    selected: int (after diversity selection, what the output contains)

  # Rejection breakdown from the quality gates
  rejections:
    too_short: int
    link_heavy: int
    low_alphanumeric: int
    boilerplate: int

  # Highest-scoring blocks, at most 10
  top_blocks:
    - section: int
      tag: string
      score: float
      coverage: float
      text: string (first 120 runes)

  # Effective configuration after defaults were applied
  config: object

  duration_ms: int

query_examples:
  - desc: Runs where optimization actually ran
    yq: '.[] | select(.optimization == "optimized")'

  - desc: Runs that fell back to structural scoring
    yq: '.[] | select(.scoring_mode == "structural")'

  - desc: Heavy boilerplate pages
    yq: '.[] | select(.rejections.boilerplate > 10)'

  - desc: Aggressive reductions (kept under a third of candidates)
    yq: '.[] | select(.stages.selected * 3 < .stages.candidates)'

  - desc: Failed runs only
    yq: '.[] | select(.optimization == "failed")'

usage:
  run_report: lco-results/runs/{run-id}/report.yaml
  optimized_html: lco-results/runs/{run-id}/optimized.html
  batch_summary: lco-results/batches/{batch-id}/summary.yaml
  batch_index: lco-results/index.yaml
`

	if err := os.WriteFile(fieldsPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write FIELDS.yaml: %w", err)
	}

	return nil
}
