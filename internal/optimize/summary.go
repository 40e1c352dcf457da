package optimize

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/llm-content-optimizer/models"
	"github.com/dtnitsch/llm-content-optimizer/pkg/artifacts"
	"github.com/dtnitsch/llm-content-optimizer/pkg/mapreduce"
	"gopkg.in/yaml.v3"
)

const topKeywordCount = 25

// BuildRunSummary flattens one result into its batch summary row.
func BuildRunSummary(r Result) models.RunSummary {
	summary := models.RunSummary{
		Source:       r.Job.Source,
		RunDir:       r.RunDir,
		Status:       r.Status,
		Language:     r.Language,
		LanguageConf: r.LanguageConfidence,
	}
	if r.Error != nil {
		summary.ErrorMessage = r.Error.Error()
	}
	if r.Report == nil {
		return summary
	}

	summary.URL = r.Report.URL
	summary.ScoringMode = r.Report.ScoringMode
	summary.CandidateBlocks = r.Report.Stages.Candidates
	summary.SelectedBlocks = r.Report.Stages.Selected
	summary.InputBytes = r.InputBytes
	summary.OutputBytes = int64(len(r.Optimized))
	// Rough heuristic: tag-light English text runs about 4 bytes per token.
	summary.EstimatedTokens = len(r.Optimized) / 4
	if r.WordCounts != nil {
		summary.TopKeywords = mapreduce.TopKeywords(r.WordCounts, topKeywordCount)
	}

	return summary
}

// BuildBatchSummary rolls all results of a batch into one summary document.
func BuildBatchSummary(batchKey string, results []Result, aggregate map[string]int) *models.BatchSummary {
	summary := &models.BatchSummary{
		BatchID:           batchKey,
		GeneratedAt:       time.Now().Format(time.RFC3339),
		TotalInputs:       len(results),
		AggregateKeywords: mapreduce.TopKeywords(aggregate, topKeywordCount),
	}

	for _, r := range results {
		switch {
		case r.Error != nil:
			summary.Failed++
		case r.Status == StatusSkipped:
			summary.Skipped++
		case r.Status == models.OptimizationApplied:
			summary.Optimized++
		}
		summary.Results = append(summary.Results, BuildRunSummary(r))
	}

	return summary
}

// writeBatchArtifacts stores the batch summary and refreshes the results
// index. Index and reference failures are logged, not fatal; the summary
// itself must land.
func writeBatchArtifacts(logger *slog.Logger, store *artifacts.Manager, summary *models.BatchSummary, sources []string) (string, error) {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal batch summary: %w", err)
	}

	path, err := store.WriteBatchSummary(summary.BatchID, data)
	if err != nil {
		return "", fmt.Errorf("failed to write batch summary: %w", err)
	}

	info := artifacts.BatchInfo{
		BatchID:        summary.BatchID,
		Created:        time.Now(),
		InputCount:     summary.TotalInputs,
		Optimized:      summary.Optimized,
		Skipped:        summary.Skipped,
		Failed:         summary.Failed,
		SourcesPreview: artifacts.SourcesPreview(sources, 3),
	}
	if err := store.UpdateBatchIndex(info); err != nil {
		logger.Warn("Failed to update batch index", "error", err)
	}

	if err := artifacts.GenerateFieldsReference(store.BaseDir()); err != nil {
		logger.Warn("Failed to generate FIELDS.yaml reference", "error", err)
	}

	return path, nil
}
