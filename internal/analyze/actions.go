package analyze

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/dtnitsch/llm-content-optimizer/models"
	"github.com/dtnitsch/llm-content-optimizer/pkg/analytics"
	"github.com/dtnitsch/llm-content-optimizer/pkg/artifacts"
	"github.com/dtnitsch/llm-content-optimizer/pkg/extract"
	"github.com/dtnitsch/llm-content-optimizer/pkg/mapreduce"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// CorpusStats aggregates every run report found under the results tree.
type CorpusStats struct {
	Reports      int                    `yaml:"reports"`
	Outcomes     map[string]int         `yaml:"outcomes"`
	ScoringModes map[string]int         `yaml:"scoring_modes,omitempty"`
	Stages       models.StageCounts     `yaml:"stage_totals"`
	Rejections   models.RejectionCounts `yaml:"rejection_totals"`
	AvgDuration  float64                `yaml:"avg_duration_ms"`
	AvgSelected  float64                `yaml:"avg_selected_per_run,omitempty"`
	KeepRate     float64                `yaml:"keep_rate,omitempty"`
	Fallbacks    []string               `yaml:"structural_fallbacks,omitempty"`
	Failures     []RunFailure           `yaml:"failures,omitempty"`
	TopKeywords  []string               `yaml:"top_keywords,omitempty"`
}

// RunFailure names a run whose report recorded a failed optimization.
type RunFailure struct {
	Run   string `yaml:"run"`
	Error string `yaml:"error,omitempty"`
}

// AnalyzeAction aggregates recorded run reports into corpus-level stats.
func AnalyzeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	appCfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	resultsDir := appCfg.ResultsDir
	if c.IsSet("results-dir") {
		resultsDir = c.String("results-dir")
	}

	patterns := c.StringSlice("from")
	if len(patterns) == 0 {
		patterns = []string{filepath.Join(resultsDir, artifacts.RunsDir, "*", artifacts.ReportName)}
	}

	var reportPaths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			logger.Warn("error matching glob pattern, skipping", "pattern", pattern, "error", err)
			continue
		}
		reportPaths = append(reportPaths, matches...)
	}
	sort.Strings(reportPaths)

	if len(reportPaths) == 0 {
		return fmt.Errorf("no reports found under %s\nRun 'lco optimize <file>' or 'lco batch --inputs <file>' first",
			filepath.Join(resultsDir, artifacts.RunsDir))
	}

	logger.Info("Analyzing run reports", "count", len(reportPaths))

	a := &analytics.Analytics{}
	stats := CorpusStats{
		Outcomes:     make(map[string]int),
		ScoringModes: make(map[string]int),
	}
	wordCounts := make([]map[string]int, 0, len(reportPaths))
	var totalDuration, totalSelected int64

	for _, path := range reportPaths {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			logger.Warn("failed to read report, skipping", "path", path, "error", err)
			continue
		}

		var report models.Report
		if err := yaml.Unmarshal(data, &report); err != nil {
			logger.Warn("failed to parse report, skipping", "path", path, "error", err)
			continue
		}

		runName := filepath.Base(filepath.Dir(path))
		stats.Reports++
		stats.Outcomes[report.Optimization]++
		if report.ScoringMode != "" {
			stats.ScoringModes[report.ScoringMode]++
			if report.ScoringMode == "structural" {
				stats.Fallbacks = append(stats.Fallbacks, runName)
			}
		}
		stats.Stages.Candidates += report.Stages.Candidates
		stats.Stages.Cleaned += report.Stages.Cleaned
		stats.Stages.QualityPassed += report.Stages.QualityPassed
		stats.Stages.Retained += report.Stages.Retained
		stats.Stages.Selected += report.Stages.Selected
		stats.Rejections.TooShort += report.Rejections.TooShort
		stats.Rejections.LinkHeavy += report.Rejections.LinkHeavy
		stats.Rejections.LowAlphanumeric += report.Rejections.LowAlphanumeric
		stats.Rejections.Boilerplate += report.Rejections.Boilerplate
		totalDuration += report.DurationMS
		totalSelected += int64(report.Stages.Selected)

		if report.Optimization == models.OptimizationFailed {
			stats.Failures = append(stats.Failures, RunFailure{Run: runName, Error: report.Error})
		}

		// Aggregate keywords over the optimized pages. Failed runs write no
		// HTML, so a missing file is not an error here.
		htmlPath := filepath.Join(filepath.Dir(path), artifacts.OptimizedHTMLName)
		htmlData, err := os.ReadFile(filepath.Clean(htmlPath))
		if err != nil {
			continue
		}
		plain, err := extract.Plain{}.Extract(string(htmlData), "")
		if err != nil {
			logger.Warn("failed to extract text, skipping keywords", "path", htmlPath, "error", err)
			continue
		}
		wordCounts = append(wordCounts, mapreduce.Map(plain.Text, a))
	}

	if stats.Reports > 0 {
		stats.AvgDuration = float64(totalDuration) / float64(stats.Reports)
		stats.AvgSelected = float64(totalSelected) / float64(stats.Reports)
	}
	if stats.Stages.Candidates > 0 {
		stats.KeepRate = float64(stats.Stages.Selected) / float64(stats.Stages.Candidates)
	}

	finalCounts := mapreduce.Reduce(wordCounts)
	top := c.Int("top")
	if top <= 0 {
		top = 25
	}

	if c.Bool("keywords-only") {
		mapreduce.PrintTopKeywords(finalCounts, top)
		return nil
	}

	stats.TopKeywords = mapreduce.TopKeywords(finalCounts, top)

	yamlBytes, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	fmt.Print(string(yamlBytes))

	return nil
}
