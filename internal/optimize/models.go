package optimize

import (
	"github.com/dtnitsch/llm-content-optimizer/models"
)

// StatusSkipped marks cache hits in batch output. Every other status value
// is an optimization outcome taken from the run's report.
const StatusSkipped = "skipped"

// Job is one input to optimize.
type Job struct {
	Source string // file path, or "-" for stdin
	URL    string // optional metadata, never fetched
	Title  string
	Query  string
}

// Result holds the outcome of a processed job.
type Result struct {
	Job                Job
	RunID              string
	RunDir             string
	Status             string
	Report             *models.Report
	Optimized          []byte
	InputBytes         int64
	ContentHash        string
	Language           string
	LanguageConfidence float64
	WordCounts         map[string]int
	Error              error
	ErrorType          string
}

// FinalOutput is the structured stdout envelope for a whole invocation.
type FinalOutput struct {
	Status  string      `json:"status" yaml:"status"`
	Results interface{} `json:"results" yaml:"results"`
	Stats   Stats       `json:"stats" yaml:"stats"`
}

// Stats provides summary statistics for the invocation.
type Stats struct {
	TotalInputs      int      `json:"total_inputs" yaml:"total_inputs"`
	Optimized        int      `json:"optimized" yaml:"optimized"`
	Skipped          int      `json:"skipped" yaml:"skipped"`
	Failed           int      `json:"failed" yaml:"failed"`
	TotalTimeSeconds float64  `json:"total_time_seconds" yaml:"total_time_seconds"`
	TopKeywords      []string `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}

// cachedRun is the cache envelope for a completed optimization. Optimization
// is deterministic, so a hit replays the stored output instead of rerunning
// the pipeline.
type cachedRun struct {
	OptimizedHTML string        `yaml:"optimized_html"`
	Report        models.Report `yaml:"report"`
}
