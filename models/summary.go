package models

// BatchSummary is the lightweight batch rollup written next to the per-run
// reports. It gives an overview of every input, its outcome, and the
// batch-wide keywords without requiring consumers to read full reports.
type BatchSummary struct {
	BatchID           string       `yaml:"batch_id" json:"batch_id"`
	GeneratedAt       string       `yaml:"generated_at" json:"generated_at"`
	TotalInputs       int          `yaml:"total_inputs" json:"total_inputs"`
	Optimized         int          `yaml:"optimized" json:"optimized"`
	Skipped           int          `yaml:"skipped" json:"skipped"`
	Failed            int          `yaml:"failed" json:"failed"`
	AggregateKeywords []string     `yaml:"aggregate_keywords,omitempty" json:"aggregate_keywords,omitempty"`
	Results           []RunSummary `yaml:"results" json:"results"`
}

// RunSummary is one input's row in a batch summary.
type RunSummary struct {
	Source          string   `yaml:"source" json:"source"`
	URL             string   `yaml:"url,omitempty" json:"url,omitempty"`
	RunDir          string   `yaml:"run_dir,omitempty" json:"run_dir,omitempty"`
	Status          string   `yaml:"status" json:"status"` // optimization outcome, or "skipped"
	ErrorMessage    string   `yaml:"error_message,omitempty" json:"error_message,omitempty"`
	Language        string   `yaml:"language,omitempty" json:"language,omitempty"`
	LanguageConf    float64  `yaml:"language_confidence,omitempty" json:"language_confidence,omitempty"`
	ScoringMode     string   `yaml:"scoring_mode,omitempty" json:"scoring_mode,omitempty"`
	CandidateBlocks int      `yaml:"candidate_blocks,omitempty" json:"candidate_blocks,omitempty"`
	SelectedBlocks  int      `yaml:"selected_blocks,omitempty" json:"selected_blocks,omitempty"`
	InputBytes      int64    `yaml:"input_bytes,omitempty" json:"input_bytes,omitempty"`
	OutputBytes     int64    `yaml:"output_bytes,omitempty" json:"output_bytes,omitempty"`
	EstimatedTokens int      `yaml:"estimated_tokens,omitempty" json:"estimated_tokens,omitempty"`
	TopKeywords     []string `yaml:"top_keywords,omitempty" json:"top_keywords,omitempty"`
}
