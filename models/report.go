package models

// Outcome values carried in Report.Optimization.
const (
	OptimizationApplied  = "optimized"
	OptimizationDisabled = "disabled"
	OptimizationNoBlocks = "no_content_blocks"
	OptimizationFailed   = "failed"
)

// Report summarizes a single optimization run. It is written once by the
// pipeline and only read afterward, for logging and telemetry.
type Report struct {
	Optimization   string          `json:"optimization" yaml:"optimization"`
	Error          string          `json:"error,omitempty" yaml:"error,omitempty"`
	URL            string          `json:"url,omitempty" yaml:"url,omitempty"`
	ScoringMode    string          `json:"scoring_mode,omitempty" yaml:"scoring_mode,omitempty"`
	ScoreThreshold float64         `json:"score_threshold,omitempty" yaml:"score_threshold,omitempty"`
	Stages         StageCounts     `json:"stages" yaml:"stages"`
	Rejections     RejectionCounts `json:"rejections" yaml:"rejections"`
	TopBlocks      []BlockSummary  `json:"top_blocks,omitempty" yaml:"top_blocks,omitempty"`
	Config         EffectiveConfig `json:"config" yaml:"config"`
	DurationMS     int64           `json:"duration_ms" yaml:"duration_ms"`
}

// StageCounts records block counts at every stage boundary.
type StageCounts struct {
	Candidates    int `json:"candidates" yaml:"candidates"`
	Cleaned       int `json:"cleaned" yaml:"cleaned"`
	QualityPassed int `json:"quality_passed" yaml:"quality_passed"`
	Retained      int `json:"retained" yaml:"retained"`
	Selected      int `json:"selected" yaml:"selected"`
}

// RejectionCounts breaks down quality-filter rejections by rule.
type RejectionCounts struct {
	TooShort        int `json:"too_short" yaml:"too_short"`
	LinkHeavy       int `json:"link_heavy" yaml:"link_heavy"`
	LowAlphanumeric int `json:"low_alphanumeric" yaml:"low_alphanumeric"`
	Boilerplate     int `json:"boilerplate" yaml:"boilerplate"`
}

// BlockSummary is a diagnostic view of one scored block.
type BlockSummary struct {
	Section  int     `json:"section" yaml:"section"`
	Tag      string  `json:"tag" yaml:"tag"`
	Score    float64 `json:"score" yaml:"score"`
	Coverage float64 `json:"coverage" yaml:"coverage"`
	Text     string  `json:"text" yaml:"text"`
}

// EffectiveConfig echoes the tunables a run actually used, after defaults
// were filled in.
type EffectiveConfig struct {
	MinTextLength        int     `json:"min_text_length" yaml:"min_text_length"`
	MaxFeatures          int     `json:"max_features" yaml:"max_features"`
	MinDF                int     `json:"min_df" yaml:"min_df"`
	MaxDF                float64 `json:"max_df" yaml:"max_df"`
	ScoreFloor           float64 `json:"score_floor" yaml:"score_floor"`
	ContentRatio         float64 `json:"content_ratio" yaml:"content_ratio"`
	MinKeepK             int     `json:"min_keep_k" yaml:"min_keep_k"`
	PercentileThreshold  float64 `json:"percentile_threshold" yaml:"percentile_threshold"`
	MaxLinkDensity       float64 `json:"max_link_density" yaml:"max_link_density"`
	MinAlphanumericRatio float64 `json:"min_alphanumeric_ratio" yaml:"min_alphanumeric_ratio"`
	CJKSegmentation      bool    `json:"cjk_segmentation" yaml:"cjk_segmentation"`
}
