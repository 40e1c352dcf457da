package optimizer

import "github.com/dtnitsch/llm-content-optimizer/models"

// Config controls the pre-filtering pipeline. The zero value is not usable;
// start from DefaultConfig and override fields as needed. A Config is passed
// once at construction and never mutated mid-run.
type Config struct {
	// Enabled bypasses the entire pipeline when false.
	Enabled bool

	// MinTextLength is the block length floor in runes, applied at extraction
	// and again by the quality filter.
	MinTextLength int

	// MaxFeatures caps the vector-space vocabulary size.
	MaxFeatures int

	// MinDF and MaxDF bound vocabulary document frequency. MinDF is an
	// absolute document count; MaxDF is a fraction of the corpus. Both relax
	// automatically when fewer than 3 documents exist.
	MinDF int
	MaxDF float64

	// ScoreFloor is the minimum score for percentile-based retention.
	ScoreFloor float64

	// ContentRatio is the fraction of blocks retained by rank.
	ContentRatio float64

	// MinKeepK is the absolute floor on rank-based retention.
	MinKeepK int

	// PercentileThreshold selects the percentile used for score-based
	// retention, as a fraction in (0, 1].
	PercentileThreshold float64

	// MaxLinkDensity rejects blocks whose anchor-text fraction exceeds it.
	MaxLinkDensity float64

	// MinAlphanumericRatio rejects blocks below this alphanumeric fraction.
	MinAlphanumericRatio float64

	// EnableCJKSegmentation toggles the segmenter capability; when false the
	// character-bigram fallback is always used for CJK text.
	EnableCJKSegmentation bool
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:               true,
		MinTextLength:         80,
		MaxFeatures:           10000,
		MinDF:                 2,
		MaxDF:                 0.8,
		ScoreFloor:            0.06,
		ContentRatio:          0.2,
		MinKeepK:              80,
		PercentileThreshold:   0.80,
		MaxLinkDensity:        0.3,
		MinAlphanumericRatio:  0.5,
		EnableCJKSegmentation: true,
	}
}

// normalize fills zero-valued tunables with defaults so a partially
// populated Config behaves sensibly. Enabled is left alone: false is a
// meaningful setting, not an omission.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.MinTextLength <= 0 {
		c.MinTextLength = def.MinTextLength
	}
	if c.MaxFeatures <= 0 {
		c.MaxFeatures = def.MaxFeatures
	}
	if c.MinDF <= 0 {
		c.MinDF = def.MinDF
	}
	if c.MaxDF <= 0 || c.MaxDF > 1 {
		c.MaxDF = def.MaxDF
	}
	if c.ScoreFloor <= 0 {
		c.ScoreFloor = def.ScoreFloor
	}
	if c.ContentRatio <= 0 || c.ContentRatio > 1 {
		c.ContentRatio = def.ContentRatio
	}
	if c.MinKeepK <= 0 {
		c.MinKeepK = def.MinKeepK
	}
	if c.PercentileThreshold <= 0 || c.PercentileThreshold > 1 {
		c.PercentileThreshold = def.PercentileThreshold
	}
	if c.MaxLinkDensity <= 0 {
		c.MaxLinkDensity = def.MaxLinkDensity
	}
	if c.MinAlphanumericRatio <= 0 {
		c.MinAlphanumericRatio = def.MinAlphanumericRatio
	}
	return c
}

// effective converts the Config into its report echo.
func (c Config) effective() models.EffectiveConfig {
	return models.EffectiveConfig{
		MinTextLength:        c.MinTextLength,
		MaxFeatures:          c.MaxFeatures,
		MinDF:                c.MinDF,
		MaxDF:                c.MaxDF,
		ScoreFloor:           c.ScoreFloor,
		ContentRatio:         c.ContentRatio,
		MinKeepK:             c.MinKeepK,
		PercentileThreshold:  c.PercentileThreshold,
		MaxLinkDensity:       c.MaxLinkDensity,
		MinAlphanumericRatio: c.MinAlphanumericRatio,
		CJKSegmentation:      c.EnableCJKSegmentation,
	}
}
