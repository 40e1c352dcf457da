package optimize

import "github.com/dtnitsch/llm-content-optimizer/models"

// RunSummaryTerse is the token-optimized v2 format with abbreviated field names.
type RunSummaryTerse struct {
	Source   string   `json:"src" yaml:"src"`
	RunDir   string   `json:"dir,omitempty" yaml:"dir,omitempty"`
	Status   int      `json:"s" yaml:"s"` // 0=optimized, 1=skipped, 2=disabled, 3=no content, 4=failed
	Error    string   `json:"e,omitempty" yaml:"e,omitempty"`
	Mode     string   `json:"m,omitempty" yaml:"m,omitempty"` // c=coverage, q=query, s=structural
	Lang     string   `json:"lg,omitempty" yaml:"lg,omitempty"`
	Blocks   [2]int   `json:"blk" yaml:"blk,flow"` // [candidates, selected] fixed order
	Bytes    [2]int64 `json:"b" yaml:"b,flow"`     // [in, out] fixed order
	Tokens   int      `json:"tk,omitempty" yaml:"tk,omitempty"`
	Keywords []string `json:"kw,omitempty" yaml:"kw,omitempty"`
}

// StatsTerse is the token-optimized v2 stats format.
type StatsTerse struct {
	Total     int      `json:"t" yaml:"t"`
	Optimized int      `json:"ok" yaml:"ok"`
	Skipped   int      `json:"sk" yaml:"sk"`
	Failed    int      `json:"f" yaml:"f"`
	Time      float64  `json:"ts" yaml:"ts"`
	Keywords  []string `json:"kw,omitempty" yaml:"kw,omitempty"`
}

// FinalOutputTerse is the v2 terse output wrapper.
type FinalOutputTerse struct {
	Status  string      `json:"s" yaml:"s"`
	Results interface{} `json:"r" yaml:"r"`
	Stats   StatsTerse  `json:"st" yaml:"st"`
}

func ToTerseStatus(status string) int {
	switch status {
	case models.OptimizationApplied:
		return 0
	case StatusSkipped:
		return 1
	case models.OptimizationDisabled:
		return 2
	case models.OptimizationNoBlocks:
		return 3
	default:
		return 4
	}
}

// ToTerseMode converts scoring_mode to a single char (c=coverage, q=query, s=structural).
func ToTerseMode(mode string) string {
	switch mode {
	case "coverage":
		return "c"
	case "query":
		return "q"
	case "structural":
		return "s"
	case "":
		return ""
	default:
		return "u"
	}
}

// ToTerseResult converts a RunSummary to RunSummaryTerse.
func ToTerseResult(r models.RunSummary) RunSummaryTerse {
	return RunSummaryTerse{
		Source:   r.Source,
		RunDir:   r.RunDir,
		Status:   ToTerseStatus(r.Status),
		Error:    r.ErrorMessage,
		Mode:     ToTerseMode(r.ScoringMode),
		Lang:     r.Language,
		Blocks:   [2]int{r.CandidateBlocks, r.SelectedBlocks},
		Bytes:    [2]int64{r.InputBytes, r.OutputBytes},
		Tokens:   r.EstimatedTokens,
		Keywords: r.TopKeywords,
	}
}

// ToTerseStats converts Stats to StatsTerse.
func ToTerseStats(s Stats) StatsTerse {
	return StatsTerse{
		Total:     s.TotalInputs,
		Optimized: s.Optimized,
		Skipped:   s.Skipped,
		Failed:    s.Failed,
		Time:      s.TotalTimeSeconds,
		Keywords:  s.TopKeywords,
	}
}
