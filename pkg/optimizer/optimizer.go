// Package optimizer pre-filters page markup ahead of content extraction. It
// scores structural text blocks by how well they represent the page, drops
// navigation chrome, boilerplate and near-duplicates, and reassembles the
// survivors into a reduced document for a downstream extractor.
package optimizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/llm-content-optimizer/models"
)

const (
	topBlockSummaries   = 10
	summaryPreviewRunes = 120
)

// Request carries the optional per-page context for one Optimize call.
type Request struct {
	URL   string
	Title string
	Query string
}

// Optimizer runs the block pipeline with a fixed configuration. A single
// value serves concurrent calls: every run parses its own tree and builds
// its own vector space, nothing is shared across invocations.
type Optimizer struct {
	cfg Config
	seg Segmenter
}

// New returns an Optimizer with unset tunables filled from DefaultConfig.
// seg may be nil, in which case CJK text always takes the bigram fallback.
func New(cfg Config, seg Segmenter) *Optimizer {
	return &Optimizer{cfg: cfg.normalize(), seg: seg}
}

// Optimize reduces pageHTML to its highest-value content blocks. It never
// returns an error and never panics: any failure degrades to returning the
// input unchanged, with the report describing what happened. The caller can
// always hand the first return value to an extractor.
func (o *Optimizer) Optimize(pageHTML string, req Request) (out string, report models.Report) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = pageHTML
			report = o.failureReport(req, fmt.Sprintf("%v", r), start)
		}
	}()

	if !o.cfg.Enabled {
		return pageHTML, models.Report{
			Optimization: models.OptimizationDisabled,
			URL:          req.URL,
			Config:       o.cfg.effective(),
			DurationMS:   time.Since(start).Milliseconds(),
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return pageHTML, o.failureReport(req, err.Error(), start)
	}

	report = models.Report{
		Optimization: models.OptimizationApplied,
		URL:          req.URL,
		Config:       o.cfg.effective(),
	}

	blocks := extractBlocks(doc, o.cfg.MinTextLength)
	report.Stages.Candidates = len(blocks)

	blocks = cleanBlocks(blocks)
	report.Stages.Cleaned = len(blocks)
	if len(blocks) == 0 {
		return pageHTML, o.emptyReport(report, start)
	}

	query := req.Query
	if query == "" {
		query = req.Title
	}
	vecs, mode := scoreBlocks(blocks, query, o.seg, o.cfg)
	report.ScoringMode = mode
	report.TopBlocks = summarizeTop(blocks, topBlockSummaries)

	blocks, rejections := filterQuality(blocks, o.cfg)
	report.Stages.QualityPassed = len(blocks)
	report.Rejections = models.RejectionCounts{
		TooShort:        rejections.TooShort,
		LinkHeavy:       rejections.LinkHeavy,
		LowAlphanumeric: rejections.LowAlnum,
		Boilerplate:     rejections.Boilerplate,
	}
	if len(blocks) == 0 {
		return pageHTML, o.emptyReport(report, start)
	}

	blocks, threshold := retainBlocks(blocks, o.cfg)
	report.Stages.Retained = len(blocks)
	report.ScoreThreshold = threshold

	blocks = selectDiverse(blocks, vecs)
	report.Stages.Selected = len(blocks)

	out = reassemble(blocks, req.Title)
	report.DurationMS = time.Since(start).Milliseconds()
	return out, report
}

// emptyReport finalizes a run that found nothing worth keeping. The caller
// gets the original input back and the downstream extractor decides alone.
func (o *Optimizer) emptyReport(report models.Report, start time.Time) models.Report {
	report.Optimization = models.OptimizationNoBlocks
	report.DurationMS = time.Since(start).Milliseconds()
	return report
}

func (o *Optimizer) failureReport(req Request, msg string, start time.Time) models.Report {
	return models.Report{
		Optimization: models.OptimizationFailed,
		Error:        msg,
		URL:          req.URL,
		Config:       o.cfg.effective(),
		DurationMS:   time.Since(start).Milliseconds(),
	}
}

func summarizeTop(blocks []*Block, n int) []models.BlockSummary {
	if len(blocks) < n {
		n = len(blocks)
	}
	out := make([]models.BlockSummary, 0, n)
	for _, b := range blocks[:n] {
		out = append(out, models.BlockSummary{
			Section:  b.SectionIndex,
			Tag:      b.Tag,
			Score:    b.TotalScore,
			Coverage: b.TFIDFScore,
			Text:     previewText(b.Text),
		})
	}
	return out
}

func previewText(s string) string {
	r := []rune(s)
	if len(r) <= summaryPreviewRunes {
		return s
	}
	return string(r[:summaryPreviewRunes]) + "..."
}
