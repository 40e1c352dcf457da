package optimizer

import (
	"strings"
	"testing"

	"github.com/dtnitsch/llm-content-optimizer/models"
)

func TestOptimizeDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	o := New(cfg, nil)

	in := "<html><body><p>anything at all, even malformed</p>"
	out, report := o.Optimize(in, Request{URL: "https://example.com/a"})

	if out != in {
		t.Errorf("disabled run changed the input")
	}
	if report.Optimization != models.OptimizationDisabled {
		t.Errorf("Optimization = %q, want %q", report.Optimization, models.OptimizationDisabled)
	}
	if report.URL != "https://example.com/a" {
		t.Errorf("report.URL = %q", report.URL)
	}
}

func TestOptimizeNoContentBlocks(t *testing.T) {
	o := New(DefaultConfig(), nil)
	in := "<html><body><p>Sixty characters of text is not enough here.</p></body></html>"

	out, report := o.Optimize(in, Request{})
	if out != in {
		t.Errorf("no-block run must return the input unchanged")
	}
	if report.Optimization != models.OptimizationNoBlocks {
		t.Errorf("Optimization = %q, want %q", report.Optimization, models.OptimizationNoBlocks)
	}
	if report.Stages.Candidates != 0 {
		t.Errorf("Candidates = %d, want 0", report.Stages.Candidates)
	}
}

func TestOptimizeNeverPanics(t *testing.T) {
	o := New(DefaultConfig(), nil)
	inputs := []string{
		"",
		"<",
		"<html",
		"<div><div><div>",
		"plain text with no markup at all",
		strings.Repeat("<div>", 500),
		"\x00\x01\x02 garbage bytes",
	}
	for _, in := range inputs {
		out, report := o.Optimize(in, Request{})
		if report.Optimization == "" {
			t.Errorf("empty outcome for input %q", in)
		}
		if report.Optimization != models.OptimizationApplied && out != in {
			t.Errorf("degraded run for %q did not return the input unchanged", in)
		}
	}
}

func TestOptimizeThreeSectionScenario(t *testing.T) {
	in := `<html><body>
<p>This article introduces the Go runtime scheduler and explains how goroutines are multiplexed onto a small set of operating system threads.</p>
<h2>Scheduling</h2>
<p>The scheduler assigns runnable goroutines to logical processors, and each processor drains its own local run queue before stealing work from peers.</p>
<p>When a goroutine blocks in a system call, the scheduler hands its processor to another waiting goroutine so the machine stays busy throughout.</p>
<div class="ad">Click here to claim the amazing discount offer waiting for loyal readers of this site.</div>
</body></html>`

	o := New(DefaultConfig(), nil)
	out, report := o.Optimize(in, Request{})

	if report.Optimization != models.OptimizationApplied {
		t.Fatalf("Optimization = %q, want %q (error: %s)",
			report.Optimization, models.OptimizationApplied, report.Error)
	}
	if report.ScoringMode != scoreModeCoverage {
		t.Errorf("ScoringMode = %q, want %q", report.ScoringMode, scoreModeCoverage)
	}
	for _, wantText := range []string{
		"introduces the Go runtime scheduler",
		"drains its own local run queue",
		"hands its processor to another",
	} {
		if !strings.Contains(out, wantText) {
			t.Errorf("output lost content %q", wantText)
		}
	}
	if strings.Contains(out, "Click here") {
		t.Errorf("promotional block survived: %q", out)
	}
	if report.Rejections.Boilerplate != 1 {
		t.Errorf("Boilerplate rejections = %d, want 1", report.Rejections.Boilerplate)
	}
	want := models.StageCounts{Candidates: 4, Cleaned: 4, QualityPassed: 3, Retained: 3, Selected: 3}
	if report.Stages != want {
		t.Errorf("Stages = %+v, want %+v", report.Stages, want)
	}
}

func TestOptimizeCollapsesIdenticalBlocks(t *testing.T) {
	para := "<p>The very same promotional sentence repeated over and over across the whole page body without variation.</p>\n"
	in := "<html><body>\n" + strings.Repeat(para, 20) + "</body></html>"

	o := New(DefaultConfig(), nil)
	out, report := o.Optimize(in, Request{})

	if report.Optimization != models.OptimizationApplied {
		t.Fatalf("Optimization = %q (error: %s)", report.Optimization, report.Error)
	}
	// Identical documents defeat the df bounds, so scoring degrades to the
	// structural path and duplicate collapse rides on text equality.
	if report.ScoringMode != scoreModeStructural {
		t.Errorf("ScoringMode = %q, want %q", report.ScoringMode, scoreModeStructural)
	}
	if report.Stages.Retained != 20 {
		t.Errorf("Retained = %d, want all 20", report.Stages.Retained)
	}
	if report.Stages.Selected > 2 {
		t.Errorf("Selected = %d, want 1 or 2 after duplicate collapse", report.Stages.Selected)
	}
	if n := strings.Count(out, "very same promotional sentence"); n != report.Stages.Selected {
		t.Errorf("output repeats the sentence %d times, selected %d", n, report.Stages.Selected)
	}
}

func TestOptimizeQueryMode(t *testing.T) {
	in := `<html><body>
<p>The scheduler distributes runnable goroutines across logical processors with per-processor run queues and work stealing.</p>
<p>The scheduler parks goroutines that block on channel operations until a send or receive makes them runnable again.</p>
<p>The garbage collector scans heap memory concurrently with the mutator to keep pause times consistently short.</p>
<p>The garbage collector uses a pacing algorithm to bound heap memory growth between consecutive collection cycles.</p>
</body></html>`

	o := New(DefaultConfig(), nil)
	_, report := o.Optimize(in, Request{Query: "garbage collector"})

	if report.ScoringMode != scoreModeQuery {
		t.Errorf("ScoringMode = %q, want %q", report.ScoringMode, scoreModeQuery)
	}
	if len(report.TopBlocks) == 0 {
		t.Fatal("report carries no block summaries")
	}
	if !strings.Contains(report.TopBlocks[0].Text, "garbage collector") {
		t.Errorf("top block %q does not match the query", report.TopBlocks[0].Text)
	}
}

func TestOptimizeTitleActsAsQuery(t *testing.T) {
	in := `<html><body>
<p>The scheduler distributes runnable goroutines across logical processors with per-processor run queues and work stealing.</p>
<p>The garbage collector scans heap memory concurrently with the mutator to keep pause times consistently short.</p>
<p>The garbage collector uses a pacing algorithm to bound heap memory growth between consecutive collection cycles.</p>
</body></html>`

	o := New(DefaultConfig(), nil)
	_, report := o.Optimize(in, Request{Title: "garbage collector pacing"})

	if report.ScoringMode != scoreModeQuery {
		t.Errorf("ScoringMode = %q, want %q", report.ScoringMode, scoreModeQuery)
	}
}

func TestOptimizeExcludesLinkFarms(t *testing.T) {
	in := `<html><body>
<p>Channels provide a means for goroutines to communicate by passing values instead of sharing memory between themselves.</p>
<div><a href="/1">A long list of navigation destinations rendered entirely as links,</a> <a href="/2">every single word of this block is clickable text pointing elsewhere.</a></div>
</body></html>`

	o := New(DefaultConfig(), nil)
	out, report := o.Optimize(in, Request{})

	if report.Optimization != models.OptimizationApplied {
		t.Fatalf("Optimization = %q (error: %s)", report.Optimization, report.Error)
	}
	if report.Rejections.LinkHeavy != 1 {
		t.Errorf("LinkHeavy rejections = %d, want 1", report.Rejections.LinkHeavy)
	}
	if strings.Contains(out, "navigation destinations") {
		t.Errorf("link farm survived into output: %q", out)
	}
}
