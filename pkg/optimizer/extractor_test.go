package optimizer

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

const articleMarkup = `<!DOCTYPE html>
<html><head><title>Go Memory Model</title></head>
<body>
<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
<script>console.log("tracking")</script>
<article class="post-content">
<h2>Introduction</h2>
<p>The Go memory model specifies the conditions under which reads of a variable in one goroutine can be guaranteed to observe values produced by writes to the same variable in a different goroutine.</p>
<h2>Advice</h2>
<p>Programs that modify data being simultaneously accessed by multiple goroutines must serialize such access, using channel operations or other synchronization primitives in the sync package.</p>
<div class="ad-banner">Buy now and subscribe to our newsletter for exclusive offers today.</div>
</article>
<footer>All rights reserved.</footer>
</body></html>`

func TestExtractBlocksRemovesNoise(t *testing.T) {
	doc := parseDoc(t, articleMarkup)
	blocks := extractBlocks(doc, 80)

	if len(blocks) != 2 {
		t.Fatalf("extractBlocks() returned %d blocks, want 2", len(blocks))
	}
	for _, b := range blocks {
		if b.Tag != "p" {
			t.Errorf("block tag = %q, want p", b.Tag)
		}
		for _, noise := range []string{"Home", "tracking", "All rights reserved"} {
			if strings.Contains(b.Text, noise) {
				t.Errorf("block text contains noise %q: %q", noise, b.Text)
			}
		}
	}
}

func TestExtractBlocksSectionAssignment(t *testing.T) {
	doc := parseDoc(t, articleMarkup)
	blocks := extractBlocks(doc, 80)

	if len(blocks) != 2 {
		t.Fatalf("extractBlocks() returned %d blocks, want 2", len(blocks))
	}
	// article opens section 1, each h2 opens the next one.
	if blocks[0].SectionIndex != 2 || blocks[1].SectionIndex != 3 {
		t.Errorf("section indexes = %d, %d, want 2, 3",
			blocks[0].SectionIndex, blocks[1].SectionIndex)
	}
	if blocks[0].SectionSize != 1 {
		t.Errorf("SectionSize = %d, want 1", blocks[0].SectionSize)
	}
}

func TestExtractBlocksLengthFloor(t *testing.T) {
	doc := parseDoc(t, articleMarkup)
	blocks := extractBlocks(doc, 10)

	var sawAd bool
	for _, b := range blocks {
		if strings.Contains(b.Text, "Buy now") {
			sawAd = true
			if b.ClassScore != 0 {
				t.Errorf("ad-banner ClassScore = %v, want 0", b.ClassScore)
			}
		}
	}
	if !sawAd {
		t.Error("lowering the floor should admit the short ad div")
	}
}

func TestExtractBlocksSingleSectionWithoutHeadings(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<p>First paragraph of a flat document without any heading elements at all, long enough to clear the floor.</p>
<p>Second paragraph of the same flat document, also comfortably longer than the configured extraction floor.</p>
</body></html>`)
	blocks := extractBlocks(doc, 80)

	if len(blocks) != 2 {
		t.Fatalf("extractBlocks() returned %d blocks, want 2", len(blocks))
	}
	for _, b := range blocks {
		if b.SectionIndex != 0 {
			t.Errorf("SectionIndex = %d, want 0 for heading-less document", b.SectionIndex)
		}
		if b.SectionSize != 2 {
			t.Errorf("SectionSize = %d, want 2", b.SectionSize)
		}
	}
}

func TestOwnTextSkipsCapturedDescendants(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div class="content">Lead-in text written directly inside the container element itself, before anything nested.
<p>Inner paragraph captured separately as its own block, so its text must not be double counted.</p>
</div>
</body></html>`)
	blocks := extractBlocks(doc, 40)

	if len(blocks) != 2 {
		t.Fatalf("extractBlocks() returned %d blocks, want 2", len(blocks))
	}
	var divText string
	for _, b := range blocks {
		if b.Tag == "div" {
			divText = b.Text
		}
	}
	if strings.Contains(divText, "Inner paragraph") {
		t.Errorf("container text duplicates nested block text: %q", divText)
	}
}

func TestOwnTextCountsAnchorRunes(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<p>Some surrounding words before <a href="/x">link text</a> and trailing words after the anchor close.</p>
</body></html>`)
	blocks := extractBlocks(doc, 40)

	if len(blocks) != 1 {
		t.Fatalf("extractBlocks() returned %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.anchorChars != len("link text") {
		t.Errorf("anchorChars = %d, want %d", b.anchorChars, len("link text"))
	}
	if d := b.LinkDensity(); d <= 0 || d >= 0.3 {
		t.Errorf("LinkDensity() = %v, want small positive fraction", d)
	}
}

func TestAttrScore(t *testing.T) {
	tests := []struct {
		name string
		attr string
		want float64
	}{
		{name: "empty is neutral", attr: "", want: 0.5},
		{name: "content keyword", attr: "article-content", want: 1.0},
		{name: "chrome keyword", attr: "sidebar", want: 0.0},
		{name: "short keyword at token start", attr: "ad-banner", want: 0.0},
		{name: "short keyword not inside words", attr: "readable", want: 0.5},
		{name: "mixed signals cancel", attr: "post-footer", want: 0.5},
		{name: "unknown words are neutral", attr: "col-md-8", want: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attrScore(tt.attr); got != tt.want {
				t.Errorf("attrScore(%q) = %v, want %v", tt.attr, got, tt.want)
			}
		})
	}
}
