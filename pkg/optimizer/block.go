package optimizer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Block is one structural text fragment under consideration for retention.
// Blocks are created by the extractor, mutated only by the cleaner, and move
// through the rest of the pipeline by value-semantics slices owned by a
// single Optimize call.
type Block struct {
	// Node points into the caller's parsed tree. Owned by the extractor,
	// never mutated, and must not outlive the document it came from.
	Node *html.Node

	// Text is the normalized visible text. Mutable during cleaning only.
	Text string

	// SectionIndex identifies the document section the block belongs to.
	// Assigned once at extraction and stable for the block's lifetime.
	SectionIndex int

	// SectionSize is the number of blocks sharing SectionIndex, recomputed
	// after cleaning since splits and drops change section membership.
	SectionSize int

	// docOrder is the block's position in document order, kept through
	// cleaning so split fragments stay sortable back into reading order.
	docOrder int

	// Structural features, fixed at extraction.
	Tag        string
	TagWeight  float64
	ClassScore float64
	IDScore    float64

	// anchorChars is the rune count of anchor text inside the element,
	// measured once at extraction and inherited by split fragments.
	anchorChars int

	// Score fields, populated by the scorer. TotalScore is undefined until
	// the scorer has run and must not be read before then.
	TFIDFScore     float64
	PositionWeight float64
	TotalScore     float64
}

// WordCount returns the whitespace-separated token count of the current text.
func (b *Block) WordCount() int {
	n := 0
	inWord := false
	for _, r := range b.Text {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			n++
		}
	}
	return n
}

// CharCount returns the rune length of the current text.
func (b *Block) CharCount() int {
	return utf8.RuneCountInString(b.Text)
}

// LinkDensity is the fraction of the current text attributable to anchor
// links. It is derived from the live text on every call so cleaning can
// never leave a stale cached value.
func (b *Block) LinkDensity() float64 {
	chars := b.CharCount()
	if chars == 0 {
		return 0
	}
	d := float64(b.anchorChars) / float64(chars)
	if d > 1 {
		d = 1
	}
	return d
}

// AlphanumericRatio is the fraction of non-space runes in the current text
// that are letters or digits. Recomputed from the live text on every call.
func (b *Block) AlphanumericRatio() float64 {
	var total, alnum int
	for _, r := range b.Text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(alnum) / float64(total)
}

// recomputeSectionSizes rewrites SectionSize on every block from the current
// membership counts.
func recomputeSectionSizes(blocks []*Block) {
	counts := make(map[int]int, 8)
	for _, b := range blocks {
		counts[b.SectionIndex]++
	}
	for _, b := range blocks {
		b.SectionSize = counts[b.SectionIndex]
	}
}
