package optimizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Cleaning length window in runes. Blocks shorter than the minimum are
// dropped; blocks longer than the maximum are split at sentence boundaries
// and only fragments inside the window survive.
const (
	minFragmentRunes = 25
	maxFragmentRunes = 400
)

// citationPattern matches footnote-style bracket markers: "[12]", "[3-5]".
var citationPattern = regexp.MustCompile(`\[\d+(?:\s*[-–]\s*\d+)?\]`)

// cleanBlocks normalizes block text and enforces the length window. The
// output count can differ from the input in both directions, so section
// sizes are recomputed at the end. Must run before anything reads
// SectionSize.
func cleanBlocks(blocks []*Block) []*Block {
	cleaned := make([]*Block, 0, len(blocks))

	for _, b := range blocks {
		text := citationPattern.ReplaceAllString(b.Text, " ")
		text = collapseWhitespace(text)

		n := utf8.RuneCountInString(text)
		if n < minFragmentRunes {
			continue
		}
		if n <= maxFragmentRunes {
			b.Text = text
			cleaned = append(cleaned, b)
			continue
		}

		// Oversized block: keep in-window sentence fragments, each
		// inheriting the parent's structural metadata.
		for _, frag := range splitSentences(text) {
			fn := utf8.RuneCountInString(frag)
			if fn < minFragmentRunes || fn > maxFragmentRunes {
				continue
			}
			nb := *b
			nb.Text = frag
			cleaned = append(cleaned, &nb)
		}
	}

	// Renumber reading order: splits and drops shifted positions, and the
	// scorer's position prior indexes the cleaned list.
	for i, b := range cleaned {
		b.docOrder = i
	}
	recomputeSectionSizes(cleaned)
	return cleaned
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitSentences cuts text after sentence-terminal punctuation, ASCII and
// CJK alike. The terminator stays with its sentence.
func splitSentences(text string) []string {
	var out []string
	var sb strings.Builder

	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			out = append(out, s)
		}
		sb.Reset()
	}

	for _, r := range text {
		sb.WriteRune(r)
		switch r {
		case '.', '!', '?', '。', '！', '？', '…':
			flush()
		}
	}
	flush()
	return out
}
