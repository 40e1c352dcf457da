package analytics

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Analytics computes word-level statistics over optimized text for run and
// batch summaries.
type Analytics struct{}

// commonWords are skipped during frequency analysis: English function words
// plus the web-chrome vocabulary that survives extraction often enough to
// pollute keyword lists.
var commonWords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "also": {}, "among": {}, "and": {}, "another": {}, "any": {},
	"are": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"below": {}, "between": {}, "both": {}, "but": {}, "can": {},
	"cannot": {}, "could": {}, "did": {}, "does": {}, "doing": {},
	"down": {}, "during": {}, "each": {}, "either": {}, "else": {},
	"enough": {}, "etc": {}, "even": {}, "ever": {}, "every": {},
	"few": {}, "for": {}, "from": {}, "further": {}, "had": {},
	"has": {}, "have": {}, "having": {}, "her": {}, "here": {},
	"hers": {}, "him": {}, "his": {}, "how": {}, "however": {},
	"into": {}, "its": {}, "itself": {}, "just": {}, "like": {},
	"likely": {}, "made": {}, "make": {}, "many": {}, "may": {},
	"maybe": {}, "might": {}, "more": {}, "most": {}, "much": {},
	"must": {}, "never": {}, "next": {}, "nor": {}, "not": {},
	"now": {}, "off": {}, "often": {}, "once": {}, "one": {},
	"only": {}, "onto": {}, "other": {}, "others": {}, "our": {},
	"ours": {}, "out": {}, "over": {}, "own": {}, "per": {},
	"rather": {}, "same": {}, "several": {}, "she": {}, "should": {},
	"since": {}, "some": {}, "still": {}, "such": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "theirs": {}, "them": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"those": {}, "through": {}, "thus": {}, "together": {}, "too": {},
	"toward": {}, "under": {}, "until": {}, "upon": {}, "use": {},
	"used": {}, "very": {}, "via": {}, "was": {}, "well": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "whether": {},
	"which": {}, "while": {}, "who": {}, "whose": {}, "why": {},
	"will": {}, "with": {}, "within": {}, "without": {}, "would": {},
	"yet": {}, "you": {}, "your": {}, "yours": {},

	// Common web/UI noise words
	"click": {}, "link": {}, "links": {}, "menu": {}, "button": {},
	"page": {}, "pages": {}, "site": {}, "website": {}, "home": {},
	"homepage": {}, "search": {}, "loading": {}, "share": {},
	"subscribe": {}, "newsletter": {}, "cookie": {}, "cookies": {},
}

// cjkFunctionRunes break CJK runs during tokenization and are never counted
// themselves.
var cjkFunctionRunes = map[rune]struct{}{
	'的': {}, '了': {}, '和': {}, '是': {}, '在': {}, '有': {}, '这': {},
	'那': {}, '个': {}, '与': {}, '及': {}, '或': {}, '等': {}, '并': {},
	'而': {}, '将': {}, '被': {}, '到': {}, '上': {}, '中': {}, '下': {},
}

// IsStopword checks if a word would be ignored by frequency analysis.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

// WordFrequency tokenizes mixed-script text and counts content words.
// Latin-script tokens are lowercased; CJK text contributes runs delimited
// by punctuation and function characters, which is coarse but stable
// enough for summary keywords.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range tokenize(text) {
		if _, exists := commonWords[word]; exists {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

// tokenize splits text into counting units. Single-rune tokens carry no
// keyword value in either script and are dropped.
func tokenize(text string) []string {
	var out []string
	var latin, cjk strings.Builder

	flush := func(b *strings.Builder) {
		if b.Len() == 0 {
			return
		}
		if w := b.String(); utf8.RuneCountInString(w) > 1 {
			out = append(out, w)
		}
		b.Reset()
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 0x4E00 && r <= 0x9FFF:
			flush(&latin)
			if _, fn := cjkFunctionRunes[r]; fn {
				flush(&cjk)
				continue
			}
			cjk.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flush(&cjk)
			latin.WriteRune(r)
		default:
			flush(&latin)
			flush(&cjk)
		}
	}
	flush(&latin)
	flush(&cjk)
	return out
}

type wordCount struct {
	Word  string
	Count int
}

// TopNWords returns the n most frequent content words, most frequent first.
// Ties break alphabetically so summaries stay deterministic.
func (a *Analytics) TopNWords(text string, n int) []string {
	frequencies := a.WordFrequency(text)

	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}

	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = counts[i].Word
	}

	return topN
}
