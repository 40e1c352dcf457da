package optimizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segmenter is the injected CJK word-segmentation capability. An error (or a
// panic, or empty output) never surfaces to the caller; the pretokenizer
// degrades to the character-bigram fallback instead.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// pretokenize turns block text into the whitespace-delimited term string the
// vectorizer consumes. Pure function: no state across calls.
func pretokenize(text string, seg Segmenter, useSegmenter bool) string {
	var tokens []string
	if containsCJK(text) {
		// Mixed-script text carries Latin spans too, so filter against
		// both stop-word sets.
		kept := make([]string, 0, 16)
		for _, t := range tokenizeCJK(text, seg, useSegmenter) {
			if isCJKStopword(t) || isLatinStopword(t) {
				continue
			}
			kept = append(kept, t)
		}
		tokens = kept
	} else {
		kept := make([]string, 0, 16)
		for _, t := range tokenizeLatin(text) {
			if isLatinStopword(t) {
				continue
			}
			kept = append(kept, t)
		}
		tokens = kept
	}
	return strings.Join(tokens, " ")
}

// containsCJK reports whether any rune falls in the CJK Unified Ideographs
// range.
func containsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}

// tokenizeLatin lowercases, maps punctuation to whitespace, splits, and
// drops single-rune tokens.
func tokenizeLatin(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}

// tokenizeCJK prefers the segmenter capability and falls back to character
// bigrams when it is disabled, absent, failing, or empty-handed.
func tokenizeCJK(text string, seg Segmenter, useSegmenter bool) []string {
	if useSegmenter && seg != nil {
		if toks, err := segmentSafe(seg, text); err == nil {
			out := make([]string, 0, len(toks))
			for _, t := range toks {
				t = strings.ToLower(strings.TrimSpace(t))
				if t == "" {
					continue
				}
				out = append(out, t)
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return cjkFallbackTokens(text)
}

// segmentSafe guards the capability call so a panicking segmenter degrades
// like an erroring one.
func segmentSafe(seg Segmenter, text string) (toks []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("segmenter panic: %v", r)
		}
	}()
	return seg.Segment(text)
}

// cjkFallbackTokens emits every character of a CJK run plus every adjacent
// character pair. Non-CJK spans inside mixed text go through the Latin
// tokenizer.
func cjkFallbackTokens(text string) []string {
	var out []string
	var run []rune
	var latin strings.Builder

	flushRun := func() {
		for i := range run {
			out = append(out, string(run[i]))
			if i+1 < len(run) {
				out = append(out, string(run[i])+string(run[i+1]))
			}
		}
		run = run[:0]
	}
	flushLatin := func() {
		if latin.Len() > 0 {
			out = append(out, tokenizeLatin(latin.String())...)
			latin.Reset()
		}
	}

	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			flushLatin()
			run = append(run, r)
		} else {
			flushRun()
			latin.WriteRune(r)
		}
	}
	flushRun()
	flushLatin()
	return out
}
