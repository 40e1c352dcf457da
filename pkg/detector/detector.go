// Package detector identifies the language and script of extracted text, so
// batch summaries can group pages and the CJK segmentation setting can be
// checked against what a site actually serves.
package detector

import (
	"strings"
	"unicode"

	"github.com/pemistahl/lingua-go"
)

// LanguageInfo describes the dominant language of one page's text.
type LanguageInfo struct {
	Language   string  `json:"language" yaml:"language"`     // ISO 639-1, lowercase: en, zh, ja
	Name       string  `json:"name" yaml:"name"`             // English, Chinese, Japanese
	Script     string  `json:"script" yaml:"script"`         // latin, cjk, mixed
	CJKRatio   float64 `json:"cjk_ratio" yaml:"cjk_ratio"`   // fraction of letters in the CJK unified range
	Confidence float64 `json:"confidence" yaml:"confidence"` // 0-1 model confidence, 0 when undetected
}

// minSampleRunes keeps the statistical model from deciding on a handful of
// runes.
const minSampleRunes = 20

// Detector wraps the statistical language model. Construction loads n-gram
// tables, so build one and share it; Analyze is safe for concurrent use.
type Detector struct {
	model lingua.LanguageDetector
}

// New builds a detector over the languages the corpus realistically
// contains.
func New() *Detector {
	return &Detector{
		model: lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English, lingua.Chinese, lingua.Japanese, lingua.Korean,
				lingua.German, lingua.French, lingua.Spanish, lingua.Portuguese,
				lingua.Italian, lingua.Dutch, lingua.Russian,
			).
			Build(),
	}
}

// Analyze reports the dominant language and script of text. Text below the
// sample floor keeps language "unknown" with zero confidence; the script
// fields are always populated since they need no model.
func (d *Detector) Analyze(text string) LanguageInfo {
	info := LanguageInfo{Language: "unknown", Name: "Unknown"}
	info.CJKRatio = cjkRatio(text)
	info.Script = scriptOf(info.CJKRatio)

	sample := strings.TrimSpace(text)
	if len([]rune(sample)) < minSampleRunes {
		return info
	}

	lang, ok := d.model.DetectLanguageOf(sample)
	if !ok {
		return info
	}
	info.Language = strings.ToLower(lang.IsoCode639_1().String())
	info.Name = lang.String()
	info.Confidence = d.model.ComputeLanguageConfidence(sample, lang)
	return info
}

// cjkRatio is the fraction of letter runes inside the CJK Unified
// Ideographs range.
func cjkRatio(text string) float64 {
	var letters, cjk int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r >= 0x4E00 && r <= 0x9FFF {
			cjk++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(cjk) / float64(letters)
}

func scriptOf(ratio float64) string {
	switch {
	case ratio >= 0.5:
		return "cjk"
	case ratio > 0.05:
		return "mixed"
	default:
		return "latin"
	}
}
