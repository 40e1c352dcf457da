// Package segmenter provides the Chinese word-segmentation capability
// consumed by the optimizer's pretokenizer.
package segmenter

import (
	"fmt"
	"strings"

	"github.com/go-ego/gse"
)

// Segmenter wraps a gse dictionary segmenter. Loading the dictionary is the
// expensive part, so construct once and share; Segment only reads the
// dictionary and is safe for concurrent use.
type Segmenter struct {
	seg gse.Segmenter
}

// New loads the embedded default dictionary.
func New() (*Segmenter, error) {
	var s Segmenter
	if err := s.seg.LoadDict(); err != nil {
		return nil, fmt.Errorf("loading segmentation dictionary: %w", err)
	}
	return &s, nil
}

// Segment cuts text into words, using the dictionary plus the HMM model for
// words the dictionary does not know.
func (s *Segmenter) Segment(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return s.seg.Cut(text, true), nil
}
