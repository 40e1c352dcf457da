package optimizer

import (
	"math"
	"sort"
)

// retainBlocks decides which scored blocks survive into reassembly. Input
// must already be sorted by TotalScore descending. Retention is the union of
// the top-K blocks and every block at or above the percentile threshold, so
// short pages keep almost everything while long pages converge toward the
// configured content ratio. A per-section minimum then guards against whole
// sections vanishing just because their prose scored mid-pack.
func retainBlocks(blocks []*Block, cfg Config) ([]*Block, float64) {
	n := len(blocks)
	if n == 0 {
		return nil, 0
	}

	asc := make([]float64, n)
	for i, b := range blocks {
		asc[i] = b.TotalScore
	}
	sort.Float64s(asc)
	threshold := percentile(asc, cfg.PercentileThreshold)
	if threshold < cfg.ScoreFloor {
		threshold = cfg.ScoreFloor
	}

	k := int(math.Ceil(cfg.ContentRatio * float64(n)))
	if k < cfg.MinKeepK {
		k = cfg.MinKeepK
	}

	retained := make(map[*Block]bool, n)
	for i, b := range blocks {
		if i < k || b.TotalScore >= threshold {
			retained[b] = true
		}
	}

	// Section guarantee. Grouping preserves the descending-score order, so a
	// top-up always promotes the section's best rejected block first.
	bySection := make(map[int][]*Block)
	for _, b := range blocks {
		bySection[b.SectionIndex] = append(bySection[b.SectionIndex], b)
	}
	for _, sec := range bySection {
		need := sectionGuarantee(len(sec))
		for _, b := range sec {
			if retained[b] {
				need--
			}
		}
		for _, b := range sec {
			if need <= 0 {
				break
			}
			if !retained[b] {
				retained[b] = true
				need--
			}
		}
	}

	kept := make([]*Block, 0, len(retained))
	for _, b := range blocks {
		if retained[b] {
			kept = append(kept, b)
		}
	}
	return kept, threshold
}

// sectionGuarantee returns the minimum retained blocks for a section of m
// blocks. Small sections are often a heading plus one paragraph; losing that
// paragraph orphans the heading.
func sectionGuarantee(m int) int {
	switch {
	case m <= 3:
		return 1
	case m <= 10:
		return 2
	default:
		return 3
	}
}

// percentile interpolates linearly between closest ranks over an ascending
// sorted slice. p is a fraction in [0, 1].
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
