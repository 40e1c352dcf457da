package optimizer

import (
	"sort"
	"strings"
)

// Scoring modes recorded in the run report.
const (
	scoreModeCoverage   = "coverage"
	scoreModeQuery      = "query"
	scoreModeStructural = "structural"
)

// Composite weights. Coverage dominates; the structural priors keep obvious
// chrome down even when it happens to resemble the page centroid.
const (
	weightCoverage = 0.5
	weightTag      = 0.2
	weightClass    = 0.15
	weightID       = 0.05
	weightPosition = 0.1
)

// scoreBlocks computes TotalScore for every block and sorts the slice by it,
// descending, document order on ties. The returned map carries each block's
// TF-IDF vector for the diversity stage (nil after a structural fallback),
// alongside the scoring mode used.
func scoreBlocks(blocks []*Block, query string, seg Segmenter, cfg Config) (map[*Block]termVec, string) {
	n := len(blocks)
	for i, b := range blocks {
		b.PositionWeight = positionWeight(i, n)
	}

	docs := make([]string, n)
	for i, b := range blocks {
		docs[i] = pretokenize(b.Text, seg, cfg.EnableCJKSegmentation)
	}

	v, err := newVectorizer(docs, cfg)
	if err != nil {
		// Vectorization failure is recovered locally: rank on structure
		// alone and let the caller see the mode in the report.
		for _, b := range blocks {
			b.TFIDFScore = 0
			b.TotalScore = 0.4*b.TagWeight + 0.3*b.ClassScore +
				0.2*b.IDScore + 0.1*(1-b.LinkDensity())
		}
		sortByScore(blocks)
		return nil, scoreModeStructural
	}

	raw := make([]termVec, n)
	vecs := make(map[*Block]termVec, n)
	for i, b := range blocks {
		raw[i] = v.transform(docs[i])
		vecs[b] = raw[i]
	}

	// Coverage target: the query vector when a query was supplied, else the
	// corpus centroid, which rewards blocks representative of the whole
	// document rather than blocks merely similar to a title.
	var target termVec
	mode := scoreModeCoverage
	if strings.TrimSpace(query) != "" {
		target = v.transform(pretokenize(query, seg, cfg.EnableCJKSegmentation))
		mode = scoreModeQuery
	} else {
		target = centroidOf(raw)
	}

	for i, b := range blocks {
		b.TFIDFScore = cosine(raw[i], target)
		b.TotalScore = weightCoverage*b.TFIDFScore + weightTag*b.TagWeight +
			weightClass*b.ClassScore + weightID*b.IDScore +
			weightPosition*b.PositionWeight
	}
	sortByScore(blocks)
	return vecs, mode
}

// positionWeight models the convention that ledes and introductions matter
// most: strictly higher for earlier blocks, 0.5 for a lone block.
func positionWeight(index, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return 0.1 + 0.1*(1-float64(index)/float64(n-1))
}

func sortByScore(blocks []*Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].TotalScore > blocks[j].TotalScore
	})
}
