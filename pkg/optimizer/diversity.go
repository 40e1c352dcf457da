package optimizer

import "math"

// Diversity selection bounds. The candidate cap keeps the pairwise
// similarity work O(200²) regardless of document size.
const (
	diversityMinBlocks  = 10
	diversityCandidates = 200
	diversityCap        = 50
	mmrLambda           = 0.7
	duplicateSimilarity = 0.95
)

// selectDiverse greedily picks a bounded, non-redundant subset of the
// retained blocks, which must arrive sorted by TotalScore descending. Each
// step selects the candidate maximizing TotalScore - λ·maxSim, where maxSim
// is the candidate's highest similarity to anything already selected.
// Candidates that are near-duplicates of a selected block are dropped
// outright, so a page repeating one promotional sentence twenty times
// contributes it once. Sets of ≤10 blocks pass through unchanged.
func selectDiverse(blocks []*Block, vecs map[*Block]termVec) []*Block {
	if len(blocks) <= diversityMinBlocks {
		return blocks
	}
	candidates := blocks
	if len(candidates) > diversityCandidates {
		candidates = candidates[:diversityCandidates]
	}

	selected := make([]*Block, 0, diversityCap)
	selected = append(selected, candidates[0])
	newest := candidates[0]
	remaining := append([]*Block(nil), candidates[1:]...)
	maxSim := make(map[*Block]float64, len(remaining))

	for len(selected) < diversityCap && len(remaining) > 0 {
		next := make([]*Block, 0, len(remaining))
		bestIdx := -1
		bestMMR := math.Inf(-1)
		for _, c := range remaining {
			if s := similarity(c, newest, vecs); s > maxSim[c] {
				maxSim[c] = s
			}
			if maxSim[c] >= duplicateSimilarity {
				continue
			}
			next = append(next, c)
			if mmr := c.TotalScore - mmrLambda*maxSim[c]; mmr > bestMMR {
				bestMMR = mmr
				bestIdx = len(next) - 1
			}
		}
		if bestIdx < 0 {
			break
		}
		newest = next[bestIdx]
		selected = append(selected, newest)
		remaining = append(next[:bestIdx], next[bestIdx+1:]...)
	}
	return selected
}

// similarity is cosine over the blocks' TF-IDF vectors. A structural
// fallback run has no vectors, so cleaned-text equality stands in: exact
// duplicates still read as fully redundant.
func similarity(a, b *Block, vecs map[*Block]termVec) float64 {
	if len(vecs) == 0 {
		if a.Text == b.Text {
			return 1
		}
		return 0
	}
	return cosine(vecs[a], vecs[b])
}
