package optimizer

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// errEmptyVocabulary marks a vectorization failure: every term fell outside
// the document-frequency bounds (or the corpus had no terms at all). The
// scorer recovers with the structural fallback; this never reaches the
// caller.
var errEmptyVocabulary = errors.New("empty vocabulary")

// termVec is a sparse TF-IDF vector keyed by feature index.
type termVec map[int]float64

// vectorizer is a term-frequency/inverse-document-frequency vector space
// over 1-gram and 2-gram terms, with sublinear TF scaling and L2-normalized
// output. Built fresh per Optimize call and discarded afterward.
type vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// newVectorizer fits the vocabulary over the pretokenized documents.
// Document-frequency bounds adapt when the corpus is small: below 3
// documents the floor drops to 1 and the ceiling rises to 1.0, otherwise a
// two-block page could produce no vocabulary at all.
func newVectorizer(docs []string, cfg Config) (*vectorizer, error) {
	n := len(docs)
	if n == 0 {
		return nil, errEmptyVocabulary
	}

	minDF := cfg.MinDF
	maxDF := cfg.MaxDF
	if n < 3 {
		minDF = 1
		maxDF = 1.0
	}

	df := make(map[string]int)
	total := make(map[string]int)
	for _, doc := range docs {
		terms := ngramTerms(doc)
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			total[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	maxCount := maxDF * float64(n)
	kept := make([]string, 0, len(df))
	for t, d := range df {
		if d < minDF || float64(d) > maxCount {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return nil, errEmptyVocabulary
	}

	// Vocabulary cap: keep the most frequent terms, corpus-wide, with a
	// lexicographic tie-break for determinism.
	if len(kept) > cfg.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if total[kept[i]] != total[kept[j]] {
				return total[kept[i]] > total[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:cfg.MaxFeatures]
	}
	sort.Strings(kept)

	v := &vectorizer{
		vocab: make(map[string]int, len(kept)),
		idf:   make([]float64, len(kept)),
	}
	for i, t := range kept {
		v.vocab[t] = i
		// Smoothed IDF: every term behaves as if seen in one extra
		// document, so no weight is ever zero or infinite.
		v.idf[i] = math.Log(float64(1+n)/float64(1+df[t])) + 1
	}
	return v, nil
}

// transform maps one pretokenized document into the fitted space. Terms
// outside the vocabulary are ignored. The result is L2-normalized; an empty
// vector stays empty.
func (v *vectorizer) transform(doc string) termVec {
	counts := make(map[int]int)
	for _, t := range ngramTerms(doc) {
		if idx, ok := v.vocab[t]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return termVec{}
	}

	vec := make(termVec, len(counts))
	var sumSq float64
	for idx, c := range counts {
		w := (1 + math.Log(float64(c))) * v.idf[idx]
		vec[idx] = w
		sumSq += w * w
	}
	norm := math.Sqrt(sumSq)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// ngramTerms emits unigrams and bigrams over the whitespace-delimited
// pretokenized text.
func ngramTerms(doc string) []string {
	tokens := strings.Fields(doc)
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

func (a termVec) norm() float64 {
	var sumSq float64
	for _, w := range a {
		sumSq += w * w
	}
	return math.Sqrt(sumSq)
}

// cosine returns the cosine similarity of two sparse vectors.
func cosine(a, b termVec) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, w := range a {
		if bw, ok := b[idx]; ok {
			dot += w * bw
		}
	}
	if dot == 0 {
		return 0
	}
	na, nb := a.norm(), b.norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

// centroidOf is the mean of the given vectors. Not normalized; cosine
// handles magnitudes.
func centroidOf(vecs []termVec) termVec {
	c := make(termVec)
	if len(vecs) == 0 {
		return c
	}
	for _, v := range vecs {
		for idx, w := range v {
			c[idx] += w
		}
	}
	inv := 1 / float64(len(vecs))
	for idx := range c {
		c[idx] *= inv
	}
	return c
}
