package mapreduce

import "github.com/dtnitsch/llm-content-optimizer/pkg/analytics"

// Map generates a word frequency map for a single page's optimized text.
func Map(content string, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(content)
}

// Reduce aggregates per-page frequency maps into a single batch-wide map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
