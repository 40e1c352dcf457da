package mapreduce

import (
	"fmt"
	"sort"
)

type kv struct {
	Key   string
	Value int
}

// rank sorts aggregated counts by frequency, then alphabetically so batch
// summaries stay stable across runs.
func rank(wordCounts map[string]int) []kv {
	ss := make([]kv, 0, len(wordCounts))
	for k, v := range wordCounts {
		ss = append(ss, kv{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	return ss
}

// TopKeywords returns the top N keywords from aggregated word counts as
// formatted strings. Each string is formatted as "word:count"
// (e.g., "scheduler:1153").
func TopKeywords(wordCounts map[string]int, n int) []string {
	ss := rank(wordCounts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}

	return keywords
}

// PrintTopKeywords prints the top N keywords in a numbered list format.
func PrintTopKeywords(wordCounts map[string]int, n int) {
	ss := rank(wordCounts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	for i := 0; i < limit; i++ {
		fmt.Printf("%d. %s: %d\n", i+1, ss[i].Key, ss[i].Value)
	}
}
