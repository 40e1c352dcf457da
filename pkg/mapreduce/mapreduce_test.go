package mapreduce

import (
	"reflect"
	"testing"

	"github.com/dtnitsch/llm-content-optimizer/pkg/analytics"
)

func TestMapReduce(t *testing.T) {
	a := &analytics.Analytics{}

	intermediate := []map[string]int{
		Map("goroutines communicate over channels", a),
		Map("channels synchronize goroutines", a),
	}

	got := Reduce(intermediate)

	if got["goroutines"] != 2 {
		t.Errorf("goroutines count = %d, want 2", got["goroutines"])
	}
	if got["channels"] != 2 {
		t.Errorf("channels count = %d, want 2", got["channels"])
	}
	if got["communicate"] != 1 {
		t.Errorf("communicate count = %d, want 1", got["communicate"])
	}
}

func TestTopKeywords(t *testing.T) {
	counts := map[string]int{
		"scheduler": 12,
		"goroutine": 9,
		"channel":   9,
		"mutex":     2,
	}

	got := TopKeywords(counts, 3)
	want := []string{"scheduler:12", "channel:9", "goroutine:9"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords = %v, want %v", got, want)
	}

	if got := TopKeywords(counts, 100); len(got) != 4 {
		t.Errorf("TopKeywords with large n returned %d entries, want 4", len(got))
	}
	if got := TopKeywords(counts, -1); len(got) != 0 {
		t.Errorf("TopKeywords with negative n returned %d entries, want 0", len(got))
	}
}
