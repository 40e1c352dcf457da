package segmenter

import "testing"

func TestSegment(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tokens, err := s.Segment("我们在学习并发编程")
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(tokens) == 0 {
		t.Fatal("Segment() returned no tokens")
	}
	// A dictionary cut always produces strictly more than one token for a
	// multi-word sentence and never returns the input whole.
	if len(tokens) == 1 {
		t.Errorf("Segment() did not split the sentence: %v", tokens)
	}
}

func TestSegmentEmpty(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tokens, err := s.Segment("   ")
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if tokens != nil {
		t.Errorf("Segment(blank) = %v, want nil", tokens)
	}
}
