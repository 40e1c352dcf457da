package artifacts

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestRunID(t *testing.T) {
	tests := []struct {
		name   string
		source string
		slug   string
	}{
		{"url", "https://example.com/go/scheduler", "example_com_go_scheduler"},
		{"url host only", "https://example.com", "example_com"},
		{"local file", "pages/article one.html", "pages_article_one_html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RunID(tt.source)
			if !strings.HasPrefix(got, tt.slug+"-") {
				t.Errorf("RunID(%q) = %q, want prefix %q", tt.source, got, tt.slug+"-")
			}
			hash := strings.TrimPrefix(got, tt.slug+"-")
			if len(hash) != 12 {
				t.Errorf("hash suffix %q has length %d, want 12", hash, len(hash))
			}
		})
	}
}

func TestRunIDStableAcrossSchemes(t *testing.T) {
	// http and https forms of the same page normalize to one ID hash.
	a := RunID("http://Example.com/post")
	b := RunID("https://example.com/post")
	hashOf := func(id string) string { return id[strings.LastIndex(id, "-")+1:] }
	if hashOf(a) != hashOf(b) {
		t.Errorf("hash differs across scheme/case: %q vs %q", a, b)
	}
}

func TestGenerateBatchID(t *testing.T) {
	sources := []string{"b.html", "a.html"}

	id := GenerateBatchID(sources)
	if ok, _ := regexp.MatchString(`^\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-[0-9a-f]{12}$`, id); !ok {
		t.Errorf("batch ID %q does not match timestamp-hash format", id)
	}

	// Order of sources must not change the ID.
	if other := GenerateBatchID([]string{"a.html", "b.html"}); other != id {
		t.Errorf("batch ID depends on source order: %q vs %q", id, other)
	}
}

func TestWriteRun(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	runDir, err := m.WriteRun("example_com-abc123", []byte("<html></html>"), []byte("optimization: optimized\n"))
	if err != nil {
		t.Fatalf("WriteRun: %v", err)
	}

	html, err := os.ReadFile(filepath.Join(runDir, OptimizedHTMLName))
	if err != nil {
		t.Fatalf("reading optimized HTML: %v", err)
	}
	if string(html) != "<html></html>" {
		t.Errorf("optimized HTML = %q", html)
	}
	if _, err := os.Stat(filepath.Join(runDir, ReportName)); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestUpdateBatchIndex(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	old := BatchInfo{BatchID: "2026-01-01T10-00-aaaaaaaaaaaa", InputCount: 2, Optimized: 2}
	recent := BatchInfo{BatchID: "2026-02-01T10-00-bbbbbbbbbbbb", InputCount: 1, Optimized: 1}
	if err := m.UpdateBatchIndex(old); err != nil {
		t.Fatalf("UpdateBatchIndex: %v", err)
	}
	if err := m.UpdateBatchIndex(recent); err != nil {
		t.Fatalf("UpdateBatchIndex: %v", err)
	}

	// Updating an existing batch must replace, not append.
	old.Failed = 1
	if err := m.UpdateBatchIndex(old); err != nil {
		t.Fatalf("UpdateBatchIndex: %v", err)
	}

	data, err := os.ReadFile(m.IndexPath())
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	text := string(data)
	if strings.Count(text, "aaaaaaaaaaaa") != 1 {
		t.Errorf("old batch should appear exactly once:\n%s", text)
	}
	if strings.Index(text, "bbbbbbbbbbbb") > strings.Index(text, "aaaaaaaaaaaa") {
		t.Errorf("newest batch should sort first:\n%s", text)
	}
}

func TestSourcesPreview(t *testing.T) {
	srcs := []string{"a", "b", "c", "d"}
	if got := SourcesPreview(srcs, 3); len(got) != 3 {
		t.Errorf("preview length = %d, want 3", len(got))
	}
	if got := SourcesPreview(srcs[:2], 3); len(got) != 2 {
		t.Errorf("short list preview length = %d, want 2", len(got))
	}
}
