package common

import "testing"

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "https://example.com/post", "https://example.com/post"},
		{"whitespace", "  https://example.com \n", "https://example.com"},
		{"trailing comma", "https://example.com/a,", "https://example.com/a"},
		{"markdown link", "[read this](https://example.com/doc)", "https://example.com/doc"},
		{"angle brackets", "<https://example.com>", "https://example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeURL(tt.in); got != tt.want {
				t.Errorf("SanitizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/post", true},
		{"http://example.com", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"https://example .com", false},
		{"https://example.com{}", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidURL(tt.in); got != tt.want {
			t.Errorf("IsValidURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFilterFields(t *testing.T) {
	type result struct {
		URL    string `json:"url"`
		Status string `json:"status"`
		Score  int    `json:"score"`
	}
	r := result{URL: "https://example.com", Status: "optimized", Score: 7}

	filtered := FilterFields(r, "url, score")
	if len(filtered) != 2 {
		t.Fatalf("filtered has %d fields, want 2", len(filtered))
	}
	if filtered["url"] != "https://example.com" {
		t.Errorf("url = %v", filtered["url"])
	}
	if _, ok := filtered["status"]; ok {
		t.Error("status should be filtered out")
	}

	all := FilterFields(r, "")
	if len(all) != 3 {
		t.Errorf("empty filter returned %d fields, want 3", len(all))
	}
}
