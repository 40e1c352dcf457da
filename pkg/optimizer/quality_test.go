package optimizer

import (
	"strings"
	"testing"
)

func TestFilterQuality(t *testing.T) {
	pass := &Block{Text: "Channels provide a means for goroutines to communicate by passing values rather than sharing memory directly between them."}
	short := &Block{Text: "Brief but fully valid sentence."}
	linkHeavy := &Block{
		Text:        "A list of further reading with one link after another link after another link, every word of it clickable navigation.",
		anchorChars: 100,
	}
	lowAlnum := &Block{Text: strings.Repeat("==== ---- ", 12)}
	boilerShort := &Block{Text: "Subscribe to our newsletter today and never miss another update or announcement from the editorial team."}
	boilerLong := &Block{Text: "The privacy policy debate in the European Union has reshaped how platforms disclose their data collection practices, and the resulting case law now guides regulators well beyond Europe."}

	blocks := []*Block{pass, short, linkHeavy, lowAlnum, boilerShort, boilerLong}
	kept, stats := filterQuality(blocks, DefaultConfig())

	wantKept := map[*Block]bool{pass: true, boilerLong: true}
	if len(kept) != len(wantKept) {
		t.Fatalf("filterQuality() kept %d blocks, want %d", len(kept), len(wantKept))
	}
	for _, b := range kept {
		if !wantKept[b] {
			t.Errorf("filterQuality() kept rejected block: %q", b.Text)
		}
	}

	if stats.TooShort != 1 {
		t.Errorf("TooShort = %d, want 1", stats.TooShort)
	}
	if stats.LinkHeavy != 1 {
		t.Errorf("LinkHeavy = %d, want 1", stats.LinkHeavy)
	}
	if stats.LowAlnum != 1 {
		t.Errorf("LowAlnum = %d, want 1", stats.LowAlnum)
	}
	if stats.Boilerplate != 1 {
		t.Errorf("Boilerplate = %d, want 1", stats.Boilerplate)
	}
	if stats.total() != 4 {
		t.Errorf("total() = %d, want 4", stats.total())
	}
}

func TestFilterQualityBoilerplateLengthCutoff(t *testing.T) {
	// The same promotional phrase is fatal below 120 runes and harmless at
	// or above it.
	shortText := "Click here for the complete archive of columns written by our staff, updated daily."
	longText := "Click here for the complete archive of columns written by our staff over the last decade, covering language design, runtime internals, tooling and the standard library in depth."

	tests := []struct {
		name     string
		text     string
		wantKept bool
	}{
		{name: "short promotional block rejected", text: shortText, wantKept: false},
		{name: "long block with same phrase kept", text: longText, wantKept: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, _ := filterQuality([]*Block{{Text: tt.text}}, DefaultConfig())
			if got := len(kept) == 1; got != tt.wantKept {
				t.Errorf("kept = %v, want %v for %d runes", got, tt.wantKept, len([]rune(tt.text)))
			}
		})
	}
}

func TestHasBoilerplate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "latin phrase case-insensitive", text: "SUBSCRIBE to updates", want: true},
		{name: "cjk phrase", text: "版权所有，未经许可不得转载", want: true},
		{name: "clean prose", text: "Goroutines communicate over channels", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasBoilerplate(tt.text); got != tt.want {
				t.Errorf("hasBoilerplate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
