// Package extract wraps the boilerplate-removal step that consumes
// optimized markup and produces the final plain text.
package extract

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Extractor is the narrow contract the application depends on, so tests can
// substitute a stub and the optimizer stays decoupled from any particular
// extraction engine.
type Extractor interface {
	Extract(pageHTML, pageURL string) (Result, error)
}

// Result is one extracted article.
type Result struct {
	Title    string `json:"title" yaml:"title"`
	Byline   string `json:"byline,omitempty" yaml:"byline,omitempty"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Excerpt  string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Text     string `json:"text" yaml:"text"`
}

// WordCount returns the whitespace-separated token count of the text.
func (r Result) WordCount() int {
	return len(strings.Fields(r.Text))
}

// Readability extracts with go-readability, then walks the distilled
// fragment so every content element lands on its own line.
type Readability struct{}

func NewReadability() *Readability {
	return &Readability{}
}

func (*Readability) Extract(pageHTML, pageURL string) (Result, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return Result{}, fmt.Errorf("parsing page url: %w", err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(pageHTML), parsedURL)
	if err != nil {
		return Result{}, fmt.Errorf("readability parse: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return Result{}, fmt.Errorf("parsing distilled content: %w", err)
	}

	var lines []string
	doc.Find("h1,h2,h3,h4,p,li,blockquote,pre").Each(func(_ int, s *goquery.Selection) {
		if text := normalizeText(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	text := strings.Join(lines, "\n")
	if text == "" {
		text = normalizeText(article.TextContent)
	}

	return Result{
		Title:    normalizeText(article.Title),
		Byline:   normalizeText(article.Byline),
		SiteName: article.SiteName,
		Excerpt:  normalizeText(article.Excerpt),
		Text:     text,
	}, nil
}

// Plain is the deterministic fallback when readability is switched off: the
// markup's visible text, flattened, with no boilerplate judgment at all.
type Plain struct{}

func (Plain) Extract(pageHTML, pageURL string) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return Result{}, fmt.Errorf("parsing content: %w", err)
	}
	doc.Find("script,style,noscript").Remove()
	return Result{
		Title: normalizeText(doc.Find("title").First().Text()),
		Text:  normalizeText(doc.Find("body").Text()),
	}, nil
}

// normalizeText trims each line and joins the non-empty ones with single
// spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
