package optimizer

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noiseSelector matches structural regions that never carry article content.
// They are removed destructively, which is safe because the parsed tree is
// private to one Optimize call.
const noiseSelector = "script,style,nav,header,footer,aside,menu,noscript"

// tagWeights is the structural prior per element type.
var tagWeights = map[string]float64{
	"p":          1.0,
	"h1":         0.9,
	"h2":         0.9,
	"h3":         0.8,
	"h4":         0.7,
	"h5":         0.6,
	"h6":         0.6,
	"blockquote": 0.8,
	"pre":        0.7,
	"li":         0.6,
	"td":         0.5,
	"div":        0.5,
}

// sectionStarters begin a new document section when encountered in reading
// order.
var sectionStarters = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "main": true,
}

// contentTags are the elements that become candidate blocks.
var contentTags = map[string]bool{
	"p": true, "div": true, "li": true, "blockquote": true, "pre": true,
	"td": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Keyword signals for class/id attributes. Positive names mark content
// containers, negative names mark chrome and promotional regions.
var (
	positiveAttrWords = []string{
		"article", "body", "content", "entry", "main", "post", "story", "text",
	}
	negativeAttrWords = []string{
		"ad", "advert", "banner", "breadcrumb", "comment", "copyright",
		"footer", "masthead", "menu", "nav", "popup", "promo", "related",
		"share", "sidebar", "social", "sponsor", "widget",
	}
)

// extractBlocks removes noise regions from doc and collects candidate blocks
// in document order. Sections are delimited by headings and semantic
// containers; a document without any of those is a single section.
func extractBlocks(doc *goquery.Document, minTextLength int) []*Block {
	doc.Find(noiseSelector).Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return nil
	}

	var blocks []*Block
	section := 0
	order := 0

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if sectionStarters[n.Data] {
				section++
			}
			if contentTags[n.Data] {
				text, anchorChars := ownText(n)
				if utf8.RuneCountInString(text) >= minTextLength {
					blocks = append(blocks, &Block{
						Node:         n,
						Text:         text,
						SectionIndex: section,
						docOrder:     order,
						Tag:          n.Data,
						TagWeight:    tagWeights[n.Data],
						ClassScore:   attrScore(attrValue(n, "class")),
						IDScore:      attrScore(attrValue(n, "id")),
						anchorChars:  anchorChars,
					})
					order++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body.Nodes[0])

	recomputeSectionSizes(blocks)
	return blocks
}

// ownText collects the element's own visible text: inline descendants are
// included, but subtrees rooted at elements that are captured as blocks in
// their own right (or that start sections) are skipped so nested containers
// never duplicate text. The second return is the rune count of text inside
// anchor elements.
func ownText(n *html.Node) (string, int) {
	var sb strings.Builder
	anchorChars := 0

	var walk func(m *html.Node, inAnchor bool)
	walk = func(m *html.Node, inAnchor bool) {
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				t := strings.TrimSpace(c.Data)
				if t == "" {
					continue
				}
				sb.WriteString(t)
				sb.WriteByte(' ')
				if inAnchor {
					anchorChars += utf8.RuneCountInString(t)
				}
			case html.ElementNode:
				if contentTags[c.Data] || sectionStarters[c.Data] {
					continue
				}
				walk(c, inAnchor || c.Data == "a")
			}
		}
	}
	walk(n, false)

	return strings.TrimSpace(sb.String()), anchorChars
}

// attrScore maps a class or id attribute value to [0, 1]: 0.5 neutral,
// raised by content keywords, lowered by chrome keywords.
func attrScore(attr string) float64 {
	if attr == "" {
		return 0.5
	}
	attr = strings.ToLower(attr)
	tokens := strings.FieldsFunc(attr, func(r rune) bool {
		return ('a' > r || r > 'z') && ('0' > r || r > '9')
	})

	score := 0.5
	if matchesAttrWord(attr, tokens, positiveAttrWords) {
		score += 0.5
	}
	if matchesAttrWord(attr, tokens, negativeAttrWords) {
		score -= 0.5
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// matchesAttrWord checks keyword presence. Short keywords ("ad", "nav")
// only match at token starts, otherwise "ad" would fire on "header" or
// "read-more".
func matchesAttrWord(attr string, tokens []string, words []string) bool {
	for _, w := range words {
		if len(w) <= 3 {
			for _, t := range tokens {
				if strings.HasPrefix(t, w) {
					return true
				}
			}
			continue
		}
		if strings.Contains(attr, w) {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
