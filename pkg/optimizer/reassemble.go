package optimizer

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// reassemble renders the selected blocks into a minimal document in original
// reading order. Each block becomes one element carrying its cleaned text;
// fragments produced by splitting an oversized block therefore emit as
// separate elements rather than re-rendering their shared source node. The
// output feeds a boilerplate-removal extractor, not a browser.
func reassemble(blocks []*Block, title string) string {
	ordered := append([]*Block(nil), blocks...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].docOrder < ordered[j].docOrder
	})

	var sb strings.Builder
	sb.WriteString("<html><head>")
	if title != "" {
		sb.WriteString("<title>")
		sb.WriteString(html.EscapeString(title))
		sb.WriteString("</title>")
	}
	sb.WriteString("</head><body>\n")
	for _, b := range ordered {
		tag := b.Tag
		switch tag {
		case "", "td":
			// A lone table cell outside its table is not valid markup.
			tag = "p"
		}
		sb.WriteString("<")
		sb.WriteString(tag)
		sb.WriteString(">")
		sb.WriteString(html.EscapeString(b.Text))
		sb.WriteString("</")
		sb.WriteString(tag)
		sb.WriteString(">\n")
	}
	sb.WriteString("</body></html>")
	return sb.String()
}
