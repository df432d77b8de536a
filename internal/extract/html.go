package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/luminastudy/studygen/internal/docformat"
)

// fromHTMLBytes decodes HTML bytes and extracts the visible text.
func fromHTMLBytes(data []byte) (string, error) {
	return htmlToText(decodeText(data), docformat.FormatHTML)
}

// htmlToText strips markup from an HTML document, dropping non-content
// elements (script, style, noscript) and preserving block boundaries as
// line breaks.
func htmlToText(src string, format docformat.Format) (string, error) {
	node, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return fail(format, err)
	}
	var b strings.Builder
	collectText(&b, node)
	return b.String(), nil
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "head":
			return
		case "br", "hr":
			b.WriteString("\n")
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "div", "tr", "ul", "ol", "table", "blockquote", "pre":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "div", "tr", "blockquote", "pre":
			b.WriteString("\n")
		}
	}
}
