// internal/scraper/htmltext.go
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockTags are elements whose boundaries become line breaks when flattening
// a region to text. goquery's Text() concatenates text nodes without any
// separation, which destroys the line structure the field mapper depends on.
var blockTags = map[string]bool{
	"address": true, "article": true, "div": true, "dd": true, "dt": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "ol": true, "p": true, "section": true, "table": true,
	"td": true, "tr": true, "ul": true,
}

// TextLines flattens a selection to trimmed, non-empty text lines, treating
// <br> and block element boundaries as line breaks.
func TextLines(sel *goquery.Selection) []string {
	var b strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "br":
				b.WriteString("\n")
				return
			case "script", "style", "noscript":
				return
			}
			if blockTags[n.Data] {
				b.WriteString("\n")
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if blockTags[n.Data] {
				b.WriteString("\n")
			}
		}
	}

	for _, node := range sel.Nodes {
		walk(node)
	}

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// TextBlock joins TextLines with newlines, the shape the field mapper takes.
func TextBlock(sel *goquery.Selection) string {
	return strings.Join(TextLines(sel), "\n")
}
