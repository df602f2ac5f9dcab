// internal/scraper/htmltext_test.go
package scraper

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseFixture(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func TestTextLines(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "br splits lines",
			html: `<div>Business Name: Acme<br>VAT: GB123</div>`,
			want: []string{"Business Name: Acme", "VAT: GB123"},
		},
		{
			name: "block boundaries split lines",
			html: `<div><p>first</p><p>second</p></div>`,
			want: []string{"first", "second"},
		},
		{
			name: "inline elements do not split",
			html: `<div>Phone: <span>+44 123</span></div>`,
			want: []string{"Phone: +44 123"},
		},
		{
			name: "script and style skipped",
			html: `<div>visible<script>var x = 1;</script><style>.a{}</style></div>`,
			want: []string{"visible"},
		},
		{
			name: "blank lines dropped",
			html: `<div><p>  </p><p>kept</p><p></p></div>`,
			want: []string{"kept"},
		},
		{
			name: "table rows split lines",
			html: `<table><tr><td>label</td><td>value</td></tr></table>`,
			want: []string{"label", "value"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseFixture(t, tt.html)
			got := TextLines(doc.Find("body"))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TextLines() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextBlock(t *testing.T) {
	doc := parseFixture(t, `<div><p>one</p><p>two</p></div>`)
	got := TextBlock(doc.Find("body"))
	if got != "one\ntwo" {
		t.Errorf("TextBlock() = %q, want %q", got, "one\ntwo")
	}
}
