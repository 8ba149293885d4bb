package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// CleanText unescapes HTML entities, strips tag markup and collapses
// whitespace runs to single spaces.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = stripTags(s)
	// The goquery round trip re-escapes entities in text nodes.
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// stripTags removes markup from an HTML fragment. Script and style
// blocks are dropped wholesale first so their contents don't leak into
// the text; remaining tags become spaces so words across tag
// boundaries stay separated.
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		doc.Find("script, style, noscript").Remove()
		if inner, err := doc.Find("body").Html(); err == nil {
			s = inner
		}
	}
	return tagPattern.ReplaceAllString(s, " ")
}
