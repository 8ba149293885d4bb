// Package digest assembles the daily Markdown document and defines the
// date-keyed storage layout shared by ingest and viewer.
package digest

import (
	"fmt"
	"strings"
	"time"
)

// Section is one category's rendered block.
type Section struct {
	Title string
	Body  string
}

// DateString formats the daily-cut date as it appears in keys and the
// document header.
func DateString(t time.Time) string {
	return t.Format("2006_01_02")
}

// Key returns the object key for a given country and date, e.g.
// Thailand/2026_02_14.md. The key is a pure function of its inputs;
// writing the same date always overwrites the same object.
func Key(country string, t time.Time) string {
	return fmt.Sprintf("%s/%s.md", country, DateString(t))
}

// MonthPrefix returns the key prefix covering every day of a month,
// used by the viewer to list existing documents.
func MonthPrefix(country string, year, month int) string {
	return fmt.Sprintf("%s/%04d_%02d_", country, year, month)
}

// Build renders the daily document: H1 with the country and date, a
// table of contents, then each section as an H2 followed by its body
// and a horizontal rule. Sections appear exactly in input order.
func Build(country, dateStr string, sections []Section) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s Daily News (%s)\n\n", country, dateStr))

	b.WriteString("## 目次\n")
	for _, s := range sections {
		b.WriteString(fmt.Sprintf("- [%s](#%s)\n", s.Title, s.Title))
	}
	b.WriteString("\n")

	for _, s := range sections {
		b.WriteString(fmt.Sprintf("## %s\n\n%s\n\n---\n\n", s.Title, s.Body))
	}
	return b.String()
}
