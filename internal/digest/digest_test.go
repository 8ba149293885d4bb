package digest

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	d := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	if got := Key("Thailand", d); got != "Thailand/2026_02_14.md" {
		t.Errorf("Key = %q, want Thailand/2026_02_14.md", got)
	}
}

func TestKeyIsPureFunctionOfDate(t *testing.T) {
	morning := time.Date(2026, 2, 14, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2026, 2, 14, 23, 59, 59, 0, time.UTC)
	if Key("Thailand", morning) != Key("Thailand", evening) {
		t.Error("same date must map to the same key")
	}
}

func TestMonthPrefix(t *testing.T) {
	if got := MonthPrefix("Thailand", 2026, 2); got != "Thailand/2026_02_" {
		t.Errorf("MonthPrefix = %q", got)
	}
	d := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	if !strings.HasPrefix(Key("Thailand", d), MonthPrefix("Thailand", 2026, 2)) {
		t.Error("month prefix must cover the day key")
	}
}

func TestBuild_HeaderAndSectionOrder(t *testing.T) {
	sections := []Section{
		{Title: "政治", Body: "politics body"},
		{Title: "経済", Body: "economy body"},
		{Title: "テック", Body: "tech body"},
	}
	md := Build("Thailand", "2026_02_14", sections)

	if !strings.HasPrefix(md, "# Thailand Daily News (2026_02_14)\n") {
		t.Fatalf("document must start with the dated H1, got %q", firstLine(md))
	}

	lines := strings.Split(md, "\n")
	var h2s []string
	for _, l := range lines {
		if strings.HasPrefix(l, "## ") {
			h2s = append(h2s, strings.TrimPrefix(l, "## "))
		}
	}
	want := []string{"目次", "政治", "経済", "テック"}
	if len(h2s) != len(want) {
		t.Fatalf("H2 headings = %v, want %v", h2s, want)
	}
	for i := range want {
		if h2s[i] != want[i] {
			t.Fatalf("H2 headings = %v, want %v", h2s, want)
		}
	}
}

func TestBuild_TOCLinksEverySection(t *testing.T) {
	md := Build("Thailand", "2026_02_14", []Section{
		{Title: "政治", Body: "a"},
		{Title: "経済", Body: "b"},
	})
	for _, title := range []string{"政治", "経済"} {
		link := "- [" + title + "](#" + title + ")"
		if !strings.Contains(md, link) {
			t.Errorf("TOC entry %q missing", link)
		}
	}
}

func TestBuild_BodiesAndRules(t *testing.T) {
	md := Build("Thailand", "2026_02_14", []Section{{Title: "政治", Body: "_placeholder_"}})
	if !strings.Contains(md, "## 政治\n\n_placeholder_\n\n---\n") {
		t.Errorf("section block malformed:\n%s", md)
	}
}

func TestBuild_HeaderFollowsCountry(t *testing.T) {
	md := Build("Vietnam", "2026_02_14", []Section{{Title: "政治", Body: "a"}})
	if !strings.HasPrefix(md, "# Vietnam Daily News (2026_02_14)\n") {
		t.Errorf("H1 must carry the configured country, got %q", firstLine(md))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
