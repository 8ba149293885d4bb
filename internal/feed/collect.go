package feed

import (
	"context"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"thaidigest/internal/logger"
	"thaidigest/internal/urlnorm"
)

// Fetcher downloads one feed URL. A nil error means the bytes are a
// plausible feed document (HTML-disguised responses already rejected).
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetchResult is the per-feed outcome: either recovered items or the
// reason the feed contributed nothing. One failing feed never fails
// the category.
type FetchResult struct {
	FeedURL string
	Items   []Item
	Err     error
}

// Collect fetches every feed URL in order, parses and cleans the
// entries, dedups by normalized link across all feeds, ranks and
// truncates to maxTotal. The duplicate count covers only dedup drops,
// not rank truncation. The returned results carry per-feed failures
// for logging and presentation decisions.
func Collect(ctx context.Context, f Fetcher, urls []string, maxPerFeed, maxTotal int) ([]Item, int, []FetchResult) {
	var all []Item
	results := make([]FetchResult, 0, len(urls))

	for _, url := range urls {
		items, err := fetchOne(ctx, f, url, maxPerFeed)
		results = append(results, FetchResult{FeedURL: url, Items: items, Err: err})
		if err != nil {
			logger.Warn("feed skipped", "url", url, "error", err)
			continue
		}
		all = append(all, items...)
	}

	deduped, duplicates := Dedup(all)
	Rank(deduped)
	if len(deduped) > maxTotal {
		deduped = deduped[:maxTotal]
	}
	return deduped, duplicates, results
}

func fetchOne(ctx context.Context, f Fetcher, url string, maxPerFeed int) ([]Item, error) {
	raw, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	parser := gofeed.NewParser()
	parsed, err := parser.ParseString(string(raw))
	if parsed == nil {
		return nil, err
	}
	if err != nil {
		// Partial parse: keep whatever entries were recovered.
		logger.Warn("feed parsed with problems", "url", url, "error", err)
	}
	logger.Info("parsed feed", "url", url, "entries", len(parsed.Items))

	// The cap slices raw entries before filtering, so entries dropped
	// for a missing title or link still consume cap budget.
	entries := parsed.Items
	if len(entries) > maxPerFeed {
		entries = entries[:maxPerFeed]
	}

	var items []Item
	for _, e := range entries {
		item, ok := entryToItem(url, e)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// entryToItem cleans and normalizes one feed entry. Entries without a
// usable title or link are dropped.
func entryToItem(feedURL string, e *gofeed.Item) (Item, bool) {
	title := CleanText(e.Title)
	link := urlnorm.Normalize(strings.TrimSpace(e.Link))
	if title == "" || link == "" {
		return Item{}, false
	}

	summary := e.Description
	if summary == "" {
		summary = e.Content
	}

	published := e.Published
	if published == "" {
		published = e.Updated
	}

	return Item{
		SourceFeed: feedURL,
		Title:      title,
		Link:       link,
		Summary:    CleanText(summary),
		Published:  published,
		ID:         Fingerprint(link),
	}, true
}

// Dedup removes items whose normalized link was already seen, first
// occurrence wins, order otherwise preserved. The second return is the
// number of items removed.
func Dedup(items []Item) ([]Item, int) {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.Link]; dup {
			continue
		}
		seen[it.Link] = struct{}{}
		out = append(out, it)
	}
	return out, len(items) - len(out)
}

// Rank stably sorts items so that entries with a summary come first,
// then by the raw published string ascending. The published field is
// free-form text, so this is a bias toward richer inputs for the
// summarizer when truncation kicks in, not a chronological order.
func Rank(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		hi, hj := items[i].Summary != "", items[j].Summary != ""
		if hi != hj {
			return hi
		}
		return items[i].Published < items[j].Published
	})
}
