// Package app runs one full ingestion cycle: fetch every category's
// feeds, summarize, assemble the daily document and persist it.
package app

import (
	"context"
	"fmt"
	"time"

	"thaidigest/internal/config"
	"thaidigest/internal/digest"
	"thaidigest/internal/feed"
	"thaidigest/internal/logger"
	"thaidigest/internal/metrics"
)

const (
	contentType  = "text/markdown; charset=utf-8"
	cacheControl = "no-cache"
	dailyCutZone = "Asia/Bangkok"
)

// Summarizer produces a category's section body from its ranked items.
type Summarizer interface {
	Summarize(ctx context.Context, categoryTitle string, items []feed.Item) (string, error)
}

// Writer is the slice of the storage surface ingestion needs.
type Writer interface {
	Put(ctx context.Context, key string, body []byte, contentType, cacheControl string) error
}

// Status is the invocation result payload.
type Status struct {
	StatusCode int  `json:"statusCode"`
	Body       Body `json:"body"`
}

type Body struct {
	Message string              `json:"message"`
	Date    string              `json:"date"`
	Bucket  string              `json:"s3_bucket"`
	Key     string              `json:"s3_key"`
	Counts  map[string]int      `json:"counts"`
	Feeds   map[string][]string `json:"feeds"`
}

// Run performs the daily cycle. Feed and model-shape problems are
// absorbed per category; a model invocation failure or the final
// storage write failing is fatal and propagates.
func Run(ctx context.Context, cfg *config.Config, fetcher feed.Fetcher, summarizer Summarizer, store Writer) (*Status, error) {
	start := time.Now()

	loc, err := time.LoadLocation(dailyCutZone)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", dailyCutZone, err)
	}
	now := time.Now().In(loc)
	dateStr := digest.DateString(now)

	logger.Info("ingest start",
		"date", dateStr,
		"bucket", cfg.Bucket,
		"model", cfg.BedrockModelID,
		"max_items_per_feed", cfg.MaxItemsPerFeed,
		"max_items_per_category", cfg.MaxItemsPerCategory,
	)

	sections := make([]digest.Section, 0, len(cfg.Categories))
	counts := make(map[string]int, len(cfg.Categories))
	feeds := make(map[string][]string, len(cfg.Categories))

	for _, cat := range cfg.Categories {
		items, duplicates, results := feed.Collect(ctx, fetcher, cat.Feeds, cfg.MaxItemsPerFeed, cfg.MaxItemsPerCategory)
		recordResults(results, items, duplicates)
		counts[cat.ID] = len(items)
		feeds[cat.ID] = cat.Feeds
		logger.Info("category collected", "category", cat.ID, "items", len(items))

		// A category with nothing fetched never calls the model.
		if len(items) == 0 {
			sections = append(sections, digest.Section{Title: cat.Title, Body: cat.Placeholder})
			continue
		}

		body, err := summarizer.Summarize(ctx, cat.Title, items)
		if err != nil {
			metrics.Global.SetError(err.Error())
			return nil, fmt.Errorf("summarize %s: %w", cat.ID, err)
		}
		sections = append(sections, digest.Section{Title: cat.Title, Body: body})
	}

	md := digest.Build(cfg.Country, dateStr, sections)
	key := digest.Key(cfg.Country, now)
	if err := store.Put(ctx, key, []byte(md), contentType, cacheControl); err != nil {
		metrics.Global.SetError(err.Error())
		return nil, fmt.Errorf("persist digest: %w", err)
	}
	metrics.Global.IncrementDocumentsWritten()
	metrics.Global.RecordRun(time.Since(start))

	logger.Info("ingest done", "key", key, "bytes", len(md), "elapsed", time.Since(start).String())

	return &Status{
		StatusCode: 200,
		Body: Body{
			Message: "ok",
			Date:    dateStr,
			Bucket:  cfg.Bucket,
			Key:     key,
			Counts:  counts,
			Feeds:   feeds,
		},
	}, nil
}

func recordResults(results []feed.FetchResult, kept []feed.Item, duplicates int) {
	for _, r := range results {
		if r.Err != nil {
			metrics.Global.IncrementFeedsFailed()
			continue
		}
		metrics.Global.IncrementFeedsFetched()
	}
	metrics.Global.AddItemsAccepted(len(kept))
	if duplicates > 0 {
		metrics.Global.AddDuplicatesFiltered(duplicates)
	}
}
