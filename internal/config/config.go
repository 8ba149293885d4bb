// Package config loads the ingest/viewer configuration from the
// environment, with an optional YAML feeds file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Category is one thematic feed group. Categories are processed and
// summarized independently, in the order they appear in Config.Categories.
type Category struct {
	ID          string   // stable identifier used in counts/feeds maps
	Title       string   // display title, becomes the section heading
	Placeholder string   // section body when the category yields zero items
	Feeds       []string // ordered feed URLs
}

type Config struct {
	// Storage settings
	Bucket  string
	Country string

	// Feed settings
	Categories          []Category
	MaxItemsPerFeed     int
	MaxItemsPerCategory int
	FetchTimeout        time.Duration
	UserAgent           string
	FeedsConfigPath     string

	// Bedrock settings
	BedrockRegion  string
	BedrockModelID string

	// App settings
	Debug bool
}

var defaultPoliticsFeeds = []string{
	"http://feeds.feedburner.com/prachataienglish",
	"https://api.gdeltproject.org/api/v2/doc/doc?query=thailand%20(politics%20OR%20government%20OR%20election)&mode=ArtList&format=rss&maxrecords=50&sort=HybridRel",
}

var defaultEconomyFeeds = []string{
	"https://api.gdeltproject.org/api/v2/doc/doc?query=thailand%20(economy%20OR%20gdp%20OR%20inflation%20OR%20bank%20OR%20baht%20OR%20trade%20OR%20tourism)&mode=ArtList&format=rss&maxrecords=50&sort=HybridRel",
}

var defaultTechFeeds = []string{
	"https://api.gdeltproject.org/api/v2/doc/doc?query=thailand%20(technology%20OR%20ai%20OR%20cyber%20OR%20software%20OR%20startup%20OR%20digital)&mode=ArtList&format=rss&maxrecords=50&sort=HybridRel",
}

// feedsFile is the optional YAML override:
//
//	feeds:
//	  politics: ["https://..."]
//	  economy: ["https://..."]
//	  tech: ["https://..."]
type feedsFile struct {
	Feeds map[string][]string `yaml:"feeds"`
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Country:             "Thailand",
		MaxItemsPerFeed:     20,
		MaxItemsPerCategory: 30,
		FetchTimeout:        10 * time.Second,
		UserAgent:           "global-news-bot/0.1",
		BedrockModelID:      "amazon.nova-pro-v1:0",
	}

	cfg.Bucket = os.Getenv("S3_BUCKET")
	cfg.FeedsConfigPath = os.Getenv("FEEDS_CONFIG_PATH")

	cfg.MaxItemsPerFeed = getEnvIntOrDefault("MAX_ITEMS_PER_FEED", cfg.MaxItemsPerFeed)
	cfg.MaxItemsPerCategory = getEnvIntOrDefault("MAX_ITEMS_PER_CATEGORY", cfg.MaxItemsPerCategory)
	if v := getEnvIntOrDefault("FETCH_TIMEOUT_SEC", 0); v > 0 {
		cfg.FetchTimeout = time.Duration(v) * time.Second
	}
	cfg.UserAgent = getEnvOrDefault("HTTP_USER_AGENT", cfg.UserAgent)
	cfg.Country = getEnvOrDefault("NEWS_COUNTRY", cfg.Country)

	cfg.BedrockRegion = getEnvOrDefault("BEDROCK_REGION", getEnvOrDefault("AWS_REGION", "us-west-2"))
	cfg.BedrockModelID = getEnvOrDefault("BEDROCK_MODEL_ID", cfg.BedrockModelID)

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	fileFeeds, err := loadFeedsFile(cfg.FeedsConfigPath)
	if err != nil {
		return nil, err
	}

	cfg.Categories = []Category{
		{
			ID:          "politics",
			Title:       "政治",
			Placeholder: "_（取得0件：RSSが落ちている/フィード形式変更の可能性）_",
			Feeds:       resolveFeeds("RSS_POLITICS", fileFeeds["politics"], defaultPoliticsFeeds),
		},
		{
			ID:          "economy",
			Title:       "経済",
			Placeholder: "_（取得0件：RSSが落ちている/検索条件が強すぎる可能性）_",
			Feeds:       resolveFeeds("RSS_ECONOMY", fileFeeds["economy"], defaultEconomyFeeds),
		},
		{
			ID:          "tech",
			Title:       "テック",
			Placeholder: "_（取得0件：RSSが落ちている/フィード形式変更の可能性）_",
			Feeds:       resolveFeeds("RSS_TECH", fileFeeds["tech"], defaultTechFeeds),
		},
	}

	return cfg, cfg.Validate()
}

// resolveFeeds picks the first non-empty source: env comma-list,
// YAML feeds file entry, curated defaults.
func resolveFeeds(envKey string, fromFile, fallback []string) []string {
	if urls := splitList(os.Getenv(envKey)); len(urls) > 0 {
		return urls
	}
	if len(fromFile) > 0 {
		return fromFile
	}
	return fallback
}

func loadFeedsFile(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds config %s: %w", path, err)
	}
	var ff feedsFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parse feeds config %s: %w", path, err)
	}
	return ff.Feeds, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required")
	}
	if c.MaxItemsPerFeed <= 0 || c.MaxItemsPerCategory <= 0 {
		return fmt.Errorf("item caps must be positive")
	}
	return nil
}
