// Package feed turns raw feed bytes into cleaned, deduplicated,
// ranked news items for one category.
package feed

import (
	"crypto/sha256"
	"encoding/hex"
)

// Item is one accepted feed entry. Identity for dedup purposes is the
// normalized Link; ID is a short fingerprint of it kept for display
// and debugging only.
type Item struct {
	SourceFeed string `json:"source_feed"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	Summary    string `json:"summary"`
	Published  string `json:"published"` // free-form date text as the feed gave it
	ID         string `json:"id"`
}

// Fingerprint returns the first 16 hex chars of SHA-256 of s.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}
