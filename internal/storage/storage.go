// Package storage is the object-store boundary: one Markdown object
// per day, written by ingest and read by the viewer.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports that no object exists at the requested key.
// Callers map it to a "no data for this date" state, not an error.
var ErrNotFound = errors.New("object not found")

// Store is the narrow surface both processes depend on. ListPrefix is
// a best-effort UX hint and may be expensive; failures there should
// degrade, not block.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte, contentType, cacheControl string) error
	ListPrefix(ctx context.Context, prefix string) (map[string]struct{}, error)
}
