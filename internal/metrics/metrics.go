package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	FeedsFailed        int64
	ItemsAccepted      int64
	DuplicatesFiltered int64
	ModelCalls         int64
	ModelFallbacks     int64
	DocumentsWritten   int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFailed++
}

func (m *Metrics) AddItemsAccepted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsAccepted += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) IncrementModelCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ModelCalls++
}

func (m *Metrics) IncrementModelFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ModelFallbacks++
}

func (m *Metrics) IncrementDocumentsWritten() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DocumentsWritten++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":        m.FeedsFetched,
		"feeds_failed":         m.FeedsFailed,
		"items_accepted":       m.ItemsAccepted,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"model_calls":          m.ModelCalls,
		"model_fallbacks":      m.ModelFallbacks,
		"documents_written":    m.DocumentsWritten,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
