package srv

import (
	"context"
	"sync"
)

// MemorySummaryCache is an in-process SummaryCache for tests.
type MemorySummaryCache struct {
	mu        sync.Mutex
	summaries map[string]string
	Hits      int
}

func NewMemorySummaryCache() *MemorySummaryCache {
	return &MemorySummaryCache{summaries: make(map[string]string)}
}

func (m *MemorySummaryCache) GetSummary(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	summary, ok := m.summaries[key]
	if !ok {
		return "", ErrNotFound
	}
	m.Hits++
	return summary, nil
}

func (m *MemorySummaryCache) PersistSummary(ctx context.Context, key string, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries[key] = summary
	return nil
}

func (m *MemorySummaryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.summaries)
}
