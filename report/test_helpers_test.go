package report

import (
	"context"
	"studentrecords/llm"
	"studentrecords/srv"
	"studentrecords/srv/sqlite"
	"sync"
	"testing"
)

// fakeGenerator replays fragments and records the prompts it was given.
type fakeGenerator struct {
	mu        sync.Mutex
	fragments []string
	err       error
	prompts   []string
}

func (g *fakeGenerator) ModelName() string { return "fake-model" }

func (g *fakeGenerator) Stream(ctx context.Context, prompt string, fn llm.FragmentFunc) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	if g.err != nil {
		return "", g.err
	}
	var result string
	for _, f := range g.fragments {
		if fn != nil {
			if err := fn(f); err != nil {
				return "", err
			}
		}
		result += f
	}
	return result, nil
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func newTestService(t *testing.T) (*srv.Delegator, *srv.MemorySummaryCache) {
	t.Helper()
	cache := srv.NewMemorySummaryCache()
	return srv.NewDelegator(sqlite.NewTestSqliteStorage(t, "report_test"), cache), cache
}
