package srv

import (
	"context"
	"errors"
	"io"
)

/* Delegates storage calls to the relational store and summary cache calls to
 * the configured cache, which may be a no-op */
type Delegator struct {
	Storage
	cache SummaryCache
}

func NewDelegator(storage Storage, cache SummaryCache) *Delegator {
	if cache == nil {
		cache = NoopSummaryCache{}
	}
	return &Delegator{
		Storage: storage,
		cache:   cache,
	}
}

/* implements SummaryCache interface */
func (d Delegator) GetSummary(ctx context.Context, key string) (string, error) {
	return d.cache.GetSummary(ctx, key)
}

/* implements SummaryCache interface */
func (d Delegator) PersistSummary(ctx context.Context, key string, summary string) error {
	return d.cache.PersistSummary(ctx, key, summary)
}

// Close releases the cache connection and then the storage, when either holds
// one.
func (d Delegator) Close() error {
	var errs []error
	if closer, ok := d.cache.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	if closer, ok := d.Storage.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

// NoopSummaryCache is used when no cache backend is configured: every lookup
// misses and writes are dropped.
type NoopSummaryCache struct{}

func (NoopSummaryCache) GetSummary(ctx context.Context, key string) (string, error) {
	return "", ErrNotFound
}

func (NoopSummaryCache) PersistSummary(ctx context.Context, key string, summary string) error {
	return nil
}

var _ Service = (*Delegator)(nil)
