package feed

import (
	"context"
	"log/slog"
	"time"

	"tadawul/internal/domain"
	"tadawul/internal/store"
)

// Compile-time interface check.
var _ BarProvider = (*CachingProvider)(nil)

// CachingProvider is a read-through cache in front of a remote BarProvider.
// Bars already in the Parquet store are served locally; misses are fetched
// from the remote and written back.
type CachingProvider struct {
	cache  store.BarStore
	remote BarProvider
	market string
	log    *slog.Logger
}

// NewCachingProvider wraps remote with the given bar store. market selects
// the store partition (e.g. "us").
func NewCachingProvider(cache store.BarStore, remote BarProvider, market string) *CachingProvider {
	return &CachingProvider{
		cache:  cache,
		remote: remote,
		market: market,
		log:    slog.Default().With("feed", "cache"),
	}
}

// GetBars serves bars from the local store when present, otherwise fetches
// from the remote provider and persists the result. Cache write failures are
// logged, not fatal: the fetched bars are still returned.
func (p *CachingProvider) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	cached, err := p.cache.ReadBars(ctx, symbol, p.market, start, end)
	if err == nil && len(cached) > 0 {
		p.log.Debug("cache hit", "symbol", symbol, "count", len(cached))
		return cached, nil
	}

	bars, err := p.remote.GetBars(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if err := p.cache.WriteBars(ctx, bars); err != nil {
		p.log.Warn("caching bars failed", "symbol", symbol, "err", err)
	}
	return bars, nil
}
