// Package feed supplies ordered OHLCV bar sequences to the signal and
// backtest engines. Providers return bars sorted by ascending timestamp and
// report domain.ErrDataUnavailable when a symbol has no data in range.
package feed

import (
	"context"
	"time"

	"tadawul/internal/domain"
)

// BarProvider fetches bars for one symbol within [start, end].
type BarProvider interface {
	GetBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)
}
