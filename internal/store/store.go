// Package store defines storage interfaces for persisting and retrieving
// bars, signals, and closed trades.
package store

import (
	"context"
	"time"

	"tadawul/internal/domain"
)

// BarStore persists and retrieves OHLCV bar data.
type BarStore interface {
	// WriteBars persists a batch of bars to storage.
	WriteBars(ctx context.Context, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol and market within [start, end].
	ReadBars(ctx context.Context, symbol string, market string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols available in the given market.
	ListSymbols(ctx context.Context, market string) ([]string, error)
}

// SignalStore persists generated trading signals.
type SignalStore interface {
	// SaveSignal inserts a new signal into storage.
	SaveSignal(ctx context.Context, sig *domain.Signal) error

	// ListSignals returns the most recent signals for a symbol, newest first,
	// up to limit. An empty symbol matches all symbols.
	ListSignals(ctx context.Context, symbol string, limit int) ([]domain.Signal, error)
}

// TradeJournal persists closed trades produced by backtest runs.
type TradeJournal interface {
	// SaveTrades appends a batch of closed trades to the journal.
	SaveTrades(ctx context.Context, trades []domain.Trade) error

	// ListTrades returns all journaled trades for a symbol, oldest first.
	ListTrades(ctx context.Context, symbol string) ([]domain.Trade, error)
}
