// Package domain holds the core types shared across the tadawul engine:
// OHLCV bars, trading signals, positions, and closed trades.
package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrDataUnavailable indicates that the upstream market-data provider failed
// or returned no bars for the requested symbol and range.
var ErrDataUnavailable = errors.New("market data unavailable")

// SignalType identifies the direction of a trading signal. The absence of a
// signal means hold.
type SignalType string

const (
	SignalBuy  SignalType = "buy"
	SignalSell SignalType = "sell"
)

// Bar is a single OHLCV interval for one symbol.
type Bar struct {
	Symbol     string
	Timestamp  time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     int64
	TradeCount int64
	VWAP       float64
}

// Valid reports whether the bar carries usable price data. Bars with NaN or
// infinite OHLC fields, or a zero timestamp, are skipped during replay.
func (b Bar) Valid() bool {
	if b.Timestamp.IsZero() {
		return false
	}
	for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Signal is a single buy or sell recommendation for a symbol at a bar.
// Confidence is a heuristic score in [0, 1], not a calibrated probability.
// Indicators carries the snapshot of the indicator values that produced the
// signal.
type Signal struct {
	Symbol     string
	Type       SignalType
	Price      float64
	Timestamp  time.Time
	Confidence float64
	Indicators map[string]float64
	Reason     string
}

func (s Signal) String() string {
	return fmt.Sprintf("%s %s at %.2f (confidence %.2f) - %s",
		s.Type, s.Symbol, s.Price, s.Confidence, s.Reason)
}

// Position is an open holding: a positive share count bought at EntryPrice.
type Position struct {
	Symbol     string
	Shares     int64
	EntryPrice float64
	EntryTime  time.Time
}

// Trade is a closed round trip. Profit is net of entry and exit commission.
type Trade struct {
	Symbol     string
	Shares     int64
	EntryPrice float64
	EntryTime  time.Time
	ExitPrice  float64
	ExitTime   time.Time
	Profit     float64
	ReturnPct  float64
}
