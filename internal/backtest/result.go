package backtest

import (
	"time"

	"tadawul/internal/domain"
)

// EquityPoint is one sample of the portfolio value curve, aligned to a bar
// timestamp.
type EquityPoint struct {
	Timestamp time.Time
	Value     float64
}

// Result holds everything a single-symbol backtest produced.
type Result struct {
	Symbol         string
	InitialCapital float64
	FinalCapital   float64
	Equity         []EquityPoint
	Trades         []domain.Trade
	Metrics        Metrics
}
