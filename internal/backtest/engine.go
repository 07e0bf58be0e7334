package backtest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"tadawul/internal/config"
	"tadawul/internal/domain"
	"tadawul/internal/feed"
	"tadawul/internal/signal"
)

// Engine replays historical bars for a symbol through a fresh signal
// evaluator and a ledger, one bar at a time. The loop is strictly
// sequential: the decision at bar t sees only bars up to t, and the run is
// deterministic for identical bars and configuration.
type Engine struct {
	provider feed.BarProvider
	cfg      *config.Config
	log      *slog.Logger
}

// New creates an Engine reading bars from the given provider.
func New(provider feed.BarProvider, cfg *config.Config, log *slog.Logger) *Engine {
	return &Engine{
		provider: provider,
		cfg:      cfg,
		log:      log.With("component", "backtest"),
	}
}

// Run backtests one symbol over [start, end] committing positionSize
// (a fraction of available cash) to each new position. It fails with
// domain.ErrDataUnavailable when the symbol has no bars in range, and with
// the context error when cancelled. Cancellation is honored only at bar
// boundaries, so a returned Result is never half-updated.
func (e *Engine) Run(ctx context.Context, symbol string, start, end time.Time, positionSize float64) (*Result, error) {
	if positionSize <= 0 || positionSize > 1 {
		return nil, fmt.Errorf("position size %v outside (0, 1]", positionSize)
	}

	bars, err := e.provider.GetBars(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("backtest %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("backtest %s [%s, %s]: %w",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), domain.ErrDataUnavailable)
	}

	eval := signal.NewEvaluator(symbol, e.cfg.Indicators)
	ledger := NewLedger(e.cfg.Backtest.InitialCapital, e.cfg.Backtest.CommissionRate)

	result := &Result{
		Symbol:         symbol,
		InitialCapital: e.cfg.Backtest.InitialCapital,
		Equity:         make([]EquityPoint, 0, len(bars)),
	}

	var lastBar domain.Bar
	haveBar := false
	equity := e.cfg.Backtest.InitialCapital

	for _, bar := range bars {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// A bar with missing price data is skipped entirely: no evaluation,
		// equity carried forward.
		if !bar.Valid() {
			result.Equity = append(result.Equity, EquityPoint{Timestamp: bar.Timestamp, Value: equity})
			continue
		}

		if sig, ok := eval.OnBar(bar); ok {
			e.apply(ledger, sig, bar, positionSize)
		}

		equity = ledger.Value(map[string]float64{symbol: bar.Close})
		result.Equity = append(result.Equity, EquityPoint{Timestamp: bar.Timestamp, Value: equity})
		lastBar = bar
		haveBar = true
	}

	// Force-close anything still open at the final bar so unrealized P&L is
	// never dropped.
	if haveBar {
		if trade, ok := ledger.Sell(symbol, lastBar.Close, lastBar.Timestamp); ok {
			e.log.Debug("force close", "symbol", symbol, "shares", trade.Shares, "profit", trade.Profit)
		}
	}

	result.FinalCapital = ledger.Cash()
	result.Trades = ledger.Trades()
	result.Metrics = ComputeMetrics(result)

	e.log.Info("backtest complete",
		"symbol", symbol,
		"bars", len(bars),
		"trades", result.Metrics.TotalTrades,
		"returnPct", result.Metrics.TotalReturnPct,
	)
	return result, nil
}

// apply executes a signal against the ledger. A Buy while a position is open
// and a Sell while flat are no-ops; a Buy the cash cannot fund is skipped
// and logged, never surfaced as an error.
func (e *Engine) apply(ledger *Ledger, sig domain.Signal, bar domain.Bar, positionSize float64) {
	switch sig.Type {
	case domain.SignalBuy:
		if _, open := ledger.Position(sig.Symbol); open {
			return
		}
		shares := int64(math.Floor(ledger.Cash() * positionSize / bar.Close))
		if shares <= 0 {
			return
		}
		if ledger.Buy(sig.Symbol, shares, bar.Close, bar.Timestamp) {
			e.log.Debug("opened position",
				"symbol", sig.Symbol, "shares", shares, "price", bar.Close, "reason", sig.Reason)
		} else {
			e.log.Debug("buy skipped, insufficient cash",
				"symbol", sig.Symbol, "shares", shares, "price", bar.Close)
		}

	case domain.SignalSell:
		if trade, ok := ledger.Sell(sig.Symbol, bar.Close, bar.Timestamp); ok {
			e.log.Debug("closed position",
				"symbol", sig.Symbol, "shares", trade.Shares, "price", bar.Close, "profit", trade.Profit)
		}
	}
}
