// Package backtest replays historical bars through the signal evaluator and
// a cash/position ledger, producing an equity curve, a trade log, and
// derived performance metrics.
package backtest

import (
	"time"

	"tadawul/internal/domain"
)

// Ledger tracks cash, open positions, and the append-only trade log during a
// backtest. At most one position may be open per symbol; cash can never go
// negative because Buy refuses any order it cannot fully fund.
type Ledger struct {
	cash       float64
	commission float64
	positions  map[string]domain.Position
	trades     []domain.Trade
}

// NewLedger creates a Ledger with the given starting cash and commission
// rate (e.g. 0.001 for 0.1% per side).
func NewLedger(cash, commissionRate float64) *Ledger {
	return &Ledger{
		cash:       cash,
		commission: commissionRate,
		positions:  make(map[string]domain.Position),
	}
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() float64 { return l.cash }

// Position returns the open position for a symbol, if any.
func (l *Ledger) Position(symbol string) (domain.Position, bool) {
	p, ok := l.positions[symbol]
	return p, ok
}

// Trades returns the closed trades in execution order.
func (l *Ledger) Trades() []domain.Trade { return l.trades }

// Buy opens a position of the given size. It reports false without touching
// any state when the symbol already has an open position, shares is not
// positive, or cash cannot cover cost plus commission.
func (l *Ledger) Buy(symbol string, shares int64, price float64, ts time.Time) bool {
	if _, open := l.positions[symbol]; open {
		return false
	}
	if shares <= 0 {
		return false
	}

	cost := float64(shares) * price * (1 + l.commission)
	if cost > l.cash {
		return false
	}

	l.cash -= cost
	l.positions[symbol] = domain.Position{
		Symbol:     symbol,
		Shares:     shares,
		EntryPrice: price,
		EntryTime:  ts,
	}
	return true
}

// Sell closes the open position for a symbol at the given price, crediting
// the proceeds net of commission and appending the closed trade to the log.
// It reports false when the symbol has no open position.
func (l *Ledger) Sell(symbol string, price float64, ts time.Time) (domain.Trade, bool) {
	pos, open := l.positions[symbol]
	if !open {
		return domain.Trade{}, false
	}

	proceeds := float64(pos.Shares) * price * (1 - l.commission)
	costBasis := float64(pos.Shares) * pos.EntryPrice * (1 + l.commission)
	profit := proceeds - costBasis

	trade := domain.Trade{
		Symbol:     symbol,
		Shares:     pos.Shares,
		EntryPrice: pos.EntryPrice,
		EntryTime:  pos.EntryTime,
		ExitPrice:  price,
		ExitTime:   ts,
		Profit:     profit,
		ReturnPct:  profit / (pos.EntryPrice * float64(pos.Shares)) * 100,
	}

	l.cash += proceeds
	delete(l.positions, symbol)
	l.trades = append(l.trades, trade)
	return trade, true
}

// Value returns cash plus the mark-to-market value of every open position at
// the supplied closing prices. Symbols missing from prices are valued at
// their entry price.
func (l *Ledger) Value(prices map[string]float64) float64 {
	total := l.cash
	for sym, pos := range l.positions {
		price, ok := prices[sym]
		if !ok {
			price = pos.EntryPrice
		}
		total += float64(pos.Shares) * price
	}
	return total
}
