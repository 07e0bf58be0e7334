package backtest

import "math"

// tradingDaysPerYear annualizes the Sharpe ratio for daily bars.
const tradingDaysPerYear = 252

// Metrics are the derived performance numbers for one backtest run.
type Metrics struct {
	TotalReturn      float64 // final minus initial capital
	TotalReturnPct   float64
	SharpeRatio      float64 // annualized, 0 when return variance is 0
	MaxDrawdown      float64 // peak-to-trough, as a non-positive percentage
	WinRate          float64 // percentage of profitable trades, 0 with no trades
	TotalTrades      int
	ProfitableTrades int
	LosingTrades     int
}

// ComputeMetrics derives performance metrics from a result in a single pass
// over the equity curve and trade log. It is pure: calling it twice on the
// same result yields identical metrics.
func ComputeMetrics(r *Result) Metrics {
	var m Metrics

	m.TotalReturn = r.FinalCapital - r.InitialCapital
	if r.InitialCapital != 0 {
		m.TotalReturnPct = m.TotalReturn / r.InitialCapital * 100
	}

	// Daily returns: pct change of the equity curve, first element dropped.
	var returns []float64
	for i := 1; i < len(r.Equity); i++ {
		prev := r.Equity[i-1].Value
		if prev == 0 {
			continue
		}
		returns = append(returns, (r.Equity[i].Value-prev)/prev)
	}

	if sd := stddev(returns); sd != 0 {
		m.SharpeRatio = mean(returns) / sd * math.Sqrt(tradingDaysPerYear)
	}

	// Maximum drawdown against the running peak.
	peak := math.Inf(-1)
	for _, p := range r.Equity {
		if p.Value > peak {
			peak = p.Value
		}
		if peak > 0 {
			dd := (p.Value - peak) / peak * 100
			if dd < m.MaxDrawdown {
				m.MaxDrawdown = dd
			}
		}
	}

	m.TotalTrades = len(r.Trades)
	for _, t := range r.Trades {
		if t.Profit > 0 {
			m.ProfitableTrades++
		} else {
			m.LosingTrades++
		}
	}
	if m.TotalTrades > 0 {
		m.WinRate = float64(m.ProfitableTrades) / float64(m.TotalTrades) * 100
	}

	return m
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation. Fewer than two samples have no
// spread.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mu := mean(xs)
	var sq float64
	for _, x := range xs {
		d := x - mu
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)-1))
}
