// Package signal turns bar streams into trading signals. Four independent
// strategies (RSI thresholds, MACD crossover, Bollinger Band touches, and
// SMA crossover) each hold their own incremental indicator state and emit at
// most one candidate per bar; the evaluator reduces the candidates to at
// most one signal.
package signal

import (
	"tadawul/internal/config"
	"tadawul/internal/domain"
)

// Strategy priority for confidence ties: MA cross beats MACD beats RSI beats
// Bollinger.
const (
	priorityBollinger = iota + 1
	priorityRSI
	priorityMACD
	priorityMACross
)

// candidate is one strategy's opinion at a bar.
type candidate struct {
	typ        domain.SignalType
	confidence float64
	priority   int
	indicators map[string]float64
	reason     string
}

// strategy consumes bars and emits zero or one candidate per bar. A strategy
// whose indicators are still warming up abstains; it never errors.
type strategy interface {
	onBar(bar domain.Bar) (candidate, bool)
}

// Evaluator runs all strategies for one symbol over a strictly ordered bar
// stream and combines their candidates. It is strictly causal: the decision
// at bar t depends only on bars up to and including t.
type Evaluator struct {
	symbol     string
	strategies []strategy
}

// NewEvaluator creates an Evaluator for the given symbol using the indicator
// configuration.
func NewEvaluator(symbol string, cfg config.Indicators) *Evaluator {
	return &Evaluator{
		symbol: symbol,
		strategies: []strategy{
			newMACrossStrategy(cfg.SMAShort, cfg.SMALong),
			newMACDStrategy(cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal),
			newRSIStrategy(cfg.RSIPeriod, cfg.RSIOversold, cfg.RSIOverbought),
			newBollingerStrategy(cfg.BollingerPeriod, cfg.BollingerStdDev),
		},
	}
}

// OnBar feeds the next bar to every strategy and returns at most one signal:
// the candidate with the highest confidence, ties broken by the fixed
// strategy priority. Returning false means hold.
func (e *Evaluator) OnBar(bar domain.Bar) (domain.Signal, bool) {
	var best candidate
	have := false

	for _, s := range e.strategies {
		c, ok := s.onBar(bar)
		if !ok {
			continue
		}
		if !have ||
			c.confidence > best.confidence ||
			(c.confidence == best.confidence && c.priority > best.priority) {
			best = c
			have = true
		}
	}

	if !have {
		return domain.Signal{}, false
	}

	return domain.Signal{
		Symbol:     e.symbol,
		Type:       best.typ,
		Price:      bar.Close,
		Timestamp:  bar.Timestamp,
		Confidence: best.confidence,
		Indicators: best.indicators,
		Reason:     best.reason,
	}, true
}
