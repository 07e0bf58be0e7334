package signal

import (
	"fmt"

	"tadawul/internal/domain"
	"tadawul/internal/indicator"
)

// ---------------------------------------------------------------------------
// RSI thresholds
// ---------------------------------------------------------------------------

type rsiStrategy struct {
	rsi        *indicator.RSI
	oversold   float64
	overbought float64
}

func newRSIStrategy(period int, oversold, overbought float64) *rsiStrategy {
	return &rsiStrategy{
		rsi:        indicator.NewRSI(period),
		oversold:   oversold,
		overbought: overbought,
	}
}

func (s *rsiStrategy) onBar(bar domain.Bar) (candidate, bool) {
	s.rsi.Update(bar.Close)
	if !s.rsi.Ready() {
		return candidate{}, false
	}

	v := s.rsi.Value()
	switch {
	case v < s.oversold:
		return candidate{
			typ:        domain.SignalBuy,
			confidence: min(1, (s.oversold-v)/10),
			priority:   priorityRSI,
			indicators: map[string]float64{"rsi": v},
			reason:     fmt.Sprintf("RSI oversold at %.2f", v),
		}, true
	case v > s.overbought:
		return candidate{
			typ:        domain.SignalSell,
			confidence: min(1, (v-s.overbought)/10),
			priority:   priorityRSI,
			indicators: map[string]float64{"rsi": v},
			reason:     fmt.Sprintf("RSI overbought at %.2f", v),
		}, true
	}
	return candidate{}, false
}

// ---------------------------------------------------------------------------
// MACD crossover
// ---------------------------------------------------------------------------

type macdStrategy struct {
	macd       *indicator.MACD
	prevMACD   float64
	prevSignal float64
	prevReady  bool
}

func newMACDStrategy(fast, slow, signalPeriod int) *macdStrategy {
	return &macdStrategy{macd: indicator.NewMACD(fast, slow, signalPeriod)}
}

func (s *macdStrategy) onBar(bar domain.Bar) (candidate, bool) {
	s.macd.Update(bar.Close)
	if !s.macd.Ready() {
		s.prevReady = false
		return candidate{}, false
	}

	m, sig := s.macd.Value(), s.macd.Signal()
	prevM, prevS, prevOK := s.prevMACD, s.prevSignal, s.prevReady
	s.prevMACD, s.prevSignal, s.prevReady = m, sig, true

	// Crossover needs two consecutive defined bars.
	if !prevOK {
		return candidate{}, false
	}

	snapshot := map[string]float64{"macd": m, "macd_signal": sig}
	switch {
	case prevM <= prevS && m > sig:
		return candidate{
			typ:        domain.SignalBuy,
			confidence: 0.7,
			priority:   priorityMACD,
			indicators: snapshot,
			reason:     "MACD bullish crossover",
		}, true
	case prevM >= prevS && m < sig:
		return candidate{
			typ:        domain.SignalSell,
			confidence: 0.7,
			priority:   priorityMACD,
			indicators: snapshot,
			reason:     "MACD bearish crossover",
		}, true
	}
	return candidate{}, false
}

// ---------------------------------------------------------------------------
// Bollinger Band touches
// ---------------------------------------------------------------------------

type bollingerStrategy struct {
	bands *indicator.Bollinger
}

func newBollingerStrategy(period int, k float64) *bollingerStrategy {
	return &bollingerStrategy{bands: indicator.NewBollinger(period, k)}
}

func (s *bollingerStrategy) onBar(bar domain.Bar) (candidate, bool) {
	s.bands.Update(bar.Close)
	if !s.bands.Ready() {
		return candidate{}, false
	}

	upper, lower := s.bands.Upper(), s.bands.Lower()

	// A flat window collapses the bands onto the price itself; a touch there
	// carries no information.
	if upper == lower {
		return candidate{}, false
	}

	switch {
	case bar.Close <= lower:
		return candidate{
			typ:        domain.SignalBuy,
			confidence: 0.6,
			priority:   priorityBollinger,
			indicators: map[string]float64{"bb_lower": lower, "price": bar.Close},
			reason:     "price at Bollinger lower band",
		}, true
	case bar.Close >= upper:
		return candidate{
			typ:        domain.SignalSell,
			confidence: 0.6,
			priority:   priorityBollinger,
			indicators: map[string]float64{"bb_upper": upper, "price": bar.Close},
			reason:     "price at Bollinger upper band",
		}, true
	}
	return candidate{}, false
}

// ---------------------------------------------------------------------------
// SMA crossover
// ---------------------------------------------------------------------------

type maCrossStrategy struct {
	short       *indicator.SMA
	long        *indicator.SMA
	shortPeriod int
	longPeriod  int
	prevShort   float64
	prevLong    float64
	prevReady   bool
}

func newMACrossStrategy(shortPeriod, longPeriod int) *maCrossStrategy {
	return &maCrossStrategy{
		short:       indicator.NewSMA(shortPeriod),
		long:        indicator.NewSMA(longPeriod),
		shortPeriod: shortPeriod,
		longPeriod:  longPeriod,
	}
}

func (s *maCrossStrategy) onBar(bar domain.Bar) (candidate, bool) {
	s.short.Update(bar.Close)
	s.long.Update(bar.Close)
	if !s.short.Ready() || !s.long.Ready() {
		return candidate{}, false
	}

	sv, lv := s.short.Value(), s.long.Value()
	prevS, prevL, prevOK := s.prevShort, s.prevLong, s.prevReady
	s.prevShort, s.prevLong, s.prevReady = sv, lv, true

	// The bar where the long SMA first becomes defined counts as a crossing
	// boundary: an already-crossed pair fires there.
	snapshot := map[string]float64{"sma_short": sv, "sma_long": lv}
	switch {
	case sv > lv && (!prevOK || prevS <= prevL):
		return candidate{
			typ:        domain.SignalBuy,
			confidence: 0.8,
			priority:   priorityMACross,
			indicators: snapshot,
			reason:     fmt.Sprintf("golden cross: SMA%d above SMA%d", s.shortPeriod, s.longPeriod),
		}, true
	case sv < lv && (!prevOK || prevS >= prevL):
		return candidate{
			typ:        domain.SignalSell,
			confidence: 0.8,
			priority:   priorityMACross,
			indicators: snapshot,
			reason:     fmt.Sprintf("death cross: SMA%d below SMA%d", s.shortPeriod, s.longPeriod),
		}, true
	}
	return candidate{}, false
}
