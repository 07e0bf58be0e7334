package indicator

import "math"

// Series helpers run an indicator across a whole input slice and return
// output aligned 1:1 with the input. Entries inside the warm-up window are
// NaN. Empty input yields empty output.

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMASeries returns the simple moving average of values.
func SMASeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	sma := NewSMA(period)
	for i, v := range values {
		sma.Update(v)
		if sma.Ready() {
			out[i] = sma.Value()
		}
	}
	return out
}

// EMASeries returns the exponential moving average of values.
func EMASeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	ema := NewEMA(period)
	for i, v := range values {
		ema.Update(v)
		if ema.Ready() {
			out[i] = ema.Value()
		}
	}
	return out
}

// RSISeries returns the relative strength index of values.
func RSISeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	rsi := NewRSI(period)
	for i, v := range values {
		rsi.Update(v)
		if rsi.Ready() {
			out[i] = rsi.Value()
		}
	}
	return out
}

// MACDSeries returns the MACD line, signal line, and histogram of values.
func MACDSeries(values []float64, fast, slow, signal int) (macd, signalLine, histogram []float64) {
	macd = nanSlice(len(values))
	signalLine = nanSlice(len(values))
	histogram = nanSlice(len(values))

	m := NewMACD(fast, slow, signal)
	for i, v := range values {
		m.Update(v)
		if m.LineReady() {
			macd[i] = m.Value()
		}
		if m.Ready() {
			signalLine[i] = m.Signal()
			histogram[i] = m.Histogram()
		}
	}
	return macd, signalLine, histogram
}

// BollingerSeries returns the upper, middle, and lower Bollinger Bands of
// values.
func BollingerSeries(values []float64, period int, k float64) (upper, middle, lower []float64) {
	upper = nanSlice(len(values))
	middle = nanSlice(len(values))
	lower = nanSlice(len(values))

	b := NewBollinger(period, k)
	for i, v := range values {
		b.Update(v)
		if b.Ready() {
			upper[i] = b.Upper()
			middle[i] = b.Middle()
			lower[i] = b.Lower()
		}
	}
	return upper, middle, lower
}

// StochasticSeries returns %K and %D for the given high/low/close series.
// The three inputs must be the same length.
func StochasticSeries(high, low, close []float64, kPeriod, dPeriod int) (k, d []float64) {
	k = nanSlice(len(close))
	d = nanSlice(len(close))

	s := NewStochastic(kPeriod, dPeriod)
	for i := range close {
		s.Update(high[i], low[i], close[i])
		if s.KReady() {
			k[i] = s.K()
		}
		if s.DReady() {
			d[i] = s.D()
		}
	}
	return k, d
}

// WilliamsRSeries returns Williams %R for the given high/low/close series.
func WilliamsRSeries(high, low, close []float64, period int) []float64 {
	out := nanSlice(len(close))
	w := NewWilliamsR(period)
	for i := range close {
		w.Update(high[i], low[i], close[i])
		if w.Ready() {
			out[i] = w.Value()
		}
	}
	return out
}

// ATRSeries returns the average true range for the given high/low/close
// series.
func ATRSeries(high, low, close []float64, period int) []float64 {
	out := nanSlice(len(close))
	a := NewATR(period)
	for i := range close {
		a.Update(high[i], low[i], close[i])
		if a.Ready() {
			out[i] = a.Value()
		}
	}
	return out
}
