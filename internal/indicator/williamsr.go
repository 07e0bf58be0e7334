package indicator

// WilliamsR calculates Williams %R: the close relative to the highest high
// over the window, scaled to [-100, 0]. A zero high-low range leaves the
// value undefined for that bar.
type WilliamsR struct {
	period  int
	highs   []float64
	lows    []float64
	idx     int
	count   int
	current float64
	ok      bool
}

// NewWilliamsR creates a Williams %R indicator with the given period
// (typically 14).
func NewWilliamsR(period int) *WilliamsR {
	return &WilliamsR{
		period: period,
		highs:  make([]float64, period),
		lows:   make([]float64, period),
	}
}

// Update feeds the next bar's high, low, and close.
func (w *WilliamsR) Update(high, low, close float64) {
	w.highs[w.idx] = high
	w.lows[w.idx] = low
	w.idx = (w.idx + 1) % w.period
	w.count++

	w.ok = false
	if w.count < w.period {
		return
	}

	hh, ll := w.highs[0], w.lows[0]
	for i := 1; i < w.period; i++ {
		if w.highs[i] > hh {
			hh = w.highs[i]
		}
		if w.lows[i] < ll {
			ll = w.lows[i]
		}
	}
	if hh == ll {
		return
	}

	w.current = -100 * (hh - close) / (hh - ll)
	w.ok = true
}

// Value returns the current %R in [-100, 0]. Meaningful only once Ready is
// true.
func (w *WilliamsR) Value() float64 { return w.current }

// Ready reports whether %R is defined at the latest bar.
func (w *WilliamsR) Ready() bool { return w.ok }
