package indicator

// RSI calculates the Relative Strength Index from the rolling mean of gains
// and losses over the last period price changes.
//
// A window containing no movement at all (every delta zero) has no defined
// RSI: Ready reports false for such bars, so consumers abstain rather than
// divide zero by zero. When losses are zero but gains are not, RSI is
// exactly 100.
type RSI struct {
	period    int
	deltas    []float64 // circular buffer of price changes
	idx       int
	count     int // deltas received
	prevClose float64
	seeded    bool
	sumGain   float64
	sumLoss   float64
}

// NewRSI creates an RSI indicator with the given period (typically 14).
func NewRSI(period int) *RSI {
	return &RSI{
		period: period,
		deltas: make([]float64, period),
	}
}

// Update feeds the next closing price.
func (r *RSI) Update(price float64) {
	if !r.seeded {
		r.prevClose = price
		r.seeded = true
		return
	}

	delta := price - r.prevClose
	r.prevClose = price

	if r.count >= r.period {
		old := r.deltas[r.idx]
		if old > 0 {
			r.sumGain -= old
		} else {
			r.sumLoss -= -old
		}
	}

	r.deltas[r.idx] = delta
	if delta > 0 {
		r.sumGain += delta
	} else {
		r.sumLoss += -delta
	}
	r.idx = (r.idx + 1) % r.period
	r.count++
}

// Ready reports whether a full window of price changes has accumulated and
// the window contains at least one non-zero move.
func (r *RSI) Ready() bool {
	return r.count >= r.period && (r.sumGain > 0 || r.sumLoss > 0)
}

// Value returns the current RSI in [0, 100]. Meaningful only once Ready is
// true.
func (r *RSI) Value() float64 {
	if r.sumLoss == 0 {
		return 100
	}
	rs := r.sumGain / r.sumLoss
	return 100 - 100/(1+rs)
}
