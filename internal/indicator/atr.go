package indicator

import "math"

// ATR calculates the Average True Range: a rolling mean of the true range,
// where true range is the largest of high-low, |high-prevClose|, and
// |low-prevClose|. The first bar has no previous close; its true range is
// the plain high-low range.
type ATR struct {
	period    int
	prevClose float64
	seeded    bool
	tr        *SMA
}

// NewATR creates an ATR indicator with the given period (typically 14).
func NewATR(period int) *ATR {
	return &ATR{
		period: period,
		tr:     NewSMA(period),
	}
}

// Update feeds the next bar's high, low, and close.
func (a *ATR) Update(high, low, close float64) {
	tr := high - low
	if a.seeded {
		if v := math.Abs(high - a.prevClose); v > tr {
			tr = v
		}
		if v := math.Abs(low - a.prevClose); v > tr {
			tr = v
		}
	}
	a.tr.Update(tr)
	a.prevClose = close
	a.seeded = true
}

// Value returns the current ATR. Meaningful only once Ready is true.
func (a *ATR) Value() float64 { return a.tr.Value() }

// Ready reports whether a full window of true ranges has accumulated.
func (a *ATR) Ready() bool { return a.tr.Ready() }
