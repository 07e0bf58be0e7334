package indicator

// EMA calculates the Exponential Moving Average with smoothing factor
// 2/(period+1), seeded from the first value it sees. O(1) per update.
type EMA struct {
	period     int
	multiplier float64
	current    float64
	count      int
}

// NewEMA creates an EMA indicator with the given period.
func NewEMA(period int) *EMA {
	return &EMA{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

// Update feeds the next price.
func (e *EMA) Update(price float64) {
	e.count++
	if e.count == 1 {
		e.current = price
		return
	}
	e.current = price*e.multiplier + e.current*(1-e.multiplier)
}

// Value returns the current EMA. Meaningful only once Ready is true.
func (e *EMA) Value() float64 { return e.current }

// Ready reports whether the EMA has been seeded.
func (e *EMA) Ready() bool { return e.count >= 1 }
