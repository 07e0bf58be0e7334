package indicator

import "math"

// Bollinger calculates Bollinger Bands: an SMA middle band with upper and
// lower bands k sample standard deviations away.
type Bollinger struct {
	period int
	k      float64
	buf    []float64
	idx    int
	count  int
	sum    float64
	sumSq  float64
}

// NewBollinger creates a Bollinger Bands indicator with the given period and
// standard deviation multiplier (typically 20 and 2).
func NewBollinger(period int, k float64) *Bollinger {
	return &Bollinger{
		period: period,
		k:      k,
		buf:    make([]float64, period),
	}
}

// Update feeds the next closing price.
func (b *Bollinger) Update(price float64) {
	if b.count >= b.period {
		old := b.buf[b.idx]
		b.sum -= old
		b.sumSq -= old * old
	}

	b.buf[b.idx] = price
	b.sum += price
	b.sumSq += price * price
	b.idx = (b.idx + 1) % b.period
	b.count++
}

// Ready reports whether a full window has been accumulated.
func (b *Bollinger) Ready() bool { return b.count >= b.period }

// Middle returns the middle band (the window SMA).
func (b *Bollinger) Middle() float64 { return b.sum / float64(b.period) }

// Upper returns the upper band.
func (b *Bollinger) Upper() float64 { return b.Middle() + b.k*b.stddev() }

// Lower returns the lower band.
func (b *Bollinger) Lower() float64 { return b.Middle() - b.k*b.stddev() }

// stddev returns the sample standard deviation of the window. Floating-point
// cancellation can nudge the variance fractionally below zero on constant
// input; clamp it.
func (b *Bollinger) stddev() float64 {
	if b.period < 2 {
		return 0
	}
	n := float64(b.period)
	mean := b.sum / n
	variance := (b.sumSq - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
