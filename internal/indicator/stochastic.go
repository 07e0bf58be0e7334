package indicator

// Stochastic calculates the stochastic oscillator: %K locates the close
// within the high-low range of the last kPeriod bars, %D is an SMA of %K.
//
// A bar whose window has zero high-low range has no defined %K; such bars
// are skipped and do not feed %D.
type Stochastic struct {
	kPeriod int
	highs   []float64
	lows    []float64
	idx     int
	count   int
	k       float64
	kOK     bool
	d       *SMA
}

// NewStochastic creates a stochastic oscillator with the given %K and %D
// periods (typically 14 and 3).
func NewStochastic(kPeriod, dPeriod int) *Stochastic {
	return &Stochastic{
		kPeriod: kPeriod,
		highs:   make([]float64, kPeriod),
		lows:    make([]float64, kPeriod),
		d:       NewSMA(dPeriod),
	}
}

// Update feeds the next bar's high, low, and close.
func (s *Stochastic) Update(high, low, close float64) {
	s.highs[s.idx] = high
	s.lows[s.idx] = low
	s.idx = (s.idx + 1) % s.kPeriod
	s.count++

	s.kOK = false
	if s.count < s.kPeriod {
		return
	}

	hh, ll := s.highs[0], s.lows[0]
	for i := 1; i < s.kPeriod; i++ {
		if s.highs[i] > hh {
			hh = s.highs[i]
		}
		if s.lows[i] < ll {
			ll = s.lows[i]
		}
	}
	if hh == ll {
		return
	}

	s.k = (close - ll) / (hh - ll) * 100
	s.kOK = true
	s.d.Update(s.k)
}

// K returns the current %K. Meaningful only once KReady is true.
func (s *Stochastic) K() float64 { return s.k }

// KReady reports whether %K is defined at the latest bar.
func (s *Stochastic) KReady() bool { return s.kOK }

// D returns the current %D. Meaningful only once DReady is true.
func (s *Stochastic) D() float64 { return s.d.Value() }

// DReady reports whether %D has a full window of defined %K values.
func (s *Stochastic) DReady() bool { return s.kOK && s.d.Ready() }
