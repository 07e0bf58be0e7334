package indicator

// MACD calculates the Moving Average Convergence Divergence: the difference
// between a fast and a slow EMA, with a signal line that is an EMA of the
// MACD line itself. The histogram is always exactly MACD minus signal.
//
// The MACD line is considered defined once the slow period has elapsed; the
// signal line once it has seen signalPeriod MACD values. Gating the signal
// line this way avoids the spurious crossover that a freshly seeded signal
// EMA (equal to the MACD line by construction) would report on any trend.
type MACD struct {
	fast      *EMA
	slow      *EMA
	signal    *EMA
	count     int // prices received
	sigCount  int // MACD values fed to the signal EMA
	sigPeriod int
}

// NewMACD creates a MACD indicator with the given fast, slow, and signal
// periods (typically 12, 26, 9).
func NewMACD(fastPeriod, slowPeriod, signalPeriod int) *MACD {
	return &MACD{
		fast:      NewEMA(fastPeriod),
		slow:      NewEMA(slowPeriod),
		signal:    NewEMA(signalPeriod),
		sigPeriod: signalPeriod,
	}
}

// Update feeds the next closing price.
func (m *MACD) Update(price float64) {
	m.fast.Update(price)
	m.slow.Update(price)
	m.count++

	if m.count >= m.slowPeriod() {
		m.signal.Update(m.Value())
		m.sigCount++
	}
}

func (m *MACD) slowPeriod() int { return m.slow.period }

// Value returns the current MACD line (fast EMA minus slow EMA).
func (m *MACD) Value() float64 { return m.fast.Value() - m.slow.Value() }

// Signal returns the current signal line.
func (m *MACD) Signal() float64 { return m.signal.Value() }

// Histogram returns MACD minus signal. The identity holds exactly at every
// defined index.
func (m *MACD) Histogram() float64 { return m.Value() - m.Signal() }

// LineReady reports whether the MACD line is defined.
func (m *MACD) LineReady() bool { return m.count >= m.slowPeriod() }

// Ready reports whether both the MACD line and the signal line are defined.
func (m *MACD) Ready() bool { return m.LineReady() && m.sigCount >= m.sigPeriod }
