// Package indicator provides technical indicator calculations over bar data.
//
// Each indicator is an incremental state machine: feed it one bar at a time
// with Update and read the current value once Ready reports true. Updates are
// O(1) (or O(period) where a rolling min/max is required) and hold no more
// history than the indicator's window, so a full-history replay is never
// needed.
//
// Series helpers in series.go run an indicator across a whole slice and
// return values aligned 1:1 with the input, with NaN marking warm-up entries.
package indicator

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when an indicator value is requested below
// its warm-up window.
var ErrInsufficientData = errors.New("insufficient data for indicator")

// At returns the series value at index i, or ErrInsufficientData when the
// index is inside the warm-up window (NaN) or out of range.
func At(series []float64, i int) (float64, error) {
	if i < 0 || i >= len(series) {
		return 0, ErrInsufficientData
	}
	if math.IsNaN(series[i]) {
		return 0, ErrInsufficientData
	}
	return series[i], nil
}

// Last returns the final defined value of the series, or ErrInsufficientData
// when the series is empty or still warming up.
func Last(series []float64) (float64, error) {
	return At(series, len(series)-1)
}
