package domain

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestBarValid(t *testing.T) {
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	good := Bar{Symbol: "AAPL", Timestamp: ts, Open: 1, High: 2, Low: 0.5, Close: 1.5}
	if !good.Valid() {
		t.Error("valid bar reported invalid")
	}

	cases := map[string]Bar{
		"zero timestamp": {Symbol: "AAPL", Open: 1, High: 2, Low: 0.5, Close: 1.5},
		"nan close":      {Symbol: "AAPL", Timestamp: ts, Open: 1, High: 2, Low: 0.5, Close: math.NaN()},
		"inf high":       {Symbol: "AAPL", Timestamp: ts, Open: 1, High: math.Inf(1), Low: 0.5, Close: 1.5},
	}
	for name, bar := range cases {
		if bar.Valid() {
			t.Errorf("%s: invalid bar reported valid", name)
		}
	}
}

func TestSignalString(t *testing.T) {
	s := Signal{
		Symbol:     "AAPL",
		Type:       SignalBuy,
		Price:      185.5,
		Confidence: 0.8,
		Reason:     "golden cross: SMA10 above SMA50",
	}
	got := s.String()
	for _, want := range []string{"buy", "AAPL", "185.50", "0.80", "golden cross"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}
