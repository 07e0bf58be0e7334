package signal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tadawul/internal/config"
	"tadawul/internal/domain"
	"tadawul/internal/feed"
)

// lookbackMonths is how much history Latest pulls before evaluating the most
// recent bar. Six months comfortably covers the longest default warm-up
// (SMA 50).
const lookbackMonths = 6

// Generator produces the latest signal for a symbol from freshly fetched
// bars.
type Generator struct {
	provider feed.BarProvider
	cfg      config.Indicators
	log      *slog.Logger
}

// NewGenerator creates a Generator reading bars from the given provider.
func NewGenerator(provider feed.BarProvider, cfg config.Indicators, log *slog.Logger) *Generator {
	return &Generator{
		provider: provider,
		cfg:      cfg,
		log:      log.With("component", "signal-generator"),
	}
}

// Latest fetches recent bars for the symbol, replays them through a fresh
// Evaluator, and returns the signal produced at the most recent bar. A nil
// signal with nil error means hold.
func (g *Generator) Latest(ctx context.Context, symbol string) (*domain.Signal, error) {
	end := time.Now()
	start := end.AddDate(0, -lookbackMonths, 0)

	bars, err := g.provider.GetBars(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching bars for %s: %w", symbol, err)
	}

	eval := NewEvaluator(symbol, g.cfg)

	var latest *domain.Signal
	for _, bar := range bars {
		if !bar.Valid() {
			continue
		}
		sig, ok := eval.OnBar(bar)
		if ok {
			s := sig
			latest = &s
		} else {
			latest = nil
		}
	}

	if latest != nil {
		g.log.Info("signal", "symbol", symbol, "type", latest.Type,
			"price", latest.Price, "confidence", latest.Confidence, "reason", latest.Reason)
	}
	return latest, nil
}
