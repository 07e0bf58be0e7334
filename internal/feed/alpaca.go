package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"tadawul/internal/domain"
	"tadawul/internal/util"
)

// Compile-time interface check.
var _ BarProvider = (*AlpacaProvider)(nil)

// AlpacaProvider fetches daily bars from the Alpaca market-data API, behind
// a token-bucket rate limiter.
type AlpacaProvider struct {
	client  *marketdata.Client
	limiter *util.RateLimiter
	log     *slog.Logger
}

// NewAlpacaProvider creates an AlpacaProvider with the given credentials.
// ratePerMin bounds the API call rate; dataURL overrides the default
// endpoint when non-empty.
func NewAlpacaProvider(apiKey, apiSecret, dataURL string, ratePerMin int) *AlpacaProvider {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}

	return &AlpacaProvider{
		client:  marketdata.NewClient(opts),
		limiter: util.NewRateLimiter(ratePerMin),
		log:     slog.Default().With("feed", "alpaca"),
	}
}

// GetBars fetches daily bars for the symbol within [start, end], sorted by
// ascending timestamp. An empty response maps to domain.ErrDataUnavailable.
func (p *AlpacaProvider) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	alpacaBars, err := p.client.GetBars(strings.ToUpper(symbol), marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return nil, fmt.Errorf("GetBars %s: %w", symbol, err)
	}
	if len(alpacaBars) == 0 {
		return nil, fmt.Errorf("%s [%s, %s]: %w",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), domain.ErrDataUnavailable)
	}

	bars := make([]domain.Bar, 0, len(alpacaBars))
	for _, ab := range alpacaBars {
		bars = append(bars, domain.Bar{
			Symbol:     strings.ToUpper(symbol),
			Timestamp:  ab.Timestamp,
			Open:       ab.Open,
			High:       ab.High,
			Low:        ab.Low,
			Close:      ab.Close,
			Volume:     int64(ab.Volume),
			TradeCount: int64(ab.TradeCount),
			VWAP:       ab.VWAP,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp.Before(bars[j].Timestamp) })

	p.log.Debug("fetched bars", "symbol", symbol, "count", len(bars))
	return bars, nil
}
