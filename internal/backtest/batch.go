package backtest

import (
	"context"
	"errors"
	"sync"
	"time"

	"tadawul/internal/domain"
	"tadawul/internal/util"
)

// SymbolResult is the outcome of one symbol in a batch run: exactly one of
// Result or Err is set.
type SymbolResult struct {
	Result *Result
	Err    error
}

// RunBatch backtests many symbols concurrently through a bounded worker
// pool. Each symbol gets its own timeout and retry policy, and a failure in
// one symbol never affects its siblings. The returned map has an entry for
// every requested symbol; when the parent context is cancelled, symbols not
// yet dispatched are recorded with the context error rather than dropped.
func (e *Engine) RunBatch(ctx context.Context, symbols []string, start, end time.Time, positionSize float64) map[string]SymbolResult {
	results := make(map[string]SymbolResult, len(symbols))
	if len(symbols) == 0 {
		return results
	}

	workers := e.cfg.Screen.MaxWorkers
	if workers > len(symbols) {
		workers = len(symbols)
	}

	jobs := make(chan string)
	out := make(chan struct {
		symbol string
		res    SymbolResult
	}, len(symbols))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				res, err := e.runOne(ctx, symbol, start, end, positionSize)
				out <- struct {
					symbol string
					res    SymbolResult
				}{symbol, SymbolResult{Result: res, Err: err}}
			}
		}()
	}

	dispatched := make(map[string]bool, len(symbols))
dispatch:
	for _, symbol := range symbols {
		select {
		case jobs <- symbol:
			dispatched[symbol] = true
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(out)
	}()

	for r := range out {
		results[r.symbol] = r.res
	}
	for _, symbol := range symbols {
		if _, ok := results[symbol]; !ok && !dispatched[symbol] {
			results[symbol] = SymbolResult{Err: ctx.Err()}
		}
	}
	return results
}

// runOne wraps a single Run with the per-symbol timeout and retry policy.
// Missing data and parent-context cancellation are permanent; everything
// else, including an attempt that ran out its own deadline, is assumed
// transient and retried on a fixed delay.
func (e *Engine) runOne(ctx context.Context, symbol string, start, end time.Time, positionSize float64) (*Result, error) {
	attempts := 1 + e.cfg.Screen.MaxRetries
	delay := time.Duration(e.cfg.Screen.RetryDelayMS) * time.Millisecond

	var res *Result
	err := util.Retry(ctx, attempts, delay, func() error {
		runCtx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.Screen.FetchTimeout)*time.Second)
		defer cancel()

		var runErr error
		res, runErr = e.Run(runCtx, symbol, start, end, positionSize)
		return runErr
	}, func(err error) bool {
		if errors.Is(err, domain.ErrDataUnavailable) {
			return true
		}
		// A deadline hit by the per-attempt timeout is a transient fetch
		// failure; only the parent context being done ends the retries.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ctx.Err() != nil
		}
		return false
	})
	if err != nil {
		e.log.Warn("symbol failed", "symbol", symbol, "error", err)
		return nil, err
	}
	return res, nil
}
