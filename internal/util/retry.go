package util

import (
	"context"
	"time"
)

// Retry calls fn up to maxAttempts times with a fixed delay between
// attempts. It returns nil on the first successful call, or the last error
// if all attempts fail. When fn reports the error as permanent via the
// optional permanent predicate, retrying stops immediately. The function
// respects context cancellation between attempts.
func Retry(ctx context.Context, maxAttempts int, delay time.Duration, fn func() error, permanent func(error) bool) error {
	var err error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if permanent != nil && permanent(err) {
			return err
		}

		// Don't sleep after the last failed attempt.
		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return err
}
