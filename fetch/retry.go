package fetch

import (
	"context"
	"time"
)

// AttemptFunc issues a single attempt for a URL and returns the response body.
type AttemptFunc func(ctx context.Context, url string) (string, error)

// Retry resolves a URL with up to maxAttempts attempts, waiting delay between
// failed attempts. When gate is non-nil every attempt first passes the rate
// gate, so failed attempts still consume budget. It returns the body, the
// number of attempts issued, and the last error on exhaustion.
func Retry(ctx context.Context, url string, maxAttempts int, delay time.Duration, gate *Gate, fn AttemptFunc) (string, int, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if gate != nil {
			if err := gate.Acquire(ctx); err != nil {
				return "", attempt - 1, err
			}
		} else if err := ctx.Err(); err != nil {
			return "", attempt - 1, err
		}

		body, err := fn(ctx, url)
		if err == nil {
			return body, attempt, nil
		}
		lastErr = err

		// Don't wait after the last attempt.
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", attempt, ctx.Err()
		case <-time.After(delay):
		}
	}

	return "", maxAttempts, lastErr
}
