package resilience

import (
	"context"
	"time"
)

// RetryPolicy retries with a linear backoff: Delay, 2*Delay, 3*Delay...
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// Retry calls fn until it succeeds, retryable reports false, the attempts
// run out or ctx is done. The last error is returned.
func Retry(ctx context.Context, policy RetryPolicy, retryable func(error) bool, fn func(ctx context.Context, attempt int) error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx, attempt); err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if attempt == attempts || policy.Delay <= 0 {
			continue
		}
		timer := time.NewTimer(time.Duration(attempt) * policy.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
