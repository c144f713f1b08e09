package scraper

import (
	"context"
	"fmt"
	"log"
	"time"
)

// retryConfig holds the parameters for the retry strategy.
type retryConfig struct {
	maxAttempts int
	baseDelay   time.Duration
}

// defaultRetry gives 3 attempts with 1s/2s backoff between them.
var defaultRetry = retryConfig{maxAttempts: 3, baseDelay: time.Second}

// do executes fn with exponential back-off retry logic, aborting early when
// ctx is cancelled.
func (r retryConfig) do(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	delay := r.baseDelay

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < r.maxAttempts {
			log.Printf("%s failed (attempt %d/%d): %v, retrying in %v",
				operation, attempt, r.maxAttempts, lastErr, delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, r.maxAttempts, lastErr)
}
