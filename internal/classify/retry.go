package classify

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig controls the backoff of the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the retry settings used by the CLI.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     8 * time.Second,
		Multiplier:  2.0,
	}
}

// Retry is a decorator that retries transient classifier errors with
// exponential backoff and jitter.
type Retry struct {
	inner  Classifier
	config RetryConfig
}

// WithRetry wraps a Classifier with retry logic.
func WithRetry(c Classifier, cfg RetryConfig) *Retry {
	return &Retry{inner: c, config: cfg}
}

func (r *Retry) Classify(ctx context.Context, text string) (Classification, error) {
	var lastErr error

	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		c, err := r.inner.Classify(ctx, text)
		if err == nil {
			return c, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return Classification{}, err
		}

		// Last attempt — don't sleep, just return the error.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return Classification{}, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return Classification{}, lastErr
}

// shouldRetry determines if an error is retryable. Context errors are
// never retried; backend unavailability and other errors (network,
// malformed responses) are treated as transient.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *Retry) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
