package resilience

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/serac-weather/serac/internal/provider"
)

// RetryConfig controls the exponential backoff applied to upstream calls.
type RetryConfig struct {
	// MaxRetries is the number of additional attempts after the first
	// failure, so MaxRetries=3 allows 4 tries in total.
	// Default: 3
	MaxRetries uint64

	// InitialDelay is the wait before the first retry.
	// Default: 500ms
	InitialDelay time.Duration

	// BackoffFactor multiplies the delay after each attempt.
	// Default: 2.0
	BackoffFactor float64

	// MaxDelay caps the delay between attempts.
	// Default: 30 seconds
	MaxDelay time.Duration
}

// DefaultRetryConfig returns the retry policy used for all upstream sources.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  500 * time.Millisecond,
		BackoffFactor: 2.0,
		MaxDelay:      30 * time.Second,
	}
}

func (cfg RetryConfig) withDefaults() RetryConfig {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialDelay == 0 {
		cfg.InitialDelay = 500 * time.Millisecond
	}
	if cfg.BackoffFactor == 0 {
		cfg.BackoffFactor = 2.0
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	return cfg
}

// Retry invokes op, retrying transient failures with exponential backoff.
// Waits are context-aware and cooperative; a cancelled context aborts the
// wait immediately. Auth and not-found failures are never retried,
// regardless of configuration. On exhaustion the last failure is returned
// unchanged, so callers can still inspect its kind.
func Retry[T any](ctx context.Context, cfg RetryConfig, op func(context.Context) (T, error)) (T, error) {
	cfg = cfg.withDefaults()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialDelay
	bo.Multiplier = cfg.BackoffFactor
	bo.MaxInterval = cfg.MaxDelay
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0 // attempts are bounded by MaxRetries, not wall time

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, cfg.MaxRetries), ctx)

	return backoff.RetryWithData(func() (T, error) {
		result, err := op(ctx)
		if err != nil && !provider.IsRetryable(err) {
			return result, backoff.Permanent(err)
		}
		return result, err
	}, policy)
}
