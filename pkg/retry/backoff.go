package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	errs "github.com/Bella040/facebook-reel-scraper/pkg/errors"
)

// BackoffStrategy picks the delay before retry number attempt (1-based)
type BackoffStrategy interface {
	Delay(attempt int, err error) time.Duration
}

// ExponentialBackoff implements exponential backoff with jitter
type ExponentialBackoff struct {
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	// JitterFactor spreads delays by up to this fraction either way (0.0 to 1.0)
	JitterFactor float64
}

// DefaultExponentialBackoff returns a backoff with sensible defaults
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:    1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// Delay calculates the next delay with exponential backoff and jitter
func (eb *ExponentialBackoff) Delay(attempt int, _ error) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(eb.BaseDelay) * math.Pow(eb.Multiplier, float64(attempt-1))
	if delay > float64(eb.MaxDelay) {
		delay = float64(eb.MaxDelay)
	}

	if eb.JitterFactor > 0 {
		jitter := delay * eb.JitterFactor
		delay += (rand.Float64() * 2 * jitter) - jitter
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// ConstantBackoff implements constant delay backoff
type ConstantBackoff struct {
	Interval time.Duration
}

// Delay returns a constant delay
func (cb ConstantBackoff) Delay(attempt int, _ error) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return cb.Interval
}

// ErrorTypeBackoff waits longer after rate limiting than after other failures
type ErrorTypeBackoff struct {
	RateLimit BackoffStrategy
	Default   BackoffStrategy
}

// NewErrorTypeBackoff creates a new error-type based backoff
func NewErrorTypeBackoff() *ErrorTypeBackoff {
	return &ErrorTypeBackoff{
		RateLimit: &ExponentialBackoff{
			BaseDelay:    10 * time.Second,
			MaxDelay:     2 * time.Minute,
			Multiplier:   2.0,
			JitterFactor: 0.3,
		},
		Default: DefaultExponentialBackoff(),
	}
}

// Delay dispatches on the error type
func (etb *ErrorTypeBackoff) Delay(attempt int, err error) time.Duration {
	if errs.TypeOf(err) == errs.ErrorTypeRateLimit {
		return etb.RateLimit.Delay(attempt, err)
	}
	return etb.Default.Delay(attempt, err)
}

// Wait waits for the specified duration or until context is cancelled
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
