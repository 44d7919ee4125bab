package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "github.com/Bella040/facebook-reel-scraper/pkg/errors"
	"github.com/Bella040/facebook-reel-scraper/pkg/logger"
)

func fastConfig(attempts int) *Config {
	return &Config{
		MaxAttempts: attempts,
		Backoff:     ConstantBackoff{Interval: time.Millisecond},
		Logger:      logger.NewNopLogger(),
	}
}

func TestExponentialBackoff(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   1 * time.Second,
		Multiplier: 2.0,
	}

	tests := []struct {
		attempt     int
		expected    time.Duration
		description string
	}{
		{0, 0, "No attempt"},
		{1, 100 * time.Millisecond, "First attempt"},
		{2, 200 * time.Millisecond, "Second attempt"},
		{3, 400 * time.Millisecond, "Third attempt"},
		{4, 800 * time.Millisecond, "Fourth attempt"},
		{5, 1 * time.Second, "Fifth attempt (capped at max)"},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			if delay := backoff.Delay(test.attempt, nil); delay != test.expected {
				t.Errorf("Expected delay %v, got %v", test.expected, delay)
			}
		})
	}
}

func TestExponentialBackoffJitterBounds(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:    100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.3,
	}

	for i := 0; i < 50; i++ {
		delay := backoff.Delay(2, nil)
		if delay < 140*time.Millisecond || delay > 260*time.Millisecond {
			t.Fatalf("delay %v outside jitter bounds", delay)
		}
	}
}

func TestErrorTypeBackoff(t *testing.T) {
	etb := &ErrorTypeBackoff{
		RateLimit: ConstantBackoff{Interval: time.Minute},
		Default:   ConstantBackoff{Interval: time.Second},
	}

	if d := etb.Delay(1, errs.FromStatus("u", 429)); d != time.Minute {
		t.Errorf("rate limit delay = %v, want 1m", d)
	}
	if d := etb.Delay(1, errs.FromStatus("u", 503)); d != time.Second {
		t.Errorf("server error delay = %v, want 1s", d)
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errs.FromStatus("u", 503)
		}
		return nil
	}, fastConfig(3))

	if err != nil {
		t.Errorf("Expected success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	notFound := errs.FromStatus("u", 404)
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return notFound
	}, fastConfig(5))

	if !errors.Is(err, notFound) {
		t.Errorf("Expected the original error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestDoUntypedErrorsAreNotRetried(t *testing.T) {
	attempts := 0
	_ = Do(context.Background(), func(context.Context) error {
		attempts++
		return errors.New("plain")
	}, fastConfig(5))

	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestDoGivesUp(t *testing.T) {
	attempts := 0
	var retried []int
	cfg := fastConfig(3)
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		retried = append(retried, attempt)
	}

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return errs.Network("u", errors.New("reset"))
	}, cfg)

	if err == nil || errs.TypeOf(err) != errs.ErrorTypeNetwork {
		t.Errorf("Expected wrapped network error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
	if len(retried) != 2 {
		t.Errorf("Expected 2 retries, got %v", retried)
	}
}

func TestDoHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     ConstantBackoff{Interval: time.Hour},
	}

	attempts := 0
	err := Do(ctx, func(context.Context) error {
		attempts++
		cancel()
		return errs.FromStatus("u", 500)
	}, cfg)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	got, err := DoWithResult(context.Background(), func(context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "", errs.FromStatus("u", 429)
		}
		return "<html>", nil
	}, fastConfig(2))

	if err != nil || got != "<html>" {
		t.Errorf("DoWithResult() = %q, %v", got, err)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	if DefaultRetryIf(nil) {
		t.Error("nil should not be retried")
	}
	if DefaultRetryIf(context.Canceled) {
		t.Error("cancellation should not be retried")
	}
	if !DefaultRetryIf(errs.FromStatus("u", 502)) {
		t.Error("server errors should be retried")
	}
	if DefaultRetryIf(errs.FromStatus("u", 403)) {
		t.Error("client errors should not be retried")
	}
}
