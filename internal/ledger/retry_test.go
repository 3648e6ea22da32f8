package ledger

import (
	"context"
	"testing"
	"time"
)

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	retryable := []int{408, 429, 500, 502, 503, 504}
	for _, code := range retryable {
		if !cfg.RetryableOn(code) {
			t.Errorf("status %d should be retryable", code)
		}
	}

	final := []int{200, 400, 401, 403, 404, 409}
	for _, code := range final {
		if cfg.RetryableOn(code) {
			t.Errorf("status %d should not be retryable", code)
		}
	}
}

func TestShouldRetry_RespectsMaxRetries(t *testing.T) {
	cfg := DefaultRetryConfig()
	cfg.MaxRetries = 2

	if !cfg.ShouldRetry(0, 503) {
		t.Error("first attempt should retry")
	}
	if !cfg.ShouldRetry(1, 503) {
		t.Error("second attempt should retry")
	}
	if cfg.ShouldRetry(2, 503) {
		t.Error("attempt at limit should not retry")
	}
}

func TestDelay_ExponentialGrowthCapped(t *testing.T) {
	cfg := &RetryConfig{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   time.Second,
		Multiplier: 2.0,
		Jitter:     0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{5, time.Second}, // capped
	}

	for _, tt := range tests {
		if got := cfg.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestDelay_JitterStaysInBounds(t *testing.T) {
	cfg := &RetryConfig{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   time.Second,
		Multiplier: 2.0,
		Jitter:     0.5,
	}

	for i := 0; i < 100; i++ {
		d := cfg.Delay(0)
		if d < 50*time.Millisecond || d > 150*time.Millisecond {
			t.Fatalf("jittered delay %v outside [50ms, 150ms]", d)
		}
	}
}

func TestWait_CancelledContext(t *testing.T) {
	cfg := &RetryConfig{
		BaseDelay:  time.Minute,
		MaxDelay:   time.Minute,
		Multiplier: 1,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cfg.Wait(ctx, 0); err == nil {
		t.Error("expected context error from Wait")
	}
}
