package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	cfg := Config{MinRequests: 2, FailureRatio: 0.5, OpenTimeout: time.Minute, HalfOpenMaxCalls: 1}
	breaker := NewBreaker("model", cfg, nil)

	boom := errors.New("connection refused")
	for i := 0; i < 3; i++ {
		_ = breaker.Do(context.Background(), func(context.Context) error { return boom })
	}

	if breaker.Available() {
		t.Fatalf("expected breaker to be open")
	}

	err := breaker.Do(context.Background(), func(context.Context) error {
		t.Fatalf("call must not reach the service while open")
		return nil
	})
	if !IsCircuitOpen(err) {
		t.Fatalf("expected circuit-open error, got %v", err)
	}
}

func TestBreakerStaysClosedOnSuccess(t *testing.T) {
	breaker := NewBreaker("model", DefaultConfig(), nil)
	for i := 0; i < 5; i++ {
		if err := breaker.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
	}
	if !breaker.Available() {
		t.Fatalf("expected breaker to stay closed")
	}
}

func TestBreakerIgnoresNonRecordedFailures(t *testing.T) {
	cfg := Config{MinRequests: 2, FailureRatio: 0.5, OpenTimeout: time.Minute, HalfOpenMaxCalls: 1}
	breaker := NewBreaker("model", cfg, func(err error) bool {
		return !errors.Is(err, context.Canceled)
	})

	for i := 0; i < 5; i++ {
		_ = breaker.Do(context.Background(), func(context.Context) error { return context.Canceled })
	}
	if !breaker.Available() {
		t.Fatalf("caller cancellation must not trip the breaker")
	}
}

func TestBreakerShortCircuitsCancelledContext(t *testing.T) {
	breaker := NewBreaker("model", DefaultConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := breaker.Do(ctx, func(context.Context) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
