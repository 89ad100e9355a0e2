package errors

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gambit/internal/logging"
)

func fastRetryConfig(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:  maxAttempts,
		BaseDelay:    time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		JitterFactor: 0,
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	result, err := RetryWithResultAndLog(context.Background(), fastRetryConfig(3), func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", NewTransientError(fmt.Errorf("flaky"), "")
		}
		return "ok", nil
	}, logging.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" || attempts != 3 {
		t.Fatalf("result=%q attempts=%d", result, attempts)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	attempts := 0
	permanent := NewPermanentError(fmt.Errorf("bad request"), "")
	err := RetryWithLog(context.Background(), fastRetryConfig(5), func(ctx context.Context) error {
		attempts++
		return permanent
	}, logging.Nop())
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("permanent error must not be retried, got %d attempts", attempts)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := RetryWithLog(context.Background(), fastRetryConfig(2), func(ctx context.Context) error {
		attempts++
		return NewTransientError(fmt.Errorf("still down"), "")
	}, logging.Nop())
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts (1 initial + 2 retries), got %d", attempts)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithLog(ctx, fastRetryConfig(3), func(ctx context.Context) error {
		t.Fatal("function must not run with cancelled context")
		return nil
	}, logging.Nop())
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestCalculateBackoffRespectsMaxDelay(t *testing.T) {
	config := RetryConfig{BaseDelay: time.Second, MaxDelay: 2 * time.Second, JitterFactor: 0}
	if d := calculateBackoff(5, config); d != 2*time.Second {
		t.Fatalf("expected cap at 2s, got %v", d)
	}
}

func TestCircuitBreakerOpensAndRecovers(t *testing.T) {
	cb := NewCircuitBreaker("test-backend", CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          10 * time.Millisecond,
	})

	boom := fmt.Errorf("backend down")
	for i := 0; i < 2; i++ {
		_ = cb.Execute(context.Background(), func(ctx context.Context) error { return boom })
	}
	if cb.State() != StateOpen {
		t.Fatalf("expected open after threshold, got %v", cb.State())
	}

	if err := cb.Allow(); !IsDegraded(err) {
		t.Fatalf("open breaker must reject with degraded error, got %v", err)
	}

	time.Sleep(15 * time.Millisecond)
	if err := cb.Allow(); err != nil {
		t.Fatalf("half-open probe rejected: %v", err)
	}
	cb.Mark(nil)
	if cb.State() != StateClosed {
		t.Fatalf("expected closed after recovery, got %v", cb.State())
	}
}
