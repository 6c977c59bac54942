package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/hirewiz/hirewiz/internal/ai"
)

func TestWait_FirstCallNoDelay(t *testing.T) {
	r := NewModelRateLimiter(time.Second)

	start := time.Now()
	if err := r.Wait(context.Background(), "gpt-4.1"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first call waited %v, want ~0", elapsed)
	}
}

func TestWait_SecondCallDelayed(t *testing.T) {
	r := NewModelRateLimiter(50 * time.Millisecond)

	if err := r.Wait(context.Background(), "gpt-4.1"); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	start := time.Now()
	if err := r.Wait(context.Background(), "gpt-4.1"); err != nil {
		t.Fatalf("second Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("second call waited only %v, want ~50ms", elapsed)
	}
}

func TestWait_DifferentModelsIndependent(t *testing.T) {
	r := NewModelRateLimiter(time.Second)

	if err := r.Wait(context.Background(), "gpt-4.1"); err != nil {
		t.Fatalf("Wait model A: %v", err)
	}

	start := time.Now()
	if err := r.Wait(context.Background(), "o4-mini"); err != nil {
		t.Fatalf("Wait model B: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("different model waited %v, want ~0", elapsed)
	}
}

func TestWait_CancelledContext(t *testing.T) {
	r := NewModelRateLimiter(10 * time.Second)

	if err := r.Wait(context.Background(), "gpt-4.1"); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Wait(ctx, "gpt-4.1"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

// countingProvider counts Complete calls.
type countingProvider struct {
	calls int
}

func (p *countingProvider) Complete(_ context.Context, _ ai.Request) (string, error) {
	p.calls++
	return "ok", nil
}

func TestRateLimitedProvider_Delegates(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, NewModelRateLimiter(0))

	got, err := p.Complete(context.Background(), ai.Request{Model: "gpt-4.1"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want ok", got)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1", inner.calls)
	}
}
