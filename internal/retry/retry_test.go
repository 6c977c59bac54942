package retry

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hirewiz/hirewiz/internal/ai"
	"github.com/hirewiz/hirewiz/internal/model"
)

// flakyProvider fails the first failCount calls, then succeeds.
type flakyProvider struct {
	failCount int
	failWith  error
	calls     int
}

func (p *flakyProvider) Complete(_ context.Context, _ ai.Request) (string, error) {
	p.calls++
	if p.calls <= p.failCount {
		return "", p.failWith
	}
	return "ok", nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestComplete_SucceedsFirstTry(t *testing.T) {
	inner := &flakyProvider{}
	p := NewRetryProvider(inner, 2, time.Millisecond, discardLogger())

	got, err := p.Complete(context.Background(), ai.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want ok", got)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1", inner.calls)
	}
}

func TestComplete_RetriesTransientError(t *testing.T) {
	inner := &flakyProvider{
		failCount: 2,
		failWith:  &model.HTTPError{StatusCode: 503},
	}
	p := NewRetryProvider(inner, 2, time.Millisecond, discardLogger())

	got, err := p.Complete(context.Background(), ai.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want ok", got)
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}
}

func TestComplete_ExhaustsRetries(t *testing.T) {
	inner := &flakyProvider{
		failCount: 10,
		failWith:  &model.HTTPError{StatusCode: 500},
	}
	p := NewRetryProvider(inner, 2, time.Millisecond, discardLogger())

	if _, err := p.Complete(context.Background(), ai.Request{}); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3 (initial + 2 retries)", inner.calls)
	}
}

func TestComplete_DoesNotRetryClientError(t *testing.T) {
	inner := &flakyProvider{
		failCount: 10,
		failWith:  &model.HTTPError{StatusCode: 401},
	}
	p := NewRetryProvider(inner, 2, time.Millisecond, discardLogger())

	if _, err := p.Complete(context.Background(), ai.Request{}); err == nil {
		t.Fatal("expected error on 4xx")
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries for 4xx)", inner.calls)
	}
}

func TestComplete_DoesNotRetryCancelledContext(t *testing.T) {
	inner := &flakyProvider{
		failCount: 10,
		failWith:  context.Canceled,
	}
	p := NewRetryProvider(inner, 2, time.Millisecond, discardLogger())

	if _, err := p.Complete(context.Background(), ai.Request{}); err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries after cancellation)", inner.calls)
	}
}

func TestComplete_RetriesGenericNetworkError(t *testing.T) {
	inner := &flakyProvider{
		failCount: 1,
		failWith:  errors.New("connection reset"),
	}
	p := NewRetryProvider(inner, 2, time.Millisecond, discardLogger())

	if _, err := p.Complete(context.Background(), ai.Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("calls = %d, want 2", inner.calls)
	}
}

func TestBackoffDelay_HonorsRetryAfter(t *testing.T) {
	p := NewRetryProvider(nil, 2, time.Second, discardLogger())

	err := &model.HTTPError{StatusCode: 429, RetryAfter: 42 * time.Second}
	if got := p.backoffDelay(1, err); got != 42*time.Second {
		t.Errorf("backoffDelay = %v, want 42s", got)
	}
}

func TestBackoffDelay_GrowsExponentially(t *testing.T) {
	p := NewRetryProvider(nil, 3, time.Second, discardLogger())
	err := &model.HTTPError{StatusCode: 500}

	// With ±30% jitter, attempt 3 (base 4s) stays within [2.8s, 5.2s].
	got := p.backoffDelay(3, err)
	if got < 2800*time.Millisecond || got > 5200*time.Millisecond {
		t.Errorf("backoffDelay(3) = %v, want within [2.8s, 5.2s]", got)
	}
}
