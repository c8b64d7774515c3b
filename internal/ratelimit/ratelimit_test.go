package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiter_BurstPassesImmediately(t *testing.T) {
	l := NewHostLimiter(1, 2)

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := l.Wait(context.Background(), "https://example.com/a"); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("burst requests took %v, want immediate", elapsed)
	}
}

func TestHostLimiter_DelaysBeyondBurst(t *testing.T) {
	l := NewHostLimiter(10, 1) // one immediate, then ~100ms spacing

	if err := l.Wait(context.Background(), "https://example.com/a"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	start := time.Now()
	if err := l.Wait(context.Background(), "https://example.com/b"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("second request waited only %v, want ~100ms", elapsed)
	}
}

func TestHostLimiter_HostsAreIndependent(t *testing.T) {
	l := NewHostLimiter(1, 1)

	if err := l.Wait(context.Background(), "https://one.example.com/"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	start := time.Now()
	if err := l.Wait(context.Background(), "https://two.example.com/"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("different host waited %v, want immediate", elapsed)
	}
}

func TestHostLimiter_ContextCancelled(t *testing.T) {
	l := NewHostLimiter(0.01, 1)

	if err := l.Wait(context.Background(), "https://example.com/"); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "https://example.com/"); err == nil {
		t.Fatal("Wait: expected error after context cancellation")
	}
}

func TestHostLimiter_UnparseableURLFallback(t *testing.T) {
	l := NewHostLimiter(1, 1)

	if err := l.Wait(context.Background(), "::not a url::"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}
