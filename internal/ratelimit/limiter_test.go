package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowRespectsBurst(t *testing.T) {
	l := New(1.0, 2)

	if !l.Allow() || !l.Allow() {
		t.Fatal("expected the burst to be allowed immediately")
	}
	if l.Allow() {
		t.Error("expected the third request to be throttled")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New(0.001, 1)
	l.Allow() // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("expected Wait to fail once the context expired")
	}
}

func TestNewDefaults(t *testing.T) {
	l := New(0, 0)
	if !l.Allow() {
		t.Error("expected defaulted limiter to allow the first request")
	}
}
