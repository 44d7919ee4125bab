package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucket(t *testing.T) {
	tb := NewTokenBucket(200*time.Millisecond, 3)

	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Errorf("Expected token %d to be available", i+1)
		}
	}

	if tb.Allow() {
		t.Error("Expected no more tokens to be available")
	}

	time.Sleep(250 * time.Millisecond)
	if !tb.Allow() {
		t.Error("Expected a token to be refilled after waiting")
	}

	tb.Reset()
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Errorf("Expected token %d after reset", i+1)
		}
	}
}

func TestNewPerMinuteUnlimited(t *testing.T) {
	for _, rpm := range []int{0, -1} {
		tb := NewPerMinute(rpm)
		if !tb.Unlimited() {
			t.Errorf("rpm %d should not pace", rpm)
		}
		for i := 0; i < 100; i++ {
			if !tb.Allow() {
				t.Fatalf("rpm %d blocked request %d", rpm, i)
			}
		}
	}
}

func TestNewPerMinuteSpacing(t *testing.T) {
	tb := NewPerMinute(600) // one request every 100ms
	if tb.Unlimited() {
		t.Fatal("expected pacing")
	}

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := tb.Wait(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("expected at least 150ms for 3 paced requests, got %v", elapsed)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	tb := NewPerMinute(1)
	if !tb.Allow() {
		t.Fatal("first request should pass")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := tb.Wait(ctx); err == nil {
		t.Error("expected Wait to fail when the next token is a minute away")
	}
}
