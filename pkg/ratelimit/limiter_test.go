package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterWindow(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := New(3, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !l.Allow("ahmet@10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("ahmet@10.0.0.1") {
		t.Fatal("4th attempt within the window should be denied")
	}

	// Another identity has its own window.
	if !l.Allow("mehmet@10.0.0.1") {
		t.Fatal("different key should not be affected")
	}

	// Window expiry resets the count.
	now = now.Add(time.Minute)
	if !l.Allow("ahmet@10.0.0.1") {
		t.Fatal("attempt after window expiry should be allowed")
	}
}

func TestLimiterReset(t *testing.T) {
	l := New(1, time.Minute)

	if !l.Allow("k") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second attempt should be denied")
	}
	l.Reset("k")
	if !l.Allow("k") {
		t.Fatal("attempt after reset should be allowed")
	}
}

func TestLimiterPrunesExpired(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := New(1, time.Minute)
	l.now = func() time.Time { return now }

	for _, key := range []string{"a", "b", "c"} {
		l.Allow(key)
	}
	now = now.Add(2 * time.Minute)
	l.Allow("d")

	l.mu.Lock()
	size := len(l.hits)
	l.mu.Unlock()
	if size != 1 {
		t.Fatalf("expired entries not pruned: %d remaining", size)
	}
}
