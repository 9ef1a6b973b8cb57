// Package ratelimit provides a fixed-window attempt limiter keyed by caller
// identity. Entries expire with the window, so the map stays bounded by the
// set of identities active in the last window.
package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	count   int
	started time.Time
}

// Limiter allows up to max attempts per key per window.
type Limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string]*entry
	now    func() time.Time
}

// New creates a limiter allowing max attempts per window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:    max,
		window: window,
		hits:   make(map[string]*entry),
		now:    time.Now,
	}
}

// Allow records one attempt for key and reports whether it is within the
// limit for the current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	e := l.hits[key]
	if e == nil || now.Sub(e.started) >= l.window {
		l.hits[key] = &entry{count: 1, started: now}
		return true
	}
	e.count++
	return e.count <= l.max
}

// Reset clears the attempt count for key, e.g. after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
}

// prune drops expired windows. Called under mu.
func (l *Limiter) prune(now time.Time) {
	for key, e := range l.hits {
		if now.Sub(e.started) >= l.window {
			delete(l.hits, key)
		}
	}
}
