package mock

import (
	"sync"
	"time"
)

// Time is a settable clock for scenarios that depend on the current date,
// such as statement status classification. It keeps ticking from the instant
// it was set to so timestamps stay monotonic within a scenario.
type Time struct {
	mu    sync.Mutex
	base  time.Time
	setAt time.Time
}

func NewTime() *Time {
	now := time.Now().UTC()
	return &Time{
		base:  now,
		setAt: now,
	}
}

// Set pins the clock to the given instant.
func (t *Time) Set(instant time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.base = instant.UTC()
	t.setAt = time.Now()
}

// Now returns the pinned instant plus the real time elapsed since it was set.
func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.base.Add(time.Since(t.setAt))
}
