// Package testutil provides deterministic helpers shared by tests across
// packages.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe wall clock pinned to a known instant.
//
// Backup filenames and age computations both read the clock, so tests pin
// it to keep output stable across runs.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock returns a clock pinned to start.
func NewFixedClock(start time.Time) *FixedClock {
	return &FixedClock{now: start}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceWeek moves the clock forward seven days, the cadence the weekly
// run is invoked at.
func (c *FixedClock) AdvanceWeek() {
	c.Advance(7 * 24 * time.Hour)
}
