package clock

import (
	"sync"
	"time"
)

// VirtualClock is a controllable clock for deterministic tests.
// Time only moves through Advance, Set, or, for a stepping clock, on every
// read. A stepping clock lets a busy-wait loop make progress without a
// second goroutine pushing time forward.
//
// Thread-safe for concurrent use.
type VirtualClock struct {
	mu      sync.RWMutex
	current time.Time
	step    time.Duration
	waiters []waiter
}

type waiter struct {
	deadline time.Time
	ch       chan time.Time
}

// NewVirtualClock creates a VirtualClock starting at the given time.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{
		current: start,
	}
}

// NewSteppingClock creates a VirtualClock that advances by step every time
// Now or Since is called.
func NewSteppingClock(start time.Time, step time.Duration) *VirtualClock {
	if step < 0 {
		panic("clock: step must not be negative")
	}
	return &VirtualClock{
		current: start,
		step:    step,
	}
}

// Now returns the current virtual time.
func (c *VirtualClock) Now() time.Time {
	if c.step > 0 {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.advanceLocked(c.step)
		return c.current
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Since returns the virtual duration elapsed since t.
func (c *VirtualClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// After returns a channel that receives the virtual time once the clock
// has advanced past the current time plus d.
func (c *VirtualClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.current
		return ch
	}

	c.waiters = append(c.waiters, waiter{
		deadline: c.current.Add(d),
		ch:       ch,
	})
	return ch
}

// Advance moves the virtual clock forward by the given duration.
// Panics if d is negative.
func (c *VirtualClock) Advance(d time.Duration) {
	if d < 0 {
		panic("clock: cannot advance by negative duration")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.advanceLocked(d)
}

// Set sets the virtual clock to an exact time.
// Panics if t is before the current time.
func (c *VirtualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.Before(c.current) {
		panic("clock: cannot set time to the past")
	}
	c.advanceLocked(t.Sub(c.current))
}

// Must be called with c.mu held.
func (c *VirtualClock) advanceLocked(d time.Duration) {
	c.current = c.current.Add(d)

	remaining := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.deadline.After(c.current) {
			w.ch <- c.current
		} else {
			remaining = append(remaining, w)
		}
	}
	c.waiters = remaining
}
