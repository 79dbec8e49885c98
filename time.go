package rig

import (
	"sync"
	"time"
)

// GameTime is an immutable snapshot of run time taken at the start of a
// tick. The driver produces one snapshot per tick and hands it to every
// subsystem's Update and Draw.
type GameTime struct {
	// Total is the wall-clock time elapsed since the clock started.
	Total time.Duration

	// Delta is the wall-clock time elapsed since the previous tick.
	// On the first tick after Start, Delta is the time since Start.
	Delta time.Duration
}

// Clock tracks elapsed wall-clock time and the delta between ticks.
// It uses the monotonic reading carried by time.Time, so snapshots are
// unaffected by system clock adjustments.
//
// Clock is safe for concurrent use, though the driver only advances it
// from the serialized tick path.
type Clock struct {
	mu      sync.Mutex
	start   time.Time
	last    time.Time
	running bool

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewClock creates a stopped clock.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Start begins (or restarts) timekeeping. Total elapsed time resets to
// zero and the next Tick measures its delta from this instant.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now()
	c.start = t
	c.last = t
	c.running = true
}

// Tick advances the clock and returns the time snapshot for this tick.
// Calling Tick on a stopped clock returns a zero GameTime.
func (c *Clock) Tick() GameTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return GameTime{}
	}
	t := c.now()
	gt := GameTime{
		Total: t.Sub(c.start),
		Delta: t.Sub(c.last),
	}
	c.last = t
	return gt
}

// Stop halts timekeeping. A stopped clock can be started again.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

// Running reports whether the clock is currently keeping time.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
