package canvas

import "time"

// Clock turns the host's frame timestamps into engine step deltas. The
// first tick after construction or Reset reports zero elapsed time, so a
// fresh loop never feeds the engine one giant catch-up step.
type Clock struct {
	prev    time.Time
	started bool
}

func NewClock() *Clock { return &Clock{} }

func (c *Clock) Tick(now time.Time) time.Duration {
	if !c.started {
		c.started = true
		c.prev = now
		return 0
	}
	d := now.Sub(c.prev)
	c.prev = now
	if d < 0 {
		return 0
	}
	return d
}

// Reset makes the next tick report zero again, e.g. after the host loop
// was suspended.
func (c *Clock) Reset() { c.started = false }
