package sim

import "time"

// Clock converts wall time into per-frame deltas. The delta is clamped so a
// stalled frame source (a backgrounded tab, a suspended process) cannot feed
// the integrators a step large enough to destabilize them.
type Clock struct {
	now     func() time.Time
	last    time.Time
	maxDt   float64
	started bool
}

func NewClock(maxDt float64) *Clock {
	return &Clock{now: time.Now, maxDt: maxDt}
}

// NewClockAt builds a clock on an injected time source, for tests.
func NewClockAt(now func() time.Time, maxDt float64) *Clock {
	return &Clock{now: now, maxDt: maxDt}
}

// Tick returns the elapsed seconds since the previous Tick, clamped to the
// maximum. The first Tick returns 0.
func (c *Clock) Tick() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		return 0
	}
	if dt > c.maxDt {
		return c.maxDt
	}
	return dt
}
