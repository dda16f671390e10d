package game

import "time"

// Clock is a logical fixed-interval timer driven by externally supplied
// elapsed time. It never reads the wall clock.
type Clock struct {
	Interval time.Duration
	acc      time.Duration
}

// NewClock returns a clock that fires every interval.
func NewClock(interval time.Duration) *Clock {
	return &Clock{Interval: interval}
}

// Advance adds elapsed time and returns how many whole intervals completed.
// The remainder carries over to the next call.
func (c *Clock) Advance(elapsed time.Duration) int {
	if c.Interval <= 0 || elapsed <= 0 {
		return 0
	}
	c.acc += elapsed
	n := int(c.acc / c.Interval)
	c.acc -= time.Duration(n) * c.Interval
	return n
}

// Pending is the time accumulated toward the next fire.
func (c *Clock) Pending() time.Duration {
	return c.acc
}
