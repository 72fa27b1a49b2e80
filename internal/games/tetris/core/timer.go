package core

import "time"

// DefaultGravityInterval is the time between gravity steps.
const DefaultGravityInterval = 500 * time.Millisecond

// Timer accumulates elapsed time and fires once the interval is reached.
// The accumulator resets to zero on each fire.
type Timer struct {
	interval time.Duration
	elapsed  time.Duration
}

// NewTimer returns a repeating timer. A non-positive interval falls back
// to DefaultGravityInterval.
func NewTimer(interval time.Duration) *Timer {
	if interval <= 0 {
		interval = DefaultGravityInterval
	}
	return &Timer{interval: interval}
}

// Advance adds dt and reports whether the timer fired.
func (t *Timer) Advance(dt time.Duration) bool {
	if dt > 0 {
		t.elapsed += dt
	}
	if t.elapsed < t.interval {
		return false
	}
	t.elapsed = 0
	return true
}

// Interval returns the firing interval.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// Elapsed returns the time accumulated since the last fire.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}
