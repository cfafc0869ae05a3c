package core

import "time"

// Throttle gates periodic work, such as progress reporting, to at most once
// per interval. It uses the same accumulator scheme as a fixed-step loop.
type Throttle struct {
	every       time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewThrottle constructs a Throttle that fires at most once per interval.
// A non-positive interval fires on every call.
func NewThrottle(every time.Duration) *Throttle {
	return &Throttle{every: every, now: time.Now}
}

// SetInterval changes the interval.
func (t *Throttle) SetInterval(every time.Duration) {
	t.every = every
}

// Ready reports whether the gated work should run now.
func (t *Throttle) Ready() bool {
	if t.every <= 0 {
		return true
	}
	now := t.now()
	if t.last.IsZero() {
		t.last = now
	}
	t.accumulator += now.Sub(t.last)
	t.last = now
	if t.accumulator >= t.every {
		// Drop any backlog so a slow step does not produce a burst of reports.
		t.accumulator = 0
		return true
	}
	return false
}
