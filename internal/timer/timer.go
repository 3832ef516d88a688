// Package timer tracks elapsed session time against a fixed period.
package timer

import "time"

// Timer accumulates elapsed time and signals completion once.
type Timer struct {
	period  time.Duration
	elapsed time.Duration
	done    bool
}

// New returns a timer for the given period.
func New(period time.Duration) *Timer {
	return &Timer{period: period}
}

// FromMinutes converts a duration in minutes to a period.
func FromMinutes(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}

// Tick advances elapsed time by delta. It returns true only on the tick that
// reaches the period; ticks after completion are no-ops.
func (t *Timer) Tick(delta time.Duration) bool {
	if t.done {
		return false
	}
	if delta > 0 {
		t.elapsed += delta
	}
	if t.elapsed >= t.period {
		t.elapsed = t.period
		if t.elapsed < 0 {
			t.elapsed = 0
		}
		t.done = true
		return true
	}
	return false
}

// Progress returns the completed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	if t.done {
		return 1
	}
	if t.period <= 0 {
		return 0
	}
	p := float64(t.elapsed) / float64(t.period)
	if p > 1 {
		return 1
	}
	return p
}

// Elapsed returns the elapsed time, never more than the period.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Remaining returns the time left before completion.
func (t *Timer) Remaining() time.Duration {
	if t.done {
		return 0
	}
	return t.period - t.elapsed
}

// Period returns the configured period.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Done reports whether the period has been reached.
func (t *Timer) Done() bool {
	return t.done
}
