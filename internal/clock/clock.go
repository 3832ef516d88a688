// Package clock provides the periodic triggers that drive a session.
//
// A Clock hands out Triggers that call a function at a fixed interval. All
// callbacks of one Clock run in a single scheduling domain: they never
// overlap, and a stopped Trigger never fires again.
package clock

import "time"

// Trigger is a periodic callback registration.
type Trigger interface {
	// Stop cancels the trigger. It is idempotent.
	Stop()
}

// Clock creates periodic triggers. Every panics on a non-positive interval,
// like time.NewTicker.
type Clock interface {
	Every(d time.Duration, fn func()) Trigger
}

func checkInterval(d time.Duration) {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
}
