package tui

import (
	"testing"
	"time"
)

func TestTeaClockFiresAndReschedules(t *testing.T) {
	c := newTeaClock()
	calls := 0
	tr := c.Every(time.Second, func() { calls++ })

	if cmd := c.drain(); cmd == nil {
		t.Fatalf("expected initial tick command")
	}
	if cmd := c.drain(); cmd != nil {
		t.Fatalf("expected drain to clear pending ticks")
	}

	c.fire(triggerMsg{id: 1})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if cmd := c.drain(); cmd == nil {
		t.Fatalf("expected trigger to be rescheduled")
	}

	tr.Stop()
	tr.Stop()
	c.fire(triggerMsg{id: 1})
	if calls != 1 {
		t.Fatalf("stopped trigger fired")
	}
	if c.active() != 0 {
		t.Fatalf("expected no active triggers, got %d", c.active())
	}
	if cmd := c.drain(); cmd != nil {
		t.Fatalf("stopped trigger must not reschedule")
	}
}

func TestTeaClockIgnoresUnknownIDs(t *testing.T) {
	c := newTeaClock()
	c.Every(time.Second, func() { t.Fatalf("unexpected call") })
	c.drain()
	c.fire(triggerMsg{id: 42})
	if cmd := c.drain(); cmd != nil {
		t.Fatalf("unknown id must not schedule ticks")
	}
}

func TestTeaClockRejectsNonPositiveInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	newTeaClock().Every(0, func() {})
}
