package clock

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManualFiresInOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.Every(300*time.Millisecond, func() { got = append(got, "slow") })
	m.Every(100*time.Millisecond, func() { got = append(got, "fast") })
	m.Advance(300 * time.Millisecond)
	want := []string{"fast", "fast", "slow", "fast"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if m.Now() != 300*time.Millisecond {
		t.Fatalf("unexpected now %v", m.Now())
	}
}

func TestManualStopInsideCallback(t *testing.T) {
	m := NewManual()
	fired := 0
	var other Trigger
	var self Trigger
	self = m.Every(100*time.Millisecond, func() {
		fired++
		self.Stop()
		other.Stop()
	})
	otherFired := 0
	other = m.Every(100*time.Millisecond, func() { otherFired++ })
	m.Advance(time.Second)
	if fired != 1 {
		t.Fatalf("expected one callback before stop, got %d", fired)
	}
	if otherFired != 0 {
		t.Fatalf("stopped trigger fired %d times", otherFired)
	}
	if m.Active() != 0 {
		t.Fatalf("expected no active triggers, got %d", m.Active())
	}
}

func TestManualRejectsNonPositiveInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewManual().Every(0, func() {})
}

func TestLoopRunsCallbacksSerially(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	inside := false
	count := 0
	var trig Trigger
	trig = l.Every(2*time.Millisecond, func() {
		if inside {
			t.Errorf("callbacks overlapped")
		}
		inside = true
		count++
		if count == 3 {
			trig.Stop()
			l.Exit()
		}
		inside = false
	})
	if err := l.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 callbacks, got %d", count)
	}
}

func TestLoopStoppedTriggerDoesNotFire(t *testing.T) {
	l := NewLoop()
	fired := 0
	trig := l.Every(time.Millisecond, func() { fired++ })
	trig.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := l.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
	if fired != 0 {
		t.Fatalf("stopped trigger fired %d times", fired)
	}
}
