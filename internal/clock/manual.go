package clock

import "time"

// Manual is a deterministic Clock advanced explicitly by the caller.
type Manual struct {
	now      time.Duration
	seq      int
	triggers []*manualTrigger
}

type manualTrigger struct {
	every   time.Duration
	next    time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTrigger) Stop() {
	t.stopped = true
}

// NewManual returns a Manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Every implements Clock.
func (m *Manual) Every(d time.Duration, fn func()) Trigger {
	checkInterval(d)
	m.seq++
	t := &manualTrigger{every: d, next: m.now + d, seq: m.seq, fn: fn}
	m.triggers = append(m.triggers, t)
	return t
}

// Now returns the time elapsed since the clock was created.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Active returns the number of triggers that have not been stopped.
func (m *Manual) Active() int {
	m.compact()
	return len(m.triggers)
}

// Advance moves the clock forward by d, firing due triggers in time order.
// Triggers due at the same instant fire in registration order.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.next
		t.next += t.every
		t.fn()
	}
	m.now = target
	m.compact()
}

func (m *Manual) nextDue(target time.Duration) *manualTrigger {
	var due *manualTrigger
	for _, t := range m.triggers {
		if t.stopped || t.next > target {
			continue
		}
		if due == nil || t.next < due.next || (t.next == due.next && t.seq < due.seq) {
			due = t
		}
	}
	return due
}

func (m *Manual) compact() {
	kept := m.triggers[:0]
	for _, t := range m.triggers {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(m.triggers); i++ {
		m.triggers[i] = nil
	}
	m.triggers = kept
}
