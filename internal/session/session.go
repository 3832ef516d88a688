// Package session runs a timed drill session: it owns the combo selector and
// the session timer and keeps a running session isolated from later edits.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/clock"
	"github.com/verte-zerg/shadow/internal/scheduler"
	"github.com/verte-zerg/shadow/internal/sequence"
	"github.com/verte-zerg/shadow/internal/timer"
)

// Session is one run from start to completion or cancellation. Its pool,
// pace and period are fixed when it starts.
type Session struct {
	id       string
	pool     sequence.Pool
	pace     time.Duration
	combo    *scheduler.Combo
	timer    *timer.Timer
	triggers []clock.Trigger
}

func newSession(pool sequence.Pool, pace, period time.Duration, rnd scheduler.Source) *Session {
	return &Session{
		id:    uuid.NewString(),
		pool:  pool,
		pace:  pace,
		combo: scheduler.New(len(pool), rnd),
		timer: timer.New(period),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Current returns the combo being called out.
func (s *Session) Current() catalog.Drill {
	return s.pool[s.combo.Current()]
}

// CurrentIndex returns the pool index of the current combo.
func (s *Session) CurrentIndex() int {
	return s.combo.Current()
}

// PoolSize returns the number of drills in the pool.
func (s *Session) PoolSize() int {
	return len(s.pool)
}

// Pace returns the interval between call-outs.
func (s *Session) Pace() time.Duration {
	return s.pace
}

// Period returns the session length.
func (s *Session) Period() time.Duration {
	return s.timer.Period()
}

// Elapsed returns the elapsed session time.
func (s *Session) Elapsed() time.Duration {
	return s.timer.Elapsed()
}

// Remaining returns the time left.
func (s *Session) Remaining() time.Duration {
	return s.timer.Remaining()
}

func (s *Session) release() {
	for _, t := range s.triggers {
		t.Stop()
	}
	s.triggers = nil
}
