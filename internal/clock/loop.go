package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop is a real-time Clock. Ticker goroutines only enqueue; Run executes the
// callbacks one at a time on the calling goroutine.
//
// Ticks missed while Run is busy are dropped, as with time.Ticker, so a
// callback that counts ticks as fixed intervals can fall behind wall time.
type Loop struct {
	events   chan func()
	done     chan struct{}
	exitOnce sync.Once
}

type loopTrigger struct {
	stopped atomic.Bool
	cancel  context.CancelFunc
}

func (t *loopTrigger) Stop() {
	t.stopped.Store(true)
	t.cancel()
}

// NewLoop returns a Loop ready to accept triggers.
func NewLoop() *Loop {
	return &Loop{
		events: make(chan func(), 16),
		done:   make(chan struct{}),
	}
}

// Every implements Clock.
func (l *Loop) Every(d time.Duration, fn func()) Trigger {
	checkInterval(d)
	ctx, cancel := context.WithCancel(context.Background())
	t := &loopTrigger{cancel: cancel}
	fire := func() {
		if t.stopped.Load() {
			return
		}
		fn()
	}
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-l.done:
				return
			case <-ticker.C:
				select {
				case l.events <- fire:
				case <-ctx.Done():
					return
				case <-l.done:
					return
				}
			}
		}
	}()
	return t
}

// Exit makes Run return nil once the current callback finishes.
func (l *Loop) Exit() {
	l.exitOnce.Do(func() {
		close(l.done)
	})
}

// Run executes callbacks until Exit is called or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.events:
			fn()
		}
	}
}
