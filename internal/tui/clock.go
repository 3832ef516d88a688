package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/shadow/internal/clock"
)

// triggerMsg is delivered when a trigger interval elapses.
type triggerMsg struct {
	id int
}

// teaClock implements clock.Clock on top of tea.Tick. Callbacks run inside
// Update, so they share the program's single event loop.
type teaClock struct {
	nextID   int
	triggers map[int]*teaTrigger
	pending  []tea.Cmd
}

type teaTrigger struct {
	id    int
	every time.Duration
	fn    func()
	clock *teaClock
}

func (t *teaTrigger) Stop() {
	delete(t.clock.triggers, t.id)
}

func newTeaClock() *teaClock {
	return &teaClock{triggers: map[int]*teaTrigger{}}
}

// Every implements clock.Clock.
func (c *teaClock) Every(d time.Duration, fn func()) clock.Trigger {
	if d <= 0 {
		panic("tui: non-positive interval for Every")
	}
	c.nextID++
	t := &teaTrigger{id: c.nextID, every: d, fn: fn, clock: c}
	c.triggers[t.id] = t
	c.pending = append(c.pending, t.schedule())
	return t
}

func (t *teaTrigger) schedule() tea.Cmd {
	id := t.id
	return tea.Tick(t.every, func(time.Time) tea.Msg {
		return triggerMsg{id: id}
	})
}

// fire runs the trigger behind msg. Ticks of stopped triggers are dropped.
func (c *teaClock) fire(msg triggerMsg) {
	t, ok := c.triggers[msg.id]
	if !ok {
		return
	}
	c.pending = append(c.pending, t.schedule())
	t.fn()
}

// active returns the number of live triggers.
func (c *teaClock) active() int {
	return len(c.triggers)
}

// drain returns the ticks scheduled since the last call.
func (c *teaClock) drain() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	cmds := c.pending
	c.pending = nil
	return tea.Batch(cmds...)
}
