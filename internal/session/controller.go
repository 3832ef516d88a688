package session

import (
	"fmt"
	"time"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/clock"
	"github.com/verte-zerg/shadow/internal/scheduler"
	"github.com/verte-zerg/shadow/internal/selection"
	"github.com/verte-zerg/shadow/internal/sequence"
	"github.com/verte-zerg/shadow/internal/timer"
)

// DefaultCadence is how often the session timer advances.
const DefaultCadence = 100 * time.Millisecond

// Phase is the externally visible controller state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type state interface {
	phase() Phase
}

type idle struct{}

func (idle) phase() Phase { return PhaseIdle }

type active struct {
	session *Session
}

func (active) phase() Phase { return PhaseActive }

// Option configures a Controller.
type Option func(*Controller)

// WithCadence sets the progress tick interval.
func WithCadence(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.cadence = d
		}
	}
}

// WithSource sets the random source used by the combo selector.
func WithSource(src scheduler.Source) Option {
	return func(c *Controller) {
		if src != nil {
			c.rnd = src
		}
	}
}

// Controller is the session state machine. It is not safe for concurrent
// use; drive it from the same scheduling domain as its clock.
type Controller struct {
	catalog  catalog.Catalog
	clock    clock.Clock
	listener Listener
	rnd      scheduler.Source
	cadence  time.Duration

	sel   selection.State
	state state
}

// NewController returns an idle controller with default selections for cat.
func NewController(cat catalog.Catalog, clk clock.Clock, listener Listener, opts ...Option) *Controller {
	if listener == nil {
		listener = ListenerFuncs{}
	}
	c := &Controller{
		catalog:  cat,
		clock:    clk,
		listener: listener,
		rnd:      scheduler.NewSource(0),
		cadence:  DefaultCadence,
		sel:      selection.Defaults(cat),
		state:    idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.state.phase()
}

// Session returns the running session, if any.
func (c *Controller) Session() (*Session, bool) {
	switch st := c.state.(type) {
	case active:
		return st.session, true
	case idle:
		return nil, false
	default:
		panic(fmt.Sprintf("session: unknown state %T", c.state))
	}
}

// Selection returns a copy of the live selection.
func (c *Controller) Selection() selection.State {
	return c.sel.Clone()
}

// Toggle checks or unchecks an exercise. Selections are frozen while a
// session is active.
func (c *Controller) Toggle(index int, checked bool) error {
	if err := c.editable(); err != nil {
		return err
	}
	return c.sel.Toggle(index, checked)
}

// SetDuration sets the duration in minutes for the next session.
func (c *Controller) SetDuration(minutes float64) error {
	if err := c.editable(); err != nil {
		return err
	}
	c.sel.SetDuration(minutes)
	return nil
}

// SetPace sets the pace in seconds for the next session.
func (c *Controller) SetPace(seconds float64) error {
	if err := c.editable(); err != nil {
		return err
	}
	c.sel.SetPace(seconds)
	return nil
}

func (c *Controller) editable() error {
	switch c.state.(type) {
	case idle:
		return nil
	case active:
		return ErrActive
	default:
		panic(fmt.Sprintf("session: unknown state %T", c.state))
	}
}

// Start builds the pool from sel and begins a session. sel is copied; later
// edits to it do not reach the running session.
func (c *Controller) Start(sel selection.State) error {
	switch c.state.(type) {
	case idle:
	case active:
		return ErrActive
	default:
		panic(fmt.Sprintf("session: unknown state %T", c.state))
	}

	pool := sequence.Build(c.catalog.Exercises, sel.Flags())
	if len(pool) == 0 {
		return ErrEmptySelection
	}
	pace := time.Duration(sel.Pace() * float64(time.Second))
	if pace <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidPace, sel.Pace())
	}

	s := newSession(pool, pace, timer.FromMinutes(sel.Duration()), c.rnd)
	c.state = active{session: s}
	s.triggers = []clock.Trigger{
		c.clock.Every(pace, func() { c.paceTick(s) }),
		c.clock.Every(c.cadence, func() { c.progressTick(s) }),
	}
	c.listener.OnComboChanged(s.Current())
	return nil
}

// Cancel stops the running session without a completion event. It is a
// no-op while idle.
func (c *Controller) Cancel() {
	c.finish(false)
}

// Close tears the controller down, cancelling any running session.
func (c *Controller) Close() {
	c.finish(false)
}

func (c *Controller) paceTick(s *Session) {
	if !c.owns(s) {
		return
	}
	s.combo.Tick()
	c.listener.OnComboChanged(s.Current())
}

func (c *Controller) progressTick(s *Session) {
	if !c.owns(s) {
		return
	}
	done := s.timer.Tick(c.cadence)
	c.listener.OnProgress(s.timer.Progress())
	if done {
		c.finish(true)
	}
}

func (c *Controller) owns(s *Session) bool {
	switch st := c.state.(type) {
	case active:
		return st.session == s
	case idle:
		return false
	default:
		panic(fmt.Sprintf("session: unknown state %T", c.state))
	}
}

// finish is the single exit path out of the active state.
func (c *Controller) finish(completed bool) {
	switch st := c.state.(type) {
	case idle:
		return
	case active:
		st.session.release()
		c.state = idle{}
		c.sel = selection.Defaults(c.catalog)
		if completed {
			c.listener.OnComplete()
		}
	default:
		panic(fmt.Sprintf("session: unknown state %T", c.state))
	}
}
