// Package tui provides the Bubble Tea drill session interface.
package tui

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/scheduler"
	"github.com/verte-zerg/shadow/internal/session"
)

// Initial holds choices applied before the first session. Zero values keep
// the catalog defaults.
type Initial struct {
	Duration  float64
	Pace      float64
	Exercises []int
}

// Model implements the Bubble Tea drill UI.
type Model struct {
	catalog catalog.Catalog
	ctrl    *session.Controller
	clock   *teaClock
	periods []float64
	paces   []catalog.Pace

	keys     keyMap
	help     help.Model
	progress progress.Model

	width  int
	height int

	cursor    int
	combo     catalog.Drill
	fraction  float64
	status    string
	completed int
}

// NewModel constructs a drill TUI model.
func NewModel(cat catalog.Catalog, initial Initial, src scheduler.Source, cadence time.Duration) (*Model, error) {
	m := &Model{
		catalog:  cat,
		clock:    newTeaClock(),
		periods:  cat.SortedPeriods(),
		paces:    cat.PacesSlowestFirst(),
		keys:     newKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithSolidFill(accentColor), progress.WithoutPercentage()),
	}
	m.ctrl = session.NewController(cat, m.clock, m, session.WithSource(src), session.WithCadence(cadence))
	if err := m.applyInitial(initial); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) applyInitial(initial Initial) error {
	if initial.Duration > 0 {
		if err := m.ctrl.SetDuration(initial.Duration); err != nil {
			return err
		}
	}
	if initial.Pace > 0 {
		if err := m.ctrl.SetPace(initial.Pace); err != nil {
			return err
		}
	}
	for _, idx := range initial.Exercises {
		if err := m.ctrl.Toggle(idx, true); err != nil {
			return fmt.Errorf("failed to preselect exercise: %w", err)
		}
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = progressWidth(msg.Width)
		return m, nil
	case triggerMsg:
		m.clock.fire(msg)
		return m, m.clock.drain()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.ctrl.Close()
			return m, tea.Quit
		}
		switch m.ctrl.Phase() {
		case session.PhaseActive:
			return m.updateSession(msg)
		case session.PhaseIdle:
			return m.updateSetup(msg)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.catalog.Exercises)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		sel := m.ctrl.Selection()
		if err := m.ctrl.Toggle(m.cursor, !sel.Checked(m.cursor)); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
	case key.Matches(msg, m.keys.Duration):
		m.cycleDuration(1)
	case key.Matches(msg, m.keys.DurationBack):
		m.cycleDuration(-1)
	case key.Matches(msg, m.keys.Pace):
		m.cyclePace(1)
	case key.Matches(msg, m.keys.PaceBack):
		m.cyclePace(-1)
	case key.Matches(msg, m.keys.Start):
		return m.start()
	}
	return m, nil
}

func (m *Model) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		if s, ok := m.ctrl.Session(); ok {
			log.Printf("session %s cancelled after %s", s.ID(), s.Elapsed())
		}
		m.ctrl.Cancel()
		m.status = "Session stopped"
		return m, nil
	}
	return m, nil
}

func (m *Model) start() (tea.Model, tea.Cmd) {
	m.fraction = 0
	if err := m.ctrl.Start(m.ctrl.Selection()); err != nil {
		if errors.Is(err, session.ErrEmptySelection) {
			m.status = "Select drills to start"
			return m, nil
		}
		m.status = err.Error()
		return m, nil
	}
	m.status = ""
	if s, ok := m.ctrl.Session(); ok {
		log.Printf("session %s started: %d drills, pace %s, period %s", s.ID(), s.PoolSize(), s.Pace(), s.Period())
	}
	return m, m.clock.drain()
}

// cycleDuration steps through the durations in ascending order.
func (m *Model) cycleDuration(step int) {
	if len(m.periods) == 0 {
		return
	}
	cur := m.ctrl.Selection().Duration()
	idx := nextIndex(len(m.periods), indexOfFloat(m.periods, cur), step)
	if err := m.ctrl.SetDuration(m.periods[idx]); err != nil {
		m.status = err.Error()
	}
}

// cyclePace steps through the paces, slowest first.
func (m *Model) cyclePace(step int) {
	if len(m.paces) == 0 {
		return
	}
	cur := m.ctrl.Selection().Pace()
	found := -1
	for i, p := range m.paces {
		if p.TimeoutInSec == cur {
			found = i
			break
		}
	}
	idx := nextIndex(len(m.paces), found, step)
	if err := m.ctrl.SetPace(m.paces[idx].TimeoutInSec); err != nil {
		m.status = err.Error()
	}
}

func indexOfFloat(values []float64, v float64) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}

func nextIndex(n, cur, step int) int {
	if cur < 0 {
		return 0
	}
	return ((cur+step)%n + n) % n
}

// OnComboChanged implements session.Listener.
func (m *Model) OnComboChanged(drill catalog.Drill) {
	m.combo = drill
}

// OnProgress implements session.Listener.
func (m *Model) OnProgress(fraction float64) {
	m.fraction = fraction
}

// OnComplete implements session.Listener.
func (m *Model) OnComplete() {
	m.completed++
	m.fraction = 1
	m.status = fmt.Sprintf("Session complete (%d this run)", m.completed)
	log.Printf("session complete, %d this run", m.completed)
}
