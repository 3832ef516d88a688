package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/session"
)

type seqSource struct {
	next int
}

func (s *seqSource) Intn(n int) int {
	v := s.next % n
	s.next++
	return v
}

func newTestModel(t *testing.T, initial Initial) *Model {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	m, err := NewModel(cat, initial, &seqSource{}, session.DefaultCadence)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestStartWithoutSelectionShowsHint(t *testing.T) {
	m := newTestModel(t, Initial{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("expected no command")
	}
	if m.ctrl.Phase() != session.PhaseIdle {
		t.Fatalf("expected idle, got %v", m.ctrl.Phase())
	}
	if m.status != "Select drills to start" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if !strings.Contains(m.View(), "Select drills to start") {
		t.Fatalf("expected hint in view")
	}
}

func TestToggleAndStart(t *testing.T) {
	m := newTestModel(t, Initial{})

	m.Update(runeKey('x'))
	if !m.ctrl.Selection().Checked(0) {
		t.Fatalf("expected first exercise checked")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected tick commands after start")
	}
	if m.ctrl.Phase() != session.PhaseActive {
		t.Fatalf("expected active, got %v", m.ctrl.Phase())
	}
	if m.clock.active() != 2 {
		t.Fatalf("expected 2 triggers, got %d", m.clock.active())
	}
	want := m.catalog.Exercises[0].Drills[0]
	if m.combo != want {
		t.Fatalf("expected initial combo %+v, got %+v", want, m.combo)
	}
	if !strings.Contains(m.View(), want.ShortName) {
		t.Fatalf("expected combo in session view")
	}
}

func TestSessionCompletesAndResets(t *testing.T) {
	m := newTestModel(t, Initial{Exercises: []int{0}})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	s, ok := m.ctrl.Session()
	if !ok {
		t.Fatalf("expected running session")
	}
	ticks := int(s.Period() / session.DefaultCadence)
	// Trigger 1 is the pace, trigger 2 the progress cadence.
	for i := 0; i < ticks; i++ {
		m.Update(triggerMsg{id: 2})
	}

	if m.ctrl.Phase() != session.PhaseIdle {
		t.Fatalf("expected idle after %d ticks", ticks)
	}
	if m.completed != 1 {
		t.Fatalf("expected one completion, got %d", m.completed)
	}
	if m.clock.active() != 0 {
		t.Fatalf("expected triggers released, got %d", m.clock.active())
	}
	if !m.ctrl.Selection().IsEmpty() {
		t.Fatalf("expected selection reset after completion")
	}

	combo := m.combo
	_, cmd := m.Update(triggerMsg{id: 1})
	if cmd != nil || m.combo != combo {
		t.Fatalf("expected stale trigger to be dropped")
	}
}

func TestPaceTriggerAdvancesCombo(t *testing.T) {
	m := newTestModel(t, Initial{Exercises: []int{1}})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	first := m.combo

	_, cmd := m.Update(triggerMsg{id: 1})
	if cmd == nil {
		t.Fatalf("expected trigger to be rescheduled")
	}
	if m.combo == first {
		t.Fatalf("expected combo to change, still %+v", first)
	}
}

func TestCancelReturnsToSetup(t *testing.T) {
	m := newTestModel(t, Initial{Exercises: []int{0}})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.ctrl.Phase() != session.PhaseIdle {
		t.Fatalf("expected idle after cancel")
	}
	if m.completed != 0 {
		t.Fatalf("cancel must not count as completion")
	}
	if m.clock.active() != 0 {
		t.Fatalf("expected triggers released, got %d", m.clock.active())
	}
	if m.status != "Session stopped" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestCycleDurationAndPace(t *testing.T) {
	m := newTestModel(t, Initial{})
	periods := m.catalog.SortedPeriods()
	if got := m.ctrl.Selection().Duration(); got != periods[0] {
		t.Fatalf("expected default duration %v, got %v", periods[0], got)
	}

	m.Update(runeKey('d'))
	if got := m.ctrl.Selection().Duration(); got != periods[1] {
		t.Fatalf("expected duration %v, got %v", periods[1], got)
	}
	m.Update(runeKey('D'))
	m.Update(runeKey('D'))
	if got := m.ctrl.Selection().Duration(); got != periods[len(periods)-1] {
		t.Fatalf("expected wrap to %v, got %v", periods[len(periods)-1], got)
	}

	paces := m.catalog.PacesSlowestFirst()
	start := m.ctrl.Selection().Pace()
	m.Update(runeKey('p'))
	got := m.ctrl.Selection().Pace()
	if got == start {
		t.Fatalf("expected pace to change from %v", start)
	}
	found := false
	for _, p := range paces {
		if p.TimeoutInSec == got {
			found = true
		}
	}
	if !found {
		t.Fatalf("pace %v not in catalog", got)
	}
}

func TestInitialSelection(t *testing.T) {
	m := newTestModel(t, Initial{Duration: 5, Pace: 1, Exercises: []int{0, 2}})
	sel := m.ctrl.Selection()
	if sel.Duration() != 5 || sel.Pace() != 1 {
		t.Fatalf("unexpected scalars %v %v", sel.Duration(), sel.Pace())
	}
	if !sel.Checked(0) || sel.Checked(1) || !sel.Checked(2) {
		t.Fatalf("unexpected flags %v", sel.Flags())
	}

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if _, err := NewModel(cat, Initial{Exercises: []int{99}}, nil, time.Second); err == nil {
		t.Fatalf("expected error for out of range exercise")
	}
}

func TestCursorMovesWithinExercises(t *testing.T) {
	m := newTestModel(t, Initial{})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatalf("cursor moved above first row")
	}
	for i := 0; i < 10; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.catalog.Exercises)-1 {
		t.Fatalf("expected cursor on last row, got %d", m.cursor)
	}
	m.Update(runeKey('x'))
	if !m.ctrl.Selection().Checked(m.cursor) {
		t.Fatalf("expected row %d checked", m.cursor)
	}
}

func TestQuitClosesSession(t *testing.T) {
	m := newTestModel(t, Initial{Exercises: []int{0}})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
	if m.ctrl.Phase() != session.PhaseIdle || m.clock.active() != 0 {
		t.Fatalf("expected session closed on quit")
	}
}

func TestWindowSizeSetsProgressWidth(t *testing.T) {
	m := newTestModel(t, Initial{})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if m.progress.Width != 32 {
		t.Fatalf("expected progress width 32, got %d", m.progress.Width)
	}
	if !strings.Contains(m.View(), "Shadow") {
		t.Fatalf("expected title in view")
	}
}
