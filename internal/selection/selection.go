// Package selection tracks the user's drill group, duration and pace choices.
package selection

import (
	"errors"
	"fmt"
	"sort"

	"github.com/verte-zerg/shadow/internal/catalog"
)

// ErrIndexOutOfRange is returned when a toggle addresses a missing exercise.
var ErrIndexOutOfRange = errors.New("exercise index out of range")

// State holds one flag per catalog exercise plus the chosen duration and pace.
type State struct {
	flags    []bool
	duration float64
	pace     float64
}

// Defaults derives the initial selection for a catalog: nothing checked, the
// shortest duration and the upper-median pace.
func Defaults(c catalog.Catalog) State {
	return State{
		flags:    make([]bool, len(c.Exercises)),
		duration: minPeriod(c.PeriodsInMin),
		pace:     middlePace(c.Paces),
	}
}

func minPeriod(periods []float64) float64 {
	if len(periods) == 0 {
		return 0
	}
	lowest := periods[0]
	for _, p := range periods[1:] {
		if p < lowest {
			lowest = p
		}
	}
	return lowest
}

// middlePace sorts by timeout and picks index n/2, so an even count selects
// the larger of the two central values.
func middlePace(paces []catalog.Pace) float64 {
	if len(paces) == 0 {
		return 0
	}
	timeouts := make([]float64, len(paces))
	for i, p := range paces {
		timeouts[i] = p.TimeoutInSec
	}
	sort.Float64s(timeouts)
	return timeouts[len(timeouts)/2]
}

// Toggle sets the flag of the exercise at index.
func (s *State) Toggle(index int, checked bool) error {
	if index < 0 || index >= len(s.flags) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.flags))
	}
	s.flags[index] = checked
	return nil
}

// SetDuration replaces the chosen duration in minutes.
func (s *State) SetDuration(minutes float64) {
	s.duration = minutes
}

// SetPace replaces the chosen pace in seconds.
func (s *State) SetPace(seconds float64) {
	s.pace = seconds
}

// IsEmpty reports whether no exercise is checked.
func (s State) IsEmpty() bool {
	for _, f := range s.flags {
		if f {
			return false
		}
	}
	return true
}

// Checked reports the flag at index; out-of-range indices are unchecked.
func (s State) Checked(index int) bool {
	if index < 0 || index >= len(s.flags) {
		return false
	}
	return s.flags[index]
}

// Flags returns a copy of the per-exercise flags.
func (s State) Flags() []bool {
	out := make([]bool, len(s.flags))
	copy(out, s.flags)
	return out
}

// Len returns the number of exercises tracked.
func (s State) Len() int {
	return len(s.flags)
}

// Duration returns the chosen duration in minutes.
func (s State) Duration() float64 {
	return s.duration
}

// Pace returns the chosen pace in seconds.
func (s State) Pace() float64 {
	return s.pace
}

// Clone returns a deep copy.
func (s State) Clone() State {
	return State{flags: s.Flags(), duration: s.duration, pace: s.pace}
}
