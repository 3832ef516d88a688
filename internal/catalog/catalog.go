// Package catalog defines the drill catalog document and its validation.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrInvalid marks a catalog whose content cannot drive a session.
var ErrInvalid = errors.New("invalid catalog")

// Drill is a single callable move.
type Drill struct {
	ShortName   string `json:"shortName" toml:"shortName"`
	LongName    string `json:"longName" toml:"longName"`
	Description string `json:"description,omitempty" toml:"description,omitempty"`
}

// Exercise is a named, selectable group of drills.
type Exercise struct {
	Name        string  `json:"name" toml:"name"`
	Description string  `json:"description,omitempty" toml:"description,omitempty"`
	Drills      []Drill `json:"drills" toml:"drills"`
}

// Pace is the interval between two call-outs.
type Pace struct {
	TimeoutInSec float64 `json:"timeoutInSec" toml:"timeoutInSec"`
	Description  string  `json:"description,omitempty" toml:"description,omitempty"`
}

// Catalog is the loaded document. It is treated as read-only once loaded.
type Catalog struct {
	Sport        string     `json:"sport" toml:"sport"`
	Exercises    []Exercise `json:"exercises" toml:"exercises"`
	PeriodsInMin []float64  `json:"periodsInMin" toml:"periodsInMin"`
	Paces        []Pace     `json:"paces" toml:"paces"`
}

// LoadError reports a catalog that could not be fetched, decoded or validated.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load catalog: %v", e.Err)
	}
	return fmt.Sprintf("failed to load catalog %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Validate rejects catalogs with no usable durations or paces.
func Validate(c Catalog) error {
	if len(c.PeriodsInMin) == 0 {
		return fmt.Errorf("%w: periodsInMin is empty", ErrInvalid)
	}
	for _, p := range c.PeriodsInMin {
		if !fitsDuration(p, time.Minute) {
			return fmt.Errorf("%w: period %v must be a positive number of minutes", ErrInvalid, p)
		}
	}
	if len(c.Paces) == 0 {
		return fmt.Errorf("%w: paces is empty", ErrInvalid)
	}
	for _, p := range c.Paces {
		if !fitsDuration(p.TimeoutInSec, time.Second) {
			return fmt.Errorf("%w: pace timeoutInSec %v must be a positive number of seconds", ErrInvalid, p.TimeoutInSec)
		}
	}
	for i, ex := range c.Exercises {
		if ex.Name == "" {
			return fmt.Errorf("%w: exercise %d has no name", ErrInvalid, i)
		}
	}
	return nil
}

// fitsDuration reports whether v units is a finite, positive time.Duration
// of at least one nanosecond.
func fitsDuration(v float64, unit time.Duration) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return false
	}
	d := v * float64(unit)
	return d >= 1 && d < math.MaxInt64
}

// SortedPeriods returns the durations in ascending order.
func (c Catalog) SortedPeriods() []float64 {
	out := make([]float64, len(c.PeriodsInMin))
	copy(out, c.PeriodsInMin)
	sort.Float64s(out)
	return out
}

// PacesSlowestFirst returns the paces ordered by descending timeout.
func (c Catalog) PacesSlowestFirst() []Pace {
	out := make([]Pace, len(c.Paces))
	copy(out, c.Paces)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeoutInSec > out[j].TimeoutInSec
	})
	return out
}

// DrillCount returns the total number of drills across all exercises.
func (c Catalog) DrillCount() int {
	total := 0
	for _, ex := range c.Exercises {
		total += len(ex.Drills)
	}
	return total
}

// ExerciseIndex returns the index of the exercise with the given name.
func (c Catalog) ExerciseIndex(name string) (int, bool) {
	for i, ex := range c.Exercises {
		if ex.Name == name {
			return i, true
		}
	}
	return -1, false
}

// PaceLabel renders a pace the way the pace picker lists it.
func PaceLabel(p Pace) string {
	if p.Description == "" {
		return fmt.Sprintf("%s seconds per combo", FormatNumber(p.TimeoutInSec))
	}
	return fmt.Sprintf("%s (%s seconds per combo)", p.Description, FormatNumber(p.TimeoutInSec))
}

// FormatNumber prints whole numbers without a fractional part.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
