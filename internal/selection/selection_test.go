package selection

import (
	"errors"
	"testing"

	"github.com/verte-zerg/shadow/internal/catalog"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Sport: "Boxing",
		Exercises: []catalog.Exercise{
			{Name: "Jab"},
			{Name: "Hooks"},
			{Name: "Kicks"},
		},
		PeriodsInMin: []float64{3, 1, 5},
		Paces: []catalog.Pace{
			{TimeoutInSec: 40},
			{TimeoutInSec: 10},
			{TimeoutInSec: 30},
			{TimeoutInSec: 20},
		},
	}
}

func TestDefaults(t *testing.T) {
	s := Defaults(testCatalog())
	if s.Len() != 3 {
		t.Fatalf("expected 3 flags, got %d", s.Len())
	}
	if !s.IsEmpty() {
		t.Fatalf("expected all flags unchecked")
	}
	if s.Duration() != 1 {
		t.Fatalf("expected minimum duration 1, got %v", s.Duration())
	}
	if s.Pace() != 30 {
		t.Fatalf("expected upper-median pace 30, got %v", s.Pace())
	}
}

func TestDefaultsPaceOddCount(t *testing.T) {
	c := testCatalog()
	c.Paces = []catalog.Pace{{TimeoutInSec: 5}, {TimeoutInSec: 1}, {TimeoutInSec: 3}}
	if got := Defaults(c).Pace(); got != 3 {
		t.Fatalf("expected median pace 3, got %v", got)
	}
	c.Paces = []catalog.Pace{{TimeoutInSec: 2}, {TimeoutInSec: 4}}
	if got := Defaults(c).Pace(); got != 4 {
		t.Fatalf("expected pace 4, got %v", got)
	}
}

func TestDefaultsDoesNotReorderCatalog(t *testing.T) {
	c := testCatalog()
	_ = Defaults(c)
	if c.Paces[0].TimeoutInSec != 40 || c.PeriodsInMin[0] != 3 {
		t.Fatalf("catalog was modified: %+v %v", c.Paces, c.PeriodsInMin)
	}
}

func TestToggle(t *testing.T) {
	s := Defaults(testCatalog())
	if err := s.Toggle(1, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.IsEmpty() || !s.Checked(1) || s.Checked(0) {
		t.Fatalf("unexpected flags: %v", s.Flags())
	}
	if err := s.Toggle(1, false); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !s.IsEmpty() {
		t.Fatalf("expected empty selection after unchecking")
	}
}

func TestToggleOutOfRange(t *testing.T) {
	s := Defaults(testCatalog())
	for _, idx := range []int{-1, 3, 10} {
		if err := s.Toggle(idx, true); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	if !s.IsEmpty() {
		t.Fatalf("failed toggles must not change flags")
	}
}

func TestSettersDoNotValidate(t *testing.T) {
	s := Defaults(testCatalog())
	s.SetDuration(42)
	s.SetPace(0.5)
	if s.Duration() != 42 || s.Pace() != 0.5 {
		t.Fatalf("unexpected scalars: %v %v", s.Duration(), s.Pace())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := Defaults(testCatalog())
	c := s.Clone()
	if err := s.Toggle(0, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	s.SetPace(99)
	if c.Checked(0) || c.Pace() == 99 {
		t.Fatalf("clone shares state with original")
	}
	flags := s.Flags()
	flags[0] = false
	if !s.Checked(0) {
		t.Fatalf("Flags must return a copy")
	}
}
