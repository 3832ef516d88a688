package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/store"
)

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{d: 0, want: "0:00"},
		{d: -time.Second, want: "0:00"},
		{d: 900 * time.Millisecond, want: "0:01"},
		{d: 59 * time.Second, want: "0:59"},
		{d: time.Minute, want: "1:00"},
		{d: 3*time.Minute + 5*time.Second, want: "3:05"},
	}
	for _, tc := range cases {
		if got := FormatRemaining(tc.d); got != tc.want {
			t.Fatalf("%v: expected %q, got %q", tc.d, tc.want, got)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := FormatMinutes(1); got != "1 minute" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatMinutes(2.5); got != "2.5 minutes" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestRenderCatalog(t *testing.T) {
	c := catalog.Catalog{
		Sport: "Boxing",
		Exercises: []catalog.Exercise{
			{Name: "Punches", Description: "hands", Drills: []catalog.Drill{
				{ShortName: "1", LongName: "Jab"},
				{ShortName: "1-2", LongName: "Jab, Cross"},
			}},
			{Name: "Empty"},
		},
		PeriodsInMin: []float64{3, 1},
		Paces:        []catalog.Pace{{TimeoutInSec: 1, Description: "Fast"}, {TimeoutInSec: 4, Description: "Slow"}},
	}
	var buf bytes.Buffer
	if err := RenderCatalog(&buf, c); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Shadow Boxing", "Punches (hands)", "Jab, Cross", "Training time (minutes): 1, 3"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("missing %q in output:\n%s", needle, out)
		}
	}
	slow := strings.Index(out, "Slow (4 seconds per combo)")
	fast := strings.Index(out, "Fast (1 seconds per combo)")
	if slow < 0 || fast < 0 || slow > fast {
		t.Fatalf("expected paces slowest first:\n%s", out)
	}
}

func TestRenderLibrary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLibrary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No catalogs found.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
	buf.Reset()
	err := RenderLibrary(&buf, []store.Summary{{Name: "kb", Sport: "Kickboxing", Exercises: 4, Drills: 20, ImportedAt: time.Unix(0, 0)}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Kickboxing") || !strings.Contains(buf.String(), "20") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
