// Package report renders catalogs and session figures as plain text.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/store"
)

// Title returns the heading shown for a catalog.
func Title(c catalog.Catalog) string {
	return fmt.Sprintf("Shadow %s \U0001F44A", c.Sport)
}

// FormatRemaining renders a duration as m:ss, rounding up to whole seconds.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// FormatMinutes renders a duration in minutes for pickers and summaries.
func FormatMinutes(minutes float64) string {
	if minutes == 1 {
		return "1 minute"
	}
	return catalog.FormatNumber(minutes) + " minutes"
}

// RenderCatalog prints a catalog: exercises and drills in catalog order,
// durations ascending and paces slowest first.
func RenderCatalog(w io.Writer, c catalog.Catalog) error {
	if _, err := fmt.Fprintln(w, Title(c)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	headers := []string{"#", "Exercise", "Drill", "Description"}
	rows := make([][]string, 0, c.DrillCount())
	for i, ex := range c.Exercises {
		label := ex.Name
		if ex.Description != "" {
			label = fmt.Sprintf("%s (%s)", ex.Name, ex.Description)
		}
		if len(ex.Drills) == 0 {
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), label, "-", ""})
			continue
		}
		for j, d := range ex.Drills {
			num, name := "", ""
			if j == 0 {
				num, name = fmt.Sprintf("%d", i+1), label
			}
			desc := d.LongName
			if d.Description != "" {
				desc = fmt.Sprintf("%s (%s)", d.LongName, d.Description)
			}
			rows = append(rows, []string{num, name, d.ShortName, desc})
		}
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	periods := make([]string, 0, len(c.PeriodsInMin))
	for _, p := range c.SortedPeriods() {
		periods = append(periods, catalog.FormatNumber(p))
	}
	if _, err := fmt.Fprintf(w, "Training time (minutes): %s\n", strings.Join(periods, ", ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Speed:"); err != nil {
		return err
	}
	for _, p := range c.PacesSlowestFirst() {
		if _, err := fmt.Fprintf(w, "  %s\n", catalog.PaceLabel(p)); err != nil {
			return err
		}
	}
	return nil
}

// RenderLibrary prints the catalogs stored in a library.
func RenderLibrary(w io.Writer, summaries []store.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No catalogs found.")
		return err
	}
	headers := []string{"Name", "Sport", "Exercises", "Drills", "Imported"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Name,
			s.Sport,
			fmt.Sprintf("%d", s.Exercises),
			fmt.Sprintf("%d", s.Drills),
			s.ImportedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
