package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Drill", "Name", "Count"}
	rows := [][]string{
		{"1-2", "Jab, Cross", "12"},
		{"LK", "Low kick", "3"},
	}
	rightAlign := map[int]bool{2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Drill Name       Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "1-2   Jab, Cross    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "LK    Low kick       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableTrimsTrailingPadding(t *testing.T) {
	lines := formatTable([]string{"A", "Description"}, [][]string{{"1", ""}}, nil)
	if lines[1] != "1" {
		t.Fatalf("expected trailing padding trimmed, got %q", lines[1])
	}
}
