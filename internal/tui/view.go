package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/report"
	"github.com/verte-zerg/shadow/internal/session"
)

const (
	accentColor  = "#C89A3A"
	maxBodyWidth = 72
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	sectionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor))
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	comboStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor)).Bold(true)
	longNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle     = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	var footer string
	switch m.ctrl.Phase() {
	case session.PhaseActive:
		body = m.sessionView()
		footer = m.help.ShortHelpView(m.keys.sessionHelp())
	case session.PhaseIdle:
		body = m.setupView()
		footer = m.help.ShortHelpView(m.keys.setupHelp())
	default:
		panic(fmt.Sprintf("tui: unknown phase %v", m.ctrl.Phase()))
	}
	footer = footerStyle.Render(footer)

	if m.width <= 0 || m.height <= 0 {
		return body + "\n\n" + footer
	}
	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	top := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	bottom := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return top + "\n" + bottom
}

func (m *Model) setupView() string {
	width := m.bodyWidth()
	sel := m.ctrl.Selection()

	var b strings.Builder
	b.WriteString(titleStyle.Render(report.Title(m.catalog)))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("Drills"))
	b.WriteString("\n")
	for i, ex := range m.catalog.Exercises {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		box := "[ ] "
		style := mutedStyle
		if sel.Checked(i) {
			box = "[x] "
			style = checkedStyle
		}
		line := ex.Name
		if ex.Description != "" {
			line += " - " + ex.Description
		}
		line = runewidth.Truncate(line, width-runewidth.StringWidth(pointer+box), "…")
		b.WriteString(pointer)
		b.WriteString(style.Render(box + line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Time"))
	b.WriteString("  ")
	b.WriteString(report.FormatMinutes(sel.Duration()))
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Speed"))
	b.WriteString(" ")
	b.WriteString(runewidth.Truncate(m.paceLabel(sel.Pace()), width-6, "…"))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.statusStyle().Render(m.status))
	} else if sel.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Select drills to start"))
	}
	return b.String()
}

func (m *Model) sessionView() string {
	s, ok := m.ctrl.Session()
	if !ok {
		return ""
	}
	combo := comboStyle.Render(m.combo.ShortName)
	if m.combo.LongName != "" && m.combo.LongName != m.combo.ShortName {
		combo += "\n" + longNameStyle.Render(m.combo.LongName)
	}
	card := cardStyle.Render(combo)

	remaining := mutedStyle.Render(report.FormatRemaining(s.Remaining()) + " left")
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(report.Title(m.catalog)),
		"",
		card,
		"",
		m.progress.ViewAs(m.fraction),
		remaining,
	)
}

func (m *Model) paceLabel(seconds float64) string {
	for _, p := range m.paces {
		if p.TimeoutInSec == seconds {
			return catalog.PaceLabel(p)
		}
	}
	return catalog.FormatNumber(seconds) + " seconds per combo"
}

func (m *Model) statusStyle() lipgloss.Style {
	if m.status == "Select drills to start" {
		return hintStyle
	}
	return mutedStyle
}

func (m *Model) bodyWidth() int {
	if m.width <= 0 || m.width > maxBodyWidth {
		return maxBodyWidth
	}
	return m.width
}

func progressWidth(termWidth int) int {
	w := termWidth - 8
	if w > maxBodyWidth-8 {
		w = maxBodyWidth - 8
	}
	if w < 10 {
		w = 10
	}
	return w
}
