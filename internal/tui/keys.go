package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Toggle       key.Binding
	Duration     key.Binding
	DurationBack key.Binding
	Pace         key.Binding
	PaceBack     key.Binding
	Start        key.Binding
	Cancel       key.Binding
	Quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "x"),
			key.WithHelp("space", "toggle"),
		),
		Duration: key.NewBinding(
			key.WithKeys("d", "right", "l"),
			key.WithHelp("d", "time"),
		),
		DurationBack: key.NewBinding(
			key.WithKeys("D", "left", "h"),
		),
		Pace: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "speed"),
		),
		PaceBack: key.NewBinding(
			key.WithKeys("P"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) setupHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Duration, k.Pace, k.Start, k.Quit}
}

func (k keyMap) sessionHelp() []key.Binding {
	return []key.Binding{k.Cancel, k.Quit}
}
