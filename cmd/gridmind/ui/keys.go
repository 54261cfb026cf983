package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gridmind/internal/grid"
)

// KeyMap defines the play view key bindings.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Wait  key.Binding
	Pause key.Binding
	Auto  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns arrow keys plus vim and wasd movement.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("→/l", "right")),
		Wait:  key.NewBinding(key.WithKeys("."), key.WithHelp(".", "wait")),
		Pause: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Auto:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bot on/off")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Auto, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Wait},
		{k.Pause, k.Auto, k.Quit},
	}
}

// action maps a movement key to a target action.
func (k KeyMap) action(msg tea.KeyMsg) (grid.Action, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return grid.Up, true
	case key.Matches(msg, k.Down):
		return grid.Down, true
	case key.Matches(msg, k.Left):
		return grid.Left, true
	case key.Matches(msg, k.Right):
		return grid.Right, true
	case key.Matches(msg, k.Wait):
		return grid.Wait, true
	}
	return grid.Wait, false
}
