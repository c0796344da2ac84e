package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the dashboard-wide bindings; per-tab actions live in the
// component packages.
type KeyMap struct {
	Tab, ShiftTab   key.Binding
	Up, Down        key.Binding
	Refresh, Help   key.Binding
	Quit            key.Binding
	Confirm, Cancel key.Binding
}

func binding(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab:      binding("tab", "next view", "tab"),
		ShiftTab: binding("shift+tab", "previous view", "shift+tab"),
		Up:       binding("↑/k", "up", "up", "k"),
		Down:     binding("↓/j", "down", "down", "j"),
		Refresh:  binding("r", "refresh", "r"),
		Help:     binding("?", "toggle help", "?"),
		Quit:     binding("q", "quit", "q", "ctrl+c"),
		Confirm:  binding("y", "yes", "y"),
		Cancel:   binding("n", "no", "n", "esc"),
	}
}
