package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Tab   key.Binding

	// Screens
	Dashboard   key.Binding
	Strategy    key.Binding
	Leaderboard key.Binding
	News        key.Binding

	// Actions
	Deploy  key.Binding
	Refresh key.Binding
	Logout  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "less"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "more"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dashboard"),
		),
		Strategy: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "strategy"),
		),
		Leaderboard: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "leaderboard"),
		),
		News: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "news"),
		),
		Deploy: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "deploy"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logout"),
		),
	}
}
