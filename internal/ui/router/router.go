package router

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is a view the router can display.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Router swaps between top-level screens. The terminal has a flat set of
// views rather than a deep stack, so navigation replaces the current
// screen.
type Router struct {
	current Screen
	width   int
	height  int
}

// New creates a router showing the initial screen.
func New(initial Screen) *Router {
	return &Router{current: initial}
}

// Init initializes the current screen.
func (r *Router) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

// Update forwards a message to the current screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if r.current == nil {
		return nil
	}
	updated, cmd := r.current.Update(msg)
	r.current = updated
	return cmd
}

// View renders the current screen.
func (r *Router) View() string {
	if r.current == nil {
		return ""
	}
	return r.current.View()
}

// Replace swaps in a new screen and initializes it.
func (r *Router) Replace(screen Screen) tea.Cmd {
	screen.SetSize(r.width, r.height)
	r.current = screen
	return screen.Init()
}

// SetSize propagates terminal dimensions.
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height
	if r.current != nil {
		r.current.SetSize(width, height)
	}
}

// Current returns the visible screen.
func (r *Router) Current() Screen {
	return r.current
}
