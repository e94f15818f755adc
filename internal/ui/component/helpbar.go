package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/ui/style"
)

// HelpBar renders a single line of key hints at the bottom of a screen.
type HelpBar struct {
	bindings []key.Binding

	keyStyle  lipgloss.Style
	descStyle lipgloss.Style
	sepStyle  lipgloss.Style
}

// NewHelpBar creates an empty help bar.
func NewHelpBar() *HelpBar {
	palette := style.DefaultPalette()
	return &HelpBar{
		keyStyle: lipgloss.NewStyle().
			Foreground(palette.Primary),
		descStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
		sepStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}
}

// SetKeyBindings replaces the hints.
func (h *HelpBar) SetKeyBindings(bindings ...key.Binding) *HelpBar {
	h.bindings = bindings
	return h
}

// View renders the hints.
func (h *HelpBar) View() string {
	parts := make([]string, 0, len(h.bindings))
	for _, b := range h.bindings {
		help := b.Help()
		parts = append(parts,
			h.keyStyle.Render(help.Key)+" "+h.descStyle.Render(help.Desc))
	}
	return strings.Join(parts, h.sepStyle.Render("  •  "))
}
