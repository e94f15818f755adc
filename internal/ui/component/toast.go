package component

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/ui/style"
)

// Toast renders the single active notification. The dispatcher guarantees
// at most one exists; the toast just draws whatever message it is given.
type Toast struct {
	toastStyle lipgloss.Style
}

// NewToast creates the toast.
func NewToast() *Toast {
	palette := style.DefaultPalette()
	return &Toast{
		toastStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Info).
			Bold(true).
			Padding(0, 2),
	}
}

// View renders the message, or nothing when it is empty.
func (t *Toast) View(message string) string {
	if message == "" {
		return ""
	}
	return t.toastStyle.Render("◈ " + message)
}
