package component

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/domain"
	"github.com/vitalyze/terminal/internal/ui/style"
)

// EventBanner shows the active market event, or a calm strip when the
// market is stable.
type EventBanner struct {
	width int

	activeStyle lipgloss.Style
	stableStyle lipgloss.Style
}

// NewEventBanner creates the banner.
func NewEventBanner() *EventBanner {
	palette := style.DefaultPalette()
	return &EventBanner{
		activeStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Warning).
			Bold(true).
			Padding(0, 1),
		stableStyle: lipgloss.NewStyle().
			Foreground(palette.Success).
			Padding(0, 1),
	}
}

// SetWidth sets the banner width.
func (b *EventBanner) SetWidth(width int) *EventBanner {
	b.width = width
	return b
}

// View renders the banner for the given event (nil means stable market).
func (b *EventBanner) View(event *domain.MarketEvent) string {
	if event == nil {
		return b.stableStyle.Width(b.width).
			Render("MARKET STABLE - NORMAL TRADING CONDITIONS")
	}
	text := fmt.Sprintf("MARKET EVENT: %s (%d ticks remaining)",
		event.Description, event.Remaining)
	return b.activeStyle.Width(b.width).Render(text)
}
