package component

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/ui/style"
)

// StatusHeader is the top strip: team name, balance, equity and session
// P&L, all recomputed by the caller on every render.
type StatusHeader struct {
	teamName   string
	balance    float64
	equity     float64
	sessionPnL float64
	serverTick int64
	width      int

	container   lipgloss.Style
	title       lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	pnlPositive lipgloss.Style
	pnlNegative lipgloss.Style
}

// NewStatusHeader creates the header.
func NewStatusHeader() *StatusHeader {
	palette := style.DefaultPalette()
	return &StatusHeader{
		container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 2),
		title: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),
		label: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
		value: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),
		pnlPositive: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true),
		pnlNegative: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),
	}
}

// SetTeam sets the identity line.
func (h *StatusHeader) SetTeam(name string) *StatusHeader {
	h.teamName = name
	return h
}

// SetFinancials sets the derived money figures.
func (h *StatusHeader) SetFinancials(balance, equity, sessionPnL float64) *StatusHeader {
	h.balance = balance
	h.equity = equity
	h.sessionPnL = sessionPnL
	return h
}

// SetServerTick sets the latest server tick number.
func (h *StatusHeader) SetServerTick(tick int64) *StatusHeader {
	h.serverTick = tick
	return h
}

// SetWidth sets the header width.
func (h *StatusHeader) SetWidth(width int) *StatusHeader {
	h.width = width
	return h
}

// View renders the header.
func (h *StatusHeader) View() string {
	pnlStyle := h.pnlPositive
	if h.sessionPnL < 0 {
		pnlStyle = h.pnlNegative
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center,
		h.title.Render("VITALYZE.AI"),
		h.label.Render(" | "),
		h.value.Render(h.teamName),
		h.label.Render("    BALANCE "),
		h.value.Render(fmt.Sprintf("$%.2f", h.balance)),
		h.label.Render("    EQUITY "),
		h.value.Render(fmt.Sprintf("$%.2f", h.equity)),
		h.label.Render("    P&L "),
		pnlStyle.Render(fmt.Sprintf("$%+.2f", h.sessionPnL)),
		h.label.Render("    TICK "),
		h.value.Render(fmt.Sprintf("%d", h.serverTick)),
	)

	if h.width > 0 {
		return h.container.Width(h.width - 2).Render(line)
	}
	return h.container.Render(line)
}
