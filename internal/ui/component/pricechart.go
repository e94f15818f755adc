package component

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/monitor"
	"github.com/vitalyze/terminal/internal/ui/style"
)

// PriceChart is the compact standalone price chart. It keeps its own
// short history, sized by configuration, independent of the dashboard's
// full buffer, and shows the change over the window it holds.
type PriceChart struct {
	buffer *monitor.PriceBuffer
	spark  *Sparkline

	titleStyle lipgloss.Style
	priceStyle lipgloss.Style
	upStyle    lipgloss.Style
	downStyle  lipgloss.Style
	mutedStyle lipgloss.Style
}

// NewPriceChart creates a chart holding at most capacity points.
func NewPriceChart(capacity int) *PriceChart {
	palette := style.DefaultPalette()
	return &PriceChart{
		buffer: monitor.NewPriceBuffer(capacity),
		spark:  NewSparkline(capacity),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Bold(true),
		priceStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),
		upStyle: lipgloss.NewStyle().
			Foreground(palette.Success),
		downStyle: lipgloss.NewStyle().
			Foreground(palette.Error),
		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}
}

// Seed preloads the chart from already-observed points, keeping the most
// recent ones that fit.
func (c *PriceChart) Seed(points []monitor.PricePoint) *PriceChart {
	for _, p := range points {
		c.buffer.Append(p)
	}
	return c
}

// Observe appends one price point.
func (c *PriceChart) Observe(p monitor.PricePoint) *PriceChart {
	c.buffer.Append(p)
	return c
}

// Len returns the number of points currently held.
func (c *PriceChart) Len() int {
	return c.buffer.Len()
}

// Capacity returns the maximum number of points held.
func (c *PriceChart) Capacity() int {
	return c.buffer.Capacity()
}

// View renders the chart: current price, change over the held window and
// the sparkline.
func (c *PriceChart) View() string {
	last, ok := c.buffer.Last()
	if !ok {
		return c.mutedStyle.Render("waiting for market data...")
	}

	header := c.titleStyle.Render("CORN FUTURES ") +
		c.priceStyle.Render(fmt.Sprintf("$%.2f", last.Price))

	points := c.buffer.Points()
	first := points[0]
	if first.Price != 0 && len(points) > 1 {
		change := (last.Price - first.Price) / first.Price * 100
		deltaStyle := c.upStyle
		if change < 0 {
			deltaStyle = c.downStyle
		}
		header += deltaStyle.Render(fmt.Sprintf("  %+.2f%%", change))
	}

	c.spark.SetData(c.buffer.Prices())
	return lipgloss.JoinVertical(lipgloss.Left, header, c.spark.View())
}
