package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/ui/style"
)

var sparkChars = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a price series as a row of block characters with an
// optional min/max/last readout. It keeps at most width points; older
// points fall off the left edge.
type Sparkline struct {
	data     []float64
	width    int
	color    lipgloss.Color
	showText bool
}

// NewSparkline creates a sparkline of the given width.
func NewSparkline(width int) *Sparkline {
	return &Sparkline{
		width: width,
		color: style.DefaultPalette().Info,
	}
}

// SetData replaces the data points, keeping the most recent width values.
func (s *Sparkline) SetData(data []float64) *Sparkline {
	if len(data) > s.width {
		data = data[len(data)-s.width:]
	}
	s.data = make([]float64, len(data))
	copy(s.data, data)
	return s
}

// SetWidth resizes the sparkline.
func (s *Sparkline) SetWidth(width int) *Sparkline {
	s.width = width
	if len(s.data) > width {
		s.data = s.data[len(s.data)-width:]
	}
	return s
}

// SetColor sets the line color.
func (s *Sparkline) SetColor(color lipgloss.Color) *Sparkline {
	s.color = color
	return s
}

// ShowText toggles the numeric readout after the blocks.
func (s *Sparkline) ShowText(show bool) *Sparkline {
	s.showText = show
	return s
}

// View renders the sparkline.
func (s *Sparkline) View() string {
	if len(s.data) == 0 {
		return lipgloss.NewStyle().
			Foreground(style.DefaultPalette().TextMuted).
			Render(strings.Repeat("▁", s.width))
	}

	blocks := lipgloss.NewStyle().Foreground(s.color).Render(s.render())
	if !s.showText {
		return blocks
	}

	min, max := s.bounds()
	last := s.data[len(s.data)-1]

	trend := "→"
	trendColor := style.DefaultPalette().TextMuted
	if len(s.data) >= 2 {
		prev := s.data[len(s.data)-2]
		switch {
		case last > prev:
			trend = "↗"
			trendColor = style.DefaultPalette().Success
		case last < prev:
			trend = "↘"
			trendColor = style.DefaultPalette().Error
		}
	}

	readout := fmt.Sprintf(" %s $%.2f  (lo %.2f / hi %.2f)",
		lipgloss.NewStyle().Foreground(trendColor).Render(trend),
		last, min, max)
	return blocks + readout
}

func (s *Sparkline) render() string {
	min, max := s.bounds()
	span := max - min

	var b strings.Builder
	for _, v := range s.data {
		idx := 0
		if span > 0 {
			idx = int((v - min) / span * float64(len(sparkChars)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

func (s *Sparkline) bounds() (min, max float64) {
	min, max = s.data[0], s.data[0]
	for _, v := range s.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
