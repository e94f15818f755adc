package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/ui/style"
)

// Column describes one table column.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table is a minimal fixed-width table for positions and standings.
type Table struct {
	columns []Column
	rows    [][]string

	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// NewTable creates an empty table.
func NewTable() *Table {
	palette := style.DefaultPalette()
	return &Table{
		headerStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Bold(true),
		cellStyle: lipgloss.NewStyle().
			Foreground(palette.Text),
	}
}

// AddColumn appends a column definition.
func (t *Table) AddColumn(title string, width int, align lipgloss.Position) *Table {
	t.columns = append(t.columns, Column{Title: title, Width: width, Align: align})
	return t
}

// SetRows replaces all rows. Cells may carry their own lipgloss styling;
// width padding is applied on render.
func (t *Table) SetRows(rows [][]string) *Table {
	t.rows = rows
	return t
}

// View renders the table.
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return ""
	}

	var b strings.Builder

	for i, col := range t.columns {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(t.headerStyle.Render(pad(col.Title, col.Width, col.Align)))
	}

	for _, row := range t.rows {
		b.WriteString("\n")
		for i, col := range t.columns {
			if i > 0 {
				b.WriteString("  ")
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(t.cellStyle.Render(pad(cell, col.Width, col.Align)))
		}
	}

	return b.String()
}

func pad(s string, width int, align lipgloss.Position) string {
	length := lipgloss.Width(s)
	if length >= width {
		return s
	}
	gap := strings.Repeat(" ", width-length)
	switch align {
	case lipgloss.Right:
		return gap + s
	case lipgloss.Center:
		half := len(gap) / 2
		return gap[:half] + s + gap[half:]
	default:
		return s + gap
	}
}
