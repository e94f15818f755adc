package style

import "github.com/charmbracelet/lipgloss"

var (
	// Primary colors
	Green  = lipgloss.Color("#2AFFAA") // positive PnL, long, success
	Red    = lipgloss.Color("#FF5555") // negative PnL, short, errors
	Yellow = lipgloss.Color("#FFB500") // warnings, active market event
	Blue   = lipgloss.Color("#3B82F6") // info, price line
	Cyan   = lipgloss.Color("#00E5FF") // primary highlight

	// Base colors
	Base03 = lipgloss.Color("#1B1D23") // background
	Base01 = lipgloss.Color("#6C7280") // muted text
	Base2  = lipgloss.Color("#ECEFF4") // primary text
	Base1  = lipgloss.Color("#B4BCC8") // secondary text
)

// Palette provides centralized color management.
type Palette struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color

	Background    lipgloss.Color
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	TextSecondary lipgloss.Color

	Long  lipgloss.Color
	Short lipgloss.Color
}

// DefaultPalette returns the default color palette.
func DefaultPalette() Palette {
	return Palette{
		Primary:       Cyan,
		Success:       Green,
		Error:         Red,
		Warning:       Yellow,
		Info:          Blue,
		Background:    Base03,
		Text:          Base2,
		TextMuted:     Base01,
		TextSecondary: Base1,
		Long:          Green,
		Short:         Red,
	}
}
