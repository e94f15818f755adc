package screen

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/domain"
	"github.com/vitalyze/terminal/internal/monitor"
	"github.com/vitalyze/terminal/internal/ui"
	"github.com/vitalyze/terminal/internal/ui/component"
	"github.com/vitalyze/terminal/internal/ui/router"
	"github.com/vitalyze/terminal/internal/ui/style"
)

// newsTickMsg re-arms the news refresh timer.
type newsTickMsg time.Time

// NewsScreen shows the simulated news wire, sentiment-colored.
type NewsScreen struct {
	services *ui.Services
	keyMap   ui.KeyMap
	width    int
	height   int

	items   []domain.NewsItem
	errText string
	chart   *component.PriceChart
	help    *component.HelpBar

	titleStyle    lipgloss.Style
	mutedStyle    lipgloss.Style
	errStyle      lipgloss.Style
	positiveStyle lipgloss.Style
	negativeStyle lipgloss.Style
	neutralStyle  lipgloss.Style
	boxStyle      lipgloss.Style
}

// NewNewsScreen creates the news view.
func NewNewsScreen(services *ui.Services) *NewsScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	// The compact chart keeps its own short window, seeded from the
	// history already observed so it is not blank on entry.
	chart := component.NewPriceChart(services.Config.ChartPoints).
		Seed(services.Store.State().History.Points())

	s := &NewsScreen{
		services: services,
		keyMap:   keyMap,
		chart:    chart,
		help:     component.NewHelpBar(),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),
		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
		errStyle: lipgloss.NewStyle().
			Foreground(palette.Error),
		positiveStyle: lipgloss.NewStyle().
			Foreground(palette.Success),
		negativeStyle: lipgloss.NewStyle().
			Foreground(palette.Error),
		neutralStyle: lipgloss.NewStyle().
			Foreground(palette.TextSecondary),
		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(1, 2),
	}

	s.help.SetKeyBindings(keyMap.Refresh, keyMap.Dashboard, keyMap.Back)
	return s
}

// Init fetches immediately and starts the refresh timer.
func (s *NewsScreen) Init() tea.Cmd {
	return tea.Batch(s.fetch(), s.tick())
}

func (s *NewsScreen) tick() tea.Cmd {
	return tea.Tick(s.services.Config.NewsRefresh(), func(t time.Time) tea.Msg {
		return newsTickMsg(t)
	})
}

func (s *NewsScreen) fetch() tea.Cmd {
	client := s.services.Client
	timeout := s.services.Config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		items, err := client.GetEvents(ctx)
		return ui.NewsMsg{Items: items, Err: err}
	}
}

// Update handles refreshes and navigation.
func (s *NewsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case newsTickMsg:
		return s, tea.Batch(s.fetch(), s.tick())

	case ui.SnapshotMsg:
		if tick := msg.State.LatestTick; tick != nil {
			s.chart.Observe(monitor.PricePoint{Tick: tick.Tick, Price: tick.Price})
		}

	case ui.NewsMsg:
		if msg.Err != nil {
			s.errText = msg.Err.Error()
			return s, nil
		}
		s.errText = ""
		s.items = msg.Items

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Refresh):
			return s, s.fetch()
		case key.Matches(msg, s.keyMap.Dashboard), key.Matches(msg, s.keyMap.Back):
			return s, navigate(ui.RouteDashboard)
		}
	}

	return s, nil
}

// SetSize stores the terminal dimensions.
func (s *NewsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the feed.
func (s *NewsScreen) View() string {
	lines := []string{
		s.titleStyle.Render("MARKET NEWS"),
		"",
		s.chart.View(),
		"",
	}
	if len(s.items) == 0 {
		lines = append(lines, s.mutedStyle.Render("no headlines yet"))
	}
	for _, item := range s.items {
		marker := s.neutralStyle.Render("●")
		switch item.Sentiment {
		case "positive":
			marker = s.positiveStyle.Render("▲")
		case "negative":
			marker = s.negativeStyle.Render("▼")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			marker,
			item.Title,
			s.mutedStyle.Render(fmt.Sprintf("(impact %+.2f)", item.Impact))))
	}
	if s.errText != "" {
		lines = append(lines, "", s.errStyle.Render("refresh failed: "+s.errText))
	}

	body := s.boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.JoinVertical(lipgloss.Left, body, s.help.View())
}
