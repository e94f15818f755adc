package screen

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/ui"
	"github.com/vitalyze/terminal/internal/ui/component"
	"github.com/vitalyze/terminal/internal/ui/router"
	"github.com/vitalyze/terminal/internal/ui/style"
)

// leaderboardTickMsg re-arms the leaderboard refresh timer. It runs on
// its own cadence, uncoordinated with the poll session.
type leaderboardTickMsg time.Time

// LeaderboardScreen shows the ranked standings of all teams in the round.
type LeaderboardScreen struct {
	services *ui.Services
	keyMap   ui.KeyMap
	width    int
	height   int

	table     *component.Table
	help      *component.HelpBar
	rows      int
	errText   string
	fetchedAt time.Time

	titleStyle lipgloss.Style
	mutedStyle lipgloss.Style
	errStyle   lipgloss.Style
	boxStyle   lipgloss.Style
}

// NewLeaderboardScreen creates the standings view.
func NewLeaderboardScreen(services *ui.Services) *LeaderboardScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	s := &LeaderboardScreen{
		services: services,
		keyMap:   keyMap,
		table:    component.NewTable(),
		help:     component.NewHelpBar(),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),
		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
		errStyle: lipgloss.NewStyle().
			Foreground(palette.Error),
		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(1, 2),
	}

	s.table.
		AddColumn("RANK", 4, lipgloss.Right).
		AddColumn("TEAM", 20, lipgloss.Left).
		AddColumn("P&L", 12, lipgloss.Right).
		AddColumn("SHARPE", 8, lipgloss.Right).
		AddColumn("ADAPTABILITY", 12, lipgloss.Right)

	s.help.SetKeyBindings(keyMap.Refresh, keyMap.Dashboard, keyMap.Back)
	return s
}

// Init fetches immediately and starts the refresh timer.
func (s *LeaderboardScreen) Init() tea.Cmd {
	return tea.Batch(s.fetch(), s.tick())
}

func (s *LeaderboardScreen) tick() tea.Cmd {
	return tea.Tick(s.services.Config.LeaderboardRefresh(), func(t time.Time) tea.Msg {
		return leaderboardTickMsg(t)
	})
}

func (s *LeaderboardScreen) fetch() tea.Cmd {
	client := s.services.Client
	timeout := s.services.Config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		entries, err := client.GetLeaderboard(ctx)
		return ui.LeaderboardMsg{Entries: entries, Err: err}
	}
}

// Update handles refreshes and navigation.
func (s *LeaderboardScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case leaderboardTickMsg:
		return s, tea.Batch(s.fetch(), s.tick())

	case ui.LeaderboardMsg:
		if msg.Err != nil {
			// Stale standings stay on screen; only the error line
			// changes.
			s.errText = msg.Err.Error()
			return s, nil
		}
		s.errText = ""
		s.fetchedAt = time.Now()
		rows := make([][]string, 0, len(msg.Entries))
		for _, e := range msg.Entries {
			rows = append(rows, []string{
				fmt.Sprintf("%d", e.Rank),
				e.TeamName,
				fmt.Sprintf("$%+.2f", e.PnL),
				fmt.Sprintf("%.2f", e.SharpeRatio),
				fmt.Sprintf("%.0f", e.AdaptabilityScore),
			})
		}
		s.rows = len(rows)
		s.table.SetRows(rows)

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
func (s *LeaderboardScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the standings.
func (s *LeaderboardScreen) View() string {
	lines := []string{s.titleStyle.Render("LEADERBOARD"), ""}
	if s.rows == 0 {
		lines = append(lines, s.mutedStyle.Render("no standings yet"))
	} else {
		lines = append(lines, s.table.View())
	}
	if s.errText != "" {
		lines = append(lines, "", s.errStyle.Render("refresh failed: "+s.errText))
	} else if !s.fetchedAt.IsZero() {
		lines = append(lines, "", s.mutedStyle.Render(
			"updated "+s.fetchedAt.Format("15:04:05")))
	}

	body := s.boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.JoinVertical(lipgloss.Left, body, s.help.View())
}
