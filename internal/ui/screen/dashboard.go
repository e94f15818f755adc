package screen

import (
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

// clockTickMsg drives the 1s session clock, independent of the poll
// cadence.
type clockTickMsg time.Time

// DashboardScreen is the main live view: price chart, event banner,
// derived financials and the positions table. Everything it shows comes
// from the last applied snapshot; the derived metrics are recomputed on
// every render.
type DashboardScreen struct {
	services *ui.Services
	keyMap   ui.KeyMap
	width    int
	height   int

	state        monitor.ViewState
	notification string
	startedAt    time.Time
	clock        time.Time

	header *component.StatusHeader
	banner *component.EventBanner
	spark  *component.Sparkline
	table  *component.Table
	toast  *component.Toast
	help   *component.HelpBar

	titleStyle lipgloss.Style
	priceStyle lipgloss.Style
	mutedStyle lipgloss.Style
	boxStyle   lipgloss.Style
}

// NewDashboardScreen creates the dashboard.
func NewDashboardScreen(services *ui.Services) *DashboardScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	s := &DashboardScreen{
		services:  services,
		keyMap:    keyMap,
		state:     services.Store.State(),
		startedAt: time.Now(),
		clock:     time.Now(),
		header:    component.NewStatusHeader(),
		banner:    component.NewEventBanner(),
		spark:     component.NewSparkline(50).ShowText(true),
		table:     component.NewTable(),
		toast:     component.NewToast(),
		help:      component.NewHelpBar(),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),
		priceStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),
		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 1),
	}

	s.table.
		AddColumn("ASSET", 12, lipgloss.Left).
		AddColumn("TYPE", 6, lipgloss.Left).
		AddColumn("ENTRY", 10, lipgloss.Right).
		AddColumn("QTY", 10, lipgloss.Right).
		AddColumn("UNREALIZED P&L", 15, lipgloss.Right)

	s.help.SetKeyBindings(
		keyMap.Strategy, keyMap.Leaderboard, keyMap.News,
		keyMap.Logout, keyMap.Quit,
	)

	return s
}

// Init starts the session clock.
func (s *DashboardScreen) Init() tea.Cmd {
	return s.tickClock()
}

func (s *DashboardScreen) tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// Update handles screen updates.
func (s *DashboardScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.SnapshotMsg:
		s.state = msg.State

	case ui.NotificationMsg:
		s.notification = msg.Message

	case ui.NotificationClearedMsg:
		s.notification = ""

	case clockTickMsg:
		s.clock = time.Time(msg)
		return s, s.tickClock()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.Strategy):
			return s, navigate(ui.RouteStrategy)
		case key.Matches(msg, s.keyMap.Leaderboard):
			return s, navigate(ui.RouteLeaderboard)
		case key.Matches(msg, s.keyMap.News):
			return s, navigate(ui.RouteNews)
		}
	}

	return s, nil
}

// SetSize stores the terminal dimensions.
func (s *DashboardScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.header.SetWidth(width)
	s.banner.SetWidth(width)
	if width > 40 {
		s.spark.SetWidth(width - 40)
	}
}

// View renders the dashboard.
func (s *DashboardScreen) View() string {
	team := s.state.Team
	tick := s.state.LatestTick

	price := 0.0
	volatility := 0.0
	serverTick := int64(0)
	var activeEvent *domain.MarketEvent
	if tick != nil {
		price = tick.Price
		volatility = tick.Volatility
		serverTick = tick.Tick
		activeEvent = tick.ActiveEvent
	}

	teamName := ""
	balance := 0.0
	if team != nil {
		teamName = team.Name
		balance = team.Balance
	}

	s.header.
		SetTeam(teamName).
		SetFinancials(balance, monitor.Equity(team, price), monitor.SessionPnL(team, price)).
		SetServerTick(serverTick)

	s.spark.SetData(s.state.History.Prices())

	chart := lipgloss.JoinVertical(lipgloss.Left,
		s.titleStyle.Render("CORN FUTURES")+
			s.priceStyle.Render(fmt.Sprintf("  $%.2f", price))+
			s.mutedStyle.Render(fmt.Sprintf("  volatility %.2f%%", volatility*100)),
		s.spark.View(),
	)

	sections := []string{
		s.header.View(),
		s.banner.View(activeEvent),
		s.boxStyle.Render(chart),
		s.boxStyle.Render(s.renderPositions(team, price)),
		s.renderStatus(team, tick),
	}

	if toast := s.toast.View(s.notification); toast != "" {
		sections = append(sections, toast)
	}
	sections = append(sections, s.help.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *DashboardScreen) renderPositions(team *domain.Team, price float64) string {
	title := s.mutedStyle.Render("ACTIVE POSITIONS")
	if team == nil || len(team.Positions) == 0 {
		return title + "\n" + s.mutedStyle.Render("  no active positions")
	}

	palette := style.DefaultPalette()
	rows := make([][]string, 0, len(team.Positions))
	for _, pos := range team.Positions {
		pnl := monitor.UnrealizedPnL(pos, price)
		pnlColor := palette.Success
		if pnl < 0 {
			pnlColor = palette.Error
		}
		typeColor := palette.Long
		if pos.Type == domain.PositionShort {
			typeColor = palette.Short
		}
		rows = append(rows, []string{
			pos.Asset,
			lipgloss.NewStyle().Foreground(typeColor).Render(string(pos.Type)),
			fmt.Sprintf("$%.2f", pos.EntryPrice),
			fmt.Sprintf("%.4f", pos.Quantity),
			lipgloss.NewStyle().Foreground(pnlColor).Render(fmt.Sprintf("$%+.2f", pnl)),
		})
	}

	return title + "\n" + s.table.SetRows(rows).View()
}

func (s *DashboardScreen) renderStatus(team *domain.Team, tick *domain.MarketTick) string {
	trades := 0
	strategy := ""
	if team != nil {
		trades = team.TradesCount
		strategy = string(team.Strategy)
	}
	elapsed := s.clock.Sub(s.startedAt).Round(time.Second)
	line := s.mutedStyle.Render(fmt.Sprintf(
		"strategy %s  •  trades %d  •  session %s", strategy, trades, elapsed))

	if tick != nil {
		palette := style.DefaultPalette()
		label := sentimentLabel(tick.Sentiment)
		color := palette.TextMuted
		switch label {
		case "BULLISH":
			color = palette.Success
		case "BEARISH":
			color = palette.Error
		}
		line += s.mutedStyle.Render("  •  sentiment ") +
			lipgloss.NewStyle().Foreground(color).Render(label) +
			s.mutedStyle.Render(fmt.Sprintf(" %+.2f", tick.Sentiment))
	}
	return line
}

// sentimentLabel buckets the server's sentiment score into the three
// states the market widget distinguishes.
func sentimentLabel(v float64) string {
	switch {
	case v > 0.02:
		return "BULLISH"
	case v < -0.02:
		return "BEARISH"
	default:
		return "NEUTRAL"
	}
}

func navigate(to ui.Route) tea.Cmd {
	return func() tea.Msg {
		return ui.RouterMsg{To: to}
	}
}
