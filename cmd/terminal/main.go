package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vitalyze/terminal/internal/api"
	"github.com/vitalyze/terminal/internal/config"
	"github.com/vitalyze/terminal/internal/domain"
	"github.com/vitalyze/terminal/internal/logger"
	"github.com/vitalyze/terminal/internal/monitor"
	"github.com/vitalyze/terminal/internal/storage"
	"github.com/vitalyze/terminal/internal/ui"
	"github.com/vitalyze/terminal/internal/ui/router"
	"github.com/vitalyze/terminal/internal/ui/screen"
	"go.uber.org/zap"
)

// AppModel is the top-level bubbletea model. It owns the screen router
// and the poll session lifecycle: the session exists exactly as long as a
// team session does.
type AppModel struct {
	ctx      context.Context
	services *ui.Services
	router   *router.Router
	session  *monitor.Session
	logger   *zap.Logger
	width    int
	height   int
}

// NewAppModel builds the app. When a team was restored from the saved id
// the dashboard opens directly and polling starts; otherwise the login
// screen is shown.
func NewAppModel(ctx context.Context, services *ui.Services, restored *domain.Team) *AppModel {
	m := &AppModel{
		ctx:      ctx,
		services: services,
		logger:   services.Logger.Named("app"),
	}

	if restored != nil {
		m.startSession(restored.ID)
		m.router = router.New(screen.NewDashboardScreen(services))
	} else {
		m.router = router.New(screen.NewLoginScreen(services))
	}
	return m
}

// Init initializes the application.
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		ui.ListenBus(),
		tea.EnterAltScreen,
	)
}

// Update handles application-level updates.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.router.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stopSession()
			return m, tea.Quit
		case "ctrl+l":
			return m, m.logout()
		default:
			if cmd := m.router.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case ui.RouterMsg:
		if cmd := m.navigate(msg.To); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ui.TeamCreatedMsg:
		if cmd := m.onTeamCreated(msg.Team); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ui.SessionInvalidatedMsg:
		if cmd := m.onSessionInvalidated(msg.TeamID); cmd != nil {
			cmds = append(cmds, cmd)
		}

	default:
		if cmd := m.router.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// Keep draining the bus.
	cmds = append(cmds, ui.ListenBus())
	return m, tea.Batch(cmds...)
}

// View renders the current screen.
func (m *AppModel) View() string {
	return m.router.View()
}

func (m *AppModel) navigate(route ui.Route) tea.Cmd {
	switch route {
	case ui.RouteLogin:
		return m.router.Replace(screen.NewLoginScreen(m.services))
	case ui.RouteDashboard:
		return m.router.Replace(screen.NewDashboardScreen(m.services))
	case ui.RouteStrategy:
		return m.router.Replace(screen.NewStrategyScreen(m.services))
	case ui.RouteLeaderboard:
		return m.router.Replace(screen.NewLeaderboardScreen(m.services))
	case ui.RouteNews:
		return m.router.Replace(screen.NewNewsScreen(m.services))
	default:
		return nil
	}
}

// onTeamCreated persists the new id, starts polling and opens the
// dashboard.
func (m *AppModel) onTeamCreated(team *domain.Team) tea.Cmd {
	if err := m.services.Sessions.Save(team.ID); err != nil {
		m.logger.Warn("failed to persist team id", zap.Error(err))
	}
	m.services.Store.Seed(team)
	m.startSession(team.ID)
	return m.router.Replace(screen.NewDashboardScreen(m.services))
}

// onSessionInvalidated drops the stale id and returns to login. The
// session has already torn itself down.
func (m *AppModel) onSessionInvalidated(teamID string) tea.Cmd {
	m.logger.Warn("session invalidated by server", zap.String("team_id", teamID))
	m.session = nil
	if err := m.services.Sessions.Clear(); err != nil {
		m.logger.Warn("failed to clear team id", zap.Error(err))
	}
	return m.router.Replace(screen.NewLoginScreen(m.services))
}

// logout is the user-initiated variant of session teardown.
func (m *AppModel) logout() tea.Cmd {
	if m.session == nil {
		return nil
	}
	m.logger.Info("logging out")
	m.stopSession()
	if err := m.services.Sessions.Clear(); err != nil {
		m.logger.Warn("failed to clear team id", zap.Error(err))
	}
	return m.router.Replace(screen.NewLoginScreen(m.services))
}

func (m *AppModel) startSession(teamID string) {
	session, err := monitor.NewSession(m.ctx, &monitor.SessionConfig{
		TeamID:         teamID,
		Client:         m.services.Client,
		Store:          m.services.Store,
		Notifier:       m.services.Notifier,
		Bus:            ui.MonitorBus{},
		Logger:         m.services.Logger,
		Interval:       m.services.Config.PollInterval(),
		RequestTimeout: m.services.Config.RequestTimeout(),
	})
	if err != nil {
		m.logger.Error("failed to create poll session", zap.Error(err))
		return
	}
	m.session = session
	m.session.Start()
}

func (m *AppModel) stopSession() {
	if m.session != nil {
		m.session.Stop()
		m.session = nil
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns stdout, so logs go to the file only.
	log, err := logger.New(logger.Options{
		Debug: cfg.DebugLogging,
		File:  cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions, err := storage.NewSessionStore("", log)
	if err != nil {
		log.Fatal("failed to open session store", zap.Error(err))
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout(), log)
	store := monitor.NewStore(cfg.HistorySize, log)
	bus := ui.MonitorBus{}
	notifier := monitor.NewNotifier(store, bus, cfg.NotificationTTL(), log)
	gateway := monitor.NewStrategyGateway(client, notifier, bus, cfg.RequestTimeout(), log)

	services := &ui.Services{
		Client:   client,
		Store:    store,
		Notifier: notifier,
		Gateway:  gateway,
		Sessions: sessions,
		Config:   cfg,
		Logger:   log,
	}

	restored := restoreTeam(ctx, services)

	app := NewAppModel(ctx, services, restored)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Error("terminal exited with error", zap.Error(err))
		os.Exit(1)
	}

	app.stopSession()
	log.Info("terminal closed")
}

// restoreTeam tries the saved team id, if any. A 404 means the saved
// session is stale: the id is dropped and the user lands on login.
// Transient errors also fall through to login rather than blocking
// startup; the saved id is kept for next time.
func restoreTeam(ctx context.Context, services *ui.Services) *domain.Team {
	log := services.Logger

	teamID, err := services.Sessions.Load()
	if err != nil {
		log.Warn("failed to read saved team id", zap.Error(err))
		return nil
	}
	if teamID == "" {
		return nil
	}

	team, err := services.Client.GetTeamWithRetry(ctx, teamID, 3)
	if err != nil {
		if errors.Is(err, api.ErrTeamNotFound) {
			log.Info("saved team id no longer valid, clearing",
				zap.String("team_id", teamID))
			if clearErr := services.Sessions.Clear(); clearErr != nil {
				log.Warn("failed to clear team id", zap.Error(clearErr))
			}
		} else {
			log.Warn("could not restore session", zap.Error(err))
		}
		return nil
	}

	// The restore fetch is the first successful team fetch: it sets the
	// trade baseline, so polling never reports trades from a prior run.
	services.Store.Seed(team)

	log.Info("session restored",
		zap.String("team_id", team.ID),
		zap.String("name", team.Name))
	return team
}
