package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vitalyze/terminal/internal/domain"
	"github.com/vitalyze/terminal/internal/monitor"
)

// Route identifies a navigable screen.
type Route int

const (
	RouteLogin Route = iota
	RouteDashboard
	RouteStrategy
	RouteLeaderboard
	RouteNews
)

// Tea message types for UI communication

// RouterMsg requests navigation between screens.
type RouterMsg struct {
	To Route
}

// SnapshotMsg carries the freshly applied view state after a poll cycle.
type SnapshotMsg struct {
	State       monitor.ViewState
	Transitions []monitor.Transition
}

// NotificationMsg shows a toast.
type NotificationMsg struct {
	Message string
	Expiry  time.Time
}

// NotificationClearedMsg hides the toast.
type NotificationClearedMsg struct{}

// SessionInvalidatedMsg reports that the server rejected the team id.
type SessionInvalidatedMsg struct {
	TeamID string
}

// TeamCreatedMsg reports a successful login/registration.
type TeamCreatedMsg struct {
	Team *domain.Team
}

// StrategyDeployedMsg reports a settled strategy submission.
type StrategyDeployedMsg struct {
	Strategy domain.StrategyType
	Err      error
}

// NewsMsg carries a refreshed news feed.
type NewsMsg struct {
	Items []domain.NewsItem
	Err   error
}

// LeaderboardMsg carries refreshed standings.
type LeaderboardMsg struct {
	Entries []domain.LeaderboardEntry
	Err     error
}

// ErrorMsg reports a failure a screen should display.
type ErrorMsg struct {
	Title string
	Err   error
}

// Bus is the channel bridging background goroutines (poll session,
// notifier, gateway) onto the bubbletea message loop.
var Bus = make(chan tea.Msg, 1024)

// ListenBus returns a command that waits for the next bus message.
func ListenBus() tea.Cmd {
	return func() tea.Msg {
		return <-Bus
	}
}

// publish drops the message if the bus is full rather than blocking a
// poll cycle on a stalled UI.
func publish(msg tea.Msg) {
	select {
	case Bus <- msg:
	default:
	}
}

// MonitorBus adapts the monitor.EventBus interface onto the UI bus.
type MonitorBus struct{}

// Publish translates monitor events into tea messages.
func (MonitorBus) Publish(event interface{}) {
	switch ev := event.(type) {
	case monitor.SnapshotAppliedEvent:
		publish(SnapshotMsg{State: ev.State, Transitions: ev.Transitions})
	case monitor.SessionInvalidatedEvent:
		publish(SessionInvalidatedMsg{TeamID: ev.TeamID})
	case monitor.NotificationShownEvent:
		publish(NotificationMsg{Message: ev.Message, Expiry: ev.Expiry})
	case monitor.NotificationClearedEvent:
		publish(NotificationClearedMsg{})
	case monitor.StrategyDeployedEvent:
		publish(StrategyDeployedMsg{Strategy: ev.Strategy, Err: ev.Err})
	}
}
