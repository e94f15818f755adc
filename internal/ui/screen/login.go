package screen

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/ui"
	"github.com/vitalyze/terminal/internal/ui/router"
	"github.com/vitalyze/terminal/internal/ui/style"
)

// LoginScreen asks for a team name and registers it with the server. The
// server assigns the id, the default strategy and the starting balance.
type LoginScreen struct {
	services *ui.Services
	width    int
	height   int

	input      textinput.Model
	submitting bool
	errText    string

	titleStyle lipgloss.Style
	hintStyle  lipgloss.Style
	errStyle   lipgloss.Style
	boxStyle   lipgloss.Style
}

// NewLoginScreen creates the login view.
func NewLoginScreen(services *ui.Services) *LoginScreen {
	palette := style.DefaultPalette()

	input := textinput.New()
	input.Placeholder = "team name"
	input.CharLimit = 32
	input.Width = 32
	input.Focus()

	return &LoginScreen{
		services: services,
		input:    input,

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),
		hintStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
		errStyle: lipgloss.NewStyle().
			Foreground(palette.Error),
		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(1, 3),
	}
}

// Init focuses the input.
func (s *LoginScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input and submission.
func (s *LoginScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && !s.submitting {
			name := strings.TrimSpace(s.input.Value())
			if name == "" {
				s.errText = "team name cannot be empty"
				return s, nil
			}
			s.submitting = true
			s.errText = ""
			return s, s.createTeam(name)
		}

	case ui.ErrorMsg:
		s.submitting = false
		s.errText = msg.Err.Error()
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// createTeam registers the team off the UI loop. Transient transport
// errors are retried with backoff before reporting failure.
func (s *LoginScreen) createTeam(name string) tea.Cmd {
	client := s.services.Client
	timeout := s.services.Config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*timeout)
		defer cancel()

		team, err := client.CreateTeamWithRetry(ctx, name, 3)
		if err != nil {
			return ui.ErrorMsg{Title: "registration failed", Err: err}
		}
		return ui.TeamCreatedMsg{Team: team}
	}
}

// SetSize stores the terminal dimensions.
func (s *LoginScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the login form.
func (s *LoginScreen) View() string {
	lines := []string{
		s.titleStyle.Render("VITALYZE.AI - FUTURES TRADING GAME"),
		"",
		"Enter a team name to join the round:",
		s.input.View(),
	}
	if s.submitting {
		lines = append(lines, "", s.hintStyle.Render("registering team..."))
	}
	if s.errText != "" {
		lines = append(lines, "", s.errStyle.Render(s.errText))
	}
	lines = append(lines, "", s.hintStyle.Render("enter to submit  •  ctrl+c to quit"))

	box := s.boxStyle.Render(strings.Join(lines, "\n"))
	if s.width > 0 && s.height > 0 {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
