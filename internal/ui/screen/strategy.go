package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vitalyze/terminal/internal/domain"
	"github.com/vitalyze/terminal/internal/ui"
	"github.com/vitalyze/terminal/internal/ui/component"
	"github.com/vitalyze/terminal/internal/ui/router"
	"github.com/vitalyze/terminal/internal/ui/style"
)

// paramField is one adjustable slider row. Min/max/step match the ranges
// the game server accepts; the widget is the only client-side validation.
type paramField struct {
	label string
	value float64
	min   float64
	max   float64
	step  float64
	unit  string
}

func (f *paramField) adjust(delta float64) {
	f.value += delta
	if f.value < f.min {
		f.value = f.min
	}
	if f.value > f.max {
		f.value = f.max
	}
}

// StrategyScreen lets the user pick an algorithm and tune its parameters,
// then deploys the full configuration through the submission gateway. The
// form is strictly pessimistic: it is seeded from the last fetched
// snapshot and a failed deployment changes nothing locally.
type StrategyScreen struct {
	services *ui.Services
	keyMap   ui.KeyMap
	width    int
	height   int

	strategies  []domain.StrategyType
	strategyIdx int
	fields      []paramField
	focus       int // 0 = strategy selector, 1.. = fields
	deploying   bool
	result      string
	resultErr   bool

	help *component.HelpBar

	titleStyle lipgloss.Style
	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
	focusStyle lipgloss.Style
	errStyle   lipgloss.Style
	okStyle    lipgloss.Style
	boxStyle   lipgloss.Style
}

// NewStrategyScreen creates the strategy form seeded from the current
// snapshot.
func NewStrategyScreen(services *ui.Services) *StrategyScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	strategy := domain.StrategyMomentum
	params := domain.DefaultStrategyParams()
	if team := services.Store.State().Team; team != nil {
		strategy = team.Strategy
		params = team.Params
	}

	strategies := domain.StrategyTypes()
	idx := 0
	for i, st := range strategies {
		if st == strategy {
			idx = i
			break
		}
	}

	s := &StrategyScreen{
		services:    services,
		keyMap:      keyMap,
		strategies:  strategies,
		strategyIdx: idx,
		fields: []paramField{
			{label: "Risk Multiplier", value: params.RiskLevel, min: 0.1, max: 5.0, step: 0.1, unit: "x"},
			{label: "Entry Threshold", value: params.EntryThreshold, min: 0.5, max: 10.0, step: 0.5, unit: "%"},
			{label: "Stop Loss", value: params.StopLoss, min: 1.0, max: 20.0, step: 0.5, unit: "%"},
			{label: "Take Profit", value: params.TakeProfit, min: 2.0, max: 50.0, step: 0.5, unit: "%"},
		},
		help: component.NewHelpBar(),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),
		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextSecondary),
		valueStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),
		focusStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),
		errStyle: lipgloss.NewStyle().
			Foreground(palette.Error),
		okStyle: lipgloss.NewStyle().
			Foreground(palette.Success),
		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(1, 2),
	}

	s.help.SetKeyBindings(keyMap.Up, keyMap.Left, keyMap.Deploy, keyMap.Back)
	return s
}

// Init is a no-op.
func (s *StrategyScreen) Init() tea.Cmd {
	return nil
}

// Update handles form navigation, adjustment and deployment.
func (s *StrategyScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Back):
			return s, navigate(ui.RouteDashboard)
		case key.Matches(msg, s.keyMap.Up):
			if s.focus > 0 {
				s.focus--
			}
		case key.Matches(msg, s.keyMap.Down):
			if s.focus < len(s.fields) {
				s.focus++
			}
		case key.Matches(msg, s.keyMap.Left):
			s.adjust(-1)
		case key.Matches(msg, s.keyMap.Right):
			s.adjust(1)
		case key.Matches(msg, s.keyMap.Deploy):
			if !s.deploying {
				s.deploying = true
				s.result = ""
				return s, s.deploy()
			}
		}

	case ui.StrategyDeployedMsg:
		s.deploying = false
		if msg.Err != nil {
			s.result = "deployment failed: " + msg.Err.Error()
			s.resultErr = true
		} else {
			s.result = fmt.Sprintf("%s deployed", msg.Strategy)
			s.resultErr = false
		}
	}

	return s, nil
}

func (s *StrategyScreen) adjust(direction float64) {
	if s.focus == 0 {
		n := len(s.strategies)
		s.strategyIdx = (s.strategyIdx + int(direction) + n) % n
		return
	}
	field := &s.fields[s.focus-1]
	field.adjust(direction * field.step)
}

// deploy submits through the gateway off the UI loop. The gateway raises
// the success/failure notification itself.
func (s *StrategyScreen) deploy() tea.Cmd {
	team := s.services.Store.State().Team
	if team == nil {
		return func() tea.Msg {
			return ui.StrategyDeployedMsg{Err: fmt.Errorf("no active team session")}
		}
	}

	gateway := s.services.Gateway
	teamID := team.ID
	strategy := s.strategies[s.strategyIdx]
	params := domain.StrategyParams{
		RiskLevel:      s.fields[0].value,
		EntryThreshold: s.fields[1].value,
		StopLoss:       s.fields[2].value,
		TakeProfit:     s.fields[3].value,
	}

	return func() tea.Msg {
		// The gateway publishes StrategyDeployedMsg on the bus; the
		// command itself has nothing further to report.
		_ = gateway.Submit(context.Background(), teamID, strategy, params)
		return nil
	}
}

// SetSize stores the terminal dimensions.
func (s *StrategyScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the form.
func (s *StrategyScreen) View() string {
	lines := []string{s.titleStyle.Render("STRATEGY CONTROL"), ""}

	selector := fmt.Sprintf("Algorithm      ◂ %s ▸",
		strings.ToUpper(string(s.strategies[s.strategyIdx])))
	lines = append(lines, s.renderRow(selector, s.focus == 0))

	for i, f := range s.fields {
		row := fmt.Sprintf("%-15s %s %.1f%s",
			f.label, gauge(f.value, f.min, f.max, 20), f.value, f.unit)
		lines = append(lines, s.renderRow(row, s.focus == i+1))
	}

	lines = append(lines, "")
	if s.deploying {
		lines = append(lines, s.labelStyle.Render("deploying..."))
	} else if s.result != "" {
		if s.resultErr {
			lines = append(lines, s.errStyle.Render(s.result))
		} else {
			lines = append(lines, s.okStyle.Render(s.result))
		}
	} else {
		lines = append(lines, s.labelStyle.Render("enter to deploy"))
	}

	body := s.boxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, body, s.help.View())
}

func (s *StrategyScreen) renderRow(text string, focused bool) string {
	if focused {
		return s.focusStyle.Render("> " + text)
	}
	return s.labelStyle.Render("  " + text)
}

// gauge renders a fixed-width bar showing where value sits in [min, max].
func gauge(value, min, max float64, width int) string {
	filled := 0
	if max > min {
		filled = int((value - min) / (max - min) * float64(width))
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
