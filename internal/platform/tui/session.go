package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
	"github.com/vovakirdan/zombie-arena/internal/registry"
)

type presetter interface {
	SetPreset(name string)
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> game or scoreboard -> menu.
// It is the top-level model for both the local menu and SSH sessions.
type SessionModel struct {
	svc        Services
	config     core.RuntimeConfig
	preset     config.DifficultyPreset
	screen     sessionScreen
	menu       MenuModel
	gameModel  *Model
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(svc Services, cfg core.RuntimeConfig, preset config.DifficultyPreset) SessionModel {
	return SessionModel{
		svc:    svc,
		config: cfg,
		preset: preset,
		menu:   NewMenuModel(cfg, preset),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.preset = m.menu.Preset()

	switch selected.Kind {
	case MenuScores:
		sb := NewScoreboardModel(m.svc, m.config.ScreenW, m.config.ScreenH)
		sb.embedded = true
		m.scoreboard = &sb
		m.screen = screenScores
		return m, sb.Init()

	case MenuPlay:
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			m.svc.logger().Error("cannot create game", "game", selected.GameID, "err", err)
			m.menu = NewMenuModel(m.config, m.preset)
			return m, nil
		}
		if p, ok := game.(presetter); ok {
			p.SetPreset(string(m.preset))
		}
		gm := NewModel(game, m.svc, m.config)
		m.gameModel = &gm
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.toMenu()
		// Drop the pending tick so the old game stops.
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.toMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m *SessionModel) toMenu() {
	m.screen = screenMenu
	m.gameModel = nil
	m.scoreboard = nil
	m.menu = NewMenuModel(m.config, m.preset)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the interactive menu locally.
func RunSession(svc Services, cfg core.RuntimeConfig, preset config.DifficultyPreset) error {
	p := tea.NewProgram(
		NewSessionModel(svc, cfg, preset),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
