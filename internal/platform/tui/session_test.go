package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
	"github.com/vovakirdan/zombie-arena/internal/games/zombies"
	"github.com/vovakirdan/zombie-arena/internal/leaderboard"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	board := leaderboard.New(&memBackend{}, leaderboard.WithLogger(quietLogger()))
	zombies.SetLogger(quietLogger())
	svc := Services{Board: board, Log: quietLogger()}
	return NewSessionModel(svc, core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 3}, config.DifficultyNormal)
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionMenuItems(t *testing.T) {
	m := newTestSession(t)
	view := m.View()
	for _, want := range []string{"Play Zombie Arena", "High Scores", "Quit", "Difficulty: < normal >"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestSessionPlayWithPreset(t *testing.T) {
	m := newTestSession(t)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.menu.Preset() != config.DifficultyHard {
		t.Fatalf("preset = %s, want hard", m.menu.Preset())
	}
	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("expected game screen, got %v", m.screen)
	}
	if cmd == nil {
		t.Error("expected the tick command")
	}
	game, ok := m.gameModel.game.(*zombies.Game)
	if !ok {
		t.Fatalf("game is %T", m.gameModel.game)
	}
	if game.Preset() != config.DifficultyHard {
		t.Errorf("game preset = %s, want hard", game.Preset())
	}

	// Pause, then back to the menu.
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m, _ = sessionUpdate(t, m, TickMsg{At: epoch, Gen: m.gameModel.tickGen})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("expected menu after back, got %v", m.screen)
	}
	if m.menu.Preset() != config.DifficultyHard {
		t.Error("menu should keep the chosen preset")
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := newTestSession(t)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("expected scoreboard, got %v", m.screen)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard title missing")
	}

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("expected menu, got %v", m.screen)
	}
	if cmd != nil {
		if _, isQuit := cmd().(tea.QuitMsg); isQuit {
			t.Error("back from scoreboard must not quit the session")
		}
	}

	m, cmd = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
}

func TestSessionQuitItem(t *testing.T) {
	m := newTestSession(t)
	for range len(m.menu.items) - 1 {
		m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.quitting {
		t.Error("selecting Quit should end the session")
	}
}
