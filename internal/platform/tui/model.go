package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
	"github.com/vovakirdan/zombie-arena/internal/games/zombies"
	"github.com/vovakirdan/zombie-arena/internal/leaderboard"
	"github.com/vovakirdan/zombie-arena/internal/registry"
	"github.com/vovakirdan/zombie-arena/internal/storage"
)

const storageTimeout = 3 * time.Second

// RunStore keeps the history of finished matches.
type RunStore interface {
	RecordRun(ctx context.Context, run storage.Run) (string, error)
	TopRuns(ctx context.Context, gameID string, limit int) ([]storage.Run, error)
	GetGameStats(ctx context.Context, gameID string) (*storage.GameStats, error)
}

// Services are the collaborators shared by every screen.
// Board and Runs may be nil.
type Services struct {
	Board      *leaderboard.Board
	Runs       RunStore
	Log        *log.Logger
	PlayerName string
	HoldWindow time.Duration
}

func (s Services) logger() *log.Logger {
	if s.Log == nil {
		return log.Default()
	}
	return s.Log
}

// afterMatch is the post game-over flow.
type afterMatch int

const (
	afterNone       afterMatch = iota
	afterNaming                // name entry focused
	afterSubmitting            // waiting for the leaderboard
	afterDone                  // result shown, waiting for restart or back
)

type submitResultMsg struct {
	result leaderboard.Result
	err    error
}

type runRecordedMsg struct {
	id  string
	err error
}

type statsReporter interface {
	Match() *zombies.MatchState
	Preset() config.DifficultyPreset
}

// Model is the Bubble Tea model for one running game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	holds      *HoldTracker
	keyMapper  *KeyMapper
	gameState  core.GameState
	now        func() time.Time
	tickGen    uint64

	after     afterMatch
	nameInput textinput.Model
	result    *leaderboard.Result
	status    string

	standalone bool // back quits instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = leaderboard.DefaultName
	ti.CharLimit = leaderboard.MaxNameLen
	ti.Prompt = ""
	ti.SetValue(svc.PlayerName)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:        svc,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		holds:      NewHoldTracker(svc.HoldWindow),
		keyMapper:  NewKeyMapper(),
		now:        time.Now,
		tickGen:    nextTickGen(),
		nameInput:  ti,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.after == afterNaming {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouse(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick(msg.At)

	case submitResultMsg:
		m = m.handleSubmitResult(msg)
		return m, m.recordRunCmd()

	case runRecordedMsg:
		if msg.err != nil {
			m.svc.logger().Warn("cannot record run", "err", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action.IsMovement():
		m.holds.Press(action, m.now())
		m.inputFrame.Set(action)
	case action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused):
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	case action == core.ActionConfirm && m.gameState.GameOver:
		if m.after == afterDone || m.after == afterNone {
			m.inputFrame.Set(core.ActionRestart)
		}
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleNameKey edits the player name shown after game over.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.nameInput.Blur()
		m.after = afterDone
		m.status = "Score not submitted"
		return m, m.recordRunCmd()
	case "enter":
		m.nameInput.Blur()
		m.after = afterSubmitting
		m.status = "Submitting..."
		return m, m.submitCmd(m.nameInput.Value(), m.gameState.Score)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleTick processes simulation ticks.
func (m Model) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	restarting := m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver

	m.holds.Apply(&m.inputFrame, at)
	m.inputFrame.At = at
	if m.after == afterNaming || m.after == afterSubmitting {
		m.inputFrame.Clear()
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	var cmds []tea.Cmd
	if restarting {
		m.after = afterNone
		m.result = nil
		m.status = ""
		m.holds.Reset()
	}
	if m.gameState.GameOver && !wasOver {
		cmds = append(cmds, m.onGameOver()...)
	}

	// Clear input for next frame
	m.inputFrame.Clear()
	cmds = append(cmds, tickCmd(m.config.TickRate, m.tickGen))
	return m, tea.Batch(cmds...)
}

// onGameOver opens name entry when a leaderboard is available. Without one
// the run is recorded right away under the default name.
func (m *Model) onGameOver() []tea.Cmd {
	m.status = ""
	if m.svc.Board == nil {
		m.after = afterDone
		if cmd := m.recordRunCmd(); cmd != nil {
			return []tea.Cmd{cmd}
		}
		return nil
	}
	m.after = afterNaming
	return []tea.Cmd{m.nameInput.Focus()}
}

func (m Model) submitCmd(name string, score int) tea.Cmd {
	board := m.svc.Board
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		res, err := board.Submit(ctx, name, score)
		return submitResultMsg{result: res, err: err}
	}
}

// recordRunCmd stores the finished run in the history under the name in
// the entry field. It returns nil when no run store is configured.
func (m Model) recordRunCmd() tea.Cmd {
	if m.svc.Runs == nil {
		return nil
	}
	run := storage.Run{
		GameID:     m.game.ID(),
		PlayerName: leaderboard.NormalizeName(m.nameInput.Value()),
		Score:      m.gameState.Score,
		CreatedAt:  m.now(),
	}
	if sr, ok := m.game.(statsReporter); ok && sr.Match() != nil {
		stats := sr.Match().Stats
		run.Difficulty = string(sr.Preset())
		run.Kills = stats.Kills
		run.ShotsFired = stats.ShotsFired
		run.Hits = stats.Hits
		run.SurvivedMs = int64(stats.SurvivedMs)
	}
	runs := m.svc.Runs
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		id, err := runs.RecordRun(ctx, run)
		return runRecordedMsg{id: id, err: err}
	}
}

func (m Model) handleSubmitResult(msg submitResultMsg) Model {
	m.after = afterDone
	switch {
	case errors.Is(msg.err, leaderboard.ErrInvalidScore):
		m.status = "Score rejected"
	case msg.err != nil:
		m.svc.logger().Warn("leaderboard unavailable", "err", msg.err)
		m.status = "Leaderboard unavailable"
	case msg.result.Accepted:
		res := msg.result
		m.result = &res
		m.status = fmt.Sprintf("New high score! Rank #%d", res.Rank)
	default:
		res := msg.result
		m.result = &res
		m.status = "Not ranked in the top 10"
	}
	return m
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".zombies", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)
	m.renderAfterMatch()

	// Convert screen to string
	return RenderScreen(m.screen)
}

// renderAfterMatch draws the name entry or submission status under the
// game over message.
func (m Model) renderAfterMatch() {
	if !m.gameState.GameOver || m.after == afterNone {
		return
	}
	y := m.screen.Height()/2 + 3
	if y >= m.screen.Height() {
		return
	}
	switch m.after {
	case afterNaming:
		name := m.nameInput.Value()
		if name == "" {
			name = m.nameInput.Placeholder
		}
		drawCentered(m.screen, y, "Name: "+name+"_", core.ColorBrightYellow)
		drawCentered(m.screen, y+1, "ENTER submit  ESC skip", core.ColorGray)
	case afterSubmitting:
		drawCentered(m.screen, y, m.status, core.ColorGray)
	case afterDone:
		if m.status != "" {
			drawCentered(m.screen, y, m.status, core.ColorBrightGreen)
		}
		back := "B menu"
		if m.standalone {
			back = "Q quit"
		}
		drawCentered(m.screen, y+1, "ENTER play again  "+back, core.ColorGray)
	}
}

func drawCentered(s *core.Screen, y int, text string, c core.Color) {
	if y < 0 || y >= s.Height() {
		return
	}
	x := (s.Width() - len([]rune(text))) / 2
	s.DrawTextColor(max(0, x), y, text, c)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Status returns the post-match message, if any.
func (m Model) Status() string {
	return m.status
}

// Result returns the leaderboard result of the last submission, or nil.
func (m Model) Result() *leaderboard.Result {
	return m.result
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewModel(game, svc, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer aim without holding a button
	)

	_, err := p.Run()
	return err
}
