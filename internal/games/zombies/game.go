package zombies

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
	"github.com/vovakirdan/zombie-arena/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "zombies"

// Package-level settings applied on the next Reset, set by the CLI.
var (
	configPath       string
	difficultyPreset string
	logger           *log.Logger
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset name.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger sets the logger used by new matches.
func SetLogger(l *log.Logger) {
	logger = l
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game adapts a MatchState to the registry.Game host contract.
type Game struct {
	cfg     config.ZombiesConfig
	fixed   bool // cfg supplied by the caller, skip loading
	preset  string
	match   *MatchState
	effects *Effects
	rt      core.RuntimeConfig
	view    core.Viewport
	log     *log.Logger

	clockMs float64
	lastAt  time.Time
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{effects: NewEffects()}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.ZombiesConfig, l *log.Logger) *Game {
	return &Game{cfg: cfg, fixed: true, effects: NewEffects(), log: l}
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Zombie Arena" }

// Reset builds a fresh match and starts it.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if g.log == nil {
		g.log = logger
	}
	if g.log == nil {
		g.log = log.Default()
	}
	if !g.fixed {
		g.cfg = g.loadConfig()
	}

	g.rt = rt
	g.view = arenaViewport(g.cfg, rt.ScreenW, rt.ScreenH)
	g.clockMs = 0
	g.lastAt = time.Time{}
	g.effects.Reset()

	g.match = NewMatch(g.cfg, rt.Seed, g.log)
	g.match.Start(g.clockMs)
}

func (g *Game) loadConfig() config.ZombiesConfig {
	cfg, err := config.LoadZombies(configPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
	}
	name := difficultyPreset
	if g.preset != "" {
		name = g.preset
	}
	if name != "" {
		preset, err := config.ParsePreset(name)
		if err != nil {
			g.log.Warn("ignoring difficulty", "err", err)
		} else {
			config.ApplyZombiesPreset(&cfg, preset)
		}
	}
	return cfg
}

// SetPreset overrides the package-level difficulty for this game.
// It takes effect on the next Reset.
func (g *Game) SetPreset(name string) {
	g.preset = name
}

// Step advances the match by one host tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.match == nil {
		g.Reset(core.DefaultConfig())
	}
	g.advanceClock(in.At)

	switch g.match.Phase {
	case PhaseGameOver, PhaseIdle:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.effects.Reset()
			g.match.Restart(g.clockMs)
		}
	case PhaseRunning:
		if in.Has(core.ActionPause) {
			g.match.Pause(g.clockMs)
		}
	case PhasePaused:
		if in.Has(core.ActionPause) {
			g.match.Resume(g.clockMs)
		}
	}

	events := g.match.Tick(g.clockMs, g.controls(in))
	g.effects.Apply(g.clockMs, events)

	return core.StepResult{State: g.State()}
}

// advanceClock moves the match clock by the host time between frames, or
// by one nominal frame when the host supplies no timestamp.
func (g *Game) advanceClock(at time.Time) {
	step := float64(g.rt.FrameInterval()) / float64(time.Millisecond)
	if !at.IsZero() && !g.lastAt.IsZero() {
		step = max(0, float64(at.Sub(g.lastAt))/float64(time.Millisecond))
	}
	if !at.IsZero() {
		g.lastAt = at
	}
	g.clockMs += step
}

func (g *Game) controls(in core.InputFrame) Controls {
	held := func(a core.Action) bool { return in.IsHeld(a) || in.Has(a) }
	c := Controls{
		Up:     held(core.ActionMoveUp),
		Down:   held(core.ActionMoveDown),
		Left:   held(core.ActionMoveLeft),
		Right:  held(core.ActionMoveRight),
		Fire:   in.Has(core.ActionFire),
		Reload: in.Has(core.ActionReload),
	}
	if in.Pointer.Valid {
		c.Aim = g.view.ToWorld(in.Pointer.X, in.Pointer.Y)
		c.HasAim = true
	}
	return c
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.match.Score,
		GameOver: g.match.Phase == PhaseGameOver,
		Paused:   g.match.Phase == PhasePaused,
	}
}

// Match exposes the underlying match for hosts that need stats or tests.
func (g *Game) Match() *MatchState { return g.match }

// Preset returns the active difficulty preset.
func (g *Game) Preset() config.DifficultyPreset { return g.cfg.Preset }
