package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
	"github.com/vovakirdan/zombie-arena/internal/games/zombies"
	"github.com/vovakirdan/zombie-arena/internal/platform/tui"
	"github.com/vovakirdan/zombie-arena/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start a zombie arena match.

Controls:
  WASD/Arrows  - Move
  Mouse        - Aim
  Click/Space  - Shoot
  R            - Reload
  P            - Pause
  Enter        - Play again (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower spawns, less damage, half score
  normal - Default multipliers
  hard   - Faster spawns, more damage, double score
  fixed  - Normal multipliers, spawn rate never ramps up

Examples:
  zombies play
  zombies play --difficulty hard
  zombies play --seed 42 --fps 30
  zombies play --config ./my-zombies.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

// runtimeConfig sizes the runtime to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger := newLogger(true)

	game, err := registry.Create(zombies.GameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	svc, closeFn := openServices(logger)
	defer closeFn()
	svc.PlayerName = os.Getenv("USER")

	logger.Info("starting match", "difficulty", presetOrDefault(), "seed", flagSeed)
	if err := tui.Run(game, svc, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func presetOrDefault() config.DifficultyPreset {
	p, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.DifficultyNormal
	}
	return p
}
