package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zombie-arena/internal/games/zombies"
	"github.com/vovakirdan/zombie-arena/internal/platform/tui"
	"github.com/vovakirdan/zombie-arena/internal/registry"
)

var (
	flagScoresTUI   bool
	flagScoresJSON  bool
	flagScoresClear bool
	flagScoresGame  string
)

// runClearer is implemented by run stores that can drop their history.
type runClearer interface {
	ClearRuns(ctx context.Context, gameID string) error
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the top 10 leaderboard",
	Long: `Display the top 10 high scores.

Examples:
  zombies scores
  zombies scores --json
  zombies scores --tui
  zombies scores --clear
  zombies scores --store file --scores-file ./data/scores.yaml`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresJSON, "json", false, "Print the leaderboard as JSON")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the leaderboard and run history")
	scoresCmd.Flags().StringVar(&flagScoresGame, "game", zombies.GameID, "Game whose run history to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	if !registry.Exists(flagScoresGame) {
		return fmt.Errorf("unknown game: %s", flagScoresGame)
	}

	logger := newLogger(flagScoresTUI)
	svc, closeFn := openServices(logger)
	defer closeFn()

	if flagScoresClear {
		return clearScores(svc)
	}

	if flagScoresTUI {
		cfg := runtimeConfig()
		return tui.RunScoreboard(svc, cfg.ScreenW, cfg.ScreenH)
	}

	if svc.Board == nil {
		return fmt.Errorf("leaderboard unavailable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	scores, err := svc.Board.Top(ctx)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	if flagScoresJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scores)
	}

	fmt.Println("High Scores - Zombie Arena")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'zombies play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-24s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-24s  %-8s  %s\n", "----", "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.Date.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-24s  %-8d  %s\n", i+1, entry.PlayerName, entry.Score, dateStr)
	}

	// Show run history summary when available
	if svc.Runs != nil {
		if stats, err := svc.Runs.GetGameStats(ctx, flagScoresGame); err == nil && stats.RunsCount > 0 {
			fmt.Println()
			fmt.Printf("Runs: %d  Best: %d  Kills: %d  Accuracy: %.0f%%\n",
				stats.RunsCount, stats.HighScore, stats.TotalKills, stats.Accuracy()*100)
		}
	}
	return nil
}

// clearScores empties the leaderboard and, when the store keeps one, the run history.
func clearScores(svc tui.Services) error {
	if svc.Board == nil {
		return fmt.Errorf("leaderboard unavailable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Board.Clear(ctx); err != nil {
		return err
	}
	if rc, ok := svc.Runs.(runClearer); ok {
		if err := rc.ClearRuns(ctx, flagScoresGame); err != nil {
			return fmt.Errorf("clearing run history: %w", err)
		}
	}
	fmt.Println("Scores cleared.")
	return nil
}
