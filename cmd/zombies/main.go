// zombies is a top-down zombie arena shooter for the terminal.
//
// Usage:
//
//	zombies play             - Play a match
//	zombies menu             - Start the interactive menu
//	zombies scores           - Show the top 10 leaderboard
//	zombies settings         - Print the difficulty table
//	zombies serve            - Start the SSH server (and optionally the HTTP API)
//	zombies api              - Start only the HTTP API
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.zombies/scores.db)
//	--store <kind>        - Leaderboard backend: sqlite or file
//	--scores-file <path>  - Leaderboard document for the file backend
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/zombie-arena/internal/games/zombies"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagStore      string
	flagScoresFile string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zombies",
	Short: "Zombie Arena - survive the horde in your terminal",
	Long: `Zombie Arena is a top-down shooter: move with WASD, aim with the mouse,
shoot the zombies closing in from the edges and survive as long as you can.

Available commands:
  play      - Play a match directly
  menu      - Interactive menu with difficulty and high scores
  scores    - View the top 10 leaderboard
  settings  - Print the zombie difficulty table
  serve     - Start SSH server for remote play
  api       - Start the HTTP leaderboard API

Examples:
  zombies play
  zombies play --difficulty hard
  zombies menu
  zombies serve --ssh :2222 --http :3000
  zombies scores --store file --scores-file ./data/scores.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return applyGameFlags()
	},
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.zombies/scores.db", "Path to scores database")
	pf.StringVar(&flagStore, "store", storeSQLite, "Leaderboard backend: sqlite or file")
	pf.StringVar(&flagScoresFile, "scores-file", "~/.zombies/scores.yaml", "Leaderboard document for --store file")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}
