package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zombie-arena/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Open the main menu to choose a difficulty, start a match or browse
the high scores. Returning from a match or the scoreboard brings you back
to the menu.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger := newLogger(true)

	svc, closeFn := openServices(logger)
	defer closeFn()
	svc.PlayerName = os.Getenv("USER")

	if err := tui.RunSession(svc, runtimeConfig(), presetOrDefault()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
