package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/zombie-arena/internal/config"
)

var flagSettingsFormat string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the zombie difficulty table",
	Long: `Print the spawn rate, speed and health ranges and the per-difficulty
multipliers in effect after loading the config.

Examples:
  zombies settings
  zombies settings --format yaml
  zombies settings --config ./my-zombies.yaml`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagSettingsFormat, "format", "json", "Output format: json or yaml")
}

func runSettings(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadZombies(flagConfig)
	if err != nil {
		return err
	}

	switch flagSettingsFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg.Difficulty)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg.Difficulty)
	default:
		return fmt.Errorf("unknown format %q", flagSettingsFormat)
	}
}
