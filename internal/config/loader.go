package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const zombiesFile = "zombies.yaml"

// LoadZombies loads the zombie arena configuration.
// Search order: customPath -> ~/.zombies/configs/zombies.yaml -> ./configs/zombies.yaml -> embedded default
//
// Missing keys keep their default values. A custom path that cannot be read,
// parsed or validated is an error; the implicit locations are skipped instead.
func LoadZombies(customPath string) (ZombiesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultZombiesConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseZombies(data)
		if err != nil {
			return DefaultZombiesConfig(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(zombiesFile), filepath.Join("configs", zombiesFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseZombies(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseZombies(defaultZombiesYAML)
	if err != nil {
		return DefaultZombiesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseZombies decodes YAML over the hardcoded defaults and validates it.
func parseZombies(data []byte) (ZombiesConfig, error) {
	cfg := DefaultZombiesConfig()
	// Tiers from the document replace the default table rather than merging into it.
	cfg.Difficulty.Difficulty = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if len(cfg.Difficulty.Difficulty) == 0 {
		cfg.Difficulty.Difficulty = DefaultDifficultySettings().Difficulty
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".zombies", "configs", filename)
}
