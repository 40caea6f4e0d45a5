package config

import (
	_ "embed"
)

//go:embed defaults/zombies.yaml
var defaultZombiesYAML []byte

// DefaultZombiesConfig returns the hardcoded zombie arena configuration.
// The embedded defaults/zombies.yaml carries the same values.
func DefaultZombiesConfig() ZombiesConfig {
	return ZombiesConfig{
		Preset: DifficultyNormal,
		Arena: ArenaConfig{
			Width:  1280,
			Height: 720,
		},
		Player: PlayerConfig{
			Width:        50,
			Height:       50,
			Speed:        300, // 5 units per frame at 60 Hz
			MaxHealth:    100,
			MuzzleOffset: 30,
		},
		Weapon: WeaponConfig{
			Magazine:    30,
			ReloadMs:    2000,
			BulletSpeed: 900, // 15 units per frame at 60 Hz
			BulletSize:  5,
			Damage:      50,
		},
		Enemies: EnemyConfig{
			Width:       40,
			Height:      40,
			ContactDPS:  10,
			KillScore:   10,
			SpawnMargin: 50,
		},
		Spawn: SpawnConfig{
			MinIntervalMs: 500,
			StepMs:        50,
		},
		Loop: LoopConfig{
			MaxFrameMs: 100,
		},
		Difficulty: DefaultDifficultySettings(),
	}
}

// DefaultDifficultySettings returns the static enemy tuning table.
func DefaultDifficultySettings() DifficultySettings {
	return DifficultySettings{
		SpawnRate: 2000,
		Speed:     Range{Min: 60, Max: 180},
		Health:    Range{Min: 50, Max: 150},
		Difficulty: map[string]DifficultyTier{
			string(DifficultyEasy):   {SpawnMultiplier: 1.5, DamageMultiplier: 0.8, ScoreMultiplier: 0.5},
			string(DifficultyNormal): {SpawnMultiplier: 1.0, DamageMultiplier: 1.0, ScoreMultiplier: 1.0},
			string(DifficultyHard):   {SpawnMultiplier: 0.6, DamageMultiplier: 1.5, ScoreMultiplier: 2.0},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultZombiesYAML
}
