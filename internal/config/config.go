// Package config provides YAML-based game configuration loading and
// difficulty management for the zombie arena.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// ZombiesConfig contains all configuration for the zombie arena.
// Distances are world units, speeds are units per second, durations are ms.
type ZombiesConfig struct {
	Preset     DifficultyPreset   `yaml:"preset"`
	Arena      ArenaConfig        `yaml:"arena"`
	Player     PlayerConfig       `yaml:"player"`
	Weapon     WeaponConfig       `yaml:"weapon"`
	Enemies    EnemyConfig        `yaml:"enemies"`
	Spawn      SpawnConfig        `yaml:"spawn"`
	Loop       LoopConfig         `yaml:"loop"`
	Difficulty DifficultySettings `yaml:"difficulty"`
}

// ArenaConfig defines the playfield rectangle.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines avatar parameters.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	MaxHealth    float64 `yaml:"max_health"`
	MuzzleOffset float64 `yaml:"muzzle_offset"`
}

// WeaponConfig defines the magazine and projectile parameters.
type WeaponConfig struct {
	Magazine    int     `yaml:"magazine"`
	ReloadMs    int     `yaml:"reload_ms"`
	BulletSpeed float64 `yaml:"bullet_speed"`
	BulletSize  float64 `yaml:"bullet_size"`
	Damage      float64 `yaml:"damage"`
}

// EnemyConfig defines enemy parameters shared by every instance.
type EnemyConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	ContactDPS  float64 `yaml:"contact_dps"`
	KillScore   int     `yaml:"kill_score"`
	SpawnMargin float64 `yaml:"spawn_margin"`
}

// SpawnConfig defines how the spawn cadence ramps during a match.
type SpawnConfig struct {
	MinIntervalMs int `yaml:"min_interval_ms"`
	StepMs        int `yaml:"step_ms"`
}

// LoopConfig defines tick loop limits.
type LoopConfig struct {
	MaxFrameMs int `yaml:"max_frame_ms"`
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// DifficultyTier holds the multipliers for one named difficulty.
type DifficultyTier struct {
	SpawnMultiplier  float64 `yaml:"spawn_multiplier" json:"spawnMultiplier"`
	DamageMultiplier float64 `yaml:"damage_multiplier" json:"damageMultiplier"`
	ScoreMultiplier  float64 `yaml:"score_multiplier" json:"scoreMultiplier"`
}

// DifficultySettings is the static enemy tuning table. It is handed out by
// value and never mutated once loaded.
type DifficultySettings struct {
	SpawnRate  int                       `yaml:"spawn_rate" json:"spawnRate"`
	Speed      Range                     `yaml:"speed" json:"speed"`
	Health     Range                     `yaml:"health" json:"health"`
	Difficulty map[string]DifficultyTier `yaml:"tiers" json:"difficulty"`
}

// Clone returns a copy that shares no map with the receiver.
func (d DifficultySettings) Clone() DifficultySettings {
	out := d
	out.Difficulty = make(map[string]DifficultyTier, len(d.Difficulty))
	for k, v := range d.Difficulty {
		out.Difficulty[k] = v
	}
	return out
}

// Validate checks that the configuration can drive a match.
func (c ZombiesConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("arena.width", c.Arena.Width)
	positive("arena.height", c.Arena.Height)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("player.speed", c.Player.Speed)
	positive("player.max_health", c.Player.MaxHealth)
	positive("weapon.magazine", float64(c.Weapon.Magazine))
	positive("weapon.reload_ms", float64(c.Weapon.ReloadMs))
	positive("weapon.bullet_speed", c.Weapon.BulletSpeed)
	positive("weapon.bullet_size", c.Weapon.BulletSize)
	positive("weapon.damage", c.Weapon.Damage)
	positive("enemies.width", c.Enemies.Width)
	positive("enemies.height", c.Enemies.Height)
	positive("spawn.min_interval_ms", float64(c.Spawn.MinIntervalMs))
	positive("loop.max_frame_ms", float64(c.Loop.MaxFrameMs))
	positive("difficulty.spawn_rate", float64(c.Difficulty.SpawnRate))
	positive("difficulty.speed.min", c.Difficulty.Speed.Min)
	positive("difficulty.health.min", c.Difficulty.Health.Min)

	if c.Enemies.ContactDPS < 0 {
		errs = append(errs, fmt.Errorf("enemies.contact_dps must not be negative"))
	}
	if c.Enemies.KillScore < 0 {
		errs = append(errs, fmt.Errorf("enemies.kill_score must not be negative"))
	}
	if c.Spawn.StepMs < 0 {
		errs = append(errs, fmt.Errorf("spawn.step_ms must not be negative"))
	}
	if c.Spawn.MinIntervalMs > c.Difficulty.SpawnRate {
		errs = append(errs, fmt.Errorf("spawn.min_interval_ms %d exceeds difficulty.spawn_rate %d",
			c.Spawn.MinIntervalMs, c.Difficulty.SpawnRate))
	}
	if c.Difficulty.Speed.Min > c.Difficulty.Speed.Max {
		errs = append(errs, fmt.Errorf("difficulty.speed range is inverted"))
	}
	if c.Difficulty.Health.Min > c.Difficulty.Health.Max {
		errs = append(errs, fmt.Errorf("difficulty.health range is inverted"))
	}
	if c.Preset != "" {
		if _, err := ParsePreset(string(c.Preset)); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
