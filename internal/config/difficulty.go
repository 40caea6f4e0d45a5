package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts user input into a preset. Empty input means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, s)
}

// IsFixedPreset returns true if the preset disables the spawn ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyZombiesPreset selects the difficulty preset for a match.
func ApplyZombiesPreset(cfg *ZombiesConfig, preset DifficultyPreset) {
	cfg.Preset = preset
}

// Tier returns the multipliers for a preset. The fixed preset and any tier
// missing from the table use neutral multipliers of the normal tier.
func (d DifficultySettings) Tier(preset DifficultyPreset) DifficultyTier {
	name := preset
	if name == "" || name == DifficultyFixed {
		name = DifficultyNormal
	}
	if t, ok := d.Difficulty[string(name)]; ok {
		return t
	}
	if t, ok := d.Difficulty[string(DifficultyNormal)]; ok {
		return t
	}
	return DifficultyTier{SpawnMultiplier: 1, DamageMultiplier: 1, ScoreMultiplier: 1}
}

// Tier returns the multipliers of the configured preset.
func (c ZombiesConfig) Tier() DifficultyTier {
	return c.Difficulty.Tier(c.Preset)
}

// SpawnSchedule is the spawner cadence derived from the config and preset.
type SpawnSchedule struct {
	InitialMs int
	StepMs    int
	FloorMs   int
}

// Schedule computes the spawn cadence for the configured preset.
func (c ZombiesConfig) Schedule() SpawnSchedule {
	tier := c.Tier()
	initial := int(math.Round(float64(c.Difficulty.SpawnRate) * tier.SpawnMultiplier))
	if initial <= 0 {
		initial = c.Difficulty.SpawnRate
	}
	floor := min(c.Spawn.MinIntervalMs, initial)
	step := c.Spawn.StepMs
	if IsFixedPreset(c.Preset) {
		step = 0
	}
	return SpawnSchedule{InitialMs: initial, StepMs: step, FloorMs: floor}
}

// Next returns the interval that follows current after one spawn.
func (s SpawnSchedule) Next(current int) int {
	return max(s.FloorMs, current-s.StepMs)
}

// ScaleScore applies the tier's score multiplier to a base award.
// Awards never round down to zero for a positive base.
func (t DifficultyTier) ScaleScore(base int) int {
	if base <= 0 {
		return 0
	}
	return max(1, int(math.Round(float64(base)*t.ScoreMultiplier)))
}
