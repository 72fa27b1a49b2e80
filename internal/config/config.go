// Package config loads the YAML game configuration and applies
// difficulty presets.
package config

import (
	"fmt"
	"time"
)

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Gravity TetrisGravity `yaml:"gravity"`
	Spawn   TetrisSpawn   `yaml:"spawn"`
	Rules   TetrisRules   `yaml:"rules"`
}

// TetrisGravity controls how often the active piece falls.
type TetrisGravity struct {
	Interval float64 `yaml:"interval"` // Seconds between gravity steps
}

// TetrisSpawn bounds each color channel of spawned pieces to [min, max).
type TetrisSpawn struct {
	ColorMin float64 `yaml:"color_min"`
	ColorMax float64 `yaml:"color_max"`
}

// TetrisRules holds optional rule switches.
type TetrisRules struct {
	// EndOnTopOut ends the game when a new piece spawns over filled cells.
	EndOnTopOut bool `yaml:"end_on_top_out"`
}

// GravityInterval returns the gravity interval as a duration.
func (c TetrisConfig) GravityInterval() time.Duration {
	return time.Duration(c.Gravity.Interval * float64(time.Second))
}

// Validate reports the first invalid setting.
func (c TetrisConfig) Validate() error {
	if c.Gravity.Interval <= 0 {
		return fmt.Errorf("config: gravity.interval must be positive, got %g", c.Gravity.Interval)
	}
	if c.Spawn.ColorMin < 0 || c.Spawn.ColorMax > 1 || c.Spawn.ColorMin >= c.Spawn.ColorMax {
		return fmt.Errorf("config: spawn color range [%g, %g) must satisfy 0 <= min < max <= 1",
			c.Spawn.ColorMin, c.Spawn.ColorMax)
	}
	return nil
}

// DifficultyPreset represents a named gravity speed.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset validates a preset name. The empty string is
// accepted and means "keep the configured interval".
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal or hard)", s)
	}
}

// IntervalForPreset returns the gravity interval in seconds for a preset,
// or 0 for the empty preset.
func IntervalForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.8
	case DifficultyNormal:
		return 0.5
	case DifficultyHard:
		return 0.25
	default:
		return 0
	}
}

// ApplyTetrisPreset overrides the gravity interval from a preset.
// The empty preset leaves cfg untouched.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if iv := IntervalForPreset(preset); iv > 0 {
		cfg.Gravity.Interval = iv
	}
}
