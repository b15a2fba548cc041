// Package config loads the YAML game configuration and applies
// difficulty presets to it.
package config

import (
	"errors"
	"fmt"
)

// BlockfallConfig is the full game configuration.
type BlockfallConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Randomizer string           `yaml:"randomizer"` // "bag7" or "random"; empty lets the mode decide
	Scoring    ScoringConfig    `yaml:"scoring"`
	Gravity    GravityConfig    `yaml:"gravity"`
	Render     RenderConfig     `yaml:"render"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the playfield geometry.
type BoardConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	HiddenRows int `yaml:"hidden_rows"`
	SpawnX     int `yaml:"spawn_x"`
}

// ScoringConfig defines the bonuses for player drops. Line-clear
// bonuses are fixed by the rules and not configurable.
type ScoringConfig struct {
	SoftDropPerRow int `yaml:"soft_drop_per_row"`
	HardDropPerRow int `yaml:"hard_drop_per_row"`
	HardDropFlat   int `yaml:"hard_drop_flat"`
}

// GravityConfig defines the fall interval curve in milliseconds:
// interval(level) = max(min_ms, base_ms - step_ms*(level-1)).
type GravityConfig struct {
	BaseMS int `yaml:"base_ms"`
	StepMS int `yaml:"step_ms"`
	MinMS  int `yaml:"min_ms"`
}

// RenderConfig toggles presentation details.
type RenderConfig struct {
	Ghost     bool `yaml:"ghost"`
	CellWidth int  `yaml:"cell_width"` // characters per grid cell, 1 or 2
}

// DifficultyConfig selects a preset and whether gravity speeds up
// with the level.
type DifficultyConfig struct {
	Preset      DifficultyPreset `yaml:"preset"`
	Progression bool             `yaml:"progression"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// pieceSpan is the side of the square every piece shape fits in.
const pieceSpan = 4

// Validate reports every setting that cannot produce a playable game.
func (c BlockfallConfig) Validate() error {
	var errs []error
	b := c.Board
	if b.Width < 4 || b.Height < 4 {
		errs = append(errs, fmt.Errorf("board %dx%d is smaller than 4x4", b.Width, b.Height))
	}
	// A piece spawns in a pieceSpan square at (spawn_x, hidden_rows).
	if b.HiddenRows < 0 || b.HiddenRows+pieceSpan > b.Height {
		errs = append(errs, fmt.Errorf("hidden_rows %d leaves no room to spawn on a board %d tall", b.HiddenRows, b.Height))
	}
	if b.SpawnX < 0 || b.SpawnX+pieceSpan > b.Width {
		errs = append(errs, fmt.Errorf("spawn_x %d leaves no room to spawn on a board %d wide", b.SpawnX, b.Width))
	}
	switch c.Randomizer {
	case "", "bag7", "random":
	default:
		errs = append(errs, fmt.Errorf("unknown randomizer %q", c.Randomizer))
	}
	if c.Scoring.SoftDropPerRow < 0 || c.Scoring.HardDropPerRow < 0 || c.Scoring.HardDropFlat < 0 {
		errs = append(errs, errors.New("scoring drop bonuses must not be negative"))
	}
	if c.Gravity.BaseMS <= 0 || c.Gravity.MinMS <= 0 {
		errs = append(errs, errors.New("gravity base_ms and min_ms must be positive"))
	}
	if c.Gravity.StepMS < 0 {
		errs = append(errs, errors.New("gravity step_ms must not be negative"))
	}
	if c.Render.CellWidth != 1 && c.Render.CellWidth != 2 {
		errs = append(errs, fmt.Errorf("render cell_width %d must be 1 or 2", c.Render.CellWidth))
	}
	if c.Difficulty.Preset != "" {
		if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
