package config

import "time"

// Gravity computes the fall interval for a level.
type Gravity struct {
	cfg         GravityConfig
	progression bool
}

// NewGravity creates a gravity curve. With progression off every level
// falls at the base interval.
func NewGravity(cfg GravityConfig, progression bool) *Gravity {
	return &Gravity{cfg: cfg, progression: progression}
}

// GravityCurve returns the curve described by the configuration.
func (c BlockfallConfig) GravityCurve() *Gravity {
	return NewGravity(c.Gravity, c.Difficulty.Progression)
}

// Interval returns how long the piece waits before falling one row.
func (g *Gravity) Interval(level int) time.Duration {
	if !g.progression {
		return time.Duration(g.cfg.BaseMS) * time.Millisecond
	}
	ms := g.cfg.BaseMS - g.cfg.StepMS*(max(level, 1)-1)
	return time.Duration(max(ms, g.cfg.MinMS)) * time.Millisecond
}

// Ticks converts Interval(level) to simulation ticks at tickRate,
// never less than one.
func (g *Gravity) Ticks(level, tickRate int) int {
	if tickRate <= 0 {
		return 1
	}
	perTick := time.Second / time.Duration(tickRate)
	n := int((g.Interval(level) + perTick/2) / perTick)
	return max(n, 1)
}

// ApplyPreset adjusts cfg for a difficulty preset. Easy slows the base
// interval by a quarter, hard speeds it up to 60%, fixed turns off
// progression.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	switch preset {
	case DifficultyEasy:
		cfg.Gravity.BaseMS = cfg.Gravity.BaseMS * 5 / 4
		cfg.Difficulty.Progression = true
	case DifficultyHard:
		cfg.Gravity.BaseMS = max(cfg.Gravity.BaseMS*3/5, cfg.Gravity.MinMS)
		cfg.Difficulty.Progression = true
	case DifficultyFixed:
		cfg.Difficulty.Progression = false
	default:
		cfg.Difficulty.Progression = true
	}
}

// ResolvePreset applies the preset a game should run with. A non-empty
// cli preset wins; otherwise the file's own difficulty.preset is applied.
// A file preset of normal leaves the gravity keys as written, so
// progression: false still holds under it.
func ResolvePreset(cfg *BlockfallConfig, cli DifficultyPreset) {
	if cli != "" {
		ApplyPreset(cfg, cli)
		return
	}
	switch cfg.Difficulty.Preset {
	case "", DifficultyNormal:
	default:
		ApplyPreset(cfg, cfg.Difficulty.Preset)
	}
}
