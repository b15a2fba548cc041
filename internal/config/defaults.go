package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the built-in configuration. It matches
// the embedded defaults/blockfall.yaml.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Width:      10,
			Height:     25,
			HiddenRows: 2,
			SpawnX:     4,
		},
		Scoring: ScoringConfig{
			SoftDropPerRow: 1,
			HardDropPerRow: 1,
			HardDropFlat:   0,
		},
		Gravity: GravityConfig{
			BaseMS: 400,
			StepMS: 30,
			MinMS:  80,
		},
		Render: RenderConfig{
			Ghost:     true,
			CellWidth: 2,
		},
		Difficulty: DifficultyConfig{
			Preset:      DifficultyNormal,
			Progression: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlockfallYAML
}
