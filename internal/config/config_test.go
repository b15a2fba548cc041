package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchBuiltIn(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockfallConfig(), cfg)
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockfallConfig(), cfg, "no files should give the embedded defaults")

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", FileName), []byte("gravity:\n  base_ms: 500\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Gravity.BaseMS)

	userDir := filepath.Join(home, ".blockfall", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, FileName), []byte("gravity:\n  base_ms: 600\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.Gravity.BaseMS, "user config wins over ./configs")

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("randomizer: random\n"), 0o644))
	cfg, err = Load(custom)
	require.NoError(t, err)
	assert.Equal(t, "random", cfg.Randomizer)
	assert.Equal(t, 400, cfg.Gravity.BaseMS, "custom file is layered on defaults only")
}

func TestLoadSkipsBrokenFallbacks(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", FileName), []byte("board: [not a map"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockfallConfig(), cfg)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board:\n  width: 2\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "smaller than 4x4")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*BlockfallConfig)
	}{
		{"narrow board", func(c *BlockfallConfig) { c.Board.Width = 3 }},
		{"all rows hidden", func(c *BlockfallConfig) { c.Board.HiddenRows = 25 }},
		{"spawn outside", func(c *BlockfallConfig) { c.Board.SpawnX = 10 }},
		{"spawn against right wall", func(c *BlockfallConfig) { c.Board.SpawnX = 7 }},
		{"no room under hidden rows", func(c *BlockfallConfig) { c.Board.HiddenRows = 22 }},
		{"negative soft drop bonus", func(c *BlockfallConfig) { c.Scoring.SoftDropPerRow = -1 }},
		{"negative hard drop bonus", func(c *BlockfallConfig) { c.Scoring.HardDropPerRow = -1 }},
		{"negative hard drop flat", func(c *BlockfallConfig) { c.Scoring.HardDropFlat = -10 }},
		{"unknown randomizer", func(c *BlockfallConfig) { c.Randomizer = "nes" }},
		{"zero gravity", func(c *BlockfallConfig) { c.Gravity.BaseMS = 0 }},
		{"zero floor", func(c *BlockfallConfig) { c.Gravity.MinMS = 0 }},
		{"negative step", func(c *BlockfallConfig) { c.Gravity.StepMS = -5 }},
		{"wide cells", func(c *BlockfallConfig) { c.Render.CellWidth = 3 }},
		{"unknown preset", func(c *BlockfallConfig) { c.Difficulty.Preset = "insane" }},
	}

	require.NoError(t, DefaultBlockfallConfig().Validate())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBlockfallConfig()
			tc.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseRejectsUnplayableSpawn(t *testing.T) {
	_, err := Parse([]byte("board:\n  spawn_x: 9\n"))
	assert.ErrorContains(t, err, "spawn_x 9")

	cfg, err := Parse([]byte("board:\n  spawn_x: 6\n"))
	require.NoError(t, err, "a piece still fits against the right wall")
	assert.Equal(t, 6, cfg.Board.SpawnX)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	for _, want := range Presets() {
		got, err := ParsePreset(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = ParsePreset("nightmare")
	assert.Error(t, err)
}

func TestGravityInterval(t *testing.T) {
	g := NewGravity(GravityConfig{BaseMS: 400, StepMS: 30, MinMS: 80}, true)

	tests := []struct {
		level    int
		expected time.Duration
	}{
		{0, 400 * time.Millisecond},
		{1, 400 * time.Millisecond},
		{2, 370 * time.Millisecond},
		{5, 280 * time.Millisecond},
		{11, 100 * time.Millisecond},
		{12, 80 * time.Millisecond},
		{40, 80 * time.Millisecond},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, g.Interval(tc.level), "level %d", tc.level)
	}

	fixed := NewGravity(GravityConfig{BaseMS: 400, StepMS: 30, MinMS: 80}, false)
	assert.Equal(t, 400*time.Millisecond, fixed.Interval(15))
}

func TestGravityTicks(t *testing.T) {
	g := NewGravity(GravityConfig{BaseMS: 400, StepMS: 30, MinMS: 80}, true)

	assert.Equal(t, 24, g.Ticks(1, 60))
	assert.Equal(t, 4, g.Ticks(1, 10))
	assert.Equal(t, 1, g.Ticks(30, 10), "80ms at 10 ticks/s still falls every tick")
	assert.Equal(t, 1, g.Ticks(1, 0))
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		baseMS      int
		progression bool
	}{
		{DifficultyEasy, 500, true},
		{DifficultyNormal, 400, true},
		{DifficultyHard, 240, true},
		{DifficultyFixed, 400, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBlockfallConfig()
			ApplyPreset(&cfg, tc.preset)
			assert.Equal(t, tc.baseMS, cfg.Gravity.BaseMS)
			assert.Equal(t, tc.progression, cfg.Difficulty.Progression)
			assert.Equal(t, tc.preset, cfg.Difficulty.Preset)
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := DefaultBlockfallConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	assert.Equal(t, 400*time.Millisecond, cfg.GravityCurve().Interval(9))
}

func TestResolvePreset(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		cli         DifficultyPreset
		baseMS      int
		progression bool
	}{
		{"file fixed", "difficulty:\n  preset: fixed\n", "", 400, false},
		{"file hard", "difficulty:\n  preset: hard\n", "", 240, true},
		{"file easy", "difficulty:\n  preset: easy\n", "", 500, true},
		{"file normal keeps progression off", "difficulty:\n  preset: normal\n  progression: false\n", "", 400, false},
		{"cli wins over file", "difficulty:\n  preset: fixed\n", DifficultyHard, 240, true},
		{"no preset", "difficulty:\n  preset: \"\"\n", "", 400, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.yaml))
			require.NoError(t, err)
			assert.Equal(t, 400, cfg.Gravity.BaseMS, "Parse leaves the preset unapplied")

			ResolvePreset(&cfg, tc.cli)
			assert.Equal(t, tc.baseMS, cfg.Gravity.BaseMS)
			assert.Equal(t, tc.progression, cfg.Difficulty.Progression)
		})
	}
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	ApplyPreset(&cfg, DifficultyHard)

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_ms: 240")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
