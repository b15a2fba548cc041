// Package blockfall adapts the falling-block engine to the arcade game
// interface: it maps input frames to session operations, runs gravity from
// the tick loop and draws the well, previews and HUD.
package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode selects the piece randomizer.
type Mode string

const (
	ModeBag7    Mode = "bag7"
	ModeClassic Mode = "classic"
)

// Registered game IDs.
const (
	IDBag7    = "blockfall"
	IDClassic = "blockfall_classic"
)

// noticeTenths is how long a notification stays up, in tenths of a second.
const noticeTenths = 15

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// LoadConfig resolves the configuration the way Reset does: file search
// order, then the CLI preset or, without one, the file's preset. Load
// failures fall back to the defaults.
func LoadConfig() (config.BlockfallConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.DefaultBlockfallConfig(), err
	}
	config.ResolvePreset(&cfg, difficultyPreset)
	return cfg, nil
}

type notice struct {
	text  string
	ticks int
}

// Game implements registry.Game for one mode.
type Game struct {
	mode     Mode
	override *config.BlockfallConfig

	cfg     config.BlockfallConfig
	gravity *config.Gravity
	session *engine.Session
	runtime core.RuntimeConfig

	tick      uint64
	fallTicks int // ticks since the last gravity row
	paused    bool
	tooSmall  bool
	best      int
	notices   []notice
}

// New creates a game using the 7-bag randomizer.
func New() *Game {
	return &Game{mode: ModeBag7}
}

// NewClassic creates a game that draws every piece independently.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

// NewWithConfig creates a game with a fixed configuration that bypasses
// the file search and CLI preset.
func NewWithConfig(mode Mode, cfg config.BlockfallConfig) *Game {
	return &Game{mode: mode, override: &cfg}
}

func init() {
	registry.Register(IDBag7, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return IDClassic
	}
	return IDBag7
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Blockfall (Classic)"
	}
	return "Blockfall"
}

// Reset loads the configuration and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime

	if g.override != nil {
		g.cfg = *g.override
	} else {
		//nolint:errcheck // defaults are used on error; the CLI reports bad --config paths
		g.cfg, _ = LoadConfig()
	}

	session, err := engine.NewSession(g.sessionOptions())
	if err != nil {
		g.cfg = config.DefaultBlockfallConfig()
		session, _ = engine.NewSession(g.sessionOptions()) //nolint:errcheck // defaults always validate
	}
	g.session = session
	g.gravity = g.cfg.GravityCurve()

	g.tick = 0
	g.fallTicks = 0
	g.paused = false
	g.notices = nil
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

func (g *Game) sessionOptions() engine.Options {
	b := g.cfg.Board
	opts := engine.DefaultOptions()
	opts.Width = b.Width
	opts.Height = b.Height
	opts.HiddenRows = b.HiddenRows
	opts.Spawn = engine.C(b.SpawnX, b.HiddenRows)
	opts.Generator = g.generatorName()
	opts.Seed = g.runtime.Seed
	opts.Drop = engine.DropPolicy{
		SoftDropPerRow: g.cfg.Scoring.SoftDropPerRow,
		HardDropPerRow: g.cfg.Scoring.HardDropPerRow,
		HardDropFlat:   g.cfg.Scoring.HardDropFlat,
	}
	return opts
}

// generatorName picks the config randomizer, falling back to the mode's.
func (g *Game) generatorName() string {
	if g.cfg.Randomizer != "" {
		return g.cfg.Randomizer
	}
	if g.mode == ModeClassic {
		return engine.GeneratorRandom
	}
	return engine.GeneratorBag7
}

// Resize updates the screen size without restarting. A screen that
// cannot fit the well pauses the game until it grows again.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	minW, minH := g.minSize()
	g.tooSmall = width < minW || height < minH
}

// SetBestScore implements registry.BestScoreReceiver.
func (g *Game) SetBestScore(score int) {
	g.best = score
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	over := g.session.State() == engine.StateTerminal
	if in.Has(core.ActionNewGame) || (over && in.Has(core.ActionRestart)) {
		g.newGame()
		return core.StepResult{State: g.State()}
	}

	if over {
		g.ageNotices()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	locked := false
	if in.Has(core.ActionHold) {
		if applied, _ := g.session.Hold(); applied {
			g.fallTicks = 0
		}
	}
	if in.Has(core.ActionRotate) {
		g.session.Rotate()
	}
	if in.Has(core.ActionLeft) {
		g.session.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.session.MoveRight()
	}
	if in.Has(core.ActionSoftDrop) {
		locked = g.apply(g.session.Step(true)) || locked
		g.fallTicks = 0
	}
	if in.Has(core.ActionHardDrop) {
		locked = g.apply(g.session.HardDrop(true)) || locked
	}

	if locked {
		g.fallTicks = 0
	} else if g.session.State() == engine.StateRunning {
		g.fallTicks++
		if g.fallTicks >= g.FallInterval() {
			g.fallTicks = 0
			g.apply(g.session.Step(false))
		}
	}

	g.ageNotices()
	return core.StepResult{State: g.State()}
}

// apply turns a step result into notifications and reports a lock.
func (g *Game) apply(r engine.Result) bool {
	if r.Bonus > 0 {
		g.notify(fmt.Sprintf("+%d", r.Bonus))
	}
	if r.LevelUp {
		g.notify(fmt.Sprintf("LEVEL %d", r.Stats.Level))
	}
	return r.Locked
}

func (g *Game) notify(text string) {
	g.notices = append(g.notices, notice{text: text, ticks: g.runtime.TickRate * noticeTenths / 10})
	if len(g.notices) > 2 {
		g.notices = g.notices[len(g.notices)-2:]
	}
}

func (g *Game) ageNotices() {
	kept := g.notices[:0]
	for _, n := range g.notices {
		if n.ticks--; n.ticks > 0 {
			kept = append(kept, n)
		}
	}
	g.notices = kept
}

func (g *Game) newGame() {
	g.session.NewGame()
	g.fallTicks = 0
	g.paused = false
	g.notices = nil
}

// FallInterval returns the current gravity interval in ticks.
func (g *Game) FallInterval() int {
	return g.gravity.Ticks(g.session.Stats().Level, g.runtime.TickRate)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.session.Stats()
	return core.GameState{
		Score:    st.Score,
		Lines:    st.Lines,
		Level:    st.Level,
		GameOver: g.session.State() == engine.StateTerminal,
		Paused:   g.paused || g.tooSmall,
	}
}

// NewBest reports whether the current score beats the stored best.
func (g *Game) NewBest() bool {
	score := g.session.Stats().Score
	return score > 0 && score > g.best
}
