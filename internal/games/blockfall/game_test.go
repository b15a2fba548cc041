package blockfall

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: seed}
}

func newTestGame(t *testing.T, mode Mode, seed int64) *Game {
	t.Helper()
	g := NewWithConfig(mode, config.DefaultBlockfallConfig())
	g.Reset(testRuntime(seed))
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func playUntilOver(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 300 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionHardDrop))
	}
	if !g.State().GameOver {
		t.Fatal("game never ended")
	}
}

func TestRegisteredModes(t *testing.T) {
	for id, title := range map[string]string{IDBag7: "Blockfall", IDClassic: "Blockfall (Classic)"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id || g.Title() != title {
			t.Errorf("%s: got ID %q title %q", id, g.ID(), g.Title())
		}
		if _, ok := g.(registry.BestScoreReceiver); !ok {
			t.Errorf("%s should accept a best score", id)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 1500)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%53 == 0:
			inputs[i].Set(core.ActionHardDrop)
		case i%37 == 0:
			inputs[i].Set(core.ActionHold)
		case i%11 == 0:
			inputs[i].Set(core.ActionRotate)
		case i%7 == 0:
			inputs[i].Set(core.ActionLeft)
		case i%5 == 0:
			inputs[i].Set(core.ActionRight)
		case i%3 == 0:
			inputs[i].Set(core.ActionSoftDrop)
		}
	}

	for _, mode := range []Mode{ModeBag7, ModeClassic} {
		t.Run(string(mode), func(t *testing.T) {
			run := func() Snapshot {
				g := newTestGame(t, mode, 12345)
				for _, in := range inputs {
					g.Step(in)
				}
				return g.Snapshot()
			}

			first, second := run(), run()
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("same seed and inputs diverged (-first +second):\n%s", diff)
			}
			if first.Tick != uint64(len(inputs)) {
				t.Errorf("Tick = %d, expected %d", first.Tick, len(inputs))
			}
		})
	}
}

func TestGravityFallsOncePerInterval(t *testing.T) {
	g := newTestGame(t, ModeBag7, 1)

	interval := g.FallInterval()
	if interval != 24 {
		t.Fatalf("FallInterval() = %d, expected 24 ticks for 400ms at 60 ticks/s", interval)
	}

	start := g.Snapshot().AnchorY
	for i := 0; i < interval-1; i++ {
		g.Step(core.NewInputFrame())
	}
	if y := g.Snapshot().AnchorY; y != start {
		t.Fatalf("piece fell early: y = %d after %d ticks", y, interval-1)
	}
	g.Step(core.NewInputFrame())
	if y := g.Snapshot().AnchorY; y != start+1 {
		t.Errorf("y = %d after %d ticks, expected %d", y, interval, start+1)
	}
	if g.State().Score != 0 {
		t.Error("gravity should not score")
	}
}

func TestSoftAndHardDrop(t *testing.T) {
	g := newTestGame(t, ModeBag7, 2)

	g.Step(frame(core.ActionSoftDrop))
	snap := g.Snapshot()
	if snap.AnchorY != 3 || snap.Score != 1 {
		t.Errorf("after soft drop: y = %d score = %d, expected 3 and 1", snap.AnchorY, snap.Score)
	}

	before := snap.Active
	next := snap.Next
	g.Step(frame(core.ActionHardDrop))
	snap = g.Snapshot()

	if snap.Score <= 1 {
		t.Errorf("hard drop should score, got %d", snap.Score)
	}
	if snap.AnchorY != 2 || snap.Active != next {
		t.Errorf("expected %s to spawn at y=2 after locking %s, got %s at y=%d", next, before, snap.Active, snap.AnchorY)
	}
	filled := 0
	for _, c := range snap.Board {
		if c != 0 {
			filled++
		}
	}
	if filled != 4 {
		t.Errorf("board has %d locked cells, expected 4", filled)
	}
}

func TestHoldInput(t *testing.T) {
	g := newTestGame(t, ModeBag7, 3)
	first := g.Snapshot()

	g.Step(frame(core.ActionHold))
	snap := g.Snapshot()
	if snap.Held != first.Active {
		t.Errorf("held = %s, expected %s", snap.Held, first.Active)
	}
	if snap.Active != first.Next {
		t.Errorf("active = %s, expected the previewed %s", snap.Active, first.Next)
	}

	g.Step(frame(core.ActionHold))
	if again := g.Snapshot(); again.Held != snap.Held || again.Active != snap.Active {
		t.Error("second hold before a lock should do nothing")
	}
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t, ModeBag7, 4)

	g.Step(frame(core.ActionPause))
	if !g.State().Paused || g.Snapshot().State != StatePaused {
		t.Fatal("game should be paused")
	}

	before := g.Snapshot()
	for i := 0; i < 100; i++ {
		g.Step(frame(core.ActionLeft, core.ActionHardDrop))
	}
	after := g.Snapshot()
	if after.AnchorX != before.AnchorX || after.AnchorY != before.AnchorY || after.Score != before.Score {
		t.Error("paused game changed state")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t, ModeBag7, 5)

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver {
		t.Fatal("restart should do nothing while playing")
	}

	playUntilOver(t, g)
	if g.Snapshot().State != StateGameOver {
		t.Errorf("state = %s, expected game_over", g.Snapshot().State)
	}

	over := g.Snapshot()
	g.Step(frame(core.ActionPause, core.ActionLeft))
	if g.State().Paused {
		t.Error("pause should be ignored after game over")
	}
	if diff := cmp.Diff(over.Board, g.Snapshot().Board); diff != "" {
		t.Errorf("board changed after game over:\n%s", diff)
	}

	g.Step(frame(core.ActionRestart))
	st := g.State()
	if st.GameOver || st.Score != 0 || st.Lines != 0 || st.Level != 1 {
		t.Errorf("after restart: %+v", st)
	}
}

func TestNewGameAnyTime(t *testing.T) {
	g := newTestGame(t, ModeClassic, 6)
	g.Step(frame(core.ActionHardDrop))
	g.Step(frame(core.ActionHold))
	if g.State().Score == 0 {
		t.Fatal("setup: expected a score")
	}

	g.Step(frame(core.ActionNewGame))
	snap := g.Snapshot()
	if snap.Score != 0 || snap.Held != "-" {
		t.Errorf("new game kept score %d and held %s", snap.Score, snap.Held)
	}
	for _, c := range snap.Board {
		if c != 0 {
			t.Fatal("new game should clear the board")
		}
	}
}

func TestNotifications(t *testing.T) {
	g := newTestGame(t, ModeBag7, 7)

	g.notify("+50")
	g.notify("LEVEL 2")
	g.notify("+200")
	if len(g.notices) != 2 || g.notices[0].text != "LEVEL 2" {
		t.Fatalf("notices = %+v, expected the two newest", g.notices)
	}

	lifetime := testRuntime(0).TickRate * noticeTenths / 10
	for i := 0; i < lifetime-1; i++ {
		g.ageNotices()
	}
	if len(g.notices) != 2 {
		t.Fatalf("notices expired early")
	}
	g.ageNotices()
	if len(g.notices) != 0 {
		t.Errorf("notices should expire after %d ticks", lifetime)
	}
}

func TestTooSmallWindow(t *testing.T) {
	g := NewWithConfig(ModeBag7, config.DefaultBlockfallConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 60, Seed: 1})

	if !g.State().Paused || g.Snapshot().State != StatePausedSmall {
		t.Fatal("small window should pause the game")
	}
	y := g.Snapshot().AnchorY
	for i := 0; i < 100; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Snapshot().AnchorY != y {
		t.Error("gravity ran while the window was too small")
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("missing resize hint:\n%s", screen.String())
	}

	g.Resize(80, 30)
	if g.State().Paused {
		t.Error("growing the window should resume")
	}
}

func TestRandomizerOverride(t *testing.T) {
	cfg := config.DefaultBlockfallConfig()
	cfg.Randomizer = "random"
	g := NewWithConfig(ModeBag7, cfg)
	g.Reset(testRuntime(1))

	if got := g.generatorName(); got != "random" {
		t.Errorf("generator = %q, expected random", got)
	}
	if got := NewWithConfig(ModeClassic, config.DefaultBlockfallConfig()); got.ID() != IDClassic {
		t.Errorf("ID() = %q", got.ID())
	}
}

func TestFixedPresetKeepsInterval(t *testing.T) {
	cfg := config.DefaultBlockfallConfig()
	config.ApplyPreset(&cfg, config.DifficultyFixed)
	g := NewWithConfig(ModeBag7, cfg)
	g.Reset(testRuntime(1))

	if g.gravity.Ticks(1, 60) != g.gravity.Ticks(15, 60) {
		t.Error("fixed preset should not speed up")
	}
}

func TestLoadConfigAppliesFilePreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	if err := os.WriteFile(path, []byte("difficulty:\n  preset: fixed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetDifficultyPreset("")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Difficulty.Progression {
		t.Error("preset fixed in the file should turn off progression")
	}

	SetDifficultyPreset("hard")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if !cfg.Difficulty.Progression || cfg.Gravity.BaseMS != 240 {
		t.Errorf("CLI preset hard = progression %v, base %d; expected true, 240",
			cfg.Difficulty.Progression, cfg.Gravity.BaseMS)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModeBag7, 8)
	screen := core.NewScreen(80, 30)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"BLOCKFALL", "NEXT", "HOLD", "Score: 0", "Lines: 0", "Level: 1", "Best:  0", "::"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	blocks := 0
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if c := screen.GetCell(x, y); c.Rune == blockGlyph {
				blocks++
				if c.Color == core.ColorDefault {
					t.Fatalf("block at (%d, %d) has no color", x, y)
				}
			}
		}
	}
	// Active piece and next preview, two columns per cell.
	if blocks != 16 {
		t.Errorf("rendered %d block glyphs, expected 16", blocks)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, ModeBag7, 9)
	screen := core.NewScreen(80, 30)

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}
	g.Step(frame(core.ActionPause))

	playUntilOver(t, g)
	g.SetBestScore(0)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "NEW BEST!") {
		t.Errorf("game over overlay missing:\n%s", out)
	}

	g.SetBestScore(1 << 30)
	g.Render(screen)
	if strings.Contains(screen.String(), "NEW BEST!") {
		t.Error("NEW BEST! shown without beating the best score")
	}
}
