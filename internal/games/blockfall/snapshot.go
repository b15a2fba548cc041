package blockfall

import "github.com/vovakirdan/blockfall/internal/games/blockfall/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick         uint64
	Mode         string
	Score        int
	Lines        int
	Level        int
	Active       string // kind name
	Rotation     int
	AnchorX      int
	AnchorY      int
	Next         string
	Held         string // "-" when the slot is empty
	FallInterval int    // gravity interval in ticks
	Board        []engine.Cell
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.State() == engine.StateTerminal:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	st := g.session.Stats()
	active := g.session.Active()
	held, _, _ := g.session.Held()

	return Snapshot{
		Tick:         g.tick,
		Mode:         string(g.mode),
		Score:        st.Score,
		Lines:        st.Lines,
		Level:        st.Level,
		Active:       active.Kind.String(),
		Rotation:     active.Rotation,
		AnchorX:      active.Anchor.X,
		AnchorY:      active.Anchor.Y,
		Next:         active.Next.String(),
		Held:         held.String(),
		FallInterval: g.FallInterval(),
		Board:        g.session.Grid().Cells,
		State:        state,
	}
}
