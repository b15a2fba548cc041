package engine

import (
	"fmt"
	"math/rand"
)

// State is the session lifecycle state.
type State int

const (
	StateRunning State = iota
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Default board geometry.
const (
	DefaultWidth      = 10
	DefaultHeight     = 25
	DefaultHiddenRows = 2
	DefaultSpawnX     = 4
)

// DropPolicy holds the bonuses awarded for player-initiated drops.
// They only apply when the drop comes from the player, never from gravity.
type DropPolicy struct {
	SoftDropPerRow int // per row moved by a soft drop
	HardDropPerRow int // per row travelled by a hard drop
	HardDropFlat   int // once per hard drop
}

// DefaultDropPolicy awards one point per row for both drop kinds.
func DefaultDropPolicy() DropPolicy {
	return DropPolicy{SoftDropPerRow: 1, HardDropPerRow: 1}
}

// Options configures a Session.
type Options struct {
	Width      int
	Height     int
	HiddenRows int   // rows above the visible playfield
	Spawn      Coord // anchor for freshly spawned pieces
	Generator  string
	Source     Generator  // overrides Generator when set
	Rand       *rand.Rand // random source; built from Seed when nil
	Seed       int64
	Drop       DropPolicy
}

// DefaultOptions returns a 10x25 board with two hidden rows and a 7-bag.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		HiddenRows: DefaultHiddenRows,
		Spawn:      Coord{X: DefaultSpawnX, Y: DefaultHiddenRows},
		Generator:  GeneratorBag7,
		Drop:       DefaultDropPolicy(),
	}
}

// Validate checks the geometry for a playable board. Every kind must fit
// at the spawn anchor of an empty board, or the first spawn would end
// the game.
func (o Options) Validate() error {
	switch {
	case o.Width < ShapeSize:
		return fmt.Errorf("engine: invalid options: width %d is smaller than %d", o.Width, ShapeSize)
	case o.Height < ShapeSize:
		return fmt.Errorf("engine: invalid options: height %d is smaller than %d", o.Height, ShapeSize)
	case o.HiddenRows < 0 || o.HiddenRows >= o.Height:
		return fmt.Errorf("engine: invalid options: hidden rows %d outside [0,%d)", o.HiddenRows, o.Height)
	case o.Spawn.X < 0 || o.Spawn.X >= o.Width || o.Spawn.Y < 0 || o.Spawn.Y >= o.Height:
		return fmt.Errorf("engine: invalid options: spawn (%d,%d) outside %dx%d board", o.Spawn.X, o.Spawn.Y, o.Width, o.Height)
	}
	empty := NewGrid(o.Width, o.Height)
	for _, k := range Kinds() {
		if Collides(empty, k.Shape(0), o.Spawn) {
			return fmt.Errorf("engine: invalid options: %s does not fit at spawn (%d,%d) on a %dx%d board",
				k, o.Spawn.X, o.Spawn.Y, o.Width, o.Height)
		}
	}
	return nil
}

// Piece is a copy of the active piece.
type Piece struct {
	Kind     Kind
	Rotation int
	Anchor   Coord
	Shape    Shape
}

// Cells returns the absolute grid coordinates covered by the piece.
func (p Piece) Cells() []Coord {
	offsets := p.Shape.Cells()
	for i := range offsets {
		offsets[i] = offsets[i].Add(p.Anchor)
	}
	return offsets
}

// ActiveView is the active piece as seen by a renderer: the piece itself,
// the next-piece preview and the landing anchor for a ghost projection.
type ActiveView struct {
	Piece
	Next      Kind
	NextShape Shape
	Ghost     Coord
}

// Result is returned by Step and HardDrop. It covers the move, lock,
// line clear and respawn of one call.
type Result struct {
	LinesRemoved int
	Bonus        int // line-clear bonus added by this call
	Grid         Grid
	Active       ActiveView
	Stats        Stats
	Locked       bool
	LevelUp      bool
	Terminal     bool
}

// Session is a single game in progress. It owns the grid and the active
// piece; accessors hand out copies. A Session is not safe for concurrent use.
type Session struct {
	opts     Options
	grid     Grid
	gen      Generator
	tracker  *Tracker
	kind     Kind
	rotation int
	anchor   Coord
	held     Kind
	holdUsed bool
	state    State
}

// NewSession validates opts, builds the generator and spawns the first
// piece, so a session always has an active piece.
func NewSession(opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	gen := opts.Source
	if gen == nil {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(opts.Seed))
		}
		var err error
		gen, err = NewGenerator(opts.Generator, rng)
		if err != nil {
			return nil, err
		}
	}
	opts.Rand = nil
	opts.Source = nil

	s := &Session{
		opts:    opts,
		grid:    NewGrid(opts.Width, opts.Height),
		gen:     gen,
		tracker: NewTracker(),
	}
	s.Spawn()
	return s, nil
}

// Spawn replaces the active piece with the next one from the generator at
// rotation 0 and the spawn anchor, and re-arms hold. It returns true when
// the new piece collides, which ends the game.
func (s *Session) Spawn() bool {
	if s.state == StateTerminal {
		return true
	}
	s.holdUsed = false
	return s.place(s.gen.Next())
}

// place puts kind k at the spawn anchor.
func (s *Session) place(k Kind) bool {
	s.kind = k
	s.rotation = 0
	s.anchor = s.opts.Spawn
	if Collides(s.grid, s.shape(), s.anchor) {
		s.state = StateTerminal
		return true
	}
	return false
}

func (s *Session) shape() Shape {
	return s.kind.Shape(s.rotation)
}

// Move shifts the active piece by (dx, dy) if the target is free.
func (s *Session) Move(dx, dy int) bool {
	if s.state == StateTerminal {
		return false
	}
	next := s.anchor.Add(Coord{X: dx, Y: dy})
	if Collides(s.grid, s.shape(), next) {
		return false
	}
	s.anchor = next
	return true
}

// MoveLeft shifts the active piece one column left.
func (s *Session) MoveLeft() bool { return s.Move(-1, 0) }

// MoveRight shifts the active piece one column right.
func (s *Session) MoveRight() bool { return s.Move(1, 0) }

// Rotate advances to the next rotation state in place. There are no wall
// kicks: a colliding rotation is rejected.
func (s *Session) Rotate() bool {
	if s.state == StateTerminal {
		return false
	}
	next := s.kind.NextRotation(s.rotation)
	if Collides(s.grid, s.kind.Shape(next), s.anchor) {
		return false
	}
	s.rotation = next
	return true
}

// Step applies one row of gravity. If the piece cannot fall it locks,
// full rows clear and the next piece spawns. fromUser marks a soft drop,
// which earns the soft-drop bonus for the row moved.
func (s *Session) Step(fromUser bool) Result {
	if s.state == StateTerminal {
		return s.result(0, 0, false, false)
	}
	if s.Move(0, 1) {
		if fromUser {
			s.tracker.AddScore(s.opts.Drop.SoftDropPerRow)
		}
		return s.result(0, 0, false, false)
	}
	return s.lock()
}

// HardDrop drops the piece as far as it goes and locks it.
func (s *Session) HardDrop(fromUser bool) Result {
	if s.state == StateTerminal {
		return s.result(0, 0, false, false)
	}
	rows := 0
	for s.Move(0, 1) {
		rows++
	}
	if fromUser {
		s.tracker.AddScore(rows*s.opts.Drop.HardDropPerRow + s.opts.Drop.HardDropFlat)
	}
	return s.lock()
}

// lock merges the active piece, clears rows, scores and respawns.
// The clear bonus uses the level in force before the lines are counted.
func (s *Session) lock() Result {
	level := s.tracker.Stats().Level
	s.grid = Merge(s.grid, s.shape(), s.anchor)

	var removed int
	removed, s.grid = ClearFullRows(s.grid)
	bonus := LineClearBonus(removed, level)
	s.tracker.AddScore(bonus)
	levelUp := s.tracker.AddLines(removed)

	s.Spawn()
	return s.result(removed, bonus, true, levelUp)
}

func (s *Session) result(removed, bonus int, locked, levelUp bool) Result {
	return Result{
		LinesRemoved: removed,
		Bonus:        bonus,
		Grid:         s.grid.Clone(),
		Active:       s.Active(),
		Stats:        s.tracker.Stats(),
		Locked:       locked,
		LevelUp:      levelUp,
		Terminal:     s.state == StateTerminal,
	}
}

// Hold stashes the active piece once per lock cycle. With an empty slot
// the next piece comes from the generator; otherwise the held piece swaps
// in at rotation 0 and the spawn anchor. Taking a piece from the generator
// here does not re-arm hold. applied is false when hold was refused;
// collided is true when the incoming piece does not fit, which ends the game.
func (s *Session) Hold() (applied, collided bool) {
	if s.state == StateTerminal {
		return false, true
	}
	if s.holdUsed {
		return false, false
	}
	s.holdUsed = true

	if s.held == KindNone {
		s.held = s.kind
		return true, s.place(s.gen.Next())
	}
	incoming := s.held
	s.held = s.kind
	return true, s.place(incoming)
}

// NewGame clears the board, counters and hold slot and spawns a piece.
// It is the only operation accepted in the terminal state.
func (s *Session) NewGame() {
	s.grid = NewGrid(s.opts.Width, s.opts.Height)
	s.tracker.Reset()
	s.held = KindNone
	s.holdUsed = false
	s.state = StateRunning
	s.Spawn()
}

// Grid returns a copy of the locked cells. The active piece is not included.
func (s *Session) Grid() Grid {
	return s.grid.Clone()
}

// Active returns a copy of the active piece with preview and ghost data.
func (s *Session) Active() ActiveView {
	shape := s.shape()
	next := s.gen.Peek()
	return ActiveView{
		Piece: Piece{
			Kind:     s.kind,
			Rotation: s.rotation,
			Anchor:   s.anchor,
			Shape:    shape,
		},
		Next:      next,
		NextShape: next.Shape(0),
		Ghost:     Coord{X: s.anchor.X, Y: s.anchor.Y + DropDistance(s.grid, shape, s.anchor)},
	}
}

// Held returns the held kind and its spawn shape. ok is false when the
// slot is empty.
func (s *Session) Held() (Kind, Shape, bool) {
	if s.held == KindNone {
		return KindNone, Shape{}, false
	}
	return s.held, s.held.Shape(0), true
}

// HoldUsed reports whether hold was already used this lock cycle.
func (s *Session) HoldUsed() bool {
	return s.holdUsed
}

// Stats returns the score counters.
func (s *Session) Stats() Stats {
	return s.tracker.Stats()
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Options returns the options the session was built with.
func (s *Session) Options() Options {
	return s.opts
}
