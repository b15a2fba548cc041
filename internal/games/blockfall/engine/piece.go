// Package engine implements the falling-block rules: the piece catalog,
// grid algorithms, piece generators, score tracking and the game session
// that ties them together. It has no external dependencies and performs
// no I/O, so the platform layer decides when gravity ticks happen.
package engine

// Cell is a single grid cell code. 0 is empty, 1..7 are piece-type ids.
type Cell uint8

// Empty is the zero cell.
const Empty Cell = 0

// Kind identifies one of the seven tetrominoes. Its numeric value is the
// cell code the piece leaves behind when it locks.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// KindCount is the number of playable kinds.
const KindCount = 7

// ShapeSize is the side length of every rotation matrix.
const ShapeSize = 4

// Shape is one rotation state of a piece.
type Shape [ShapeSize][ShapeSize]Cell

// Kinds returns the seven playable kinds in id order.
func Kinds() []Kind {
	return []Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindZ
}

// Cell returns the cell code used by this kind.
func (k Kind) Cell() Cell {
	return Cell(k)
}

func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "-"
	}
}

// States returns how many rotation states the kind has.
func (k Kind) States() int {
	if !k.Valid() {
		return 0
	}
	return len(catalog[k])
}

// Shape returns the rotation state at index rotation, wrapping modulo
// the number of states. Invalid kinds yield an empty shape.
func (k Kind) Shape(rotation int) Shape {
	if !k.Valid() {
		return Shape{}
	}
	states := catalog[k]
	n := len(states)
	rotation %= n
	if rotation < 0 {
		rotation += n
	}
	return states[rotation]
}

// NextRotation returns the index reached by rotating once from rotation.
func (k Kind) NextRotation(rotation int) int {
	n := k.States()
	if n == 0 {
		return 0
	}
	return (rotation + 1) % n
}

// Cells returns the offsets of the nonzero cells of s, row by row.
func (s Shape) Cells() []Coord {
	out := make([]Coord, 0, 4)
	for y := range ShapeSize {
		for x := range ShapeSize {
			if s[y][x] != Empty {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// IsEmpty reports whether s has no filled cells.
func (s Shape) IsEmpty() bool {
	for y := range ShapeSize {
		for x := range ShapeSize {
			if s[y][x] != Empty {
				return false
			}
		}
	}
	return true
}

// catalog holds the rotation tables. O has one state; I, S and Z have two;
// J, L and T have four.
var catalog = [KindCount + 1][]Shape{
	KindI: {
		{
			{0, 0, 0, 0},
			{1, 1, 1, 1},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 1, 0},
			{0, 0, 1, 0},
			{0, 0, 1, 0},
			{0, 0, 1, 0},
		},
	},
	KindJ: {
		{
			{0, 0, 0, 0},
			{2, 2, 2, 0},
			{0, 0, 2, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 2, 2, 0},
			{0, 2, 0, 0},
			{0, 2, 0, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 2, 0, 0},
			{0, 2, 2, 2},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 2, 0},
			{0, 0, 2, 0},
			{0, 2, 2, 0},
			{0, 0, 0, 0},
		},
	},
	KindL: {
		{
			{0, 0, 0, 0},
			{0, 3, 3, 3},
			{0, 3, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 3, 3, 0},
			{0, 0, 3, 0},
			{0, 0, 3, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 0, 3, 0},
			{3, 3, 3, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 3, 0, 0},
			{0, 3, 0, 0},
			{0, 3, 3, 0},
			{0, 0, 0, 0},
		},
	},
	KindO: {
		{
			{0, 0, 0, 0},
			{0, 4, 4, 0},
			{0, 4, 4, 0},
			{0, 0, 0, 0},
		},
	},
	KindS: {
		{
			{0, 0, 0, 0},
			{0, 5, 5, 0},
			{5, 5, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{5, 0, 0, 0},
			{5, 5, 0, 0},
			{0, 5, 0, 0},
			{0, 0, 0, 0},
		},
	},
	KindT: {
		{
			{0, 0, 0, 0},
			{6, 6, 6, 0},
			{0, 6, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 6, 0, 0},
			{0, 6, 6, 0},
			{0, 6, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 6, 0, 0},
			{6, 6, 6, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 6, 0, 0},
			{6, 6, 0, 0},
			{0, 6, 0, 0},
			{0, 0, 0, 0},
		},
	},
	KindZ: {
		{
			{0, 0, 0, 0},
			{7, 7, 0, 0},
			{0, 7, 7, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 7, 0, 0},
			{7, 7, 0, 0},
			{7, 0, 0, 0},
			{0, 0, 0, 0},
		},
	},
}
