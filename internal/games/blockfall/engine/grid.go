package engine

// Grid is the playfield as a rectangular array of cell codes.
// Cells are stored in row-major order: index = y*W + x.
// Functions in this file never modify their grid argument.
type Grid struct {
	W     int
	H     int
	Cells []Cell
}

// NewGrid returns an all-empty grid of the given size.
func NewGrid(w, h int) Grid {
	return Grid{W: w, H: h, Cells: make([]Cell, w*h)}
}

// GridFromRows builds a grid from row slices. Short rows are padded with
// empty cells up to the width of the longest row.
func GridFromRows(rows [][]Cell) Grid {
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	g := NewGrid(w, len(rows))
	for y, r := range rows {
		copy(g.Cells[y*w:], r)
	}
	return g
}

// InBounds reports whether c lies inside the grid.
func (g Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the cell at (x, y), or Empty when out of bounds.
func (g Grid) At(x, y int) Cell {
	if !g.InBounds(Coord{X: x, Y: y}) {
		return Empty
	}
	return g.Cells[y*g.W+x]
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return Grid{W: g.W, H: g.H, Cells: cells}
}

// Row returns a copy of row y. Out-of-range rows are nil.
func (g Grid) Row(y int) []Cell {
	if y < 0 || y >= g.H {
		return nil
	}
	out := make([]Cell, g.W)
	copy(out, g.Cells[y*g.W:(y+1)*g.W])
	return out
}

// Rows returns the grid as freshly allocated row slices.
func (g Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.H)
	for y := range g.H {
		rows[y] = g.Row(y)
	}
	return rows
}

// IsRowFull reports whether every cell of row y is nonzero.
func (g Grid) IsRowFull(y int) bool {
	if y < 0 || y >= g.H {
		return false
	}
	for _, c := range g.Cells[y*g.W : (y+1)*g.W] {
		if c == Empty {
			return false
		}
	}
	return true
}

// IsRowEmpty reports whether every cell of row y is zero.
func (g Grid) IsRowEmpty(y int) bool {
	if y < 0 || y >= g.H {
		return true
	}
	for _, c := range g.Cells[y*g.W : (y+1)*g.W] {
		if c != Empty {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the whole grid is empty.
func (g Grid) IsEmpty() bool {
	for _, c := range g.Cells {
		if c != Empty {
			return false
		}
	}
	return true
}

// Equal reports whether two grids have the same size and contents.
func (g Grid) Equal(o Grid) bool {
	if g.W != o.W || g.H != o.H || len(g.Cells) != len(o.Cells) {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != o.Cells[i] {
			return false
		}
	}
	return true
}

// Collides reports whether shape s placed with its top-left corner at
// anchor overlaps a locked cell or leaves the grid. Rows above the top
// edge count as outside the grid, same as columns past either side and
// rows below the floor.
func Collides(g Grid, s Shape, anchor Coord) bool {
	for y := range ShapeSize {
		for x := range ShapeSize {
			if s[y][x] == Empty {
				continue
			}
			p := Coord{X: anchor.X + x, Y: anchor.Y + y}
			if !g.InBounds(p) {
				return true
			}
			if g.Cells[p.Y*g.W+p.X] != Empty {
				return true
			}
		}
	}
	return false
}

// Merge returns a copy of g with the nonzero cells of s written at anchor.
// Cells falling outside the grid are skipped.
func Merge(g Grid, s Shape, anchor Coord) Grid {
	out := g.Clone()
	for y := range ShapeSize {
		for x := range ShapeSize {
			if s[y][x] == Empty {
				continue
			}
			p := Coord{X: anchor.X + x, Y: anchor.Y + y}
			if !out.InBounds(p) {
				continue
			}
			out.Cells[p.Y*out.W+p.X] = s[y][x]
		}
	}
	return out
}

// ClearFullRows removes every full row and shifts the remaining rows down,
// keeping their order. Vacated rows at the top are empty. It returns the
// number of rows removed and the new grid, which has the same dimensions.
func ClearFullRows(g Grid) (int, Grid) {
	out := NewGrid(g.W, g.H)
	dst := g.H - 1
	removed := 0
	for y := g.H - 1; y >= 0; y-- {
		if g.IsRowFull(y) {
			removed++
			continue
		}
		copy(out.Cells[dst*g.W:(dst+1)*g.W], g.Cells[y*g.W:(y+1)*g.W])
		dst--
	}
	return removed, out
}

// DropDistance returns how many rows s can fall from anchor before it
// would collide. A shape that already collides yields 0.
func DropDistance(g Grid, s Shape, anchor Coord) int {
	if Collides(g, s, anchor) {
		return 0
	}
	d := 0
	for !Collides(g, s, Coord{X: anchor.X, Y: anchor.Y + d + 1}) {
		d++
	}
	return d
}
