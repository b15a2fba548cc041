package engine

// Coord is a grid position. X is the column, Y is the row (0 at the top).
type Coord struct {
	X int
	Y int
}

// C is shorthand for building a Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}
