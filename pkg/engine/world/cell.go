// Package world provides the grid primitives shared by the maze, sensor,
// policy and motion packages: cell positions, headings and actions.
// Coordinates follow the micromouse convention: (0,0) is the bottom-left
// start cell and y grows northward.
package world

import "fmt"

// Position is a cell coordinate in the maze grid
type Position struct {
	X int
	Y int
}

// Pos is shorthand for Position{X: x, Y: y}
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Start is the designated start cell of every maze
var Start = Position{}

// Step returns the position one cell away in the given heading
func (p Position) Step(h Heading) Position {
	dx, dy := h.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// InBounds checks if the position lies within a size×size grid
func (p Position) InBounds(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// OnEdge returns true if the position is on the outer ring of a size×size grid
func (p Position) OnEdge(size int) bool {
	return p.InBounds(size) && (p.X == 0 || p.Y == 0 || p.X == size-1 || p.Y == size-1)
}

// ManhattanDistance returns the grid distance between two positions
func (p Position) ManhattanDistance(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// String returns the position as "(x,y)"
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
