// Package sensor answers the mouse's wall queries: is there a wall to the
// left, in front or to the right of a cell for a given heading.
//
// Walls on the outer border are implicit and reported without touching the
// maze's wall grids. Interior queries go through a lookup table keyed by
// (heading, side) so the mapping from mouse coordinates to storage indices
// can be read in one place. With s = size-1 and r = s-y (the storage row of
// cell y):
//
//	heading  left                     front                    right
//	North    x=0 | vWalls[r][x-1]     y=s | hWalls[r-1][x]     x=s | vWalls[r][x]
//	East     y=s | hWalls[r-1][x]     x=s | vWalls[r][x]       y=0 | hWalls[r][x]
//	South    x=s | vWalls[r][x]       y=0 | hWalls[r][x]       x=0 | vWalls[r][x-1]
//	West     y=0 | hWalls[r][x]       x=0 | vWalls[r][x-1]     y=s | hWalls[r-1][x]
package sensor

import (
	"mazesim/pkg/engine/world"
	"mazesim/pkg/maze"
)

// Side is a direction relative to the mouse's heading.
type Side int

// Side constants
const (
	SideLeft Side = iota
	SideFront
	SideRight
)

// String returns the string representation of a side
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "Left"
	case SideFront:
		return "Front"
	case SideRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Readings is one snapshot of the three wall sensors.
type Readings struct {
	Left  bool
	Front bool
	Right bool
}

// probe describes how to look up the wall on one absolute side of a cell.
type probe struct {
	orientation maze.Orientation
	row         func(r int) int
	col         func(x int) int
	edge        func(p world.Position, s int) bool
}

func sameRow(r int) int  { return r }
func rowAbove(r int) int { return r - 1 }
func sameCol(x int) int  { return x }
func colLeft(x int) int  { return x - 1 }

var (
	northWall = probe{maze.Horizontal, rowAbove, sameCol, func(p world.Position, s int) bool { return p.Y == s }}
	eastWall  = probe{maze.Vertical, sameRow, sameCol, func(p world.Position, s int) bool { return p.X == s }}
	southWall = probe{maze.Horizontal, sameRow, sameCol, func(p world.Position, _ int) bool { return p.Y == 0 }}
	westWall  = probe{maze.Vertical, sameRow, colLeft, func(p world.Position, _ int) bool { return p.X == 0 }}
)

// table maps (heading, side) to the probe for that wall.
var table = [4][3]probe{
	world.North: {SideLeft: westWall, SideFront: northWall, SideRight: eastWall},
	world.East:  {SideLeft: northWall, SideFront: eastWall, SideRight: southWall},
	world.South: {SideLeft: eastWall, SideFront: southWall, SideRight: westWall},
	world.West:  {SideLeft: southWall, SideFront: westWall, SideRight: northWall},
}

// HasWall reports whether there is a wall on the given side of cell p when
// facing heading h. Cells outside the maze and invalid headings or sides
// report a wall.
func HasWall(m *maze.Maze, p world.Position, h world.Heading, side Side) bool {
	if !h.IsValid() || side < SideLeft || side > SideRight || !p.InBounds(m.Size()) {
		return true
	}

	pr := table[h][side]
	s := m.Size() - 1
	if pr.edge(p, s) {
		return true
	}

	r := s - p.Y
	return m.Has(maze.WallID{
		Orientation: pr.orientation,
		Row:         pr.row(r),
		Col:         pr.col(p.X),
	})
}

// HasWallLeft reports whether there is a wall to the left of p facing h.
func HasWallLeft(m *maze.Maze, p world.Position, h world.Heading) bool {
	return HasWall(m, p, h, SideLeft)
}

// HasWallFront reports whether there is a wall in front of p facing h.
func HasWallFront(m *maze.Maze, p world.Position, h world.Heading) bool {
	return HasWall(m, p, h, SideFront)
}

// HasWallRight reports whether there is a wall to the right of p facing h.
func HasWallRight(m *maze.Maze, p world.Position, h world.Heading) bool {
	return HasWall(m, p, h, SideRight)
}

// Read takes all three readings at once.
func Read(m *maze.Maze, p world.Position, h world.Heading) Readings {
	return Readings{
		Left:  HasWallLeft(m, p, h),
		Front: HasWallFront(m, p, h),
		Right: HasWallRight(m, p, h),
	}
}
