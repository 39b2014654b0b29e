package maze

import (
	"fmt"

	"mazesim/pkg/engine/world"
)

// Orientation selects which interior wall grid a WallID refers to.
type Orientation int

const (
	// Vertical walls separate horizontally adjacent cells.
	Vertical Orientation = iota
	// Horizontal walls separate vertically adjacent cells.
	Horizontal
)

// String returns the string representation of an orientation
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	default:
		return "Unknown"
	}
}

// WallID identifies one interior wall in storage coordinates.
//
// Vertical:   0 <= Row < size, 0 <= Col < size-1
// Horizontal: 0 <= Row < size-1, 0 <= Col < size
type WallID struct {
	Orientation Orientation
	Row         int
	Col         int
}

// VWallID is shorthand for a vertical WallID.
func VWallID(row, col int) WallID {
	return WallID{Orientation: Vertical, Row: row, Col: col}
}

// HWallID is shorthand for a horizontal WallID.
func HWallID(row, col int) WallID {
	return WallID{Orientation: Horizontal, Row: row, Col: col}
}

// String returns the wall id as "V[row,col]" or "H[row,col]"
func (id WallID) String() string {
	return fmt.Sprintf("%c[%d,%d]", id.Orientation.String()[0], id.Row, id.Col)
}

// Valid reports whether id names an interior wall of m.
func (m *Maze) Valid(id WallID) bool {
	switch id.Orientation {
	case Vertical:
		return id.Row >= 0 && id.Row < m.size && id.Col >= 0 && id.Col < m.size-1
	case Horizontal:
		return id.Row >= 0 && id.Row < m.size-1 && id.Col >= 0 && id.Col < m.size
	default:
		return false
	}
}

// Has reports whether the wall named by id is present. Invalid ids report false.
func (m *Maze) Has(id WallID) bool {
	if !m.Valid(id) {
		return false
	}
	if id.Orientation == Vertical {
		return m.vWalls[id.Row][id.Col]
	}
	return m.hWalls[id.Row][id.Col]
}

// ToggleWall flips the presence of one interior wall.
// It returns ErrIndex and leaves the maze unchanged if id is out of range.
func (m *Maze) ToggleWall(id WallID) error {
	if !m.Valid(id) {
		return fmt.Errorf("%w: %v in %dx%d maze", ErrIndex, id, m.size, m.size)
	}
	if id.Orientation == Vertical {
		m.vWalls[id.Row][id.Col] = !m.vWalls[id.Row][id.Col]
	} else {
		m.hWalls[id.Row][id.Col] = !m.hWalls[id.Row][id.Col]
	}
	return nil
}

// SetWall sets the presence of one interior wall.
// It returns ErrIndex and leaves the maze unchanged if id is out of range.
func (m *Maze) SetWall(id WallID, present bool) error {
	if !m.Valid(id) {
		return fmt.Errorf("%w: %v in %dx%d maze", ErrIndex, id, m.size, m.size)
	}
	if id.Orientation == Vertical {
		m.vWalls[id.Row][id.Col] = present
	} else {
		m.hWalls[id.Row][id.Col] = present
	}
	return nil
}

// WallIDs returns every interior wall id of the maze, vertical walls first,
// each group in row-major storage order.
func (m *Maze) WallIDs() []WallID {
	ids := make([]WallID, 0, 2*m.size*(m.size-1))
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size-1; col++ {
			ids = append(ids, VWallID(row, col))
		}
	}
	for row := 0; row < m.size-1; row++ {
		for col := 0; col < m.size; col++ {
			ids = append(ids, HWallID(row, col))
		}
	}
	return ids
}

// WallBetween returns the id of the interior wall separating two adjacent
// cells given in mouse coordinates. ok is false if the cells are not
// orthogonal neighbours inside the maze.
func (m *Maze) WallBetween(a, b world.Position) (id WallID, ok bool) {
	if !a.InBounds(m.size) || !b.InBounds(m.size) || a.ManhattanDistance(b) != 1 {
		return WallID{}, false
	}
	if a.Y == b.Y {
		return VWallID(m.storageRow(a.Y), min(a.X, b.X)), true
	}
	return HWallID(m.storageRow(max(a.Y, b.Y)), a.X), true
}

// storageRow converts a mouse y coordinate to a storage row.
func (m *Maze) storageRow(y int) int {
	return m.size - 1 - y
}
