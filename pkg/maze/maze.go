/*
Package maze provides the micromouse maze model.

A Maze is a size×size grid of cells. Only interior walls are stored: hWalls
holds the walls between vertically adjacent cells and vWalls the walls between
horizontally adjacent cells. The outer border is always present and is never
stored; consumers such as the sensor model treat it as an implicit boundary.

Storage rows are numbered from the north edge of the maze (row 0 is the top
row as drawn), while mouse coordinates have (0,0) in the bottom-left corner.
Cell (x, y) therefore lives in storage row size-1-y.

The package also implements the line-oriented text format used to load and
save mazes, and in-place wall toggling for editors.
*/
package maze

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinSize is the smallest supported maze dimension.
	MinSize = 2
	// MaxSize is the largest supported maze dimension.
	MaxSize = 16
	// MaxNameLen is the maximum length of a maze name in bytes.
	MaxNameLen = 64
)

// Maze is a square grid of cells with interior wall adjacency.
type Maze struct {
	name   string
	size   int
	hWalls [][]bool // [size-1][size], wall below storage row i at column j
	vWalls [][]bool // [size][size-1], wall right of storage column j at row i
}

// New creates an open maze (no interior walls) of the given size.
// It returns ErrInvalidSize if size is outside [MinSize, MaxSize].
func New(size int, name string) (*Maze, error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}

	m := &Maze{
		name:   sanitizeName(name),
		size:   size,
		hWalls: make([][]bool, size-1),
		vWalls: make([][]bool, size),
	}
	for i := range m.hWalls {
		m.hWalls[i] = make([]bool, size)
	}
	for i := range m.vWalls {
		m.vWalls[i] = make([]bool, size-1)
	}

	return m, nil
}

// ValidateSize returns ErrInvalidSize if size cannot be used for a maze.
func ValidateSize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidSize, size, MinSize, MaxSize)
	}
	return nil
}

// Size returns the number of cells along each side.
func (m *Maze) Size() int {
	return m.size
}

// Name returns the display label of the maze.
func (m *Maze) Name() string {
	return m.name
}

// SetName replaces the display label, applying the same limits as New.
func (m *Maze) SetName(name string) {
	m.name = sanitizeName(name)
}

// HWall reports whether the horizontal wall below storage row `row` at
// column `col` is present. Out-of-range indices report false.
func (m *Maze) HWall(row, col int) bool {
	if row < 0 || row >= m.size-1 || col < 0 || col >= m.size {
		return false
	}
	return m.hWalls[row][col]
}

// VWall reports whether the vertical wall right of storage column `col` in
// storage row `row` is present. Out-of-range indices report false.
func (m *Maze) VWall(row, col int) bool {
	if row < 0 || row >= m.size || col < 0 || col >= m.size-1 {
		return false
	}
	return m.vWalls[row][col]
}

// WallCount returns the number of interior walls that are present.
func (m *Maze) WallCount() int {
	n := 0
	for _, row := range m.hWalls {
		for _, w := range row {
			if w {
				n++
			}
		}
	}
	for _, row := range m.vWalls {
		for _, w := range row {
			if w {
				n++
			}
		}
	}
	return n
}

// Equal reports whether two mazes have the same name, size and walls.
func (m *Maze) Equal(o *Maze) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.name != o.name || m.size != o.size {
		return false
	}
	for i := range m.hWalls {
		for j := range m.hWalls[i] {
			if m.hWalls[i][j] != o.hWalls[i][j] {
				return false
			}
		}
	}
	for i := range m.vWalls {
		for j := range m.vWalls[i] {
			if m.vWalls[i][j] != o.vWalls[i][j] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the maze.
func (m *Maze) Clone() *Maze {
	c := &Maze{
		name:   m.name,
		size:   m.size,
		hWalls: make([][]bool, len(m.hWalls)),
		vWalls: make([][]bool, len(m.vWalls)),
	}
	for i, row := range m.hWalls {
		c.hWalls[i] = append([]bool(nil), row...)
	}
	for i, row := range m.vWalls {
		c.vWalls[i] = append([]bool(nil), row...)
	}
	return c
}

// String returns the serialized text form of the maze.
func (m *Maze) String() string {
	return Serialize(m)
}

// sanitizeName keeps the first line of name and trims it to MaxNameLen bytes
// without splitting a UTF-8 sequence.
func sanitizeName(name string) string {
	if i := strings.IndexAny(name, "\r\n"); i >= 0 {
		name = name[:i]
	}
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
		for len(name) > 0 && !utf8.ValidString(name) {
			name = name[:len(name)-1]
		}
	}
	return name
}
