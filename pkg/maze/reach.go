package maze

import (
	"github.com/zyedidia/generic/mapset"

	"mazesim/pkg/engine/world"
)

// Open reports whether the mouse can pass from cell p one step in heading h:
// the neighbour must be inside the maze and the wall between them absent.
func (m *Maze) Open(p world.Position, h world.Heading) bool {
	id, ok := m.WallBetween(p, p.Step(h))
	return ok && !m.Has(id)
}

// Reachable collects all cells reachable from start through open walls using BFS.
// The result is empty if start is outside the maze.
func (m *Maze) Reachable(start world.Position) mapset.Set[world.Position] {
	visited := mapset.New[world.Position]()
	if !start.InBounds(m.size) {
		return visited
	}

	queue := []world.Position{start}
	visited.Put(start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, h := range world.AllHeadings() {
			if !m.Open(current, h) {
				continue
			}
			next := current.Step(h)
			if visited.Has(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}

	return visited
}

// Unreachable returns the cells that cannot be reached from the start cell,
// in row-major order from (0,0).
func (m *Maze) Unreachable() []world.Position {
	reachable := m.Reachable(world.Start)
	var cells []world.Position
	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			if p := world.Pos(x, y); !reachable.Has(p) {
				cells = append(cells, p)
			}
		}
	}
	return cells
}
