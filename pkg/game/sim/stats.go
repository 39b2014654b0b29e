package sim

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"mazesim/pkg/engine/world"
	"mazesim/pkg/maze"
	"mazesim/pkg/mouse"
	"mazesim/pkg/sensor"
)

// Stats summarises a run
type Stats struct {
	Ticks     int
	Decisions int
	Blocked   int
	Actions   map[world.Action]int
	// Visited is the number of distinct cells the mouse has entered,
	// including the start cell.
	Visited int
	// Reachable is the number of cells reachable from the start cell.
	Reachable int
	// ReturnedToStart is set when the mouse has decided at least once and
	// currently rests on the start cell.
	ReturnedToStart bool
}

// Coverage returns the fraction of reachable cells visited
func (st Stats) Coverage() float64 {
	if st.Reachable == 0 {
		return 0
	}
	return float64(st.Visited) / float64(st.Reachable)
}

// Stats returns the statistics of the current run
func (s *Simulation) Stats() Stats {
	actions := make(map[world.Action]int, len(s.actions))
	for a, n := range s.actions {
		actions[a] = n
	}
	return Stats{
		Ticks:           s.ticks,
		Decisions:       s.decisions,
		Blocked:         s.blocked,
		Actions:         actions,
		Visited:         s.visited.Size(),
		Reachable:       s.maze.Reachable(world.Start).Size(),
		ReturnedToStart: s.decisions > 0 && s.mouse.MotionComplete() && s.mouse.Cell() == world.Start,
	}
}

// Frame is a read-only snapshot for renderers
type Frame struct {
	Maze     *maze.Maze
	Cell     world.Position
	Heading  world.Heading
	Action   world.Action
	Pose     mouse.Pose
	Moving   bool
	Running  bool
	Policy   string
	Readings sensor.Readings
	Visited  []world.Position
	Messages []string
}

// HasVisited reports whether the frame's visited list contains p
func (f Frame) HasVisited(p world.Position) bool {
	for _, v := range f.Visited {
		if v == p {
			return true
		}
	}
	return false
}

// Frame captures the current state for rendering
func (s *Simulation) Frame() Frame {
	cell, heading := s.mouse.Cell(), s.mouse.Heading()
	return Frame{
		Maze:     s.maze,
		Cell:     cell,
		Heading:  heading,
		Action:   s.mouse.Action(),
		Pose:     s.mouse.Pose(),
		Moving:   !s.mouse.MotionComplete(),
		Running:  s.running,
		Policy:   s.policy.Name(),
		Readings: sensor.Read(s.maze, cell, heading),
		Visited:  sortedPositions(s.visited),
		Messages: s.Messages(),
	}
}

// sortedPositions lists a set of cells in row-major order from (0,0)
func sortedPositions(set mapset.Set[world.Position]) []world.Position {
	out := make([]world.Position, 0, set.Size())
	set.Each(func(p world.Position) {
		out = append(out, p)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
