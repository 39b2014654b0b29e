package generator

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"mazesim/pkg/engine/world"
	"mazesim/pkg/maze"
)

// BacktrackerGenerator carves corridors with a randomised depth-first walk
// from the start cell, backing up whenever it reaches a dead end. Mazes
// come out with long winding corridors.
type BacktrackerGenerator struct{}

// Name returns the name of this generator
func (g *BacktrackerGenerator) Name() string {
	return "backtracker"
}

// Generate creates a new maze with every interior wall closed, then opens
// walls along the walk.
func (g *BacktrackerGenerator) Generate(size int, name string, rng *rand.Rand) (*maze.Maze, error) {
	m, err := maze.New(size, name)
	if err != nil {
		return nil, err
	}
	for _, id := range m.WallIDs() {
		if err := m.SetWall(id, true); err != nil {
			return nil, err
		}
	}

	visited := mapset.New[world.Position]()
	visited.Put(world.Start)
	stack := []world.Position{world.Start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		var candidates []world.Position
		for _, h := range world.AllHeadings() {
			next := current.Step(h)
			if next.InBounds(size) && !visited.Has(next) {
				candidates = append(candidates, next)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		id, ok := m.WallBetween(current, next)
		if !ok {
			return nil, fmt.Errorf("generator: %s and %s are not neighbours", current, next)
		}
		if err := m.SetWall(id, false); err != nil {
			return nil, err
		}
		visited.Put(next)
		stack = append(stack, next)
	}

	return m, nil
}
