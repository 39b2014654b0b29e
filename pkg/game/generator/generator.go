// Package generator builds random perfect mazes: every cell is reachable
// from the start and there is exactly one path between any two cells.
package generator

import (
	"fmt"
	"math/rand"
	"sort"

	"mazesim/pkg/maze"
)

// MazeGenerator is an interface for maze generation algorithms
type MazeGenerator interface {
	Generate(size int, name string, rng *rand.Rand) (*maze.Maze, error)
	Name() string
}

// Available generators
var (
	Backtracker = &BacktrackerGenerator{}
	Divider     = &DividerGenerator{}
)

// DefaultGenerator is the default maze generator
var DefaultGenerator MazeGenerator = Backtracker

var generators = map[string]MazeGenerator{
	Backtracker.Name(): Backtracker,
	Divider.Name():     Divider,
}

// ByName returns the generator with the given name
func ByName(name string) (MazeGenerator, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q (have %v)", name, Names())
	}
	return g, nil
}

// Names returns the generator names in sorted order
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewRand returns a random source for Generate seeded with seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
