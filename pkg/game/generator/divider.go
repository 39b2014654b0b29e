package generator

import (
	"math/rand"

	"mazesim/pkg/engine/world"
	"mazesim/pkg/maze"
)

// DividerGenerator builds mazes by recursive division, the BSP approach:
// an open region is split by a wall with a single gap and each half is
// divided again until it is one cell wide.
type DividerGenerator struct{}

// region is a rectangle of cells in mouse coordinates
type region struct {
	x, y          int
	width, height int
}

// Name returns the name of this generator
func (g *DividerGenerator) Name() string {
	return "divider"
}

// Generate creates a new open maze and divides it
func (g *DividerGenerator) Generate(size int, name string, rng *rand.Rand) (*maze.Maze, error) {
	m, err := maze.New(size, name)
	if err != nil {
		return nil, err
	}
	if err := g.divide(m, region{width: size, height: size}, rng); err != nil {
		return nil, err
	}
	return m, nil
}

func (g *DividerGenerator) divide(m *maze.Maze, r region, rng *rand.Rand) error {
	if r.width < 2 || r.height < 2 {
		return nil
	}

	// Split across the longer side; square regions pick at random
	splitHorizontal := r.height > r.width
	if r.height == r.width {
		splitHorizontal = rng.Intn(2) == 0
	}

	if splitHorizontal {
		// The wall runs west-east between rows y+at-1 and y+at
		at := 1 + rng.Intn(r.height-1)
		gap := r.x + rng.Intn(r.width)
		for x := r.x; x < r.x+r.width; x++ {
			if x == gap {
				continue
			}
			if err := closeWall(m, world.Pos(x, r.y+at-1), world.Pos(x, r.y+at)); err != nil {
				return err
			}
		}
		if err := g.divide(m, region{x: r.x, y: r.y, width: r.width, height: at}, rng); err != nil {
			return err
		}
		return g.divide(m, region{x: r.x, y: r.y + at, width: r.width, height: r.height - at}, rng)
	}

	// The wall runs south-north between columns x+at-1 and x+at
	at := 1 + rng.Intn(r.width-1)
	gap := r.y + rng.Intn(r.height)
	for y := r.y; y < r.y+r.height; y++ {
		if y == gap {
			continue
		}
		if err := closeWall(m, world.Pos(r.x+at-1, y), world.Pos(r.x+at, y)); err != nil {
			return err
		}
	}
	if err := g.divide(m, region{x: r.x, y: r.y, width: at, height: r.height}, rng); err != nil {
		return err
	}
	return g.divide(m, region{x: r.x + at, y: r.y, width: r.width - at, height: r.height}, rng)
}

func closeWall(m *maze.Maze, a, b world.Position) error {
	id, ok := m.WallBetween(a, b)
	if !ok {
		return nil
	}
	return m.SetWall(id, true)
}
