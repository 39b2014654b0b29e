// Package generator tests maze generation: connectivity, the perfect-maze
// wall count, determinism per seed and generator lookup.
package generator

import (
	"testing"

	"mazesim/pkg/engine/world"
	"mazesim/pkg/maze"
)

// perfectWallCount is the number of interior walls left in a size×size
// maze whose open passages form a spanning tree.
func perfectWallCount(size int) int {
	interior := 2 * size * (size - 1)
	passages := size*size - 1
	return interior - passages
}

func TestGenerate_PerfectMazes(t *testing.T) {
	for _, g := range []MazeGenerator{Backtracker, Divider} {
		for _, size := range []int{maze.MinSize, 5, 8, maze.MaxSize} {
			for seed := int64(1); seed <= 3; seed++ {
				m, err := g.Generate(size, "gen", NewRand(seed))
				if err != nil {
					t.Fatalf("%s size %d seed %d: %v", g.Name(), size, seed, err)
				}
				if got := m.Size(); got != size {
					t.Errorf("%s: size = %d, want %d", g.Name(), got, size)
				}
				if unreachable := m.Unreachable(); len(unreachable) != 0 {
					t.Errorf("%s size %d seed %d: unreachable cells %v", g.Name(), size, seed, unreachable)
				}
				if got, want := m.WallCount(), perfectWallCount(size); got != want {
					t.Errorf("%s size %d seed %d: %d walls, want %d", g.Name(), size, seed, got, want)
				}
			}
		}
	}
}

func TestGenerate_SameSeedSameMaze(t *testing.T) {
	for _, g := range []MazeGenerator{Backtracker, Divider} {
		a, err := g.Generate(8, "a", NewRand(42))
		if err != nil {
			t.Fatal(err)
		}
		b, err := g.Generate(8, "a", NewRand(42))
		if err != nil {
			t.Fatal(err)
		}
		if !a.Equal(b) {
			t.Errorf("%s: same seed produced different mazes:\n%s\n%s", g.Name(), maze.Serialize(a), maze.Serialize(b))
		}
	}
}

func TestGenerate_StartHasExit(t *testing.T) {
	m, err := DefaultGenerator.Generate(4, "exit", NewRand(7))
	if err != nil {
		t.Fatal(err)
	}
	if !m.Open(world.Start, world.North) && !m.Open(world.Start, world.East) {
		t.Error("start cell is walled in")
	}
}

func TestGenerate_InvalidSize(t *testing.T) {
	for _, g := range []MazeGenerator{Backtracker, Divider} {
		if _, err := g.Generate(1, "tiny", NewRand(1)); err == nil {
			t.Errorf("%s: expected error for size 1", g.Name())
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		g, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if g.Name() != name {
			t.Errorf("ByName(%q).Name() = %q", name, g.Name())
		}
	}
	if _, err := ByName("prim"); err == nil {
		t.Error("expected error for unknown generator")
	}
	if got := Names(); len(got) != 2 || got[0] != "backtracker" || got[1] != "divider" {
		t.Errorf("Names() = %v", got)
	}
}
