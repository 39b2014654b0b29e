package maze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazesim/pkg/engine/world"
)

// sampleMaze builds a 4x4 maze with a handful of walls in both grids.
func sampleMaze(t *testing.T) *Maze {
	t.Helper()
	m, err := New(4, "sample")
	require.NoError(t, err)
	for _, id := range []WallID{VWallID(0, 0), VWallID(3, 2), HWallID(0, 3), HWallID(2, 1), HWallID(1, 0)} {
		require.NoError(t, m.ToggleWall(id))
	}
	return m
}

func TestNew(t *testing.T) {
	t.Run("valid sizes are open", func(t *testing.T) {
		for size := MinSize; size <= MaxSize; size++ {
			m, err := New(size, "open")
			require.NoError(t, err)
			assert.Equal(t, size, m.Size())
			assert.Zero(t, m.WallCount())
			assert.Len(t, m.WallIDs(), 2*size*(size-1))
		}
	})

	t.Run("invalid sizes", func(t *testing.T) {
		for _, size := range []int{-1, 0, 1, 17, 100} {
			m, err := New(size, "bad")
			assert.ErrorIs(t, err, ErrInvalidSize, "size %d", size)
			assert.Nil(t, m)
		}
	})

	t.Run("name is limited to one line of MaxNameLen bytes", func(t *testing.T) {
		m, err := New(2, strings.Repeat("a", 70)+"\nsecond")
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("a", MaxNameLen), m.Name())

		m.SetName("first\r\nsecond")
		assert.Equal(t, "first", m.Name())
	})

	t.Run("truncation keeps valid UTF-8", func(t *testing.T) {
		m, err := New(2, strings.Repeat("a", 63)+"é")
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("a", 63), m.Name())
	})
}

func TestToggleWall(t *testing.T) {
	t.Run("involution for every wall", func(t *testing.T) {
		m := sampleMaze(t)
		orig := m.Clone()
		for _, id := range m.WallIDs() {
			require.NoError(t, m.ToggleWall(id))
			assert.NotEqual(t, orig.Has(id), m.Has(id), "toggle %v", id)
			require.NoError(t, m.ToggleWall(id))
			assert.True(t, m.Equal(orig), "double toggle %v", id)
		}
	})

	t.Run("out of range leaves maze unchanged", func(t *testing.T) {
		m := sampleMaze(t)
		orig := m.Clone()
		bad := []WallID{
			VWallID(-1, 0), VWallID(4, 0), VWallID(0, 3),
			HWallID(3, 0), HWallID(0, 4), HWallID(0, -1),
			{Orientation: Orientation(9)},
		}
		for _, id := range bad {
			assert.ErrorIs(t, m.ToggleWall(id), ErrIndex, "id %v", id)
			assert.ErrorIs(t, m.SetWall(id, true), ErrIndex, "id %v", id)
		}
		assert.True(t, m.Equal(orig))
	})
}

func TestWallBetween(t *testing.T) {
	m, err := New(3, "between")
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b world.Position
		want WallID
	}{
		{"east of start", world.Pos(0, 0), world.Pos(1, 0), VWallID(2, 0)},
		{"west neighbour is symmetric", world.Pos(1, 0), world.Pos(0, 0), VWallID(2, 0)},
		{"north of start", world.Pos(0, 0), world.Pos(0, 1), HWallID(1, 0)},
		{"top row", world.Pos(2, 1), world.Pos(2, 2), HWallID(0, 2)},
		{"top right vertical", world.Pos(1, 2), world.Pos(2, 2), VWallID(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.WallBetween(tt.a, tt.b)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.True(t, m.Valid(got))
		})
	}

	_, ok := m.WallBetween(world.Pos(0, 0), world.Pos(1, 1))
	assert.False(t, ok, "diagonal cells share no wall")
	_, ok = m.WallBetween(world.Pos(2, 0), world.Pos(3, 0))
	assert.False(t, ok, "border is not an interior wall")
}

func TestReachable(t *testing.T) {
	m, err := New(3, "reach")
	require.NoError(t, err)
	assert.Equal(t, 9, m.Reachable(world.Start).Size())
	assert.Empty(t, m.Unreachable())

	// Wall off the top-right cell (2,2).
	for _, pair := range [][2]world.Position{
		{world.Pos(1, 2), world.Pos(2, 2)},
		{world.Pos(2, 1), world.Pos(2, 2)},
	} {
		id, ok := m.WallBetween(pair[0], pair[1])
		require.True(t, ok)
		require.NoError(t, m.SetWall(id, true))
	}

	assert.Equal(t, 8, m.Reachable(world.Start).Size())
	assert.Equal(t, []world.Position{world.Pos(2, 2)}, m.Unreachable())
	assert.Equal(t, 1, m.Reachable(world.Pos(2, 2)).Size())
	assert.Zero(t, m.Reachable(world.Pos(5, 5)).Size())
}

func TestEqualAndClone(t *testing.T) {
	m := sampleMaze(t)
	c := m.Clone()
	assert.True(t, m.Equal(c))

	require.NoError(t, c.ToggleWall(HWallID(0, 0)))
	assert.False(t, m.Equal(c), "clone must not share wall storage")

	c = m.Clone()
	c.SetName("other")
	assert.False(t, m.Equal(c))

	var nilMaze *Maze
	assert.True(t, nilMaze.Equal(nil))
	assert.False(t, m.Equal(nil))
}
