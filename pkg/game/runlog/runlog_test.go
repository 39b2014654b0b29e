package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazesim/pkg/engine/world"
	"mazesim/pkg/game/sim"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewSummary(t *testing.T) {
	st := sim.Stats{
		Ticks:           40,
		Decisions:       8,
		Blocked:         0,
		Actions:         map[world.Action]int{world.Forward: 4, world.Right: 4},
		Visited:         4,
		Reachable:       4,
		ReturnedToStart: true,
	}
	sum := NewSummary("test", 2, "left-wall-follower", st)
	assert.Equal(t, Summary{
		Maze:            "test",
		Size:            2,
		Policy:          "left-wall-follower",
		Decisions:       8,
		Ticks:           40,
		Visited:         4,
		ReturnedToStart: true,
	}, sum)
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, MemoryPath)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		sum, err := s.Record(ctx, Summary{
			Maze:      "classic",
			Size:      16,
			Policy:    "obstacle-avoider",
			Decisions: 10 * (i + 1),
			Ticks:     50 * (i + 1),
			Visited:   i + 1,
			Blocked:   i % 2,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, sum.ID)
		ids = append(ids, sum.ID)
	}

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Equal(t, 30, runs[0].Decisions)
	assert.Equal(t, 150, runs[0].Ticks)
	assert.Equal(t, 0, runs[0].Blocked)
	assert.Equal(t, 1, runs[1].Blocked)
	assert.True(t, base.Add(2*time.Minute).Equal(runs[0].CreatedAt))
}

func TestRecord_FillsDefaults(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, MemoryPath)

	id := uuid.New()
	before := time.Now()
	sum, err := s.Record(ctx, Summary{ID: id, Maze: "m", Policy: "p", ReturnedToStart: true})
	require.NoError(t, err)
	assert.Equal(t, id, sum.ID)
	assert.WithinDuration(t, before, sum.CreatedAt, time.Minute)

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].ReturnedToStart)
	assert.True(t, sum.CreatedAt.Equal(runs[0].CreatedAt))

	_, err = s.Record(ctx, Summary{ID: id, Maze: "dup", Policy: "p"})
	assert.Error(t, err, "ids are unique")
}

func TestOpen_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(ctx, Summary{Maze: "m", Policy: "p"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened := openStore(t, path)
	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
