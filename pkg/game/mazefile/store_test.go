package mazefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazesim/pkg/maze"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "mazes"))
}

func TestPath(t *testing.T) {
	s := NewStore("dir")
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", filepath.Join("dir", "default.txt"), false},
		{"classic", filepath.Join("dir", "classic.txt"), false},
		{"classic.txt", filepath.Join("dir", "classic.txt"), false},
		{"../escape", "", true},
		{"sub/maze", "", true},
		{"..", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Path(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	s := newStore(t)
	m, err := maze.New(4, "saved")
	require.NoError(t, err)
	require.NoError(t, m.ToggleWall(maze.VWallID(1, 2)))
	require.NoError(t, m.ToggleWall(maze.HWallID(0, 3)))

	require.NoError(t, s.Save("saved", m))

	loaded, err := s.Load("saved.txt")
	require.NoError(t, err)
	assert.True(t, m.Equal(loaded))

	data, err := os.ReadFile(filepath.Join(s.Dir, "saved.txt"))
	require.NoError(t, err)
	assert.Equal(t, maze.Serialize(m), string(data))

	// Overwriting replaces the content and leaves no temporary files.
	require.NoError(t, m.ToggleWall(maze.VWallID(1, 2)))
	require.NoError(t, s.Save("saved", m))
	loaded, err = s.Load("saved")
	require.NoError(t, err)
	assert.True(t, m.Equal(loaded))

	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoad_Errors(t *testing.T) {
	s := newStore(t)
	_, err := s.Load("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.MkdirAll(s.Dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "broken.txt"), []byte("broken\nabc\n"), 0o644))
	_, err = s.Load("broken")
	assert.ErrorIs(t, err, maze.ErrParse)
}

func TestLoadOrCreate(t *testing.T) {
	s := newStore(t)

	m, created, err := s.LoadOrCreate("", 5, "fresh")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 5, m.Size())
	assert.Equal(t, "fresh", m.Name())
	assert.Zero(t, m.WallCount())

	require.NoError(t, s.Save("", m))
	again, created, err := s.LoadOrCreate("", 3, "ignored")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 5, again.Size())

	_, _, err = s.LoadOrCreate("other", 20, "too big")
	assert.ErrorIs(t, err, maze.ErrInvalidSize)
}

func TestList(t *testing.T) {
	s := newStore(t)
	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	m, err := maze.New(2, "x")
	require.NoError(t, err)
	for _, name := range []string{"b", "a", "default"} {
		require.NoError(t, s.Save(name, m))
	}
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "notes.md"), []byte("hi"), 0o644))

	names, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "default.txt"}, names)
}
