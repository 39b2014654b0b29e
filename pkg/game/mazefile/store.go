// Package mazefile stores mazes as text files in a directory.
package mazefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mazesim/pkg/maze"
)

// Extension is the file extension of maze files
const Extension = ".txt"

// DefaultName is the file used when no name is given
const DefaultName = "default" + Extension

// ErrInvalidName is returned for names that are not plain file names
var ErrInvalidName = errors.New("mazefile: invalid maze name")

// Store reads and writes maze files in Dir
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the file path for name. An empty name selects DefaultName
// and a missing extension is added.
func (s *Store) Path(name string) (string, error) {
	if name == "" {
		name = DefaultName
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if filepath.Ext(name) == "" {
		name += Extension
	}
	return filepath.Join(s.Dir, name), nil
}

// Load reads the named maze
func (s *Store) Load(name string) (*maze.Maze, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := maze.Read(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return m, nil
}

// Save writes m under name. The file is replaced atomically so a failed
// save never leaves a truncated maze behind.
func (s *Store) Save(name string, m *maze.Maze) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("creating maze directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, ".maze-*")
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := m.Write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// LoadOrCreate loads the named maze. If the file does not exist an open
// maze of the given size and title is returned instead and created is set;
// nothing is written until Save.
func (s *Store) LoadOrCreate(name string, size int, title string) (m *maze.Maze, created bool, err error) {
	m, err = s.Load(name)
	if err == nil {
		return m, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, err
	}
	m, err = maze.New(size, title)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// List returns the names of the maze files in Dir in sorted order. A
// missing directory holds no mazes.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if filepath.Ext(entry.Name()) == Extension {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
