// Package runlog keeps a history of simulation runs in SQLite.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"mazesim/pkg/game/sim"
)

// MemoryPath opens a private in-memory history
const MemoryPath = ":memory:"

const tableName = "runs"

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Summary describes one finished run
type Summary struct {
	ID              uuid.UUID
	Maze            string
	Size            int
	Policy          string
	Decisions       int
	Ticks           int
	Visited         int
	Blocked         int
	ReturnedToStart bool
	CreatedAt       time.Time
}

// NewSummary builds a summary from the statistics of a run
func NewSummary(mazeName string, size int, policyName string, st sim.Stats) Summary {
	return Summary{
		Maze:            mazeName,
		Size:            size,
		Policy:          policyName,
		Decisions:       st.Decisions,
		Ticks:           st.Ticks,
		Visited:         st.Visited,
		Blocked:         st.Blocked,
		ReturnedToStart: st.ReturnedToStart,
	}
}

// Store is a run history backed by a SQLite database
type Store struct {
	db *sql.DB
}

// Open opens or creates the history at path. MemoryPath gives a
// throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening run history: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// createTable creates the runs table if it does not exist.
func (s *Store) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id TEXT PRIMARY KEY,
		maze TEXT NOT NULL,
		size INTEGER NOT NULL,
		policy TEXT NOT NULL,
		decisions INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		visited INTEGER NOT NULL,
		blocked INTEGER NOT NULL,
		returned_to_start INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);`

	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	return nil
}

// Record stores a run. A missing ID or timestamp is filled in; the stored
// summary is returned.
func (s *Store) Record(ctx context.Context, sum Summary) (Summary, error) {
	if sum.ID == uuid.Nil {
		sum.ID = uuid.New()
	}
	if sum.CreatedAt.IsZero() {
		sum.CreatedAt = time.Now()
	}
	sum.CreatedAt = sum.CreatedAt.UTC()

	const insertSQL = `
	INSERT INTO ` + tableName + ` (id, maze, size, policy, decisions, ticks, visited, blocked, returned_to_start, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	_, err := s.db.ExecContext(ctx, insertSQL,
		sum.ID.String(), sum.Maze, sum.Size, sum.Policy,
		sum.Decisions, sum.Ticks, sum.Visited, sum.Blocked,
		sum.ReturnedToStart, sum.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to insert run %s: %w", sum.ID, err)
	}
	return sum, nil
}

// Recent returns up to limit runs, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Summary, error) {
	const selectSQL = `
	SELECT id, maze, size, policy, decisions, ticks, visited, blocked, returned_to_start, created_at
	FROM ` + tableName + `
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?;`

	rows, err := s.db.QueryContext(ctx, selectSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Summary
	for rows.Next() {
		var (
			sum       Summary
			id        string
			createdAt string
		)
		err := rows.Scan(&id, &sum.Maze, &sum.Size, &sum.Policy,
			&sum.Decisions, &sum.Ticks, &sum.Visited, &sum.Blocked,
			&sum.ReturnedToStart, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("run has malformed id %q: %w", id, err)
		}
		if sum.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("run %s has malformed timestamp %q: %w", id, createdAt, err)
		}
		runs = append(runs, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return runs, nil
}

// Count returns the number of recorded runs
func (s *Store) Count(ctx context.Context) (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	if err := s.db.QueryRowContext(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
