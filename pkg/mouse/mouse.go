// Package mouse holds the mouse's logical pose and the motion state machine
// that turns a discrete action into a sequence of continuous updates.
//
// The logical cell and heading change the moment an action begins. The
// continuous offset then shrinks to zero over a number of ticks, so a
// renderer can animate the move while the rest of the simulation already
// reasons about the destination cell.
package mouse

import (
	"github.com/ungerik/go3d/vec3"

	"mazesim/pkg/engine/world"
	"mazesim/pkg/maze"
)

// Default motion parameters
const (
	DefaultCellLength = 1.0
	DefaultMoveStep   = 0.25
	DefaultTurnStep   = 22.5
)

// Config sets the geometry of a move. CellLength and MoveStep share a unit;
// TurnStep is in degrees per tick.
type Config struct {
	CellLength float64
	MoveStep   float64
	TurnStep   float64
}

// DefaultConfig returns a configuration where a move and a quarter turn
// both take four ticks.
func DefaultConfig() Config {
	return Config{
		CellLength: DefaultCellLength,
		MoveStep:   DefaultMoveStep,
		TurnStep:   DefaultTurnStep,
	}
}

func (c Config) withDefaults() Config {
	if c.CellLength <= 0 {
		c.CellLength = DefaultCellLength
	}
	if c.MoveStep <= 0 {
		c.MoveStep = DefaultMoveStep
	}
	if c.TurnStep <= 0 {
		c.TurnStep = DefaultTurnStep
	}
	return c
}

// State is the motion state
type State int

// Motion states
const (
	StateIdle State = iota
	StateMoving
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateMoving:
		return "MOVING"
	default:
		return "UNKNOWN"
	}
}

// Mouse is the simulated robot. It reads the maze but never changes it.
type Mouse struct {
	maze *maze.Maze
	cfg  Config

	cell    world.Position
	heading world.Heading
	action  world.Action

	// goal is the full displacement of the current motion (dx, dy, dAngle);
	// progress is how much of it has been covered.
	goal     vec3.T
	progress vec3.T
	state    State
}

// New places a mouse at the start cell facing North. Non-positive config
// values are replaced by their defaults.
func New(m *maze.Maze, cfg Config) *Mouse {
	return &Mouse{
		maze:    m,
		cfg:     cfg.withDefaults(),
		cell:    world.Start,
		heading: world.North,
		action:  world.Idle,
	}
}

// Reset returns the mouse to the start cell facing North and cancels any
// motion.
func (m *Mouse) Reset() {
	m.cell = world.Start
	m.heading = world.North
	m.action = world.Idle
	m.goal = vec3.Zero
	m.progress = vec3.Zero
	m.state = StateIdle
}

// Maze returns the maze the mouse moves in
func (m *Mouse) Maze() *maze.Maze {
	return m.maze
}

// Config returns the effective motion configuration
func (m *Mouse) Config() Config {
	return m.cfg
}

// Cell returns the logical cell
func (m *Mouse) Cell() world.Position {
	return m.cell
}

// Heading returns the logical heading
func (m *Mouse) Heading() world.Heading {
	return m.heading
}

// Action returns the most recently begun action
func (m *Mouse) Action() world.Action {
	return m.action
}

// State returns the motion state
func (m *Mouse) State() State {
	return m.state
}
