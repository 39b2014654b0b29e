// Package sim drives a mouse through a maze: each tick it either advances the
// running motion or reads the sensors, asks the policy for the next action
// and begins it.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"mazesim/pkg/engine/world"
	"mazesim/pkg/maze"
	"mazesim/pkg/mouse"
	"mazesim/pkg/policy"
	"mazesim/pkg/sensor"
)

// MaxMessages is the number of messages kept in the log
const MaxMessages = 5

// dynamicGet looks up translation keys chosen at runtime, such as heading
// names. Calling it through a variable keeps vet's format string check off
// keys that are not format strings.
var dynamicGet = gotext.Get

// DefaultMaxStepTicks bounds the ticks Step spends waiting for a motion.
const DefaultMaxStepTicks = 10000

var (
	// ErrRunning is returned when the maze is edited while the simulation runs.
	ErrRunning = errors.New("sim: simulation is running")
	// ErrStalled is returned when a motion does not complete within the tick bound.
	ErrStalled = errors.New("sim: motion did not complete")
)

// Option configures a Simulation
type Option func(*Simulation)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMotionConfig sets the mouse's motion parameters
func WithMotionConfig(c mouse.Config) Option {
	return func(s *Simulation) {
		s.motion = c
	}
}

// WithMaxStepTicks bounds the ticks a single Step may take
func WithMaxStepTicks(n int) Option {
	return func(s *Simulation) {
		if n > 0 {
			s.maxStepTicks = n
		}
	}
}

// Simulation owns the mouse, the policy memory and the run flag.
// It is not safe for concurrent use.
type Simulation struct {
	maze   *maze.Maze
	policy policy.Policy
	mouse  *mouse.Mouse
	memory policy.Memory

	running  bool
	messages []string

	logger       *log.Logger
	motion       mouse.Config
	maxStepTicks int

	ticks     int
	decisions int
	blocked   int
	actions   map[world.Action]int
	visited   mapset.Set[world.Position]
}

// New creates a paused simulation with the mouse at the start cell facing
// North and empty policy memory. A nil policy selects policy.Default.
func New(m *maze.Maze, p policy.Policy, opts ...Option) *Simulation {
	if p == nil {
		p = policy.Default
	}
	s := &Simulation{
		maze:         m,
		policy:       p,
		logger:       log.New(io.Discard),
		motion:       mouse.DefaultConfig(),
		maxStepTicks: DefaultMaxStepTicks,
		messages:     make([]string, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mouse = mouse.New(m, s.motion)
	s.clearStats()
	return s
}

func (s *Simulation) clearStats() {
	s.ticks = 0
	s.decisions = 0
	s.blocked = 0
	s.actions = make(map[world.Action]int)
	s.visited = mapset.New[world.Position]()
	s.visited.Put(s.mouse.Cell())
}

// Maze returns the simulated maze
func (s *Simulation) Maze() *maze.Maze {
	return s.maze
}

// Mouse returns the simulated mouse
func (s *Simulation) Mouse() *mouse.Mouse {
	return s.mouse
}

// Policy returns the navigation policy
func (s *Simulation) Policy() policy.Policy {
	return s.policy
}

// Memory returns the current policy memory
func (s *Simulation) Memory() policy.Memory {
	return s.memory
}

// Running reports whether ticks advance the simulation
func (s *Simulation) Running() bool {
	return s.running
}

// SetRunning sets the run flag
func (s *Simulation) SetRunning(running bool) {
	if s.running == running {
		return
	}
	s.running = running
	s.logger.Debug("Run flag changed", "running", running)
}

// ToggleRunning flips the run flag and returns the new value
func (s *Simulation) ToggleRunning() bool {
	s.SetRunning(!s.running)
	return s.running
}

// AddMessage appends a message to the log, keeping the last MaxMessages
func (s *Simulation) AddMessage(msg string) {
	s.messages = append(s.messages, msg)
	if len(s.messages) > MaxMessages {
		s.messages = s.messages[len(s.messages)-MaxMessages:]
	}
}

// Messages returns a copy of the message log, oldest first
func (s *Simulation) Messages() []string {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

// Tick advances the simulation by one step. It does nothing while paused.
//
// If no motion is running the policy decides the next action. A forward
// move into a wall pauses the simulation and returns an error wrapping
// mouse.ErrBlockedMove; the policy memory is only kept when the action
// begins successfully.
func (s *Simulation) Tick() error {
	if !s.running {
		return nil
	}
	return s.advance()
}

// Step makes exactly one decision and ticks until its motion completes,
// regardless of the run flag. A motion already in progress is finished
// first.
func (s *Simulation) Step() error {
	if err := s.finishMotion(); err != nil {
		return err
	}
	s.ticks++
	if err := s.decide(); err != nil {
		return err
	}
	return s.finishMotion()
}

func (s *Simulation) finishMotion() error {
	for i := 0; !s.mouse.MotionComplete(); i++ {
		if i >= s.maxStepTicks {
			return fmt.Errorf("%w after %d ticks", ErrStalled, i)
		}
		s.ticks++
		s.mouse.Tick()
	}
	return nil
}

func (s *Simulation) advance() error {
	s.ticks++
	if !s.mouse.MotionComplete() {
		s.mouse.Tick()
		return nil
	}
	return s.decide()
}

type errorReporter interface {
	LastError() error
}

func (s *Simulation) decide() error {
	cell, heading := s.mouse.Cell(), s.mouse.Heading()
	readings := sensor.Read(s.maze, cell, heading)
	action, memory := s.policy.Decide(readings, s.memory)

	if reporter, ok := s.policy.(errorReporter); ok {
		if err := reporter.LastError(); err != nil {
			s.logger.Warn("Policy failed", "policy", s.policy.Name(), "error", err)
			s.AddMessage(fmt.Sprintf(gotext.Get("POLICY_FAILED"), s.policy.Name()))
		}
	}

	if err := s.mouse.Begin(action); err != nil {
		if errors.Is(err, mouse.ErrBlockedMove) {
			s.blocked++
			s.SetRunning(false)
			s.logger.Warn("Move blocked by wall, pausing", "cell", cell, "heading", heading, "policy", s.policy.Name())
			s.AddMessage(fmt.Sprintf(gotext.Get("MOVE_BLOCKED"), cell, dynamicGet(heading.String())))
		}
		return fmt.Errorf("deciding at %s: %w", cell, err)
	}

	s.memory = memory
	s.decisions++
	s.actions[action]++
	s.visited.Put(s.mouse.Cell())
	s.logger.Debug("Decision",
		"action", action,
		"cell", cell,
		"heading", heading,
		"left", readings.Left,
		"front", readings.Front,
		"right", readings.Right,
	)
	return nil
}

// Limits bounds a headless run. Zero values mean no bound.
type Limits struct {
	MaxTicks     int
	MaxDecisions int
}

// Run sets the run flag and ticks until a limit is reached, the simulation
// pauses or ctx is cancelled. It stops at a decision limit only once the
// last motion has completed.
func (s *Simulation) Run(ctx context.Context, limits Limits) error {
	if limits.MaxTicks <= 0 && limits.MaxDecisions <= 0 {
		return errors.New("sim: run needs a tick or decision limit")
	}

	s.SetRunning(true)
	defer s.SetRunning(false)

	for ticks := 0; ; ticks++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if limits.MaxTicks > 0 && ticks >= limits.MaxTicks {
			return nil
		}
		if limits.MaxDecisions > 0 && s.decisions >= limits.MaxDecisions && s.mouse.MotionComplete() {
			return nil
		}
		if err := s.Tick(); err != nil {
			return err
		}
		if !s.running {
			return nil
		}
	}
}

// ToggleWall flips an interior wall. The maze cannot change while the
// simulation is running.
func (s *Simulation) ToggleWall(id maze.WallID) error {
	if s.running {
		return ErrRunning
	}
	if err := s.maze.ToggleWall(id); err != nil {
		return err
	}
	s.logger.Info("Wall toggled", "wall", id, "present", s.maze.Has(id))
	return nil
}

// Reset puts the mouse back on the start cell, clears memory, statistics
// and messages, and pauses.
func (s *Simulation) Reset() {
	s.SetRunning(false)
	s.mouse.Reset()
	s.memory = policy.Memory{}
	s.messages = make([]string, 0)
	s.clearStats()
	s.logger.Info("Simulation reset")
}
