// Package console runs the interactive command loop: it turns typed
// commands into simulation and editor operations and renders the result.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/leonelquinteros/gotext"

	"mazesim/pkg/engine/input"
	"mazesim/pkg/game/mazefile"
	"mazesim/pkg/game/renderer"
	"mazesim/pkg/game/sim"
	"mazesim/pkg/maze"
)

// DefaultTickInterval is the wall-clock time between ticks while running
const DefaultTickInterval = 50 * time.Millisecond

// Console owns the command loop for one simulation
type Console struct {
	sim          *sim.Simulation
	store        *mazefile.Store
	mazeName     string
	logger       *log.Logger
	tickInterval time.Duration
}

// Option configures a Console
type Option func(*Console)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTickInterval sets the time between ticks while the simulation runs
func WithTickInterval(d time.Duration) Option {
	return func(c *Console) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// New creates a console. mazeName is the file name used by save when no
// name is given; store may be nil to disable saving.
func New(s *sim.Simulation, store *mazefile.Store, mazeName string, opts ...Option) *Console {
	c := &Console{
		sim:          s,
		store:        store,
		mazeName:     mazeName,
		logger:       log.New(io.Discard),
		tickInterval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run renders the first frame and handles commands until quit, the end of
// input or cancellation of ctx. While the simulation runs it is ticked
// every tick interval between commands.
func (c *Console) Run(ctx context.Context, lines <-chan input.RawInput, errc <-chan error) error {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	c.redraw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-lines:
			if !ok {
				return <-errc
			}
			if c.Handle(input.MapToIntent(raw)) {
				return nil
			}
		case <-ticker.C:
			if !c.sim.Running() {
				continue
			}
			if err := c.sim.Tick(); err != nil {
				c.fail(err)
				c.redraw()
			}
		}
	}
}

// Handle executes one intent and reports whether the user asked to quit.
func (c *Console) Handle(intent input.Intent) (quit bool) {
	c.logger.Debug("Command", "action", input.ActionName(intent.Action), "args", intent.Args)

	switch intent.Action {
	case input.ActionQuit:
		return true
	case input.ActionRun:
		if c.sim.ToggleRunning() {
			c.sim.AddMessage(gotext.Get("RUN_STARTED"))
		} else {
			c.sim.AddMessage(gotext.Get("RUN_PAUSED"))
		}
	case input.ActionStep:
		c.step(intent)
	case input.ActionTick:
		c.tick(intent)
	case input.ActionReset:
		c.sim.Reset()
		c.sim.AddMessage(gotext.Get("RESET_DONE"))
	case input.ActionToggleVertical:
		c.toggle(intent, maze.Vertical)
	case input.ActionToggleHorizontal:
		c.toggle(intent, maze.Horizontal)
	case input.ActionSave:
		c.save(intent)
	case input.ActionStats:
		PrintStats(c.sim.Stats())
		return false
	case input.ActionHelp:
		c.showHelp()
		return false
	case input.ActionPrint:
	default:
		renderer.ShowMessage(renderer.FormatText("DENIED{%s} %s", gotext.Get("UNKNOWN_COMMAND"), strings.Join(intent.Args, " ")))
		return false
	}

	c.redraw()
	return false
}

// redraw replaces the screen with the current frame
func (c *Console) redraw() {
	renderer.Clear()
	renderer.RenderFrame(c.sim.Frame())
}

func (c *Console) step(intent input.Intent) {
	n, err := intent.OptionalCount(1)
	if err != nil {
		c.fail(err)
		return
	}
	for i := 0; i < n; i++ {
		if err := c.sim.Step(); err != nil {
			c.fail(err)
			return
		}
	}
}

// tick advances n ticks even while paused; the run flag is restored
// afterwards unless a blocked move paused the simulation.
func (c *Console) tick(intent input.Intent) {
	n, err := intent.OptionalCount(1)
	if err != nil {
		c.fail(err)
		return
	}
	wasRunning := c.sim.Running()
	c.sim.SetRunning(true)
	defer func() {
		if !wasRunning {
			c.sim.SetRunning(false)
		}
	}()
	for i := 0; i < n; i++ {
		if err := c.sim.Tick(); err != nil {
			c.fail(err)
			return
		}
	}
}

func (c *Console) toggle(intent input.Intent, o maze.Orientation) {
	args, err := intent.IntArgs(2)
	if err != nil {
		c.fail(err)
		return
	}
	id := maze.WallID{Orientation: o, Row: args[0], Col: args[1]}
	if err := c.sim.ToggleWall(id); err != nil {
		c.fail(err)
		return
	}
	c.sim.AddMessage(fmt.Sprintf(gotext.Get("WALL_TOGGLED"), id))
}

func (c *Console) save(intent input.Intent) {
	if c.store == nil {
		c.fail(errors.New(gotext.Get("SAVE_DISABLED")))
		return
	}
	name := c.mazeName
	if len(intent.Args) > 0 {
		name = intent.Args[0]
	}
	if err := c.store.Save(name, c.sim.Maze()); err != nil {
		c.fail(err)
		return
	}
	if unreachable := c.sim.Maze().Unreachable(); len(unreachable) > 0 {
		c.sim.AddMessage(fmt.Sprintf(gotext.Get("UNREACHABLE_CELLS"), len(unreachable)))
	}
	c.logger.Info("Maze saved", "name", name, "dir", c.store.Dir)
	c.sim.AddMessage(fmt.Sprintf(gotext.Get("MAZE_SAVED"), name))
}

// PrintStats shows a run summary through the current renderer
func PrintStats(st sim.Stats) {
	renderer.ShowMessage(renderer.StyleText(gotext.Get("STATS"), renderer.StyleSubtle))
	renderer.ShowMessage(fmt.Sprintf(gotext.Get("STATS_RUN"), st.Ticks, st.Decisions, st.Blocked))
	renderer.ShowMessage(fmt.Sprintf(gotext.Get("STATS_COVERAGE"), st.Visited, st.Reachable, 100*st.Coverage()))
	if st.ReturnedToStart {
		renderer.ShowMessage(gotext.Get("RETURNED_TO_START"))
	}
}

type helpPrinter interface {
	PrintHelp()
}

func (c *Console) showHelp() {
	if p, ok := renderer.Current.(helpPrinter); ok {
		p.PrintHelp()
		return
	}
	for _, action := range input.Actions() {
		renderer.ShowMessage(input.ActionName(action))
	}
}

// fail reports a command error without stopping the loop
func (c *Console) fail(err error) {
	c.logger.Warn("Command failed", "error", err)
	c.sim.AddMessage(renderer.FormatText("DENIED{%s}", gotext.Get("COMMAND_FAILED")) + " " + err.Error())
}
