package console

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazesim/pkg/engine/input"
	"mazesim/pkg/engine/world"
	"mazesim/pkg/game/mazefile"
	"mazesim/pkg/game/renderer"
	"mazesim/pkg/game/renderer/tui"
	"mazesim/pkg/game/sim"
	"mazesim/pkg/maze"
	"mazesim/pkg/policy"
)

func TestMain(m *testing.M) {
	gotext.Configure("../../../locales", "en_GB", "default")
	os.Exit(m.Run())
}

type fixture struct {
	console *Console
	sim     *sim.Simulation
	store   *mazefile.Store
	out     *bytes.Buffer
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	m, err := maze.New(2, "test")
	require.NoError(t, err)

	var buf bytes.Buffer
	r := tui.New(tui.WithOutput(&buf), tui.WithoutColor())
	r.Init()
	renderer.SetRenderer(r)
	t.Cleanup(func() { renderer.SetRenderer(nil) })

	s := sim.New(m, policy.LeftWallFollower)
	store := mazefile.NewStore(t.TempDir())
	return fixture{
		console: New(s, store, "test", opts...),
		sim:     s,
		store:   store,
		out:     &buf,
	}
}

func (f fixture) do(t *testing.T, line string) bool {
	t.Helper()
	return f.console.Handle(input.MapToIntent(input.RawInput{Device: input.DeviceScript, Code: line}))
}

func (f fixture) lastMessage(t *testing.T) string {
	t.Helper()
	msgs := f.sim.Messages()
	require.NotEmpty(t, msgs)
	return color.ClearCode(msgs[len(msgs)-1])
}

func TestHandle_Step(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.do(t, "s"))
	assert.Equal(t, world.Pos(0, 1), f.sim.Mouse().Cell())
	assert.Contains(t, f.out.String(), "▲")

	assert.False(t, f.do(t, "step 3"))
	assert.Equal(t, 4, f.sim.Stats().Decisions)
}

func TestHandle_StepBadCount(t *testing.T) {
	f := newFixture(t)
	f.do(t, "s 0")
	assert.Equal(t, 0, f.sim.Stats().Decisions)
	assert.Contains(t, f.lastMessage(t), "count must be positive")
}

func TestHandle_TickWhilePaused(t *testing.T) {
	f := newFixture(t)
	f.do(t, "t 5")
	assert.Equal(t, 5, f.sim.Stats().Ticks)
	assert.False(t, f.sim.Running())
}

func TestHandle_RunToggle(t *testing.T) {
	f := newFixture(t)
	f.do(t, "r")
	assert.True(t, f.sim.Running())
	assert.Equal(t, "Run started", f.lastMessage(t))

	f.do(t, "pause")
	assert.False(t, f.sim.Running())
	assert.Equal(t, "Run paused", f.lastMessage(t))
}

func TestHandle_ToggleWall(t *testing.T) {
	f := newFixture(t)

	f.do(t, "v 0 0")
	assert.True(t, f.sim.Maze().Has(maze.VWallID(0, 0)))
	assert.Contains(t, f.lastMessage(t), "V[0,0]")

	f.do(t, "h 0 1")
	assert.True(t, f.sim.Maze().Has(maze.HWallID(0, 1)))

	f.do(t, "v 0 0")
	assert.False(t, f.sim.Maze().Has(maze.VWallID(0, 0)))
}

func TestHandle_ToggleWallRejected(t *testing.T) {
	f := newFixture(t)

	f.do(t, "v 5 5")
	assert.Contains(t, f.lastMessage(t), "Command failed")
	assert.Equal(t, 0, f.sim.Maze().WallCount())

	f.do(t, "v 1")
	assert.Contains(t, f.lastMessage(t), "needs 2 numbers")

	f.sim.SetRunning(true)
	f.do(t, "v 0 0")
	assert.False(t, f.sim.Maze().Has(maze.VWallID(0, 0)))
	assert.Contains(t, f.lastMessage(t), "running")
}

func TestHandle_Save(t *testing.T) {
	f := newFixture(t)
	f.do(t, "v 0 0")

	f.do(t, "w")
	assert.Contains(t, f.lastMessage(t), "test")
	loaded, err := f.store.Load("test")
	require.NoError(t, err)
	assert.True(t, loaded.Equal(f.sim.Maze()))

	f.do(t, "save other")
	_, err = os.Stat(filepath.Join(f.store.Dir, "other.txt"))
	assert.NoError(t, err)
}

func TestHandle_SaveWarnsUnreachable(t *testing.T) {
	f := newFixture(t)
	f.do(t, "v 0 0")
	f.do(t, "h 0 1")

	f.do(t, "w")
	msgs := f.sim.Messages()
	require.GreaterOrEqual(t, len(msgs), 2)
	assert.Contains(t, msgs[len(msgs)-2], "1 cell")
}

func TestHandle_SaveDisabled(t *testing.T) {
	f := newFixture(t)
	f.console.store = nil
	f.do(t, "w")
	assert.Contains(t, f.lastMessage(t), "Saving is disabled")
}

func TestHandle_Reset(t *testing.T) {
	f := newFixture(t)
	f.do(t, "s 2")
	f.do(t, "reset")
	assert.Equal(t, world.Start, f.sim.Mouse().Cell())
	assert.Equal(t, 0, f.sim.Stats().Decisions)
}

func TestHandle_MetaCommands(t *testing.T) {
	f := newFixture(t)

	f.do(t, "stats")
	assert.Contains(t, f.out.String(), "Ticks 0")

	f.out.Reset()
	f.do(t, "help")
	assert.Contains(t, f.out.String(), "Run or pause")

	f.out.Reset()
	f.do(t, "jump high")
	assert.Contains(t, f.out.String(), "Unknown command")
	assert.Contains(t, f.out.String(), "jump high")

	assert.True(t, f.do(t, "quit"))
}

// recordingRenderer logs the renderer calls the console makes.
type recordingRenderer struct {
	calls []string
}

func (r *recordingRenderer) Init()                   {}
func (r *recordingRenderer) Clear()                  { r.calls = append(r.calls, "clear") }
func (r *recordingRenderer) RenderFrame(_ sim.Frame) { r.calls = append(r.calls, "frame") }
func (r *recordingRenderer) StyleText(text string, style renderer.TextStyle) string {
	r.calls = append(r.calls, "style")
	return text
}
func (r *recordingRenderer) FormatText(msg string, args ...any) string {
	return fmt.Sprintf(msg, args...)
}
func (r *recordingRenderer) ShowMessage(msg string)            { r.calls = append(r.calls, "show") }
func (r *recordingRenderer) GetViewportSize() (rows, cols int) { return 24, 80 }

func TestHandle_ClearsBeforeEachFrame(t *testing.T) {
	f := newFixture(t)
	rec := &recordingRenderer{}
	renderer.SetRenderer(rec)

	f.do(t, "s")
	f.do(t, "p")
	assert.Equal(t, []string{"clear", "frame", "clear", "frame"}, rec.calls)

	rec.calls = nil
	f.do(t, "stats")
	require.NotEmpty(t, rec.calls)
	assert.Equal(t, []string{"style", "show"}, rec.calls[:2])
}

func TestRun_Script(t *testing.T) {
	f := newFixture(t)
	lines := make(chan input.RawInput, 4)
	errc := make(chan error, 1)
	for _, l := range []string{"s", "s", "q", "s"} {
		lines <- input.RawInput{Device: input.DeviceScript, Code: l}
	}

	require.NoError(t, f.console.Run(context.Background(), lines, errc))
	assert.Equal(t, 2, f.sim.Stats().Decisions)
}

func TestRun_EndOfInput(t *testing.T) {
	f := newFixture(t)
	lines := make(chan input.RawInput)
	errc := make(chan error, 1)
	close(lines)
	errc <- nil

	assert.NoError(t, f.console.Run(context.Background(), lines, errc))
}

func TestRun_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.console.Run(ctx, make(chan input.RawInput), make(chan error))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_TicksWhileRunning(t *testing.T) {
	f := newFixture(t, WithTickInterval(time.Millisecond))
	lines := make(chan input.RawInput)
	errc := make(chan error, 1)

	done := make(chan error, 1)
	go func() {
		done <- f.console.Run(context.Background(), lines, errc)
	}()

	lines <- input.RawInput{Code: "r"}
	time.Sleep(50 * time.Millisecond)
	lines <- input.RawInput{Code: "q"}
	require.NoError(t, <-done)

	assert.Greater(t, f.sim.Stats().Ticks, 0)
}
