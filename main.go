package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/leonelquinteros/gotext"

	"mazesim/pkg/engine/input"
	"mazesim/pkg/engine/terminal"
	"mazesim/pkg/game/config"
	"mazesim/pkg/game/console"
	"mazesim/pkg/game/generator"
	"mazesim/pkg/game/mazefile"
	"mazesim/pkg/game/renderer"
	"mazesim/pkg/game/renderer/tui"
	"mazesim/pkg/game/runlog"
	"mazesim/pkg/game/sim"
	"mazesim/pkg/maze"
	"mazesim/pkg/mouse"
	"mazesim/pkg/policy"
)

// options holds the flags that have no config equivalent
type options struct {
	edit     bool
	headless bool
	list     bool
	title    string
	generate string
	seed     int64
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var opts options
	flag.StringVar(&cfg.Maze, "maze", cfg.Maze, "maze file inside the maze directory (default "+mazefile.DefaultName+")")
	flag.StringVar(&cfg.MazeDir, "dir", cfg.MazeDir, "directory holding maze files")
	flag.StringVar(&cfg.Policy, "policy", cfg.Policy, "built-in policy: "+strings.Join(policy.Names(), ", "))
	flag.StringVar(&cfg.Script, "script", cfg.Script, "Lua policy file; overrides -policy")
	flag.IntVar(&cfg.MaxTicks, "ticks", cfg.MaxTicks, "headless tick limit, 0 for none")
	flag.IntVar(&cfg.MaxDecisions, "decisions", cfg.MaxDecisions, "headless decision limit, 0 for none")
	flag.IntVar(&cfg.Size, "size", cfg.Size, fmt.Sprintf("size of a newly created maze (%d-%d)", maze.MinSize, maze.MaxSize))
	flag.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "SQLite file recording headless runs")
	flag.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colours")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&opts.title, "name", "", "title of a newly created maze")
	flag.BoolVar(&opts.edit, "edit", false, "open the console even when input is not a terminal")
	flag.BoolVar(&opts.headless, "headless", false, "run to the limits and print a summary")
	flag.BoolVar(&opts.list, "list", false, "list the mazes in the maze directory")
	flag.StringVar(&opts.generate, "generate", "", "replace the maze with a random one: "+strings.Join(generator.Names(), ", "))
	flag.Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "random seed for -generate")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		Prefix:          "mazesim",
	})

	if err := run(cfg, opts, logger); err != nil {
		logger.Fatal("Simulator failed", "error", err)
	}
}

func run(cfg config.Config, opts options, logger *log.Logger) error {
	gotext.Configure(cfg.LocaleDir, cfg.Locale, "default")
	initRenderer(cfg)

	store := mazefile.NewStore(cfg.MazeDir)
	if opts.list {
		return listMazes(store)
	}

	p, closePolicy, err := selectPolicy(cfg)
	if err != nil {
		return err
	}
	defer closePolicy()

	name := cfg.Maze
	if name == "" {
		name = mazefile.DefaultName
	}
	title := opts.title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(name), mazefile.Extension)
	}
	var m *maze.Maze
	if opts.generate != "" {
		if m, err = generateMaze(store, name, title, cfg.Size, opts, logger); err != nil {
			return err
		}
	} else {
		var created bool
		if m, created, err = store.LoadOrCreate(name, cfg.Size, title); err != nil {
			return err
		}
		if created {
			logger.Info("Created maze", "name", name, "size", m.Size())
		}
	}
	if unreachable := m.Unreachable(); len(unreachable) > 0 {
		logger.Warn("Maze has unreachable cells", "count", len(unreachable))
	}

	s := sim.New(m, p, sim.WithLogger(logger), sim.WithMotionConfig(cfg.Motion()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := opts.edit || (!opts.headless && terminal.IsTerminal(os.Stdin))
	if interactive {
		return runConsole(ctx, s, store, name, logger)
	}
	return runHeadless(ctx, cfg, s, name, logger)
}

func initRenderer(cfg config.Config) {
	var opts []tui.Option
	if cfg.NoColor || !terminal.IsTerminal(os.Stdout) {
		opts = append(opts, tui.WithoutColor())
	}
	renderer.SetRenderer(tui.New(opts...))
	renderer.Init()
}

// selectPolicy returns the configured policy and a function releasing it
func selectPolicy(cfg config.Config) (policy.Policy, func(), error) {
	if cfg.Script == "" {
		p, err := policy.ByName(cfg.Policy)
		return p, func() {}, err
	}
	script, err := policy.LoadScript(cfg.Script)
	if err != nil {
		return nil, nil, err
	}
	return script, script.Close, nil
}

// generateMaze builds a random maze and saves it under name
func generateMaze(store *mazefile.Store, name, title string, size int, opts options, logger *log.Logger) (*maze.Maze, error) {
	g, err := generator.ByName(opts.generate)
	if err != nil {
		return nil, err
	}
	m, err := g.Generate(size, title, generator.NewRand(opts.seed))
	if err != nil {
		return nil, err
	}
	if err := store.Save(name, m); err != nil {
		return nil, err
	}
	logger.Info("Generated maze", "name", name, "generator", g.Name(), "seed", opts.seed, "size", size)
	return m, nil
}

func listMazes(store *mazefile.Store) error {
	names, err := store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		renderer.ShowMessage(renderer.FormatText("SUBTLE{%s}", gotext.Get("NO_MAZES")))
		return nil
	}
	for _, name := range names {
		renderer.ShowMessage(name)
	}
	return nil
}

func runConsole(ctx context.Context, s *sim.Simulation, store *mazefile.Store, name string, logger *log.Logger) error {
	width, height := tui.RequiredSize(s.Maze().Size())
	rows, cols := renderer.GetViewportSize()
	if size := (terminal.Size{Width: cols, Height: rows}); !size.Fits(width, height) {
		logger.Warn("Terminal is smaller than the maze view",
			"need", fmt.Sprintf("%dx%d", width, height),
			"have", fmt.Sprintf("%dx%d", size.Width, size.Height))
	}

	lines, errc := input.NewReader(os.Stdin, input.DeviceTerminal).Lines(ctx)
	c := console.New(s, store, name, console.WithLogger(logger))
	err := c.Run(ctx, lines, errc)
	renderer.ShowMessage("\n" + gotext.Get("GOODBYE"))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runHeadless(ctx context.Context, cfg config.Config, s *sim.Simulation, name string, logger *log.Logger) error {
	err := s.Run(ctx, sim.Limits{MaxTicks: cfg.MaxTicks, MaxDecisions: cfg.MaxDecisions})
	switch {
	case err == nil:
	case errors.Is(err, mouse.ErrBlockedMove):
		logger.Warn("Run stopped on a blocked move", "error", err)
	case errors.Is(err, context.Canceled):
		logger.Info("Run interrupted")
	default:
		return err
	}

	renderer.RenderFrame(s.Frame())
	renderer.ShowMessage("")
	console.PrintStats(s.Stats())

	if cfg.HistoryPath == "" {
		return nil
	}
	return recordRun(cfg.HistoryPath, name, s, logger)
}

func recordRun(path, name string, s *sim.Simulation, logger *log.Logger) error {
	history, err := runlog.Open(path)
	if err != nil {
		return err
	}
	defer history.Close()

	ctx := context.Background()
	sum, err := history.Record(ctx, runlog.NewSummary(name, s.Maze().Size(), s.Policy().Name(), s.Stats()))
	if err != nil {
		return err
	}
	count, err := history.Count(ctx)
	if err != nil {
		return err
	}
	logger.Info("Run recorded", "id", sum.ID, "runs", count, "path", path)
	return nil
}
