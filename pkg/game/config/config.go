// Package config loads simulator settings from defaults, an optional .env
// file and MAZESIM_* environment variables. Command-line flags are applied
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"mazesim/pkg/maze"
	"mazesim/pkg/mouse"
	"mazesim/pkg/policy"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "MAZESIM_"

// Environment variable names, without EnvPrefix
const (
	EnvMazeDir    = "MAZE_DIR"
	EnvMaze       = "MAZE"
	EnvPolicy     = "POLICY"
	EnvScript     = "SCRIPT"
	EnvHistory    = "HISTORY"
	EnvLogLevel   = "LOG_LEVEL"
	EnvNoColor    = "NO_COLOR"
	EnvSize       = "SIZE"
	EnvTicks      = "TICKS"
	EnvDecisions  = "DECISIONS"
	EnvCellLength = "CELL_LENGTH"
	EnvMoveStep   = "MOVE_STEP"
	EnvTurnStep   = "TURN_STEP"
	EnvLocale     = "LOCALE"
	EnvLocaleDir  = "LOCALE_DIR"
)

// DefaultEnvFile is loaded by Load when no files are given
const DefaultEnvFile = ".env"

const (
	defaultMazeDir  = "mazes"
	defaultLogLevel = "info"
)

// Config holds the simulator settings
type Config struct {
	MazeDir     string // Directory holding maze files
	Maze        string // Maze file name; empty selects the default file
	Policy      string // Built-in policy name
	Script      string // Path to a Lua policy; overrides Policy when set
	HistoryPath string // SQLite run history; empty disables history
	LogLevel    string // debug, info, warn or error
	NoColor     bool   // Disable colours in the text renderer

	Size         int // Size of newly created mazes
	MaxTicks     int // Headless tick limit, 0 for none
	MaxDecisions int // Headless decision limit, 0 for none

	CellLength float64
	MoveStep   float64
	TurnStep   float64

	Locale    string
	LocaleDir string
}

// Default returns the built-in defaults
func Default() Config {
	motion := mouse.DefaultConfig()
	return Config{
		MazeDir:      defaultMazeDir,
		Policy:       policy.Default.Name(),
		LogLevel:     defaultLogLevel,
		Size:         maze.MaxSize,
		MaxTicks:     0,
		MaxDecisions: 100,
		CellLength:   motion.CellLength,
		MoveStep:     motion.MoveStep,
		TurnStep:     motion.TurnStep,
		Locale:       "en_GB",
		LocaleDir:    "locales",
	}
}

// Load returns the defaults overridden by the environment. Each env file is
// loaded first if it exists; variables already set in the process win over
// file values. With no files, DefaultEnvFile is tried.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, file := range envFiles {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.MazeDir = getEnvWithDefault(EnvMazeDir, c.MazeDir)
	c.Maze = getEnvWithDefault(EnvMaze, c.Maze)
	c.Policy = getEnvWithDefault(EnvPolicy, c.Policy)
	c.Script = getEnvWithDefault(EnvScript, c.Script)
	c.HistoryPath = getEnvWithDefault(EnvHistory, c.HistoryPath)
	c.LogLevel = getEnvWithDefault(EnvLogLevel, c.LogLevel)
	c.Locale = getEnvWithDefault(EnvLocale, c.Locale)
	c.LocaleDir = getEnvWithDefault(EnvLocaleDir, c.LocaleDir)

	var err error
	if c.NoColor, err = getEnvAsBool(EnvNoColor, c.NoColor); err != nil {
		return err
	}
	if c.Size, err = getEnvAsInt(EnvSize, c.Size); err != nil {
		return err
	}
	if c.MaxTicks, err = getEnvAsInt(EnvTicks, c.MaxTicks); err != nil {
		return err
	}
	if c.MaxDecisions, err = getEnvAsInt(EnvDecisions, c.MaxDecisions); err != nil {
		return err
	}
	if c.CellLength, err = getEnvAsFloat(EnvCellLength, c.CellLength); err != nil {
		return err
	}
	if c.MoveStep, err = getEnvAsFloat(EnvMoveStep, c.MoveStep); err != nil {
		return err
	}
	if c.TurnStep, err = getEnvAsFloat(EnvTurnStep, c.TurnStep); err != nil {
		return err
	}
	return nil
}

// Validate checks that the settings are usable
func (c Config) Validate() error {
	if err := maze.ValidateSize(c.Size); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	if c.MaxTicks < 0 || c.MaxDecisions < 0 {
		return errors.New("tick and decision limits must not be negative")
	}
	if c.CellLength <= 0 || c.MoveStep <= 0 || c.TurnStep <= 0 {
		return errors.New("cell length, move step and turn step must be positive")
	}
	if c.Script == "" {
		if _, err := policy.ByName(c.Policy); err != nil {
			return err
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Motion returns the mouse motion parameters
func (c Config) Motion() mouse.Config {
	return mouse.Config{
		CellLength: c.CellLength,
		MoveStep:   c.MoveStep,
		TurnStep:   c.TurnStep,
	}
}

// getEnvWithDefault retrieves a prefixed environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(EnvPrefix + key); exists {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(EnvPrefix + key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return 0, fmt.Errorf("environment variable %s%s must be an integer: %w", EnvPrefix, key, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr, exists := os.LookupEnv(EnvPrefix + key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s%s must be a number: %w", EnvPrefix, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr, exists := os.LookupEnv(EnvPrefix + key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		return false, fmt.Errorf("environment variable %s%s must be a boolean: %w", EnvPrefix, key, err)
	}
	return value, nil
}
