// Package input maps typed commands to high-level intents in layers:
// raw lines from a device, normalized tokens, then bindings to actions.
package input

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Device represents an input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceTerminal
	DeviceScript
)

// Action represents a high-level intent in the simulator.
type Action int

const (
	ActionNone Action = iota

	// Simulation control
	ActionRun
	ActionStep
	ActionTick
	ActionReset

	// Editing
	ActionToggleVertical
	ActionToggleHorizontal
	ActionSave

	// Meta / UI
	ActionPrint
	ActionStats
	ActionHelp
	ActionQuit
)

// Intent is the top-layer description of what the user wants to do.
// Args holds the words that followed the command.
type Intent struct {
	Action Action
	Args   []string
}

// RawInput is the 1st-layer event: one line as read from a device.
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// Tokens is the 2nd-layer representation: the command word in lower case
// and its arguments.
type Tokens struct {
	Device  Device
	Command string
	Args    []string
}

// Tokenize splits a raw line into a command and arguments. Everything after
// a '#' is a comment.
func Tokenize(raw RawInput) Tokens {
	line, _, _ := strings.Cut(raw.Code, "#")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Tokens{Device: raw.Device}
	}
	return Tokens{
		Device:  raw.Device,
		Command: strings.ToLower(fields[0]),
		Args:    fields[1:],
	}
}

// bindings maps command words to actions (3rd-layer bindings).
// Multiple words may point to the same Action.
var bindings = map[string]Action{
	"r":     ActionRun,
	"run":   ActionRun,
	"pause": ActionRun,

	"s":    ActionStep,
	"step": ActionStep,

	"t":    ActionTick,
	"tick": ActionTick,

	"reset": ActionReset,

	"v":  ActionToggleVertical,
	"vw": ActionToggleVertical,
	"h":  ActionToggleHorizontal,
	"hw": ActionToggleHorizontal,

	"w":    ActionSave,
	"save": ActionSave,

	"p":     ActionPrint,
	"print": ActionPrint,
	"":      ActionPrint,

	"stats": ActionStats,

	"?":    ActionHelp,
	"help": ActionHelp,

	"q":    ActionQuit,
	"quit": ActionQuit,
	"exit": ActionQuit,
}

// MapToIntent applies the bindings to a raw line and returns an Intent.
func MapToIntent(raw RawInput) Intent {
	tokens := Tokenize(raw)
	if act, ok := bindings[tokens.Command]; ok {
		return Intent{Action: act, Args: tokens.Args}
	}
	return Intent{Action: ActionNone, Args: append([]string{tokens.Command}, tokens.Args...)}
}

// IntArgs parses exactly n integer arguments.
func (i Intent) IntArgs(n int) ([]int, error) {
	if len(i.Args) != n {
		return nil, fmt.Errorf("%s needs %d numbers, got %d", ActionName(i.Action), n, len(i.Args))
	}
	values := make([]int, n)
	for k, arg := range i.Args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", ActionName(i.Action), arg)
		}
		values[k] = v
	}
	return values, nil
}

// OptionalCount returns the first argument as a positive count, or def when
// there are no arguments.
func (i Intent) OptionalCount(def int) (int, error) {
	if len(i.Args) == 0 {
		return def, nil
	}
	values, err := i.IntArgs(1)
	if err != nil {
		return 0, err
	}
	if values[0] < 1 {
		return 0, fmt.Errorf("%s: count must be positive", ActionName(i.Action))
	}
	return values[0], nil
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionRun:
		return "Run/Pause"
	case ActionStep:
		return "Step"
	case ActionTick:
		return "Tick"
	case ActionReset:
		return "Reset"
	case ActionToggleVertical:
		return "Toggle Vertical Wall"
	case ActionToggleHorizontal:
		return "Toggle Horizontal Wall"
	case ActionSave:
		return "Save"
	case ActionPrint:
		return "Print"
	case ActionStats:
		return "Stats"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		if code == "" {
			continue
		}
		result[act] = append(result[act], code)
	}
	// Ensure stable ordering of codes within each action so help doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// Actions returns every bindable action in declaration order.
func Actions() []Action {
	return []Action{
		ActionRun, ActionStep, ActionTick, ActionReset,
		ActionToggleVertical, ActionToggleHorizontal, ActionSave,
		ActionPrint, ActionStats, ActionHelp, ActionQuit,
	}
}
