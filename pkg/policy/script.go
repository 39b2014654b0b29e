package policy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"mazesim/pkg/engine/world"
	"mazesim/pkg/sensor"
)

// ScriptEntryPoint is the global Lua function a script policy must define:
//
//	function decide(left, front, right, memory)
//	  return "forward", memory
//	end
//
// left, front and right are booleans (true = wall). memory is a table with
// a boolean field turned_left plus any numeric fields the script stored on
// earlier calls. The first return value names the action ("left",
// "forward", "right" or "idle"); the optional second value replaces the
// memory.
const ScriptEntryPoint = "decide"

const turnedLeftKey = "turned_left"

// RightWallFollowerScript is a sample script policy mirroring the left-wall
// follower with the right hand on the wall.
const RightWallFollowerScript = `
function decide(left, front, right, memory)
	if memory.turned_right then
		memory.turned_right = nil
		return "forward", memory
	end
	if not right then
		memory.turned_right = 1
		return "right", memory
	end
	if not front then
		return "forward", memory
	end
	return "left", memory
end
`

var errNoEntryPoint = errors.New("script does not define function " + ScriptEntryPoint)

// Script is a policy implemented by a Lua function.
// A Script owns a Lua state and is not safe for concurrent use.
type Script struct {
	name    string
	state   *lua.LState
	lastErr error
}

// NewScript compiles source and checks that it defines the entry point.
func NewScript(name, source string) (*Script, error) {
	state := lua.NewState()
	if err := state.DoString(source); err != nil {
		state.Close()
		return nil, fmt.Errorf("could not parse lua policy %q: %w", name, err)
	}
	if state.GetGlobal(ScriptEntryPoint).Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("lua policy %q: %w", name, errNoEntryPoint)
	}
	return &Script{name: name, state: state}, nil
}

// LoadScript reads a Lua policy from a file. The policy is named after the
// file without its extension.
func LoadScript(path string) (*Script, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lua policy: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewScript(name, string(source))
}

// Name returns the policy name
func (s *Script) Name() string {
	return s.name
}

// LastError returns the error from the most recent Decide call, if any.
func (s *Script) LastError() error {
	return s.lastErr
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}

// Decide runs the script. If the script fails or returns something that is
// not an action, Decide returns Idle with the memory unchanged and records
// the problem in LastError.
func (s *Script) Decide(r sensor.Readings, memory Memory) (world.Action, Memory) {
	s.lastErr = nil

	err := s.state.CallByParam(lua.P{
		Fn:      s.state.GetGlobal(ScriptEntryPoint),
		NRet:    2,
		Protect: true,
	}, lua.LBool(r.Left), lua.LBool(r.Front), lua.LBool(r.Right), s.memoryTable(memory))
	if err != nil {
		s.lastErr = fmt.Errorf("could not execute lua policy %q: %w", s.name, err)
		return world.Idle, memory
	}

	ret := s.state.Get(-2)
	newMemory := s.state.Get(-1)
	s.state.Pop(2)

	if ret.Type() != lua.LTString {
		s.lastErr = fmt.Errorf("lua policy %q returned %s, expected string", s.name, ret.Type().String())
		return world.Idle, memory
	}
	action, ok := world.ParseAction(lua.LVAsString(ret))
	if !ok {
		s.lastErr = fmt.Errorf("lua policy %q returned unknown action %q", s.name, lua.LVAsString(ret))
		return world.Idle, memory
	}

	if tbl, ok := newMemory.(*lua.LTable); ok {
		memory = convertLuaMemoryTable(tbl)
	}
	return action, memory
}

func (s *Script) memoryTable(memory Memory) *lua.LTable {
	tbl := s.state.NewTable()
	tbl.RawSetString(turnedLeftKey, lua.LBool(memory.TurnedLeft))
	for key, value := range memory.Slots {
		tbl.RawSetString(key, lua.LNumber(value))
	}
	return tbl
}

func convertLuaMemoryTable(tbl *lua.LTable) Memory {
	result := Memory{}
	tbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}

		keyStr := lua.LVAsString(key)
		switch {
		case keyStr == turnedLeftKey:
			result.TurnedLeft = lua.LVAsBool(value)
		case value.Type() == lua.LTNumber:
			if result.Slots == nil {
				result.Slots = make(map[string]float64)
			}
			result.Slots[keyStr] = float64(lua.LVAsNumber(value))
		default:
			// non-numeric slots do not survive between calls
		}
	})
	return result
}
