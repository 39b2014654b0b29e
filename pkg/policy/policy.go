// Package policy provides navigation policies that turn sensor readings into
// discrete actions.
//
// A policy is a pure decision function. Any state it keeps between ticks is
// returned as Memory and must be passed back on the next call; the caller owns
// it. New behaviours are added by implementing Policy, never by branching
// inside an existing one.
package policy

import (
	"mazesim/pkg/engine/world"
	"mazesim/pkg/sensor"
)

// Memory is the state a policy carries from one decision to the next.
// The zero value is the initial memory for every policy.
type Memory struct {
	// TurnedLeft records that the last action was a left turn that must be
	// followed by a forward move.
	TurnedLeft bool
	// Slots holds free-form state for scripted policies.
	Slots map[string]float64
}

// Policy decides the next action from the current readings and memory.
// Decide never fails.
type Policy interface {
	Decide(readings sensor.Readings, memory Memory) (world.Action, Memory)
	Name() string
}

// Func adapts an ordinary function to the Policy interface.
type Func struct {
	name string
	fn   func(sensor.Readings, Memory) (world.Action, Memory)
}

// NewFunc wraps fn as a named policy.
func NewFunc(name string, fn func(sensor.Readings, Memory) (world.Action, Memory)) *Func {
	return &Func{name: name, fn: fn}
}

// Decide calls the wrapped function
func (f *Func) Decide(readings sensor.Readings, memory Memory) (world.Action, Memory) {
	return f.fn(readings, memory)
}

// Name returns the policy name
func (f *Func) Name() string {
	return f.name
}
