package policy

import (
	"mazesim/pkg/engine/world"
	"mazesim/pkg/sensor"
)

// ObstacleAvoiderPolicy drives straight until it meets a wall, then prefers
// turning left. It keeps no memory.
type ObstacleAvoiderPolicy struct{}

// Name returns the policy name
func (ObstacleAvoiderPolicy) Name() string {
	return "obstacle-avoider"
}

// Decide returns Forward if the front is open, else the first open side
// (left before right), else Left so a dead end becomes a turn-around.
func (ObstacleAvoiderPolicy) Decide(r sensor.Readings, memory Memory) (world.Action, Memory) {
	switch {
	case !r.Front:
		return world.Forward, memory
	case !r.Left:
		return world.Left, memory
	case !r.Right:
		return world.Right, memory
	default:
		return world.Left, memory
	}
}

// LeftWallFollowerPolicy keeps its left hand on the wall.
//
// After every left turn it moves forward on the next tick before sensing
// again, so a freshly rotated heading never triggers a second left turn.
type LeftWallFollowerPolicy struct{}

// Name returns the policy name
func (LeftWallFollowerPolicy) Name() string {
	return "left-wall-follower"
}

// Decide implements the left-hand rule with the TurnedLeft memory bit.
func (LeftWallFollowerPolicy) Decide(r sensor.Readings, memory Memory) (world.Action, Memory) {
	switch {
	case memory.TurnedLeft:
		memory.TurnedLeft = false
		return world.Forward, memory
	case !r.Left:
		memory.TurnedLeft = true
		return world.Left, memory
	case !r.Front:
		return world.Forward, memory
	default:
		return world.Right, memory
	}
}

// FloodFillPolicy is reserved for a shortest-path solver. It currently idles.
type FloodFillPolicy struct{}

// Name returns the policy name
func (FloodFillPolicy) Name() string {
	return "flood-fill"
}

// Decide always returns Idle.
func (FloodFillPolicy) Decide(_ sensor.Readings, memory Memory) (world.Action, Memory) {
	return world.Idle, memory
}
