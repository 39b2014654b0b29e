package mouse

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/vec3"

	"mazesim/pkg/engine/world"
	"mazesim/pkg/sensor"
)

// Quarter-turn goals in degrees; clockwise is positive.
const (
	leftTurn  = -90
	rightTurn = 90
)

// Pose is the continuous position of the mouse for rendering. X and Y are
// in the config's length unit with the start cell at the origin; Angle is
// degrees clockwise from North in [0, 360).
type Pose struct {
	X, Y  float64
	Angle float64
}

// Begin starts a motion for action a. The logical cell or heading is
// updated immediately.
//
// Begin fails with ErrMotionInProgress while a motion is running and with
// ErrBlockedMove if a is Forward and the front is walled. In both cases
// nothing changes. Idle is accepted and leaves the mouse idle.
func (m *Mouse) Begin(a world.Action) error {
	if m.state == StateMoving {
		return fmt.Errorf("%w: cannot begin %s", ErrMotionInProgress, a)
	}

	var goal vec3.T
	switch a {
	case world.Forward:
		if sensor.HasWallFront(m.maze, m.cell, m.heading) {
			return fmt.Errorf("%w: at %s facing %s", ErrBlockedMove, m.cell, m.heading)
		}
		dx, dy := m.heading.Delta()
		goal = vec3.T{
			float32(float64(dx) * m.cfg.CellLength),
			float32(float64(dy) * m.cfg.CellLength),
			0,
		}
		m.cell = m.cell.Step(m.heading)
	case world.Left:
		goal = vec3.T{0, 0, leftTurn}
		m.heading = m.heading.Left()
	case world.Right:
		goal = vec3.T{0, 0, rightTurn}
		m.heading = m.heading.Right()
	case world.Idle:
		m.action = a
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}

	m.action = a
	m.goal = goal
	m.progress = vec3.Zero
	m.state = StateMoving
	return nil
}

// Tick advances the running motion by one step on every axis and reports
// whether the mouse is now idle. Progress never passes the goal; when every
// axis reaches it the offset snaps to zero.
func (m *Mouse) Tick() bool {
	if m.state == StateIdle {
		return true
	}

	steps := vec3.T{float32(m.cfg.MoveStep), float32(m.cfg.MoveStep), float32(m.cfg.TurnStep)}
	done := true
	for i := range m.progress {
		m.progress[i] = approach(m.progress[i], m.goal[i], steps[i])
		if m.progress[i] != m.goal[i] {
			done = false
		}
	}
	if !done {
		return false
	}

	m.goal = vec3.Zero
	m.progress = vec3.Zero
	m.state = StateIdle
	return true
}

// MotionComplete reports whether no motion is running
func (m *Mouse) MotionComplete() bool {
	return m.state == StateIdle
}

// Offset returns the part of the current motion not yet covered as
// (dx, dy, dAngle). It is zero exactly when the mouse is idle.
func (m *Mouse) Offset() vec3.T {
	return vec3.Sub(&m.goal, &m.progress)
}

// Pose returns the rendered position: the logical pose minus the remaining
// offset.
func (m *Mouse) Pose() Pose {
	rest := m.Offset()
	return Pose{
		X:     float64(m.cell.X)*m.cfg.CellLength - float64(rest[0]),
		Y:     float64(m.cell.Y)*m.cfg.CellLength - float64(rest[1]),
		Angle: normalizeDegrees(m.heading.Degrees() - float64(rest[2])),
	}
}

// approach moves cur toward goal by at most step and lands on goal exactly.
func approach(cur, goal, step float32) float32 {
	switch {
	case goal-cur > step:
		return cur + step
	case cur-goal > step:
		return cur - step
	default:
		return goal
	}
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
