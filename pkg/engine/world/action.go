package world

import "strings"

// Action is a discrete move decided by a navigation policy
type Action int

// Action constants
const (
	Left Action = iota
	Forward
	Right
	Idle
)

// AllActions returns all actions for iteration
func AllActions() []Action {
	return []Action{Left, Forward, Right, Idle}
}

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Left:
		return "Left"
	case Forward:
		return "Forward"
	case Right:
		return "Right"
	case Idle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the action is one of the four known actions
func (a Action) IsValid() bool {
	return a >= Left && a <= Idle
}

// ParseAction returns the action named by s, ignoring case
func ParseAction(s string) (Action, bool) {
	for _, a := range AllActions() {
		if strings.EqualFold(a.String(), strings.TrimSpace(s)) {
			return a, true
		}
	}
	return Idle, false
}
