package mouse

import "errors"

var (
	// ErrBlockedMove is returned when a forward move would cross a wall.
	ErrBlockedMove = errors.New("mouse: forward move blocked by wall")
	// ErrMotionInProgress is returned when an action begins before the
	// previous motion has completed.
	ErrMotionInProgress = errors.New("mouse: motion in progress")
	// ErrUnknownAction is returned for an action outside the known set.
	ErrUnknownAction = errors.New("mouse: unknown action")
)
