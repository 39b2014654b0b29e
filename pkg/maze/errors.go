package maze

import "errors"

// Sentinel errors for maze construction, parsing and editing.
var (
	// ErrInvalidSize indicates a maze size outside [MinSize, MaxSize].
	ErrInvalidSize = errors.New("maze: invalid size")
	// ErrParse indicates a malformed or truncated serialized maze.
	ErrParse = errors.New("maze: parse error")
	// ErrIndex indicates a wall id outside the maze's interior wall grid.
	ErrIndex = errors.New("maze: wall index out of range")
)
