// Package terminal reports the size and capabilities of the controlling
// terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size is a terminal size in character cells
type Size struct {
	Width  int
	Height int
}

// Fits reports whether content of the given width and height fits
func (s Size) Fits(width, height int) bool {
	return width <= s.Width && height <= s.Height
}

// SizeOf returns the size of the terminal on fd.
// Falls back to defaults if the size cannot be determined.
func SizeOf(fd int) Size {
	width, height, err := term.GetSize(fd)
	if err != nil || width <= 0 || height <= 0 {
		return Size{Width: DefaultWidth, Height: DefaultHeight}
	}
	return Size{Width: width, Height: height}
}

// GetSize returns the current size of the terminal on stdout
func GetSize() Size {
	return SizeOf(int(os.Stdout.Fd()))
}

// GetWidth returns the current terminal width.
// Falls back to DefaultWidth if the width cannot be determined.
func GetWidth() int {
	return GetSize().Width
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
