// Package renderer defines the display backend used by the simulator.
// The simulation hands a renderer read-only frames; renderers never change
// simulation state.
package renderer

import (
	"fmt"

	"mazesim/pkg/game/sim"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleWall
	StyleCell
	StyleVisited
	StyleMouse
	StyleAction
	StyleActionShort
	StyleDenied
	StyleSubtle
	StyleRunning
)

// Renderer defines the interface for display backends
type Renderer interface {
	// Init initializes the renderer (colors, etc.)
	Init()

	// Clear clears the display
	Clear()

	// RenderFrame renders a complete frame: the maze, the mouse, the status
	// lines and the message log
	RenderFrame(f sim.Frame)

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string

	// ShowMessage displays a message to the user
	ShowMessage(msg string)

	// GetViewportSize returns the current viewport dimensions (rows, cols)
	GetViewportSize() (rows, cols int)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// Clear clears the display using the current renderer
func Clear() {
	if Current != nil {
		Current.Clear()
	}
}

// RenderFrame renders a frame with the current renderer
func RenderFrame(f sim.Frame) {
	if Current != nil {
		Current.RenderFrame(f)
	}
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// FormatText formats a message with markup
func FormatText(msg string, args ...any) string {
	if Current != nil {
		return Current.FormatText(msg, args...)
	}
	return fmt.Sprintf(msg, args...)
}

// ShowMessage displays a message with the current renderer
func ShowMessage(msg string) {
	if Current != nil {
		Current.ShowMessage(msg)
	}
}

// GetViewportSize returns viewport dimensions
func GetViewportSize() (rows, cols int) {
	if Current != nil {
		return Current.GetViewportSize()
	}
	return 24, 80 // sensible defaults
}
