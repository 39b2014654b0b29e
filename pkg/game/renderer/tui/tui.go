package tui

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"mazesim/pkg/engine/input"
	"mazesim/pkg/engine/terminal"
	"mazesim/pkg/engine/world"
	"mazesim/pkg/game/renderer"
	"mazesim/pkg/game/sim"
	"mazesim/pkg/maze"
)

// Icon constants for the maze view
const (
	IconWall      = "▒"
	IconUnvisited = "·"
	IconVisited   = "○"
	IconVoid      = " "
)

// mouseIcons is indexed by heading
var mouseIcons = [...]string{"▲", "▶", "▼", "◀"}

// Lines printed around the maze: title + blank, status (3), messages pane
// (header + MaxMessages + footer), prompt.
const chromeLines = 2 + 3 + sim.MaxMessages + 2 + 1

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out     io.Writer
	noColor bool

	colorWall        color.Style
	colorCell        color.Style
	colorVisited     color.Style
	colorMouse       color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDenied      color.Style
	colorSubtle      color.Style
	colorRunning     color.Style

	regexpStringFunctions *regexp.Regexp
}

// Option configures a TUIRenderer
type Option func(*TUIRenderer)

// WithOutput sets where frames are written
func WithOutput(w io.Writer) Option {
	return func(t *TUIRenderer) {
		t.out = w
	}
}

// WithoutColor renders plain text
func WithoutColor() Option {
	return func(t *TUIRenderer) {
		t.noColor = true
	}
}

// New creates a new TUI renderer writing to stdout
func New(opts ...Option) *TUIRenderer {
	t := &TUIRenderer{out: os.Stdout}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:()./?-]+)}`)
	if t.noColor {
		return
	}

	t.colorWall = color.Style{color.FgGray}
	t.colorCell = color.Style{color.FgBlue}
	t.colorVisited = color.Style{color.FgCyan}
	t.colorMouse = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorRunning = color.Style{color.FgGreen}
}

// clearScreen moves the cursor home and erases the display
const clearScreen = "\033[H\033[2J"

// Clear clears the screen when frames go to a terminal
func (t *TUIRenderer) Clear() {
	f, ok := t.out.(*os.File)
	if !ok || !terminal.IsTerminal(f) {
		return
	}
	fmt.Fprint(t.out, clearScreen)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleWall:
		return t.colorWall.Sprint(text)
	case renderer.StyleCell:
		return t.colorCell.Sprint(text)
	case renderer.StyleVisited:
		return t.colorVisited.Sprint(text)
	case renderer.StyleMouse:
		return t.colorMouse.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StyleRunning:
		return t.colorRunning.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)
	if t.regexpStringFunctions == nil {
		return ret
	}

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		val := "blat"

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "CELL":
			val = t.colorCell.Sprint(operand)
		case "ACTION":
			val = t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		case "DENIED":
			val = t.colorDenied.Sprint(operand)
		case "SUBTLE":
			val = t.colorSubtle.Sprint(operand)
		default:
			ret = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.out, msg)
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	size := terminal.GetSize()
	return size.Height, size.Width
}

// RequiredSize returns the terminal width and height a frame of a maze of
// the given size needs.
func RequiredSize(mazeSize int) (width, height int) {
	return 4*mazeSize + 1, 2*mazeSize + 1 + chromeLines
}

// RenderFrame renders a complete frame
func (t *TUIRenderer) RenderFrame(f sim.Frame) {
	fmt.Fprint(t.out, t.Render(f))
}

// Render returns the text of a complete frame
func (t *TUIRenderer) Render(f sim.Frame) string {
	var b strings.Builder

	t.printTitle(&b, f)
	t.printMap(&b, f)
	t.printStatus(&b, f)
	t.printMessagesPane(&b, f)

	// Input prompt
	b.WriteString("\n> ")
	return b.String()
}

func (t *TUIRenderer) printTitle(b *strings.Builder, f sim.Frame) {
	size := f.Maze.Size()
	b.WriteString(fmt.Sprintf("%s %s %s\n\n",
		dynamicGet("MAZE_TITLE"),
		t.colorCell.Sprint(f.Maze.Name()),
		t.colorSubtle.Sprintf("(%dx%d)", size, size),
	))
}

// printMap draws the maze with the north edge at the top. Cells are three
// characters wide; walls and posts are one character.
func (t *TUIRenderer) printMap(b *strings.Builder, f sim.Frame) {
	size := f.Maze.Size()
	wall := t.colorWall.Sprint(IconWall)
	wideWall := t.colorWall.Sprint(strings.Repeat(IconWall, 3))

	border := wall + strings.Repeat(wideWall+wall, size)
	b.WriteString(border + "\n")

	for row := 0; row < size; row++ {
		// Cell row: west border, cells separated by vertical walls, east border.
		b.WriteString(wall)
		for col := 0; col < size; col++ {
			p := world.Pos(col, size-1-row)
			b.WriteString(" " + t.renderCell(f, p) + " ")
			if col == size-1 {
				b.WriteString(wall)
			} else if f.Maze.Has(maze.VWallID(row, col)) {
				b.WriteString(wall)
			} else {
				b.WriteString(IconVoid)
			}
		}
		b.WriteString("\n")

		if row == size-1 {
			break
		}

		// Horizontal walls below this row, with posts between them.
		b.WriteString(wall)
		for col := 0; col < size; col++ {
			if f.Maze.Has(maze.HWallID(row, col)) {
				b.WriteString(wideWall)
			} else {
				b.WriteString(strings.Repeat(IconVoid, 3))
			}
			b.WriteString(wall)
		}
		b.WriteString("\n")
	}

	b.WriteString(border + "\n")
}

// renderCell returns the string representation of a cell
func (t *TUIRenderer) renderCell(f sim.Frame, p world.Position) string {
	if p == f.Cell && f.Heading.IsValid() {
		return t.colorMouse.Sprint(mouseIcons[f.Heading])
	}
	if f.HasVisited(p) {
		return t.colorVisited.Sprint(IconVisited)
	}
	return t.colorCell.Sprint(IconUnvisited)
}

// printStatus renders the mouse and run state lines
func (t *TUIRenderer) printStatus(b *strings.Builder, f sim.Frame) {
	b.WriteString("\n")

	state := t.colorDenied.Sprint(dynamicGet("PAUSED"))
	if f.Running {
		state = t.colorRunning.Sprint(dynamicGet("RUNNING"))
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n",
		t.colorSubtle.Sprint(dynamicGet("POLICY")), f.Policy,
		t.colorSubtle.Sprint(dynamicGet("STATE")), state,
		t.colorSubtle.Sprint(dynamicGet("ACTION")), t.colorAction.Sprint(dynamicGet(f.Action.String())),
	))
	b.WriteString(fmt.Sprintf("%s %s %s  %s (%.2f, %.2f) %.1f°\n",
		t.colorSubtle.Sprint(dynamicGet("CELL")), t.colorCell.Sprint(f.Cell.String()), dynamicGet(f.Heading.String()),
		t.colorSubtle.Sprint(dynamicGet("POSE")), f.Pose.X, f.Pose.Y, f.Pose.Angle,
	))
	b.WriteString(fmt.Sprintf("%s %s %s %s\n",
		t.colorSubtle.Sprint(dynamicGet("WALLS")),
		t.sensorMark(dynamicGet("LEFT"), f.Readings.Left),
		t.sensorMark(dynamicGet("FRONT"), f.Readings.Front),
		t.sensorMark(dynamicGet("RIGHT"), f.Readings.Right),
	))
}

func (t *TUIRenderer) sensorMark(label string, wall bool) string {
	if wall {
		return t.colorDenied.Sprint(label + ":" + IconWall)
	}
	return t.colorRunning.Sprint(label + ":" + IconVoid)
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(b *strings.Builder, f sim.Frame) {
	width, _ := RequiredSize(f.Maze.Size())

	label := " " + dynamicGet("MESSAGES") + " "
	labelLen := len([]rune(label))
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - labelLen
	if rightLen < 1 {
		rightLen = 1
	}

	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", rightLen)

	b.WriteString("\n")
	b.WriteString(t.colorSubtle.Sprint(leftDashes+label+rightDashes) + "\n")

	if len(f.Messages) == 0 {
		b.WriteString(t.colorSubtle.Sprint("  "+dynamicGet("NO_MESSAGES")) + "\n")
	} else {
		for _, msg := range f.Messages {
			b.WriteString("  " + msg + "\n")
		}
	}

	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", width)) + "\n")
}

// PrintHelp lists the command bindings
func (t *TUIRenderer) PrintHelp() {
	bindings := input.GetBindingsByAction()
	for _, action := range input.Actions() {
		codes := bindings[action]
		fmt.Fprint(t.out, "- "+t.FormatText("ACTION{%s}: \t%s", strings.Join(codes, ", "), dynamicGet(helpKey(action)))+"\n")
	}
}

func helpKey(a input.Action) string {
	return "HELP_" + strings.ToUpper(strings.NewReplacer(" ", "_", "/", "_").Replace(input.ActionName(a)))
}
