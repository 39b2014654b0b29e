package maze

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WallMarker is the only character that denotes a wall in the text format.
const WallMarker = 'x'

// Serialize renders the maze in the text format:
//
//	<name>
//	<size>
//	<border row>
//	(size-1) × (<vertical-wall row> <horizontal-wall row>)
//	<vertical-wall row>
//	<border row>
//
// Every grid row is 2*size+1 characters wide. Vertical-wall rows carry a
// marker at offset 2+2j for wall j; horizontal-wall rows repeat the marker at
// offsets 1+2j and 2+2j so walls line up with the cells they close off.
func Serialize(m *Maze) string {
	var b strings.Builder
	b.Grow((2*m.size + 2) * (2*m.size + 3))

	b.WriteString(m.name)
	b.WriteByte('\n')
	b.WriteString(strconv.Itoa(m.size))
	b.WriteByte('\n')
	b.Write(borderRow(m.size))
	b.WriteByte('\n')
	for row := 0; row < m.size-1; row++ {
		b.Write(m.vWallRow(row))
		b.WriteByte('\n')
		b.Write(m.hWallRow(row))
		b.WriteByte('\n')
	}
	b.Write(m.vWallRow(m.size - 1))
	b.WriteByte('\n')
	b.Write(borderRow(m.size))
	b.WriteByte('\n')

	return b.String()
}

// Write serializes the maze to w.
func (m *Maze) Write(w io.Writer) error {
	if _, err := io.WriteString(w, Serialize(m)); err != nil {
		return fmt.Errorf("writing maze %q: %w", m.name, err)
	}
	return nil
}

// Deserialize parses a maze from its text form.
func Deserialize(text string) (*Maze, error) {
	return Read(strings.NewReader(text))
}

// Read parses a maze from r.
//
// It returns ErrParse if the size line is missing or not a number, or if any
// grid row is missing or shorter than 2*size+1 characters. A size outside
// [MinSize, MaxSize] returns an error matching both ErrParse and
// ErrInvalidSize. Characters other than WallMarker at wall offsets mean
// "no wall"; nothing else in a row is inspected.
func Read(r io.Reader) (*Maze, error) {
	lines := &lineReader{scanner: bufio.NewScanner(r)}

	name, ok := lines.next()
	if !ok {
		return nil, lines.failure("missing name line")
	}
	sizeLine, ok := lines.next()
	if !ok {
		return nil, lines.failure("missing size line")
	}
	size, err := strconv.Atoi(strings.TrimSpace(sizeLine))
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: size %q is not a number", ErrParse, lines.n, sizeLine)
	}
	if err := ValidateSize(size); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrParse, lines.n, err)
	}

	m, err := New(size, name)
	if err != nil {
		return nil, err
	}

	width := 2*size + 1
	row := func(what string) (string, error) {
		line, ok := lines.next()
		if !ok {
			return "", lines.failure("missing " + what)
		}
		if len(line) < width {
			return "", fmt.Errorf("%w: line %d: %s has %d characters, want %d", ErrParse, lines.n, what, len(line), width)
		}
		return line, nil
	}

	if _, err := row("top border row"); err != nil {
		return nil, err
	}
	for i := 0; i < size; i++ {
		vRow, err := row("vertical-wall row")
		if err != nil {
			return nil, err
		}
		for j := 0; j < size-1; j++ {
			m.vWalls[i][j] = vRow[2+2*j] == WallMarker
		}
		if i == size-1 {
			break
		}

		hRow, err := row("horizontal-wall row")
		if err != nil {
			return nil, err
		}
		for j := 0; j < size; j++ {
			m.hWalls[i][j] = hRow[1+2*j] == WallMarker
		}
	}
	if _, err := row("bottom border row"); err != nil {
		return nil, err
	}

	return m, nil
}

func borderRow(size int) []byte {
	row := make([]byte, 2*size+1)
	for i := range row {
		row[i] = WallMarker
	}
	return row
}

func blankRow(size int) []byte {
	row := make([]byte, 2*size+1)
	for i := range row {
		row[i] = ' '
	}
	row[0] = WallMarker
	row[len(row)-1] = WallMarker
	return row
}

func (m *Maze) vWallRow(row int) []byte {
	line := blankRow(m.size)
	for j, wall := range m.vWalls[row] {
		if wall {
			line[2+2*j] = WallMarker
		}
	}
	return line
}

func (m *Maze) hWallRow(row int) []byte {
	line := blankRow(m.size)
	for j, wall := range m.hWalls[row] {
		if wall {
			line[1+2*j] = WallMarker
			line[2+2*j] = WallMarker
		}
	}
	return line
}

// lineReader yields lines without their terminators and remembers the
// 1-based number of the last line returned.
type lineReader struct {
	scanner *bufio.Scanner
	n       int
}

func (l *lineReader) next() (string, bool) {
	if !l.scanner.Scan() {
		return "", false
	}
	l.n++
	return strings.TrimSuffix(l.scanner.Text(), "\r"), true
}

func (l *lineReader) failure(what string) error {
	if err := l.scanner.Err(); err != nil {
		return fmt.Errorf("%w: after line %d: %w", ErrParse, l.n, err)
	}
	return fmt.Errorf("%w: after line %d: %s", ErrParse, l.n, what)
}
