package world

// Heading represents the cardinal direction the mouse is facing
type Heading int

// Heading constants, clockwise from North
const (
	North Heading = iota
	East
	South
	West
)

// AllHeadings returns all valid headings for iteration
func AllHeadings() []Heading {
	return []Heading{North, East, South, West}
}

// String returns the string representation of a heading
func (h Heading) String() string {
	switch h {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the heading is a valid cardinal direction
func (h Heading) IsValid() bool {
	return h >= North && h <= West
}

// Opposite returns the opposite heading
func (h Heading) Opposite() Heading {
	if !h.IsValid() {
		return h
	}
	return (h + 2) % 4
}

// Left returns the heading after a quarter turn counter-clockwise
func (h Heading) Left() Heading {
	if !h.IsValid() {
		return h
	}
	return (h + 3) % 4
}

// Right returns the heading after a quarter turn clockwise
func (h Heading) Right() Heading {
	if !h.IsValid() {
		return h
	}
	return (h + 1) % 4
}

// Delta returns the x and y offsets for one step in this heading.
// y grows northward, so North is (0, +1).
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Degrees returns the heading as a clockwise angle from North
func (h Heading) Degrees() float64 {
	if !h.IsValid() {
		return 0
	}
	return float64(h) * 90
}

// ParseHeading returns the heading named by s (case-sensitive, as printed by String)
func ParseHeading(s string) (Heading, bool) {
	for _, h := range AllHeadings() {
		if h.String() == s {
			return h, true
		}
	}
	return North, false
}
