package world

import "testing"

func TestHeading_LeftRightOpposite(t *testing.T) {
	tests := []struct {
		h                     Heading
		left, right, opposite Heading
	}{
		{North, West, East, South},
		{East, North, South, West},
		{South, East, West, North},
		{West, South, North, East},
	}
	for _, tt := range tests {
		t.Run(tt.h.String(), func(t *testing.T) {
			if got := tt.h.Left(); got != tt.left {
				t.Errorf("%v.Left() = %v, want %v", tt.h, got, tt.left)
			}
			if got := tt.h.Right(); got != tt.right {
				t.Errorf("%v.Right() = %v, want %v", tt.h, got, tt.right)
			}
			if got := tt.h.Opposite(); got != tt.opposite {
				t.Errorf("%v.Opposite() = %v, want %v", tt.h, got, tt.opposite)
			}
			if got := tt.h.Left().Right(); got != tt.h {
				t.Errorf("%v.Left().Right() = %v, want %v", tt.h, got, tt.h)
			}
		})
	}
}

func TestHeading_InvalidIsUnchanged(t *testing.T) {
	bad := Heading(7)
	if bad.IsValid() {
		t.Fatal("Heading(7).IsValid() = true, want false")
	}
	if bad.Left() != bad || bad.Right() != bad || bad.Opposite() != bad {
		t.Error("turning an invalid heading should return it unchanged")
	}
	if dx, dy := bad.Delta(); dx != 0 || dy != 0 {
		t.Errorf("Heading(7).Delta() = (%d,%d), want (0,0)", dx, dy)
	}
}

func TestPosition_StepNorthIncreasesY(t *testing.T) {
	got := Start.Step(North)
	if got != Pos(0, 1) {
		t.Errorf("Start.Step(North) = %v, want (0,1)", got)
	}
	if back := got.Step(North.Opposite()); back != Start {
		t.Errorf("stepping back south = %v, want %v", back, Start)
	}
}

func TestPosition_OnEdge(t *testing.T) {
	cases := map[Position]bool{
		Pos(0, 0): true,
		Pos(1, 1): false,
		Pos(3, 2): true,
		Pos(2, 3): true,
		Pos(4, 0): false, // out of bounds
	}
	for p, want := range cases {
		if got := p.OnEdge(4); got != want {
			t.Errorf("%v.OnEdge(4) = %v, want %v", p, got, want)
		}
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range AllActions() {
		got, ok := ParseAction(" " + a.String() + " ")
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v,%v want %v,true", a.String(), got, ok, a)
		}
	}
	if _, ok := ParseAction("jump"); ok {
		t.Error(`ParseAction("jump") ok = true, want false`)
	}
}
