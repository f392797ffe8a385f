package core

import "testing"

func TestCoordStep(t *testing.T) {
	origin := C(3, 3)
	tests := []struct {
		dir  Dir
		want Coord
	}{
		{DirUp, C(3, 2)},
		{DirRight, C(4, 3)},
		{DirDown, C(3, 4)},
		{DirLeft, C(2, 3)},
	}
	for _, tt := range tests {
		if got := origin.Step(tt.dir); got != tt.want {
			t.Errorf("Step(%v) = %v, want %v", tt.dir, got, tt.want)
		}
		if back := origin.Step(tt.dir).Step(tt.dir.Opposite()); back != origin {
			t.Errorf("Step(%v) then Step(%v) = %v, want %v", tt.dir, tt.dir.Opposite(), back, origin)
		}
	}
}

func TestDirString(t *testing.T) {
	if got := DirLeft.String(); got != "Left" {
		t.Errorf("DirLeft.String() = %q", got)
	}
	if got := Dir(9).String(); got != "Unknown" {
		t.Errorf("Dir(9).String() = %q", got)
	}
}

func TestNeighborToward(t *testing.T) {
	n := Neighbor{Cell: C(1, 0), Side: DirUp}
	if n.Toward() != DirDown {
		t.Errorf("Toward() = %v, want Down", n.Toward())
	}
}
