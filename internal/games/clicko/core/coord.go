// Package core provides the rules engine and move-commit protocol for Clicko.
// This package is UI-agnostic and deterministic.
package core

import "fmt"

// Coord represents a cell position on the board.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the cell one step away in direction d.
func (c Coord) Step(d Dir) Coord {
	delta := dirDeltas[d%4]
	return Coord{X: c.X + delta.X, Y: c.Y + delta.Y}
}

// Dir is one of the four orthogonal directions, clockwise from Up.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// neighborOrder is the order in which neighbours are visited: the
// top, left, right, bottom reading order of the board.
var neighborOrder = [4]Dir{DirUp, DirLeft, DirRight, DirDown}

// dirDeltas are screen offsets, so Up decreases Y.
var dirDeltas = [4]Coord{
	DirUp:    {0, -1},
	DirRight: {1, 0},
	DirDown:  {0, 1},
	DirLeft:  {-1, 0},
}

var dirNames = [4]string{"Up", "Right", "Down", "Left"}

func (d Dir) String() string {
	if d > DirLeft {
		return "Unknown"
	}
	return dirNames[d]
}

// Opposite returns the direction rotated by half a turn.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Neighbor is an in-bounds orthogonal neighbour of a cell.
// Side is the direction from the origin cell to the neighbour.
type Neighbor struct {
	Cell Coord
	Side Dir
}

// Toward returns the direction pointing from the neighbour back to the origin.
func (n Neighbor) Toward() Dir {
	return n.Side.Opposite()
}
