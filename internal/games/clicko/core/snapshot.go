package core

import "fmt"

// Snapshot is the flat, serializable form of the engine state.
// Cells are row-major; the undo history length is len(History).
type Snapshot struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Cells   []int   `yaml:"cells,flow"`
	History []Coord `yaml:"history,omitempty"`
}

// SaveGame is a snapshot plus the campaign position it belongs to.
type SaveGame struct {
	Level   int      `yaml:"level"`
	Seconds int      `yaml:"seconds"`
	Board   Snapshot `yaml:"board"`
}

// Snapshot captures the current grid and history.
func (e *Engine) Snapshot() Snapshot {
	cells := make([]int, len(e.cells))
	copy(cells, e.cells)
	return Snapshot{
		Width:   e.w,
		Height:  e.h,
		Cells:   cells,
		History: e.History(),
	}
}

// Restore replaces the engine state with s.
// The snapshot must match the board size and hold only legal values and
// on-board history entries; otherwise the engine is left untouched.
func (e *Engine) Restore(s Snapshot) error {
	if s.Width != e.w || s.Height != e.h {
		return fmt.Errorf("%w: size %dx%d, board is %dx%d",
			ErrInvalidSnapshot, s.Width, s.Height, e.w, e.h)
	}
	if len(s.Cells) != e.w*e.h {
		return fmt.Errorf("%w: %d cells, want %d", ErrInvalidSnapshot, len(s.Cells), e.w*e.h)
	}
	for i, v := range s.Cells {
		if v < 0 || v > e.maxValue {
			return fmt.Errorf("%w: cell %d value %d outside [0,%d]",
				ErrInvalidSnapshot, i, v, e.maxValue)
		}
	}
	for _, c := range s.History {
		if !e.InBounds(c) {
			return fmt.Errorf("%w: history entry %v off the board", ErrInvalidSnapshot, c)
		}
	}

	copy(e.cells, s.Cells)
	e.history = append(e.history[:0], s.History...)
	return nil
}

// Equal returns true if two snapshots have the same size, cells and history.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Width != other.Width || s.Height != other.Height {
		return false
	}
	if len(s.Cells) != len(other.Cells) || len(s.History) != len(other.History) {
		return false
	}
	for i := range s.Cells {
		if s.Cells[i] != other.Cells[i] {
			return false
		}
	}
	for i := range s.History {
		if s.History[i] != other.History[i] {
			return false
		}
	}
	return true
}
