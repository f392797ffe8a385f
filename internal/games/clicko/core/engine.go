package core

import "fmt"

// UndoPolicy controls what Undo does when the re-addition is blocked
// because a neighbour has reached the maximum value since the reduction.
type UndoPolicy string

const (
	// UndoLossy pops the history record even if the re-addition fails.
	UndoLossy UndoPolicy = "lossy"
	// UndoAtomic keeps the record on the stack if the re-addition fails.
	UndoAtomic UndoPolicy = "atomic"
)

// Default board parameters.
const (
	DefaultWidth        = 8
	DefaultHeight       = 10
	DefaultMaxCellValue = 7
)

// RandSource is the part of *rand.Rand that Generate needs.
type RandSource interface {
	Intn(n int) int
}

// EngineConfig holds the board dimensions and rule parameters.
type EngineConfig struct {
	Width        int
	Height       int
	MaxCellValue int
	UndoPolicy   UndoPolicy
}

// DefaultEngineConfig returns the classic 8x10 board with max value 7.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		MaxCellValue: DefaultMaxCellValue,
		UndoPolicy:   UndoLossy,
	}
}

// Engine holds the board state and enforces the puzzle rules.
// Cells are stored in row-major order: index = y*W + x.
type Engine struct {
	w        int
	h        int
	maxValue int
	policy   UndoPolicy
	cells    []int
	history  []Coord
}

// NewEngine creates an all-zero board with an empty history.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("engine: invalid board size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.MaxCellValue < 1 {
		return nil, fmt.Errorf("engine: invalid max cell value %d", cfg.MaxCellValue)
	}
	policy := cfg.UndoPolicy
	switch policy {
	case UndoLossy, UndoAtomic:
	case "":
		policy = UndoLossy
	default:
		return nil, fmt.Errorf("engine: unknown undo policy %q", cfg.UndoPolicy)
	}

	return &Engine{
		w:        cfg.Width,
		h:        cfg.Height,
		maxValue: cfg.MaxCellValue,
		policy:   policy,
		cells:    make([]int, cfg.Width*cfg.Height),
	}, nil
}

// Width returns the number of columns.
func (e *Engine) Width() int { return e.w }

// Height returns the number of rows.
func (e *Engine) Height() int { return e.h }

// MaxCellValue returns the highest value a cell may be raised to.
func (e *Engine) MaxCellValue() int { return e.maxValue }

// Policy returns the configured undo policy.
func (e *Engine) Policy() UndoPolicy { return e.policy }

// InBounds returns true if the coordinate is on the board.
func (e *Engine) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < e.w && c.Y >= 0 && c.Y < e.h
}

func (e *Engine) index(c Coord) int {
	return c.Y*e.w + c.X
}

// Value returns the counter at c, or 0 for off-board coordinates.
func (e *Engine) Value(c Coord) int {
	if !e.InBounds(c) {
		return 0
	}
	return e.cells[e.index(c)]
}

// Neighbors returns the in-bounds orthogonal neighbours of c.
// Off-board sides are simply missing; c itself need not be in bounds.
func (e *Engine) Neighbors(c Coord) []Neighbor {
	out := make([]Neighbor, 0, 4)
	for _, d := range neighborOrder {
		n := c.Step(d)
		if e.InBounds(n) {
			out = append(out, Neighbor{Cell: n, Side: d})
		}
	}
	return out
}

// ZeroNeighbors returns the in-bounds neighbours of c holding zero.
// These are the cells that make a reduction at c illegal.
func (e *Engine) ZeroNeighbors(c Coord) []Neighbor {
	var out []Neighbor
	for _, n := range e.Neighbors(c) {
		if e.cells[e.index(n.Cell)] == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Reset sets every cell to zero and clears the history.
func (e *Engine) Reset() {
	for i := range e.cells {
		e.cells[i] = 0
	}
	e.history = e.history[:0]
}

// Generate resets the board and performs clicks random additions.
// Blocked additions are skipped, so the returned realized count may be
// lower than requested.
func (e *Engine) Generate(clicks int, rng RandSource) int {
	e.Reset()

	realized := 0
	for i := 0; i < clicks; i++ {
		x := rng.Intn(e.w)
		y := rng.Intn(e.h)
		if e.Add(C(x, y)) == nil {
			realized++
		}
	}
	return realized
}

// CanReduce reports whether every in-bounds neighbour of c is non-zero.
// Bounds of c itself are not checked.
func (e *Engine) CanReduce(c Coord) bool {
	for _, n := range e.Neighbors(c) {
		if e.cells[e.index(n.Cell)] == 0 {
			return false
		}
	}
	return true
}

// Reduce decrements every neighbour of c and records c in the history.
func (e *Engine) Reduce(c Coord) error {
	if !e.InBounds(c) {
		return fmt.Errorf("reduce %v: %w", c, ErrOutOfBounds)
	}
	if !e.CanReduce(c) {
		return fmt.Errorf("reduce %v: %w", c, ErrIllegalMove)
	}
	e.modify(c, -1)
	e.history = append(e.history, c)
	return nil
}

// CanAdd reports whether c is on the board and no neighbour is at the maximum.
func (e *Engine) CanAdd(c Coord) bool {
	if !e.InBounds(c) {
		return false
	}
	for _, n := range e.Neighbors(c) {
		if e.cells[e.index(n.Cell)] >= e.maxValue {
			return false
		}
	}
	return true
}

// Add increments every neighbour of c. History is not touched.
func (e *Engine) Add(c Coord) error {
	if !e.InBounds(c) {
		return fmt.Errorf("add %v: %w", c, ErrOutOfBounds)
	}
	if !e.CanAdd(c) {
		return fmt.Errorf("add %v: %w", c, ErrIllegalMove)
	}
	e.modify(c, +1)
	return nil
}

// Undo pops the last reduction and re-applies it as an addition.
// Returns the coordinate that was undone. When the addition is blocked the
// record is discarded under UndoLossy and kept under UndoAtomic; the
// addition error is returned in both cases.
func (e *Engine) Undo() (Coord, error) {
	if len(e.history) == 0 {
		return Coord{}, ErrNoHistory
	}

	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	if err := e.Add(last); err != nil {
		if e.policy == UndoAtomic {
			e.history = append(e.history, last)
		}
		return last, fmt.Errorf("undo: %w", err)
	}
	return last, nil
}

// HasUndo reports whether the history is non-empty.
func (e *Engine) HasUndo() bool {
	return len(e.history) > 0
}

// HistoryLen returns the number of recorded reductions.
func (e *Engine) HistoryLen() int {
	return len(e.history)
}

// History returns a copy of the reduction history, oldest first.
func (e *Engine) History() []Coord {
	out := make([]Coord, len(e.history))
	copy(out, e.history)
	return out
}

// IsEmpty reports whether every cell is zero.
func (e *Engine) IsEmpty() bool {
	for _, v := range e.cells {
		if v != 0 {
			return false
		}
	}
	return true
}

// IsLocked reports whether no cell on the board admits a reduction.
func (e *Engine) IsLocked() bool {
	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			if e.CanReduce(C(x, y)) {
				return false
			}
		}
	}
	return true
}

// Total returns the sum of all counters.
func (e *Engine) Total() int {
	sum := 0
	for _, v := range e.cells {
		sum += v
	}
	return sum
}

// modify adds delta to every in-bounds neighbour of c.
func (e *Engine) modify(c Coord, delta int) {
	for _, n := range e.Neighbors(c) {
		e.cells[e.index(n.Cell)] += delta
	}
}
