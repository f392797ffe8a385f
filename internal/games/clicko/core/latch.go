package core

// LatchState is the tagged state of a commit latch.
type LatchState uint8

const (
	LatchArmed LatchState = iota // Waiting for the first completion signal
	LatchFired                   // Commit has happened
)

func (s LatchState) String() string {
	switch s {
	case LatchArmed:
		return "armed"
	case LatchFired:
		return "fired"
	default:
		return "unknown"
	}
}

// Latch is the single-use commit gate of one in-flight move.
type Latch struct {
	id          MoveID
	at          Coord
	state       LatchState
	outstanding map[Coord]bool // Neighbour cells that have not reported yet
}

// NewLatch arms a latch for the move at c, waiting on the given cells.
func NewLatch(id MoveID, at Coord, cells []Coord) *Latch {
	outstanding := make(map[Coord]bool, len(cells))
	for _, cell := range cells {
		outstanding[cell] = true
	}
	return &Latch{id: id, at: at, state: LatchArmed, outstanding: outstanding}
}

// ID returns the move this latch belongs to.
func (l *Latch) ID() MoveID { return l.id }

// At returns the clicked cell.
func (l *Latch) At() Coord { return l.at }

// State returns the current state.
func (l *Latch) State() LatchState { return l.state }

// Pending returns the number of effects still outstanding.
func (l *Latch) Pending() int { return len(l.outstanding) }

// TryFire transitions Armed -> Fired and reports whether this call did it.
// Read and write happen in one step; every later call returns false.
func (l *Latch) TryFire() bool {
	if l.state != LatchArmed {
		return false
	}
	l.state = LatchFired
	return true
}

// Settle marks cell as reported and returns true once nothing is outstanding.
// Unknown or repeated cells do not count twice.
func (l *Latch) Settle(cell Coord) bool {
	delete(l.outstanding, cell)
	return len(l.outstanding) == 0
}
