package core

import (
	"errors"
	"fmt"
)

// AnimKind selects which one-shot animation a cell plays.
type AnimKind uint8

const (
	AnimIdle   AnimKind = iota
	AnimReduce          // Neighbour of a legal click, flows toward the clicked cell
	AnimReject          // Zero neighbour that blocked an illegal click
)

func (k AnimKind) String() string {
	switch k {
	case AnimIdle:
		return "idle"
	case AnimReduce:
		return "reduce"
	case AnimReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Handle identifies one started animation.
type Handle uint64

// Effects is the rendering capability the coordinator drives.
// PlayOneShot must call done exactly once when playback completes. A handle
// whose animation is replaced or cleared before completion never reports.
type Effects interface {
	PlayOneShot(cell Coord, kind AnimKind, dir Dir, done func()) Handle
	ResetToIdle(cell Coord)
}

// Coordinator turns one click into neighbour animations and commits the
// reduction exactly once, on the first animation that finishes.
type Coordinator struct {
	engine *Engine
	fx     Effects
	sink   EventSink
	latch  *Latch
	nextID MoveID
}

// NewCoordinator wires an engine to an effects player and an event sink.
func NewCoordinator(engine *Engine, fx Effects, sink EventSink) *Coordinator {
	return &Coordinator{
		engine: engine,
		fx:     fx,
		sink:   sink,
	}
}

// Engine returns the engine being coordinated.
func (co *Coordinator) Engine() *Engine {
	return co.engine
}

// InFlight reports whether a move is waiting for its animations.
func (co *Coordinator) InFlight() bool {
	return co.latch != nil
}

// Latch returns the state of the in-flight latch, if any.
func (co *Coordinator) Latch() (LatchState, bool) {
	if co.latch == nil {
		return 0, false
	}
	return co.latch.State(), true
}

// Click handles a validated click: a legal cell starts a move, an illegal
// one plays the rejection and returns ErrIllegalMove.
func (co *Coordinator) Click(c Coord) (MoveID, error) {
	if !co.engine.InBounds(c) {
		return 0, fmt.Errorf("click %v: %w", c, ErrOutOfBounds)
	}
	if co.latch != nil {
		return 0, fmt.Errorf("click %v: %w", c, ErrMoveInFlight)
	}
	if co.engine.CanReduce(c) {
		return co.BeginMove(c)
	}
	if _, err := co.Reject(c); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("click %v: %w", c, ErrIllegalMove)
}

// BeginMove arms a latch for c and starts a reduce animation on every
// neighbour, each pointing toward c.
func (co *Coordinator) BeginMove(c Coord) (MoveID, error) {
	if !co.engine.InBounds(c) {
		return 0, fmt.Errorf("begin move %v: %w", c, ErrOutOfBounds)
	}
	if co.latch != nil {
		return 0, fmt.Errorf("begin move %v: %w", c, ErrMoveInFlight)
	}
	if !co.engine.CanReduce(c) {
		return 0, fmt.Errorf("begin move %v: %w", c, ErrIllegalMove)
	}

	co.nextID++
	id := co.nextID

	neighbors := co.engine.Neighbors(c)
	cells := make([]Coord, len(neighbors))
	for i, n := range neighbors {
		cells[i] = n.Cell
	}

	latch := NewLatch(id, c, cells)
	co.latch = latch
	co.sink.Emit(MoveStartedEvent{Move: id, At: c, Neighbors: len(neighbors)})

	// Nothing will ever report on a board without neighbours.
	if len(neighbors) == 0 {
		if latch.TryFire() {
			co.commit(latch)
		}
		co.latch = nil
		return id, nil
	}

	for _, n := range neighbors {
		cell := n.Cell
		co.fx.PlayOneShot(cell, AnimReduce, n.Toward(), func() {
			co.OnNeighborAnimationFinished(id, cell)
		})
	}
	return id, nil
}

// OnNeighborAnimationFinished is the completion callback of one neighbour.
// The cell always returns to idle; the first report of the in-flight move
// commits it; the last report ends it. Reports for other moves are ignored.
func (co *Coordinator) OnNeighborAnimationFinished(id MoveID, cell Coord) {
	latch := co.latch
	if latch == nil || latch.ID() != id {
		return
	}

	co.fx.ResetToIdle(cell)

	if latch.TryFire() {
		co.commit(latch)
	}
	if latch.Settle(cell) && co.latch == latch {
		co.latch = nil
	}
}

// EndMove discards the in-flight latch. A latch that never fired is
// reported as cancelled.
func (co *Coordinator) EndMove() {
	if co.latch == nil {
		return
	}
	if co.latch.State() == LatchArmed {
		co.sink.Emit(MoveCancelledEvent{Move: co.latch.ID(), At: co.latch.At()})
	}
	co.latch = nil
}

// Cancel abandons the in-flight move, e.g. on level reset. Its pending
// commit is skipped and its outstanding callbacks become stale.
func (co *Coordinator) Cancel() {
	co.EndMove()
}

// Reject plays the rejection animation on every zero neighbour of c.
// The engine is not touched and no latch is armed.
func (co *Coordinator) Reject(c Coord) ([]Coord, error) {
	if !co.engine.InBounds(c) {
		return nil, fmt.Errorf("reject %v: %w", c, ErrOutOfBounds)
	}
	if co.latch != nil {
		return nil, fmt.Errorf("reject %v: %w", c, ErrMoveInFlight)
	}

	blockers := co.engine.ZeroNeighbors(c)
	cells := make([]Coord, 0, len(blockers))
	for _, b := range blockers {
		cell := b.Cell
		cells = append(cells, cell)
		co.fx.PlayOneShot(cell, AnimReject, b.Toward(), func() {
			co.fx.ResetToIdle(cell)
		})
	}

	co.sink.Emit(MoveRejectedEvent{At: c, Blockers: cells})
	return cells, nil
}

// Undo reverts the last committed reduction. Refused while a move is in flight.
func (co *Coordinator) Undo() (Coord, error) {
	if co.latch != nil {
		return Coord{}, fmt.Errorf("undo: %w", ErrMoveInFlight)
	}

	at, err := co.engine.Undo()
	if errors.Is(err, ErrNoHistory) {
		return at, err
	}
	co.sink.Emit(UndoneEvent{At: at, Err: err})
	return at, err
}

// commit applies the reduction and evaluates the board: cleared first,
// then locked.
func (co *Coordinator) commit(latch *Latch) {
	at := latch.At()
	if err := co.engine.Reduce(at); err != nil {
		co.sink.Emit(CommitFailedEvent{Move: latch.ID(), At: at, Err: err})
		return
	}

	outcome := OutcomeNone
	switch {
	case co.engine.IsEmpty():
		outcome = OutcomeCleared
	case co.engine.IsLocked():
		outcome = OutcomeLocked
	}
	co.sink.Emit(MoveCommittedEvent{Move: latch.ID(), At: at, Outcome: outcome})
}
