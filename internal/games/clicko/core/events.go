package core

// MoveID identifies one move from BeginMove until its latch is discarded.
type MoveID uint64

// Outcome is the board evaluation performed right after a commit.
type Outcome int

const (
	OutcomeNone    Outcome = iota // Play continues
	OutcomeCleared                // Every cell is zero
	OutcomeLocked                 // No cell admits a reduction
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCleared:
		return "cleared"
	case OutcomeLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Event is emitted by the coordinator to its sink.
type Event interface {
	coordinatorEvent()
}

// MoveStartedEvent is emitted when neighbour animations are launched.
type MoveStartedEvent struct {
	Move      MoveID
	At        Coord
	Neighbors int
}

func (MoveStartedEvent) coordinatorEvent() {}

// MoveCommittedEvent is emitted exactly once per move, after the reduction.
type MoveCommittedEvent struct {
	Move    MoveID
	At      Coord
	Outcome Outcome
}

func (MoveCommittedEvent) coordinatorEvent() {}

// CommitFailedEvent is emitted if the reduction is refused at commit time.
type CommitFailedEvent struct {
	Move MoveID
	At   Coord
	Err  error
}

func (CommitFailedEvent) coordinatorEvent() {}

// MoveRejectedEvent is emitted for a click on an illegal cell.
// Blockers are the zero neighbours that made it illegal.
type MoveRejectedEvent struct {
	At       Coord
	Blockers []Coord
}

func (MoveRejectedEvent) coordinatorEvent() {}

// MoveCancelledEvent is emitted when an in-flight move is abandoned.
type MoveCancelledEvent struct {
	Move MoveID
	At   Coord
}

func (MoveCancelledEvent) coordinatorEvent() {}

// UndoneEvent is emitted after an undo attempt that found history.
// Err is non-nil when the re-addition was blocked.
type UndoneEvent struct {
	At  Coord
	Err error
}

func (UndoneEvent) coordinatorEvent() {}

// EventSink receives coordinator events.
type EventSink interface {
	Emit(ev Event)
}

// EventQueue is a FIFO sink drained once per tick.
type EventQueue struct {
	events []Event
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Emit appends an event.
func (q *EventQueue) Emit(ev Event) {
	q.events = append(q.events, ev)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns all queued events in emission order and empties the queue.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}
