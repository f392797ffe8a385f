package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type playCall struct {
	cell Coord
	kind AnimKind
	dir  Dir
	done func()
}

// fakeEffects records every animation and lets the test decide when and in
// which order they finish.
type fakeEffects struct {
	plays []playCall
	idle  map[Coord]int
}

func newFakeEffects() *fakeEffects {
	return &fakeEffects{idle: make(map[Coord]int)}
}

func (f *fakeEffects) PlayOneShot(cell Coord, kind AnimKind, dir Dir, done func()) Handle {
	f.plays = append(f.plays, playCall{cell: cell, kind: kind, dir: dir, done: done})
	return Handle(len(f.plays))
}

func (f *fakeEffects) ResetToIdle(cell Coord) {
	f.idle[cell]++
}

func (f *fakeEffects) idleTotal() int {
	n := 0
	for _, v := range f.idle {
		n += v
	}
	return n
}

func countEvents[T Event](events []Event) []T {
	var out []T
	for _, ev := range events {
		if e, ok := ev.(T); ok {
			out = append(out, e)
		}
	}
	return out
}

// centreBoard returns a 3x3 board where (1,1) is the only reducible cell
// with all four neighbours at 1.
func centreBoard(t *testing.T) (*Coordinator, *fakeEffects, *EventQueue) {
	t.Helper()
	e := newTestEngine(t, 3, 3, 7)
	require.NoError(t, e.Add(C(1, 1)))

	fx := newFakeEffects()
	q := NewEventQueue()
	return NewCoordinator(e, fx, q), fx, q
}

func permutations(n int) [][]int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var out [][]int
	var walk func(k int)
	walk = func(k int) {
		if k == n {
			p := make([]int, n)
			copy(p, idx)
			out = append(out, p)
			return
		}
		for i := k; i < n; i++ {
			idx[k], idx[i] = idx[i], idx[k]
			walk(k + 1)
			idx[k], idx[i] = idx[i], idx[k]
		}
	}
	walk(0)
	return out
}

func TestCommitExactlyOnceInAnyOrder(t *testing.T) {
	perms := permutations(4)
	require.Len(t, perms, 24)

	for _, perm := range perms {
		co, fx, q := centreBoard(t)

		_, err := co.Click(C(1, 1))
		require.NoError(t, err)
		require.Len(t, fx.plays, 4)

		for i, p := range perm {
			fx.plays[p].done()
			if i == 0 {
				state, ok := co.Latch()
				require.True(t, ok, "latch should stay until the last report")
				assert.Equal(t, LatchFired, state)
			}
		}

		events := q.Drain()
		committed := countEvents[MoveCommittedEvent](events)
		require.Len(t, committed, 1, "order %v", perm)
		assert.Equal(t, OutcomeCleared, committed[0].Outcome)
		assert.Equal(t, 1, co.Engine().HistoryLen())
		assert.True(t, co.Engine().IsEmpty())
		assert.Equal(t, 4, fx.idleTotal())
		for _, n := range co.Engine().Neighbors(C(1, 1)) {
			assert.Equal(t, 1, fx.idle[n.Cell])
		}
		assert.False(t, co.InFlight())
	}
}

func TestNeighbourAnimationsPointTowardClick(t *testing.T) {
	co, fx, _ := centreBoard(t)

	_, err := co.BeginMove(C(1, 1))
	require.NoError(t, err)

	want := map[Coord]Dir{
		C(1, 0): DirDown,
		C(0, 1): DirRight,
		C(2, 1): DirLeft,
		C(1, 2): DirUp,
	}
	require.Len(t, fx.plays, len(want))
	for _, p := range fx.plays {
		assert.Equal(t, AnimReduce, p.kind)
		assert.Equal(t, want[p.cell], p.dir, "cell %v", p.cell)
	}
}

func TestDuplicateReportsDoNotEndMoveEarly(t *testing.T) {
	co, fx, q := centreBoard(t)

	_, err := co.Click(C(1, 1))
	require.NoError(t, err)

	fx.plays[0].done()
	fx.plays[0].done()
	fx.plays[0].done()
	assert.True(t, co.InFlight())

	for _, p := range fx.plays[1:] {
		p.done()
	}
	assert.False(t, co.InFlight())
	assert.Len(t, countEvents[MoveCommittedEvent](q.Drain()), 1)
	assert.Equal(t, 1, co.Engine().HistoryLen())
}

func TestWinDetectedOnce(t *testing.T) {
	co, fx, q := centreBoard(t)

	_, err := co.Click(C(1, 1))
	require.NoError(t, err)
	for _, p := range fx.plays {
		p.done()
	}

	var cleared int
	for _, ev := range q.Drain() {
		if c, ok := ev.(MoveCommittedEvent); ok && c.Outcome == OutcomeCleared {
			cleared++
		}
	}
	assert.Equal(t, 1, cleared)
}

func TestLockedOutcome(t *testing.T) {
	e := newTestEngine(t, 3, 1, 7)
	require.NoError(t, e.Restore(Snapshot{Width: 3, Height: 1, Cells: []int{1, 1, 0}}))
	fx := newFakeEffects()
	q := NewEventQueue()
	co := NewCoordinator(e, fx, q)

	_, err := co.Click(C(0, 0))
	require.NoError(t, err)
	require.Len(t, fx.plays, 1)
	fx.plays[0].done()

	committed := countEvents[MoveCommittedEvent](q.Drain())
	require.Len(t, committed, 1)
	assert.Equal(t, OutcomeLocked, committed[0].Outcome)
}

func TestRejectTouchesOnlyZeroNeighbours(t *testing.T) {
	e := newTestEngine(t, 3, 3, 7)
	require.NoError(t, e.Restore(Snapshot{
		Width:  3,
		Height: 3,
		Cells: []int{
			0, 2, 0,
			0, 0, 3,
			0, 1, 0,
		},
	}))
	fx := newFakeEffects()
	q := NewEventQueue()
	co := NewCoordinator(e, fx, q)
	before := e.Snapshot()

	_, err := co.Click(C(1, 1))
	require.ErrorIs(t, err, ErrIllegalMove)

	require.Len(t, fx.plays, 1)
	assert.Equal(t, C(0, 1), fx.plays[0].cell)
	assert.Equal(t, AnimReject, fx.plays[0].kind)
	assert.Equal(t, DirRight, fx.plays[0].dir)

	rejected := countEvents[MoveRejectedEvent](q.Drain())
	require.Len(t, rejected, 1)
	assert.Equal(t, []Coord{C(0, 1)}, rejected[0].Blockers)

	assert.True(t, e.Snapshot().Equal(before), "reject must not change the board")
	assert.False(t, co.InFlight())

	fx.plays[0].done()
	assert.Equal(t, 1, fx.idle[C(0, 1)])
}

func TestInFlightGatesInput(t *testing.T) {
	co, _, _ := centreBoard(t)

	_, err := co.Click(C(1, 1))
	require.NoError(t, err)

	_, err = co.Click(C(0, 0))
	assert.ErrorIs(t, err, ErrMoveInFlight)
	_, err = co.BeginMove(C(1, 1))
	assert.ErrorIs(t, err, ErrMoveInFlight)
	_, err = co.Reject(C(0, 0))
	assert.ErrorIs(t, err, ErrMoveInFlight)
	_, err = co.Undo()
	assert.ErrorIs(t, err, ErrMoveInFlight)
}

func TestClickOutOfBounds(t *testing.T) {
	co, fx, q := centreBoard(t)

	_, err := co.Click(C(-1, 0))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Empty(t, fx.plays)
	assert.Zero(t, q.Len())
}

func TestStaleCallbacksAfterCancel(t *testing.T) {
	co, fx, q := centreBoard(t)

	first, err := co.Click(C(1, 1))
	require.NoError(t, err)
	stale := fx.plays

	co.Cancel()
	assert.False(t, co.InFlight())
	cancelled := countEvents[MoveCancelledEvent](q.Drain())
	require.Len(t, cancelled, 1)
	assert.Equal(t, first, cancelled[0].Move)

	for _, p := range stale {
		p.done()
	}
	assert.Zero(t, q.Len(), "stale reports must not emit anything")
	assert.Zero(t, co.Engine().HistoryLen(), "stale reports must not commit")
	assert.Zero(t, fx.idleTotal())

	fx.plays = nil
	second, err := co.Click(C(1, 1))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// Stale reports arriving mid-move are still ignored.
	for _, p := range stale {
		p.done()
	}
	assert.True(t, co.InFlight())
	assert.Zero(t, co.Engine().HistoryLen())

	for _, p := range fx.plays {
		p.done()
	}
	assert.Len(t, countEvents[MoveCommittedEvent](q.Drain()), 1)
	assert.Equal(t, 1, co.Engine().HistoryLen())
}

func TestEndMoveAfterCommitIsSilent(t *testing.T) {
	co, fx, q := centreBoard(t)

	_, err := co.Click(C(1, 1))
	require.NoError(t, err)
	fx.plays[0].done()
	q.Drain()

	co.EndMove()
	assert.False(t, co.InFlight())
	assert.Empty(t, countEvents[MoveCancelledEvent](q.Drain()))
	assert.Equal(t, 1, co.Engine().HistoryLen())
}

func TestSingleCellBoardCommitsImmediately(t *testing.T) {
	e := newTestEngine(t, 1, 1, 7)
	fx := newFakeEffects()
	q := NewEventQueue()
	co := NewCoordinator(e, fx, q)

	_, err := co.Click(C(0, 0))
	require.NoError(t, err)

	assert.Empty(t, fx.plays)
	assert.False(t, co.InFlight())
	committed := countEvents[MoveCommittedEvent](q.Drain())
	require.Len(t, committed, 1)
	assert.Equal(t, OutcomeCleared, committed[0].Outcome)
	assert.Equal(t, 1, e.HistoryLen())
}

func TestCoordinatorUndo(t *testing.T) {
	co, fx, q := centreBoard(t)

	_, err := co.Undo()
	assert.ErrorIs(t, err, ErrNoHistory)
	assert.Zero(t, q.Len())

	_, err = co.Click(C(1, 1))
	require.NoError(t, err)
	for _, p := range fx.plays {
		p.done()
	}
	q.Drain()

	at, err := co.Undo()
	require.NoError(t, err)
	assert.Equal(t, C(1, 1), at)
	assert.Equal(t, 4, co.Engine().Total())

	undone := countEvents[UndoneEvent](q.Drain())
	require.Len(t, undone, 1)
	assert.NoError(t, undone[0].Err)
}

func TestCommitFailsWhenBoardChangedUnderneath(t *testing.T) {
	co, fx, q := centreBoard(t)

	_, err := co.Click(C(1, 1))
	require.NoError(t, err)

	co.Engine().Reset()
	fx.plays[0].done()

	failed := countEvents[CommitFailedEvent](q.Drain())
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0].Err, ErrIllegalMove)
	assert.Zero(t, co.Engine().HistoryLen())
}
