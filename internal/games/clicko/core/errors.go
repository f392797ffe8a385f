package core

import "errors"

var (
	// ErrIllegalMove is returned when a reduction or addition breaks the rules:
	// a neighbour is zero (reduce) or already at the maximum value (add).
	ErrIllegalMove = errors.New("illegal move")

	// ErrOutOfBounds is returned for coordinates outside the board.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrNoHistory is returned by Undo when there is nothing to undo.
	ErrNoHistory = errors.New("no history to undo")

	// ErrMoveInFlight is returned when a move is requested while the previous
	// move's animations are still running.
	ErrMoveInFlight = errors.New("move already in flight")

	// ErrInvalidSnapshot is returned by Restore for malformed snapshots.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
