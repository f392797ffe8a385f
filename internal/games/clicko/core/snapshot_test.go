package core

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	e := newTestEngine(t, 5, 4, 7)
	e.Generate(10, rand.New(rand.NewSource(3)))
	for y := 0; y < e.Height(); y++ {
		for x := 0; x < e.Width(); x++ {
			if e.CanReduce(C(x, y)) {
				mustNoErr(t, e.Reduce(C(x, y)))
			}
		}
	}
	snap := e.Snapshot()

	other := newTestEngine(t, 5, 4, 7)
	if err := other.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !other.Snapshot().Equal(snap) {
		t.Error("restored engine differs from snapshot")
	}

	// Mutating the snapshot must not leak into the engine.
	if len(snap.Cells) > 0 {
		snap.Cells[0] = 99
		if other.Value(C(0, 0)) == 99 {
			t.Error("engine shares cell storage with the snapshot")
		}
	}
}

func TestRestoreRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"wrong size", Snapshot{Width: 3, Height: 2, Cells: make([]int, 6)}},
		{"short cells", Snapshot{Width: 2, Height: 2, Cells: []int{0, 0, 0}}},
		{"negative cell", Snapshot{Width: 2, Height: 2, Cells: []int{0, -1, 0, 0}}},
		{"over max", Snapshot{Width: 2, Height: 2, Cells: []int{0, 8, 0, 0}}},
		{"history off board", Snapshot{Width: 2, Height: 2, Cells: make([]int, 4), History: []Coord{C(2, 0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 2, 2, 7)
			mustNoErr(t, e.Add(C(0, 0)))
			before := e.Snapshot()

			err := e.Restore(tt.snap)
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("Restore: got %v, want ErrInvalidSnapshot", err)
			}
			if !e.Snapshot().Equal(before) {
				t.Error("failed Restore modified the engine")
			}
		})
	}
}

func TestSnapshotEqual(t *testing.T) {
	a := Snapshot{Width: 2, Height: 1, Cells: []int{1, 0}, History: []Coord{C(1, 0)}}
	b := Snapshot{Width: 2, Height: 1, Cells: []int{1, 0}, History: []Coord{C(1, 0)}}
	if !a.Equal(b) {
		t.Error("identical snapshots should be equal")
	}
	b.History = nil
	if a.Equal(b) {
		t.Error("different history should not be equal")
	}
	b = Snapshot{Width: 2, Height: 1, Cells: []int{0, 1}, History: a.History}
	if a.Equal(b) {
		t.Error("different cells should not be equal")
	}
}
