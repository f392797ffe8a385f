package clicko

import (
	"testing"

	"github.com/vovakirdan/clicko/internal/games/clicko/core"
)

func newTestAnimator() *Animator {
	return NewAnimator(map[core.AnimKind]int{
		core.AnimReduce: 2,
		core.AnimReject: 3,
	})
}

func TestAnimatorFinishesInStartOrder(t *testing.T) {
	a := newTestAnimator()

	var got []core.Coord
	for _, c := range []core.Coord{core.C(2, 0), core.C(0, 0), core.C(1, 0)} {
		c := c
		a.PlayOneShot(c, core.AnimReduce, core.DirLeft, func() {
			got = append(got, c)
		})
	}

	a.Tick()
	if len(got) != 0 {
		t.Fatalf("callbacks after 1 tick = %v, want none", got)
	}
	a.Tick()

	want := []core.Coord{core.C(2, 0), core.C(0, 0), core.C(1, 0)}
	if len(got) != len(want) {
		t.Fatalf("callbacks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("callback %d = %v, want %v", i, got[i], want[i])
		}
	}
	if a.Len() != 0 {
		t.Errorf("Len() = %d after finishing, want 0", a.Len())
	}

	a.Tick()
	if len(got) != len(want) {
		t.Errorf("callbacks ran again: %v", got)
	}
}

func TestAnimatorLengthPerKind(t *testing.T) {
	a := newTestAnimator()

	reduced, rejected := 0, 0
	a.PlayOneShot(core.C(0, 0), core.AnimReduce, core.DirUp, func() { reduced++ })
	a.PlayOneShot(core.C(1, 0), core.AnimReject, core.DirUp, func() { rejected++ })

	a.Tick()
	a.Tick()
	if reduced != 1 || rejected != 0 {
		t.Fatalf("after 2 ticks reduced=%d rejected=%d, want 1 and 0", reduced, rejected)
	}
	a.Tick()
	if rejected != 1 {
		t.Errorf("after 3 ticks rejected=%d, want 1", rejected)
	}
}

func TestAnimatorReplaceDropsOldCallback(t *testing.T) {
	a := newTestAnimator()
	cell := core.C(1, 1)

	first, second := 0, 0
	h1 := a.PlayOneShot(cell, core.AnimReduce, core.DirUp, func() { first++ })
	h2 := a.PlayOneShot(cell, core.AnimReject, core.DirDown, func() { second++ })
	if h1 == h2 {
		t.Fatalf("handles should differ, both %d", h1)
	}
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 animation per cell", a.Len())
	}

	an, ok := a.At(cell)
	if !ok || an.Kind != core.AnimReject || an.Dir != core.DirDown {
		t.Fatalf("At(%v) = %+v, %v; want the reject animation", cell, an, ok)
	}

	for i := 0; i < 5; i++ {
		a.Tick()
	}
	if first != 0 || second != 1 {
		t.Errorf("first=%d second=%d, want 0 and 1", first, second)
	}
}

func TestAnimatorResetToIdleAndClear(t *testing.T) {
	a := newTestAnimator()

	calls := 0
	a.PlayOneShot(core.C(0, 0), core.AnimReduce, core.DirUp, func() { calls++ })
	a.PlayOneShot(core.C(1, 0), core.AnimReduce, core.DirUp, func() { calls++ })
	a.PlayOneShot(core.C(2, 0), core.AnimReduce, core.DirUp, func() { calls++ })

	a.ResetToIdle(core.C(1, 0))
	if _, ok := a.At(core.C(1, 0)); ok {
		t.Error("cell should be idle after ResetToIdle")
	}
	a.ResetToIdle(core.C(5, 5)) // idle cell

	a.Clear()
	for i := 0; i < 3; i++ {
		a.Tick()
	}
	if calls != 0 {
		t.Errorf("dropped animations reported %d completions, want 0", calls)
	}
}

func TestAnimatorCallbackMayStartAnimation(t *testing.T) {
	a := newTestAnimator()
	cell := core.C(0, 0)

	chained := false
	a.PlayOneShot(cell, core.AnimReduce, core.DirUp, func() {
		a.ResetToIdle(cell)
		a.PlayOneShot(cell, core.AnimReduce, core.DirDown, func() { chained = true })
	})

	a.Tick()
	a.Tick()
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want the chained animation", a.Len())
	}
	a.Tick()
	a.Tick()
	if !chained {
		t.Error("chained animation did not finish")
	}
}

func TestAnimationProgress(t *testing.T) {
	a := newTestAnimator()
	a.PlayOneShot(core.C(0, 0), core.AnimReject, core.DirUp, nil)
	a.Tick()

	an, ok := a.At(core.C(0, 0))
	if !ok {
		t.Fatal("animation missing")
	}
	if got := an.Progress(); got < 0.33 || got > 0.34 {
		t.Errorf("Progress() = %v, want 1/3", got)
	}
	if got := (Animation{}).Progress(); got != 1 {
		t.Errorf("zero-length Progress() = %v, want 1", got)
	}
}
