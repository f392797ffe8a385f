package clicko

import (
	"github.com/vovakirdan/clicko/internal/games/clicko/core"
)

// Animation is one playing one-shot effect on a board cell.
type Animation struct {
	Handle core.Handle
	Cell   core.Coord
	Kind   core.AnimKind
	Dir    core.Dir
	Frame  int
	Length int

	done func()
}

// Progress returns how far the animation is, in [0, 1].
func (a Animation) Progress() float64 {
	if a.Length <= 0 {
		return 1
	}
	return float64(a.Frame) / float64(a.Length)
}

// Animator plays frame-counted one-shot animations and implements
// core.Effects. At most one animation runs per cell; starting another one
// on the same cell drops the old one without calling its done.
type Animator struct {
	lengths map[core.AnimKind]int
	active  []*Animation // start order
	next    core.Handle
}

// NewAnimator creates an animator with the given length in ticks per kind.
// Kinds without a length finish on their first tick.
func NewAnimator(lengths map[core.AnimKind]int) *Animator {
	l := make(map[core.AnimKind]int, len(lengths))
	for k, v := range lengths {
		l[k] = v
	}
	return &Animator{lengths: l}
}

// PlayOneShot starts an animation on cell. done is invoked exactly once,
// from Tick, when the animation completes.
func (a *Animator) PlayOneShot(cell core.Coord, kind core.AnimKind, dir core.Dir, done func()) core.Handle {
	a.drop(cell)

	length := a.lengths[kind]
	if length < 1 {
		length = 1
	}
	a.next++
	a.active = append(a.active, &Animation{
		Handle: a.next,
		Cell:   cell,
		Kind:   kind,
		Dir:    dir,
		Length: length,
		done:   done,
	})
	return a.next
}

// ResetToIdle stops whatever cell is playing. A dropped animation never
// reports completion.
func (a *Animator) ResetToIdle(cell core.Coord) {
	a.drop(cell)
}

// Tick advances every animation by one frame. Finished animations are
// removed first, then their callbacks run in start order, so a callback may
// safely start or stop other animations.
func (a *Animator) Tick() {
	if len(a.active) == 0 {
		return
	}

	var finished []*Animation
	kept := a.active[:0]
	for _, an := range a.active {
		an.Frame++
		if an.Frame >= an.Length {
			finished = append(finished, an)
			continue
		}
		kept = append(kept, an)
	}
	for i := len(kept); i < len(a.active); i++ {
		a.active[i] = nil
	}
	a.active = kept

	for _, an := range finished {
		if an.done != nil {
			done := an.done
			an.done = nil
			done()
		}
	}
}

// Clear drops every animation without calling any callback.
func (a *Animator) Clear() {
	a.active = nil
}

// At returns the animation playing on cell, if any.
func (a *Animator) At(cell core.Coord) (Animation, bool) {
	for _, an := range a.active {
		if an.Cell == cell {
			return *an, true
		}
	}
	return Animation{}, false
}

// Len returns the number of playing animations.
func (a *Animator) Len() int {
	return len(a.active)
}

func (a *Animator) drop(cell core.Coord) {
	for i, an := range a.active {
		if an.Cell == cell {
			a.active = append(a.active[:i], a.active[i+1:]...)
			return
		}
	}
}
