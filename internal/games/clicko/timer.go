package clicko

import "fmt"

// LevelTimer measures the time spent on a level in simulation ticks.
// Undo penalties are added as whole seconds.
type LevelTimer struct {
	tickRate int
	ticks    int
	penalty  int
	running  bool
}

// NewLevelTimer creates a stopped timer for the given tick rate.
func NewLevelTimer(tickRate int) *LevelTimer {
	if tickRate < 1 {
		tickRate = 60
	}
	return &LevelTimer{tickRate: tickRate}
}

// Reset zeroes the timer and stops it.
func (t *LevelTimer) Reset() {
	t.ticks = 0
	t.penalty = 0
	t.running = false
}

// Start resumes counting.
func (t *LevelTimer) Start() { t.running = true }

// Stop freezes the timer.
func (t *LevelTimer) Stop() { t.running = false }

// Running reports whether Tick advances the timer.
func (t *LevelTimer) Running() bool { return t.running }

// Tick counts one simulation tick while running.
func (t *LevelTimer) Tick() {
	if t.running {
		t.ticks++
	}
}

// AddPenalty adds whole seconds, running or not.
func (t *LevelTimer) AddPenalty(seconds int) {
	if seconds > 0 {
		t.penalty += seconds
	}
}

// Seconds returns elapsed whole seconds including penalties.
func (t *LevelTimer) Seconds() int {
	return t.ticks/t.tickRate + t.penalty
}

// SetSeconds restores a previously measured time, e.g. from a saved game.
func (t *LevelTimer) SetSeconds(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	t.ticks = seconds * t.tickRate
	t.penalty = 0
}

// Format returns the elapsed time as MM:SS.
func (t *LevelTimer) Format() string {
	return FormatSeconds(t.Seconds())
}

// FormatSeconds renders seconds as MM:SS. Minutes are not capped.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatBest renders a best time, or "--:--" when there is none.
func FormatBest(seconds int, ok bool) string {
	if !ok {
		return "--:--"
	}
	return FormatSeconds(seconds)
}
