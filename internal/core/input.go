package core

// Action is a semantic game action, abstracted from physical key presses.
type Action uint8

const (
	ActionNone    Action = iota
	ActionUp             // Move the cursor up
	ActionDown           // Move the cursor down
	ActionLeft           // Move the cursor left
	ActionRight          // Move the cursor right
	ActionClick          // Reduce the cell under the cursor
	ActionUndo           // Undo the last reduction
	ActionConfirm        // Dismiss the level-complete overlay
	ActionRestart        // Regenerate the current level
	ActionQuit           // Leave the game
	ActionPause          // Toggle pause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Click",
	"Undo", "Confirm", "Restart", "Quit", "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// Point is a position in screen characters.
type Point struct {
	X, Y int
}

// InputFrame is the input collected during one simulation tick: the
// actions triggered plus any mouse clicks, in screen coordinates.
// The zero value is an empty frame.
type InputFrame struct {
	actions uint16 // Bit per Action
	Clicks  []Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a < actionCount {
		f.actions |= 1 << a
	}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.actions&(1<<a) != 0
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return f.actions == 0 && len(f.Clicks) == 0
}

// AddClick records a mouse click at screen position (x, y).
func (f *InputFrame) AddClick(x, y int) {
	f.Clicks = append(f.Clicks, Point{X: x, Y: y})
}

// Clear resets all actions and clicks for the next frame.
func (f *InputFrame) Clear() {
	f.actions = 0
	f.Clicks = f.Clicks[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{actions: f.actions}
	if len(f.Clicks) > 0 {
		clone.Clicks = append([]Point(nil), f.Clicks...)
	}
	return clone
}
