package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionClick) {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionClick)
	f.Set(ActionUndo)
	f.AddClick(3, 4)

	if !f.Has(ActionClick) || !f.Has(ActionUndo) {
		t.Error("Set actions should be reported by Has")
	}
	if len(f.Clicks) != 1 || f.Clicks[0] != (Point{X: 3, Y: 4}) {
		t.Errorf("Clicks = %v, expected [{3 4}]", f.Clicks)
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionClick) || len(f.Clicks) != 0 {
		t.Error("Clear should drop actions and clicks")
	}
	if !clone.Has(ActionUndo) || len(clone.Clicks) != 1 {
		t.Error("Clone should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should report nothing")
	}
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) || f.Empty() {
		t.Error("Set on a zero frame should record the action")
	}
	f.Set(Action(200))
	if f.Has(Action(200)) {
		t.Error("out of range actions are ignored")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionClick, "Click"},
		{ActionUndo, "Undo"},
		{ActionLeft, "Left"},
		{Action(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
