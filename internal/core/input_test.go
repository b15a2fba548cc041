package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionLeft)
	f.Set(ActionHardDrop)
	if !f.Has(ActionLeft) || !f.Has(ActionHardDrop) || f.Has(ActionRotate) {
		t.Errorf("unexpected frame contents: %v", f.Actions)
	}
	if len(f.Actions) != 2 {
		t.Errorf("frame holds %d actions, expected 2", len(f.Actions))
	}

	c := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
	if !c.Has(ActionLeft) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionPause) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionPause)
	if !zero.Has(ActionPause) {
		t.Error("Set on a zero frame should work")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:     "None",
		ActionSoftDrop: "SoftDrop",
		ActionHold:     "Hold",
		ActionQuit:     "Quit",
		Action(99):     "Unknown",
		Action(-1):     "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}
