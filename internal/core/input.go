package core

// Action is a semantic input, decoupled from the key that produced it.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left, A, H
	ActionRight           // Right, D, L
	ActionRotate          // Up, W, X, K
	ActionSoftDrop        // Down, S, J
	ActionHardDrop        // Space
	ActionHold            // C, Shift+Tab
	ActionPause           // P, Escape
	ActionNewGame         // N
	ActionRestart         // R
	ActionConfirm         // Enter
	ActionBack            // B
	ActionQuit            // Q, Ctrl+C
)

var actionNames = [...]string{
	ActionNone:     "None",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionRotate:   "Rotate",
	ActionSoftDrop: "SoftDrop",
	ActionHardDrop: "HardDrop",
	ActionHold:     "Hold",
	ActionPause:    "Pause",
	ActionNewGame:  "NewGame",
	ActionRestart:  "Restart",
	ActionConfirm:  "Confirm",
	ActionBack:     "Back",
	ActionQuit:     "Quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame collects the actions triggered during one simulation tick.
// A frame is a set: pressing the same key twice in one tick counts once.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone returns an independent copy.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	return c
}
