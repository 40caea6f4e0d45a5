package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveUp           // W, Up arrow
	ActionMoveDown         // S, Down arrow
	ActionMoveLeft         // A, Left arrow
	ActionMoveRight        // D, Right arrow
	ActionFire             // Left mouse button, Space
	ActionReload           // R
	ActionConfirm          // Enter
	ActionBack             // B, Escape
	ActionRestart          // Enter after game over
	ActionQuit             // Q, Ctrl+C
	ActionPause            // P
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionMoveUp:    "MoveUp",
	ActionMoveDown:  "MoveDown",
	ActionMoveLeft:  "MoveLeft",
	ActionMoveRight: "MoveRight",
	ActionFire:      "Fire",
	ActionReload:    "Reload",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// IsMovement reports whether the action is one of the four held directions.
func (a Action) IsMovement() bool {
	return a >= ActionMoveUp && a <= ActionMoveRight
}

// Pointer is the last known pointer position in screen cells.
type Pointer struct {
	X, Y  int
	Valid bool
}

// InputFrame is the input state sampled for one simulation tick.
//
// Actions holds discrete triggers (fire, reload, pause) raised since the
// previous tick. Held holds the movement directions currently held down.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
	Pointer Pointer

	// At is the host timestamp of this tick. Zero means the game should
	// assume one nominal frame interval has elapsed.
	At time.Time
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Hold marks a movement direction as held (or released).
func (f *InputFrame) Hold(a Action, down bool) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	if down {
		f.Held[a] = true
		return
	}
	delete(f.Held, a)
}

// IsHeld returns true if the direction is held down this frame.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a]
}

// PointAt records the pointer position in screen cells.
func (f *InputFrame) PointAt(x, y int) {
	f.Pointer = Pointer{X: x, Y: y, Valid: true}
}

// Clear resets the one-shot actions for the next frame.
// Held directions and the pointer persist until the host changes them.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a deep copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	clone.Pointer = f.Pointer
	clone.At = f.At
	return clone
}
