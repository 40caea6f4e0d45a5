package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zombie-arena/internal/core"
)

// DefaultHoldWindow is how long a direction stays held after its last key
// event. Terminals report presses and auto-repeats but never releases.
const DefaultHoldWindow = 250 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionMoveUp, false
	case "s", "down":
		return core.ActionMoveDown, false
	case "a", "left":
		return core.ActionMoveLeft, false
	case "d", "right":
		return core.ActionMoveRight, false
	case " ":
		return core.ActionFire, false
	case "r":
		return core.ActionReload, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	}

	return core.ActionNone, false
}

// MapMouse records pointer motion and turns a left press into a shot.
// Returns true if the event changed the frame.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, frame *core.InputFrame) bool {
	switch msg.Action {
	case tea.MouseActionMotion:
		frame.PointAt(msg.X, msg.Y)
		return true
	case tea.MouseActionPress:
		frame.PointAt(msg.X, msg.Y)
		if msg.Button == tea.MouseButtonLeft {
			frame.Set(core.ActionFire)
		}
		return true
	}
	return false
}

// HoldTracker emulates held movement keys from press events.
type HoldTracker struct {
	window time.Duration
	last   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. A non-positive window uses DefaultHoldWindow.
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{window: window, last: make(map[core.Action]time.Time)}
}

var opposite = map[core.Action]core.Action{
	core.ActionMoveUp:    core.ActionMoveDown,
	core.ActionMoveDown:  core.ActionMoveUp,
	core.ActionMoveLeft:  core.ActionMoveRight,
	core.ActionMoveRight: core.ActionMoveLeft,
}

// Press records a key event for a movement action. Pressing a direction
// releases its opposite immediately.
func (h *HoldTracker) Press(a core.Action, at time.Time) {
	if !a.IsMovement() {
		return
	}
	h.last[a] = at
	delete(h.last, opposite[a])
}

// Apply writes the directions held at now into frame.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for _, a := range []core.Action{core.ActionMoveUp, core.ActionMoveDown, core.ActionMoveLeft, core.ActionMoveRight} {
		at, ok := h.last[a]
		down := ok && now.Sub(at) < h.window
		if ok && !down {
			delete(h.last, a)
		}
		frame.Hold(a, down)
	}
}

// Reset releases every direction.
func (h *HoldTracker) Reset() {
	clear(h.last)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
