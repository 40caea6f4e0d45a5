package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zombie-arena/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")}, core.ActionMoveUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionMoveDown, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, core.ActionMoveLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionFire, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, core.ActionReload, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouse(tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionMotion}, &frame)
	if !frame.Pointer.Valid || frame.Pointer.X != 4 || frame.Pointer.Y != 7 {
		t.Errorf("pointer = %+v, want (4,7)", frame.Pointer)
	}
	if frame.Has(core.ActionFire) {
		t.Error("motion should not fire")
	}

	km.MapMouse(tea.MouseMsg{X: 5, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if !frame.Has(core.ActionFire) {
		t.Error("left press should fire")
	}

	frame.Clear()
	km.MapMouse(tea.MouseMsg{X: 5, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)
	if frame.Has(core.ActionFire) {
		t.Error("right press should not fire")
	}
}

func TestHoldTracker(t *testing.T) {
	start := time.Unix(1000, 0)
	h := NewHoldTracker(200 * time.Millisecond)
	frame := core.NewInputFrame()

	h.Press(core.ActionMoveLeft, start)
	h.Apply(&frame, start.Add(100*time.Millisecond))
	if !frame.IsHeld(core.ActionMoveLeft) {
		t.Error("left should be held inside the window")
	}

	// Auto-repeat extends the hold.
	h.Press(core.ActionMoveLeft, start.Add(150*time.Millisecond))
	h.Apply(&frame, start.Add(300*time.Millisecond))
	if !frame.IsHeld(core.ActionMoveLeft) {
		t.Error("repeat should extend the hold")
	}

	h.Apply(&frame, start.Add(400*time.Millisecond))
	if frame.IsHeld(core.ActionMoveLeft) {
		t.Error("left should release after the window")
	}
}

func TestHoldTrackerOppositeReleases(t *testing.T) {
	now := time.Unix(1000, 0)
	h := NewHoldTracker(0)
	frame := core.NewInputFrame()

	h.Press(core.ActionMoveUp, now)
	h.Press(core.ActionMoveLeft, now)
	h.Press(core.ActionMoveDown, now)
	h.Apply(&frame, now)

	if frame.IsHeld(core.ActionMoveUp) {
		t.Error("down should release up")
	}
	if !frame.IsHeld(core.ActionMoveDown) || !frame.IsHeld(core.ActionMoveLeft) {
		t.Errorf("expected down+left held, got %v", frame.Held)
	}

	h.Press(core.ActionFire, now)
	h.Reset()
	h.Apply(&frame, now)
	if len(frame.Held) != 0 {
		t.Errorf("reset should release all, got %v", frame.Held)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
