package core

import "testing"

func TestInputFrameClearKeepsHeld(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionFire)
	f.Hold(ActionMoveLeft, true)
	f.PointAt(3, 4)

	f.Clear()

	if f.Has(ActionFire) {
		t.Error("Clear should drop one-shot actions")
	}
	if !f.IsHeld(ActionMoveLeft) {
		t.Error("Clear should keep held directions")
	}
	if !f.Pointer.Valid || f.Pointer.X != 3 || f.Pointer.Y != 4 {
		t.Errorf("Clear should keep pointer, got %+v", f.Pointer)
	}
}

func TestInputFrameHoldRelease(t *testing.T) {
	var f InputFrame
	f.Hold(ActionMoveUp, true)
	if !f.IsHeld(ActionMoveUp) {
		t.Fatal("expected MoveUp held")
	}
	f.Hold(ActionMoveUp, false)
	if f.IsHeld(ActionMoveUp) {
		t.Error("expected MoveUp released")
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionReload)
	f.Hold(ActionMoveRight, true)

	c := f.Clone()
	f.Clear()
	f.Hold(ActionMoveRight, false)

	if !c.Has(ActionReload) || !c.IsHeld(ActionMoveRight) {
		t.Error("clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionFire.String() != "Fire" {
		t.Errorf("ActionFire.String() = %q", ActionFire.String())
	}
	if Action(999).String() != "Unknown" {
		t.Error("unknown action should stringify to Unknown")
	}
	if !ActionMoveDown.IsMovement() || ActionFire.IsMovement() {
		t.Error("IsMovement misclassified")
	}
}
