package zombies

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
	"github.com/vovakirdan/zombie-arena/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultZombiesConfig(), quietLogger())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5})
	return g
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("zombies not registered")
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Zombie Arena" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestStepUsesHostTimestamps(t *testing.T) {
	g := newTestGame(t)
	base := time.Unix(1700000000, 0)

	in := core.NewInputFrame()
	in.At = base
	g.Step(in) // first frame: one nominal interval
	in.At = base.Add(50 * time.Millisecond)
	g.Step(in)

	want := 1000.0/60 + 50
	if !approxEqual(g.clockMs, want, 1e-3) {
		t.Errorf("clock = %v, expected %v", g.clockMs, want)
	}
}

func TestStepHeldMovement(t *testing.T) {
	g := newTestGame(t)
	start := g.Match().Avatar.Pos

	in := core.NewInputFrame()
	in.Hold(core.ActionMoveLeft, true)
	for i := 0; i < 10; i++ {
		g.Step(in)
	}
	if g.Match().Avatar.Pos.X >= start.X {
		t.Error("holding left should move the avatar left")
	}
}

func TestStepPointerAimsAndFires(t *testing.T) {
	g := newTestGame(t)

	in := core.NewInputFrame()
	// Top-left interior cell is up and to the left of the avatar.
	in.PointAt(1, 2)
	in.Set(core.ActionFire)
	res := g.Step(in)

	if res.State.GameOver {
		t.Fatal("unexpected game over")
	}
	facing := g.Match().Avatar.Facing
	if facing >= -math.Pi/2 || facing <= -math.Pi {
		t.Errorf("facing %v should point up-left", facing)
	}
	if g.Match().Stats.ShotsFired != 1 {
		t.Errorf("shots = %d", g.Match().Stats.ShotsFired)
	}
	var muzzle int
	for _, d := range g.effects.Decals() {
		if d.Kind == DecalMuzzle {
			muzzle++
		}
	}
	if muzzle != 1 {
		t.Errorf("muzzle decals = %d, expected 1", muzzle)
	}
}

func TestStepPauseToggle(t *testing.T) {
	g := newTestGame(t)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	if !g.Step(in).State.Paused {
		t.Fatal("expected paused")
	}
	if g.Step(in).State.Paused {
		t.Error("second pause press should resume")
	}
}

func TestStepRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t)
	g.Match().Health = 0
	g.Match().Score = 40
	g.Step(core.NewInputFrame())
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("restart failed: %+v", g.State())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	g.Step(in)

	dst := core.NewScreen(80, 24)
	g.Render(dst)

	hud := dst.Row(0)
	if !strings.Contains(hud, "Score: 0") || !strings.Contains(hud, "Ammo: 29") {
		t.Errorf("HUD row = %q", hud)
	}
	if !strings.Contains(dst.String(), "@") {
		t.Error("avatar not drawn")
	}
	if dst.Get(0, 1) != '┌' {
		t.Errorf("arena border missing, got %q", dst.Get(0, 1))
	}
}

func TestResetStartsRunningWithoutOverlay(t *testing.T) {
	g := newTestGame(t)
	if g.Match().Phase != PhaseRunning {
		t.Fatalf("phase after Reset = %v, expected running", g.Match().Phase)
	}

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	out := dst.String()
	for _, overlay := range []string{"PAUSED", "GAME OVER", "Press"} {
		if strings.Contains(out, overlay) {
			t.Errorf("running match shows %q overlay:\n%s", overlay, out)
		}
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t)
	g.Match().Score = 70
	g.Match().Health = 0
	g.Step(core.NewInputFrame())

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	out := dst.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Final score: 70") {
		t.Errorf("game over overlay missing:\n%s", out)
	}

	small := core.NewScreen(10, 4)
	g.Render(small)
	if !strings.Contains(small.String(), "too") {
		t.Error("expected too-small notice")
	}
}

func TestFacingGlyph(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '→'},
		{3.14159 / 2, '↓'},
		{-3.14159 / 2, '↑'},
		{3.14159, '←'},
		{-3.14159 * 3 / 4, '↖'},
	}
	for _, tt := range tests {
		if got := facingGlyph(tt.angle); got != tt.want {
			t.Errorf("facingGlyph(%v) = %q, expected %q", tt.angle, got, tt.want)
		}
	}
}
