package zombies

import (
	"testing"

	"github.com/vovakirdan/zombie-arena/internal/core"
)

func TestEffectsLifetimes(t *testing.T) {
	fx := NewEffects()
	fx.Apply(0, []Event{
		EnemyHit{EnemyID: 1, At: core.V(10, 10), Damage: 50},
		ShotFired{Origin: core.V(5, 5)},
	})
	if len(fx.Decals()) != 2 {
		t.Fatalf("decals = %d, expected 2", len(fx.Decals()))
	}

	fx.Apply(MuzzleTTLMs, nil)
	if got := fx.Decals(); len(got) != 1 || got[0].Kind != DecalBlood {
		t.Errorf("after %dms expected only blood, got %+v", MuzzleTTLMs, got)
	}

	fx.Apply(BloodTTLMs, nil)
	if len(fx.Decals()) != 0 {
		t.Errorf("after %dms expected no decals, got %+v", BloodTTLMs, fx.Decals())
	}
}

func TestEffectsShake(t *testing.T) {
	fx := NewEffects()
	if fx.ShakeOffset(0) != 0 {
		t.Error("no shake before game over")
	}

	fx.Apply(1000, []Event{GameOver{FinalScore: 10}})
	want := map[float64]int{1000: -1, 1150: 1, 1250: -1, 1350: 1, 1450: 0}
	for now, off := range want {
		if got := fx.ShakeOffset(now); got != off {
			t.Errorf("ShakeOffset(%v) = %d, expected %d", now, got, off)
		}
	}

	fx.Apply(1000+ShakeTTLMs, nil)
	if fx.ShakeOffset(1000+ShakeTTLMs) != 0 {
		t.Error("shake should settle")
	}
}

func TestDecalProgress(t *testing.T) {
	d := Decal{BornMs: 100, TTLMs: 200}
	if d.Progress(100) != 0 || d.Progress(200) != 0.5 || d.Progress(1000) != 1 {
		t.Error("unexpected progress values")
	}
}
