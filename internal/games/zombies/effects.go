package zombies

import "github.com/vovakirdan/zombie-arena/internal/core"

// Effect durations in milliseconds.
const (
	BloodTTLMs  = 500
	MuzzleTTLMs = 200
	ShakeTTLMs  = 500
	shakeStepMs = 100
)

// DecalKind identifies a transient visual.
type DecalKind int

const (
	DecalBlood DecalKind = iota
	DecalMuzzle
)

// Decal is a short-lived mark at a world position.
type Decal struct {
	Kind   DecalKind
	At     core.Vec2
	BornMs float64
	TTLMs  float64
}

// Progress returns how far through its lifetime the decal is, in [0, 1].
func (d Decal) Progress(nowMs float64) float64 {
	if d.TTLMs <= 0 {
		return 1
	}
	return core.ClampF((nowMs-d.BornMs)/d.TTLMs, 0, 1)
}

// Effects turns simulation events into transient visuals. It only reads
// events and never touches the match.
type Effects struct {
	decals     []Decal
	shakeStart float64
	shaking    bool
}

// NewEffects creates an empty effect layer.
func NewEffects() *Effects {
	return &Effects{}
}

// Apply records visuals for the given events and expires old ones.
func (fx *Effects) Apply(nowMs float64, events []Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case EnemyHit:
			fx.decals = append(fx.decals, Decal{Kind: DecalBlood, At: e.At, BornMs: nowMs, TTLMs: BloodTTLMs})
		case ShotFired:
			fx.decals = append(fx.decals, Decal{Kind: DecalMuzzle, At: e.Origin, BornMs: nowMs, TTLMs: MuzzleTTLMs})
		case GameOver:
			fx.shaking = true
			fx.shakeStart = nowMs
		}
	}
	fx.expire(nowMs)
}

func (fx *Effects) expire(nowMs float64) {
	live := fx.decals[:0]
	for _, d := range fx.decals {
		if nowMs-d.BornMs < d.TTLMs {
			live = append(live, d)
		}
	}
	clear(fx.decals[len(live):])
	fx.decals = live

	if fx.shaking && nowMs-fx.shakeStart >= ShakeTTLMs {
		fx.shaking = false
	}
}

// Decals returns the live decals.
func (fx *Effects) Decals() []Decal {
	return fx.decals
}

// ShakeOffset returns the horizontal screen offset in cells: it alternates
// left and right every 100 ms and settles at zero.
func (fx *Effects) ShakeOffset(nowMs float64) int {
	if !fx.shaking {
		return 0
	}
	step := int((nowMs - fx.shakeStart) / shakeStepMs)
	switch {
	case step < 0 || step >= ShakeTTLMs/shakeStepMs-1:
		return 0
	case step%2 == 0:
		return -1
	default:
		return 1
	}
}

// Reset drops every effect.
func (fx *Effects) Reset() {
	fx.decals = nil
	fx.shaking = false
}
