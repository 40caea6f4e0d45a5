package zombies

import (
	"strconv"

	"github.com/vovakirdan/zombie-arena/internal/core"
)

// ReloadingLabel replaces the ammo count while a reload is in progress.
const ReloadingLabel = "RELOADING..."

// Pose is the drawable state of one entity.
type Pose struct {
	ID     int
	Pos    core.Vec2
	Size   core.Vec2
	Facing float64
	Health float64 // fraction of max health, enemies only
}

// HUD is the heads-up display content.
type HUD struct {
	Score          int
	HealthFraction float64
	Ammo           string
	Reloading      bool
}

// Snapshot is a read-only copy of the match taken after a tick completes.
type Snapshot struct {
	Phase       Phase
	Avatar      Pose
	Enemies     []Pose
	Projectiles []Pose
	HUD         HUD
	FinalScore  int
	Stats       Stats
	SpawnMs     int
}

// Snapshot copies everything a renderer or test needs.
func (m *MatchState) Snapshot() Snapshot {
	s := Snapshot{
		Phase: m.Phase,
		Avatar: Pose{
			Pos:    m.Avatar.Pos,
			Size:   m.Avatar.Size,
			Facing: m.Avatar.Facing,
			Health: m.healthFraction(),
		},
		Enemies:     make([]Pose, 0, len(m.Enemies)),
		Projectiles: make([]Pose, 0, len(m.Projectiles)),
		HUD: HUD{
			Score:          m.Score,
			HealthFraction: m.healthFraction(),
			Ammo:           strconv.Itoa(m.Mag.Rounds),
			Reloading:      m.Avatar.Reloading,
		},
		FinalScore: m.FinalScore,
		Stats:      m.Stats,
		SpawnMs:    m.Spawner.IntervalMs,
	}
	if m.Avatar.Reloading {
		s.HUD.Ammo = ReloadingLabel
	}
	for _, e := range m.Enemies {
		s.Enemies = append(s.Enemies, Pose{ID: e.ID, Pos: e.Pos, Size: e.Size, Health: e.HealthFraction()})
	}
	for _, p := range m.Projectiles {
		s.Projectiles = append(s.Projectiles, Pose{Pos: p.Pos, Size: p.Size, Facing: p.Vel.Angle()})
	}
	return s
}

func (m *MatchState) healthFraction() float64 {
	if m.MaxHealth <= 0 {
		return 0
	}
	return core.ClampF(m.Health/m.MaxHealth, 0, 1)
}
