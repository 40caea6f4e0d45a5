package zombies

import (
	"math"

	"github.com/vovakirdan/zombie-arena/internal/core"
)

// Projectile is a bullet in flight. Vel is in units per second.
type Projectile struct {
	Body
	Vel core.Vec2
}

// ProjectileOutcome describes what happened to a projectile during one update.
type ProjectileOutcome struct {
	Expired bool
	Hit     *Enemy // enemy struck this update, if any
	Killed  bool   // Hit died and was removed from the live set
}

// maxSubsteps bounds the work of a single update for absurd velocities.
const maxSubsteps = 256

// Update advances the projectile and resolves at most one enemy hit.
//
// The move is split into steps no longer than the bullet plus the smallest
// live enemy, so a long frame cannot carry a bullet past a target. After each
// step a projectile outside the arena expires without touching anything;
// otherwise enemies are scanned once in order and the first overlapping one
// takes damage. A lethal hit removes that enemy from *enemies before Update
// returns. Any contact consumes the projectile.
func (p *Projectile) Update(dtMs float64, arena Arena, enemies *[]*Enemy, damage float64) ProjectileOutcome {
	move := p.Vel.Scale(dtMs / 1000)
	steps := p.substeps(move.Len(), *enemies)
	inc := move.Scale(1 / float64(steps))

	for range steps {
		p.Pos = p.Pos.Add(inc)
		if !arena.Contains(p.Pos) {
			return ProjectileOutcome{Expired: true}
		}
		if out, ok := p.strike(enemies, damage); ok {
			return out
		}
	}
	return ProjectileOutcome{}
}

func (p *Projectile) substeps(dist float64, enemies []*Enemy) int {
	if len(enemies) == 0 || !(dist > 0) || math.IsInf(dist, 0) {
		return 1
	}
	smallest := math.Inf(1)
	for _, e := range enemies {
		smallest = min(smallest, e.Size.X, e.Size.Y)
	}
	reach := min(p.Size.X, p.Size.Y) + smallest
	if !(reach > 0) {
		return 1
	}
	return min(maxSubsteps, max(1, int(math.Ceil(dist/reach))))
}

func (p *Projectile) strike(enemies *[]*Enemy, damage float64) (ProjectileOutcome, bool) {
	live := *enemies
	for i, e := range live {
		if !p.Intersects(e.Body) {
			continue
		}
		out := ProjectileOutcome{Expired: true, Hit: e}
		if e.TakeDamage(damage) {
			out.Killed = true
			*enemies = append(live[:i], live[i+1:]...)
		}
		return out, true
	}
	return ProjectileOutcome{}, false
}
