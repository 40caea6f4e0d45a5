package zombies

import (
	"math"

	"github.com/vovakirdan/zombie-arena/internal/core"
)

// Magazine tracks rounds. Rounds always stays within [0, Capacity].
type Magazine struct {
	Rounds   int
	Capacity int
}

// NewMagazine returns a full magazine.
func NewMagazine(capacity int) Magazine {
	capacity = max(capacity, 1)
	return Magazine{Rounds: capacity, Capacity: capacity}
}

// Take removes one round, reporting false when empty.
func (m *Magazine) Take() bool {
	if m.Rounds <= 0 {
		m.Rounds = 0
		return false
	}
	m.Rounds--
	return true
}

// Refill loads the magazine to capacity.
func (m *Magazine) Refill() { m.Rounds = m.Capacity }

// Full reports whether no rounds are missing.
func (m Magazine) Full() bool { return m.Rounds >= m.Capacity }

// Empty reports whether no rounds remain.
func (m Magazine) Empty() bool { return m.Rounds <= 0 }

// Weapon holds the firing parameters of the player's gun.
type Weapon struct {
	ReloadMs     float64
	BulletSpeed  float64
	BulletSize   float64
	MuzzleOffset float64
	Damage       float64
}

// ShotResult is the outcome of a fire request.
type ShotResult int

const (
	ShotOK            ShotResult = iota
	ShotIgnored                  // reloading
	ShotReloadStarted            // empty magazine triggered a reload
)

// Avatar is the player-controlled body. Vel is in units per second and
// Facing is in radians, measured like atan2.
type Avatar struct {
	Body
	Vel               core.Vec2
	Facing            float64
	Reloading         bool
	ReloadRemainingMs float64
}

// NewAvatar places an avatar of the given size at the arena center.
func NewAvatar(arena Arena, size core.Vec2) Avatar {
	pos := arena.Center().Sub(size.Scale(0.5))
	return Avatar{Body: NewBody(pos, size)}
}

// Update integrates velocity, keeps the box inside the arena and advances
// the reload timer. It reports true on the tick a reload completes, at
// which point mag has already been refilled.
func (a *Avatar) Update(dtMs float64, arena Arena, mag *Magazine) bool {
	a.Pos = a.Pos.Add(a.Vel.Scale(dtMs / 1000))
	a.Body = arena.ClampBody(a.Body)

	if !a.Reloading {
		return false
	}
	a.ReloadRemainingMs -= dtMs
	if a.ReloadRemainingMs > 0 {
		return false
	}
	a.Reloading = false
	a.ReloadRemainingMs = 0
	mag.Refill()
	return true
}

// Reload starts the reload timer. It is a no-op while already reloading or
// with a full magazine, and reports whether a reload began.
func (a *Avatar) Reload(mag *Magazine, w Weapon) bool {
	if a.Reloading || mag.Full() {
		return false
	}
	a.Reloading = true
	a.ReloadRemainingMs = w.ReloadMs
	return true
}

// Shoot fires one round along the facing angle. Requests while reloading
// are ignored; an empty magazine starts a reload instead of firing, and the
// shot that spends the last round starts one as well.
func (a *Avatar) Shoot(mag *Magazine, w Weapon) (*Projectile, ShotResult) {
	if a.Reloading {
		return nil, ShotIgnored
	}
	if !mag.Take() {
		a.Reload(mag, w)
		return nil, ShotReloadStarted
	}
	if mag.Empty() {
		a.Reload(mag, w)
	}

	dir := core.FromAngle(a.Facing)
	origin := a.Center().Add(dir.Scale(w.MuzzleOffset))
	return &Projectile{
		Body: NewBody(origin, core.V(w.BulletSize, w.BulletSize)),
		Vel:  dir.Scale(w.BulletSpeed),
	}, ShotOK
}

// Aim turns the avatar toward a world point. Non-finite points are ignored.
func (a *Avatar) Aim(point core.Vec2) {
	d := point.Sub(a.Center())
	if !d.IsFinite() || d.IsZero() {
		return
	}
	a.Facing = math.Atan2(d.Y, d.X)
}

// Steer sets the velocity from held directions so that diagonal movement
// is no faster than movement along a single axis.
func (a *Avatar) Steer(up, down, left, right bool, speed float64) {
	var dir core.Vec2
	if up {
		dir.Y--
	}
	if down {
		dir.Y++
	}
	if left {
		dir.X--
	}
	if right {
		dir.X++
	}
	a.Vel = dir.Normalize().Scale(speed)
}
