package zombies

import "github.com/vovakirdan/zombie-arena/internal/core"

// Enemy is a zombie pursuing the player. Speed is in units per second and
// stays constant for the lifetime of the instance.
type Enemy struct {
	ID int
	Body
	Speed     float64
	Health    float64
	MaxHealth float64
}

// NewEnemy creates an enemy at pos with full health.
func NewEnemy(id int, pos, size core.Vec2, speed, health float64) *Enemy {
	return &Enemy{
		ID:        id,
		Body:      NewBody(pos, size),
		Speed:     speed,
		Health:    health,
		MaxHealth: health,
	}
}

// Update moves the enemy toward the target's center and reports whether
// the two boxes overlap after the move.
func (e *Enemy) Update(dtMs float64, target Body) bool {
	dir := target.Center().Sub(e.Center()).Normalize()
	e.Pos = e.Pos.Add(dir.Scale(e.Speed * dtMs / 1000))
	return e.Intersects(target)
}

// TakeDamage subtracts amount from health and reports whether the enemy died.
// Non-positive amounts are ignored.
func (e *Enemy) TakeDamage(amount float64) bool {
	if amount > 0 {
		e.Health -= amount
	}
	return e.Dead()
}

// Dead reports whether health has reached zero.
func (e *Enemy) Dead() bool {
	return e.Health <= 0
}

// HealthFraction returns remaining health in [0, 1].
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return core.ClampF(e.Health/e.MaxHealth, 0, 1)
}
