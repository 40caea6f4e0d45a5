package zombies

import "github.com/vovakirdan/zombie-arena/internal/core"

// Event is a discrete fact produced by a tick or an input call.
// Presentation layers consume events; the simulation never reads them back.
type Event interface{ isEvent() }

type ShotFired struct {
	Origin core.Vec2
	Angle  float64
}

type EnemyHit struct {
	EnemyID int
	At      core.Vec2
	Damage  float64
}

type EnemyKilled struct {
	EnemyID int
	At      core.Vec2
	Award   int
}

type PlayerHurt struct {
	Amount float64
	Health float64
}

type ReloadStarted struct{}

type ReloadFinished struct{}

type EnemySpawned struct {
	EnemyID int
	At      core.Vec2
}

// EntityDropped reports an entity removed after its update failed.
type EntityDropped struct {
	Kind   string
	ID     int
	Reason string
}

type GameOver struct {
	FinalScore int
}

func (ShotFired) isEvent()      {}
func (EnemyHit) isEvent()       {}
func (EnemyKilled) isEvent()    {}
func (PlayerHurt) isEvent()     {}
func (ReloadStarted) isEvent()  {}
func (ReloadFinished) isEvent() {}
func (EnemySpawned) isEvent()   {}
func (EntityDropped) isEvent()  {}
func (GameOver) isEvent()       {}
