package zombies

import (
	"math/rand"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
)

// Edge identifies the arena side an enemy enters from.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Spawner releases one enemy each time the spawn interval elapses and then
// shortens the interval down to the schedule's floor.
type Spawner struct {
	IntervalMs  int
	LastSpawnMs float64

	schedule  config.SpawnSchedule
	settings  config.DifficultySettings
	arena     Arena
	enemySize core.Vec2
	margin    float64

	rng      *rand.Rand
	rngCalls uint64
}

// NewSpawner builds a spawner from the match configuration.
func NewSpawner(cfg config.ZombiesConfig, seed int64) *Spawner {
	s := &Spawner{
		schedule:  cfg.Schedule(),
		settings:  cfg.Difficulty.Clone(),
		arena:     Arena{W: cfg.Arena.Width, H: cfg.Arena.Height},
		enemySize: core.V(cfg.Enemies.Width, cfg.Enemies.Height),
		margin:    cfg.Enemies.SpawnMargin,
	}
	s.Reset(0, seed)
	return s
}

// Reset restores the initial interval, reseeds the RNG and starts the timer at now.
func (s *Spawner) Reset(nowMs float64, seed int64) {
	if seed == 0 {
		seed = 1
	}
	s.rng = rand.New(rand.NewSource(seed))
	s.rngCalls = 0
	s.IntervalMs = s.schedule.InitialMs
	s.LastSpawnMs = nowMs
}

// Update returns a new enemy once more than IntervalMs has passed since the
// last spawn, or nil. At most one enemy is produced per call.
func (s *Spawner) Update(nowMs float64, id int) *Enemy {
	if nowMs-s.LastSpawnMs <= float64(s.IntervalMs) {
		return nil
	}
	s.LastSpawnMs = nowMs
	s.IntervalMs = s.schedule.Next(s.IntervalMs)
	return s.spawn(id)
}

// Shift moves the timer forward, used to discount time spent paused.
func (s *Spawner) Shift(ms float64) {
	s.LastSpawnMs += ms
}

// RNGCalls returns how many random draws were made since the last reset.
func (s *Spawner) RNGCalls() uint64 {
	return s.rngCalls
}

func (s *Spawner) spawn(id int) *Enemy {
	edge := Edge(s.randIntn(4))
	pos := s.edgePoint(edge)
	speed := s.uniform(s.settings.Speed)
	health := s.uniform(s.settings.Health)
	return NewEnemy(id, pos, s.enemySize, speed, health)
}

// edgePoint picks a uniform point along the given edge, just outside the arena.
func (s *Spawner) edgePoint(edge Edge) core.Vec2 {
	switch edge {
	case EdgeTop:
		return core.V(s.randFloat()*s.arena.W, -s.margin)
	case EdgeRight:
		return core.V(s.arena.W+s.margin, s.randFloat()*s.arena.H)
	case EdgeBottom:
		return core.V(s.randFloat()*s.arena.W, s.arena.H+s.margin)
	default:
		return core.V(-s.margin, s.randFloat()*s.arena.H)
	}
}

func (s *Spawner) uniform(r config.Range) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + s.randFloat()*(r.Max-r.Min)
}

func (s *Spawner) randFloat() float64 {
	s.rngCalls++
	return s.rng.Float64()
}

func (s *Spawner) randIntn(n int) int {
	s.rngCalls++
	return s.rng.Intn(n)
}
