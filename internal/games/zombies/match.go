package zombies

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
)

// Phase is the lifecycle state of a match.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Controls is the input sampled for one tick.
type Controls struct {
	Up, Down, Left, Right bool
	Fire                  bool
	Reload                bool
	Aim                   core.Vec2
	HasAim                bool
}

// Stats accumulates per-match counters for run history.
type Stats struct {
	ShotsFired  int
	Hits        int
	Kills       int
	Spawned     int
	DamageTaken float64
	SurvivedMs  float64
}

// Accuracy returns the fraction of shots that hit an enemy.
func (s Stats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.ShotsFired)
}

var errNonFinite = errors.New("non-finite position")

// MatchState is the single authoritative state of a match. Only its own
// methods mutate it; hosts read it through Snapshot between ticks.
type MatchState struct {
	Phase       Phase
	Score       int
	FinalScore  int
	Health      float64
	MaxHealth   float64
	Mag         Magazine
	Avatar      Avatar
	Enemies     []*Enemy
	Projectiles []*Projectile
	Spawner     *Spawner
	LastFrameMs float64
	Stats       Stats

	cfg      config.ZombiesConfig
	tier     config.DifficultyTier
	weapon   Weapon
	arena    Arena
	seed     int64
	nextID   int
	pausedAt float64
	pending  []Event
	log      *log.Logger
}

// NewMatch creates an idle match. A nil logger uses log.Default().
func NewMatch(cfg config.ZombiesConfig, seed int64, logger *log.Logger) *MatchState {
	if logger == nil {
		logger = log.Default()
	}
	m := &MatchState{
		cfg:   cfg,
		tier:  cfg.Tier(),
		arena: Arena{W: cfg.Arena.Width, H: cfg.Arena.Height},
		weapon: Weapon{
			ReloadMs:     float64(cfg.Weapon.ReloadMs),
			BulletSpeed:  cfg.Weapon.BulletSpeed,
			BulletSize:   cfg.Weapon.BulletSize,
			MuzzleOffset: cfg.Player.MuzzleOffset,
			Damage:       cfg.Weapon.Damage,
		},
		seed:      seed,
		MaxHealth: cfg.Player.MaxHealth,
		Spawner:   NewSpawner(cfg, seed),
		log:       logger,
	}
	m.reset(0)
	m.Phase = PhaseIdle
	return m
}

// Arena returns the playfield rectangle.
func (m *MatchState) Arena() Arena { return m.arena }

// Config returns the configuration the match was built from.
func (m *MatchState) Config() config.ZombiesConfig { return m.cfg }

// Start resets every field to its initial value and begins running.
func (m *MatchState) Start(nowMs float64) {
	m.reset(nowMs)
	m.Phase = PhaseRunning
	m.log.Debug("match started", "seed", m.seed, "preset", m.cfg.Preset)
}

// Restart is Start from any phase.
func (m *MatchState) Restart(nowMs float64) {
	m.Start(nowMs)
}

func (m *MatchState) reset(nowMs float64) {
	m.Score = 0
	m.FinalScore = 0
	m.Health = m.MaxHealth
	m.Mag = NewMagazine(m.cfg.Weapon.Magazine)
	m.Avatar = NewAvatar(m.arena, core.V(m.cfg.Player.Width, m.cfg.Player.Height))
	m.Enemies = nil
	m.Projectiles = nil
	m.Spawner.Reset(nowMs, m.seed)
	m.LastFrameMs = nowMs
	m.Stats = Stats{}
	m.nextID = 0
	m.pending = nil
}

// Pause freezes a running match.
func (m *MatchState) Pause(nowMs float64) {
	if m.Phase != PhaseRunning {
		return
	}
	m.Phase = PhasePaused
	m.pausedAt = nowMs
}

// Resume continues a paused match without counting the paused time.
func (m *MatchState) Resume(nowMs float64) {
	if m.Phase != PhasePaused {
		return
	}
	if gap := nowMs - m.pausedAt; gap > 0 {
		m.Spawner.Shift(gap)
	}
	m.LastFrameMs = nowMs
	m.Phase = PhaseRunning
}

// Running reports whether ticks currently advance the simulation.
func (m *MatchState) Running() bool {
	return m.Phase == PhaseRunning
}

// Aim turns the avatar toward a world point. Safe to call between ticks.
func (m *MatchState) Aim(point core.Vec2) {
	if m.Phase != PhaseRunning {
		return
	}
	m.Avatar.Aim(point)
}

// Fire requests one shot. Resulting events are returned by the next Tick.
func (m *MatchState) Fire() {
	if m.Phase != PhaseRunning {
		return
	}
	p, res := m.Avatar.Shoot(&m.Mag, m.weapon)
	switch res {
	case ShotOK:
		m.Projectiles = append(m.Projectiles, p)
		m.Stats.ShotsFired++
		m.pending = append(m.pending, ShotFired{Origin: p.Center(), Angle: m.Avatar.Facing})
		if m.Avatar.Reloading {
			m.pending = append(m.pending, ReloadStarted{})
		}
	case ShotReloadStarted:
		m.pending = append(m.pending, ReloadStarted{})
	}
}

// Reload requests a reload. Resulting events are returned by the next Tick.
func (m *MatchState) Reload() {
	if m.Phase != PhaseRunning {
		return
	}
	if m.Avatar.Reload(&m.Mag, m.weapon) {
		m.pending = append(m.pending, ReloadStarted{})
	}
}

// Tick advances a running match to nowMs and returns the events produced
// since the previous tick. Outside the running phase it only drains events.
//
// Order within a tick: input, spawner, avatar, enemies, projectiles, then
// the terminal health check. Enemies and projectiles both observe the
// avatar's post-update position.
func (m *MatchState) Tick(nowMs float64, in Controls) []Event {
	if m.Phase != PhaseRunning {
		return m.drain()
	}

	dt := nowMs - m.LastFrameMs
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if limit := float64(m.cfg.Loop.MaxFrameMs); limit > 0 && dt > limit {
		dt = limit
	}
	m.LastFrameMs = nowMs

	// Input
	m.Avatar.Steer(in.Up, in.Down, in.Left, in.Right, m.cfg.Player.Speed)
	if in.HasAim {
		m.Aim(in.Aim)
	}
	if in.Reload {
		m.Reload()
	}
	if in.Fire {
		m.Fire()
	}
	events := m.drain()

	// Spawner
	if e := m.Spawner.Update(nowMs, m.nextID); e != nil {
		m.nextID++
		m.Enemies = append(m.Enemies, e)
		m.Stats.Spawned++
		events = append(events, EnemySpawned{EnemyID: e.ID, At: e.Center()})
	}

	events = m.updateAvatar(dt, events)
	events = m.updateEnemies(dt, events)
	events = m.updateProjectiles(dt, events)
	m.Stats.SurvivedMs += dt

	if m.Health <= 0 {
		m.Health = 0
		m.Phase = PhaseGameOver
		m.FinalScore = m.Score
		events = append(events, GameOver{FinalScore: m.FinalScore})
		m.log.Info("match over", "score", m.FinalScore, "kills", m.Stats.Kills,
			"survived_ms", int(m.Stats.SurvivedMs), "rng_calls", m.Spawner.RNGCalls())
	}
	return events
}

func (m *MatchState) updateAvatar(dt float64, events []Event) []Event {
	var finished bool
	err := guard(func() { finished = m.Avatar.Update(dt, m.arena, &m.Mag) })
	if err == nil && !m.Avatar.Finite() {
		err = errNonFinite
	}
	if err != nil {
		// The avatar cannot be dropped; put it back in the middle.
		m.log.Error("avatar update failed, recentering", "err", err)
		reloading, remaining, facing := m.Avatar.Reloading, m.Avatar.ReloadRemainingMs, m.Avatar.Facing
		m.Avatar = NewAvatar(m.arena, core.V(m.cfg.Player.Width, m.cfg.Player.Height))
		m.Avatar.Reloading, m.Avatar.ReloadRemainingMs, m.Avatar.Facing = reloading, remaining, facing
		return append(events, EntityDropped{Kind: "avatar", Reason: err.Error()})
	}
	if finished {
		events = append(events, ReloadFinished{})
	}
	return events
}

func (m *MatchState) updateEnemies(dt float64, events []Event) []Event {
	target := m.Avatar.Body
	dps := m.cfg.Enemies.ContactDPS * m.tier.DamageMultiplier

	for _, e := range slices.Clone(m.Enemies) {
		var contact bool
		err := guard(func() { contact = e.Update(dt, target) })
		if err == nil && !e.Finite() {
			err = errNonFinite
		}
		if err != nil {
			id := -1
			if e != nil {
				id = e.ID
			}
			m.log.Warn("dropping enemy", "id", id, "err", err)
			m.removeEnemy(e)
			events = append(events, EntityDropped{Kind: "enemy", ID: id, Reason: err.Error()})
			continue
		}
		if !contact {
			continue
		}
		if dmg := dps * dt / 1000; dmg > 0 {
			m.Health = max(0, m.Health-dmg)
			m.Stats.DamageTaken += dmg
			events = append(events, PlayerHurt{Amount: dmg, Health: m.Health})
		}
	}
	return events
}

func (m *MatchState) updateProjectiles(dt float64, events []Event) []Event {
	kept := m.Projectiles[:0]
	for _, p := range m.Projectiles {
		var out ProjectileOutcome
		err := guard(func() { out = p.Update(dt, m.arena, &m.Enemies, m.weapon.Damage) })
		if err != nil {
			m.log.Warn("dropping projectile", "err", err)
			events = append(events, EntityDropped{Kind: "projectile", Reason: err.Error()})
			continue
		}
		if out.Hit != nil {
			m.Stats.Hits++
			events = append(events, EnemyHit{EnemyID: out.Hit.ID, At: out.Hit.Center(), Damage: m.weapon.Damage})
		}
		if out.Killed {
			award := m.tier.ScaleScore(m.cfg.Enemies.KillScore)
			m.Score += award
			m.Stats.Kills++
			events = append(events, EnemyKilled{EnemyID: out.Hit.ID, At: out.Hit.Center(), Award: award})
		}
		if !out.Expired {
			kept = append(kept, p)
		}
	}
	clear(m.Projectiles[len(kept):])
	m.Projectiles = kept
	return events
}

func (m *MatchState) removeEnemy(e *Enemy) {
	m.Enemies = slices.DeleteFunc(m.Enemies, func(x *Enemy) bool { return x == e })
}

func (m *MatchState) drain() []Event {
	if len(m.pending) == 0 {
		return nil
	}
	out := m.pending
	m.pending = nil
	return out
}

// guard runs fn, converting a panic into an error.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}
