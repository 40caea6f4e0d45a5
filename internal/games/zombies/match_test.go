package zombies

import (
	"fmt"
	"math"
	"testing"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
)

func TestStartResetsState(t *testing.T) {
	m := newTestMatch(t, nil)

	if m.Phase != PhaseRunning {
		t.Fatalf("phase = %v", m.Phase)
	}
	if m.Score != 0 || m.Health != 100 || m.Mag.Rounds != 30 {
		t.Errorf("initial score=%d health=%v rounds=%d", m.Score, m.Health, m.Mag.Rounds)
	}
	if c := m.Avatar.Center(); c != core.V(640, 360) {
		t.Errorf("avatar center %+v, expected arena center", c)
	}
	if len(m.Enemies) != 0 || len(m.Projectiles) != 0 {
		t.Error("collections should start empty")
	}
}

func TestContactDamageEndToEnd(t *testing.T) {
	m := newTestMatch(t, func(c *config.ZombiesConfig) {
		c.Enemies.ContactDPS = 100
	})
	// Overlapping the avatar and standing still.
	m.Enemies = []*Enemy{NewEnemy(0, m.Avatar.Pos, core.V(40, 40), 0, 100)}

	var hurt int
	for _, now := range []float64{16, 32, 48} {
		hurt += countEvents[PlayerHurt](m.Tick(now, Controls{}))
	}

	if !approxEqual(m.Health, 95.2, 1e-9) {
		t.Errorf("health = %v, expected 95.2", m.Health)
	}
	if hurt != 3 {
		t.Errorf("PlayerHurt events = %d, expected 3", hurt)
	}
	if m.Phase != PhaseRunning {
		t.Errorf("phase = %v", m.Phase)
	}
}

func TestSingleKillAwardsScoreOnce(t *testing.T) {
	m := newTestMatch(t, nil)
	center := m.Avatar.Center()
	// Facing defaults to 0 (east); put a 50 HP enemy in the line of fire.
	m.Enemies = []*Enemy{NewEnemy(7, core.V(center.X+80, center.Y-20), core.V(40, 40), 0, 50)}

	events := m.Tick(16, Controls{Fire: true})
	if countEvents[ShotFired](events) != 1 {
		t.Fatal("expected one shot")
	}

	kills := 0
	now := 16.0
	for i := 0; i < 30 && m.Score == 0; i++ {
		now += 16
		evs := m.Tick(now, Controls{})
		kills += countEvents[EnemyKilled](evs)
		if m.Score != 0 && len(m.Enemies) != 0 {
			t.Fatal("enemy must leave the live set in the tick it dies")
		}
	}
	for i := 0; i < 10; i++ {
		now += 16
		kills += countEvents[EnemyKilled](m.Tick(now, Controls{}))
	}

	if m.Score != 10 {
		t.Errorf("score = %d, expected 10", m.Score)
	}
	if kills != 1 || m.Stats.Kills != 1 {
		t.Errorf("kill events = %d, stats kills = %d", kills, m.Stats.Kills)
	}
	if len(m.Projectiles) != 0 {
		t.Errorf("projectile should be consumed, %d left", len(m.Projectiles))
	}
}

func TestShotHitsAtAnyFrameRate(t *testing.T) {
	for _, frame := range []float64{16, 33, 50, 100} {
		t.Run(fmt.Sprintf("%vms", frame), func(t *testing.T) {
			m := newTestMatch(t, nil)
			center := m.Avatar.Center()
			m.Enemies = []*Enemy{NewEnemy(7, core.V(center.X+100, center.Y-20), core.V(40, 40), 0, 50)}

			now := frame
			m.Tick(now, Controls{Fire: true})
			for range 40 {
				now += frame
				m.Tick(now, Controls{})
			}
			if m.Stats.Kills != 1 || m.Stats.Hits != 1 {
				t.Errorf("kills=%d hits=%d, expected 1 and 1", m.Stats.Kills, m.Stats.Hits)
			}
		})
	}
}

func TestKillScoreScalesWithTier(t *testing.T) {
	m := newTestMatch(t, func(c *config.ZombiesConfig) {
		c.Preset = config.DifficultyHard
	})
	center := m.Avatar.Center()
	m.Enemies = []*Enemy{NewEnemy(0, core.V(center.X+40, center.Y-20), core.V(40, 40), 0, 10)}

	m.Tick(16, Controls{Fire: true})
	for now := 32.0; now < 500 && m.Score == 0; now += 16 {
		m.Tick(now, Controls{})
	}
	if m.Score != 20 {
		t.Errorf("hard kill score = %d, expected 20", m.Score)
	}
}

func TestThirtyShotsThroughMatch(t *testing.T) {
	m := newTestMatch(t, nil)
	var reloads int
	for i := 1; i <= 30; i++ {
		reloads += countEvents[ReloadStarted](m.Tick(float64(i), Controls{Fire: true}))
		if m.Mag.Rounds < 0 || m.Mag.Rounds > m.Mag.Capacity {
			t.Fatalf("rounds %d out of bounds", m.Mag.Rounds)
		}
	}
	if m.Mag.Rounds != 0 || !m.Avatar.Reloading {
		t.Errorf("rounds=%d reloading=%v", m.Mag.Rounds, m.Avatar.Reloading)
	}
	if reloads != 1 {
		t.Errorf("ReloadStarted events = %d, expected 1", reloads)
	}
	if snap := m.Snapshot(); snap.HUD.Ammo != ReloadingLabel {
		t.Errorf("HUD ammo = %q", snap.HUD.Ammo)
	}

	// 2000ms of ticks later the magazine is full again.
	var finished int
	for now := 30.0 + 50; now <= 30+2000; now += 50 {
		finished += countEvents[ReloadFinished](m.Tick(now, Controls{}))
	}
	if finished != 1 || m.Mag.Rounds != 30 || m.Avatar.Reloading {
		t.Errorf("after reload: finished=%d rounds=%d reloading=%v", finished, m.Mag.Rounds, m.Avatar.Reloading)
	}
}

func TestGameOverOnce(t *testing.T) {
	m := newTestMatch(t, func(c *config.ZombiesConfig) {
		c.Enemies.ContactDPS = 1000
	})
	m.Enemies = []*Enemy{NewEnemy(0, m.Avatar.Pos, core.V(40, 40), 0, 100)}
	m.Score = 30

	var overs int
	for now := 50.0; now <= 2000; now += 50 {
		overs += countEvents[GameOver](m.Tick(now, Controls{}))
	}
	if overs != 1 {
		t.Errorf("GameOver events = %d, expected 1", overs)
	}
	if m.Phase != PhaseGameOver || m.Health != 0 || m.FinalScore != 30 {
		t.Errorf("phase=%v health=%v final=%d", m.Phase, m.Health, m.FinalScore)
	}

	// Inert after game over.
	before := m.Avatar.Pos
	m.Tick(5000, Controls{Right: true, Fire: true})
	if m.Avatar.Pos != before || m.Stats.ShotsFired != 0 {
		t.Error("ticks after game over must not update entities")
	}

	m.Restart(6000)
	if m.Phase != PhaseRunning || m.Health != 100 || m.Score != 0 || len(m.Enemies) != 0 {
		t.Error("restart did not reset the match")
	}
}

func TestIdleMatchIsInert(t *testing.T) {
	m := NewMatch(config.DefaultZombiesConfig(), 1, quietLogger())
	if m.Phase != PhaseIdle {
		t.Fatalf("phase = %v", m.Phase)
	}
	if evs := m.Tick(10000, Controls{Fire: true}); len(evs) != 0 {
		t.Errorf("idle tick produced %v", evs)
	}
	if len(m.Enemies) != 0 {
		t.Error("idle match spawned enemies")
	}
}

func TestDeltaTimeClamped(t *testing.T) {
	m := newTestMatch(t, nil)
	start := m.Avatar.Pos

	// A 10s stall moves the avatar by at most max_frame_ms worth.
	m.Tick(10000, Controls{Right: true})
	moved := m.Avatar.Pos.X - start.X
	if !approxEqual(moved, 300*0.1, 1e-9) {
		t.Errorf("moved %v, expected %v", moved, 300*0.1)
	}

	// Time going backwards is treated as no time.
	pos := m.Avatar.Pos
	m.Tick(5000, Controls{Right: true})
	if m.Avatar.Pos != pos {
		t.Error("negative dt moved the avatar")
	}
}

func TestSpawnsDuringMatch(t *testing.T) {
	m := newTestMatch(t, func(c *config.ZombiesConfig) {
		c.Enemies.ContactDPS = 0
	})
	var spawned int
	for now := 100.0; now <= 10000; now += 100 {
		spawned += countEvents[EnemySpawned](m.Tick(now, Controls{}))
	}
	if spawned < 4 {
		t.Errorf("spawned %d enemies in 10s, expected at least 4", spawned)
	}
	if m.Stats.Spawned != spawned {
		t.Errorf("stats spawned %d != events %d", m.Stats.Spawned, spawned)
	}
}

func TestPauseResume(t *testing.T) {
	m := newTestMatch(t, nil)
	m.Tick(1000, Controls{})
	m.Pause(1000)

	m.Tick(1500, Controls{Right: true})
	if m.Phase != PhasePaused {
		t.Fatal("expected paused")
	}

	m.Resume(60000)
	if m.Spawner.LastSpawnMs != 59000 {
		t.Errorf("spawn timer not shifted: %v", m.Spawner.LastSpawnMs)
	}
	evs := m.Tick(60016, Controls{})
	if countEvents[EnemySpawned](evs) != 0 {
		t.Error("paused time should not count toward spawning")
	}
}

func TestBadEntitiesAreDropped(t *testing.T) {
	m := newTestMatch(t, nil)
	good := NewEnemy(1, core.V(0, 0), core.V(40, 40), 60, 100)
	bad := NewEnemy(2, core.V(math.NaN(), 0), core.V(40, 40), 60, 100)
	m.Enemies = []*Enemy{bad, nil, good}
	m.Projectiles = []*Projectile{nil}

	evs := m.Tick(16, Controls{})

	if got := countEvents[EntityDropped](evs); got != 3 {
		t.Errorf("EntityDropped events = %d, expected 3", got)
	}
	if len(m.Enemies) != 1 || m.Enemies[0] != good {
		t.Errorf("live enemies = %v", m.Enemies)
	}
	if len(m.Projectiles) != 0 {
		t.Error("nil projectile not dropped")
	}
	if m.Phase != PhaseRunning {
		t.Error("a bad entity must not stop the match")
	}
}

func TestMatchDeterminism(t *testing.T) {
	run := func() Snapshot {
		m := NewMatch(config.DefaultZombiesConfig(), 2024, quietLogger())
		m.Start(0)
		now := 0.0
		for i := 0; i < 900; i++ {
			now += 16
			c := Controls{
				Up:     i%120 < 30,
				Left:   i%200 > 150,
				Fire:   i%10 == 0,
				Aim:    core.V(float64(i%1280), float64((i*7)%720)),
				HasAim: true,
			}
			m.Tick(now, c)
		}
		return m.Snapshot()
	}

	a, b := run(), run()
	if a.HUD != b.HUD || a.Stats != b.Stats || a.Avatar != b.Avatar || a.Phase != b.Phase {
		t.Fatalf("runs diverged:\n%+v\n%+v", a, b)
	}
	if len(a.Enemies) != len(b.Enemies) {
		t.Fatalf("enemy counts differ: %d vs %d", len(a.Enemies), len(b.Enemies))
	}
	for i := range a.Enemies {
		if a.Enemies[i] != b.Enemies[i] {
			t.Errorf("enemy %d differs: %+v vs %+v", i, a.Enemies[i], b.Enemies[i])
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseGameOver.String() != "game_over" || Phase(42).String() != "unknown" {
		t.Error("unexpected phase names")
	}
}
