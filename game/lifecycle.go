package game

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hollow/assets"
	"github.com/pthm-cable/hollow/components"
	"github.com/pthm-cable/hollow/systems"
	"github.com/pthm-cable/hollow/telemetry"
)

// spawnVillagers places villagers on a jittered ring in front of the house.
func (g *Game) spawnVillagers() {
	cfg := &g.cfg.Villager

	for i := 0; i < cfg.Count; i++ {
		angle := float64(i) / float64(cfg.Count) * 2 * math.Pi
		radius := g.uniform(cfg.SpawnRadius, cfg.SpawnJitter)
		pos := mgl64.Vec3{math.Cos(angle) * radius, 0, math.Sin(angle)*radius + cfg.SpawnOffsetZ}

		tr := components.NewTransform(pos)
		agent := components.Agent{Index: i, Speed: g.uniform(cfg.WalkSpeedMin, cfg.WalkSpeedRange)}
		v := components.Villager{
			State:      components.VillagerIdle,
			StateTimer: g.uniform(0, cfg.InitialIdleMax),
			GaitTimer:  g.uniform(0, 10),
		}
		systems.PickWanderTarget(cfg, g.rng, &v)
		limbs := assets.VillagerLimbs(assets.VillagerRig())

		g.villagerMapper.NewEntity(&tr, &agent, &v, &limbs)
	}

	slog.Info("villagers spawned", "count", cfg.Count)
}

// spawnZombies creates one zombie per configured slot from a loaded model.
// Each zombie gets its own rig instance.
func (g *Game) spawnZombies(m *assets.Model) int {
	cfg := &g.cfg.Zombie
	clip, hasClip := assets.SelectWalkClip(m.Clips)

	for i := 0; i < cfg.Count; i++ {
		pos := mgl64.Vec3{0, cfg.Lift, cfg.FirstSpawnZ}
		if i > 0 {
			angle := float64(i) / float64(cfg.Count) * 2 * math.Pi
			pos = mgl64.Vec3{math.Cos(angle) * cfg.RingRadius, cfg.Lift, math.Sin(angle) * cfg.RingRadius}
		}

		tr := components.NewTransform(pos)
		agent := components.Agent{Index: i, Speed: g.uniform(cfg.SpeedMin, cfg.SpeedRange)}
		z := components.Zombie{SwayTimer: g.uniform(0, 10)}
		limbs := assets.ZombieLimbs(assets.Instantiate(m))
		anim := components.Animator{TimeScale: cfg.ClipTimeScale}
		if hasClip {
			anim.Clip = clip.Name
		}

		g.zombieMapper.NewEntity(&tr, &agent, &z, &limbs, &anim)
	}
	return cfg.Count
}

// pollZombieModel spawns zombies the first time the model future is ready.
// A failed load is logged and never retried; the scene runs without zombies.
func (g *Game) pollZombieModel() {
	if g.zombiesSpawned || g.zombieModel == nil {
		return
	}
	m, ready, err := g.zombieModel.Poll()
	if !ready {
		return
	}
	g.zombiesSpawned = true

	if err != nil {
		slog.Error("zombie model failed to load", "error", err)
		return
	}

	n := g.spawnZombies(m)
	slog.Info("zombies spawned", "count", n, "model", m.Path, "bones", len(m.Bones), "clips", len(m.Clips))
	if ev, ok := telemetry.NewCountEvent(telemetry.EventZombiesSpawned, g.tick, n); ok {
		g.events = append(g.events, ev)
	}
}

// uniform returns base + U*span for U uniform in [0, 1).
func (g *Game) uniform(base, span float64) float64 {
	return base + g.rng.Float64()*span
}
