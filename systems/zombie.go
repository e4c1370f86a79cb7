package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hollow/components"
	"github.com/pthm-cable/hollow/config"
)

// StepZombie advances one zombie by dt and reports whether it pursued.
//
// Movement and facing are gated by pursuit range. The clip playhead and arm
// sway advance every tick regardless of distance.
func StepZombie(
	cfg *config.ZombieConfig,
	tr *components.Transform,
	agent *components.Agent,
	z *components.Zombie,
	limbs *components.Limbs,
	anim *components.Animator,
	player mgl64.Vec3,
	dt float64,
) bool {
	if anim != nil && anim.Clip != "" {
		anim.Time += dt * anim.TimeScale
	}

	pursuing := tr.Position.Sub(player).Len() < cfg.PursuitRange
	if pursuing {
		target := mgl64.Vec3{player[0], tr.Position[1], player[2]}
		if FaceInstantly(tr, target) {
			step := tr.Forward()
			step[1] = 0
			if n := step.Len(); n > 0 {
				tr.Position = tr.Position.Add(step.Mul(agent.Speed * dt / n))
			}
		}
	}

	z.SwayTimer += dt * cfg.SwayRate
	arm := cfg.ArmBase + math.Sin(z.SwayTimer)*cfg.ArmAmplitude
	limbs.RightArm.SetRotationX(arm)
	limbs.LeftArm.SetRotationX(arm)

	return pursuing
}

// ZombieStats summarizes one zombie tick.
type ZombieStats struct {
	Count     int
	Pursuing  int
	Distances []float64 // Distance to the player after the tick, per zombie
}

// ZombieSystem runs pursuit over every zombie entity.
type ZombieSystem struct {
	filter *ecs.Filter5[components.Transform, components.Agent, components.Zombie, components.Limbs, components.Animator]
	cfg    config.ZombieConfig

	distances []float64 // Reused between ticks
}

// NewZombieSystem creates a new zombie system.
func NewZombieSystem(w *ecs.World, cfg config.ZombieConfig) *ZombieSystem {
	return &ZombieSystem{
		filter: ecs.NewFilter5[components.Transform, components.Agent, components.Zombie, components.Limbs, components.Animator](w),
		cfg:    cfg,
	}
}

// Update advances every zombie. Before the asset future resolves there are
// no zombie entities and this is a no-op. The returned Distances slice is
// only valid until the next call.
func (s *ZombieSystem) Update(player mgl64.Vec3, dt float64) ZombieStats {
	s.distances = s.distances[:0]
	var stats ZombieStats

	query := s.filter.Query()
	for query.Next() {
		tr, agent, z, limbs, anim := query.Get()
		if StepZombie(&s.cfg, tr, agent, z, limbs, anim, player, dt) {
			stats.Pursuing++
		}
		stats.Count++
		s.distances = append(s.distances, tr.Position.Sub(player).Len())
	}

	stats.Distances = s.distances
	return stats
}
