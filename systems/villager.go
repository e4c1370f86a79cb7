package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hollow/components"
	"github.com/pthm-cable/hollow/config"
)

// VillagerTransition is the state change a villager made during one tick.
type VillagerTransition uint8

const (
	TransitionNone VillagerTransition = iota
	TransitionWatch                   // Any state -> WATCH (player in range)
	TransitionIdle                    // WATCH -> IDLE (player left range)
	TransitionWalk                    // IDLE -> WALK (idle timer expired)
	TransitionArrive                  // WALK -> IDLE (target reached)
	TransitionTimeout                 // WALK -> IDLE (walk timer expired)
)

// StepVillager advances one villager by dt against a fixed player position.
//
// The watch guard is checked every tick before the timer-driven table: a
// player within watch range forces WATCH regardless of the current state.
func StepVillager(
	cfg *config.VillagerConfig,
	rng RandSource,
	tr *components.Transform,
	agent *components.Agent,
	v *components.Villager,
	limbs *components.Limbs,
	player mgl64.Vec3,
	dt float64,
) VillagerTransition {
	if tr.Position.Sub(player).Len() < cfg.WatchRange {
		transition := TransitionNone
		if v.State != components.VillagerWatch {
			transition = TransitionWatch
		}
		v.State = components.VillagerWatch
		FaceSmoothly(tr, player, cfg.WatchTurnRate, dt)
		TrackWithBone(tr, limbs.Head, player, cfg.WatchTurnRate, dt)
		relaxLimbs(limbs, cfg.RelaxRate*dt)
		return transition
	}

	v.StateTimer -= dt

	switch v.State {
	case components.VillagerWalk:
		_, dist := horizontalDelta(tr.Position, v.MoveTarget)
		if dist < cfg.ArriveRadius || v.StateTimer <= 0 {
			transition := TransitionTimeout
			if dist < cfg.ArriveRadius {
				transition = TransitionArrive
			}
			v.State = components.VillagerIdle
			v.StateTimer = cfg.IdleMin + rng.Float64()*cfg.IdleRange
			return transition
		}

		SeekTowards(tr, v.MoveTarget, cfg.TurnRate, agent.Speed*cfg.StrideScale, dt)
		relaxHead(limbs, cfg.RelaxRate*dt)

		v.GaitTimer += dt * cfg.GaitRate
		swing := math.Sin(v.GaitTimer) * cfg.SwingAmplitude
		limbs.LeftLeg.SetRotationX(swing)
		limbs.RightLeg.SetRotationX(-swing)
		limbs.LeftArm.SetRotationX(-swing * 0.5)
		limbs.RightArm.SetRotationX(swing * 0.5)
		return TransitionNone

	default:
		// IDLE, and WATCH once the player has left range
		transition := TransitionNone
		if v.State != components.VillagerIdle {
			transition = TransitionIdle
		}
		v.State = components.VillagerIdle
		relaxLimbs(limbs, cfg.RelaxRate*dt)
		relaxHead(limbs, cfg.RelaxRate*dt)

		if v.StateTimer <= 0 {
			PickWanderTarget(cfg, rng, v)
			v.State = components.VillagerWalk
			v.StateTimer = cfg.WalkMin + rng.Float64()*cfg.WalkRange
			return TransitionWalk
		}
		return transition
	}
}

// PickWanderTarget chooses a target uniformly within the square wander
// region centered at the origin, on the ground plane.
func PickWanderTarget(cfg *config.VillagerConfig, rng RandSource, v *components.Villager) {
	v.MoveTarget = mgl64.Vec3{
		(rng.Float64() - 0.5) * cfg.WanderExtent,
		0,
		(rng.Float64() - 0.5) * cfg.WanderExtent,
	}
}

// relaxLimbs eases arm and leg pitch back to rest.
func relaxLimbs(limbs *components.Limbs, t float64) {
	for _, b := range [...]*components.Bone{limbs.LeftLeg, limbs.RightLeg, limbs.LeftArm, limbs.RightArm} {
		if b == nil {
			continue
		}
		b.SetRotationX(lerp(b.RotationX(), 0, t))
	}
}

// relaxHead eases a look-at head back to facing forward.
func relaxHead(limbs *components.Limbs, t float64) {
	if limbs.Head == nil {
		return
	}
	limbs.Head.Heading = slerpYaw(limbs.Head.Heading, mgl64.QuatIdent(), t)
}

// VillagerStats summarizes one villager tick.
type VillagerStats struct {
	Idle, Watch, Walk int
	Transitions       [TransitionTimeout + 1]int
}

// VillagerSystem runs the villager state machine over every villager entity.
type VillagerSystem struct {
	filter *ecs.Filter4[components.Transform, components.Agent, components.Villager, components.Limbs]
	cfg    config.VillagerConfig
	rng    RandSource
}

// NewVillagerSystem creates a new villager system.
func NewVillagerSystem(w *ecs.World, cfg config.VillagerConfig, rng RandSource) *VillagerSystem {
	return &VillagerSystem{
		filter: ecs.NewFilter4[components.Transform, components.Agent, components.Villager, components.Limbs](w),
		cfg:    cfg,
		rng:    rng,
	}
}

// Update advances every villager. An empty world is a no-op.
func (s *VillagerSystem) Update(player mgl64.Vec3, dt float64) VillagerStats {
	var stats VillagerStats

	query := s.filter.Query()
	for query.Next() {
		tr, agent, v, limbs := query.Get()

		tn := StepVillager(&s.cfg, s.rng, tr, agent, v, limbs, player, dt)
		stats.Transitions[tn]++

		switch v.State {
		case components.VillagerIdle:
			stats.Idle++
		case components.VillagerWatch:
			stats.Watch++
		case components.VillagerWalk:
			stats.Walk++
		}
	}
	return stats
}
