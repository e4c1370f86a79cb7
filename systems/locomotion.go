package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hollow/config"
	"github.com/pthm-cable/hollow/input"
)

// PlayerState is the single player body. Position.Y is eye height.
type PlayerState struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3 // X/Z hold the last resolved step, Y the vertical speed
	Airborne bool
}

// MoveResult reports what a locomotion tick did.
type MoveResult struct {
	Step     mgl64.Vec3 // Resolved horizontal displacement
	BlockedX bool
	BlockedZ bool
	Jumped   bool
	Landed   bool
}

// Locomotion converts camera-relative intent into collision-constrained motion.
type Locomotion struct {
	cfg       config.PlayerConfig
	colliders *Colliders
}

// NewLocomotion creates a locomotion controller over a collision store.
func NewLocomotion(cfg config.PlayerConfig, colliders *Colliders) *Locomotion {
	return &Locomotion{cfg: cfg, colliders: colliders}
}

// Update advances the player one tick. forward and right must be unit
// vectors on the horizontal plane.
//
// Collision is resolved per axis, X before Z, so a move blocked on one axis
// still slides along the other. Gravity is a fixed decrement per call and is
// not scaled by dt.
func (l *Locomotion) Update(p *PlayerState, in input.Intent, forward, right mgl64.Vec3, dt float64) MoveResult {
	var res MoveResult

	var moveX, moveZ float64
	if in.Moving() {
		f := float64(in.Forward)
		r := float64(in.Strafe)
		step := l.cfg.MoveSpeed * dt
		moveX = (forward[0]*f + right[0]*r) * step
		moveZ = (forward[2]*f + right[2]*r) * step
	}

	x, z := p.Position[0], p.Position[2]
	if l.blocked(x+moveX, z) {
		res.BlockedX = moveX != 0
		moveX = 0
		p.Velocity[0] = 0
	}
	if l.blocked(x+moveX, z+moveZ) {
		res.BlockedZ = moveZ != 0
		moveZ = 0
		p.Velocity[2] = 0
	}

	p.Velocity[0] = moveX
	p.Velocity[2] = moveZ
	p.Position[0] += moveX
	p.Position[2] += moveZ
	res.Step = mgl64.Vec3{moveX, 0, moveZ}

	if in.Jump && !p.Airborne {
		p.Velocity[1] = l.cfg.JumpVelocity
		p.Airborne = true
		res.Jumped = true
	}

	p.Velocity[1] -= l.cfg.Gravity
	p.Position[1] += p.Velocity[1] * l.cfg.VerticalScale

	if p.Position[1] < l.cfg.EyeHeight {
		res.Landed = p.Airborne
		p.Position[1] = l.cfg.EyeHeight
		p.Velocity[1] = 0
		p.Airborne = false
	}

	return res
}

func (l *Locomotion) blocked(x, z float64) bool {
	if l.colliders == nil {
		return false
	}
	return l.colliders.IsBlocked(x, z)
}
