// Package components defines ECS components for the scene.
package components

import "github.com/go-gl/mathgl/mgl64"

// Transform is an object's world placement. Rotation is yaw-only for agents.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates a transform at pos with identity rotation.
func NewTransform(pos mgl64.Vec3) Transform {
	return Transform{
		Position: pos,
		Rotation: mgl64.QuatIdent(),
	}
}

// Forward returns the local +Z axis in world space.
func (t *Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

// Agent holds the per-character data shared by all behaviors.
type Agent struct {
	Index int     // Spawn index within its kind
	Speed float64 // Fixed at spawn
}

// VillagerState is the primary state of the villager behavior machine.
type VillagerState uint8

const (
	VillagerIdle VillagerState = iota
	VillagerWatch
	VillagerWalk
)

// String returns the display name for a VillagerState.
func (s VillagerState) String() string {
	names := VillagerStateNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "UNKNOWN"
}

// VillagerStateNames returns the display names for all villager states.
// The order matches the VillagerState constants.
func VillagerStateNames() []string {
	return []string{"IDLE", "WATCH", "WALK"}
}

// Villager holds the wander/watch state machine data.
type Villager struct {
	State      VillagerState
	StateTimer float64    // Seconds remaining in the current state
	MoveTarget mgl64.Vec3 // Only meaningful in WALK
	GaitTimer  float64    // Leg swing phase
}

// Zombie holds pursuit animation state.
type Zombie struct {
	SwayTimer float64 // Arm sway phase
}

// Bone is a node of a skeleton owned by the scene graph.
// Rotation is Euler XYZ in radians; Heading is a local yaw used for look-at bones.
type Bone struct {
	Name     string
	Rotation mgl64.Vec3
	Heading  mgl64.Quat
}

// SetRotationX sets the pitch of a bone. Nil bones are ignored.
func (b *Bone) SetRotationX(angle float64) {
	if b == nil {
		return
	}
	b.Rotation[0] = angle
}

// RotationX returns the pitch of a bone, or 0 for nil bones.
func (b *Bone) RotationX() float64 {
	if b == nil {
		return 0
	}
	return b.Rotation[0]
}

// Limbs holds non-owning handles into an agent's skeleton.
// Any handle may be nil when the rig has no matching bone.
type Limbs struct {
	LeftArm  *Bone
	RightArm *Bone
	LeftLeg  *Bone
	RightLeg *Bone
	Head     *Bone
}

// Animator tracks the clip played by the external animation mixer.
type Animator struct {
	Clip      string // Empty when the model has no clips
	TimeScale float64
	Time      float64 // Playhead in seconds
}
