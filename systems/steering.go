package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hollow/components"
)

// SeekTowards turns t toward target on the horizontal plane by slerp factor
// turnSharpness*dt, then advances it along its new forward by speed*dt.
func SeekTowards(t *components.Transform, target mgl64.Vec3, turnSharpness, speed, dt float64) {
	FaceSmoothly(t, target, turnSharpness, dt)
	step := t.Forward()
	step[1] = 0
	if n := step.Len(); n > 0 {
		t.Position = t.Position.Add(step.Mul(speed * dt / n))
	}
}

// FaceSmoothly turns t toward target by slerp factor rate*dt without moving it.
// A target directly above or below leaves the heading unchanged.
func FaceSmoothly(t *components.Transform, target mgl64.Vec3, rate, dt float64) {
	want, ok := yawTowards(t.Position, target)
	if !ok {
		return
	}
	t.Rotation = slerpYaw(t.Rotation, want, rate*dt)
}

// FaceInstantly snaps t to look at target's horizontal position.
func FaceInstantly(t *components.Transform, target mgl64.Vec3) bool {
	want, ok := yawTowards(t.Position, target)
	if !ok {
		return false
	}
	t.Rotation = want
	return true
}

// TrackWithBone turns a look-at bone toward target relative to its owner's heading.
func TrackWithBone(owner *components.Transform, bone *components.Bone, target mgl64.Vec3, rate, dt float64) {
	if bone == nil {
		return
	}
	want, ok := yawTowards(owner.Position, target)
	if !ok {
		return
	}
	local := owner.Rotation.Inverse().Mul(want)
	bone.Heading = slerpYaw(bone.Heading, local, rate*dt)
}
