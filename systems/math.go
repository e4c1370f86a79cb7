package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RandSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Clamp functions for common value ranges

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp moves a toward b by factor t (clamped to [0, 1]).
func lerp(a, b, t float64) float64 {
	return a + (b-a)*clamp01(t)
}

// Heading functions

var upAxis = mgl64.Vec3{0, 1, 0}

// minHorizontalDist is the distance below which a direction has no usable heading.
const minHorizontalDist = 1e-9

// horizontalDelta returns the XZ-plane vector from -> to and its length.
func horizontalDelta(from, to mgl64.Vec3) (mgl64.Vec3, float64) {
	d := mgl64.Vec3{to[0] - from[0], 0, to[2] - from[2]}
	return d, d.Len()
}

// yawTowards returns the yaw rotation whose +Z axis points from -> to on the
// horizontal plane. ok is false when the points share an XZ position.
func yawTowards(from, to mgl64.Vec3) (q mgl64.Quat, ok bool) {
	d, dist := horizontalDelta(from, to)
	if dist < minHorizontalDist {
		return mgl64.QuatIdent(), false
	}
	angle := math.Atan2(d[0], d[2])
	return mgl64.QuatRotate(angle, upAxis), true
}

// slerpYaw interpolates along the shortest arc with t clamped to [0, 1].
func slerpYaw(from, to mgl64.Quat, t float64) mgl64.Quat {
	if from.Len() == 0 {
		from = mgl64.QuatIdent()
	}
	t = clamp01(t)
	if t == 0 {
		return from
	}
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, t).Normalize()
}

// Yaw returns the heading angle of a yaw-only rotation, measured from +Z toward +X.
func Yaw(q mgl64.Quat) float64 {
	f := q.Rotate(mgl64.Vec3{0, 0, 1})
	return math.Atan2(f[0], f[2])
}
