package systems

import "math"

// HandPose is the first-person hand offset relative to the camera rest pose.
type HandPose struct {
	OffsetX, OffsetY float64
	Roll             float64
}

// HandSway animates the view-model hand: idle breathing, lag behind camera
// yaw changes, and a bob while walking.
type HandSway struct {
	breathTimer float64
	walkTimer   float64
	inertia     float64 // Smoothed yaw delta
	lastYaw     float64
	primed      bool
}

// Update advances the sway by dt given the camera yaw in radians.
func (h *HandSway) Update(yaw float64, moving bool, dt float64) HandPose {
	if !h.primed {
		h.lastYaw = yaw
		h.primed = true
	}

	delta := yaw - h.lastYaw
	h.lastYaw = yaw
	h.inertia = lerp(h.inertia, delta, 0.1)
	h.inertia *= 0.9

	h.breathTimer += dt * 2
	if moving {
		h.walkTimer += dt * 5
	} else {
		h.walkTimer = 0
	}

	pose := HandPose{
		OffsetX: -h.inertia * 0.5,
		OffsetY: math.Sin(h.breathTimer) * 0.02,
		Roll:    -h.inertia,
	}
	if moving {
		pose.OffsetX += math.Cos(h.walkTimer) * 0.05
		pose.OffsetY += math.Abs(math.Sin(h.walkTimer)) * 0.08
	}
	return pose
}
