package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// InteractableKind identifies what an interaction hit activates.
type InteractableKind uint8

const (
	InteractDoor InteractableKind = iota
	InteractSwitch
)

// String returns the display name for an InteractableKind.
func (k InteractableKind) String() string {
	switch k {
	case InteractDoor:
		return "DOOR"
	case InteractSwitch:
		return "SWITCH"
	default:
		return "UNKNOWN"
	}
}

// Interactable is a scene object that responds to the interaction raycast.
type Interactable struct {
	Kind InteractableKind
	Box  Collider
}

// RayBox returns the entry distance of a ray into an AABB using the slab
// method. dir need not be normalized; distances are in units of dir. A ray
// starting inside the box reports 0.
func RayBox(origin, dir mgl64.Vec3, box Collider) (float64, bool) {
	tMin := 0.0
	tMax := math.Inf(1)
	for a := 0; a < 3; a++ {
		if math.Abs(dir[a]) < 1e-12 {
			if origin[a] < box.Min[a] || origin[a] > box.Max[a] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[a]
		t1 := (box.Min[a] - origin[a]) * inv
		t2 := (box.Max[a] - origin[a]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// PickInteractable casts a ray from origin along dir and returns the nearest
// interactable hit within maxDist. Blockers occlude: if any blocker is hit
// strictly before the nearest interactable, nothing is picked.
func PickInteractable(origin, dir mgl64.Vec3, maxDist float64, blockers []Collider, targets []Interactable) (Interactable, bool) {
	n := dir.Len()
	if n == 0 {
		return Interactable{}, false
	}
	dir = dir.Mul(1 / n)

	best := -1
	bestT := math.Inf(1)
	for i := range targets {
		if t, ok := RayBox(origin, dir, targets[i].Box); ok && t < bestT {
			best, bestT = i, t
		}
	}
	if best < 0 || bestT > maxDist {
		return Interactable{}, false
	}

	for i := range blockers {
		if t, ok := RayBox(origin, dir, blockers[i]); ok && t < bestT {
			return Interactable{}, false
		}
	}
	return targets[best], true
}
