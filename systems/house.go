package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hollow/config"
)

// doorThickness is the depth of the door slab.
const doorThickness = 1.5

// House owns the door and light state. ToggleDoor and ToggleLight are the
// only mutators; each simply flips its flag.
type House struct {
	doorOpen bool
	lightOn  bool

	// Door swing (visual), eased toward the logical state
	doorAngle float64
	doorSpeed float64

	// Door slab geometry: hinge at pivot, extending +X when closed
	pivot      mgl64.Vec3
	doorWidth  float64
	doorHeight float64
}

// NewHouse creates house state from config.
func NewHouse(cfg config.HouseConfig) *House {
	h := &House{
		doorOpen:   cfg.DoorOpen,
		lightOn:    cfg.LightOn,
		doorSpeed:  cfg.DoorSpeed,
		pivot:      mgl64.Vec3{-cfg.DoorWidth / 2, 0, cfg.Depth/2 - 1},
		doorWidth:  cfg.DoorWidth,
		doorHeight: cfg.DoorHeight,
	}
	if h.doorOpen {
		h.doorAngle = h.targetAngle()
	}
	return h
}

// ToggleDoor flips the door between open and closed.
func (h *House) ToggleDoor() {
	h.doorOpen = !h.doorOpen
}

// ToggleLight flips the interior light.
func (h *House) ToggleLight() {
	h.lightOn = !h.lightOn
}

// DoorOpen reports whether the doorway is passable.
func (h *House) DoorOpen() bool {
	return h.doorOpen
}

// LightOn reports whether the interior light is on.
func (h *House) LightOn() bool {
	return h.lightOn
}

// LightIntensity returns the interior light intensity.
func (h *House) LightIntensity() float64 {
	if h.lightOn {
		return 1.0
	}
	return 0.0
}

// DoorAngle returns the current visual swing of the door in radians.
func (h *House) DoorAngle() float64 {
	return h.doorAngle
}

func (h *House) targetAngle() float64 {
	if h.doorOpen {
		return -math.Pi / 2
	}
	return 0
}

// Update eases the door swing toward the logical door state.
func (h *House) Update(dt float64) {
	h.doorAngle += (h.targetAngle() - h.doorAngle) * dt * h.doorSpeed
}

// DoorBox returns the world bounds of the door slab at its current swing.
func (h *House) DoorBox() Collider {
	sin, cos := math.Sincos(h.doorAngle)
	half := doorThickness / 2

	minV := mgl64.Vec3{math.Inf(1), 0, math.Inf(1)}
	maxV := mgl64.Vec3{math.Inf(-1), h.doorHeight, math.Inf(-1)}
	for _, lx := range [2]float64{0, h.doorWidth} {
		for _, lz := range [2]float64{-half, half} {
			// Rotation about +Y
			x := h.pivot[0] + lx*cos + lz*sin
			z := h.pivot[2] - lx*sin + lz*cos
			minV[0] = math.Min(minV[0], x)
			maxV[0] = math.Max(maxV[0], x)
			minV[2] = math.Min(minV[2], z)
			maxV[2] = math.Max(maxV[2], z)
		}
	}
	return Collider{Min: minV, Max: maxV}
}
