package systems

import "github.com/go-gl/mathgl/mgl64"

// Collider is a static axis-aligned obstacle volume in world space.
type Collider struct {
	Min, Max mgl64.Vec3
}

// NewBoxCollider creates a collider from a center and full extents.
func NewBoxCollider(center, size mgl64.Vec3) Collider {
	half := size.Mul(0.5)
	return Collider{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the middle of the box.
func (c Collider) Center() mgl64.Vec3 {
	return c.Min.Add(c.Max).Mul(0.5)
}

// Size returns the full extents of the box.
func (c Collider) Size() mgl64.Vec3 {
	return c.Max.Sub(c.Min)
}

// Rect is an open rectangle on the XZ plane.
type Rect struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// Contains reports whether (x, z) lies strictly inside the rectangle.
func (r Rect) Contains(x, z float64) bool {
	return x > r.MinX && x < r.MaxX && z > r.MinZ && z < r.MaxZ
}

// DoorState reports whether the doorway is passable.
type DoorState interface {
	DoorOpen() bool
}

// Colliders is the collision volume store used by player locomotion.
// Queries are a 2D footprint test against every box in insertion order.
type Colliders struct {
	boxes   []Collider
	radius  float64
	doorway Rect
	door    DoorState
}

// NewColliders creates a store over boxes. Each box is inflated by radius on
// X and Z. While door reports closed, doorway is blocked as well; a nil door
// disables the doorway rule.
func NewColliders(boxes []Collider, radius float64, doorway Rect, door DoorState) *Colliders {
	return &Colliders{
		boxes:   append([]Collider(nil), boxes...),
		radius:  radius,
		doorway: doorway,
		door:    door,
	}
}

// IsBlocked reports whether a player footprint centered at (x, z) overlaps
// any inflated collider or the closed doorway. No Y test is performed.
func (c *Colliders) IsBlocked(x, z float64) bool {
	r := c.radius
	for i := range c.boxes {
		b := &c.boxes[i]
		if x > b.Min[0]-r && x < b.Max[0]+r &&
			z > b.Min[2]-r && z < b.Max[2]+r {
			return true
		}
	}

	if c.door != nil && !c.door.DoorOpen() && c.doorway.Contains(x, z) {
		return true
	}
	return false
}

// Boxes returns the stored colliders in insertion order.
func (c *Colliders) Boxes() []Collider {
	return c.boxes
}

// Len returns the number of stored colliders.
func (c *Colliders) Len() int {
	return len(c.boxes)
}
