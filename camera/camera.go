// Package camera provides a first-person look camera.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera accumulates mouse look as latitude/longitude in degrees.
// Lon 0 faces +X; lon -90 faces -Z. Lat is clamped to ±MaxLat.
type Camera struct {
	Lat, Lon float64

	// Degrees per pixel of mouse motion
	Sensitivity float64

	// Pitch constraint in degrees
	MaxLat float64

	// Vertical field of view in degrees
	FOV float64

	initialLat, initialLon float64
}

// New creates a camera looking along the given initial angles.
func New(lat, lon, sensitivity, maxLat, fov float64) *Camera {
	c := &Camera{
		Sensitivity: sensitivity,
		MaxLat:      maxLat,
		FOV:         fov,
		initialLat:  lat,
		initialLon:  lon,
	}
	c.Reset()
	return c
}

// Look applies a mouse delta in screen pixels. Moving the mouse up looks up.
func (c *Camera) Look(dx, dy float64) {
	c.Lon += dx * c.Sensitivity
	c.Lat = clamp(c.Lat-dy*c.Sensitivity, -c.MaxLat, c.MaxLat)
}

// Direction returns the unit look vector, including pitch.
func (c *Camera) Direction() mgl64.Vec3 {
	phi := mgl64.DegToRad(90 - c.Lat)
	theta := mgl64.DegToRad(c.Lon)
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return mgl64.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
}

// Forward returns the look direction flattened onto the ground plane.
// Pitch never affects it.
func (c *Camera) Forward() mgl64.Vec3 {
	theta := mgl64.DegToRad(c.Lon)
	sinTheta, cosTheta := math.Sincos(theta)
	return mgl64.Vec3{cosTheta, 0, sinTheta}
}

// Right returns the horizontal unit vector to the right of Forward.
func (c *Camera) Right() mgl64.Vec3 {
	return c.Forward().Cross(mgl64.Vec3{0, 1, 0})
}

// Yaw returns the heading in radians, measured from +Z toward +X.
func (c *Camera) Yaw() float64 {
	f := c.Forward()
	return math.Atan2(f[0], f[2])
}

// Target returns the point one unit ahead of eye along the look direction.
func (c *Camera) Target(eye mgl64.Vec3) mgl64.Vec3 {
	return eye.Add(c.Direction())
}

// Reset returns the camera to its initial angles.
func (c *Camera) Reset() {
	c.Lat = clamp(c.initialLat, -c.MaxLat, c.MaxLat)
	c.Lon = c.initialLon
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
