// Package level builds the static house geometry: wall boxes for rendering
// and raycast occlusion, footprint colliders for locomotion, and the
// interactable switch.
package level

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hollow/config"
	"github.com/pthm-cable/hollow/systems"
)

// WallKind tags a wall box for the renderer.
type WallKind uint8

const (
	WallSolid WallKind = iota
	WallPillar
	WallHeader
)

// windowSill is the height of the bottom edge of the window.
const windowSill = 10.0

// Wall is one static box of the house.
type Wall struct {
	Kind WallKind
	Box  systems.Collider
}

// Level is the built static geometry.
type Level struct {
	Walls     []Wall
	Footprint []systems.Collider // Boxes that reach below eye height
	Switch    systems.Interactable
	Doorway   systems.Rect
	FloorSize mgl64.Vec3
}

// Solids returns every wall box in build order.
func (l *Level) Solids() []systems.Collider {
	out := make([]systems.Collider, len(l.Walls))
	for i, w := range l.Walls {
		out[i] = w.Box
	}
	return out
}

// BuildHouse lays out the house centered at the origin with its doorway in
// the front (+Z) wall and a window in the left (-X) wall.
//
// Boxes whose bottom is at or above eyeHeight produce no footprint collider:
// the player passes beneath them.
func BuildHouse(cfg config.HouseConfig, eyeHeight float64) *Level {
	w, d, h, t := cfg.Width, cfg.Depth, cfg.WallHeight, cfg.Thickness
	l := &Level{
		Doorway: systems.Rect{
			MinX: cfg.Doorway.MinX, MaxX: cfg.Doorway.MaxX,
			MinZ: cfg.Doorway.MinZ, MaxZ: cfg.Doorway.MaxZ,
		},
		FloorSize: mgl64.Vec3{w, 0, d},
	}

	add := func(kind WallKind, center, size mgl64.Vec3) {
		l.Walls = append(l.Walls, Wall{Kind: kind, Box: systems.NewBoxCollider(center, size)})
	}

	// Back and right walls
	add(WallSolid, mgl64.Vec3{0, h / 2, -d/2 + t/2}, mgl64.Vec3{w, h, t})
	add(WallSolid, mgl64.Vec3{w/2 - t/2, h / 2, 0}, mgl64.Vec3{t, h, d})

	// Left wall with a window: below, above, and pillars on either side.
	leftX := -w/2 + t/2
	sill := windowSill
	top := sill + cfg.WindowHeight
	add(WallSolid, mgl64.Vec3{leftX, sill / 2, 0}, mgl64.Vec3{t, sill, d})
	add(WallSolid, mgl64.Vec3{leftX, top + (h-top)/2, 0}, mgl64.Vec3{t, h - top, d})
	pillarDepth := (d - cfg.WindowWidth) / 2
	for _, side := range [2]float64{-1, 1} {
		z := side * (cfg.WindowWidth/2 + pillarDepth/2)
		add(WallPillar, mgl64.Vec3{leftX, sill + cfg.WindowHeight/2, z}, mgl64.Vec3{t, cfg.WindowHeight, pillarDepth})
	}

	// Front wall split by the doorway, with a header above it.
	frontZ := d/2 - t/2
	sideW := (w - cfg.DoorWidth) / 2
	for _, side := range [2]float64{-1, 1} {
		x := side * (cfg.DoorWidth/2 + sideW/2)
		add(WallSolid, mgl64.Vec3{x, h / 2, frontZ}, mgl64.Vec3{sideW, h, t})
	}
	add(WallHeader, mgl64.Vec3{0, cfg.DoorHeight + (h-cfg.DoorHeight)/2, frontZ}, mgl64.Vec3{cfg.DoorWidth, h - cfg.DoorHeight, t})

	for _, wall := range l.Walls {
		if wall.Box.Min[1] >= eyeHeight {
			continue
		}
		l.Footprint = append(l.Footprint, wall.Box)
	}

	// Light switch on the inside of the front wall, right of the door.
	l.Switch = systems.Interactable{
		Kind: systems.InteractSwitch,
		Box:  systems.NewBoxCollider(mgl64.Vec3{cfg.DoorWidth / 2, 14, d/2 - 2.5}, mgl64.Vec3{2, 4, 0.5}),
	}
	return l
}
