// Package renderer draws the scene with raylib: the house, the door, the
// agents and the first-person hand.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hollow/game"
	"github.com/pthm-cable/hollow/level"
	"github.com/pthm-cable/hollow/systems"
)

var (
	groundColor   = rl.Color{R: 40, G: 52, B: 38, A: 255}
	floorColor    = rl.Color{R: 110, G: 90, B: 70, A: 255}
	wallColor     = rl.Color{R: 150, G: 140, B: 125, A: 255}
	pillarColor   = rl.Color{R: 125, G: 115, B: 100, A: 255}
	headerColor   = rl.Color{R: 135, G: 125, B: 110, A: 255}
	doorColor     = rl.Color{R: 95, G: 60, B: 35, A: 255}
	switchColor   = rl.Color{R: 220, G: 220, B: 210, A: 255}
	skyColor      = rl.Color{R: 18, G: 20, B: 32, A: 255}
	handColor     = rl.Color{R: 210, G: 170, B: 140, A: 255}
	groundExtent  = float32(400)
	handDistance  = 2.0
	handRightSide = 0.9
	handDrop      = 0.9
)

// Scene owns the raylib camera and draws one frame of the game.
type Scene struct {
	cam   rl.Camera3D
	light *InteriorLight
}

// NewScene creates a scene renderer. Must be called after the window exists.
func NewScene(g *game.Game) *Scene {
	cfg := g.Config()
	return &Scene{
		cam: rl.Camera3D{
			Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
			Fovy:       float32(cfg.Camera.FOV),
			Projection: rl.CameraPerspective,
		},
		light: NewInteriorLight(rl.Vector3{X: 0, Y: float32(cfg.House.WallHeight) - 6, Z: 0}),
	}
}

// Draw renders the 3D scene. Call between BeginDrawing and EndDrawing.
func (s *Scene) Draw(g *game.Game) {
	eye := g.Player().Position
	s.cam.Position = vec3(eye)
	s.cam.Target = vec3(g.Camera().Target(eye))

	rl.ClearBackground(skyColor)
	rl.BeginMode3D(s.cam)

	intensity := g.House().LightIntensity()
	s.drawLevel(g.Level(), intensity)
	s.drawDoor(g.House())
	s.light.Draw(intensity)
	drawVillagers(g)
	drawZombies(g)
	s.drawHand(g)

	rl.EndMode3D()
}

func (s *Scene) drawLevel(l *level.Level, intensity float64) {
	rl.DrawPlane(rl.Vector3{}, rl.Vector2{X: groundExtent, Y: groundExtent}, groundColor)
	rl.DrawPlane(rl.Vector3{Y: 0.05}, rl.Vector2{X: float32(l.FloorSize[0]), Y: float32(l.FloorSize[2])}, s.light.Tint(floorColor, intensity))

	for _, w := range l.Walls {
		c := wallColor
		switch w.Kind {
		case level.WallPillar:
			c = pillarColor
		case level.WallHeader:
			c = headerColor
		}
		drawBox(w.Box, s.light.Tint(c, intensity))
	}
	drawBox(l.Switch.Box, switchColor)
}

// drawDoor draws the door slab rotated about its hinge.
func (s *Scene) drawDoor(h *systems.House) {
	box := h.DoorBox()
	rl.DrawCube(vec3(box.Center()), float32(box.Size()[0]), float32(box.Size()[1]), float32(box.Size()[2]), doorColor)
	rl.DrawCubeWires(vec3(box.Center()), float32(box.Size()[0]), float32(box.Size()[1]), float32(box.Size()[2]), rl.Black)
}

// drawHand places the view-model hand in front of the camera with the
// current sway applied.
func (s *Scene) drawHand(g *game.Game) {
	pose := g.HandPose()
	cam := g.Camera()
	fwd := cam.Direction()
	right := cam.Right()
	up := right.Cross(fwd).Normalize()

	pos := g.Player().Position.
		Add(fwd.Mul(handDistance)).
		Add(right.Mul(handRightSide + pose.OffsetX)).
		Add(up.Mul(-handDrop + pose.OffsetY))

	rl.PushMatrix()
	rl.Translatef(float32(pos[0]), float32(pos[1]), float32(pos[2]))
	rl.Rotatef(deg(cam.Yaw()), 0, 1, 0)
	rl.Rotatef(deg(pose.Roll), 0, 0, 1)
	rl.DrawCube(rl.Vector3{}, 0.35, 0.25, 0.9, handColor)
	rl.PopMatrix()
}

func drawBox(b systems.Collider, c rl.Color) {
	center, size := b.Center(), b.Size()
	rl.DrawCube(vec3(center), float32(size[0]), float32(size[1]), float32(size[2]), c)
	rl.DrawCubeWires(vec3(center), float32(size[0]), float32(size[1]), float32(size[2]), rl.ColorAlpha(rl.Black, 0.4))
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
}

func deg(rad float64) float32 {
	return float32(rad * 180 / math.Pi)
}
