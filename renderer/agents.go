package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hollow/components"
	"github.com/pthm-cable/hollow/game"
	"github.com/pthm-cable/hollow/systems"
)

var (
	villagerStateColors = map[components.VillagerState]rl.Color{
		components.VillagerIdle:  {R: 90, G: 120, B: 190, A: 255},
		components.VillagerWatch: {R: 210, G: 170, B: 60, A: 255},
		components.VillagerWalk:  {R: 90, G: 170, B: 110, A: 255},
	}
	skinColor   = rl.Color{R: 225, G: 190, B: 160, A: 255}
	zombieSkin  = rl.Color{R: 110, G: 150, B: 95, A: 255}
	zombieCloth = rl.Color{R: 70, G: 60, B: 55, A: 255}
)

// drawVillagers draws each villager as a blocky figure at its visual scale.
// Limb pitch comes from the bone handles; the head turns by its own heading.
func drawVillagers(g *game.Game) {
	scale := float32(g.Config().Villager.Scale)

	g.EachVillager(func(tr *components.Transform, v *components.Villager, limbs *components.Limbs) {
		body := villagerStateColors[v.State]

		rl.PushMatrix()
		placeAgent(tr)
		rl.Scalef(scale, scale, scale)

		// Torso and legs, hips at y=1.2
		rl.DrawCube(rl.Vector3{Y: 1.8}, 0.8, 1.2, 0.45, body)
		drawLimb(rl.Vector3{X: 0.22, Y: 1.2}, limbs.LeftLeg, 0.3, 1.2, body)
		drawLimb(rl.Vector3{X: -0.22, Y: 1.2}, limbs.RightLeg, 0.3, 1.2, body)

		// Arms hang from the shoulders
		drawLimb(rl.Vector3{X: 0.55, Y: 2.35}, limbs.LeftArm, 0.22, 1.0, skinColor)
		drawLimb(rl.Vector3{X: -0.55, Y: 2.35}, limbs.RightArm, 0.22, 1.0, skinColor)

		// Head
		rl.PushMatrix()
		rl.Translatef(0, 2.75, 0)
		if limbs.Head != nil {
			rl.Rotatef(deg(systems.Yaw(limbs.Head.Heading)), 0, 1, 0)
		}
		rl.DrawCube(rl.Vector3{}, 0.5, 0.5, 0.5, skinColor)
		rl.DrawCube(rl.Vector3{Y: 0.05, Z: 0.26}, 0.3, 0.08, 0.02, rl.Black)
		rl.PopMatrix()

		rl.PopMatrix()
	})
}

// drawZombies draws each zombie with its arms raised by the sway pose.
func drawZombies(g *game.Game) {
	h := float32(g.Config().Zombie.Height)
	s := h / 3

	g.EachZombie(func(tr *components.Transform, limbs *components.Limbs, anim *components.Animator) {
		// Procedural shamble stands in for the external clip mixer
		bob := float32(0)
		if anim.Clip != "" {
			bob = float32(0.05 * math.Sin(anim.Time*2*math.Pi))
		}

		rl.PushMatrix()
		placeAgent(tr)
		rl.Scalef(s, s, s)
		rl.Translatef(0, bob, 0)

		rl.DrawCube(rl.Vector3{Y: 0.6}, 0.6, 1.2, 0.35, zombieCloth)
		rl.DrawCube(rl.Vector3{Y: 1.8}, 0.8, 1.2, 0.45, zombieCloth)
		drawLimb(rl.Vector3{X: 0.5, Y: 2.3}, limbs.LeftArm, 0.2, 1.0, zombieSkin)
		drawLimb(rl.Vector3{X: -0.5, Y: 2.3}, limbs.RightArm, 0.2, 1.0, zombieSkin)
		rl.DrawCube(rl.Vector3{Y: 2.7, Z: 0.1}, 0.5, 0.5, 0.5, zombieSkin)

		rl.PopMatrix()
	})
}

// placeAgent applies the agent's position and yaw to the matrix stack.
func placeAgent(tr *components.Transform) {
	p := tr.Position
	rl.Translatef(float32(p[0]), float32(p[1]), float32(p[2]))
	rl.Rotatef(deg(systems.Yaw(tr.Rotation)), 0, 1, 0)
}

// drawLimb draws a limb hanging from pivot, pitched by the bone's X rotation.
// A nil bone draws the limb at rest.
func drawLimb(pivot rl.Vector3, bone *components.Bone, width, length float32, c rl.Color) {
	rl.PushMatrix()
	rl.Translatef(pivot.X, pivot.Y, pivot.Z)
	rl.Rotatef(deg(bone.RotationX()), 1, 0, 0)
	rl.DrawCube(rl.Vector3{Y: -length / 2}, width, length, width, c)
	rl.PopMatrix()
}
