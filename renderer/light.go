package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// InteriorLight renders the house lamp and tints interior surfaces by the
// current light intensity.
type InteriorLight struct {
	position rl.Vector3
	ambient  float32 // Interior brightness with the light off

	onColor  rl.Color
	offColor rl.Color
}

// NewInteriorLight creates a lamp hanging at pos.
func NewInteriorLight(pos rl.Vector3) *InteriorLight {
	return &InteriorLight{
		position: pos,
		ambient:  0.35,
		onColor:  rl.Color{R: 255, G: 230, B: 160, A: 255},
		offColor: rl.Color{R: 70, G: 70, B: 60, A: 255},
	}
}

// Draw renders the lamp bulb and its glow.
func (l *InteriorLight) Draw(intensity float64) {
	bulb := l.offColor
	if intensity > 0 {
		bulb = l.onColor
		rl.DrawSphere(l.position, 2.5, rl.ColorAlpha(l.onColor, float32(0.15*intensity)))
	}
	rl.DrawSphere(l.position, 0.8, bulb)
	rl.DrawLine3D(l.position, rl.Vector3{X: l.position.X, Y: l.position.Y + 6, Z: l.position.Z}, rl.DarkGray)
}

// Tint scales base toward the ambient level when the light is dimmed.
func (l *InteriorLight) Tint(base rl.Color, intensity float64) rl.Color {
	k := l.ambient + (1-l.ambient)*float32(intensity)
	return rl.Color{
		R: uint8(float32(base.R) * k),
		G: uint8(float32(base.G) * k),
		B: uint8(float32(base.B) * k),
		A: base.A,
	}
}
