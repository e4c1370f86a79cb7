package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hollow/input"
)

// keyBindings maps device keys to logical controls.
var keyBindings = []struct {
	key     int32
	control input.Key
}{
	{rl.KeyW, input.KeyForward},
	{rl.KeyUp, input.KeyForward},
	{rl.KeyS, input.KeyBack},
	{rl.KeyDown, input.KeyBack},
	{rl.KeyA, input.KeyLeft},
	{rl.KeyLeft, input.KeyLeft},
	{rl.KeyD, input.KeyRight},
	{rl.KeyRight, input.KeyRight},
	{rl.KeySpace, input.KeyJump},
}

// InputFrame is the device input gathered for one frame.
type InputFrame struct {
	LookDX, LookDY float64 // Mouse delta in pixels, zero while the cursor is free
	Interact       bool
	Pause          bool
	TogglePerf     bool
}

// PollInput forwards key edges to c and reads mouse look and action keys.
// Tab toggles between captured mouse look and a free cursor for the HUD.
func PollInput(c *input.Controls) InputFrame {
	for _, b := range keyBindings {
		if rl.IsKeyPressed(b.key) {
			c.KeyDown(b.control)
		}
		if rl.IsKeyReleased(b.key) {
			c.KeyUp(b.control)
		}
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		if rl.IsCursorHidden() {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}

	var f InputFrame
	captured := rl.IsCursorHidden()
	if captured {
		md := rl.GetMouseDelta()
		f.LookDX, f.LookDY = float64(md.X), float64(md.Y)
	}
	f.Interact = rl.IsKeyPressed(rl.KeyE) || (captured && rl.IsMouseButtonPressed(rl.MouseButtonLeft))
	f.Pause = rl.IsKeyPressed(rl.KeyP)
	f.TogglePerf = rl.IsKeyPressed(rl.KeyF3)
	return f
}
