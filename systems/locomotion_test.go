package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hollow/config"
	"github.com/pthm-cable/hollow/input"
)

func newTestLocomotion(moveSpeed float64, cols *Colliders) (*Locomotion, config.PlayerConfig) {
	cfg := config.Default().Player
	cfg.MoveSpeed = moveSpeed
	return NewLocomotion(cfg, cols), cfg
}

var (
	plusZ = mgl64.Vec3{0, 0, 1}
	plusX = mgl64.Vec3{1, 0, 0}
)

func TestLocomotion_ForwardStepNoColliders(t *testing.T) {
	loco, _ := newTestLocomotion(0.75, nil)
	p := &PlayerState{Position: mgl64.Vec3{0, 15, 0}}

	res := loco.Update(p, input.Intent{Forward: 1}, plusZ, plusX, 0.1)

	want := mgl64.Vec3{0, 15, 0.075}
	for i := range want {
		if math.Abs(p.Position[i]-want[i]) > 1e-9 {
			t.Fatalf("expected position %v, got %v", want, p.Position)
		}
	}
	if p.Velocity[1] != 0 {
		t.Errorf("grounded vertical velocity should stay 0, got %f", p.Velocity[1])
	}
	if p.Airborne || res.Jumped {
		t.Error("no jump was requested")
	}
}

func TestLocomotion_EmptyColliderStore(t *testing.T) {
	loco, _ := newTestLocomotion(0.75, NewColliders(nil, 2.0, Rect{}, nil))
	p := &PlayerState{Position: mgl64.Vec3{0, 15, 0}}
	loco.Update(p, input.Intent{Forward: 1}, plusZ, plusX, 0.1)
	if math.Abs(p.Position[2]-0.075) > 1e-9 {
		t.Errorf("expected z=0.075, got %f", p.Position[2])
	}
}

func TestLocomotion_NoIntentNoDrift(t *testing.T) {
	loco, cfg := newTestLocomotion(45, nil)
	p := &PlayerState{
		Position: mgl64.Vec3{3, cfg.EyeHeight, 4},
		Velocity: mgl64.Vec3{9, 0, 9},
	}
	res := loco.Update(p, input.Intent{}, plusZ, plusX, 1.0/60)

	if p.Position[0] != 3 || p.Position[2] != 4 {
		t.Errorf("position drifted to %v", p.Position)
	}
	if res.Step != (mgl64.Vec3{}) {
		t.Errorf("expected zero step, got %v", res.Step)
	}
}

func TestLocomotion_StrafeUsesRightVector(t *testing.T) {
	loco, _ := newTestLocomotion(10, nil)
	p := &PlayerState{Position: mgl64.Vec3{0, 15, 0}}
	loco.Update(p, input.Intent{Strafe: -1}, plusZ, plusX, 0.1)
	if math.Abs(p.Position[0]+1) > 1e-9 || p.Position[2] != 0 {
		t.Errorf("expected (-1, _, 0), got %v", p.Position)
	}
}

func TestLocomotion_JumpArc(t *testing.T) {
	loco, cfg := newTestLocomotion(0, nil)
	p := &PlayerState{Position: mgl64.Vec3{0, cfg.EyeHeight, 0}}

	res := loco.Update(p, input.Intent{Jump: true}, plusZ, plusX, 1.0/60)
	if !res.Jumped || !p.Airborne {
		t.Fatal("jump from the ground should launch")
	}
	wantVY := cfg.JumpVelocity - cfg.Gravity
	if math.Abs(p.Velocity[1]-wantVY) > 1e-9 {
		t.Errorf("expected vy %.3f, got %.3f", wantVY, p.Velocity[1])
	}
	wantY := cfg.EyeHeight + wantVY*cfg.VerticalScale
	if math.Abs(p.Position[1]-wantY) > 1e-9 {
		t.Errorf("expected y %.3f, got %.3f", wantY, p.Position[1])
	}

	// A second request mid-air is ignored.
	res = loco.Update(p, input.Intent{Jump: true}, plusZ, plusX, 1.0/60)
	if res.Jumped {
		t.Error("jump while airborne should be ignored")
	}

	landed := false
	for i := 0; i < 200 && !landed; i++ {
		res = loco.Update(p, input.Intent{}, plusZ, plusX, 1.0/60)
		landed = res.Landed
	}
	if !landed {
		t.Fatal("player never landed")
	}
	if p.Position[1] != cfg.EyeHeight || p.Velocity[1] != 0 || p.Airborne {
		t.Errorf("landing should clamp to eye height, got y=%f vy=%f airborne=%v",
			p.Position[1], p.Velocity[1], p.Airborne)
	}
}

func TestLocomotion_GravityIgnoresDT(t *testing.T) {
	loco, cfg := newTestLocomotion(0, nil)

	a := &PlayerState{Position: mgl64.Vec3{0, 100, 0}}
	b := &PlayerState{Position: mgl64.Vec3{0, 100, 0}}
	loco.Update(a, input.Intent{}, plusZ, plusX, 1.0/60)
	loco.Update(b, input.Intent{}, plusZ, plusX, 1.0/10)

	if a.Velocity[1] != b.Velocity[1] || a.Velocity[1] != -cfg.Gravity {
		t.Errorf("gravity decrement should be per tick: %f vs %f", a.Velocity[1], b.Velocity[1])
	}
}

func TestLocomotion_JumpWithControlsEdgeTrigger(t *testing.T) {
	loco, cfg := newTestLocomotion(0, nil)
	p := &PlayerState{Position: mgl64.Vec3{0, cfg.EyeHeight, 0}}

	var c input.Controls
	c.KeyDown(input.KeyJump)

	jumps := 0
	for i := 0; i < 400; i++ {
		if loco.Update(p, c.Intent(), plusZ, plusX, 1.0/60).Jumped {
			jumps++
		}
	}
	if jumps != 1 {
		t.Errorf("holding jump should launch exactly once, got %d", jumps)
	}
}
