package game

import (
	"github.com/pthm-cable/hollow/systems"
	"github.com/pthm-cable/hollow/telemetry"
)

// Step runs a single tick of the scene in fixed order: asset completion,
// player locomotion, villagers, zombies, house, hand sway, telemetry.
//
// Agents read one snapshot of the player position taken after locomotion,
// so processing order among agents does not change what they see.
func (g *Game) Step(dt float64) {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseAssets)
	g.pollZombieModel()

	g.perfCollector.StartPhase(telemetry.PhaseLocomotion)
	intent := g.controls.Intent()
	g.lastMove = g.locomotion.Update(&g.player, intent, g.camera.Forward(), g.camera.Right(), dt)
	player := g.player.Position

	g.perfCollector.StartPhase(telemetry.PhaseVillagers)
	g.lastVillager = g.villagers.Update(player, dt)

	g.perfCollector.StartPhase(telemetry.PhaseZombies)
	g.lastZombie = g.zombies.Update(player, dt)

	g.perfCollector.StartPhase(telemetry.PhaseHouse)
	g.house.Update(dt)
	g.handPose = g.hand.Update(g.camera.Yaw(), intent.Moving(), dt)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Advance(dt)
	g.recordTick()
	g.writeTrace()
	g.tick++
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// UpdateHeadless advances one fixed-length tick unless paused.
func (g *Game) UpdateHeadless() {
	if g.paused {
		return
	}
	g.Step(g.cfg.Physics.DT)
}

// Look applies a mouse delta to the camera.
func (g *Game) Look(dx, dy float64) {
	g.camera.Look(dx, dy)
}

// ToggleDoor flips the door and records it.
func (g *Game) ToggleDoor() {
	g.house.ToggleDoor()
	g.collector.RecordDoorToggle()
	g.events = append(g.events, telemetry.NewToggleEvent(telemetry.EventDoorToggle, g.tick, g.house.DoorOpen()))
}

// ToggleLight flips the interior light and records it.
func (g *Game) ToggleLight() {
	g.house.ToggleLight()
	g.collector.RecordLightToggle()
	g.events = append(g.events, telemetry.NewToggleEvent(telemetry.EventLightToggle, g.tick, g.house.LightOn()))
}

// Interact casts a ray from the player's eye along the look direction and
// activates the nearest door or switch in range. Walls occlude the ray.
func (g *Game) Interact() (systems.Interactable, bool) {
	targets := []systems.Interactable{
		g.level.Switch,
		{Kind: systems.InteractDoor, Box: g.house.DoorBox()},
	}
	hit, ok := systems.PickInteractable(
		g.player.Position, g.camera.Direction(),
		g.cfg.Interaction.Range, g.level.Solids(), targets,
	)
	if !ok {
		return systems.Interactable{}, false
	}

	switch hit.Kind {
	case systems.InteractDoor:
		g.ToggleDoor()
	case systems.InteractSwitch:
		g.ToggleLight()
	}
	return hit, true
}
