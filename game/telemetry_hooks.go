package game

import (
	"log/slog"

	"github.com/pthm-cable/hollow/systems"
	"github.com/pthm-cable/hollow/telemetry"
)

// recordTick feeds the last tick's results into the window collector and
// the per-tick event list.
func (g *Game) recordTick() {
	move := g.lastMove
	g.collector.RecordMove(move.Step.Len(), move.BlockedX, move.BlockedZ, move.Jumped, move.Landed)

	tn := g.lastVillager.Transitions
	g.collector.RecordVillagerTransitions(
		tn[systems.TransitionWatch], tn[systems.TransitionWalk],
		tn[systems.TransitionArrive], tn[systems.TransitionTimeout],
	)
	g.collector.RecordPursuit(g.lastZombie.Pursuing)

	if g.trace == nil {
		return
	}
	if move.Jumped {
		g.events = append(g.events, telemetry.Event{Type: telemetry.EventJump, Tick: g.tick})
	}
	if move.Landed {
		g.events = append(g.events, telemetry.Event{Type: telemetry.EventLand, Tick: g.tick})
	}
	if move.BlockedX || move.BlockedZ {
		g.events = append(g.events, telemetry.Event{Type: telemetry.EventBlocked, Tick: g.tick})
	}
	for _, c := range []struct {
		t telemetry.EventType
		n int
	}{
		{telemetry.EventWatchStart, tn[systems.TransitionWatch]},
		{telemetry.EventWalkStart, tn[systems.TransitionWalk]},
		{telemetry.EventArrive, tn[systems.TransitionArrive]},
		{telemetry.EventWalkTimeout, tn[systems.TransitionTimeout]},
	} {
		if ev, ok := telemetry.NewCountEvent(c.t, g.tick, c.n); ok {
			g.events = append(g.events, ev)
		}
	}
}

// writeTrace appends the current tick to the trace and clears the event list.
func (g *Game) writeTrace() {
	defer func() { g.events = g.events[:0] }()
	if g.trace == nil {
		return
	}

	rec := telemetry.TickTrace{
		Tick:     g.tick,
		Player:   g.player.Position,
		Airborne: g.player.Airborne,
		DoorOpen: g.house.DoorOpen(),
		LightOn:  g.house.LightOn(),
		Events:   g.events,
	}

	vq := g.villagerFilter.Query()
	for vq.Next() {
		tr, agent, v, _ := vq.Get()
		rec.Agents = append(rec.Agents, telemetry.AgentTrace{
			Kind:  "villager",
			Index: agent.Index,
			Pos:   tr.Position,
			Yaw:   systems.Yaw(tr.Rotation),
			State: v.State.String(),
		})
	}
	zq := g.zombieFilter.Query()
	for zq.Next() {
		tr, agent, _, _, _ := zq.Get()
		rec.Agents = append(rec.Agents, telemetry.AgentTrace{
			Kind:  "zombie",
			Index: agent.Index,
			Pos:   tr.Position,
			Yaw:   systems.Yaw(tr.Rotation),
		})
	}

	if err := g.trace.Write(rec); err != nil {
		slog.Error("failed to write trace", "error", err)
		if err := g.trace.Close(); err != nil {
			slog.Error("failed to close trace", "error", err)
		}
		g.trace = nil
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleScene())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// sampleScene captures the state reported at window end.
func (g *Game) sampleScene() telemetry.SceneSample {
	v, z := g.lastVillager, g.lastZombie
	p := g.player.Position
	return telemetry.SceneSample{
		VillagerIdle:    v.Idle,
		VillagerWatch:   v.Watch,
		VillagerWalk:    v.Walk,
		Zombies:         z.Count,
		ZombiesPursuing: z.Pursuing,
		ZombieDistances: z.Distances,
		PlayerX:         p[0],
		PlayerY:         p[1],
		PlayerZ:         p[2],
		DoorOpen:        g.house.DoorOpen(),
		LightOn:         g.house.LightOn(),
	}
}
