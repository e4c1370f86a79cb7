package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32
	windowElapsed   float64 // Seconds advanced this window
	simTime         float64
	timed           bool // Advance has been called; windows close on elapsed time

	// Event counters for current window
	jumps         int
	landings      int
	blockedX      int
	blockedZ      int
	distanceMoved float64
	watchStarts   int
	walkStarts    int
	arrivals      int
	walkTimeouts  int
	pursuitTicks  int
	doorToggles   int
	lightToggles  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordMove records one locomotion tick.
func (c *Collector) RecordMove(distance float64, blockedX, blockedZ, jumped, landed bool) {
	c.distanceMoved += distance
	if blockedX {
		c.blockedX++
	}
	if blockedZ {
		c.blockedZ++
	}
	if jumped {
		c.jumps++
	}
	if landed {
		c.landings++
	}
}

// RecordVillagerTransitions records state machine transitions from one tick.
func (c *Collector) RecordVillagerTransitions(watch, walk, arrive, timeout int) {
	c.watchStarts += watch
	c.walkStarts += walk
	c.arrivals += arrive
	c.walkTimeouts += timeout
}

// RecordPursuit records zombies that pursued the player this tick.
func (c *Collector) RecordPursuit(n int) {
	c.pursuitTicks += n
}

// RecordDoorToggle records an interaction with the door.
func (c *Collector) RecordDoorToggle() {
	c.doorToggles++
}

// RecordLightToggle records an interaction with the light switch.
func (c *Collector) RecordLightToggle() {
	c.lightToggles++
}

// Advance adds one tick's dt to the window clock. Once used, windows close
// after windowDurationSec of accumulated time instead of a fixed tick count,
// so variable frame times still produce windows of the configured length.
func (c *Collector) Advance(dt float64) {
	c.windowElapsed += dt
	c.simTime += dt
	c.timed = true
}

// ShouldFlush returns true if the current window is complete.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	if c.timed {
		return c.windowElapsed+1e-9 >= c.windowDurationSec
	}
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// SceneSample is the scene state sampled at window end.
type SceneSample struct {
	VillagerIdle    int
	VillagerWatch   int
	VillagerWalk    int
	Zombies         int
	ZombiesPursuing int
	ZombieDistances []float64
	PlayerX         float64
	PlayerY         float64
	PlayerZ         float64
	DoorOpen        bool
	LightOn         bool
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s SceneSample) WindowStats {
	ticks := currentTick - c.windowStartTick
	var pursuitFrac float64
	if ticks > 0 && s.Zombies > 0 {
		pursuitFrac = float64(c.pursuitTicks) / float64(int(ticks)*s.Zombies)
	}

	distMean, distP10, distP50, distP90 := ComputeDistanceStats(s.ZombieDistances)

	simTime := float64(currentTick) * c.dt
	if c.timed {
		simTime = c.simTime
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,

		VillagerIdle:  s.VillagerIdle,
		VillagerWatch: s.VillagerWatch,
		VillagerWalk:  s.VillagerWalk,

		WatchStarts:  c.watchStarts,
		WalkStarts:   c.walkStarts,
		Arrivals:     c.arrivals,
		WalkTimeouts: c.walkTimeouts,

		Zombies:         s.Zombies,
		ZombiesPursuing: s.ZombiesPursuing,
		PursuitFraction: pursuitFrac,
		ZombieDistMean:  distMean,
		ZombieDistP10:   distP10,
		ZombieDistP50:   distP50,
		ZombieDistP90:   distP90,

		PlayerX:       s.PlayerX,
		PlayerY:       s.PlayerY,
		PlayerZ:       s.PlayerZ,
		DistanceMoved: c.distanceMoved,
		Jumps:         c.jumps,
		Landings:      c.landings,
		BlockedX:      c.blockedX,
		BlockedZ:      c.blockedZ,

		DoorOpen:     s.DoorOpen,
		LightOn:      s.LightOn,
		DoorToggles:  c.doorToggles,
		LightToggles: c.lightToggles,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowElapsed = 0
	c.jumps = 0
	c.landings = 0
	c.blockedX = 0
	c.blockedZ = 0
	c.distanceMoved = 0
	c.watchStarts = 0
	c.walkStarts = 0
	c.arrivals = 0
	c.walkTimeouts = 0
	c.pursuitTicks = 0
	c.doorToggles = 0
	c.lightToggles = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
