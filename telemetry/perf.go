package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step.
const (
	PhaseAssets     = "assets"
	PhaseLocomotion = "locomotion"
	PhaseVillagers  = "villagers"
	PhaseZombies    = "zombies"
	PhaseHouse      = "house"
	PhaseTelemetry  = "telemetry"
)

// Phases lists the step phases in execution order.
var Phases = []string{
	PhaseAssets, PhaseLocomotion, PhaseVillagers,
	PhaseZombies, PhaseHouse, PhaseTelemetry,
}

// perfSample holds timing data for a single tick. phases is indexed by the
// collector's phase slot.
type perfSample struct {
	tick   time.Duration
	phases []time.Duration
}

// PerfCollector tracks step timing over a rolling window of ticks.
// Phase names are assigned slots on first use, so a tick records no
// allocations once every phase has been seen.
type PerfCollector struct {
	windowSize  int
	samples     []perfSample
	writeIndex  int
	sampleCount int

	slots map[string]int
	names []string

	current    []time.Duration
	tickStart  time.Time
	phaseStart time.Time
	lastSlot   int // -1 when no phase is open

	// Frame timing (viewer mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of ticks to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	p := &PerfCollector{
		windowSize: windowSize,
		samples:    make([]perfSample, windowSize),
		slots:      make(map[string]int, len(Phases)),
		lastSlot:   -1,
	}
	for _, name := range Phases {
		p.slot(name)
	}
	return p
}

func (p *PerfCollector) slot(name string) int {
	if i, ok := p.slots[name]; ok {
		return i
	}
	i := len(p.names)
	p.slots[name] = i
	p.names = append(p.names, name)
	return i
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = p.current[:0]
	for range p.names {
		p.current = append(p.current, 0)
	}
	p.lastSlot = -1
}

// StartPhase ends the open phase, if any, and begins timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	i := p.slot(phase)
	for len(p.current) <= i {
		p.current = append(p.current, 0)
	}
	p.phaseStart = now
	p.lastSlot = i
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.lastSlot >= 0 {
		p.current[p.lastSlot] += now.Sub(p.phaseStart)
		p.lastSlot = -1
	}
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)

	s := &p.samples[p.writeIndex]
	s.tick = now.Sub(p.tickStart)
	s.phases = append(s.phases[:0], p.current...)

	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for viewer mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations) for phases seen in the window
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Frame timing (viewer mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		stats.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	sums := make([]time.Duration, len(p.names))
	seen := make([]bool, len(p.names))
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.tick
		if i == 0 || s.tick < stats.MinTickDuration {
			stats.MinTickDuration = s.tick
		}
		if s.tick > stats.MaxTickDuration {
			stats.MaxTickDuration = s.tick
		}
		for slot, d := range s.phases {
			sums[slot] += d
			if d > 0 {
				seen[slot] = true
			}
		}
	}

	n := time.Duration(p.sampleCount)
	stats.AvgTickDuration = total / n
	for slot, sum := range sums {
		if !seen[slot] {
			continue
		}
		name := p.names[slot]
		stats.PhaseAvg[name] = sum / n
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[name] = float64(stats.PhaseAvg[name]) / float64(stats.AvgTickDuration) * 100
		}
	}
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	AssetsPct     float64 `csv:"assets_pct"`
	LocomotionPct float64 `csv:"locomotion_pct"`
	VillagersPct  float64 `csv:"villagers_pct"`
	ZombiesPct    float64 `csv:"zombies_pct"`
	HousePct      float64 `csv:"house_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		AssetsPct:     s.PhasePct[PhaseAssets],
		LocomotionPct: s.PhasePct[PhaseLocomotion],
		VillagersPct:  s.PhasePct[PhaseVillagers],
		ZombiesPct:    s.PhasePct[PhaseZombies],
		HousePct:      s.PhasePct[PhaseHouse],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
