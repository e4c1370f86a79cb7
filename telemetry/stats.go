package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Villager states at window end
	VillagerIdle  int `csv:"villager_idle"`
	VillagerWatch int `csv:"villager_watch"`
	VillagerWalk  int `csv:"villager_walk"`

	// Villager transitions during window
	WatchStarts  int `csv:"watch_starts"`
	WalkStarts   int `csv:"walk_starts"`
	Arrivals     int `csv:"arrivals"`
	WalkTimeouts int `csv:"walk_timeouts"`

	// Zombies
	Zombies         int     `csv:"zombies"`
	ZombiesPursuing int     `csv:"zombies_pursuing"`
	PursuitFraction float64 `csv:"pursuit_fraction"` // Share of zombie-ticks spent pursuing
	ZombieDistMean  float64 `csv:"zombie_dist_mean"`
	ZombieDistP10   float64 `csv:"zombie_dist_p10"`
	ZombieDistP50   float64 `csv:"zombie_dist_p50"`
	ZombieDistP90   float64 `csv:"zombie_dist_p90"`

	// Player
	PlayerX       float64 `csv:"player_x"`
	PlayerY       float64 `csv:"player_y"`
	PlayerZ       float64 `csv:"player_z"`
	DistanceMoved float64 `csv:"distance_moved"`
	Jumps         int     `csv:"jumps"`
	Landings      int     `csv:"landings"`
	BlockedX      int     `csv:"blocked_x"`
	BlockedZ      int     `csv:"blocked_z"`

	// House
	DoorOpen     bool `csv:"door_open"`
	LightOn      bool `csv:"light_on"`
	DoorToggles  int  `csv:"door_toggles"`
	LightToggles int  `csv:"light_toggles"`
}

// ComputeDistanceStats calculates mean and percentiles from distance values.
// Percentiles use the empirical CDF of the sorted sample.
func ComputeDistanceStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("villager_idle", s.VillagerIdle),
		slog.Int("villager_watch", s.VillagerWatch),
		slog.Int("villager_walk", s.VillagerWalk),
		slog.Int("watch_starts", s.WatchStarts),
		slog.Int("walk_starts", s.WalkStarts),
		slog.Int("arrivals", s.Arrivals),
		slog.Int("walk_timeouts", s.WalkTimeouts),
		slog.Int("zombies", s.Zombies),
		slog.Int("zombies_pursuing", s.ZombiesPursuing),
		slog.Float64("pursuit_fraction", s.PursuitFraction),
		slog.Float64("zombie_dist_mean", s.ZombieDistMean),
		slog.Float64("zombie_dist_p10", s.ZombieDistP10),
		slog.Float64("zombie_dist_p50", s.ZombieDistP50),
		slog.Float64("zombie_dist_p90", s.ZombieDistP90),
		slog.Float64("player_x", s.PlayerX),
		slog.Float64("player_y", s.PlayerY),
		slog.Float64("player_z", s.PlayerZ),
		slog.Float64("distance_moved", s.DistanceMoved),
		slog.Int("jumps", s.Jumps),
		slog.Int("blocked_x", s.BlockedX),
		slog.Int("blocked_z", s.BlockedZ),
		slog.Bool("door_open", s.DoorOpen),
		slog.Bool("light_on", s.LightOn),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
