package telemetry

import (
	"math"
	"testing"
)

func TestComputeDistanceStats(t *testing.T) {
	tests := []struct {
		name                string
		values              []float64
		mean, p10, p50, p90 float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{40}, 40, 40, 40, 40},
		{"ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 5.5, 1, 5, 9},
		{"three zombies", []float64{150, 40, 75}, 265.0 / 3, 40, 75, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p10, p50, p90 := ComputeDistanceStats(tt.values)
			got := []float64{mean, p10, p50, p90}
			want := []float64{tt.mean, tt.p10, tt.p50, tt.p90}
			for i := range got {
				if math.Abs(got[i]-want[i]) > 1e-9 {
					t.Errorf("stats = %v, want %v", got, want)
					break
				}
			}
		})
	}
}

func TestComputeDistanceStats_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeDistanceStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestCollector_FlushAndReset(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("expected 10 ticks per window, got %d", c.WindowDurationTicks())
	}

	for tick := int32(1); tick <= 10; tick++ {
		c.RecordMove(0.5, tick == 3, false, tick == 1, tick == 8)
		c.RecordPursuit(1)
		if tick < 10 && c.ShouldFlush(tick) {
			t.Fatalf("flushed early at tick %d", tick)
		}
	}
	c.RecordVillagerTransitions(2, 1, 1, 0)
	c.RecordDoorToggle()

	if !c.ShouldFlush(10) {
		t.Fatal("expected flush at tick 10")
	}
	stats := c.Flush(10, SceneSample{
		VillagerWatch:   2,
		VillagerIdle:    3,
		Zombies:         2,
		ZombiesPursuing: 1,
		ZombieDistances: []float64{40, 160},
		DoorOpen:        true,
	})

	if math.Abs(stats.DistanceMoved-5) > 1e-9 {
		t.Errorf("distance moved = %f, want 5", stats.DistanceMoved)
	}
	if stats.Jumps != 1 || stats.Landings != 1 || stats.BlockedX != 1 || stats.BlockedZ != 0 {
		t.Errorf("unexpected locomotion counters %+v", stats)
	}
	if stats.WatchStarts != 2 || stats.WalkStarts != 1 || stats.Arrivals != 1 {
		t.Errorf("unexpected villager counters %+v", stats)
	}
	if math.Abs(stats.PursuitFraction-0.5) > 1e-9 {
		t.Errorf("pursuit fraction = %f, want 0.5", stats.PursuitFraction)
	}
	if stats.ZombieDistMean != 100 || stats.ZombieDistP10 != 40 {
		t.Errorf("unexpected distance stats %+v", stats)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %f, want 1.0", stats.SimTimeSec)
	}

	next := c.Flush(20, SceneSample{})
	if next.Jumps != 0 || next.DistanceMoved != 0 || next.DoorToggles != 0 || next.WindowStartTick != 10 {
		t.Errorf("counters should reset after flush, got %+v", next)
	}
}

func TestCollector_FlushOnElapsedTime(t *testing.T) {
	// Frames longer than the nominal dt close the window in fewer ticks.
	c := NewCollector(1.0, 0.1)

	for tick := int32(1); tick <= 3; tick++ {
		c.Advance(0.25)
		if c.ShouldFlush(tick) {
			t.Fatalf("flushed early at tick %d", tick)
		}
	}
	c.Advance(0.25)
	if !c.ShouldFlush(4) {
		t.Fatal("expected flush after 1s of accumulated time")
	}
	stats := c.Flush(4, SceneSample{})
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %f, want 1.0", stats.SimTimeSec)
	}

	// Window clock restarts; short frames need more ticks.
	for tick := int32(5); tick < 24; tick++ {
		c.Advance(0.05)
		if c.ShouldFlush(tick) {
			t.Fatalf("second window flushed early at tick %d", tick)
		}
	}
	c.Advance(0.05)
	if !c.ShouldFlush(24) {
		t.Error("expected second window to close after 20 short ticks")
	}
}
