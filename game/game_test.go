package game

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hollow/assets"
	"github.com/pthm-cable/hollow/components"
	"github.com/pthm-cable/hollow/config"
	"github.com/pthm-cable/hollow/input"
	"github.com/pthm-cable/hollow/systems"
	"github.com/pthm-cable/hollow/telemetry"
)

// ---------- Helpers ----------

// gatedLoader blocks until release is closed, then returns model or err.
type gatedLoader struct {
	release chan struct{}
	model   *assets.Model
	err     error
}

func (l *gatedLoader) Load(ctx context.Context, path string) (*assets.Model, error) {
	if l.release != nil {
		select {
		case <-l.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return l.model, l.err
}

func waitForModel(t *testing.T, g *Game) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	g.zombieModel.Wait(ctx)
	if ctx.Err() != nil {
		t.Fatal("zombie model never resolved")
	}
}

func countZombies(g *Game) int {
	n := 0
	g.EachZombie(func(*components.Transform, *components.Limbs, *components.Animator) { n++ })
	return n
}

func countVillagers(g *Game) int {
	n := 0
	g.EachVillager(func(*components.Transform, *components.Villager, *components.Limbs) { n++ })
	return n
}

// ---------- Spawning ----------

func TestNewGame_SpawnsVillagersImmediately(t *testing.T) {
	cfg := config.Default()
	g := NewGame(cfg)
	defer g.Unload()

	if got := countVillagers(g); got != cfg.Villager.Count {
		t.Fatalf("villagers = %d, want %d", got, cfg.Villager.Count)
	}

	g.EachVillager(func(tr *components.Transform, v *components.Villager, limbs *components.Limbs) {
		if v.State != components.VillagerIdle {
			t.Errorf("villager starts in %s, want IDLE", v.State)
		}
		if v.StateTimer < 0 || v.StateTimer >= cfg.Villager.InitialIdleMax {
			t.Errorf("initial idle timer %f out of range", v.StateTimer)
		}
		if tr.Position[1] != 0 {
			t.Errorf("villager y = %f, want 0", tr.Position[1])
		}
		if limbs.Head == nil || limbs.LeftLeg == nil || limbs.RightArm == nil {
			t.Error("villager rig should resolve every limb")
		}
	})
}

func TestGame_ProceduralZombiesSpawnOnFirstTick(t *testing.T) {
	cfg := config.Default()
	g := NewGame(cfg)
	defer g.Unload()

	if countZombies(g) != 0 {
		t.Fatal("zombies must not exist before the first tick")
	}

	g.Step(cfg.Physics.DT)

	if !g.ZombiesSpawned() {
		t.Fatal("expected zombies spawned after first tick")
	}
	if got := countZombies(g); got != cfg.Zombie.Count {
		t.Fatalf("zombies = %d, want %d", got, cfg.Zombie.Count)
	}

	g.EachZombie(func(tr *components.Transform, limbs *components.Limbs, anim *components.Animator) {
		if limbs.LeftArm == nil || limbs.RightArm == nil {
			t.Error("procedural zombie should resolve both arms")
		}
		if anim.Clip != "Walk" {
			t.Errorf("clip = %q, want Walk", anim.Clip)
		}
	})
}

func TestGame_PendingLoadRunsWithoutZombies(t *testing.T) {
	cfg := config.Default()
	loader := &gatedLoader{release: make(chan struct{}), model: assets.ProceduralZombie()}
	g := NewGameWithOptions(cfg, Options{Seed: 1, ZombieModel: "zombie.glb", Loader: loader})
	defer g.Unload()

	for i := 0; i < 30; i++ {
		g.Step(cfg.Physics.DT)
	}
	if countZombies(g) != 0 || g.ZombiesSpawned() {
		t.Fatal("zombies spawned before the load completed")
	}
	if g.ZombieStats().Count != 0 {
		t.Errorf("zombie stats should be empty, got %+v", g.ZombieStats())
	}

	close(loader.release)
	waitForModel(t, g)
	g.Step(cfg.Physics.DT)

	if got := countZombies(g); got != cfg.Zombie.Count {
		t.Fatalf("zombies = %d after load, want %d", got, cfg.Zombie.Count)
	}

	// Spawning happens once
	g.Step(cfg.Physics.DT)
	if got := countZombies(g); got != cfg.Zombie.Count {
		t.Errorf("zombies respawned: %d", got)
	}
}

func TestGame_LoadErrorLeavesSceneRunning(t *testing.T) {
	cfg := config.Default()
	loader := &gatedLoader{err: errors.New("corrupt file")}
	g := NewGameWithOptions(cfg, Options{Seed: 1, ZombieModel: "broken.glb", Loader: loader})
	defer g.Unload()

	waitForModel(t, g)
	for i := 0; i < 10; i++ {
		g.Step(cfg.Physics.DT)
	}

	if countZombies(g) != 0 {
		t.Error("failed load must not spawn zombies")
	}
	if g.Tick() != 10 {
		t.Errorf("tick = %d, want 10", g.Tick())
	}
	if countVillagers(g) != cfg.Villager.Count {
		t.Error("villagers should be unaffected by the zombie load")
	}
}

func TestGame_LoadedModelSelectsWalkClipAndForearms(t *testing.T) {
	cfg := config.Default()
	model := &assets.Model{
		Path:  "zombie.glb",
		Bones: []string{"mixamorig:Hips", "mixamorig:LeftArm", "mixamorig:LeftForeArm", "mixamorig:RightArm", "mixamorig:RightForeArm"},
		Clips: []assets.Clip{{Name: "Idle", Duration: 2}, {Name: "Zombie Walking", Duration: 1.5}},
	}
	g := NewGameWithOptions(cfg, Options{Seed: 3, ZombieModel: "zombie.glb", Loader: &gatedLoader{model: model}})
	defer g.Unload()

	waitForModel(t, g)
	g.Step(cfg.Physics.DT)

	n := 0
	g.EachZombie(func(tr *components.Transform, limbs *components.Limbs, anim *components.Animator) {
		n++
		if anim.Clip != "Zombie Walking" {
			t.Errorf("clip = %q, want Zombie Walking", anim.Clip)
		}
		if anim.TimeScale != cfg.Zombie.ClipTimeScale {
			t.Errorf("time scale = %f", anim.TimeScale)
		}
		if limbs.LeftArm == nil || limbs.LeftArm.Name != "mixamorig:LeftForeArm" {
			t.Errorf("left arm = %+v, want forearm", limbs.LeftArm)
		}
	})
	if n != cfg.Zombie.Count {
		t.Fatalf("zombies = %d", n)
	}
}

// ---------- Scenarios ----------

// leadZombieZ returns the Z of the zombie spawned on the X=0 axis.
func leadZombieZ(t *testing.T, g *Game) float64 {
	t.Helper()
	z, found := 0.0, false
	g.EachZombie(func(tr *components.Transform, _ *components.Limbs, _ *components.Animator) {
		if math.Abs(tr.Position[0]) < 1 {
			z, found = tr.Position[2], true
		}
	})
	if !found {
		t.Fatal("lead zombie not found on the spawn axis")
	}
	return z
}

func TestGame_FirstZombiePursuesPlayer(t *testing.T) {
	cfg := config.Default()
	g := NewGame(cfg)
	defer g.Unload()

	g.Step(cfg.Physics.DT)
	before := leadZombieZ(t, g)
	g.Step(cfg.Physics.DT)
	after := leadZombieZ(t, g)

	// Player spawns at z=50 in front of the zombie at z=40
	if after <= before {
		t.Errorf("zombie should advance toward +Z, went from %f to %f", before, after)
	}
	maxStep := (cfg.Zombie.SpeedMin + cfg.Zombie.SpeedRange) * cfg.Physics.DT
	if after-before > maxStep+1e-9 {
		t.Errorf("zombie moved %f, more than speed*dt %f", after-before, maxStep)
	}
	if g.ZombieStats().Pursuing == 0 {
		t.Error("expected at least one pursuing zombie")
	}
}

func TestGame_DoorwayBlocksUntilInteract(t *testing.T) {
	cfg := config.Default()
	g := NewGame(cfg)
	defer g.Unload()

	g.Controls().KeyDown(input.KeyForward)
	for i := 0; i < 40; i++ {
		g.Step(cfg.Physics.DT)
	}
	z := g.Player().Position[2]
	if z < 31.5 || z > 33 {
		t.Fatalf("closed door should stop the player at the doorway, z = %f", z)
	}

	hit, ok := g.Interact()
	if !ok || hit.Kind != systems.InteractDoor {
		t.Fatalf("expected to hit the door, got %v %v", hit.Kind, ok)
	}
	if !g.House().DoorOpen() {
		t.Fatal("door should be open after interaction")
	}

	for i := 0; i < 40; i++ {
		g.Step(cfg.Physics.DT)
	}
	if z := g.Player().Position[2]; z > 20 {
		t.Errorf("player should walk through the open doorway, z = %f", z)
	}
}

func TestGame_InteractOutOfRange(t *testing.T) {
	cfg := config.Default()
	cfg.Derived.SpawnZ = 80
	g := NewGame(cfg)
	defer g.Unload()

	if _, ok := g.Interact(); ok {
		t.Error("door is beyond interaction range from z=80")
	}
	if g.House().DoorOpen() != cfg.House.DoorOpen {
		t.Error("door state changed without a hit")
	}
}

func TestGame_LookTurnsMovement(t *testing.T) {
	cfg := config.Default()
	g := NewGame(cfg)
	defer g.Unload()

	// 600 px * 0.15 deg/px = 90 degrees right of -Z
	g.Look(600, 0)
	g.Controls().KeyDown(input.KeyForward)
	start := g.Player().Position
	g.Step(cfg.Physics.DT)
	delta := g.Player().Position.Sub(start)

	want := mgl64.Vec3{cfg.Player.MoveSpeed * cfg.Physics.DT, 0, 0}
	if !delta.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("step = %v, want %v", delta, want)
	}
}

func TestGame_UpdateHeadlessRespectsPause(t *testing.T) {
	g := NewGame(config.Default())
	defer g.Unload()

	g.UpdateHeadless()
	g.TogglePause()
	g.UpdateHeadless()
	if g.Tick() != 1 {
		t.Errorf("tick = %d, want 1", g.Tick())
	}
}

// ---------- Telemetry ----------

func TestGame_StatsWindowsFlush(t *testing.T) {
	cfg := config.Default()
	cfg.Telemetry.StatsWindow = 1.0

	var windows []telemetry.WindowStats
	g := NewGameWithOptions(cfg, Options{
		Seed:          7,
		OutputDir:     t.TempDir(),
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	for i := 0; i < 130; i++ {
		g.Step(cfg.Physics.DT)
	}
	dir := g.outputManager.Dir()
	g.Unload()

	if len(windows) < 2 {
		t.Fatalf("expected at least 2 windows, got %d", len(windows))
	}
	last := windows[len(windows)-1]
	if last.Zombies != cfg.Zombie.Count {
		t.Errorf("window zombies = %d", last.Zombies)
	}
	total := last.VillagerIdle + last.VillagerWatch + last.VillagerWalk
	if total != cfg.Villager.Count {
		t.Errorf("villager state counts sum to %d", total)
	}

	for _, name := range []string{"telemetry.csv", "perf.csv", "bookmarks.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestGame_StatsWindowFollowsFrameTime(t *testing.T) {
	cfg := config.Default()
	cfg.Telemetry.StatsWindow = 1.0

	var windows []telemetry.WindowStats
	g := NewGameWithOptions(cfg, Options{
		Seed:          7,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	defer g.Unload()

	// 0.05s frames: one second is 20 ticks, not 60.
	for i := 0; i < 19; i++ {
		g.Step(0.05)
	}
	if len(windows) != 0 {
		t.Fatalf("window closed after %d ticks", g.Tick())
	}
	g.Step(0.05)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window after 1s of frames, got %d", len(windows))
	}
	if windows[0].WindowEndTick != 20 {
		t.Errorf("window end tick = %d, want 20", windows[0].WindowEndTick)
	}
	if math.Abs(windows[0].SimTimeSec-1.0) > 1e-6 {
		t.Errorf("sim time = %f, want 1.0", windows[0].SimTimeSec)
	}
}

func TestGame_TraceRecordsEveryTick(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()
	g := NewGameWithOptions(cfg, Options{Seed: 9, TraceDir: dir})

	for i := 0; i < 5; i++ {
		g.Step(cfg.Physics.DT)
	}
	g.Interact()
	g.Step(cfg.Physics.DT)
	g.Unload()

	ticks, err := telemetry.ReadTrace(filepath.Join(dir, "trace.jsonl.zst"))
	if err != nil {
		t.Fatalf("ReadTrace: %v", err)
	}
	if len(ticks) != 6 {
		t.Fatalf("trace has %d ticks, want 6", len(ticks))
	}
	if want := cfg.Villager.Count + cfg.Zombie.Count; len(ticks[0].Agents) != want {
		t.Errorf("tick 0 agents = %d, want %d", len(ticks[0].Agents), want)
	}

	spawned := false
	for _, ev := range ticks[0].Events {
		if ev.Type == telemetry.EventZombiesSpawned && ev.Count == cfg.Zombie.Count {
			spawned = true
		}
	}
	if !spawned {
		t.Errorf("tick 0 should record the zombie spawn, got %+v", ticks[0].Events)
	}
	for i, tt := range ticks {
		if tt.Tick != int32(i) {
			t.Errorf("record %d has tick %d", i, tt.Tick)
		}
	}
}
