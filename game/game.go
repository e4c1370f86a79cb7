// Package game owns the scene simulation context: the agent world, the
// player, the house and the telemetry outputs, advanced by a fixed-order Step.
package game

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hollow/assets"
	"github.com/pthm-cable/hollow/camera"
	"github.com/pthm-cable/hollow/components"
	"github.com/pthm-cable/hollow/config"
	"github.com/pthm-cable/hollow/input"
	"github.com/pthm-cable/hollow/level"
	"github.com/pthm-cable/hollow/systems"
	"github.com/pthm-cable/hollow/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed          int64
	LogStats      bool
	OutputDir     string        // Directory for CSV output (empty = disabled)
	TraceDir      string        // Directory for the tick trace (empty = disabled)
	ZombieModel   string        // Overrides the configured zombie model path
	Loader        assets.Loader // Nil uses the glTF loader
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete scene state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	// Entity mappers and read filters
	villagerMapper *ecs.Map4[components.Transform, components.Agent, components.Villager, components.Limbs]
	zombieMapper   *ecs.Map5[components.Transform, components.Agent, components.Zombie, components.Limbs, components.Animator]
	villagerFilter *ecs.Filter4[components.Transform, components.Agent, components.Villager, components.Limbs]
	zombieFilter   *ecs.Filter5[components.Transform, components.Agent, components.Zombie, components.Limbs, components.Animator]

	// Behavior systems
	villagers *systems.VillagerSystem
	zombies   *systems.ZombieSystem

	// Static level and interactive house
	level      *level.Level
	house      *systems.House
	colliders  *systems.Colliders
	locomotion *systems.Locomotion

	// Player
	player   systems.PlayerState
	camera   *camera.Camera
	controls input.Controls
	hand     systems.HandSway
	handPose systems.HandPose

	// Zombie asset load; zombies spawn once when it resolves
	zombieModel    *assets.Future[*assets.Model]
	zombiesSpawned bool
	cancelLoad     context.CancelFunc

	// Last tick results, sampled by telemetry and the HUD
	lastMove     systems.MoveResult
	lastVillager systems.VillagerStats
	lastZombie   systems.ZombieStats
	events       []telemetry.Event

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	trace            *telemetry.TraceWriter
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	// State
	tick   int32
	paused bool
}

// NewGame creates a scene with default options.
func NewGame(cfg *config.Config) *Game {
	return NewGameWithOptions(cfg, Options{Seed: 42})
}

// NewGameWithOptions creates a new scene. Villagers spawn immediately;
// zombies spawn on the first tick after their model finishes loading.
// Output and trace failures are logged and leave that output disabled.
func NewGameWithOptions(cfg *config.Config, opts Options) *Game {
	world := ecs.NewWorld()

	g := &Game{
		cfg:     cfg,
		world:   world,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		rngSeed: opts.Seed,

		villagerMapper: ecs.NewMap4[components.Transform, components.Agent, components.Villager, components.Limbs](world),
		zombieMapper:   ecs.NewMap5[components.Transform, components.Agent, components.Zombie, components.Limbs, components.Animator](world),
		villagerFilter: ecs.NewFilter4[components.Transform, components.Agent, components.Villager, components.Limbs](world),
		zombieFilter:   ecs.NewFilter5[components.Transform, components.Agent, components.Zombie, components.Limbs, components.Animator](world),

		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	g.villagers = systems.NewVillagerSystem(world, cfg.Villager, g.rng)
	g.zombies = systems.NewZombieSystem(world, cfg.Zombie)

	// Level and collision
	g.level = level.BuildHouse(cfg.House, cfg.Player.EyeHeight)
	g.house = systems.NewHouse(cfg.House)
	g.colliders = systems.NewColliders(g.level.Footprint, cfg.Player.Radius, g.level.Doorway, g.house)
	g.locomotion = systems.NewLocomotion(cfg.Player, g.colliders)

	// Player and camera
	g.player.Position = mgl64.Vec3{cfg.Derived.SpawnX, cfg.Derived.SpawnY, cfg.Derived.SpawnZ}
	g.camera = camera.New(cfg.Camera.InitialLat, cfg.Camera.InitialLon, cfg.Camera.Sensitivity, cfg.Camera.MaxLat, cfg.Camera.FOV)

	// Telemetry
	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)

	if om, err := telemetry.NewOutputManager(opts.OutputDir); err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}
	if tw, err := telemetry.NewTraceWriter(opts.TraceDir); err != nil {
		slog.Error("failed to create trace writer", "error", err)
	} else {
		g.trace = tw
	}

	g.spawnVillagers()
	g.startZombieLoad(opts)

	return g
}

// startZombieLoad begins the asynchronous zombie model load.
func (g *Game) startZombieLoad(opts Options) {
	path := g.cfg.Zombie.ModelPath
	if opts.ZombieModel != "" {
		path = opts.ZombieModel
	}
	if path == "" {
		g.zombieModel = assets.Ready(assets.ProceduralZombie())
		return
	}

	loader := opts.Loader
	if loader == nil {
		loader = assets.GLTFLoader{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancelLoad = cancel
	g.zombieModel = assets.LoadAsync(ctx, loader, path)
	slog.Info("loading zombie model", "path", path)
}

// Config returns the scene configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Seed returns the RNG seed used for this run.
func (g *Game) Seed() int64 {
	return g.rngSeed
}

// Player returns the player body.
func (g *Game) Player() systems.PlayerState {
	return g.player
}

// Camera returns the first-person camera.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}

// Controls returns the input state fed by the device layer.
func (g *Game) Controls() *input.Controls {
	return &g.controls
}

// Level returns the static house geometry.
func (g *Game) Level() *level.Level {
	return g.level
}

// House returns the door and light state.
func (g *Game) House() *systems.House {
	return g.house
}

// HandPose returns the view-model hand pose from the last tick.
func (g *Game) HandPose() systems.HandPose {
	return g.handPose
}

// VillagerStats returns the villager summary from the last tick.
func (g *Game) VillagerStats() systems.VillagerStats {
	return g.lastVillager
}

// ZombieStats returns the zombie summary from the last tick.
func (g *Game) ZombieStats() systems.ZombieStats {
	return g.lastZombie
}

// ZombiesSpawned reports whether the zombie model load has completed.
func (g *Game) ZombiesSpawned() bool {
	return g.zombiesSpawned
}

// PerfCollector returns the step timing collector.
func (g *Game) PerfCollector() *telemetry.PerfCollector {
	return g.perfCollector
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// TogglePause suspends or resumes stepping.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// EachVillager calls fn for every villager.
func (g *Game) EachVillager(fn func(tr *components.Transform, v *components.Villager, limbs *components.Limbs)) {
	query := g.villagerFilter.Query()
	for query.Next() {
		tr, _, v, limbs := query.Get()
		fn(tr, v, limbs)
	}
}

// EachZombie calls fn for every zombie.
func (g *Game) EachZombie(fn func(tr *components.Transform, limbs *components.Limbs, anim *components.Animator)) {
	query := g.zombieFilter.Query()
	for query.Next() {
		tr, _, _, limbs, anim := query.Get()
		fn(tr, limbs, anim)
	}
}

// Unload stops any pending load and closes output files.
func (g *Game) Unload() {
	if g.cancelLoad != nil {
		g.cancelLoad()
	}
	if err := g.trace.Close(); err != nil {
		slog.Error("failed to close trace", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
