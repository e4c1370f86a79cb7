// Package config provides configuration loading and access for the scene.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed schema.json
var schemaJSON string

// Config holds all scene configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Player      PlayerConfig      `yaml:"player"`
	Camera      CameraConfig      `yaml:"camera"`
	House       HouseConfig       `yaml:"house"`
	Interaction InteractionConfig `yaml:"interaction"`
	Villager    VillagerConfig    `yaml:"villager"`
	Zombie      ZombieConfig      `yaml:"zombie"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // Fixed tick length used by headless runs
}

// PlayerConfig holds locomotion and collision parameters for the player.
type PlayerConfig struct {
	Spawn         []float64 `yaml:"spawn"`          // [x, y, z]
	EyeHeight     float64   `yaml:"eye_height"`     // Ground clamp for the camera
	MoveSpeed     float64   `yaml:"move_speed"`     // Horizontal units per second
	JumpVelocity  float64   `yaml:"jump_velocity"`  // Launch vertical velocity
	Gravity       float64   `yaml:"gravity"`        // Vertical velocity decrement per tick
	VerticalScale float64   `yaml:"vertical_scale"` // position.y += vy * this
	Radius        float64   `yaml:"radius"`         // Collider inflation
}

// CameraConfig holds first-person look parameters.
type CameraConfig struct {
	Sensitivity float64 `yaml:"sensitivity"` // Degrees per pixel of mouse motion
	InitialLat  float64 `yaml:"initial_lat"` // Degrees
	InitialLon  float64 `yaml:"initial_lon"` // Degrees
	MaxLat      float64 `yaml:"max_lat"`     // Pitch clamp in degrees
	FOV         float64 `yaml:"fov"`
}

// DoorwayConfig is the blocking rectangle used while the door is closed.
type DoorwayConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinZ float64 `yaml:"min_z"`
	MaxZ float64 `yaml:"max_z"`
}

// HouseConfig holds level geometry and door/light parameters.
type HouseConfig struct {
	Width        float64       `yaml:"width"`
	Depth        float64       `yaml:"depth"`
	WallHeight   float64       `yaml:"wall_height"`
	Thickness    float64       `yaml:"thickness"`
	WindowWidth  float64       `yaml:"window_width"`
	WindowHeight float64       `yaml:"window_height"`
	DoorWidth    float64       `yaml:"door_width"`
	DoorHeight   float64       `yaml:"door_height"`
	DoorSpeed    float64       `yaml:"door_speed"` // Door swing easing rate
	Doorway      DoorwayConfig `yaml:"doorway"`
	DoorOpen     bool          `yaml:"door_open"` // Initial door state
	LightOn      bool          `yaml:"light_on"`  // Initial light state
}

// InteractionConfig holds interaction raycast parameters.
type InteractionConfig struct {
	Range float64 `yaml:"range"`
}

// VillagerConfig holds villager spawn and behavior parameters.
type VillagerConfig struct {
	Count          int     `yaml:"count"`
	SpawnRadius    float64 `yaml:"spawn_radius"`    // Base ring radius
	SpawnJitter    float64 `yaml:"spawn_jitter"`    // Random extra radius
	SpawnOffsetZ   float64 `yaml:"spawn_offset_z"`  // Ring center Z
	Scale          float64 `yaml:"scale"`           // Visual scale
	WalkSpeedMin   float64 `yaml:"walk_speed_min"`
	WalkSpeedRange float64 `yaml:"walk_speed_range"`
	WatchRange     float64 `yaml:"watch_range"`
	WanderExtent   float64 `yaml:"wander_extent"` // Side of the square wander region
	ArriveRadius   float64 `yaml:"arrive_radius"`
	TurnRate       float64 `yaml:"turn_rate"`       // WALK slerp rate
	WatchTurnRate  float64 `yaml:"watch_turn_rate"` // WATCH slerp rate
	StrideScale    float64 `yaml:"stride_scale"`    // Step multiplier for giant scale
	GaitRate       float64 `yaml:"gait_rate"`
	SwingAmplitude float64 `yaml:"swing_amplitude"`
	RelaxRate      float64 `yaml:"relax_rate"`
	InitialIdleMax float64 `yaml:"initial_idle_max"`
	IdleMin        float64 `yaml:"idle_min"`
	IdleRange      float64 `yaml:"idle_range"`
	WalkMin        float64 `yaml:"walk_min"`
	WalkRange      float64 `yaml:"walk_range"`
}

// ZombieConfig holds zombie spawn and pursuit parameters.
type ZombieConfig struct {
	Count         int     `yaml:"count"`
	ModelPath     string  `yaml:"model_path"` // Empty = procedural rig
	Lift          float64 `yaml:"lift"`       // Spawn Y offset
	FirstSpawnZ   float64 `yaml:"first_spawn_z"`
	RingRadius    float64 `yaml:"ring_radius"`
	SpeedMin      float64 `yaml:"speed_min"`
	SpeedRange    float64 `yaml:"speed_range"`
	PursuitRange  float64 `yaml:"pursuit_range"`
	SwayRate      float64 `yaml:"sway_rate"`
	ArmBase       float64 `yaml:"arm_base"`
	ArmAmplitude  float64 `yaml:"arm_amplitude"`
	ClipTimeScale float64 `yaml:"clip_time_scale"`
	Height        float64 `yaml:"height"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SpawnX, SpawnY, SpawnZ float64 // Player spawn
	MaxLatRad              float64 // Camera.MaxLat in radians
	TicksPerWindow         int32   // Telemetry.StatsWindow / Physics.DT
	ScreenW32, ScreenH32   float32
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Validate(data); err != nil {
			return nil, err
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// Default returns the embedded defaults. Panics if they do not parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Validate checks a YAML document against the embedded config schema.
func Validate(data []byte) error {
	schema, err := jsonschema.CompileString("schema.json", schemaJSON)
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if raw == nil {
		return nil
	}

	// The validator expects encoding/json value types.
	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("converting config file: %w", err)
	}
	var doc any
	if err := json.Unmarshal(buf, &doc); err != nil {
		return fmt.Errorf("converting config file: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	spawn := append([]float64(nil), c.Player.Spawn...)
	for len(spawn) < 3 {
		spawn = append(spawn, 0)
	}
	c.Derived.SpawnX, c.Derived.SpawnY, c.Derived.SpawnZ = spawn[0], spawn[1], spawn[2]
	if c.Derived.SpawnY < c.Player.EyeHeight {
		c.Derived.SpawnY = c.Player.EyeHeight
	}

	c.Derived.MaxLatRad = c.Camera.MaxLat * math.Pi / 180

	dt := c.Physics.DT
	if dt <= 0 {
		dt = 1.0 / 60.0
		c.Physics.DT = dt
	}
	ticks := int32(c.Telemetry.StatsWindow / dt)
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.TicksPerWindow = ticks

	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Zombie.ModelPath = strings.TrimSpace(c.Zombie.ModelPath)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
