package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hollow/config"
	"github.com/pthm-cable/hollow/game"
	"github.com/pthm-cable/hollow/renderer"
	"github.com/pthm-cable/hollow/ui"
)

// maxFrameDT caps the frame time fed to a tick after a stall.
const maxFrameDT = 0.1

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics at the fixed physics dt")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	traceDir := flag.String("trace-dir", "", "Directory for the compressed per-tick trace")
	zombieModel := flag.String("zombie-model", "", "glTF/GLB zombie model (overrides config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:        rngSeed,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		TraceDir:    *traceDir,
		ZombieModel: *zombieModel,
	}

	if *headless {
		runHeadless(cfg, opts, *maxTicks)
		return
	}
	runWindowed(cfg, opts, *maxTicks)
}

// runHeadless steps the scene at the fixed physics dt with no player input.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) {
	g := game.NewGameWithOptions(cfg, opts)
	defer g.Unload()

	slog.Info("starting headless scene",
		"seed", opts.Seed,
		"dt", cfg.Physics.DT,
		"max_ticks", maxTicks,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

// runWindowed runs the first-person viewer, one tick per rendered frame.
func runWindowed(cfg *config.Config, opts game.Options, maxTicks int) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Hollow")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.DisableCursor()

	g := game.NewGameWithOptions(cfg, opts)
	defer g.Unload()

	scene := renderer.NewScene(g)
	hud := ui.NewHUD()

	for !rl.WindowShouldClose() {
		in := ui.PollInput(g.Controls())
		g.Look(in.LookDX, in.LookDY)
		if in.Interact {
			if hit, ok := g.Interact(); ok {
				slog.Debug("interact", "target", hit.Kind.String())
			}
		}
		if in.Pause {
			g.TogglePause()
		}
		if in.TogglePerf {
			hud.TogglePerf()
		}

		if !g.Paused() {
			dt := float64(rl.GetFrameTime())
			if dt > maxFrameDT {
				dt = maxFrameDT
			}
			g.Step(dt)
		}
		g.PerfCollector().RecordFrame()

		rl.BeginDrawing()
		scene.Draw(g)
		actions := hud.Draw(ui.SampleHUD(g, rl.GetFPS()))
		rl.EndDrawing()

		if actions.ToggleDoor {
			g.ToggleDoor()
		}
		if actions.ToggleLight {
			g.ToggleLight()
		}
		if actions.TogglePause {
			g.TogglePause()
		}
		if actions.ResetCamera {
			g.Camera().Reset()
		}

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}
