package ui

import (
	"fmt"
	"math"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hollow/game"
	"github.com/pthm-cable/hollow/telemetry"
)

// HUDData holds all the data needed to render the HUD for one frame.
type HUDData struct {
	Tick   int32
	FPS    int32
	Paused bool

	VillagerIdle  int
	VillagerWatch int
	VillagerWalk  int

	ZombiesLoaded bool
	Zombies       int
	Pursuing      int
	NearestZombie float64 // +Inf when there are no zombies

	DoorOpen bool
	LightOn  bool

	PlayerX, PlayerY, PlayerZ float64
	Airborne                  bool

	Perf         telemetry.PerfStats
	ScreenWidth  int32
	ScreenHeight int32
}

// SampleHUD gathers HUD data from the game.
func SampleHUD(g *game.Game, fps int32) HUDData {
	v, z := g.VillagerStats(), g.ZombieStats()
	p := g.Player()

	nearest := math.Inf(1)
	for _, d := range z.Distances {
		nearest = math.Min(nearest, d)
	}

	return HUDData{
		Tick:          g.Tick(),
		FPS:           fps,
		Paused:        g.Paused(),
		VillagerIdle:  v.Idle,
		VillagerWatch: v.Watch,
		VillagerWalk:  v.Walk,
		ZombiesLoaded: g.ZombiesSpawned(),
		Zombies:       z.Count,
		Pursuing:      z.Pursuing,
		NearestZombie: nearest,
		DoorOpen:      g.House().DoorOpen(),
		LightOn:       g.House().LightOn(),
		PlayerX:       p.Position[0],
		PlayerY:       p.Position[1],
		PlayerZ:       p.Position[2],
		Airborne:      p.Airborne,
		Perf:          g.PerfCollector().Stats(),
		ScreenWidth:   int32(rl.GetScreenWidth()),
		ScreenHeight:  int32(rl.GetScreenHeight()),
	}
}

// HUDActions reports which HUD buttons were pressed this frame.
type HUDActions struct {
	ToggleDoor  bool
	ToggleLight bool
	TogglePause bool
	ResetCamera bool
}

func onOff(b bool, on, off string) string {
	if b {
		return on
	}
	return off
}

// scenePanel is the main status panel layout.
var scenePanel = PanelDescriptor{
	Title: "Hollow",
	Width: 230,
	Sections: []SectionDescriptor{
		{
			Title: "Villagers",
			Fields: []FieldDescriptor{
				{Label: "Idle", Widget: WidgetText, Format: "%.0f", Getter: func(d HUDData) float32 { return float32(d.VillagerIdle) }},
				{Label: "Watching", Widget: WidgetText, Format: "%.0f", Getter: func(d HUDData) float32 { return float32(d.VillagerWatch) }},
				{Label: "Walking", Widget: WidgetText, Format: "%.0f", Getter: func(d HUDData) float32 { return float32(d.VillagerWalk) }},
			},
		},
		{
			Title: "Zombies",
			Fields: []FieldDescriptor{
				{
					Label:      "Status",
					Widget:     WidgetText,
					Visible:    func(d HUDData) bool { return !d.ZombiesLoaded },
					TextGetter: func(HUDData) string { return "loading..." },
				},
				{
					Label:      "Pursuing",
					Widget:     WidgetText,
					Visible:    func(d HUDData) bool { return d.ZombiesLoaded },
					TextGetter: func(d HUDData) string { return fmt.Sprintf("%d / %d", d.Pursuing, d.Zombies) },
				},
				{
					Label:   "Nearest",
					Widget:  WidgetText,
					Format:  "%.1f",
					Visible: func(d HUDData) bool { return d.Zombies > 0 },
					Getter:  func(d HUDData) float32 { return float32(d.NearestZombie) },
				},
				{
					Label:   "Threat",
					Widget:  WidgetBar,
					Visible: func(d HUDData) bool { return d.Zombies > 0 },
					Getter:  func(d HUDData) float32 { return float32(d.Pursuing) / float32(d.Zombies) },
				},
			},
		},
		{
			Title: "House",
			Fields: []FieldDescriptor{
				{Label: "Door", Widget: WidgetText, TextGetter: func(d HUDData) string { return onOff(d.DoorOpen, "open", "closed") }},
				{Label: "Light", Widget: WidgetText, TextGetter: func(d HUDData) string { return onOff(d.LightOn, "on", "off") }},
			},
		},
		{
			Title: "Player",
			Fields: []FieldDescriptor{
				{Label: "Position", Widget: WidgetText, TextGetter: func(d HUDData) string {
					return fmt.Sprintf("%.1f, %.1f, %.1f", d.PlayerX, d.PlayerY, d.PlayerZ)
				}},
				{Label: "Airborne", Widget: WidgetText, Visible: func(d HUDData) bool { return d.Airborne }, TextGetter: func(HUDData) string { return "yes" }},
			},
		},
	},
}

// HUD renders the heads-up display.
type HUD struct {
	renderer    *Renderer
	panelHeight int32
	showPerf    bool
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// TogglePerf shows or hides the performance panel.
func (h *HUD) TogglePerf() {
	h.showPerf = !h.showPerf
}

// Draw renders the HUD and its buttons. Call after the 3D scene.
func (h *HUD) Draw(data HUDData) HUDActions {
	h.panelHeight = h.renderer.DrawPanelDescriptor(10, 10, scenePanel, data, h.panelHeight)
	h.drawCrosshair(data)

	rl.DrawText(fmt.Sprintf("Tick %d | FPS %d", data.Tick, data.FPS), data.ScreenWidth-170, 10, 16, rl.LightGray)
	if data.Paused {
		rl.DrawText("PAUSED", data.ScreenWidth/2-40, 40, 20, rl.Yellow)
	}
	if h.showPerf {
		h.drawPerf(data.Perf, data.ScreenWidth-230, 40)
	}

	rl.DrawText("WASD move | Space jump | E/click interact | Tab cursor | P pause | F3 perf",
		10, data.ScreenHeight-25, 14, rl.Gray)

	return h.drawButtons(data)
}

func (h *HUD) drawButtons(data HUDData) HUDActions {
	const bw, bh, gap = 110, 28, 8
	x := float32(data.ScreenWidth) - 4*(bw+gap)
	y := float32(data.ScreenHeight) - bh - 40

	var a HUDActions
	a.ToggleDoor = gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: bh}, onOff(data.DoorOpen, "Close Door", "Open Door"))
	x += bw + gap
	a.ToggleLight = gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: bh}, onOff(data.LightOn, "Light Off", "Light On"))
	x += bw + gap
	a.TogglePause = gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: bh}, onOff(data.Paused, "Resume", "Pause"))
	x += bw + gap
	a.ResetCamera = gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: bh}, "Reset View")
	return a
}

func (h *HUD) drawCrosshair(data HUDData) {
	cx, cy := data.ScreenWidth/2, data.ScreenHeight/2
	c := h.renderer.Theme.Crosshair
	rl.DrawLine(cx-8, cy, cx+8, cy, c)
	rl.DrawLine(cx, cy-8, cx, cy+8, c)
}

// drawPerf renders the step phase breakdown.
func (h *HUD) drawPerf(s telemetry.PerfStats, x, y int32) {
	r := h.renderer
	height := int32(len(telemetry.Phases)+2)*14 + 2*r.Theme.Padding
	r.DrawPanel(x, y, 220, height)

	x += r.Theme.Padding
	y += r.Theme.Padding
	rl.DrawText(fmt.Sprintf("Tick avg %s", s.AvgTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		pct := s.PhasePct[phase]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-11s %8s %5.1f%%", phase, s.PhaseAvg[phase].Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
