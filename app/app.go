// Package app owns the demo session: the engine, camera, draw path,
// telemetry output, and keyboard bindings.
package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/joshtol/emotive-engine-sub002/camera"
	"github.com/joshtol/emotive-engine-sub002/config"
	"github.com/joshtol/emotive-engine-sub002/engine"
	"github.com/joshtol/emotive-engine-sub002/gesture"
	"github.com/joshtol/emotive-engine-sub002/render"
	"github.com/joshtol/emotive-engine-sub002/telemetry"
)

// Options configures a session.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
}

// App drives the engine and, in graphical mode, the camera and draw path.
type App struct {
	cfg  *config.Config
	opts Options

	engine *engine.Engine
	cam    *camera.Camera
	drawer *render.Drawer

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	statsWindowSec float64
	windowElapsed  float64

	// Keyboard emotion cycling state.
	emotionIdx   int
	undertoneIdx int
}

// undertoneKeys maps the cycling order; index 0 means no undertone.
var undertoneKeys = []string{"", "intense", "subdued", "nervous", "confident"}

// New creates a session from loaded configuration.
func New(cfg *config.Config, opts Options) (*App, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	if statsWindow <= 0 {
		statsWindow = 1.0
	}

	a := &App{
		cfg:            cfg,
		opts:           opts,
		engine:         engine.New(cfg, opts.Seed),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:         output,
		statsWindowSec: statsWindow,
	}
	a.engine.SetPerf(a.perf)

	if !opts.Headless {
		a.cam = camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height))
		a.cam.Zoom = 2.0
		a.drawer = render.NewDrawer()
	}
	return a, nil
}

// Engine exposes the underlying particle engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Step advances the simulation by dt and handles stats windows.
func (a *App) Step(dt float64) {
	a.engine.Update(dt)

	a.windowElapsed += dt
	if a.windowElapsed < a.statsWindowSec {
		return
	}
	a.windowElapsed -= a.statsWindowSec

	stats := a.engine.FlushStats()
	if a.opts.LogStats {
		stats.LogStats()
	}
	if err := a.output.WriteTelemetry(stats); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
	if err := a.output.WritePerf(a.perf.Snapshot(a.engine.Frame())); err != nil {
		slog.Warn("perf write failed", "error", err)
	}
}

// Update runs one graphical frame: input, simulation, window bookkeeping.
func (a *App) Update() {
	a.handleInput()
	a.Step(float64(rl.GetFrameTime()))
}

// Draw renders the current frame.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 12, B: 20, A: 255})

	style := render.StyleSolid
	if a.engine.Current().Special == "blackhole" {
		style = render.StyleSoul
	}
	a.drawer.DrawCore(a.cam, 0, 0, 0, a.cfg.World.CoreRadius*0.05, style)
	a.drawer.DrawParticles(a.engine.Renderer().Buffers(), a.cam)

	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	emotionName, undertone := a.engine.Emotion()
	label := emotionName
	if undertone != "" {
		label += " / " + undertone
	}
	rl.DrawText(label, 10, 10, 20, rl.RayWhite)
	rl.DrawText("left/right: emotion  up/down: undertone  1-4: gestures", 10, 36, 10, rl.Gray)
	rl.DrawFPS(int32(a.cfg.Screen.Width)-90, 10)
}

func (a *App) handleInput() {
	emotions := a.cfg.Emotions
	if len(emotions) > 0 {
		changed := false
		if rl.IsKeyPressed(rl.KeyRight) {
			a.emotionIdx = (a.emotionIdx + 1) % len(emotions)
			changed = true
		}
		if rl.IsKeyPressed(rl.KeyLeft) {
			a.emotionIdx = (a.emotionIdx - 1 + len(emotions)) % len(emotions)
			changed = true
		}
		if rl.IsKeyPressed(rl.KeyUp) {
			a.undertoneIdx = (a.undertoneIdx + 1) % len(undertoneKeys)
			changed = true
		}
		if rl.IsKeyPressed(rl.KeyDown) {
			a.undertoneIdx = (a.undertoneIdx - 1 + len(undertoneKeys)) % len(undertoneKeys)
			changed = true
		}
		if changed {
			a.engine.SetEmotion(emotions[a.emotionIdx].Name, undertoneKeys[a.undertoneIdx])
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		a.engine.TriggerGesture(gesture.Spin, 1.5)
	case rl.IsKeyPressed(rl.KeyTwo):
		a.engine.TriggerGesture(gesture.Rain, 2.0)
	case rl.IsKeyPressed(rl.KeyThree):
		a.engine.TriggerGesture(gesture.Glow, 1.0)
	case rl.IsKeyPressed(rl.KeyFour):
		a.engine.TriggerGesture(gesture.Shimmer, 1.8)
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		a.engine.SetGestureCenter(float64(pos.X), float64(pos.Y))
		a.engine.SetTarget(float64(pos.X), float64(pos.Y))
	}

	wheel := float64(rl.GetMouseWheelMove())
	if wheel != 0 {
		a.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyDown(rl.KeyA) {
		a.cam.Orbit(0.02)
	}
	if rl.IsKeyDown(rl.KeyD) {
		a.cam.Orbit(-0.02)
	}
}

// SetCore moves the mascot anchor.
func (a *App) SetCore(pos r3.Vec) {
	a.engine.SetCore(pos)
	if a.cam != nil {
		a.cam.Target = pos
	}
}

// Close flushes telemetry files.
func (a *App) Close() {
	if a.windowElapsed > 0 {
		stats := a.engine.FlushStats()
		if err := a.output.WriteTelemetry(stats); err != nil {
			slog.Warn("telemetry write failed", "error", err)
		}
	}
	if err := a.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}
}
