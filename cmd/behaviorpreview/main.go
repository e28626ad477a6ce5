// Behavior preview tool - interactive visualization with sliders for the
// accretion-disk constants and live emotion switching.
//
// Usage: go run ./cmd/behaviorpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/joshtol/emotive-engine-sub002/camera"
	"github.com/joshtol/emotive-engine-sub002/config"
	"github.com/joshtol/emotive-engine-sub002/engine"
	"github.com/joshtol/emotive-engine-sub002/gesture"
	"github.com/joshtol/emotive-engine-sub002/render"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 700
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Behavior Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	config.MustInit("")
	cfg := config.Cfg()
	cfg.Screen.Width = previewSize
	cfg.Screen.Height = previewSize

	emotionIdx := 0
	needsRebuild := true

	var eng *engine.Engine
	cam := camera.New(previewSize, previewSize)
	cam.Zoom = 2.0
	drawer := render.NewDrawer()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyRight) {
			emotionIdx = (emotionIdx + 1) % len(cfg.Emotions)
			needsRebuild = true
		}
		if rl.IsKeyPressed(rl.KeyLeft) {
			emotionIdx = (emotionIdx - 1 + len(cfg.Emotions)) % len(cfg.Emotions)
			needsRebuild = true
		}
		if rl.IsKeyPressed(rl.KeyG) && eng != nil {
			eng.TriggerGesture(gesture.Spin, 1.5)
		}

		if needsRebuild {
			eng = engine.New(cfg, 42)
			eng.SetEmotion(cfg.Emotions[emotionIdx].Name, "")
			needsRebuild = false
		}

		eng.Update(float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 12, B: 20, A: 255})

		style := render.StyleSolid
		if eng.Current().Special == "blackhole" {
			style = render.StyleSoul
		}
		drawer.DrawCore(cam, 0, 0, 0, cfg.World.CoreRadius*0.05, style)
		drawer.DrawParticles(eng.Renderer().Buffers(), cam)
		rl.DrawRectangleLines(0, 0, previewSize, previewSize, rl.DarkGray)

		def := cfg.Emotions[emotionIdx]
		rl.DrawText(fmt.Sprintf("%s (%s)", def.Name, def.Behavior), 10, 10, 20, rl.RayWhite)
		rl.DrawText("left/right: emotion  G: spin", 10, 36, 10, rl.Gray)
		rl.DrawText(fmt.Sprintf("live: %d", eng.Pool().Count), 10, previewSize-24, 16, rl.Gray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Accretion Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		panelY = slider(panelX, panelY, "Decay rate (Rs/s)", &cfg.Accretion.DecayRate, 0.05, 2.0, &needsRebuild)
		panelY = slider(panelX, panelY, "Base angular velocity (rad/s)", &cfg.Accretion.BaseAngularVel, 0.2, 6.0, &needsRebuild)
		panelY = slider(panelX, panelY, "Min spawn radius (Rs)", &cfg.Accretion.MinRadius, 1.2, 5.0, &needsRebuild)
		panelY = slider(panelX, panelY, "Max spawn radius (Rs)", &cfg.Accretion.MaxRadius, 5.0, 14.0, &needsRebuild)
		panelY = slider(panelX, panelY, "Inclination span (rad)", &cfg.Accretion.InclinationSpan, 0.0, 0.5, &needsRebuild)
		panelY = slider(panelX, panelY, "Wobble frequency", &cfg.Accretion.WobbleFrequency, 0.5, 6.0, &needsRebuild)

		rl.DrawText("World", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35
		panelY = slider(panelX, panelY, "Orbit radius (core multiples)", &cfg.World.BaseRadius, 0.05, 1.0, &needsRebuild)
		slider(panelX, panelY, "Core radius (world units)", &cfg.World.CoreRadius, 20, 400, &needsRebuild)

		rl.EndDrawing()
	}
}

// slider draws one labeled SliderBar bound to a config value and returns the
// next panel row. Any change schedules an engine rebuild.
func slider(x, y float32, label string, value *float64, min, max float64, dirty *bool) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.2f", min), fmt.Sprintf("%.2f", max),
		float32(*value), float32(min), float32(max),
	)
	rl.DrawText(fmt.Sprintf("%.2f", *value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.RayWhite)
	if float64(next) != *value {
		*value = float64(next)
		*dirty = true
	}
	return y + 35
}
