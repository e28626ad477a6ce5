package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/joshtol/emotive-engine-sub002/camera"
)

func rlVec(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// Drawer renders packed buffers with raylib. Particles draw in two passes:
// an additive glow halo, then the body circle.
type Drawer struct {
	coreColor rl.Color
}

// NewDrawer creates a drawer with the default core color.
func NewDrawer() *Drawer {
	return &Drawer{coreColor: rl.Color{R: 240, G: 240, B: 250, A: 255}}
}

// SetCoreColor sets the mascot body color.
func (d *Drawer) SetCoreColor(c rl.Color) {
	d.coreColor = c
}

// DrawCore renders the mascot body at its projected position.
func (d *Drawer) DrawCore(cam *camera.Camera, coreX, coreY, coreZ, coreRadius float64, style CoreStyle) {
	sx, sy, scale, visible := cam.Project(rlVec(coreX, coreY, coreZ), coreRadius)
	if !visible {
		return
	}
	r := float32(coreRadius * scale)

	if style == StyleSoul {
		// See-through interior with a rim.
		inner := d.coreColor
		inner.A = 70
		rl.DrawCircle(int32(sx), int32(sy), r, inner)
		rl.DrawCircleLines(int32(sx), int32(sy), r, d.coreColor)
		return
	}
	rl.DrawCircle(int32(sx), int32(sy), r, d.coreColor)
}

// DrawParticles renders the packed draw range through the camera.
func (d *Drawer) DrawParticles(bufs *Buffers, cam *camera.Camera) {
	n := bufs.Count()

	// Glow pass: additive halos so overlapping glows accumulate.
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := 0; i < n; i++ {
		alpha := bufs.Alphas[i]
		glow := bufs.Glows[i]
		if alpha <= 0 || glow <= 1 {
			continue
		}
		sx, sy, scale, visible := d.project(bufs, cam, i)
		if !visible {
			continue
		}
		halo := float32(float64(bufs.Sizes[i]) * scale * float64(glow))
		c := particleColor(bufs, i)
		c.A = uint8(float32(c.A) * 0.25 * (glow - 1))
		rl.DrawCircle(int32(sx), int32(sy), halo, c)
	}
	rl.EndBlendMode()

	// Body pass.
	for i := 0; i < n; i++ {
		if bufs.Alphas[i] <= 0 {
			continue
		}
		sx, sy, scale, visible := d.project(bufs, cam, i)
		if !visible {
			continue
		}
		size := float32(float64(bufs.Sizes[i]) * scale)
		if size < 0.5 {
			size = 0.5
		}
		c := particleColor(bufs, i)

		if bufs.Styles[i] >= 1 {
			// Cell-shaded: flat fill with a hard outline.
			rl.DrawCircle(int32(sx), int32(sy), size, c)
			rl.DrawCircleLines(int32(sx), int32(sy), size, rl.Color{A: c.A})
			continue
		}
		rl.DrawCircle(int32(sx), int32(sy), size, c)
	}
}

func (d *Drawer) project(bufs *Buffers, cam *camera.Camera, i int) (float64, float64, float64, bool) {
	return cam.Project(rlVec(
		float64(bufs.Positions[i*3]),
		float64(bufs.Positions[i*3+1]),
		float64(bufs.Positions[i*3+2]),
	), float64(bufs.Sizes[i]))
}

func particleColor(bufs *Buffers, i int) rl.Color {
	a := bufs.Alphas[i]
	return rl.Color{
		R: uint8(clamp01f(bufs.Colors[i*3]) * 255),
		G: uint8(clamp01f(bufs.Colors[i*3+1]) * 255),
		B: uint8(clamp01f(bufs.Colors[i*3+2]) * 255),
		A: uint8(clamp01f(a) * 255),
	}
}

func clamp01f(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
