package render

import (
	"log/slog"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/joshtol/emotive-engine-sub002/behavior"
	"github.com/joshtol/emotive-engine-sub002/config"
	"github.com/joshtol/emotive-engine-sub002/particle"
)

// CoreStyle selects the mascot body rendering mode. Soul-style cores are
// see-through, so particles in front of the visible interior are hidden.
type CoreStyle uint8

const (
	StyleSolid CoreStyle = iota
	StyleSoul
)

// FrameInfo carries the per-frame packing inputs.
type FrameInfo struct {
	CoreZ      float64 // core anchor depth in world units
	CoreRadius float64
	CanvasW    float64
	CanvasH    float64
	Glow       float64 // emotion base glow multiplier
	Effects    *EffectsTransform
}

// Renderer packs per-particle attributes into flat buffers with per-frame
// culling and gesture glow modulation.
type Renderer struct {
	cfg config.RenderConfig
	fx  config.EffectsConfig

	bufs      *Buffers
	coreStyle CoreStyle

	palette []colorful.Color
	frame   FrameInfo
}

// NewRenderer creates a renderer with buffers for maxParticles.
func NewRenderer(cfg config.RenderConfig, fx config.EffectsConfig, maxParticles int) *Renderer {
	r := &Renderer{
		cfg:     cfg,
		fx:      fx,
		bufs:    NewBuffers(maxParticles),
		palette: []colorful.Color{{R: 1, G: 1, B: 1}},
	}
	return r
}

// Buffers exposes the packed attribute arrays for the draw call.
func (r *Renderer) Buffers() *Buffers {
	return r.bufs
}

// SetCoreStyle switches the culling mode.
func (r *Renderer) SetCoreStyle(style CoreStyle) {
	r.coreStyle = style
}

// SetPalette parses the emotion's hex colors, optionally blending in an
// undertone tint. Malformed hex strings are skipped; an empty result falls
// back to white so the buffer never carries garbage color.
func (r *Renderer) SetPalette(hexes []string, tint string, tintStrength float64) {
	palette := make([]colorful.Color, 0, len(hexes))

	var tintColor colorful.Color
	hasTint := false
	if tint != "" && tintStrength > 0 {
		c, err := colorful.Hex(tint)
		if err != nil {
			slog.Warn("invalid undertone tint", "tint", tint, "error", err)
		} else {
			tintColor = c
			hasTint = true
		}
	}

	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			slog.Warn("invalid particle color", "color", h, "error", err)
			continue
		}
		if hasTint {
			c = c.BlendRgb(tintColor, clamp01(tintStrength))
		}
		palette = append(palette, c)
	}

	if len(palette) == 0 {
		palette = []colorful.Color{{R: 1, G: 1, B: 1}}
	}
	r.palette = palette
}

// Begin starts a new frame: rewinds the draw range and installs the frame
// inputs shared by every Pack call.
func (r *Renderer) Begin(frame FrameInfo) {
	r.frame = frame
	r.bufs.Reset()
}

// Pack appends one particle. pos is the translated world-space position.
// Buffer indexing stays stable under culling: hidden particles are packed
// with alpha zero, never skipped.
func (r *Renderer) Pack(p *particle.Particle, pos r3.Vec) {
	seed := float64(p.Seed)

	// Size: base x behavior multiplier x organic jitter.
	jitter := 1 + (behavior.Hash(seed*13.7)-0.5)*2*r.cfg.SizeJitter
	size := r.cfg.BaseSize * behaviorSizeMult(p.Behavior) * jitter

	c := r.palette[int(p.Seed)%len(r.palette)]

	// Alpha: remaining life scaled by a stable per-spawn variation.
	baseOpacity := r.cfg.OpacityFloor + (1-r.cfg.OpacityFloor)*behavior.Hash(seed*7.3)
	alpha := clamp01(p.Life) * baseOpacity

	// A particle killed mid-frame still holds life and a final position.
	// It must not render there, even for one frame.
	if !p.IsAlive {
		alpha = 0
	}

	// Soul-style cores are see-through: force-hide particles in front of
	// the visible interior instead of dropping them from the buffer.
	if r.coreStyle == StyleSoul {
		threshold := r.frame.CoreZ + r.cfg.CullThreshold*r.frame.CoreRadius
		if pos.Z > threshold {
			alpha = 0
		}
	}

	glow := r.frame.Glow * r.cfg.BaseGlow *
		glowBoost(r.frame.Effects, r.fx, p.Slot, p.X, p.Y, r.frame.CanvasW, r.frame.CanvasH)

	depth := clamp01((p.Z + 1) / 2)

	style := float32(0)
	if p.CellShaded {
		style = 1
	}

	r.bufs.push(
		float32(pos.X), float32(pos.Y), float32(pos.Z),
		float32(size),
		float32(c.R), float32(c.G), float32(c.B),
		float32(alpha),
		float32(glow),
		float32(depth),
		style,
	)
}

// behaviorSizeMult scales particle size per behavior family.
func behaviorSizeMult(name string) float64 {
	switch name {
	case "gravitationalAccretion":
		return 0.6
	case "burst", "popcorn":
		return 1.3
	case "zen", "resting":
		return 0.8
	default:
		return 1.0
	}
}
