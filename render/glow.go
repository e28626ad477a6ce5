package render

import (
	"math"

	"github.com/joshtol/emotive-engine-sub002/behavior"
	"github.com/joshtol/emotive-engine-sub002/config"
	"github.com/joshtol/emotive-engine-sub002/gesture"
)

// EffectsTransform is the frame-level glow modulation input derived by the
// engine: the active effect names (the emotion's ambient effect plus the
// gesture, when either applies), the gesture progress, the shimmer wave
// origin, and the frame clock.
type EffectsTransform struct {
	Effects  []string
	Progress float64
	CenterX  float64 // shimmer origin, canvas coordinates
	CenterY  float64
	Time     float64
}

// glowBoost computes the multiplicative glow boost for one particle.
// Active effects compose by max, not sum, so stacked effects cannot blow
// the intensity out.
func glowBoost(fx *EffectsTransform, c config.EffectsConfig, idx int, px, py, canvasW, canvasH float64) float64 {
	if fx == nil || len(fx.Effects) == 0 {
		return 1
	}

	boost := 1.0
	for _, name := range fx.Effects {
		var v float64
		switch name {
		case gesture.Firefly:
			// Positional phase desynchronizes neighboring particles.
			phase := px*0.013 + py*0.017
			v = c.FireflyBase + c.FireflySpan*(0.5+0.5*fastSin(fx.Time*2+phase))

		case gesture.Flicker:
			// Weighted blend of a fast sine and a deterministic jump keyed
			// by particle index and a quantized time step. The floor keeps
			// flicker visible; it must never reach zero.
			fast := 0.5 + 0.5*fastSin(fx.Time*c.FlickerSpeed+float64(idx))
			step := math.Floor(fx.Time * c.FlickerQuantum)
			jump := behavior.Hash(float64(idx)*17.31 + step*31.17)
			v = c.FlickerFloor + (2-c.FlickerFloor)*(0.6*fast+0.4*jump)

		case gesture.Shimmer:
			// Traveling wave keyed by distance from the gesture center.
			dx := px - fx.CenterX
			dy := py - fx.CenterY
			diag := math.Hypot(canvasW, canvasH)
			if diag <= 0 {
				diag = 1
			}
			d := math.Hypot(dx, dy) / diag
			v = c.ShimmerBase + c.ShimmerSpan*(0.5+0.5*fastSin(fx.Time*c.ShimmerSpeed-d*2*math.Pi))

		case gesture.Glow:
			// Single pulse shared by all particles, peaking at progress 0.5.
			v = 1 + c.GlowPeak*math.Sin(fx.Progress*math.Pi)

		default:
			continue
		}

		if v > boost {
			boost = v
		}
	}
	return boost
}
