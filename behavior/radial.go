package behavior

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/joshtol/emotive-engine-sub002/particle"
)

// rampKind selects how a radial-shell behavior maps particle state to the
// [0,1] interpolation factor between its min and max orbit multipliers.
type rampKind uint8

const (
	// rampRadial uses the particle's normalized 2D distance from the canvas
	// center, so outer spawns sit on outer shells.
	rampRadial rampKind = iota
	// rampAge grows toward 1 as the particle ages: 1 - exp(-age*k).
	rampAge
	// rampLife grows as life drains: 1 - life.
	rampLife
)

// radialSpec parameterizes one radial-shell behavior. The family differs
// only in constants; keeping it as data prevents twenty near-duplicate
// functions from drifting apart.
type radialSpec struct {
	minMult  float64
	maxMult  float64
	ramp     rampKind
	ageScale float64 // rampAge steepness
	pop      bool    // popcorn-style delayed release
}

// radialSpecs is the constant table for the radial-shell family.
var radialSpecs = map[string]radialSpec{
	"ambient":    {minMult: 1.2, maxMult: 2.6, ramp: rampRadial},
	"resting":    {minMult: 1.0, maxMult: 1.6, ramp: rampRadial},
	"radiant":    {minMult: 1.4, maxMult: 3.2, ramp: rampRadial},
	"cautious":   {minMult: 1.6, maxMult: 2.4, ramp: rampRadial},
	"curious":    {minMult: 1.3, maxMult: 3.0, ramp: rampRadial},
	"glitchy":    {minMult: 1.2, maxMult: 2.8, ramp: rampRadial},
	"flickering": {minMult: 1.1, maxMult: 2.4, ramp: rampRadial},
	"scattering": {minMult: 1.5, maxMult: 4.0, ramp: rampAge, ageScale: 2.5},
	"repelling":  {minMult: 1.8, maxMult: 4.5, ramp: rampAge, ageScale: 3.0},
	"burst":      {minMult: 1.0, maxMult: 5.0, ramp: rampAge, ageScale: 4.0},
	"energetic":  {minMult: 1.0, maxMult: 3.5, ramp: rampAge, ageScale: 2.0},
	"popcorn":    {minMult: 1.0, maxMult: 3.0, ramp: rampAge, ageScale: 5.0, pop: true},
	"aggressive": {minMult: 0.8, maxMult: 2.2, ramp: rampLife},
	"connecting": {minMult: 1.1, maxMult: 2.0, ramp: rampLife},
	"drifting":   {minMult: 1.3, maxMult: 2.2, ramp: rampLife},
	// directed without a target degrades to an age-ramped shell; the
	// seeking variant lives in orbit.go.
	"directed": {minMult: 2.0, maxMult: 4.0, ramp: rampAge, ageScale: 2.0},
}

// radial places the particle on a shell along its committed direction, at a
// distance interpolated between the behavior's multiplier pair.
func (t *Translator) radial(p *particle.Particle, spec radialSpec) r3.Vec {
	dir := t.direction(p)
	f := t.rampValue(p, spec)
	dist := lerp(spec.minMult, spec.maxMult, f) * t.frame.CoreRadius
	return r3.Add(t.frame.Core, r3.Scale(dist*t.cfg.WorldScale, dir))
}

func (t *Translator) rampValue(p *particle.Particle, spec radialSpec) float64 {
	switch spec.ramp {
	case rampAge:
		age := p.Age
		if spec.pop {
			st := t.cache.State(p.Slot)
			if !st.HasPopped {
				// Per-particle pop delay from the hash keeps kernels from
				// releasing in lockstep.
				delay := 0.1 + 0.6*Hash(p.X*3.17+p.Y*5.31)
				if p.Age < delay {
					return 0
				}
				st.HasPopped = true
				// Latch the delay, not the observed age: the first
				// translation past the delay may land well beyond it,
				// and the ramp measures time since the delay elapsed.
				st.PopAge = delay
			}
			age = p.Age - st.PopAge
		}
		return clamp01(1 - math.Exp(-age*spec.ageScale))
	case rampLife:
		return clamp01(1 - p.Life)
	default:
		return t.radialDistance01(p.X, p.Y)
	}
}

// radialDistance01 returns the particle's 2D distance from the canvas
// center, normalized by the smaller half-extent and clamped to [0,1].
func (t *Translator) radialDistance01(x, y float64) float64 {
	cx := t.frame.CanvasW / 2
	cy := t.frame.CanvasH / 2
	half := math.Min(cx, cy)
	if half <= 0 {
		return 0
	}
	dx := x - cx
	dy := y - cy
	return clamp01(math.Sqrt(dx*dx+dy*dy) / half)
}
