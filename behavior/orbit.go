package behavior

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/joshtol/emotive-engine-sub002/particle"
)

var worldUp = r3.Vec{Y: 1}

// orbitSpec parameterizes the tilted-orbit family.
type orbitSpec struct {
	mult  float64 // orbit radius multiplier on baseRadius*coreRadius
	speed float64 // angular velocity, rad/s
}

var orbitSpecs = map[string]orbitSpec{
	"orbiting":     {mult: 1.0, speed: 2.0},
	"surveillance": {mult: 1.6, speed: 1.1},
	"zen":          {mult: 2.2, speed: 0.4},
}

// orbitRadius is the base orbital distance all orbit behaviors scale from.
func (t *Translator) orbitRadius() float64 {
	return t.cfg.BaseRadius * t.frame.CoreRadius * t.cfg.WorldScale
}

// tiltedOrbit rotates a flat circle into a per-particle plane defined by two
// cached random angles. Full 360x360 coverage around the core.
func (t *Translator) tiltedOrbit(p *particle.Particle, spec orbitSpec) r3.Vec {
	st := t.cache.State(p.Slot)
	if !st.HasOrbitPlane {
		a, b := seedPair(p)
		st.Inclination = (Hash(a+17.23) - 0.5) * math.Pi
		st.PlaneRotation = Hash(b+29.61) * 2 * math.Pi
		st.OrbitPhase = Hash(a+b) * 2 * math.Pi
		st.HasOrbitPlane = true
	}

	r := spec.mult * t.orbitRadius()
	angle := st.OrbitPhase + p.Age*spec.speed
	flat := r3.Vec{X: math.Cos(angle) * r, Z: math.Sin(angle) * r}

	tilted := r3.Rotate(flat, st.Inclination, r3.Vec{X: 1})
	oriented := r3.Rotate(tilted, st.PlaneRotation, worldUp)
	return r3.Add(t.frame.Core, oriented)
}

// perpendicularOrbit orbits in the plane spanned by the committed direction
// and its normalized cross product with world-up. When the direction is
// nearly parallel to up the cross product degenerates; the guard skips the
// plane construction for that frame instead of propagating NaN.
func (t *Translator) perpendicularOrbit(p *particle.Particle, spec orbitSpec) r3.Vec {
	dir := t.direction(p)
	r := spec.mult * t.orbitRadius()

	perp := r3.Cross(dir, worldUp)
	n := r3.Norm(perp)
	if n < 1e-6 {
		return r3.Add(t.frame.Core, r3.Scale(r, dir))
	}
	perp = r3.Scale(1/n, perp)

	st := t.cache.State(p.Slot)
	if !st.HasOrbitPlane {
		a, _ := seedPair(p)
		st.OrbitPhase = Hash(a+3.77) * 2 * math.Pi
		st.HasOrbitPlane = true
	}

	angle := st.OrbitPhase + p.Age*spec.speed
	return r3.Add(t.frame.Core, r3.Add(
		r3.Scale(math.Cos(angle)*r, dir),
		r3.Scale(math.Sin(angle)*r, perp),
	))
}

// helix is the ascending spiral: a deterministic corkscrew that needs no
// direction sample.
func (t *Translator) helix(p *particle.Particle) r3.Vec {
	const (
		spiralSpeed = 2.4 // rad/s
		riseRate    = 0.5 // core radii per second
	)
	st := t.cache.State(p.Slot)
	if !st.HasOrbitPlane {
		a, _ := seedPair(p)
		st.OrbitPhase = Hash(a+7.13) * 2 * math.Pi
		st.HasOrbitPlane = true
	}

	r := 1.2 * t.orbitRadius()
	theta := st.OrbitPhase + p.Age*spiralSpeed
	y := (p.Age*riseRate - 1.0) * t.frame.CoreRadius * t.cfg.WorldScale

	return r3.Add(t.frame.Core, r3.Vec{
		X: math.Cos(theta) * r,
		Y: y,
		Z: math.Sin(theta) * r,
	})
}

// seek interpolates from the particle's canvas-projected position to its
// cached target, parameterized by drained life so progress only advances.
func (t *Translator) seek(p *particle.Particle) r3.Vec {
	st := t.cache.State(p.Slot)
	if !st.HasTarget {
		return t.radial(p, radialSpecs["directed"])
	}

	from := t.projectCanvas(p.X, p.Y, p.Z)
	to := t.projectCanvas(st.TargetX, st.TargetY, p.Z)
	f := clamp01(1 - p.Life)
	return r3.Add(from, r3.Scale(f, r3.Sub(to, from)))
}
