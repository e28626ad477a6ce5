// Package behavior implements the 3D translation core: deterministic
// direction sampling, the behavior dispatch table, the accretion-disk
// simulation, and gesture override compositing.
package behavior

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/joshtol/emotive-engine-sub002/particle"
)

// hashMagnitude is the classic shader-style sine hash multiplier. The hash
// is a weak PRNG but the engine only needs reproducibility: identical seeds
// must give identical values so trajectories are stable without storage.
const hashMagnitude = 43758.5453123

// Hash maps a scalar seed to a uniform value in [0, 1).
func Hash(seed float64) float64 {
	return fract(math.Sin(seed) * hashMagnitude)
}

// seedPair combines a particle's own numeric fields into two independent
// scalar seeds. Wall-clock time and global RNG state are deliberately
// excluded so the result is a pure function of particle state.
func seedPair(p *particle.Particle) (float64, float64) {
	a := p.X*12.9898 + p.Y*78.233
	b := p.X*39.3468 + p.VX*11.1353 + p.VY*7.7193
	return a, b
}

// SampleDirection produces a uniformly distributed point on the unit sphere
// from two scalar seeds. The polar angle comes from cos(phi) = 2u-1, not
// phi = u*pi, which would cluster samples at the poles.
func SampleDirection(seedA, seedB float64) r3.Vec {
	u1 := Hash(seedA)
	u2 := Hash(seedB)

	theta := u1 * 2 * math.Pi
	cosPhi := 2*u2 - 1
	sinPhi := math.Sqrt(1 - cosPhi*cosPhi)

	return r3.Vec{
		X: sinPhi * math.Cos(theta),
		Y: cosPhi,
		Z: sinPhi * math.Sin(theta),
	}
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// isFinite reports whether every component is a normal finite number.
// A single NaN or Inf written into the shared GPU buffer corrupts that
// particle's region indefinitely, so callers fall back on failure.
func isFinite(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
