package behavior

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/joshtol/emotive-engine-sub002/particle"
)

// AccretionConfig holds the orbital constants for the disk simulation.
// All radii are in units of the central body's characteristic radius Rs.
type AccretionConfig struct {
	MinRadius       float64 // initial orbit sample lower bound
	MaxRadius       float64 // initial orbit sample upper bound
	DecayRate       float64 // radius shrink per second
	BaseAngularVel  float64 // rad/s at radius 1.0 Rs
	InclinationSpan float64 // max per-particle disk tilt, radians
	ISCORadius      float64 // tidal stretching onset
	StretchRadius   float64 // full spaghettification at and below this
	HorizonRadius   float64 // event horizon, kill threshold
	StretchRadial   float64 // radial elongation at full stretch
	StretchLateral  float64 // transverse compression at full stretch
	WobbleFrequency float64 // vertical wobble cycles per orbit
}

// DefaultAccretionConfig mirrors the tuned constants in defaults.yaml.
func DefaultAccretionConfig() AccretionConfig {
	return AccretionConfig{
		MinRadius:       2.5,
		MaxRadius:       8.0,
		DecayRate:       0.35,
		BaseAngularVel:  1.8,
		InclinationSpan: 0.1,
		ISCORadius:      2.5,
		StretchRadius:   1.5,
		HorizonRadius:   1.0,
		StretchRadial:   3.0,
		StretchLateral:  0.3,
		WobbleFrequency: 2.0,
	}
}

// AccretionDisk simulates particles spiraling into a central massive body.
// It is the only component in the core with mortality side effects: it may
// set IsAlive to false on the particle it is stepping.
type AccretionDisk struct {
	cfg AccretionConfig

	// Kill counters for telemetry, reset by the engine each stats window.
	HorizonKills    uint64
	HemisphereKills uint64
}

// NewAccretionDisk creates a simulator with the given constants.
func NewAccretionDisk(cfg AccretionConfig) *AccretionDisk {
	if cfg.MaxRadius <= cfg.MinRadius {
		cfg = DefaultAccretionConfig()
	}
	return &AccretionDisk{cfg: cfg}
}

// Step advances one particle's orbit by dt and returns its position relative
// to the body center, in world units (Rs = coreRadius). Kills happen on the
// same call the condition arises, never a frame later.
func (d *AccretionDisk) Step(p *particle.Particle, st *State, dt, coreRadius float64) r3.Vec {
	if !st.HasAccretion {
		d.init(p, st)
	}

	// Drag shrinks the orbit; Kepler speeds it up as it shrinks.
	st.OrbitRadius -= d.cfg.DecayRate * dt
	if st.OrbitRadius < 1e-3 {
		st.OrbitRadius = 1e-3
	}
	st.AngularVelocity = d.cfg.BaseAngularVel / math.Sqrt(st.OrbitRadius)

	st.OrbitAngle += st.AngularVelocity * dt
	for st.OrbitAngle >= 2*math.Pi {
		st.OrbitAngle -= 2 * math.Pi
	}

	// Front hemisphere faces the camera: accretion particles must never
	// pass between the viewer and the body.
	if st.OrbitAngle < math.Pi {
		d.kill(p, st, KillHemisphere)
	} else if st.OrbitRadius <= d.cfg.HorizonRadius {
		d.kill(p, st, KillHorizon)
	}

	st.TidalStretch = d.stretchAt(st.OrbitRadius)

	x := math.Cos(st.OrbitAngle) * st.OrbitRadius
	z := math.Sin(st.OrbitAngle) * st.OrbitRadius
	wobble := math.Sin(st.OrbitAngle*d.cfg.WobbleFrequency) * st.DiskInclination
	y := wobble * st.OrbitRadius

	return r3.Scale(coreRadius, r3.Vec{
		X: x * st.TidalStretch.X,
		Y: y * st.TidalStretch.Y,
		Z: z * st.TidalStretch.Z,
	})
}

func (d *AccretionDisk) init(p *particle.Particle, st *State) {
	a, b := seedPair(p)

	st.OrbitRadius = lerp(d.cfg.MinRadius, d.cfg.MaxRadius, Hash(a+41.7))
	// Back hemisphere only: particles never spawn in front of the body.
	st.OrbitAngle = math.Pi + Hash(b+13.9)*math.Pi
	st.DiskInclination = (Hash(a+b+5.5) - 0.5) * 2 * d.cfg.InclinationSpan
	st.AngularVelocity = d.cfg.BaseAngularVel / math.Sqrt(st.OrbitRadius)
	st.TidalStretch = r3.Vec{X: 1, Y: 1, Z: 1}
	st.Killed = KillNone
	st.HasAccretion = true
}

func (d *AccretionDisk) kill(p *particle.Particle, st *State, cause KillCause) {
	if st.Killed != KillNone {
		return
	}
	st.Killed = cause
	p.IsAlive = false
	switch cause {
	case KillHorizon:
		d.HorizonKills++
	case KillHemisphere:
		d.HemisphereKills++
	}
}

// stretchAt computes the tidal stretch vector for a radius ratio. The three
// zones join continuously: identity above the ISCO, a linear blend down to
// the full-stretch radius, and the fixed spaghettification vector below it.
// Y elongates radially while X and Z compress.
func (d *AccretionDisk) stretchAt(ratio float64) r3.Vec {
	full := r3.Vec{X: d.cfg.StretchLateral, Y: d.cfg.StretchRadial, Z: d.cfg.StretchLateral}

	switch {
	case ratio > d.cfg.ISCORadius:
		return r3.Vec{X: 1, Y: 1, Z: 1}
	case ratio > d.cfg.StretchRadius:
		t := (d.cfg.ISCORadius - ratio) / (d.cfg.ISCORadius - d.cfg.StretchRadius)
		return r3.Vec{
			X: lerp(1, full.X, t),
			Y: lerp(1, full.Y, t),
			Z: lerp(1, full.Z, t),
		}
	default:
		return full
	}
}

// ResetCounters zeroes the kill counters, returning the previous values.
func (d *AccretionDisk) ResetCounters() (horizon, hemisphere uint64) {
	horizon, hemisphere = d.HorizonKills, d.HemisphereKills
	d.HorizonKills, d.HemisphereKills = 0, 0
	return horizon, hemisphere
}
