package behavior

import "gonum.org/v1/gonum/spatial/r3"

// KillCause records why the accretion simulator ended a particle.
type KillCause uint8

const (
	KillNone KillCause = iota
	KillHorizon
	KillHemisphere
)

// State is the per-slot cache of lazily computed simulation state: the
// committed spawn direction, orbit plane parameters, accretion orbit state,
// and gesture bookkeeping. Fields are created on first use by a behavior and
// must be cleared exactly once when the owning particle dies; the pool
// recycles slots, so a stale cache would leak into the next occupant.
type State struct {
	// Committed spawn direction. Once cached it is the authority: later
	// mutations to the particle's seed fields must not move the trajectory.
	HasDirection bool
	Direction    r3.Vec

	// Tilted-orbit plane (orbiting family, plane-angle method).
	HasOrbitPlane bool
	Inclination   float64
	PlaneRotation float64
	OrbitPhase    float64

	// Accretion orbit, lazily initialized by the disk simulator.
	HasAccretion    bool
	OrbitRadius     float64 // units of Rs
	OrbitAngle      float64 // [0, 2pi)
	DiskInclination float64
	AngularVelocity float64
	TidalStretch    r3.Vec
	Killed          KillCause

	// Popcorn delay gate.
	HasPopped bool
	PopAge    float64

	// Target-seeking destination in canvas coordinates.
	HasTarget bool
	TargetX   float64
	TargetY   float64

	// Rain override origin, cached at the first raining frame.
	RainInit bool
	RainX    float64
	RainY    float64
}

// Cache is the slot-indexed arena of behavior state. It is sized to the
// particle pool capacity so lookups are a plain index, never a map.
type Cache struct {
	states []State
}

// NewCache creates an arena for the given pool capacity.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{states: make([]State, capacity)}
}

// State returns the mutable cache entry for a pool slot.
func (c *Cache) State(slot int) *State {
	if slot < 0 || slot >= len(c.states) {
		// Out-of-range slots get a throwaway entry rather than a panic;
		// the frame path must not fail on a malformed input.
		return &State{}
	}
	return &c.states[slot]
}

// Clear resets a slot's entire cache in one operation.
func (c *Cache) Clear(slot int) {
	if slot < 0 || slot >= len(c.states) {
		return
	}
	c.states[slot] = State{}
}
