// Package particle owns the 2D particle lifecycle: spawning, aging, velocity
// integration, and slot recycling. The translation core reads these records
// and annotates them in place; it never allocates or reorders them.
package particle

import "math/rand"

// Particle is one lifecycle record. Position and velocity are in canvas
// space; Z is a synthetic depth in [-1, 1] assigned at spawn.
type Particle struct {
	X, Y   float64
	Z      float64
	VX, VY float64

	Age  float64 // seconds since spawn
	Life float64 // remaining-life fraction, 1 = newborn

	Behavior string
	IsAlive  bool

	// CellShaded selects the flat-shaded rendering style for this particle.
	CellShaded bool

	// Raining marks the particle for the vertical-fall gesture override.
	Raining bool

	// Slot is the stable pool index; side caches key on it.
	Slot int

	// Seed increments per spawn so a recycled slot gets fresh visual jitter.
	Seed uint32

	lifespan float64
}

// SpawnProfile is the emotion-resolved configuration the pool spawns from.
type SpawnProfile struct {
	Behavior   string
	Rate       float64 // particles per second
	Min, Max   int     // population floor and ceiling
	Lifespan   float64 // seconds from spawn to death
	CellShaded bool
}

// Pool is a fixed-capacity particle pool with slot recycling. Live entries
// keep their slot for their whole life; the active list is compacted only
// after deaths, never reordered among survivors.
type Pool struct {
	Particles []Particle
	Active    []int // compact list of live slots, spawn order
	Free      []int
	Count     int

	spawnCounter uint32
	spawnDebt    float64 // fractional spawns carried between frames
	rng          *rand.Rand
}

// NewPool creates a pool with the given capacity.
func NewPool(capacity int, seed int64) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	p := &Pool{
		Particles: make([]Particle, capacity),
		Active:    make([]int, 0, capacity),
		Free:      make([]int, 0, capacity),
		rng:       rand.New(rand.NewSource(seed)),
	}
	for i := range p.Particles {
		p.Particles[i].Slot = i
	}
	return p
}

// Capacity returns the pool's fixed slot count.
func (p *Pool) Capacity() int {
	return len(p.Particles)
}

// Spawn emits particles for this frame according to the profile: the
// population floor is topped up immediately, then the rate accrues
// fractional spawns across frames up to the ceiling.
func (p *Pool) Spawn(profile SpawnProfile, canvasW, canvasH, dt float64) int {
	ceiling := profile.Max
	if ceiling <= 0 || ceiling > len(p.Particles) {
		ceiling = len(p.Particles)
	}

	spawned := 0
	for p.Count < profile.Min && p.Count < ceiling {
		if !p.spawnOne(profile, canvasW, canvasH) {
			return spawned
		}
		spawned++
	}

	p.spawnDebt += profile.Rate * dt
	for p.spawnDebt >= 1 {
		p.spawnDebt--
		if p.Count >= ceiling {
			p.spawnDebt = 0
			break
		}
		if !p.spawnOne(profile, canvasW, canvasH) {
			break
		}
		spawned++
	}
	return spawned
}

func (p *Pool) spawnOne(profile SpawnProfile, canvasW, canvasH float64) bool {
	var slot int
	if n := len(p.Free); n > 0 {
		slot = p.Free[n-1]
		p.Free = p.Free[:n-1]
	} else if p.Count < len(p.Particles) {
		slot = p.Count
	} else {
		return false
	}

	p.spawnCounter++
	lifespan := profile.Lifespan
	if lifespan <= 0 {
		lifespan = 4.0
	}

	pt := &p.Particles[slot]
	*pt = Particle{
		X:          canvasW * (0.3 + 0.4*p.rng.Float64()),
		Y:          canvasH * (0.3 + 0.4*p.rng.Float64()),
		Z:          p.rng.Float64()*2 - 1,
		VX:         (p.rng.Float64() - 0.5) * 40,
		VY:         (p.rng.Float64() - 0.5) * 40,
		Life:       1,
		Behavior:   profile.Behavior,
		IsAlive:    true,
		CellShaded: profile.CellShaded,
		Slot:       slot,
		Seed:       p.spawnCounter,
		lifespan:   lifespan,
	}

	p.Active = append(p.Active, slot)
	p.Count++
	return true
}

// Update ages and integrates all live particles, then compacts the active
// list. Expired particles have IsAlive cleared here; externally killed
// particles (e.g. the accretion simulator) are recycled on the same pass.
// Returns the slots that died this frame so side caches can be cleared.
func (p *Pool) Update(dt float64) []int {
	var died []int

	write := 0
	for _, slot := range p.Active {
		pt := &p.Particles[slot]

		if pt.IsAlive {
			pt.Age += dt
			pt.Life -= dt / pt.lifespan
			if pt.Life <= 0 {
				pt.Life = 0
				pt.IsAlive = false
			}
			pt.X += pt.VX * dt
			pt.Y += pt.VY * dt
		}

		if !pt.IsAlive {
			died = append(died, slot)
			p.Free = append(p.Free, slot)
			p.Count--
			continue
		}

		p.Active[write] = slot
		write++
	}
	p.Active = p.Active[:write]
	return died
}

// Clear kills every particle. Used on emotion transitions.
// Returns the slots that were live so side caches can be cleared.
func (p *Pool) Clear() []int {
	cleared := make([]int, len(p.Active))
	copy(cleared, p.Active)
	for _, slot := range p.Active {
		p.Particles[slot].IsAlive = false
		p.Free = append(p.Free, slot)
	}
	p.Active = p.Active[:0]
	p.Count = 0
	p.spawnDebt = 0
	return cleared
}
