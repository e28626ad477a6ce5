package behavior

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/joshtol/emotive-engine-sub002/gesture"
	"github.com/joshtol/emotive-engine-sub002/particle"
)

// Config holds the translator's construction-time tuning constants.
type Config struct {
	WorldScale    float64 // canvas-to-world projection scale
	BaseRadius    float64 // orbit radius fraction of the core radius
	DepthScale    float64 // synthetic z to world depth
	VerticalScale float64 // rain fall distance to world height
}

// DefaultConfig mirrors the tuned constants in defaults.yaml.
func DefaultConfig() Config {
	return Config{WorldScale: 1.0, BaseRadius: 0.25, DepthScale: 0.6, VerticalScale: 2.0}
}

// Frame carries the per-frame inputs shared by every translation: the mascot
// anchor and radius, canvas dimensions, the frame's gesture snapshot, and
// timing. The engine fills it once per frame so translator and renderer see
// one consistent view.
type Frame struct {
	Core       r3.Vec
	CoreRadius float64
	CanvasW    float64
	CanvasH    float64
	Gesture    *gesture.State
	DT         float64
	Time       float64
}

// Translator maps particles to world-space positions by behavior name, then
// composites gesture overrides on top. No call on the frame path returns an
// error: unknown behaviors fall back to the default projection, missing
// cache fields take numeric defaults, and non-finite results are replaced.
type Translator struct {
	cfg   Config
	cache *Cache
	disk  *AccretionDisk
	frame Frame
}

// New creates a translator with a cache arena sized to the pool capacity.
func New(cfg Config, capacity int, disk *AccretionDisk) *Translator {
	if cfg.WorldScale == 0 {
		cfg = DefaultConfig()
	}
	if disk == nil {
		disk = NewAccretionDisk(DefaultAccretionConfig())
	}
	return &Translator{
		cfg:   cfg,
		cache: NewCache(capacity),
		disk:  disk,
	}
}

// Disk exposes the accretion simulator for telemetry counters.
func (t *Translator) Disk() *AccretionDisk {
	return t.disk
}

// BeginFrame installs the frame inputs for subsequent Translate calls.
func (t *Translator) BeginFrame(f Frame) {
	if f.CoreRadius <= 0 {
		f.CoreRadius = 1
	}
	t.frame = f
}

// Translate returns the particle's world-space position for this frame.
func (t *Translator) Translate(p *particle.Particle) r3.Vec {
	pos := t.dispatch(p)

	// Gesture overrides run after the behavior function and may replace or
	// rotate its result. Rain is particle-local; spin is frame-global.
	if p.Raining {
		pos = t.rainOverride(p)
	}
	if g := t.frame.Gesture; g != nil && g.Name == gesture.Spin {
		pos = SpinOverride(pos, t.frame.Core, g.Progress)
	}

	if !isFinite(pos) {
		pos = t.projectCanvas(p.X, p.Y, p.Z)
	}
	return pos
}

func (t *Translator) dispatch(p *particle.Particle) r3.Vec {
	if spec, ok := radialSpecs[p.Behavior]; ok {
		if p.Behavior == "directed" && t.cache.State(p.Slot).HasTarget {
			return t.seek(p)
		}
		return t.radial(p, spec)
	}
	if spec, ok := orbitSpecs[p.Behavior]; ok {
		if p.Behavior == "orbiting" {
			return t.tiltedOrbit(p, spec)
		}
		return t.perpendicularOrbit(p, spec)
	}

	switch p.Behavior {
	case "ascending":
		return t.helix(p)
	case "falling":
		return t.falling(p)
	case "gravitationalAccretion":
		st := t.cache.State(p.Slot)
		rel := t.disk.Step(p, st, t.frame.DT, t.frame.CoreRadius*t.cfg.WorldScale)
		return r3.Add(t.frame.Core, rel)
	default:
		// Unknown names are expected during content iteration: resolve to
		// the default projection without error or log spam.
		return t.projectCanvas(p.X, p.Y, p.Z)
	}
}

// falling drifts the projected position downward as the particle ages.
func (t *Translator) falling(p *particle.Particle) r3.Vec {
	pos := t.projectCanvas(p.X, p.Y, p.Z)
	pos.Y -= p.Age * 0.4 * t.frame.CoreRadius * t.cfg.WorldScale
	return pos
}

// SetTarget caches a canvas-space destination for a directed particle.
func (t *Translator) SetTarget(slot int, x, y float64) {
	st := t.cache.State(slot)
	st.HasTarget = true
	st.TargetX = x
	st.TargetY = y
}

// ClearSlot drops all cached state for a dead particle's slot. Must run
// exactly once per death or recycled slots inherit stale trajectories.
func (t *Translator) ClearSlot(slot int) {
	t.cache.Clear(slot)
}

// State exposes a slot's cache for tests and telemetry inspection.
func (t *Translator) State(slot int) *State {
	return t.cache.State(slot)
}

// direction returns the particle's committed spawn direction, sampling and
// caching it on first use. The cache is the authority afterwards.
func (t *Translator) direction(p *particle.Particle) r3.Vec {
	st := t.cache.State(p.Slot)
	if !st.HasDirection {
		a, b := seedPair(p)
		st.Direction = SampleDirection(a, b)
		st.HasDirection = true
	}
	return st.Direction
}

// projectCanvas is the default canvas-to-world projection, used for unknown
// behaviors and as the finite-guard fallback.
func (t *Translator) projectCanvas(x, y, z float64) r3.Vec {
	cx := t.frame.CanvasW / 2
	cy := t.frame.CanvasH / 2
	half := math.Min(cx, cy)
	if half <= 0 {
		half = 1
	}
	s := t.frame.CoreRadius * t.cfg.WorldScale * 2

	return r3.Add(t.frame.Core, r3.Vec{
		X: (x - cx) / half * s,
		Y: -(y - cy) / half * s,
		Z: z * t.cfg.DepthScale * t.frame.CoreRadius,
	})
}

// rainOverride reconstructs the pre-fall base position from the cached
// origin and subtracts a vertical offset proportional to the 2D fall
// distance.
func (t *Translator) rainOverride(p *particle.Particle) r3.Vec {
	st := t.cache.State(p.Slot)
	if !st.RainInit {
		st.RainInit = true
		st.RainX = p.X
		st.RainY = p.Y
	}

	base := t.projectCanvas(st.RainX, st.RainY, p.Z)
	fall := (p.Y - st.RainY) / math.Max(t.frame.CanvasH, 1)
	if fall < 0 {
		fall = 0
	}
	base.Y -= fall * t.cfg.VerticalScale * t.frame.CoreRadius * t.cfg.WorldScale
	return base
}

// SpinOverride rotates a position around the core's vertical axis. The
// angle follows sin(progress*pi)*2pi, so the rotation ramps up, completes a
// full revolution, and lands exactly where it started at progress 0 and 1.
func SpinOverride(pos, core r3.Vec, progress float64) r3.Vec {
	angle := math.Sin(progress*math.Pi) * 2 * math.Pi
	return r3.Add(core, r3.Rotate(r3.Sub(pos, core), angle, worldUp))
}
