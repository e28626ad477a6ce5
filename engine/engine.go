// Package engine wires the particle pool, behavior translator, gesture
// runner, emotion resolver, and renderer into a fixed per-frame sequence.
package engine

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/joshtol/emotive-engine-sub002/behavior"
	"github.com/joshtol/emotive-engine-sub002/config"
	"github.com/joshtol/emotive-engine-sub002/emotion"
	"github.com/joshtol/emotive-engine-sub002/gesture"
	"github.com/joshtol/emotive-engine-sub002/particle"
	"github.com/joshtol/emotive-engine-sub002/render"
	"github.com/joshtol/emotive-engine-sub002/telemetry"
)

// defaultGestureDuration is used when a trigger does not specify one.
const defaultGestureDuration = 1.2

// Engine owns one mascot's particle system and advances it frame by frame.
// All methods are for a single goroutine; the engine holds no locks.
type Engine struct {
	cfg *config.Config

	pool       *particle.Pool
	translator *behavior.Translator
	gestures   *gesture.Runner
	resolver   *emotion.Resolver
	renderer   *render.Renderer

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector

	emotionName   string
	undertoneName string
	current       *emotion.SpawnConfig

	core       r3.Vec
	coreRadius float64
	canvasW    float64
	canvasH    float64

	frame   uint64
	simTime float64

	// Accretion kill counters at the previous frame, for per-frame deltas.
	lastHorizonKills    uint64
	lastHemisphereKills uint64

	// Live-geometry scratch reused each frame for window stats.
	radii []float64
	ages  []float64
}

// New creates an engine from loaded configuration. seed drives particle
// spawn randomness; translation itself is deterministic per particle.
func New(cfg *config.Config, seed int64) *Engine {
	capacity := cfg.World.MaxParticles
	if capacity < 1 {
		capacity = 1
	}

	disk := behavior.NewAccretionDisk(behavior.AccretionConfig{
		MinRadius:       cfg.Accretion.MinRadius,
		MaxRadius:       cfg.Accretion.MaxRadius,
		DecayRate:       cfg.Accretion.DecayRate,
		BaseAngularVel:  cfg.Accretion.BaseAngularVel,
		InclinationSpan: cfg.Accretion.InclinationSpan,
		ISCORadius:      cfg.Accretion.ISCORadius,
		StretchRadius:   cfg.Accretion.StretchRadius,
		HorizonRadius:   cfg.Accretion.HorizonRadius,
		StretchRadial:   cfg.Accretion.StretchRadial,
		StretchLateral:  cfg.Accretion.StretchLateral,
		WobbleFrequency: cfg.Accretion.WobbleFrequency,
	})

	e := &Engine{
		cfg:  cfg,
		pool: particle.NewPool(capacity, seed),
		translator: behavior.New(behavior.Config{
			WorldScale:    cfg.World.Scale,
			BaseRadius:    cfg.World.BaseRadius,
			DepthScale:    cfg.World.DepthScale,
			VerticalScale: cfg.World.VerticalScale,
		}, capacity, disk),
		gestures:   gesture.NewRunner(),
		resolver:   emotion.NewResolver(cfg, behavior.Names()),
		renderer:   render.NewRenderer(cfg.Render, cfg.Effects, capacity),
		collector:  telemetry.NewCollector(),
		coreRadius: cfg.World.CoreRadius,
		canvasW:    float64(cfg.Screen.Width),
		canvasH:    float64(cfg.Screen.Height),
		radii:      make([]float64, 0, capacity),
		ages:       make([]float64, 0, capacity),
	}
	e.SetEmotion("neutral", "")
	return e
}

// SetPerf attaches a perf collector. Pass nil to disable timing.
func (e *Engine) SetPerf(p *telemetry.PerfCollector) {
	e.perf = p
}

// Renderer exposes the packing stage for the draw call.
func (e *Engine) Renderer() *render.Renderer {
	return e.renderer
}

// Pool exposes the particle pool for inspection.
func (e *Engine) Pool() *particle.Pool {
	return e.pool
}

// Translator exposes the behavior translation core.
func (e *Engine) Translator() *behavior.Translator {
	return e.translator
}

// SetCore moves the mascot anchor in world space.
func (e *Engine) SetCore(pos r3.Vec) {
	e.core = pos
}

// SetCoreRadius rescales the mascot. Orbit radii follow automatically
// because they are expressed as core-radius multiples.
func (e *Engine) SetCoreRadius(r float64) {
	if r > 0 {
		e.coreRadius = r
	}
}

// SetCanvas updates the logical canvas dimensions.
func (e *Engine) SetCanvas(w, h float64) {
	if w > 0 {
		e.canvasW = w
	}
	if h > 0 {
		e.canvasH = h
	}
}

// SetCoreStyle switches the renderer's culling mode.
func (e *Engine) SetCoreStyle(style render.CoreStyle) {
	e.renderer.SetCoreStyle(style)
}

// Emotion returns the active emotion and undertone names.
func (e *Engine) Emotion() (string, string) {
	return e.emotionName, e.undertoneName
}

// Current returns the resolved spawn config driving this frame.
func (e *Engine) Current() *emotion.SpawnConfig {
	return e.current
}

// SetEmotion switches the active emotional state. Changing to a different
// (emotion, undertone) pair clears all live particles so the new behavior
// starts clean; setting the same pair again is a no-op.
func (e *Engine) SetEmotion(emotionName, undertone string) {
	if emotionName == e.emotionName && undertone == e.undertoneName && e.current != nil {
		return
	}
	e.emotionName = emotionName
	e.undertoneName = undertone
	e.current = e.resolver.Resolve(emotionName, undertone)

	for _, slot := range e.pool.Clear() {
		e.translator.ClearSlot(slot)
	}

	e.renderer.SetPalette(e.current.Colors, e.current.Tint, e.current.TintStrength)
	if e.current.Special == "blackhole" {
		e.renderer.SetCoreStyle(render.StyleSoul)
	}

	slog.Debug("emotion set",
		"emotion", e.current.Emotion,
		"undertone", undertone,
		"behavior", e.current.Behavior,
	)
}

// TriggerGesture starts a gesture animation. duration <= 0 uses the default.
// Rain marks every live particle for the vertical-fall override; the marks
// and their cached fall origins are cleared when the gesture completes.
func (e *Engine) TriggerGesture(name string, duration float64) {
	if duration <= 0 {
		duration = defaultGestureDuration
	}

	if e.gestures.Active() {
		e.endRain()
	}
	e.gestures.Trigger(name, duration)
	e.gestures.SetCenter(e.canvasW/2, e.canvasH/2)
	e.collector.RecordGesture()

	if name == gesture.Rain {
		for _, slot := range e.pool.Active {
			e.pool.Particles[slot].Raining = true
		}
	}
}

// SetGestureCenter moves the shimmer wave origin in canvas coordinates.
func (e *Engine) SetGestureCenter(x, y float64) {
	e.gestures.SetCenter(x, y)
}

// SetParticleTarget gives one directed particle a canvas destination.
func (e *Engine) SetParticleTarget(slot int, x, y float64) {
	e.translator.SetTarget(slot, x, y)
}

// SetTarget gives every live particle the same canvas destination. Only
// directed particles consume it.
func (e *Engine) SetTarget(x, y float64) {
	for _, slot := range e.pool.Active {
		e.translator.SetTarget(slot, x, y)
	}
}

// Update advances the system by dt seconds and leaves the renderer's buffers
// packed for drawing. The sequence is fixed: resolve, gesture, spawn, age,
// translate and pack, cleanup.
func (e *Engine) Update(dt float64) {
	if dt <= 0 {
		return
	}
	e.frame++
	e.simTime += dt

	if e.perf != nil {
		e.perf.StartFrame()
		e.perf.StartPhase(telemetry.PhaseResolve)
	}
	sc := e.resolver.Resolve(e.emotionName, e.undertoneName)
	if sc != e.current {
		// Definitions were reloaded under us: re-apply the palette.
		e.current = sc
		e.renderer.SetPalette(sc.Colors, sc.Tint, sc.TintStrength)
	}

	g := e.gestures.Advance(dt)
	if g != nil && g.Progress >= 1 && g.Name == gesture.Rain {
		e.endRain()
	}

	if e.perf != nil {
		e.perf.StartPhase(telemetry.PhaseSpawn)
	}
	spawned := e.pool.Spawn(particle.SpawnProfile{
		Behavior:   sc.Behavior,
		Rate:       sc.Rate,
		Min:        sc.Min,
		Max:        sc.Max,
		Lifespan:   sc.Lifespan,
		CellShaded: sc.CellShaded,
	}, e.canvasW, e.canvasH, dt)
	e.collector.RecordSpawns(spawned)

	if e.perf != nil {
		e.perf.StartPhase(telemetry.PhaseUpdate)
	}
	died := e.pool.Update(dt)

	if e.perf != nil {
		e.perf.StartPhase(telemetry.PhaseTranslate)
	}
	e.translator.BeginFrame(behavior.Frame{
		Core:       e.core,
		CoreRadius: e.coreRadius,
		CanvasW:    e.canvasW,
		CanvasH:    e.canvasH,
		Gesture:    g,
		DT:         dt,
		Time:       e.simTime,
	})

	e.renderer.Begin(render.FrameInfo{
		CoreZ:      e.core.Z,
		CoreRadius: e.coreRadius,
		CanvasW:    e.canvasW,
		CanvasH:    e.canvasH,
		Glow:       sc.Glow,
		Effects:    e.effectsTransform(sc, g),
	})

	e.radii = e.radii[:0]
	e.ages = e.ages[:0]
	for _, slot := range e.pool.Active {
		pt := &e.pool.Particles[slot]
		pos := e.translator.Translate(pt)

		if e.perf != nil {
			e.perf.StartPhase(telemetry.PhasePack)
		}
		e.renderer.Pack(pt, pos)
		if e.perf != nil {
			e.perf.StartPhase(telemetry.PhaseTranslate)
		}

		e.radii = append(e.radii, math.Sqrt(
			(pos.X-e.core.X)*(pos.X-e.core.X)+
				(pos.Y-e.core.Y)*(pos.Y-e.core.Y)+
				(pos.Z-e.core.Z)*(pos.Z-e.core.Z)))
		e.ages = append(e.ages, pt.Age)
	}

	if e.perf != nil {
		e.perf.StartPhase(telemetry.PhaseCleanup)
	}

	// Accretion kills set IsAlive during translation, so the pool recycles
	// those slots on the next Update pass. Each died slot's recorded kill
	// cause tells natural expiry apart from simulator kills; it has to be
	// read before the slot cache is cleared for recycling.
	expired := 0
	for _, slot := range died {
		if e.translator.State(slot).Killed == behavior.KillNone {
			expired++
		}
		e.translator.ClearSlot(slot)
	}
	e.collector.RecordExpired(expired)

	disk := e.translator.Disk()
	horizonDelta := int(disk.HorizonKills - e.lastHorizonKills)
	hemisphereDelta := int(disk.HemisphereKills - e.lastHemisphereKills)
	e.lastHorizonKills = disk.HorizonKills
	e.lastHemisphereKills = disk.HemisphereKills
	e.collector.RecordKills(horizonDelta, hemisphereDelta)

	if e.perf != nil {
		e.perf.EndFrame()
	}
}

// endRain clears the rain marks and cached fall origins.
func (e *Engine) endRain() {
	for _, slot := range e.pool.Active {
		pt := &e.pool.Particles[slot]
		if !pt.Raining {
			continue
		}
		pt.Raining = false
		st := e.translator.State(slot)
		st.RainInit = false
		st.RainX = 0
		st.RainY = 0
	}
}

// effectsTransform composes the emotion's ambient effect with the active
// gesture into the renderer's glow modulation inputs.
func (e *Engine) effectsTransform(sc *emotion.SpawnConfig, g *gesture.State) *render.EffectsTransform {
	var effects []string
	if sc.Effect != "" {
		effects = append(effects, sc.Effect)
	}

	fx := &render.EffectsTransform{
		Effects: effects,
		Time:    e.simTime,
		CenterX: e.canvasW / 2,
		CenterY: e.canvasH / 2,
	}
	if g == nil {
		return fx
	}

	switch g.Name {
	case gesture.Glow, gesture.Firefly, gesture.Flicker, gesture.Shimmer:
		fx.Effects = append(fx.Effects, g.Name)
	}
	fx.Progress = g.Progress
	if g.CenterX != 0 || g.CenterY != 0 {
		fx.CenterX = g.CenterX
		fx.CenterY = g.CenterY
	}
	return fx
}

// Frame returns the number of Update calls so far.
func (e *Engine) Frame() uint64 {
	return e.frame
}

// SimTime returns the accumulated simulation time in seconds.
func (e *Engine) SimTime() float64 {
	return e.simTime
}

// GestureActive reports whether a gesture is in flight.
func (e *Engine) GestureActive() bool {
	return e.gestures.Active()
}

// FlushStats aggregates the window's events and the current population into
// a stats record and resets the window counters.
func (e *Engine) FlushStats() telemetry.WindowStats {
	snapshot := telemetry.WindowStats{
		Emotion:   e.emotionName,
		Undertone: e.undertoneName,
		Behavior:  e.current.Behavior,
		LiveCount: e.pool.Count,
	}

	snapshot.AgeMean, snapshot.AgeP10, snapshot.AgeP50, snapshot.AgeP90 =
		telemetry.ComputeDistribution(e.ages)
	mean, _, _, p90 := telemetry.ComputeDistribution(e.radii)
	snapshot.RadiusMean = mean
	snapshot.RadiusP90 = p90

	bufs := e.renderer.Buffers()
	culled := 0
	for i := 0; i < bufs.Count(); i++ {
		if bufs.Alphas[i] == 0 {
			culled++
		}
	}
	snapshot.CulledCount = culled

	return e.collector.Flush(e.frame, e.simTime, snapshot)
}
