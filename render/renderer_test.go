package render

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/joshtol/emotive-engine-sub002/config"
	"github.com/joshtol/emotive-engine-sub002/gesture"
	"github.com/joshtol/emotive-engine-sub002/particle"
)

func testRenderConfig() config.RenderConfig {
	return config.RenderConfig{
		BaseSize:      6,
		BaseGlow:      1,
		CullThreshold: 0.1,
		SizeJitter:    0.2,
		OpacityFloor:  0.55,
	}
}

func testEffectsConfig() config.EffectsConfig {
	return config.EffectsConfig{
		FireflyBase:    0.8,
		FireflySpan:    0.8,
		FlickerFloor:   0.3,
		FlickerSpeed:   14,
		FlickerQuantum: 8,
		ShimmerBase:    0.9,
		ShimmerSpan:    0.7,
		ShimmerSpeed:   3,
		GlowPeak:       0.6,
	}
}

func testFrameInfo() FrameInfo {
	return FrameInfo{
		CoreZ:      0,
		CoreRadius: 100,
		CanvasW:    400,
		CanvasH:    400,
		Glow:       1,
	}
}

func livingParticle(slot int) *particle.Particle {
	return &particle.Particle{
		X: 100, Y: 100, Z: 0.2, Life: 0.8,
		Behavior: "ambient", IsAlive: true,
		Slot: slot, Seed: uint32(slot + 1),
	}
}

func TestPackFillsBuffers(t *testing.T) {
	r := NewRenderer(testRenderConfig(), testEffectsConfig(), 16)
	r.Begin(testFrameInfo())

	r.Pack(livingParticle(0), r3.Vec{X: 10, Y: 20, Z: 30})

	bufs := r.Buffers()
	if bufs.Count() != 1 {
		t.Fatalf("count = %d, want 1", bufs.Count())
	}
	if bufs.Positions[0] != 10 || bufs.Positions[1] != 20 || bufs.Positions[2] != 30 {
		t.Errorf("positions = %v", bufs.Positions[:3])
	}
	if bufs.Alphas[0] <= 0 {
		t.Error("live particle packed with zero alpha")
	}
	if bufs.Sizes[0] <= 0 {
		t.Error("non-positive size")
	}
}

func TestSoulStyleCullKeepsIndex(t *testing.T) {
	r := NewRenderer(testRenderConfig(), testEffectsConfig(), 16)
	r.SetCoreStyle(StyleSoul)
	r.Begin(testFrameInfo())

	// Behind the core: visible.
	r.Pack(livingParticle(0), r3.Vec{Z: -50})
	// In front of the cull threshold (0.1 * 100 = 10): hidden, not skipped.
	r.Pack(livingParticle(1), r3.Vec{Z: 50})

	bufs := r.Buffers()
	if bufs.Count() != 2 {
		t.Fatalf("count = %d, want 2 (culling must not drop buffer entries)", bufs.Count())
	}
	if bufs.Alphas[0] <= 0 {
		t.Error("behind-core particle culled")
	}
	if bufs.Alphas[1] != 0 {
		t.Errorf("front particle alpha = %v, want 0", bufs.Alphas[1])
	}
}

func TestDeadParticlePacksInvisible(t *testing.T) {
	r := NewRenderer(testRenderConfig(), testEffectsConfig(), 16)
	r.Begin(testFrameInfo())

	// A particle killed mid-frame still carries life and a position just
	// below the soul cull threshold; it must pack hidden regardless.
	dead := livingParticle(0)
	dead.IsAlive = false
	r.Pack(dead, r3.Vec{Z: 5})
	r.Pack(livingParticle(1), r3.Vec{Z: -50})

	bufs := r.Buffers()
	if bufs.Count() != 2 {
		t.Fatalf("count = %d, want 2 (dead particle must keep its buffer index)", bufs.Count())
	}
	if bufs.Alphas[0] != 0 {
		t.Errorf("dead particle alpha = %v, want 0", bufs.Alphas[0])
	}
	if bufs.Alphas[1] <= 0 {
		t.Error("live particle hidden")
	}
}

func TestSolidStyleDoesNotCull(t *testing.T) {
	r := NewRenderer(testRenderConfig(), testEffectsConfig(), 16)
	r.Begin(testFrameInfo())

	r.Pack(livingParticle(0), r3.Vec{Z: 50})
	if r.Buffers().Alphas[0] <= 0 {
		t.Error("solid core culled a front particle")
	}
}

func TestSetPaletteSkipsMalformedHex(t *testing.T) {
	r := NewRenderer(testRenderConfig(), testEffectsConfig(), 4)
	r.SetPalette([]string{"#ff0000", "not-a-color"}, "", 0)

	if len(r.palette) != 1 {
		t.Fatalf("palette size = %d, want 1", len(r.palette))
	}
	if math.Abs(r.palette[0].R-1) > 1e-6 || r.palette[0].G > 1e-6 {
		t.Errorf("surviving color = %+v, want red", r.palette[0])
	}
}

func TestSetPaletteAllMalformedFallsBackWhite(t *testing.T) {
	r := NewRenderer(testRenderConfig(), testEffectsConfig(), 4)
	r.SetPalette([]string{"oops", ""}, "", 0)

	if len(r.palette) != 1 {
		t.Fatalf("palette size = %d, want white fallback", len(r.palette))
	}
	c := r.palette[0]
	if c.R != 1 || c.G != 1 || c.B != 1 {
		t.Errorf("fallback color = %+v, want white", c)
	}
}

func TestSetPaletteTintBlends(t *testing.T) {
	r := NewRenderer(testRenderConfig(), testEffectsConfig(), 4)
	r.SetPalette([]string{"#000000"}, "#ffffff", 0.5)

	c := r.palette[0]
	if math.Abs(c.R-0.5) > 1e-6 || math.Abs(c.G-0.5) > 1e-6 || math.Abs(c.B-0.5) > 1e-6 {
		t.Errorf("tinted color = %+v, want mid gray", c)
	}
}

func TestAlphaScalesWithLife(t *testing.T) {
	r := NewRenderer(testRenderConfig(), testEffectsConfig(), 16)
	r.Begin(testFrameInfo())

	young := livingParticle(0)
	young.Life = 1.0
	old := livingParticle(0) // same slot and seed: identical base opacity
	old.Life = 0.25

	r.Pack(young, r3.Vec{})
	r.Pack(old, r3.Vec{})

	bufs := r.Buffers()
	ratio := bufs.Alphas[1] / bufs.Alphas[0]
	if math.Abs(float64(ratio)-0.25) > 1e-5 {
		t.Errorf("alpha ratio = %v, want 0.25 (linear in life)", ratio)
	}
}

func TestCellShadedStyleFlag(t *testing.T) {
	r := NewRenderer(testRenderConfig(), testEffectsConfig(), 16)
	r.Begin(testFrameInfo())

	flat := livingParticle(0)
	flat.CellShaded = true
	r.Pack(flat, r3.Vec{})
	r.Pack(livingParticle(1), r3.Vec{})

	bufs := r.Buffers()
	if bufs.Styles[0] != 1 || bufs.Styles[1] != 0 {
		t.Errorf("styles = [%v, %v], want [1, 0]", bufs.Styles[0], bufs.Styles[1])
	}
}

func TestGlowBoostComposesByMax(t *testing.T) {
	c := testEffectsConfig()
	fx := &EffectsTransform{
		Effects:  []string{gesture.Glow, gesture.Firefly},
		Progress: 0.5, // glow pulse peak: 1 + 0.6
		Time:     0,
	}

	boost := glowBoost(fx, c, 0, 200, 200, 400, 400)
	glowOnly := glowBoost(&EffectsTransform{Effects: []string{gesture.Glow}, Progress: 0.5}, c, 0, 200, 200, 400, 400)
	fireflyOnly := glowBoost(&EffectsTransform{Effects: []string{gesture.Firefly}, Time: 0}, c, 0, 200, 200, 400, 400)

	want := math.Max(glowOnly, fireflyOnly)
	if math.Abs(boost-want) > 1e-9 {
		t.Errorf("composed boost = %v, want max(%v, %v)", boost, glowOnly, fireflyOnly)
	}
}

func TestFlickerNeverReachesFloor(t *testing.T) {
	c := testEffectsConfig()
	for i := 0; i < 200; i++ {
		fx := &EffectsTransform{Effects: []string{gesture.Flicker}, Time: float64(i) * 0.037}
		v := glowBoost(fx, c, i, 100, 100, 400, 400)
		if v < c.FlickerFloor {
			t.Fatalf("flicker boost %v below floor %v at step %d", v, c.FlickerFloor, i)
		}
	}
}

func TestNoEffectsIsUnity(t *testing.T) {
	if v := glowBoost(nil, testEffectsConfig(), 0, 0, 0, 400, 400); v != 1 {
		t.Errorf("nil transform boost = %v, want 1", v)
	}
	if v := glowBoost(&EffectsTransform{}, testEffectsConfig(), 0, 0, 0, 400, 400); v != 1 {
		t.Errorf("empty transform boost = %v, want 1", v)
	}
}

func TestUnknownEffectIgnored(t *testing.T) {
	fx := &EffectsTransform{Effects: []string{"sparkle-mega"}}
	if v := glowBoost(fx, testEffectsConfig(), 0, 0, 0, 400, 400); v != 1 {
		t.Errorf("unknown effect boost = %v, want 1", v)
	}
}
