package emotion

import (
	"testing"

	"github.com/joshtol/emotive-engine-sub002/config"
)

var knownBehaviors = []string{"ambient", "orbiting", "aggressive", "gravitationalAccretion"}

func testConfig() *config.Config {
	return &config.Config{
		Emotions: []config.EmotionConfig{
			{Name: "neutral", Behavior: "ambient", Rate: 10, Max: 40, Glow: 1, Lifespan: 5, Colors: []string{"#ffffff"}},
			{Name: "joy", Behavior: "orbiting", Rate: 25, Min: 5, Max: 80, Glow: 1.4, Lifespan: 4, Colors: []string{"#ffd700", "#ffa500"}},
			{Name: "void", Behavior: "gravitationalAccretion", Rate: 18, Max: 60, Glow: 0.8, Special: "blackhole", Lifespan: 8, Colors: []string{"#8800ff"}},
		},
		Undertones: []config.UndertoneConfig{
			{Name: "intense", RateMultiplier: 1.5, Tint: "#ff2200", TintStrength: 0.3},
			{Name: "confident", Behavior: "aggressive", RateMultiplier: 1.0},
			{Name: "broken", Behavior: "nonexistent", RateMultiplier: 1.0},
		},
	}
}

func TestResolveReturnsIdenticalPointer(t *testing.T) {
	r := NewResolver(testConfig(), knownBehaviors)

	a := r.Resolve("joy", "intense")
	b := r.Resolve("joy", "intense")
	if a != b {
		t.Error("repeated resolution returned different objects")
	}
}

func TestResolveBaseEmotion(t *testing.T) {
	r := NewResolver(testConfig(), knownBehaviors)

	sc := r.Resolve("joy", "")
	if sc.Behavior != "orbiting" || sc.Rate != 25 || sc.Min != 5 || sc.Max != 80 {
		t.Errorf("unexpected joy config: %+v", sc)
	}
	if sc.Tint != "" || sc.TintStrength != 0 {
		t.Errorf("base emotion carries a tint: %+v", sc)
	}
}

func TestUnknownEmotionFallsBack(t *testing.T) {
	r := NewResolver(testConfig(), knownBehaviors)

	sc := r.Resolve("elation", "")
	if sc.Emotion != "neutral" || sc.Behavior != "ambient" {
		t.Errorf("unknown emotion resolved to %+v, want neutral/ambient", sc)
	}
}

func TestUndertoneRateMultiplier(t *testing.T) {
	r := NewResolver(testConfig(), knownBehaviors)

	sc := r.Resolve("joy", "intense")
	if sc.Rate != 25*1.5 {
		t.Errorf("rate = %v, want 37.5", sc.Rate)
	}
	if sc.Tint != "#ff2200" || sc.TintStrength != 0.3 {
		t.Errorf("tint not carried: %+v", sc)
	}
	// The behavior is untouched when the undertone has no override.
	if sc.Behavior != "orbiting" {
		t.Errorf("behavior = %q, want orbiting", sc.Behavior)
	}
}

func TestUndertoneBehaviorOverride(t *testing.T) {
	r := NewResolver(testConfig(), knownBehaviors)

	sc := r.Resolve("joy", "confident")
	if sc.Behavior != "aggressive" {
		t.Errorf("behavior = %q, want aggressive override", sc.Behavior)
	}
}

func TestUnimplementedOverrideDegradesToAmbient(t *testing.T) {
	r := NewResolver(testConfig(), knownBehaviors)

	sc := r.Resolve("joy", "broken")
	if sc.Behavior != "ambient" {
		t.Errorf("behavior = %q, want ambient degradation", sc.Behavior)
	}
}

func TestUnknownUndertoneIgnored(t *testing.T) {
	r := NewResolver(testConfig(), knownBehaviors)

	sc := r.Resolve("joy", "wistful")
	if sc.Behavior != "orbiting" || sc.Rate != 25 {
		t.Errorf("unknown undertone changed the config: %+v", sc)
	}
}

func TestSpecialTagCarried(t *testing.T) {
	r := NewResolver(testConfig(), knownBehaviors)

	sc := r.Resolve("void", "")
	if sc.Special != "blackhole" {
		t.Errorf("special = %q, want blackhole", sc.Special)
	}
}

func TestInvalidateDropsCache(t *testing.T) {
	r := NewResolver(testConfig(), knownBehaviors)

	a := r.Resolve("joy", "")
	r.Invalidate()
	b := r.Resolve("joy", "")

	if a == b {
		t.Error("invalidated cache returned the same object")
	}
	// Values must still match even though identity changed.
	if a.Behavior != b.Behavior || a.Rate != b.Rate || a.Emotion != b.Emotion {
		t.Errorf("re-resolved config differs: %+v vs %+v", a, b)
	}
}
