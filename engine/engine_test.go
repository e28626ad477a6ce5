package engine

import (
	"testing"

	"github.com/joshtol/emotive-engine-sub002/config"
	"github.com/joshtol/emotive-engine-sub002/gesture"
)

func init() {
	config.MustInit("")
}

func newTestEngine() *Engine {
	return New(config.Cfg(), 7)
}

func runFrames(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Update(1.0 / 60)
	}
}

func TestUpdateSpawnsAndPacks(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("joy", "")
	runFrames(e, 120)

	if e.Pool().Count == 0 {
		t.Fatal("no particles after two seconds")
	}
	if got := e.Renderer().Buffers().Count(); got != e.Pool().Count {
		t.Errorf("packed %d entries for %d live particles", got, e.Pool().Count)
	}
}

func TestSetEmotionClearsParticlesOnChange(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("joy", "")
	runFrames(e, 60)
	if e.Pool().Count == 0 {
		t.Fatal("setup failed: no particles")
	}

	e.SetEmotion("anger", "")
	if e.Pool().Count != 0 {
		t.Errorf("pool count after emotion change = %d, want 0", e.Pool().Count)
	}
}

func TestSetEmotionSamePairIsNoOp(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("joy", "intense")
	runFrames(e, 60)
	count := e.Pool().Count

	e.SetEmotion("joy", "intense")
	if e.Pool().Count != count {
		t.Errorf("same-pair SetEmotion cleared particles: %d -> %d", count, e.Pool().Count)
	}
}

func TestUndertoneChangeClears(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("joy", "")
	runFrames(e, 60)

	e.SetEmotion("joy", "subdued")
	if e.Pool().Count != 0 {
		t.Error("undertone change did not clear particles")
	}
}

func TestUnknownEmotionFallsBack(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("zeal", "")

	if e.Current().Emotion != "neutral" {
		t.Errorf("fallback emotion = %q, want neutral", e.Current().Emotion)
	}
	runFrames(e, 10) // must not panic or stall
}

func TestRainGestureMarksAndClears(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("joy", "")
	runFrames(e, 60)

	e.TriggerGesture(gesture.Rain, 0.2)
	marked := 0
	for _, slot := range e.Pool().Active {
		if e.Pool().Particles[slot].Raining {
			marked++
		}
	}
	if marked != e.Pool().Count {
		t.Fatalf("marked %d of %d live particles", marked, e.Pool().Count)
	}

	runFrames(e, 30) // 0.5s, past the gesture
	if e.GestureActive() {
		t.Fatal("gesture still active")
	}
	for _, slot := range e.Pool().Active {
		if e.Pool().Particles[slot].Raining {
			t.Fatal("raining mark survived gesture completion")
		}
	}
}

func TestGestureCompletes(t *testing.T) {
	e := newTestEngine()
	e.TriggerGesture(gesture.Spin, 0.1)
	if !e.GestureActive() {
		t.Fatal("gesture not active after trigger")
	}
	runFrames(e, 12)
	if e.GestureActive() {
		t.Error("gesture never completed")
	}
}

func TestDeadSlotsGetCacheCleared(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("void", "") // accretion kills constantly
	runFrames(e, 600)

	// Every slot not currently live must have an empty behavior cache.
	live := make(map[int]bool, e.Pool().Count)
	for _, slot := range e.Pool().Active {
		live[slot] = true
	}
	for slot := 0; slot < e.Pool().Capacity(); slot++ {
		if live[slot] {
			continue
		}
		st := e.Translator().State(slot)
		if st.HasAccretion || st.HasDirection || st.HasOrbitPlane {
			t.Fatalf("slot %d dead but cache not cleared", slot)
		}
	}
}

func TestAccretionStatsCounted(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("void", "")
	runFrames(e, 1200) // 20 seconds: plenty of infall

	stats := e.FlushStats()
	if stats.HorizonKills+stats.HemisphereKills == 0 {
		t.Error("no accretion kills recorded after 20 simulated seconds")
	}
	if stats.Spawned == 0 {
		t.Error("no spawns recorded")
	}
}

func TestExpiredExcludesAccretionKills(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("void", "")
	runFrames(e, 1200) // 20 seconds, under the 30-second lifespan

	stats := e.FlushStats()
	if stats.HorizonKills+stats.HemisphereKills == 0 {
		t.Fatal("setup failed: no accretion kills")
	}
	// Nothing can age out in 20 seconds, so every death this window was a
	// simulator kill and none of them may count as natural expiry.
	if stats.Expired != 0 {
		t.Errorf("expired = %d, want 0 (all deaths were kills)", stats.Expired)
	}
}

func TestKilledParticlesPackInvisible(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("void", "")

	found := false
	for i := 0; i < 600 && !found; i++ {
		e.Update(1.0 / 60)
		bufs := e.Renderer().Buffers()
		for idx, slot := range e.Pool().Active {
			if e.Pool().Particles[slot].IsAlive {
				continue
			}
			found = true
			if bufs.Alphas[idx] != 0 {
				t.Fatalf("frame %d: killed particle at slot %d packed alpha %v, want 0",
					i, slot, bufs.Alphas[idx])
			}
		}
	}
	if !found {
		t.Fatal("no particle was killed mid-frame in 10 simulated seconds")
	}
}

func TestFlushStatsResetsWindow(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("joy", "")
	runFrames(e, 60)

	first := e.FlushStats()
	if first.Spawned == 0 {
		t.Fatal("no spawns in first window")
	}

	second := e.FlushStats()
	if second.Spawned != 0 {
		t.Errorf("second flush reports %d spawns, want 0", second.Spawned)
	}
	if second.LiveCount != e.Pool().Count {
		t.Error("live count should reflect the current population")
	}
}

func TestBuffersNeverExceedLiveCount(t *testing.T) {
	e := newTestEngine()
	e.SetEmotion("excited", "")
	for i := 0; i < 300; i++ {
		e.Update(1.0 / 60)
		if got := e.Renderer().Buffers().Count(); got != e.Pool().Count {
			t.Fatalf("frame %d: packed %d, live %d", i, got, e.Pool().Count)
		}
	}
}
