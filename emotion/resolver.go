// Package emotion resolves (emotion, undertone) pairs into particle spawn
// configurations. Results are cached so a pair always yields the same config
// object frame over frame; the cache is bounded because callers may
// hot-reload definitions.
package emotion

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/joshtol/emotive-engine-sub002/config"
)

// fallbackEmotion absorbs unknown emotion names and typo'd undertone
// behavior overrides.
const fallbackEmotion = "neutral"

// fallbackBehavior is used when even the fallback emotion is missing from
// the definitions.
const fallbackBehavior = "ambient"

// cacheSize bounds the resolver cache. Emotion x undertone pairs are finite
// but definitions can be reloaded, so stale entries must age out.
const cacheSize = 64

// SpawnConfig is the resolved particle spawn profile for one
// (emotion, undertone) pair. Instances are immutable once cached.
type SpawnConfig struct {
	Emotion    string
	Behavior   string
	Rate       float64 // particles per second
	Min        int     // population floor
	Max        int     // population ceiling
	Colors     []string
	Glow       float64
	Effect     string // ambient glow effect name, may be empty
	Special    string // special behavior tag, may be empty
	Lifespan   float64
	CellShaded bool

	Tint         string // undertone hex tint, may be empty
	TintStrength float64
}

type cacheKey struct {
	emotion   string
	undertone string
}

// Resolver composes emotion definitions with undertone modifiers.
type Resolver struct {
	emotions   map[string]config.EmotionConfig
	undertones map[string]config.UndertoneConfig
	cache      *lru.Cache[cacheKey, *SpawnConfig]
	known      map[string]bool // behavior names the translator recognizes
	warned     map[string]bool // once-per-name degradation warnings
}

// NewResolver builds a resolver from loaded configuration. knownBehaviors
// lists the behavior names the translation table implements; overrides
// outside that set degrade to ambient.
func NewResolver(cfg *config.Config, knownBehaviors []string) *Resolver {
	cache, err := lru.New[cacheKey, *SpawnConfig](cacheSize)
	if err != nil {
		// lru.New only fails on size <= 0; cacheSize is a positive constant.
		panic(err)
	}

	r := &Resolver{
		emotions:   make(map[string]config.EmotionConfig, len(cfg.Emotions)),
		undertones: make(map[string]config.UndertoneConfig, len(cfg.Undertones)),
		cache:      cache,
		known:      make(map[string]bool, len(knownBehaviors)),
		warned:     make(map[string]bool),
	}
	for _, e := range cfg.Emotions {
		r.emotions[e.Name] = e
	}
	for _, u := range cfg.Undertones {
		r.undertones[u.Name] = u
	}
	for _, b := range knownBehaviors {
		r.known[b] = true
	}
	return r
}

// Resolve returns the spawn config for an (emotion, undertone) pair.
// Repeated calls with the same pair return the identical object. Unknown
// emotion names resolve to the fallback emotion; unknown or unimplemented
// undertone behavior overrides degrade to ambient, warning once per name.
func (r *Resolver) Resolve(emotionName, undertone string) *SpawnConfig {
	key := cacheKey{emotionName, undertone}
	if sc, ok := r.cache.Get(key); ok {
		return sc
	}

	def, ok := r.emotions[emotionName]
	if !ok {
		r.warnOnce(emotionName, "unknown emotion, using fallback")
		def, ok = r.emotions[fallbackEmotion]
		if !ok {
			def = config.EmotionConfig{
				Name: fallbackEmotion, Behavior: fallbackBehavior,
				Rate: 10, Max: 40, Glow: 1, Lifespan: 5,
				Colors: []string{"#ffffff"},
			}
		}
	}

	sc := &SpawnConfig{
		Emotion:    def.Name,
		Behavior:   def.Behavior,
		Rate:       def.Rate,
		Min:        def.Min,
		Max:        def.Max,
		Colors:     def.Colors,
		Glow:       def.Glow,
		Effect:     def.Effect,
		Special:    def.Special,
		Lifespan:   def.Lifespan,
		CellShaded: def.CellShaded,
	}

	if u, ok := r.undertones[undertone]; ok {
		if u.Behavior != "" {
			if r.known[u.Behavior] {
				sc.Behavior = u.Behavior
			} else {
				// Typo'd undertone config: degrade gracefully rather than
				// feed the translator an unknown name forever.
				r.warnOnce(u.Behavior, "undertone behavior not implemented, using ambient")
				sc.Behavior = fallbackBehavior
			}
		}
		sc.Rate *= u.RateMultiplier
		sc.Tint = u.Tint
		sc.TintStrength = u.TintStrength
	} else if undertone != "" {
		r.warnOnce(undertone, "unknown undertone ignored")
	}

	if !r.known[sc.Behavior] {
		sc.Behavior = fallbackBehavior
	}

	r.cache.Add(key, sc)
	return sc
}

// Invalidate drops all cached configs. Called after definitions reload.
func (r *Resolver) Invalidate() {
	r.cache.Purge()
}

func (r *Resolver) warnOnce(name, msg string) {
	if r.warned[name] {
		return
	}
	r.warned[name] = true
	slog.Warn(msg, "name", name)
}
