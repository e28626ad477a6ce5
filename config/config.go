// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen     ScreenConfig      `yaml:"screen"`
	World      WorldConfig       `yaml:"world"`
	Accretion  AccretionConfig   `yaml:"accretion"`
	Render     RenderConfig      `yaml:"render"`
	Effects    EffectsConfig     `yaml:"effects"`
	Telemetry  TelemetryConfig   `yaml:"telemetry"`
	Emotions   []EmotionConfig   `yaml:"emotions"`
	Undertones []UndertoneConfig `yaml:"undertones"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the translator tuning constants. All orbit radii are
// expressed as multiples of the mascot core radius, so visuals survive core
// scale animations without retuning.
type WorldConfig struct {
	Scale         float64 `yaml:"scale"`          // canvas-to-world projection scale
	BaseRadius    float64 `yaml:"base_radius"`    // orbit radius fraction of core radius
	DepthScale    float64 `yaml:"depth_scale"`    // synthetic z to world depth
	VerticalScale float64 `yaml:"vertical_scale"` // rain fall distance to world height
	CoreRadius    float64 `yaml:"core_radius"`    // default core radius in world units
	MaxParticles  int     `yaml:"max_particles"`
}

// AccretionConfig holds the orbital-mechanics constants for the
// gravitational accretion behavior. Radii are in units of the body's
// characteristic radius Rs.
type AccretionConfig struct {
	MinRadius       float64 `yaml:"min_radius"`        // initial orbit sample lower bound
	MaxRadius       float64 `yaml:"max_radius"`        // initial orbit sample upper bound
	DecayRate       float64 `yaml:"decay_rate"`        // orbit shrink per second (drag)
	BaseAngularVel  float64 `yaml:"base_angular_vel"`  // rad/s at radius 1.0 Rs
	InclinationSpan float64 `yaml:"inclination_span"`  // max per-particle disk tilt, radians
	ISCORadius      float64 `yaml:"isco_radius"`       // tidal stretching onset
	StretchRadius   float64 `yaml:"stretch_radius"`    // full spaghettification below this
	HorizonRadius   float64 `yaml:"horizon_radius"`    // kill threshold
	StretchRadial   float64 `yaml:"stretch_radial"`    // radial elongation factor at full stretch
	StretchLateral  float64 `yaml:"stretch_lateral"`   // transverse compression factor at full stretch
	WobbleFrequency float64 `yaml:"wobble_frequency"`  // vertical wobble cycles per orbit
}

// RenderConfig holds buffer packing parameters.
type RenderConfig struct {
	BaseSize      float64 `yaml:"base_size"`      // world-space particle size before multipliers
	BaseGlow      float64 `yaml:"base_glow"`      // glow intensity before gesture boosts
	CullThreshold float64 `yaml:"cull_threshold"` // z beyond which soul-style cores hide particles
	SizeJitter    float64 `yaml:"size_jitter"`    // +/- fraction of organic size variation
	OpacityFloor  float64 `yaml:"opacity_floor"`  // minimum per-particle base opacity variation
}

// EffectsConfig holds gesture glow modulation parameters.
type EffectsConfig struct {
	FireflyBase    float64 `yaml:"firefly_base"`
	FireflySpan    float64 `yaml:"firefly_span"`
	FlickerFloor   float64 `yaml:"flicker_floor"` // flicker must never reach zero
	FlickerSpeed   float64 `yaml:"flicker_speed"`
	FlickerQuantum float64 `yaml:"flicker_quantum"` // jump steps per second
	ShimmerBase    float64 `yaml:"shimmer_base"`
	ShimmerSpan    float64 `yaml:"shimmer_span"`
	ShimmerSpeed   float64 `yaml:"shimmer_speed"`
	GlowPeak       float64 `yaml:"glow_peak"` // pulse amplitude at gesture progress 0.5
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// EmotionConfig defines the particle spawn profile for one emotion.
type EmotionConfig struct {
	Name       string   `yaml:"name"`
	Behavior   string   `yaml:"behavior"`
	Rate       float64  `yaml:"rate"` // particles per second
	Min        int      `yaml:"min"`  // population floor
	Max        int      `yaml:"max"`  // population ceiling
	Colors     []string `yaml:"colors"`
	Glow       float64  `yaml:"glow"`
	Effect     string   `yaml:"effect"`  // ambient glow effect name, optional
	Special    string   `yaml:"special"` // special behavior tag, optional
	Lifespan   float64  `yaml:"lifespan"`
	CellShaded bool     `yaml:"cell_shaded"`
}

// UndertoneConfig modulates an emotion's spawn profile.
type UndertoneConfig struct {
	Name           string  `yaml:"name"`
	Behavior       string  `yaml:"behavior"` // optional behavior override
	RateMultiplier float64 `yaml:"rate_multiplier"`
	Tint           string  `yaml:"tint"`          // hex color blended into the palette
	TintStrength   float64 `yaml:"tint_strength"` // 0 = no tint, 1 = full replacement
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32    float32
	ScreenH32    float32
	EmotionIndex map[string]int // name -> index into Emotions
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Apply defaults to emotions that don't specify all fields
	for i := range c.Emotions {
		e := &c.Emotions[i]
		if e.Behavior == "" {
			e.Behavior = "ambient"
		}
		if e.Rate == 0 {
			e.Rate = 12
		}
		if e.Max == 0 {
			e.Max = c.World.MaxParticles
		}
		if e.Glow == 0 {
			e.Glow = 1.0
		}
		if e.Lifespan == 0 {
			e.Lifespan = 4.0
		}
		if len(e.Colors) == 0 {
			e.Colors = []string{"#ffffff"}
		}
	}

	for i := range c.Undertones {
		u := &c.Undertones[i]
		if u.RateMultiplier == 0 {
			u.RateMultiplier = 1.0
		}
	}

	c.Derived.EmotionIndex = make(map[string]int, len(c.Emotions))
	for i, e := range c.Emotions {
		c.Derived.EmotionIndex[e.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
