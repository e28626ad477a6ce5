package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated particle statistics for a time window.
type WindowStats struct {
	WindowStartFrame uint64  `csv:"-"`
	WindowEndFrame   uint64  `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// State at window end
	Emotion   string `csv:"emotion"`
	Undertone string `csv:"undertone"`
	Behavior  string `csv:"behavior"`
	LiveCount int    `csv:"live"`

	// Events during window
	Spawned         int `csv:"spawned"`
	Expired         int `csv:"expired"`
	HorizonKills    int `csv:"horizon_kills"`
	HemisphereKills int `csv:"hemisphere_kills"`
	Gestures        int `csv:"gestures"`

	// Age distribution of live particles, sampled at window end
	AgeMean float64 `csv:"age_mean"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`

	// Geometry of packed positions, sampled at window end
	RadiusMean  float64 `csv:"radius_mean"`
	RadiusP90   float64 `csv:"radius_p90"`
	CulledCount int     `csv:"culled"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles from sample values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("emotion", s.Emotion),
		slog.String("behavior", s.Behavior),
		slog.Int("live", s.LiveCount),
		slog.Int("spawned", s.Spawned),
		slog.Int("expired", s.Expired),
		slog.Int("horizon_kills", s.HorizonKills),
		slog.Int("hemisphere_kills", s.HemisphereKills),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Int("culled", s.CulledCount),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"emotion", s.Emotion,
		"undertone", s.Undertone,
		"behavior", s.Behavior,
		"live", s.LiveCount,
		"spawned", s.Spawned,
		"expired", s.Expired,
		"horizon_kills", s.HorizonKills,
		"hemisphere_kills", s.HemisphereKills,
		"gestures", s.Gestures,
		"age_mean", s.AgeMean,
		"age_p50", s.AgeP50,
		"radius_mean", s.RadiusMean,
		"radius_p90", s.RadiusP90,
		"culled", s.CulledCount,
	)
}
