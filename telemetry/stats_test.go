package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, p10, p50, p90 := ComputeDistribution(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeDistribution(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty input should yield zeros")
	}
}

func TestCollectorFlushResets(t *testing.T) {
	c := NewCollector()
	c.RecordSpawns(5)
	c.RecordExpired(2)
	c.RecordKills(1, 3)
	c.RecordGesture()

	stats := c.Flush(100, 1.66, WindowStats{Emotion: "joy", LiveCount: 42})

	if stats.Spawned != 5 || stats.Expired != 2 {
		t.Errorf("spawned/expired = %d/%d, want 5/2", stats.Spawned, stats.Expired)
	}
	if stats.HorizonKills != 1 || stats.HemisphereKills != 3 {
		t.Errorf("kills = %d/%d, want 1/3", stats.HorizonKills, stats.HemisphereKills)
	}
	if stats.Gestures != 1 {
		t.Errorf("gestures = %d, want 1", stats.Gestures)
	}
	if stats.Emotion != "joy" || stats.LiveCount != 42 {
		t.Error("snapshot fields not carried through")
	}
	if stats.WindowEndFrame != 100 || stats.SimTimeSec != 1.66 {
		t.Error("window boundary fields wrong")
	}

	next := c.Flush(200, 3.33, WindowStats{})
	if next.Spawned != 0 || next.HorizonKills != 0 || next.Gestures != 0 {
		t.Error("flush did not reset counters")
	}
	if next.WindowStartFrame != 100 {
		t.Errorf("next window start = %d, want 100", next.WindowStartFrame)
	}
}

func TestPerfCollectorWindowMean(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 6; i++ {
		p.StartFrame()
		p.StartPhase(PhaseTranslate)
		p.EndFrame()
	}

	if p.MeanFrame() < 0 {
		t.Error("negative mean frame duration")
	}
	if p.sampleCount != 4 {
		t.Errorf("sample count = %d, want window size 4", p.sampleCount)
	}
}

func TestPerfCollectorEmptyWindow(t *testing.T) {
	p := NewPerfCollector(8)
	if p.MeanFrame() != 0 || p.MeanPhase(PhasePack) != 0 {
		t.Error("empty window should average to zero")
	}
}
