// Package telemetry collects per-frame performance and particle statistics
// and writes them to CSV for offline analysis.
package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the engine's frame sequence.
const (
	PhaseResolve   = "resolve"
	PhaseSpawn     = "spawn"
	PhaseUpdate    = "update"
	PhaseTranslate = "translate"
	PhasePack      = "pack"
	PhaseCleanup   = "cleanup"
)

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// MeanFrame returns the average frame duration over the window.
func (p *PerfCollector) MeanFrame() time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < p.sampleCount; i++ {
		total += p.samples[i].FrameDuration
	}
	return total / time.Duration(p.sampleCount)
}

// MeanPhase returns the average duration of one phase over the window.
func (p *PerfCollector) MeanPhase(phase string) time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < p.sampleCount; i++ {
		total += p.samples[i].Phases[phase]
	}
	return total / time.Duration(p.sampleCount)
}

// LogWindow emits the window averages via slog.
func (p *PerfCollector) LogWindow(frame uint64) {
	slog.Info("perf window",
		"frame", frame,
		"mean_frame_us", p.MeanFrame().Microseconds(),
		"translate_us", p.MeanPhase(PhaseTranslate).Microseconds(),
		"pack_us", p.MeanPhase(PhasePack).Microseconds(),
		"update_us", p.MeanPhase(PhaseUpdate).Microseconds(),
	)
}
