package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/joshtol/emotive-engine-sub002/config"
)

// PerfCSV is the flattened perf record written to perf.csv.
type PerfCSV struct {
	WindowEnd   uint64 `csv:"window_end"`
	MeanFrameUs int64  `csv:"mean_frame_us"`
	ResolveUs   int64  `csv:"resolve_us"`
	SpawnUs     int64  `csv:"spawn_us"`
	UpdateUs    int64  `csv:"update_us"`
	TranslateUs int64  `csv:"translate_us"`
	PackUs      int64  `csv:"pack_us"`
	CleanupUs   int64  `csv:"cleanup_us"`
}

// Snapshot flattens the collector's window averages into a CSV record.
func (p *PerfCollector) Snapshot(windowEnd uint64) PerfCSV {
	return PerfCSV{
		WindowEnd:   windowEnd,
		MeanFrameUs: p.MeanFrame().Microseconds(),
		ResolveUs:   p.MeanPhase(PhaseResolve).Microseconds(),
		SpawnUs:     p.MeanPhase(PhaseSpawn).Microseconds(),
		UpdateUs:    p.MeanPhase(PhaseUpdate).Microseconds(),
		TranslateUs: p.MeanPhase(PhaseTranslate).Microseconds(),
		PackUs:      p.MeanPhase(PhasePack).Microseconds(),
		CleanupUs:   p.MeanPhase(PhaseCleanup).Microseconds(),
	}
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir           string
	telemetryFile *os.File
	perfFile      *os.File

	telemetryHeaderWritten bool
	perfHeaderWritten      bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	telemetryPath := filepath.Join(dir, "telemetry.csv")
	f, err := os.Create(telemetryPath)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	perfPath := filepath.Join(dir, "perf.csv")
	f, err = os.Create(perfPath)
	if err != nil {
		om.telemetryFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.telemetryHeaderWritten {
		if err := gocsv.Marshal(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.telemetryHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	return nil
}

// WritePerf writes a performance record to perf.csv.
func (om *OutputManager) WritePerf(record PerfCSV) error {
	if om == nil {
		return nil
	}

	records := []PerfCSV{record}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.telemetryFile != nil {
		if err := om.telemetryFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
