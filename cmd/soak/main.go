// Soak runner: drives every configured emotion headless for a fixed number
// of frames each and writes per-emotion summary CSVs.
//
// Usage: go run ./cmd/soak --output results/
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/joshtol/emotive-engine-sub002/config"
	"github.com/joshtol/emotive-engine-sub002/engine"
)

// emotionSummary is one row of the sweep output.
type emotionSummary struct {
	Emotion         string  `csv:"emotion"`
	Undertone       string  `csv:"undertone"`
	Behavior        string  `csv:"behavior"`
	Frames          uint64  `csv:"frames"`
	FinalLive       int     `csv:"final_live"`
	Spawned         int     `csv:"spawned"`
	Expired         int     `csv:"expired"`
	HorizonKills    int     `csv:"horizon_kills"`
	HemisphereKills int     `csv:"hemisphere_kills"`
	AgeMean         float64 `csv:"age_mean"`
	RadiusMean      float64 `csv:"radius_mean"`
	RadiusP90       float64 `csv:"radius_p90"`
	Culled          int     `csv:"culled"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output", "", "Output directory for sweep results")
	frames := flag.Uint64("frames", 3600, "Frames to run per emotion")
	fps := flag.Float64("fps", 60, "Simulated frames per second")
	seed := flag.Int64("seed", 42, "RNG seed")
	undertone := flag.String("undertone", "", "Undertone applied to every emotion")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	dt := 1.0 / *fps
	summaries := make([]emotionSummary, 0, len(cfg.Emotions))

	for _, def := range cfg.Emotions {
		e := engine.New(cfg, *seed)
		e.SetEmotion(def.Name, *undertone)

		for f := uint64(0); f < *frames; f++ {
			e.Update(dt)
		}
		stats := e.FlushStats()

		slog.Info("emotion soaked",
			"emotion", def.Name,
			"behavior", stats.Behavior,
			"live", stats.LiveCount,
			"horizon_kills", stats.HorizonKills,
			"hemisphere_kills", stats.HemisphereKills,
		)

		summaries = append(summaries, emotionSummary{
			Emotion:         def.Name,
			Undertone:       *undertone,
			Behavior:        stats.Behavior,
			Frames:          *frames,
			FinalLive:       stats.LiveCount,
			Spawned:         stats.Spawned,
			Expired:         stats.Expired,
			HorizonKills:    stats.HorizonKills,
			HemisphereKills: stats.HemisphereKills,
			AgeMean:         stats.AgeMean,
			RadiusMean:      stats.RadiusMean,
			RadiusP90:       stats.RadiusP90,
			Culled:          stats.CulledCount,
		})
	}

	outPath := filepath.Join(*outputDir, "soak.csv")
	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("failed to create %s: %v", outPath, err)
	}
	defer f.Close()

	if err := gocsv.Marshal(summaries, f); err != nil {
		log.Fatalf("failed to write sweep results: %v", err)
	}
	slog.Info("sweep complete", "emotions", len(summaries), "output", outPath)
}
