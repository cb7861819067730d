package main

import (
	"flag"
	"time"

	"github.com/hexforge/mapgen/config"
	"github.com/hexforge/mapgen/hexgrid"
	"github.com/hexforge/mapgen/internal/logging"
	"github.com/hexforge/mapgen/services/generator"
)

// asyncPollInterval paces completion polling in async mode.
const asyncPollInterval = 10 * time.Millisecond

func main() {
	width := flag.Int("width", 64, "Map width in cells")
	height := flag.Int("height", 48, "Map height in cells")
	seed := flag.Int64("seed", 0, "World seed (0 picks a time-based seed)")
	configPath := flag.String("config", "", "Path to a YAML generation config")
	out := flag.String("out", "map.png", "Output image path")
	async := flag.Bool("async", false, "Sample terrain on a background worker and poll for completion")
	flag.Parse()

	// Setup logging
	logging.InitLogger()
	logger := logging.GetLogger()

	// Load configuration
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("Failed to load config", "error", err, "path", *configPath)
		}
		cfg = loaded
		logger.Debug("Configuration loaded", "path", *configPath)
	}

	worldSeed := *seed
	if worldSeed == 0 {
		worldSeed = time.Now().UnixNano()
		logger.Debug("Using time-based seed", "seed", worldSeed)
	}

	svc := generator.NewService(cfg, nil)
	svc.SetProgressFunc(func(phase string, fraction float64) {
		logger.Debug("Generation progress", "phase", phase, "fraction", fraction)
	})

	m := hexgrid.NewMap(*width, *height)
	start := time.Now()

	var result generator.Result
	if *async {
		logger.Debug("Starting background generation", "width", *width, "height", *height)
		if err := svc.GenerateAsync(m, worldSeed); err != nil {
			logger.Fatal("Failed to start async generation", "error", err)
		}
		for !svc.IsGenerationComplete() {
			time.Sleep(asyncPollInterval)
		}
		finished, err := svc.FinishAsyncGeneration(m)
		if err != nil {
			logger.Fatal("Failed to finish async generation", "error", err)
		}
		result = finished
	} else {
		result = svc.Generate(m, worldSeed)
	}

	stats := generator.CollectStats(m)
	logger.Info("Map generated",
		"seed", worldSeed,
		"duration_ms", time.Since(start).Milliseconds(),
		"worker_ms", result.WorkerTime.Milliseconds(),
		"land", stats.Land,
		"water", stats.Water,
		"river_cells", stats.RiverCells,
		"features", stats.Features)
	logger.Debug("Biome distribution", "biomes", stats.Biomes)

	if err := writePNG(*out, m); err != nil {
		logger.Fatal("Failed to write map image", "error", err, "path", *out)
	}
	logger.Info("Map image written", "path", *out)
}
