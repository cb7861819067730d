// Package generator orchestrates full map generation. It drives the
// terrain, river, and feature services through a fixed sequence of
// phases, either synchronously or on a background worker that callers
// poll and then apply.
package generator

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hexforge/mapgen/config"
	"github.com/hexforge/mapgen/hexgrid"
	"github.com/hexforge/mapgen/services/feature"
	"github.com/hexforge/mapgen/services/river"
	"github.com/hexforge/mapgen/services/terrain"
)

// Generation phases reported through the progress callback, in order.
const (
	PhaseTerrain  = "terrain"
	PhaseMoisture = "moisture"
	PhaseBiomes   = "biomes"
	PhaseRivers   = "rivers"
	PhaseFeatures = "features"
	PhaseComplete = "complete"
)

// Completion fractions reported as each phase finishes.
const (
	progressTerrain  = 0.20
	progressMoisture = 0.35
	progressBiomes   = 0.50
	progressRivers   = 0.80
	progressFeatures = 0.95
	progressComplete = 1.0
)

var (
	// ErrGenerationInFlight is returned when an async generation is
	// requested while a previous one has not been finished or cancelled.
	ErrGenerationInFlight = errors.New("async generation already in flight")

	// ErrNoGeneration is returned when finishing or cancelling with no
	// async generation pending.
	ErrNoGeneration = errors.New("no async generation pending")
)

// ProgressFunc receives the name of a completed phase and the overall
// completion fraction in [0, 1].
type ProgressFunc func(phase string, fraction float64)

// CellSample holds the terrain values computed for a single cell.
type CellSample struct {
	Elevation int
	Moisture  float64
	Biome     hexgrid.Biome
}

// Result reports timing for a completed generation.
type Result struct {
	WorkerTime  time.Duration
	FeatureTime time.Duration
}

// workerResult carries the samples computed by a background worker.
type workerResult struct {
	samples []CellSample
	elapsed time.Duration
}

// session tracks one in-flight async generation.
type session struct {
	id      uuid.UUID
	seed    int64
	width   int
	height  int
	cfg     config.Generation
	results chan workerResult
	done    atomic.Bool
	started time.Time
}

// Service orchestrates terrain sampling, river tracing, and feature
// scattering. Methods are not safe for concurrent use; the background
// worker communicates only through its session channel, so a caller
// driving the service from a single goroutine is always safe.
type Service struct {
	cfg      config.Generation
	logger   LoggerInterface
	progress ProgressFunc
	session  *session
}

// NewService creates a generation orchestrator with the given parameters.
func NewService(cfg config.Generation, logger LoggerInterface) *Service {
	if logger == nil {
		logger = NewDefaultLoggerWrapper()
	}
	componentLogger := logger.With("component", "generator-service")
	componentLogger.Debug("Creating new generator service")

	return &Service{
		cfg:    cfg,
		logger: componentLogger,
	}
}

// Config returns the generation parameters currently in use.
func (s *Service) Config() config.Generation {
	return s.cfg
}

// SetConfig replaces the generation parameters used by subsequent runs.
// A generation already in flight keeps the parameters it started with.
func (s *Service) SetConfig(cfg config.Generation) {
	s.cfg = cfg
}

// SetProgressFunc registers a callback invoked once per completed phase.
// During async generation the sampling phases fire from the worker
// goroutine.
func (s *Service) SetProgressFunc(fn ProgressFunc) {
	s.progress = fn
}

// Generate fills the map synchronously for the given seed. Any previous
// terrain, river, and feature state is replaced.
func (s *Service) Generate(m *hexgrid.Map, seed int64) Result {
	logger := s.logger.With("seed", seed, "width", m.Width(), "height", m.Height())
	logger.Debug("Starting map generation")

	start := time.Now()
	terrainSvc := terrain.NewServiceForSeed(seed, s.cfg, nil)
	cells := m.Cells()

	for _, c := range cells {
		c.Elevation = terrainSvc.ElevationAt(c.Coord)
		c.ClearRivers()
	}
	s.report(PhaseTerrain, progressTerrain)

	for _, c := range cells {
		c.Moisture = terrainSvc.MoistureAt(c.Coord)
	}
	s.report(PhaseMoisture, progressMoisture)

	for _, c := range cells {
		c.Biome = terrainSvc.BiomeFor(c.Elevation, c.Moisture)
	}
	s.report(PhaseBiomes, progressBiomes)

	workerTime := time.Since(start)
	featureTime := s.applyOverlays(m, seed)

	logger.Info("Map generation completed",
		"duration", time.Since(start),
		"cells_generated", m.Len())

	return Result{WorkerTime: workerTime, FeatureTime: featureTime}
}

// GenerateAsync starts terrain sampling for the map on a background
// worker. Only the map's dimensions are captured; its cells stay
// untouched until FinishAsyncGeneration applies the result. The caller
// polls IsGenerationComplete, then finishes or cancels the session.
func (s *Service) GenerateAsync(m *hexgrid.Map, seed int64) error {
	if s.session != nil {
		s.logger.Warn("Async generation requested while another is in flight",
			"pending_session", s.session.id)
		return ErrGenerationInFlight
	}

	sess := &session{
		id:      uuid.New(),
		seed:    seed,
		width:   m.Width(),
		height:  m.Height(),
		cfg:     s.cfg,
		results: make(chan workerResult, 1),
		started: time.Now(),
	}
	s.session = sess

	s.logger.Debug("Starting async generation",
		"session", sess.id,
		"seed", seed,
		"width", sess.width,
		"height", sess.height)

	go s.runWorker(sess)
	return nil
}

// IsGenerationComplete reports whether a pending async generation has
// finished sampling and can be applied without blocking.
func (s *Service) IsGenerationComplete() bool {
	return s.session != nil && s.session.done.Load()
}

// FinishAsyncGeneration applies the pending async generation to the map
// and runs the river and feature phases on it. If the worker has not
// finished yet, it blocks until the samples arrive. The map must have
// the dimensions the generation was started with.
func (s *Service) FinishAsyncGeneration(m *hexgrid.Map) (Result, error) {
	if s.session == nil {
		return Result{}, ErrNoGeneration
	}
	sess := s.session

	result := <-sess.results
	s.session = nil

	if m.Width() != sess.width || m.Height() != sess.height {
		return Result{}, fmt.Errorf("map size %dx%d does not match generation size %dx%d",
			m.Width(), m.Height(), sess.width, sess.height)
	}

	for i, c := range m.Cells() {
		sample := result.samples[i]
		c.Elevation = sample.Elevation
		c.Moisture = sample.Moisture
		c.Biome = sample.Biome
		c.ClearRivers()
	}

	featureTime := s.applyOverlays(m, sess.seed)

	s.logger.Info("Async generation finished",
		"session", sess.id,
		"worker_duration", result.elapsed,
		"total_duration", time.Since(sess.started))

	return Result{WorkerTime: result.elapsed, FeatureTime: featureTime}, nil
}

// CancelGeneration waits for the pending worker and discards its result.
func (s *Service) CancelGeneration() error {
	if s.session == nil {
		return ErrNoGeneration
	}
	sess := s.session

	<-sess.results
	s.session = nil

	s.logger.Debug("Async generation cancelled",
		"session", sess.id,
		"elapsed", time.Since(sess.started))

	return nil
}

// runWorker samples terrain for the whole grid and delivers the result
// on the session channel. It mirrors the phase order of Generate so
// both paths produce identical maps for a seed.
func (s *Service) runWorker(sess *session) {
	start := time.Now()
	terrainSvc := terrain.NewServiceForSeed(sess.seed, sess.cfg, nil)
	samples := make([]CellSample, sess.width*sess.height)

	for i := range samples {
		c := hexgrid.CoordFromOffset(i%sess.width, i/sess.width)
		samples[i].Elevation = terrainSvc.ElevationAt(c)
	}
	s.report(PhaseTerrain, progressTerrain)

	for i := range samples {
		c := hexgrid.CoordFromOffset(i%sess.width, i/sess.width)
		samples[i].Moisture = terrainSvc.MoistureAt(c)
	}
	s.report(PhaseMoisture, progressMoisture)

	for i := range samples {
		samples[i].Biome = terrainSvc.BiomeFor(samples[i].Elevation, samples[i].Moisture)
	}
	s.report(PhaseBiomes, progressBiomes)

	// Deliver before marking done so a true poll guarantees a
	// non-blocking receive.
	sess.results <- workerResult{samples: samples, elapsed: time.Since(start)}
	sess.done.Store(true)
}

// applyOverlays runs the river and feature phases on sampled terrain and
// returns the time spent scattering features.
func (s *Service) applyOverlays(m *hexgrid.Map, seed int64) time.Duration {
	riverCells := river.NewTracerForSeed(seed, s.cfg, nil).Trace(m)
	s.report(PhaseRivers, progressRivers)

	featureStart := time.Now()
	featuresPlaced := feature.NewScattererForSeed(seed, nil).Scatter(m)
	featureTime := time.Since(featureStart)
	s.report(PhaseFeatures, progressFeatures)

	s.logger.Debug("Overlay phases completed",
		"river_cells", riverCells,
		"features_placed", featuresPlaced)

	s.report(PhaseComplete, progressComplete)
	return featureTime
}

// report invokes the progress callback when one is registered.
func (s *Service) report(phase string, fraction float64) {
	if s.progress != nil {
		s.progress(phase, fraction)
	}
}
