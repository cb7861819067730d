// Package terrain samples the seeded elevation and moisture fields and
// classifies cells into biomes. All sampling is a pure function of the world
// seed and the generation config, so the same inputs always reproduce the
// same map.
package terrain

import (
	"github.com/hexforge/mapgen/config"
	"github.com/hexforge/mapgen/hexgrid"
	"github.com/hexforge/mapgen/internal/logging"
	"github.com/hexforge/mapgen/services/noise"
)

// moistureSeedOffset separates the moisture field seed from the elevation
// field seed so moisture variation is independent of height.
const moistureSeedOffset = 7919

// LoggerInterface abstracts logging operations for dependency injection.
type LoggerInterface interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) LoggerInterface
}

// DefaultLoggerWrapper wraps the internal logging package.
type DefaultLoggerWrapper struct{}

// NewDefaultLoggerWrapper creates a new default logger wrapper.
func NewDefaultLoggerWrapper() LoggerInterface {
	return &DefaultLoggerWrapper{}
}

func (l *DefaultLoggerWrapper) Debug(msg string, keysAndValues ...interface{}) {
	logger := logging.GetLogger()
	logger.Debug(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Info(msg string, keysAndValues ...interface{}) {
	logger := logging.GetLogger()
	logger.Info(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Warn(msg string, keysAndValues ...interface{}) {
	logger := logging.GetLogger()
	logger.Warn(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Error(msg string, keysAndValues ...interface{}) {
	logger := logging.GetLogger()
	logger.Error(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) With(keysAndValues ...interface{}) LoggerInterface {
	// For now, return self for simplicity
	return l
}

// Service samples terrain fields for map cells.
type Service struct {
	cfg        config.Generation
	elevation  noise.SamplerInterface
	moisture   noise.SamplerInterface
	classifier *Classifier
	logger     LoggerInterface
}

// NewService creates a new terrain service with dependency injection.
func NewService(elevation, moisture noise.SamplerInterface, cfg config.Generation, logger LoggerInterface) *Service {
	if logger == nil {
		logger = NewDefaultLoggerWrapper()
	}
	componentLogger := logger.With("component", "terrain-service")
	componentLogger.Debug("Creating new terrain service", "seed", elevation.Seed())
	return &Service{
		cfg:        cfg,
		elevation:  elevation,
		moisture:   moisture,
		classifier: NewClassifier(cfg),
		logger:     componentLogger,
	}
}

// NewServiceForSeed creates a terrain service with production noise fields
// derived from the world seed. Elevation uses Perlin noise at the terrain
// frequency; moisture uses an independently seeded OpenSimplex field at the
// moisture frequency.
func NewServiceForSeed(seed int64, cfg config.Generation, logger LoggerInterface) *Service {
	elevation := noise.NewSampler(noise.NewPerlinBackend(seed),
		cfg.Frequency, cfg.Octaves, cfg.Persistence, cfg.Lacunarity)
	moisture := noise.NewSampler(noise.NewSimplexBackend(seed+moistureSeedOffset),
		cfg.MoistureFrequency, cfg.Octaves, cfg.Persistence, cfg.Lacunarity)
	return NewService(elevation, moisture, cfg, logger)
}

// ElevationAt returns the elevation band at the cell coordinate.
func (s *Service) ElevationAt(c hexgrid.Coord) int {
	x, y := c.Planar()
	return ClassifyElevation(s.elevation.SampleFractal01(x, y), s.cfg.SeaLevel)
}

// MoistureAt returns the moisture value in [0, 1] at the cell coordinate.
func (s *Service) MoistureAt(c hexgrid.Coord) float64 {
	x, y := c.Planar()
	return s.moisture.SampleFractal01(x, y)
}

// BiomeFor classifies an already sampled cell.
func (s *Service) BiomeFor(elevation int, moisture float64) hexgrid.Biome {
	return s.classifier.Classify(elevation, moisture)
}

// Sample computes the full terrain tuple for one coordinate.
func (s *Service) Sample(c hexgrid.Coord) (elevation int, moisture float64, biome hexgrid.Biome) {
	elevation = s.ElevationAt(c)
	moisture = s.MoistureAt(c)
	biome = s.classifier.Classify(elevation, moisture)
	return elevation, moisture, biome
}

// Seed returns the world seed the elevation field was created with.
func (s *Service) Seed() int64 {
	return s.elevation.Seed()
}

// Config returns the generation parameters the service samples with.
func (s *Service) Config() config.Generation {
	return s.cfg
}
