// Package feature scatters decorative features (trees, rocks) across a
// generated map. Placement is probabilistic per biome and fully determined
// by the world seed, so regenerating a map reproduces the same scenery.
package feature

import (
	"math"

	"github.com/hexforge/mapgen/hexgrid"
)

const (
	// featureSeedOffset derives the scatter RNG stream from the world
	// seed, keeping it independent of the terrain and river streams.
	featureSeedOffset = 224737

	// maxTreesPerCell caps how many trees a single successful roll places.
	maxTreesPerCell = 3
	// maxRocksPerCell caps how many rocks a single successful roll places.
	maxRocksPerCell = 2

	// maxFeatureOffset spreads features around the cell center while
	// keeping them inside the hex footprint.
	maxFeatureOffset = 0.7
	// minFeatureScale and featureScaleJitter bound the per-feature size.
	minFeatureScale    = 0.8
	featureScaleJitter = 0.45
)

// chances holds the per-roll placement probabilities for one biome.
type chances struct {
	tree float64
	rock float64
}

// biomeChances maps each land biome to its placement probabilities.
// Biomes absent from the table (water, BiomeNone) never receive features.
var biomeChances = map[hexgrid.Biome]chances{
	hexgrid.BiomePlains:    {tree: 0.05, rock: 0.03},
	hexgrid.BiomeForest:    {tree: 0.45, rock: 0.05},
	hexgrid.BiomeJungle:    {tree: 0.60, rock: 0.04},
	hexgrid.BiomeSavanna:   {tree: 0.08, rock: 0.06},
	hexgrid.BiomeTaiga:     {tree: 0.30, rock: 0.08},
	hexgrid.BiomeTundra:    {tree: 0.02, rock: 0.12},
	hexgrid.BiomeHills:     {tree: 0.10, rock: 0.15},
	hexgrid.BiomeMountains: {tree: 0.04, rock: 0.25},
	hexgrid.BiomeSnow:      {tree: 0.0, rock: 0.10},
	hexgrid.BiomeDesert:    {tree: 0.01, rock: 0.08},
}

// Scatterer places decorative features onto generated map cells.
type Scatterer struct {
	rnd    RandomGeneratorInterface
	logger LoggerInterface
}

// NewScatterer creates a scatterer with injected dependencies.
func NewScatterer(rnd RandomGeneratorInterface, logger LoggerInterface) *Scatterer {
	if logger == nil {
		logger = NewDefaultLoggerWrapper()
	}
	componentLogger := logger.With("component", "feature-scatterer")
	return &Scatterer{
		rnd:    rnd,
		logger: componentLogger,
	}
}

// NewScattererForSeed creates a scatterer whose RNG stream is derived
// from the given world seed.
func NewScattererForSeed(seed int64, logger LoggerInterface) *Scatterer {
	return NewScatterer(NewRandomGenerator(seed+featureSeedOffset), logger)
}

// Scatter repopulates decorative features across the map and returns the
// number of features placed. Existing features are cleared first, so a
// freshly seeded scatterer reproduces the same layout on regeneration.
func (s *Scatterer) Scatter(m *hexgrid.Map) int {
	placed := 0
	skipped := 0
	for _, c := range m.Cells() {
		c.Features = nil

		if c.IsUnderwater() || c.HasRiver() {
			skipped++
			continue
		}
		chance, ok := biomeChances[c.Biome]
		if !ok {
			skipped++
			continue
		}

		if s.rnd.Float64() < chance.tree {
			count := 1 + s.rnd.Intn(maxTreesPerCell)
			for i := 0; i < count; i++ {
				c.Features = append(c.Features, s.newFeature(hexgrid.FeatureTree))
			}
		}
		if s.rnd.Float64() < chance.rock {
			count := 1 + s.rnd.Intn(maxRocksPerCell)
			for i := 0; i < count; i++ {
				c.Features = append(c.Features, s.newFeature(hexgrid.FeatureRock))
			}
		}

		placed += len(c.Features)
	}

	s.logger.Debug("Feature scattering complete",
		"features_placed", placed,
		"cells_skipped", skipped)

	return placed
}

// newFeature rolls the placement jitter for a single feature instance.
func (s *Scatterer) newFeature(ft hexgrid.FeatureType) hexgrid.Feature {
	return hexgrid.Feature{
		Type:     ft,
		OffsetX:  (s.rnd.Float64() - 0.5) * maxFeatureOffset,
		OffsetY:  (s.rnd.Float64() - 0.5) * maxFeatureOffset,
		Rotation: s.rnd.Float64() * 2 * math.Pi,
		Scale:    minFeatureScale + s.rnd.Float64()*featureScaleJitter,
	}
}
