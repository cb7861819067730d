package terrain

import (
	"github.com/hexforge/mapgen/config"
	"github.com/hexforge/mapgen/hexgrid"
)

// Moisture band boundaries for the temperate biomes, ordered ascending.
const (
	desertMax  = 0.16
	savannaMax = 0.33
	plainsMax  = 0.55
	forestMax  = 0.80

	// tundraTaigaSplit divides the alpine band between dry tundra and
	// wet taiga.
	tundraTaigaSplit = 0.35

	// savannaHillsMinElevation lifts dry mid-elevation cells from savanna
	// into hills.
	savannaHillsMinElevation = 2
)

// ClassifyElevation maps a unit-interval noise sample onto the discrete
// elevation bands. Samples below the sea level threshold spread linearly
// across the underwater bands down to MinElevation; the rest spread across
// the land bands up to MaxElevation.
func ClassifyElevation(raw, seaLevel float64) int {
	if raw < seaLevel {
		t := raw / seaLevel
		if t < 0 {
			t = 0
		}
		elevation := hexgrid.MinElevation + int(t*float64(-hexgrid.MinElevation))
		if elevation > hexgrid.SeaLevel-1 {
			elevation = hexgrid.SeaLevel - 1
		}
		return elevation
	}

	t := (raw - seaLevel) / (1 - seaLevel)
	elevation := int(t * float64(hexgrid.MaxElevation+1))
	if elevation > hexgrid.MaxElevation {
		elevation = hexgrid.MaxElevation
	}
	return elevation
}

// Classifier converts (elevation, moisture) pairs into biomes. The altitude
// boundaries are derived once from the generation config, so classification
// itself is pure and has no incidental state.
type Classifier struct {
	snowLine     int
	mountainLine int
	alpineLine   int
}

// NewClassifier derives the high-altitude biome boundaries from the mountain
// threshold. The snow line is the elevation band the threshold classifies to,
// held at 3 or above so the boundaries stay ordered on land.
func NewClassifier(cfg config.Generation) *Classifier {
	snow := ClassifyElevation(cfg.MountainThreshold, cfg.SeaLevel)
	if snow < 3 {
		snow = 3
	}
	return &Classifier{
		snowLine:     snow,
		mountainLine: snow - 2,
		alpineLine:   snow - 3,
	}
}

// Classify returns the biome for an elevation band and moisture value. The
// function is total over every reachable pair: underwater cells split into
// ocean and coast, the highest bands go to snow, mountains, then the alpine
// tundra/taiga split, and the remaining land picks a temperate biome by
// ascending moisture with elevation breaking the savanna/hills tie.
func (c *Classifier) Classify(elevation int, moisture float64) hexgrid.Biome {
	if elevation < hexgrid.SeaLevel {
		if elevation == hexgrid.SeaLevel-1 {
			return hexgrid.BiomeCoast
		}
		return hexgrid.BiomeOcean
	}

	if elevation >= c.snowLine {
		return hexgrid.BiomeSnow
	}
	if elevation >= c.mountainLine {
		return hexgrid.BiomeMountains
	}
	if elevation >= c.alpineLine {
		if moisture < tundraTaigaSplit {
			return hexgrid.BiomeTundra
		}
		return hexgrid.BiomeTaiga
	}

	switch {
	case moisture < desertMax:
		return hexgrid.BiomeDesert
	case moisture < savannaMax:
		if elevation >= savannaHillsMinElevation {
			return hexgrid.BiomeHills
		}
		return hexgrid.BiomeSavanna
	case moisture < plainsMax:
		return hexgrid.BiomePlains
	case moisture < forestMax:
		return hexgrid.BiomeForest
	default:
		return hexgrid.BiomeJungle
	}
}
