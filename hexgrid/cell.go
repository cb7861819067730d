package hexgrid

import "math/bits"

// Elevation bands. Sea level splits the underwater band from land; cells at
// or above SeaLevel are land.
const (
	MinElevation = -4
	SeaLevel     = 0
	MaxElevation = 10
)

// Biome classifies a cell's terrain. BiomeNone marks a cell that has not
// been generated yet; generation always assigns one of the named biomes.
type Biome int

const (
	BiomeNone Biome = iota
	BiomeOcean
	BiomeCoast
	BiomeDesert
	BiomeSavanna
	BiomePlains
	BiomeHills
	BiomeForest
	BiomeJungle
	BiomeTundra
	BiomeTaiga
	BiomeMountains
	BiomeSnow
)

func (b Biome) String() string {
	switch b {
	case BiomeNone:
		return "none"
	case BiomeOcean:
		return "ocean"
	case BiomeCoast:
		return "coast"
	case BiomeDesert:
		return "desert"
	case BiomeSavanna:
		return "savanna"
	case BiomePlains:
		return "plains"
	case BiomeHills:
		return "hills"
	case BiomeForest:
		return "forest"
	case BiomeJungle:
		return "jungle"
	case BiomeTundra:
		return "tundra"
	case BiomeTaiga:
		return "taiga"
	case BiomeMountains:
		return "mountains"
	case BiomeSnow:
		return "snow"
	default:
		return "unknown"
	}
}

// IsWater reports whether the biome lies below sea level.
func (b Biome) IsWater() bool {
	return b == BiomeOcean || b == BiomeCoast
}

// FeatureType identifies a decoration kind placed on a cell.
type FeatureType int

const (
	FeatureTree FeatureType = iota
	FeatureRock
)

func (t FeatureType) String() string {
	switch t {
	case FeatureTree:
		return "tree"
	case FeatureRock:
		return "rock"
	default:
		return "unknown"
	}
}

// Feature is one placed decoration instance. Offsets are cell-local planar
// units, rotation is in radians.
type Feature struct {
	Type     FeatureType
	OffsetX  float64
	OffsetY  float64
	Rotation float64
	Scale    float64
}

// DirectionSet is a bitmask over the six hex sides.
type DirectionSet uint8

// Has reports whether direction d is in the set.
func (s DirectionSet) Has(d Direction) bool {
	return s&(1<<uint(d)) != 0
}

// Add inserts direction d into the set.
func (s *DirectionSet) Add(d Direction) {
	*s |= 1 << uint(d)
}

// Count returns the number of directions in the set.
func (s DirectionSet) Count() int {
	return bits.OnesCount8(uint8(s))
}

// Cell is one hex of the map. Cells are created by the Map and live for its
// lifetime. RiverEdges carries every side a river crosses, both incoming and
// outgoing; the outgoing flow direction is tracked separately so downstream
// consumers can follow the current.
type Cell struct {
	Coord       Coord
	Elevation   int
	Moisture    float64
	Biome       Biome
	RiverEdges  DirectionSet
	RiverOut    Direction
	HasRiverOut bool
	Features    []Feature
}

// HasRiver reports whether any side of the cell carries river flow.
func (c *Cell) HasRiver() bool {
	return c.RiverEdges != 0
}

// SetRiverOut marks d as the outgoing flow direction and flags its edge.
func (c *Cell) SetRiverOut(d Direction) {
	c.RiverOut = d
	c.HasRiverOut = true
	c.RiverEdges.Add(d)
}

// AddRiverIn flags an incoming flow edge on side d of this cell.
func (c *Cell) AddRiverIn(d Direction) {
	c.RiverEdges.Add(d)
}

// ClearRivers resets all river state on the cell.
func (c *Cell) ClearRivers() {
	c.RiverEdges = 0
	c.RiverOut = 0
	c.HasRiverOut = false
}

// IsUnderwater reports whether the cell sits below sea level.
func (c *Cell) IsUnderwater() bool {
	return c.Elevation < SeaLevel
}
