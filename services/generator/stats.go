package generator

import (
	"github.com/hexforge/mapgen/hexgrid"
)

// Stats summarizes the composition of a generated map.
type Stats struct {
	Land       int
	Water      int
	RiverCells int
	Features   int
	Biomes     map[hexgrid.Biome]int
}

// CollectStats tallies the terrain distribution of a generated map.
func CollectStats(m *hexgrid.Map) Stats {
	stats := Stats{Biomes: make(map[hexgrid.Biome]int)}
	for _, c := range m.Cells() {
		stats.Biomes[c.Biome]++
		if c.IsUnderwater() {
			stats.Water++
		} else {
			stats.Land++
		}
		if c.HasRiver() {
			stats.RiverCells++
		}
		stats.Features += len(c.Features)
	}
	return stats
}
