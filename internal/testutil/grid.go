package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexforge/mapgen/hexgrid"
)

// MapFromElevations builds a map from explicit elevation bands laid out in
// offset rows. Underwater cells get water biomes, land cells get plains, and
// every cell receives the given moisture. River tests use this to script
// exact descent paths without running the noise pipeline.
func MapFromElevations(t *testing.T, rows [][]int, moisture float64) *hexgrid.Map {
	t.Helper()

	require.NotEmpty(t, rows, "elevation grid must have at least one row")
	width := len(rows[0])
	height := len(rows)

	m := hexgrid.NewMap(width, height)
	for row := 0; row < height; row++ {
		require.Len(t, rows[row], width, "elevation rows must all have the same width")
		for col := 0; col < width; col++ {
			c := m.Cell(hexgrid.CoordFromOffset(col, row))
			require.NotNil(t, c, "offset (%d, %d) should map to a cell", col, row)

			c.Elevation = rows[row][col]
			c.Moisture = moisture
			switch {
			case c.Elevation <= hexgrid.SeaLevel-2:
				c.Biome = hexgrid.BiomeOcean
			case c.Elevation < hexgrid.SeaLevel:
				c.Biome = hexgrid.BiomeCoast
			default:
				c.Biome = hexgrid.BiomePlains
			}
		}
	}
	return m
}

// AssertCubeInvariant verifies that every cell coordinate satisfies Q+R+S == 0.
func AssertCubeInvariant(t *testing.T, m *hexgrid.Map) {
	t.Helper()

	for _, c := range m.Cells() {
		assert.Zero(t, c.Coord.Q+c.Coord.R+c.Coord.S,
			"cube invariant violated at (%d, %d, %d)", c.Coord.Q, c.Coord.R, c.Coord.S)
	}
}

// AssertRiverInvariants verifies the structural river properties of a map:
// water cells carry no river state, outgoing edges are recorded in the edge
// set, flow is strictly downhill onto land, and each land cell downstream of
// an outgoing edge records the matching incoming edge.
func AssertRiverInvariants(t *testing.T, m *hexgrid.Map) {
	t.Helper()

	for _, c := range m.Cells() {
		if c.IsUnderwater() {
			assert.False(t, c.HasRiver(),
				"underwater cell (%d, %d) should carry no river edges", c.Coord.Q, c.Coord.R)
			assert.False(t, c.HasRiverOut,
				"underwater cell (%d, %d) should have no outgoing flow", c.Coord.Q, c.Coord.R)
			continue
		}

		if !c.HasRiverOut {
			continue
		}

		assert.True(t, c.RiverEdges.Has(c.RiverOut),
			"cell (%d, %d) outgoing direction %s missing from edge set", c.Coord.Q, c.Coord.R, c.RiverOut)

		next := m.Neighbor(c, c.RiverOut)
		require.NotNil(t, next,
			"cell (%d, %d) flows %s off the map", c.Coord.Q, c.Coord.R, c.RiverOut)

		if next.IsUnderwater() {
			continue
		}

		assert.Less(t, next.Elevation, c.Elevation,
			"flow from (%d, %d) to (%d, %d) is not strictly downhill", c.Coord.Q, c.Coord.R, next.Coord.Q, next.Coord.R)
		assert.True(t, next.RiverEdges.Has(c.RiverOut.Opposite()),
			"cell (%d, %d) missing incoming edge from (%d, %d)", next.Coord.Q, next.Coord.R, c.Coord.Q, c.Coord.R)
	}
}

// CountRiverCells returns the number of cells carrying at least one river edge.
func CountRiverCells(m *hexgrid.Map) int {
	count := 0
	for _, c := range m.Cells() {
		if c.HasRiver() {
			count++
		}
	}
	return count
}

// CountFeatures returns the total number of placed features across the map.
func CountFeatures(m *hexgrid.Map) int {
	count := 0
	for _, c := range m.Cells() {
		count += len(c.Features)
	}
	return count
}
