package hexgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMap(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "small square", width: 4, height: 4},
		{name: "wide map", width: 16, height: 4},
		{name: "tall map", width: 4, height: 16},
		{name: "single row", width: 8, height: 1},
		{name: "single cell", width: 1, height: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMap(tt.width, tt.height)
			require.NotNil(t, m)
			assert.Equal(t, tt.width, m.Width())
			assert.Equal(t, tt.height, m.Height())
			assert.Equal(t, tt.width*tt.height, m.Len())

			for _, cell := range m.Cells() {
				c := cell.Coord
				assert.Zero(t, c.Q+c.R+c.S, "cell %+v must keep the cube invariant", c)
				assert.Same(t, cell, m.Cell(c), "lookup by coordinate must return the stored cell")
			}
		})
	}
}

func TestMapCellAt(t *testing.T) {
	m := NewMap(6, 4)

	tests := []struct {
		name   string
		q, r   int
		exists bool
	}{
		{name: "origin", q: 0, r: 0, exists: true},
		{name: "last cell of first row", q: 5, r: 0, exists: true},
		{name: "row shift keeps rectangle", q: -1, r: 2, exists: true},
		{name: "negative row", q: 0, r: -1, exists: false},
		{name: "row past height", q: 0, r: 4, exists: false},
		{name: "column past width", q: 6, r: 0, exists: false},
		{name: "column before row start", q: -2, r: 2, exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := m.CellAt(tt.q, tt.r)
			if tt.exists {
				require.NotNil(t, cell)
				assert.Equal(t, NewCoord(tt.q, tt.r), cell.Coord)
			} else {
				assert.Nil(t, cell)
			}
		})
	}
}

func TestMapNeighbor(t *testing.T) {
	m := NewMap(5, 5)

	center := m.CellAt(2, 2)
	require.NotNil(t, center)

	// Interior cells have all six neighbors.
	for d := Direction(0); d < 6; d++ {
		n := m.Neighbor(center, d)
		require.NotNil(t, n, "interior cell must have a %s neighbor", d)
		assert.Equal(t, 1, center.Coord.Distance(n.Coord))
	}

	// The northwest corner loses its off-map neighbors.
	corner := m.CellAt(0, 0)
	require.NotNil(t, corner)
	assert.Nil(t, m.Neighbor(corner, DirWest))
	assert.Nil(t, m.Neighbor(corner, DirNorthwest))
	assert.Nil(t, m.Neighbor(corner, DirNortheast))
	assert.NotNil(t, m.Neighbor(corner, DirEast))
	assert.NotNil(t, m.Neighbor(corner, DirSoutheast))
}

func TestMapCellsOrder(t *testing.T) {
	m := NewMap(3, 2)
	cells := m.Cells()
	require.Len(t, cells, 6)

	i := 0
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			assert.Equal(t, CoordFromOffset(col, row), cells[i].Coord,
				"cells must iterate in row-major offset order")
			i++
		}
	}
}

func TestDirectionSet(t *testing.T) {
	var s DirectionSet
	assert.Zero(t, s.Count())
	assert.False(t, s.Has(DirEast))

	s.Add(DirEast)
	s.Add(DirSouthwest)
	assert.True(t, s.Has(DirEast))
	assert.True(t, s.Has(DirSouthwest))
	assert.False(t, s.Has(DirWest))
	assert.Equal(t, 2, s.Count())

	// Re-adding is idempotent.
	s.Add(DirEast)
	assert.Equal(t, 2, s.Count())
}

func TestCellRiverState(t *testing.T) {
	var c Cell
	assert.False(t, c.HasRiver())
	assert.False(t, c.HasRiverOut)

	c.SetRiverOut(DirSoutheast)
	assert.True(t, c.HasRiver())
	assert.True(t, c.HasRiverOut)
	assert.Equal(t, DirSoutheast, c.RiverOut)
	assert.True(t, c.RiverEdges.Has(DirSoutheast))

	c.AddRiverIn(DirNorthwest)
	assert.Equal(t, 2, c.RiverEdges.Count())

	c.ClearRivers()
	assert.False(t, c.HasRiver())
	assert.False(t, c.HasRiverOut)
	assert.Zero(t, c.RiverEdges.Count())
}

func TestCellIsUnderwater(t *testing.T) {
	tests := []struct {
		name       string
		elevation  int
		underwater bool
	}{
		{name: "deep ocean", elevation: MinElevation, underwater: true},
		{name: "just below sea level", elevation: SeaLevel - 1, underwater: true},
		{name: "at sea level", elevation: SeaLevel, underwater: false},
		{name: "highest peak", elevation: MaxElevation, underwater: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cell{Elevation: tt.elevation}
			assert.Equal(t, tt.underwater, c.IsUnderwater())
		})
	}
}
