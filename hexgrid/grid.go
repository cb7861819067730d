package hexgrid

// Map is a rectangular hex grid addressed by axial coordinates. Storage is a
// row-major flat slice indexed by offset (col, row); coordinates convert
// through CoordFromOffset so no per-cell key formatting happens in hot loops.
type Map struct {
	width  int
	height int
	cells  []Cell
}

// NewMap allocates a width by height map with zeroed cells.
func NewMap(width, height int) *Map {
	m := &Map{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			m.cells[row*width+col].Coord = CoordFromOffset(col, row)
		}
	}
	return m
}

// Width returns the map width in cells.
func (m *Map) Width() int {
	return m.width
}

// Height returns the map height in cells.
func (m *Map) Height() int {
	return m.height
}

// Len returns the total cell count.
func (m *Map) Len() int {
	return len(m.cells)
}

// CellAt returns the cell at axial (q, r), or nil if it lies off the map.
func (m *Map) CellAt(q, r int) *Cell {
	if r < 0 || r >= m.height {
		return nil
	}
	col := q + r/2
	if col < 0 || col >= m.width {
		return nil
	}
	return &m.cells[r*m.width+col]
}

// Cell returns the cell at the given coordinate, or nil off-map.
func (m *Map) Cell(c Coord) *Cell {
	return m.CellAt(c.Q, c.R)
}

// Neighbor returns the cell adjacent to c in direction d, or nil off-map.
func (m *Map) Neighbor(c *Cell, d Direction) *Cell {
	n := c.Coord.Neighbor(d)
	return m.CellAt(n.Q, n.R)
}

// Cells returns every cell in row-major order. The pointers alias the map's
// backing storage.
func (m *Map) Cells() []*Cell {
	out := make([]*Cell, len(m.cells))
	for i := range m.cells {
		out[i] = &m.cells[i]
	}
	return out
}
