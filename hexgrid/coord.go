// Package hexgrid provides the hex map data model: cube coordinates, cells,
// and a rectangular map with neighbor lookup. The generation services mutate
// cell terrain fields but never create or destroy cells.
package hexgrid

import "math"

// Direction indexes the six sides of a hex cell, counterclockwise from east.
type Direction int

const (
	DirEast Direction = iota
	DirNortheast
	DirNorthwest
	DirWest
	DirSouthwest
	DirSoutheast
)

// Opposite returns the direction pointing back across the same edge.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

func (d Direction) String() string {
	switch d {
	case DirEast:
		return "E"
	case DirNortheast:
		return "NE"
	case DirNorthwest:
		return "NW"
	case DirWest:
		return "W"
	case DirSouthwest:
		return "SW"
	case DirSoutheast:
		return "SE"
	default:
		return "?"
	}
}

// Coord is a cube coordinate. Q + R + S is always zero.
type Coord struct {
	Q, R, S int
}

// NewCoord builds a cube coordinate from axial (q, r).
func NewCoord(q, r int) Coord {
	return Coord{Q: q, R: r, S: -q - r}
}

// CoordFromOffset converts rectangular offset (col, row) to the cube
// coordinate used for storage. Rows shift left every second row so the
// rectangle stays rectangular in offset space.
func CoordFromOffset(col, row int) Coord {
	return NewCoord(col-row/2, row)
}

// Offset returns the (col, row) storage position of the coordinate.
func (c Coord) Offset() (col, row int) {
	return c.Q + c.R/2, c.R
}

// directions holds the neighbor offsets indexed by Direction.
var directions = [6]Coord{
	{1, 0, -1},  // east
	{1, -1, 0},  // northeast
	{0, -1, 1},  // northwest
	{-1, 0, 1},  // west
	{-1, 1, 0},  // southwest
	{0, 1, -1},  // southeast
}

// Neighbor returns the coordinate one step in the given direction.
func (c Coord) Neighbor(d Direction) Coord {
	off := directions[d]
	return Coord{Q: c.Q + off.Q, R: c.R + off.R, S: c.S + off.S}
}

// Distance returns the hex distance between two coordinates.
func (c Coord) Distance(o Coord) int {
	return max(abs(c.Q-o.Q), abs(c.R-o.R), abs(c.S-o.S))
}

// Planar projects the coordinate onto the cartesian plane assuming
// unit-spaced pointy-top hexes. Noise fields sample in this space so
// adjacent cells receive adjacent samples.
func (c Coord) Planar() (x, y float64) {
	x = float64(c.Q) + float64(c.R)*0.5
	y = float64(c.R) * math.Sqrt(3) / 2
	return x, y
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
