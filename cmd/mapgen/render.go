package main

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/hexforge/mapgen/hexgrid"
)

// cellSize is the pixel footprint of one cell in the preview image.
const cellSize = 8

// biomeColors maps biomes to preview colors.
var biomeColors = map[hexgrid.Biome]color.RGBA{
	hexgrid.BiomeOcean:     {R: 24, G: 68, B: 130, A: 255},
	hexgrid.BiomeCoast:     {R: 66, G: 122, B: 180, A: 255},
	hexgrid.BiomeDesert:    {R: 222, G: 202, B: 140, A: 255},
	hexgrid.BiomeSavanna:   {R: 189, G: 183, B: 107, A: 255},
	hexgrid.BiomePlains:    {R: 124, G: 176, B: 78, A: 255},
	hexgrid.BiomeHills:     {R: 142, G: 152, B: 100, A: 255},
	hexgrid.BiomeForest:    {R: 64, G: 120, B: 56, A: 255},
	hexgrid.BiomeJungle:    {R: 34, G: 96, B: 48, A: 255},
	hexgrid.BiomeTundra:    {R: 176, G: 180, B: 170, A: 255},
	hexgrid.BiomeTaiga:     {R: 96, G: 132, B: 112, A: 255},
	hexgrid.BiomeMountains: {R: 130, G: 124, B: 120, A: 255},
	hexgrid.BiomeSnow:      {R: 238, G: 240, B: 244, A: 255},
}

var (
	riverColor   = color.RGBA{R: 58, G: 110, B: 196, A: 255}
	treeColor    = color.RGBA{R: 28, G: 70, B: 32, A: 255}
	rockColor    = color.RGBA{R: 84, G: 80, B: 78, A: 255}
	unknownColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// writePNG renders the map as a flat preview image. Odd rows shift half
// a cell right to suggest the hex stagger.
func writePNG(path string, m *hexgrid.Map) error {
	imgWidth := m.Width()*cellSize + cellSize/2
	imgHeight := m.Height() * cellSize
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	for row := 0; row < m.Height(); row++ {
		for col := 0; col < m.Width(); col++ {
			c := m.Cell(hexgrid.CoordFromOffset(col, row))

			fill, ok := biomeColors[c.Biome]
			if !ok {
				fill = unknownColor
			}

			x0 := col * cellSize
			if row%2 == 1 {
				x0 += cellSize / 2
			}
			y0 := row * cellSize

			fillRect(img, x0, y0, cellSize, fill)
			if c.HasRiver() {
				drawRiver(img, x0, y0, c)
			}
			for _, f := range c.Features {
				drawFeature(img, x0, y0, f)
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// fillRect paints a size x size square with its top-left corner at (x0, y0).
func fillRect(img *image.RGBA, x0, y0, size int, fill color.RGBA) {
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
}

// riverDirOffsets approximates each hex direction in image space,
// indexed by hexgrid.Direction.
var riverDirOffsets = [6][2]float64{
	{1, 0},
	{0.5, -1},
	{-0.5, -1},
	{-1, 0},
	{-0.5, 1},
	{0.5, 1},
}

// drawRiver marks a river cell and, when present, its outgoing flow.
func drawRiver(img *image.RGBA, x0, y0 int, c *hexgrid.Cell) {
	size := cellSize / 2
	offset := (cellSize - size) / 2
	fillRect(img, x0+offset, y0+offset, size, riverColor)

	if !c.HasRiverOut {
		return
	}
	d := riverDirOffsets[c.RiverOut]
	cx := x0 + cellSize/2
	cy := y0 + cellSize/2
	for i := 1; i <= cellSize/2; i++ {
		img.SetRGBA(cx+int(d[0]*float64(i)), cy+int(d[1]*float64(i)), riverColor)
	}
}

// drawFeature plots one feature as a small dot jittered off the cell center.
func drawFeature(img *image.RGBA, x0, y0 int, f hexgrid.Feature) {
	mark := treeColor
	if f.Type == hexgrid.FeatureRock {
		mark = rockColor
	}

	fx := x0 + cellSize/2 + int(f.OffsetX*float64(cellSize))
	fy := y0 + cellSize/2 + int(f.OffsetY*float64(cellSize))
	img.SetRGBA(fx, fy, mark)
	img.SetRGBA(fx+1, fy, mark)
	img.SetRGBA(fx, fy+1, mark)
	img.SetRGBA(fx+1, fy+1, mark)
}
