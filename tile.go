package isoline

import (
	"image"
	"math"
)

const TileSize = 256

func TileXY(z int, p Point) IntPoint {
	f := TileXYFloat(z, p)
	x := int(math.Floor(f.X))
	y := int(math.Floor(f.Y))
	return IntPoint{x, y}
}

func TileXYFloat(z int, p Point) Point {
	lat := p.Y * math.Pi / 180
	n := math.Pow(2, float64(z))
	x := (p.X + 180) / 360 * n
	y := (1 - math.Log(math.Tan(lat)+(1/math.Cos(lat)))/math.Pi) / 2 * n
	return Point{x, y}
}

func TileLatLng(z, x, y int) Point {
	n := math.Pow(2, float64(z))
	lng := float64(x)/n*360 - 180
	lat := math.Atan(math.Sinh(math.Pi*(1-2*float64(y)/n))) * 180 / math.Pi
	return Point{lng, lat}
}

// terrariumElevation decodes a Terrarium encoded pixel to metres.
func terrariumElevation(r, g, b uint8) float64 {
	return (float64(r)*256 + float64(g) + float64(b)/256) - 32768
}

func imageToElevation(im *image.RGBA) []float64 {
	w := im.Bounds().Size().X
	h := im.Bounds().Size().Y
	buf := make([]float64, w*h)
	index := 0
	for y := 0; y < h; y++ {
		i := im.PixOffset(im.Bounds().Min.X, im.Bounds().Min.Y+y)
		for x := 0; x < w; x++ {
			buf[index] = terrariumElevation(im.Pix[i+0], im.Pix[i+1], im.Pix[i+2])
			index += 1
			i += 4
		}
	}
	return buf
}

// Tile is a Terrarium elevation tile. It is a Grid of metres.
type Tile struct {
	Z, X, Y      int
	W, H         int
	Elevation    []float64
	MinElevation float64
	MaxElevation float64
}

func NewTile(z, x, y int, im image.Image) *Tile {
	rgba, _ := ensureRGBA(im)
	w := rgba.Bounds().Size().X
	h := rgba.Bounds().Size().Y
	elevation := imageToElevation(rgba)
	var lo, hi float64
	if len(elevation) > 0 {
		lo = elevation[0]
		hi = elevation[0]
	}
	for _, e := range elevation {
		if e < lo {
			lo = e
		}
		if e > hi {
			hi = e
		}
	}
	return &Tile{z, x, y, w, h, elevation, lo, hi}
}

func (tile *Tile) Width() int  { return tile.W }
func (tile *Tile) Height() int { return tile.H }

func (tile *Tile) Get(x, y int) float64 {
	if x < 0 || y < 0 || x >= tile.W || y >= tile.H {
		return math.NaN()
	}
	return tile.Elevation[y*tile.W+x]
}

// Bounds returns the north-west and south-east corners of the tile as
// lng/lat points.
func (tile *Tile) Bounds() Bounds {
	nw := TileLatLng(tile.Z, tile.X, tile.Y)
	se := TileLatLng(tile.Z, tile.X+1, tile.Y+1)
	return Bounds{nw, se}
}

// ContourLines traces the tile at every multiple of interval and maps the
// result from tile space to lng/lat. grid is sampled in place of the tile
// itself when it is not nil, which lets a Mosaic around the tile supply the
// buffered samples.
func (tile *Tile) ContourLines(interval float64, grid Grid, buffer int) Isolines {
	if grid == nil {
		grid = tile
		buffer = 0
	}
	iso := Generate(interval, grid, DefaultExtent, buffer)
	b := tile.Bounds()
	nw, se := b.Min, b.Max
	// pixel i spans i/W..(i+1)/W of the tile, so pixel W is the neighbour's
	// pixel 0
	sx := float64(tile.W-1) / DefaultExtent / float64(tile.W)
	sy := float64(tile.H-1) / DefaultExtent / float64(tile.H)
	for _, paths := range iso {
		for _, path := range paths {
			for i, p := range path {
				path[i] = Point{
					nw.X + (se.X-nw.X)*(p.X*sx),
					nw.Y + (se.Y-nw.Y)*(p.Y*sy),
				}
			}
		}
	}
	return iso
}
