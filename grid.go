package isoline

import (
	"image"
	"math"
)

// Grid supplies the scalar samples that isolines are traced through.
// Get must return NaN for missing data and for any coordinate it cannot
// satisfy, including coordinates outside 0..Width()-1 and 0..Height()-1.
type Grid interface {
	Width() int
	Height() int
	Get(x, y int) float64
}

// SliceGrid is a row-major grid backed by a slice.
type SliceGrid struct {
	W, H   int
	Values []float64
}

func NewSliceGrid(w, h int, values []float64) *SliceGrid {
	return &SliceGrid{w, h, values}
}

// NewGray16Grid reads each pixel of a 16-bit grayscale image as a sample.
func NewGray16Grid(im image.Image) *SliceGrid {
	gray, _ := ensureGray16(im)
	w := gray.Bounds().Size().X
	h := gray.Bounds().Size().Y
	grid := make([]float64, w*h)
	index := 0
	for y := 0; y < h; y++ {
		i := gray.PixOffset(gray.Bounds().Min.X, gray.Bounds().Min.Y+y)
		for x := 0; x < w; x++ {
			a := int(gray.Pix[i]) << 8
			b := int(gray.Pix[i+1])
			grid[index] = float64(a | b)
			index++
			i += 2
		}
	}
	return &SliceGrid{w, h, grid}
}

func (g *SliceGrid) Width() int  { return g.W }
func (g *SliceGrid) Height() int { return g.H }

func (g *SliceGrid) Get(x, y int) float64 {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return math.NaN()
	}
	i := y*g.W + x
	if i >= len(g.Values) {
		return math.NaN()
	}
	return g.Values[i]
}

// MinMax returns the smallest and largest finite samples. ok is false if the
// grid holds no finite sample.
func MinMax(grid Grid) (lo, hi float64, ok bool) {
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			v := grid.Get(x, y)
			if !finite(v) {
				continue
			}
			if !ok {
				lo, hi, ok = v, v, true
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
