package isoline

import (
	"image"
	"image/color"
	"math"
)

// Mask marks which pixels of an image hold data: 1 where alpha is non-zero
// and 0 where the pixel is fully transparent.
type Mask struct {
	W, H int
	Data []uint8

	// Transparent counts the pixels with zero alpha and Total all pixels,
	// both excluding padding.
	Transparent int
	Total       int
}

// NewMask builds the mask of im surrounded by pad rows and columns of
// zeros. Padding makes outlines of data touching the image edge close.
func NewMask(im image.Image, pad int) *Mask {
	if pad < 0 {
		pad = 0
	}
	nrgba, _ := ensureNRGBA(im)
	b := nrgba.Bounds()
	iw, ih := b.Dx(), b.Dy()
	m := &Mask{W: iw + 2*pad, H: ih + 2*pad}
	m.Data = make([]uint8, m.W*m.H)
	for y := 0; y < ih; y++ {
		i := nrgba.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < iw; x++ {
			m.Total++
			if nrgba.Pix[i+3] == 0 {
				m.Transparent++
			} else {
				m.Data[(y+pad)*m.W+x+pad] = 1
			}
			i += 4
		}
	}
	return m
}

func (m *Mask) Width() int  { return m.W }
func (m *Mask) Height() int { return m.H }

func (m *Mask) Get(x, y int) float64 {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return math.NaN()
	}
	return float64(m.Data[y*m.W+x])
}

// Outline traces the boundary between transparent and opaque pixels.
func (m *Mask) Outline(extent float64) []Path {
	return Generate(1, m, extent, 0)[0]
}

var maskColor = color.NRGBA{255, 0, 255, 255}

// Image renders the mask for inspection: magenta where the pixel is
// transparent, clear elsewhere.
func (m *Mask) Image() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.Data[y*m.W+x] == 0 {
				im.SetNRGBA(x, y, maskColor)
			}
		}
	}
	return im
}
