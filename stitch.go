package isoline

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
)

var ErrNoCenter = errors.New("isoline: mosaic has no center tile")

// Mosaic is a Grid over a center tile that answers samples just outside the
// tile from its eight neighbours. It has the center's size, so a buffer
// passed to Generate reads real data across tile edges. Neighbours must be
// the same size as the center.
type Mosaic struct {
	tiles [3][3]Grid
}

func NewMosaic(center Grid) *Mosaic {
	m := &Mosaic{}
	m.tiles[1][1] = center
	return m
}

// SetNeighbor places g at offset (dx, dy) from the center, each in -1..1.
func (m *Mosaic) SetNeighbor(dx, dy int, g Grid) {
	m.tiles[dy+1][dx+1] = g
}

func (m *Mosaic) Neighbor(dx, dy int) Grid {
	return m.tiles[dy+1][dx+1]
}

func (m *Mosaic) Width() int  { return m.tiles[1][1].Width() }
func (m *Mosaic) Height() int { return m.tiles[1][1].Height() }

func (m *Mosaic) Get(x, y int) float64 {
	w := m.Width()
	h := m.Height()
	tx, ty := 1, 1
	if x < 0 {
		tx, x = 0, x+w
	} else if x >= w {
		tx, x = 2, x-w
	}
	if y < 0 {
		ty, y = 0, y+h
	} else if y >= h {
		ty, y = 2, y-h
	}
	g := m.tiles[ty][tx]
	if g == nil {
		return math.NaN()
	}
	return g.Get(x, y)
}

// TileLoader returns the grid for tile z/x/y. Errors matching
// fs.ErrNotExist mean the tile is absent.
type TileLoader func(z, x, y int) (Grid, error)

// StitchTiles builds a Mosaic around tile z/x/y. Columns wrap around the
// antimeridian. Rows past the poles and absent neighbours are left empty
// and read as NaN.
func StitchTiles(z, x, y int, load TileLoader) (*Mosaic, error) {
	n := 1 << uint(z)
	center, err := load(z, x, y)
	if err != nil {
		return nil, fmt.Errorf("isoline: load tile %d/%d/%d: %w", z, x, y, err)
	}
	if center == nil {
		return nil, ErrNoCenter
	}
	m := NewMosaic(center)
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= n {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := ((x+dx)%n + n) % n
			g, err := load(z, nx, ny)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("isoline: load tile %d/%d/%d: %w", z, nx, ny, err)
			}
			if g != nil {
				m.SetNeighbor(dx, dy, g)
			}
		}
	}
	return m, nil
}
