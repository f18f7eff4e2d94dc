package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
	"github.com/fogleman/isoline"
	"github.com/umahmood/haversine"
)

var (
	zoom      = flag.Int("z", 13, "tile zoom")
	lat0      = flag.Float64("lat0", 36.477988, "first corner latitude")
	lng0      = flag.Float64("lng0", -112.726473, "first corner longitude")
	lat1      = flag.Float64("lat1", 35.940449, "second corner latitude")
	lng1      = flag.Float64("lng1", -111.561530, "second corner longitude")
	step      = flag.Float64("step", 100, "vertical distance between contours, metres")
	buffer    = flag.Int("buffer", 1, "cells sampled from neighbouring tiles")
	directory = flag.String("dir", "cache", "terrarium tile directory laid out as z/x/y.png")
	workers   = flag.Int("workers", 8, "tiles traced concurrently")
	output    = flag.String("o", "out.png", "output png")
	size      = flag.Int("size", 4096, "output size in px")
	verbose   = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	isoline.SetLogger(logger)

	if err := run(logger); err != nil {
		logger.Error("contours failed", "err", err)
		os.Exit(1)
	}
}

// tileStore loads each tile from disk once.
type tileStore struct {
	dir   string
	mu    sync.Mutex
	tiles map[[3]int]*isoline.Tile
}

func (s *tileStore) load(z, x, y int) (isoline.Grid, error) {
	key := [3]int{z, x, y}
	s.mu.Lock()
	tile, ok := s.tiles[key]
	s.mu.Unlock()
	if ok {
		return tile, nil
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%d/%d/%d.png", z, x, y))
	im, err := gg.LoadImage(path)
	if err != nil {
		return nil, err
	}
	tile = isoline.NewTile(z, x, y, im)
	s.mu.Lock()
	s.tiles[key] = tile
	s.mu.Unlock()
	return tile, nil
}

func run(logger *slog.Logger) error {
	min := isoline.LatLng(*lat0, *lng0)
	max := isoline.LatLng(*lat1, *lng1)
	p0 := isoline.TileXY(*zoom, min)
	p1 := isoline.TileXY(*zoom, max)
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	n := (y1 - y0 + 1) * (x1 - x0 + 1)
	logger.Info("extracting contour lines", "tiles", n)

	store := &tileStore{dir: *directory, tiles: make(map[[3]int]*isoline.Tile)}
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		results  = isoline.Isolines{}
	)
	sem := make(chan int, *workers)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			wg.Add(1)
			go func(x, y int) {
				defer wg.Done()
				sem <- 1
				defer func() { <-sem }()
				mosaic, err := isoline.StitchTiles(*zoom, x, y, store.load)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				tile, err := centerTile(mosaic, *zoom, x, y)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				iso := tile.ContourLines(*step, mosaic, *buffer)
				mu.Lock()
				for level, paths := range iso {
					results[level] = append(results[level], paths...)
				}
				mu.Unlock()
				logger.Debug("tile", "x", x, "y", y, "paths", iso.Count())
			}(x, y)
		}
	}
	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	if results.Count() == 0 {
		return fmt.Errorf("no contours at step %g", *step)
	}

	for _, level := range results.Levels() {
		logger.Info("level", "z", level, "paths", len(results[level]), "km", groundLength(results[level]))
	}

	logger.Info("rendering output", "output", *output)
	return gg.SavePNG(*output, renderPaths(results, *size, 0, 1))
}

// centerTile returns the terrarium tile a mosaic was stitched around.
func centerTile(m *isoline.Mosaic, z, x, y int) (*isoline.Tile, error) {
	tile, ok := m.Neighbor(0, 0).(*isoline.Tile)
	if !ok || tile == nil {
		return nil, fmt.Errorf("tile %d/%d/%d is not a terrarium tile", z, x, y)
	}
	return tile, nil
}

// groundLength sums the great circle length of lng/lat paths.
func groundLength(paths []isoline.Path) float64 {
	var km float64
	for _, path := range paths {
		for i := 1; i < len(path); i++ {
			_, d := haversine.Distance(
				haversine.Coord{Lat: path[i-1].Y, Lon: path[i-1].X},
				haversine.Coord{Lat: path[i].Y, Lon: path[i].X})
			km += d
		}
	}
	return km
}

func renderPaths(iso isoline.Isolines, size, pad int, lw float64) image.Image {
	b, _ := iso.Bounds()
	pw := b.Max.X - b.Min.X
	ph := b.Max.Y - b.Min.Y
	sx := float64(size-pad*2) / pw
	sy := float64(size-pad*2) / ph
	scale := math.Min(sx, sy)
	dc := gg.NewContext(int(pw*scale)+pad*2, int(ph*scale)+pad*2)
	dc.InvertY()
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Translate(float64(pad), float64(pad))
	dc.Scale(scale, scale)
	dc.Translate(-b.Min.X, -b.Min.Y)
	for _, level := range iso.Levels() {
		for _, path := range iso[level] {
			dc.NewSubPath()
			for _, p := range path {
				dc.LineTo(p.X, p.Y)
			}
		}
	}
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(lw)
	dc.Stroke()
	return dc.Image()
}
