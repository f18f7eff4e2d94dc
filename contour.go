package isoline

import (
	"log/slog"
	"math"
)

const (
	DefaultExtent = 4096
	DefaultBuffer = 1
)

// GenerateDefault traces isolines with DefaultExtent and DefaultBuffer.
func GenerateDefault(interval float64, grid Grid) Isolines {
	return Generate(interval, grid, DefaultExtent, DefaultBuffer)
}

// Generate traces the isolines of grid at every multiple of interval in a
// single pass over its cells.
//
// Samples are taken to be at the grid vertices, and output coordinates are
// scaled so that the grid spans 0..extent. buffer extra rows and columns of
// cells beyond each edge are visited too, so contours that leave the grid
// can be completed with samples from neighbouring tiles.
//
// Rings are closed, with the first point repeated at the end. Paths that
// never closed are returned open. A non-positive interval returns an empty
// result. Cells with a non-finite corner are skipped.
func Generate(interval float64, grid Grid, extent float64, buffer int) Isolines {
	result := Isolines{}
	if !(interval > 0) {
		return result
	}
	if extent == 0 {
		extent = DefaultExtent
	}
	if buffer < 0 {
		buffer = 0
	}

	w := grid.Width()
	h := grid.Height()
	multiplier := extent / float64(w-1)
	levels := levelIndex{}
	rings := 0

	emit := func(k int, f *fragment) {
		if f.empty() {
			return
		}
		level := float64(k) * interval
		result[level] = append(result[level], f.path())
	}

	// The traversal must stay row-major: a crossing is always reached from
	// an already visited neighbour before the cell that extends or closes it.
	for r := 1 - buffer; r < h+buffer; r++ {
		trd := grid.Get(-buffer, r-1)
		brd := grid.Get(-buffer, r)
		for c := 1 - buffer; c < w+buffer; c++ {
			tld, bld := trd, brd
			trd = grid.Get(c, r-1)
			brd = grid.Get(c, r)
			if !finite(tld) || !finite(trd) || !finite(brd) || !finite(bld) {
				continue
			}
			lo := math.Min(math.Min(tld, trd), math.Min(brd, bld))
			hi := math.Max(math.Max(tld, trd), math.Max(brd, bld))
			k0 := int(math.Ceil(lo / interval))
			k1 := int(math.Floor(hi / interval))
			cl := cell{c, r, tld, trd, brd, bld}
			for k := k0; k <= k1; k++ {
				level := float64(k) * interval
				for _, s := range cases[caseIndex(tld, trd, brd, bld, level)] {
					fi := levels.get(k)
					startIndex := boundaryIndex(w, buffer, c, r, s.start)
					endIndex := boundaryIndex(w, buffer, c, r, s.end)
					if f, ok := fi.byEnd[startIndex]; ok {
						delete(fi.byEnd, startIndex)
						if g, ok := fi.byStart[endIndex]; ok {
							delete(fi.byStart, endIndex)
							if f == g {
								// closing a ring
								cl.interpolate(s.end, level, multiplier, func(x, y float64) {
									appendPoint(f, x, y)
								})
								emit(k, f)
								rings++
							} else {
								// connecting two fragments
								mergeFragments(f, g)
								fi.byEnd[f.end] = f
							}
						} else {
							cl.interpolate(s.end, level, multiplier, func(x, y float64) {
								appendPoint(f, x, y)
							})
							f.end = endIndex
							fi.byEnd[endIndex] = f
						}
					} else if f, ok := fi.byStart[endIndex]; ok {
						delete(fi.byStart, endIndex)
						cl.interpolate(s.start, level, multiplier, func(x, y float64) {
							prependPoint(f, x, y)
						})
						f.start = startIndex
						fi.byStart[startIndex] = f
					} else {
						f := newFragment(startIndex, endIndex)
						cl.interpolate(s.start, level, multiplier, func(x, y float64) {
							appendPoint(f, x, y)
						})
						cl.interpolate(s.end, level, multiplier, func(x, y float64) {
							appendPoint(f, x, y)
						})
						fi.add(f)
					}
				}
			}
		}
	}

	open := 0
	for _, k := range levels.keys() {
		for _, f := range levels[k].open() {
			emit(k, f)
			open++
		}
	}

	Logger().Debug("isolines",
		slog.Float64("interval", interval),
		slog.Float64("extent", extent),
		slog.Int("buffer", buffer),
		slog.Int("levels", len(result)),
		slog.Int("rings", rings),
		slog.Int("open", open))
	return result
}
