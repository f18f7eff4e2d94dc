package isoline

import (
	"math"
	"sort"
)

type IntPoint struct {
	X, Y int
}

type Point struct {
	X, Y float64
}

func (a Point) Distance(b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func LatLng(lat, lng float64) Point {
	return Point{lng, lat}
}

type Path []Point

// Closed reports whether the path ends where it starts.
func (path Path) Closed() bool {
	return len(path) >= 2 && path[0] == path[len(path)-1]
}

// SignedArea returns the shoelace area of the path in raster orientation,
// with y pointing down. Rings traced around regions above their level are
// positive.
func (path Path) SignedArea() float64 {
	n := len(path)
	if n < 3 {
		return 0
	}
	var sum float64
	for i, p := range path {
		q := path[(i+1)%n]
		sum += q.X*p.Y - p.X*q.Y
	}
	return sum / 2
}

func (path Path) Length() float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += path[i-1].Distance(path[i])
	}
	return total
}

type Bounds struct {
	Min, Max Point
}

// Isolines maps a contour level to the paths traced at that level.
type Isolines map[float64][]Path

// Levels returns the levels that have at least one path, ascending.
func (iso Isolines) Levels() []float64 {
	levels := make([]float64, 0, len(iso))
	for level, paths := range iso {
		if len(paths) > 0 {
			levels = append(levels, level)
		}
	}
	sort.Float64s(levels)
	return levels
}

func (iso Isolines) Count() int {
	n := 0
	for _, paths := range iso {
		n += len(paths)
	}
	return n
}

// Bounds returns the bounding box of every point in every path. ok is false
// when there are no points.
func (iso Isolines) Bounds() (bounds Bounds, ok bool) {
	for _, paths := range iso {
		for _, path := range paths {
			for _, p := range path {
				if !ok {
					bounds = Bounds{p, p}
					ok = true
					continue
				}
				bounds.Min.X = math.Min(bounds.Min.X, p.X)
				bounds.Min.Y = math.Min(bounds.Min.Y, p.Y)
				bounds.Max.X = math.Max(bounds.Max.X, p.X)
				bounds.Max.Y = math.Max(bounds.Max.Y, p.Y)
			}
		}
	}
	return
}
