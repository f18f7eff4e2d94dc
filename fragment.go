package isoline

import "math"

// fragment is a path under construction. Points prepended to the front are
// kept reversed in head so both ends grow in amortized constant time.
type fragment struct {
	start, end int
	head, tail []Point
}

func newFragment(start, end int) *fragment {
	return &fragment{start: start, end: end}
}

// round snaps a coordinate to the integer grid of the output space. Halves
// round up.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

func appendPoint(f *fragment, x, y float64) {
	f.tail = append(f.tail, Point{round(x), round(y)})
}

func prependPoint(f *fragment, x, y float64) {
	f.head = append(f.head, Point{round(x), round(y)})
}

// mergeFragments appends g onto the end of f. g must not be used afterwards.
func mergeFragments(f, g *fragment) {
	f.tail = append(f.tail, g.path()...)
	f.end = g.end
	g.head, g.tail = nil, nil
}

func (f *fragment) len() int {
	return len(f.head) + len(f.tail)
}

func (f *fragment) empty() bool {
	return f.len() < 2
}

func (f *fragment) path() Path {
	path := make(Path, 0, f.len())
	for i := len(f.head) - 1; i >= 0; i-- {
		path = append(path, f.head[i])
	}
	return append(path, f.tail...)
}
