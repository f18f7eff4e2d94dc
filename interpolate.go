package isoline

import "github.com/fogleman/fauxgl"

// cell holds the corner samples of the cell whose bottom-right corner is
// (c, r) in grid coordinates.
type cell struct {
	c, r           int
	tl, tr, br, bl float64
}

// corner lifts a grid vertex into 3D with its sample as Z.
func corner(x, y int, z float64) fauxgl.Vector {
	return fauxgl.Vector{X: float64(x), Y: float64(y), Z: z}
}

// interpolate finds where level crosses the edge at p and passes the
// crossing, scaled to output space, to accept.
func (cl *cell) interpolate(p edgePoint, level, multiplier float64, accept func(x, y float64)) {
	var a, b fauxgl.Vector
	switch p {
	case left:
		a = corner(cl.c-1, cl.r, cl.bl)
		b = corner(cl.c-1, cl.r-1, cl.tl)
	case right:
		a = corner(cl.c, cl.r, cl.br)
		b = corner(cl.c, cl.r-1, cl.tr)
	case top:
		a = corner(cl.c, cl.r-1, cl.tr)
		b = corner(cl.c-1, cl.r-1, cl.tl)
	default:
		a = corner(cl.c, cl.r, cl.br)
		b = corner(cl.c-1, cl.r, cl.bl)
	}
	t := (level - a.Z) / (b.Z - a.Z)
	v := a.Add(b.Sub(a).MulScalar(t))
	accept(v.X*multiplier, v.Y*multiplier)
}

// boundaryIndex numbers edge points so that both cells sharing an edge
// produce the same index for it. Columns and rows are shifted by buffer so
// every visited cell maps into a non-negative, collision-free range.
func boundaryIndex(width, buffer, c, r int, p edgePoint) int {
	stride := 2*(width+2*buffer) + 1
	x := 2*(c+buffer) + p.x
	y := 2*(r+buffer) + p.y
	return x + y*stride
}
