package isoline

// edgePoint locates a crossing on one of a cell's edges as a doubled offset
// from the cell's top-left corner, so each component is 0, 1 or 2.
type edgePoint struct {
	x, y int
}

var (
	left   = edgePoint{0, 1}
	right  = edgePoint{2, 1}
	top    = edgePoint{1, 0}
	bottom = edgePoint{1, 2}
)

type segment struct {
	start, end edgePoint
}

// cases maps a corner pattern to the segments crossing the cell. Bits are
// top-left 8, top-right 4, bottom-right 2 and bottom-left 1, set when the
// corner is above the level. Every segment keeps the above region on the
// same side, so rings wind consistently. Saddles (5 and 10) always pair
// the same way; there is no centre sample.
var cases = [16][]segment{
	{},
	{{bottom, left}},
	{{right, bottom}},
	{{right, left}},
	{{top, right}},
	{{bottom, left}, {top, right}},
	{{top, bottom}},
	{{top, left}},
	{{left, top}},
	{{bottom, top}},
	{{left, top}, {right, bottom}},
	{{right, top}},
	{{left, right}},
	{{bottom, right}},
	{{left, bottom}},
	{},
}

func caseIndex(tl, tr, br, bl, level float64) int {
	i := 0
	if tl > level {
		i |= 8
	}
	if tr > level {
		i |= 4
	}
	if br > level {
		i |= 2
	}
	if bl > level {
		i |= 1
	}
	return i
}
