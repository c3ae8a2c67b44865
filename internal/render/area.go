package render

import (
	"github.com/lox/bcwildfires/internal/svg"
)

// Area builds a filled area between a top line through (xs[i], ys[i]) and a
// horizontal baseline, smoothing both with horizontal-tangent cubic
// segments (d3's curveBumpX). The top line runs left to right, drops to the
// baseline at the last x, runs back along the baseline and closes.
func Area(xs, ys []float64, baseline float64) *svg.Path {
	path := &svg.Path{}
	n := len(xs)
	if n == 0 || len(ys) != n {
		return path
	}

	c := bump{path: path}
	for i := 0; i < n; i++ {
		c.point(xs[i], ys[i])
	}

	c.lineStart(true)
	for i := n - 1; i >= 0; i-- {
		c.point(xs[i], baseline)
	}
	path.ClosePath()
	return path
}

type bump struct {
	path   *svg.Path
	joined bool
	count  int
	x0, y0 float64
}

// lineStart begins the next polyline; joined lines connect to the previous
// one with a straight segment instead of a move.
func (b *bump) lineStart(joined bool) {
	b.joined = joined
	b.count = 0
}

func (b *bump) point(x, y float64) {
	switch {
	case b.count == 0 && b.joined:
		b.path.LineTo(x, y)
	case b.count == 0:
		b.path.MoveTo(x, y)
	default:
		mx := (b.x0 + x) / 2
		b.path.BezierCurveTo(mx, b.y0, mx, y, x, y)
	}
	b.count++
	b.x0, b.y0 = x, y
}
