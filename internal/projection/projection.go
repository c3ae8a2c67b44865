package projection

import (
	"github.com/paulmach/orb"

	"github.com/lox/bcwildfires/internal/config"
	"github.com/lox/bcwildfires/internal/svg"
)

// Scale maps a domain linearly onto a range without clamping.
type Scale struct {
	D0, D1 float64
	R0, R1 float64
}

func Linear(d0, d1, r0, r1 float64) Scale {
	return Scale{D0: d0, D1: d1, R0: r0, R1: r1}
}

// At maps v. A zero-width domain maps everything to R0.
func (s Scale) At(v float64) float64 {
	if s.D1 == s.D0 {
		return s.R0
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

type Pixel struct {
	X, Y float64
}

// Projector maps longitude/latitude to pixels for one surface size.
// Latitude is inverted so north is up.
type Projector struct {
	Lon Scale
	Lat Scale
}

func New(b config.Bounds, width, height float64) Projector {
	return Projector{
		Lon: Linear(b.MinLon, b.MaxLon, 0, width),
		Lat: Linear(b.MinLat, b.MaxLat, height, 0),
	}
}

func (p Projector) Project(pt orb.Point) Pixel {
	return Pixel{X: p.Lon.At(pt.Lon()), Y: p.Lat.At(pt.Lat())}
}

func (p Projector) ProjectRing(r orb.Ring) []Pixel {
	out := make([]Pixel, len(r))
	for i, pt := range r {
		out[i] = p.Project(pt)
	}
	return out
}

// BuildClosedPath draws the polygon's first ring only. Holes are not drawn,
// so a polygon with holes renders as solid fill. Returns nil when the
// polygon has no points.
func (p Projector) BuildClosedPath(poly orb.Polygon) *svg.Path {
	if len(poly) == 0 {
		return nil
	}
	return p.RingPath(poly[0])
}

// RingPath moves to the first projected point, lines to each following one
// and closes back to the start.
func (p Projector) RingPath(r orb.Ring) *svg.Path {
	if len(r) == 0 {
		return nil
	}
	pts := p.ProjectRing(r)
	path := &svg.Path{}
	path.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		path.LineTo(pt.X, pt.Y)
	}
	path.ClosePath()
	return path
}

// OuterRing returns the ring drawn for a fire: the first ring of a polygon,
// or of the first polygon of a multipolygon.
func OuterRing(g orb.Geometry) (orb.Ring, bool) {
	switch v := g.(type) {
	case orb.Polygon:
		if len(v) > 0 && len(v[0]) > 0 {
			return v[0], true
		}
	case orb.MultiPolygon:
		if len(v) > 0 && len(v[0]) > 0 && len(v[0][0]) > 0 {
			return v[0][0], true
		}
	}
	return nil, false
}

// OuterRings returns one outer ring per polygon, which is how a province
// made of several islands is outlined.
func OuterRings(g orb.Geometry) []orb.Ring {
	switch v := g.(type) {
	case orb.Polygon:
		if r, ok := OuterRing(v); ok {
			return []orb.Ring{r}
		}
	case orb.MultiPolygon:
		var rings []orb.Ring
		for _, poly := range v {
			if r, ok := OuterRing(poly); ok {
				rings = append(rings, r)
			}
		}
		return rings
	}
	return nil
}
