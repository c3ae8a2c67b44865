package render

import (
	"github.com/lox/bcwildfires/internal/colour"
	"github.com/lox/bcwildfires/internal/config"
	"github.com/lox/bcwildfires/internal/projection"
	"github.com/lox/bcwildfires/internal/scene"
	"github.com/lox/bcwildfires/internal/svg"
)

// Map draws the province outline, the fire perimeters coloured by year and
// the colour legend into surface.
func Map(sc *scene.Scene, s config.Settings, surface *svg.Element, size Size) {
	f := newFrame(size, s.MapMargins)
	chart := f.group()
	surface.Append(chart)

	proj := projection.New(s.Bounds, f.width, f.height)
	ramp := colour.Ramp{FirstYear: s.FirstYear, LastYear: s.LastYear}

	var outline []*svg.Path
	if p, ok := sc.Province(); ok {
		for _, r := range projection.OuterRings(p.Geometry) {
			outline = append(outline, proj.RingPath(r))
		}
	}
	svg.Join(chart, "path", "province", len(outline), func(i int, el *svg.Element) {
		el.Set("fill", s.ProvinceFill).
			Set("d", outline[i].String())
	})

	type firePath struct {
		year int
		d    string
	}
	fires := make([]firePath, 0, len(sc.Fires))
	for _, fire := range sc.Fires {
		ring, ok := projection.OuterRing(fire.Geometry)
		if !ok {
			continue
		}
		fires = append(fires, firePath{year: fire.Year, d: proj.RingPath(ring).String()})
	}
	svg.Join(chart, "path", "fire", len(fires), func(i int, el *svg.Element) {
		el.Set("fill", ramp.Year(fires[i].year).Hex()).
			SetNum("fill-opacity", s.FireOpacity).
			Set("d", fires[i].d).
			Set("stroke", s.FireStroke).
			SetNum("stroke-width", s.FireStrokeWidth)
	})

	n := s.SwatchCount
	svg.Join(chart, "rect", "legend-swatches", n, func(i int, el *svg.Element) {
		t := float64(i) / float64(n)
		el.SetNum("width", f.width/float64(n)).
			SetNum("height", f.bottom/2).
			SetNum("x", t*f.width).
			SetNum("y", f.height).
			Set("fill", colour.Turbo(t).Hex())
	})

	// one slot per year, ticks centred in their slot
	slots := s.YearSpan() + 1
	svg.Join(chart, "text", "legend-labels", len(s.LegendTicks), func(i int, el *svg.Element) {
		year := s.LegendTicks[i]
		x := (float64(year-s.FirstYear) + 0.5) * f.width / slots
		label(el, s, x, f.height+f.bottom*4/5, year)
	})
}
