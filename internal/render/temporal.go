package render

import (
	"github.com/lox/bcwildfires/internal/colour"
	"github.com/lox/bcwildfires/internal/config"
	"github.com/lox/bcwildfires/internal/models"
	"github.com/lox/bcwildfires/internal/projection"
	"github.com/lox/bcwildfires/internal/scene"
	"github.com/lox/bcwildfires/internal/svg"
)

// Gradient ids referenced by the area fills.
const (
	CountGradientID = "top"
	SizeGradientID  = "bot"
)

// Temporal draws the mirrored count and burned-area curves over a shared
// year axis into surface. The series are derived fresh on every call.
func Temporal(sc *scene.Scene, s config.Settings, surface *svg.Element, size Size) {
	f := newFrame(size, s.TemporalMargins)

	defs := svg.New("defs").Append(
		gradient(CountGradientID, s.CountGradient),
		gradient(SizeGradientID, s.SizeGradient),
	)
	chart := f.group()
	surface.Append(defs, chart)

	counts := sc.Counts()
	sizes := sc.Sizes()

	x := projection.Linear(float64(s.FirstYear), float64(s.LastYear), 0, f.width)
	countBase := f.height * s.CountBaseline
	sizeBase := f.height * s.SizeBaseline
	yCount := projection.Linear(0, maxValue(counts), countBase, 0)
	ySize := projection.Linear(0, maxValue(sizes), sizeBase, f.height)

	countPath := area(counts, x, yCount, countBase)
	sizePath := area(sizes, x, ySize, sizeBase)

	svg.Join(chart, "path", "curve-count", 1, func(_ int, el *svg.Element) {
		el.Set("fill", "url(#"+CountGradientID+")").Set("d", countPath.String())
	})
	svg.Join(chart, "path", "curve-size", 1, func(_ int, el *svg.Element) {
		el.Set("fill", "url(#"+SizeGradientID+")").Set("d", sizePath.String())
	})

	svg.Join(chart, "text", "legend-labels", len(s.TemporalLabels), func(i int, el *svg.Element) {
		year := s.TemporalLabels[i]
		label(el, s, x.At(float64(year)), f.height/2, year)
	})
}

func area(series []models.SeriesPoint, x, y projection.Scale, baseline float64) *svg.Path {
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = x.At(float64(p.Year))
		ys[i] = y.At(p.Value)
	}
	return Area(xs, ys, baseline)
}

// maxValue is 0 for an empty series, which leaves the y scale with a
// zero-width domain and every point on the baseline.
func maxValue(series []models.SeriesPoint) float64 {
	var m float64
	for _, p := range series {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

func gradient(id string, g config.Gradient) *svg.Element {
	stop := func(offset, c string) *svg.Element {
		return svg.New("stop").
			Set("offset", offset).
			Set("style", "stop-color: "+colour.Hex(c).Hex()+"; stop-opacity: 1;")
	}
	return svg.New("linearGradient").
		Set("id", id).
		Set("x1", "0%").
		Set("x2", "0%").
		Set("y1", "0%").
		Set("y2", "100%").
		Append(stop("0%", g.From), stop("100%", g.To))
}
