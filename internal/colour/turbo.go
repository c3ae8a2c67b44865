package colour

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Turbo samples the Turbo colour map at t, using Mikhailov's polynomial
// approximation. t is clamped to [0, 1]; the ends are a dark blue-black
// and a dark red.
func Turbo(t float64) colorful.Color {
	t = math.Max(0, math.Min(1, t))
	r := 34.61 + t*(1172.33-t*(10793.56-t*(33300.12-t*(38394.49-t*14825.05))))
	g := 23.31 + t*(557.33+t*(1225.33-t*(3574.96-t*(1073.77+t*707.56))))
	b := 27.2 + t*(3211.1-t*(15327.97-t*(27814-t*(22569.18-t*6838.66))))
	return colorful.Color{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) float64 {
	return math.Max(0, math.Min(255, math.Round(v))) / 255
}

// Ramp colours a year by its position within [FirstYear, LastYear]. The
// position is not clamped; years outside the span land on Turbo's ends.
type Ramp struct {
	FirstYear int
	LastYear  int
}

func (r Ramp) Position(year int) float64 {
	return float64(year-r.FirstYear) / float64(r.LastYear-r.FirstYear)
}

func (r Ramp) Year(year int) colorful.Color {
	return Turbo(r.Position(year))
}

// Hex parses a #rrggbb colour, falling back to black.
func Hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
