// Package render draws the map and temporal visualizations of a scene
// into SVG surfaces.
package render

import (
	"fmt"

	"github.com/lox/bcwildfires/internal/config"
	"github.com/lox/bcwildfires/internal/svg"
)

// Surface ids the host page addresses.
const (
	MapID          = "map-visualization"
	TemporalID     = "temporal-visualization"
	MapContainerID = "map-visualization-container"
)

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewSurface returns an empty root svg element of the given size.
func NewSurface(id string, size Size) *svg.Element {
	return svg.New("svg").
		Set("xmlns", svg.Namespace).
		Set("id", id).
		SetNum("width", size.Width).
		SetNum("height", size.Height)
}

// frame is the inner drawing area of a surface after margins.
type frame struct {
	left, top, right, bottom float64
	width, height            float64
}

func newFrame(size Size, m config.Margins) frame {
	f := frame{
		left:   m.Left * size.Width,
		right:  m.Right * size.Width,
		top:    m.Top * size.Height,
		bottom: m.Bottom * size.Height,
	}
	f.width = size.Width - (f.left + f.right)
	f.height = size.Height - (f.top + f.bottom)
	return f
}

func (f frame) group() *svg.Element {
	return svg.New("g").Set("transform", translate(f.left, f.top))
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%s,%s)", svg.Num(x), svg.Num(y))
}

// TextMultiplier is the attribute the layout controller scales font sizes by.
const TextMultiplier = "text-multiplier"

func label(el *svg.Element, s config.Settings, x, y float64, year int) {
	el.Set("transform", translate(x, y)).
		Set(TextMultiplier, "1").
		Set("text-anchor", "middle").
		Set("dominant-baseline", "middle").
		Set("fill", s.LabelColour).
		SetText(fmt.Sprint(year))
}
