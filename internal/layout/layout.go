// Package layout sizes the two surfaces for a viewport and rebuilds them
// from scratch.
//
// Every rebuild clears and redraws everything. There is no incremental
// path: a rebuild is linear in the number of fires, which at provincial
// scale is a few thousand polygons.
package layout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/lox/bcwildfires/internal/config"
	"github.com/lox/bcwildfires/internal/metrics"
	"github.com/lox/bcwildfires/internal/render"
	"github.com/lox/bcwildfires/internal/scene"
	"github.com/lox/bcwildfires/internal/svg"
)

var ErrInvalidViewport = errors.New("invalid viewport")

// Viewport is the browser's inner size plus the width of the element that
// contains the map surface.
type Viewport struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	ContainerWidth float64 `json:"container_width"`
}

func (v Viewport) Validate() error {
	if !(v.Width > 0) || !(v.Height > 0) || !(v.ContainerWidth >= 0) ||
		math.IsInf(v.Width, 0) || math.IsInf(v.Height, 0) || math.IsInf(v.ContainerWidth, 0) {
		return fmt.Errorf("%w: %gx%g container %g", ErrInvalidViewport, v.Width, v.Height, v.ContainerWidth)
	}
	return nil
}

type Layout struct {
	Map      render.Size `json:"map"`
	Temporal render.Size `json:"temporal"`
	FontSize float64     `json:"font_size"`
}

// Compute fits the map to its aspect ratio within the container width and
// a fraction of the viewport height, and gives the temporal chart the full
// width.
func Compute(s config.Settings, v Viewport) Layout {
	container := v.ContainerWidth
	if container == 0 {
		container = v.Width
	}

	mapH := v.Height * s.MapHeightFraction
	mapW := mapH * s.MapAspect
	if mapW > container {
		mapW = container
		mapH = container / s.MapAspect
	}

	temporalH := v.Height * s.TemporalHeightFraction
	return Layout{
		Map:      render.Size{Width: mapW, Height: mapH},
		Temporal: render.Size{Width: v.Width, Height: temporalH},
		FontSize: s.FontScale * temporalH,
	}
}

// Output is one complete rebuild.
type Output struct {
	Layout   Layout
	Map      *svg.Element
	Temporal *svg.Element
}

// Controller rebuilds both surfaces for a viewport. It keeps no state
// between rebuilds, so concurrent callers never see each other's output.
type Controller struct {
	scene    *scene.Scene
	settings config.Settings
}

func NewController(sc *scene.Scene, s config.Settings) *Controller {
	return &Controller{scene: sc, settings: s}
}

func (c *Controller) Scene() *scene.Scene { return c.scene }

func (c *Controller) Settings() config.Settings { return c.settings }

// Rebuild clears all output, sizes both surfaces, redraws them and applies
// font sizing to every text element.
func (c *Controller) Rebuild(v Viewport) (*Output, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		metrics.RebuildsTotal.Inc()
		metrics.RebuildLatency.Observe(time.Since(start).Seconds())
	}()

	l := Compute(c.settings, v)
	out := &Output{
		Layout:   l,
		Map:      render.NewSurface(render.MapID, l.Map),
		Temporal: render.NewSurface(render.TemporalID, l.Temporal),
	}

	render.Map(c.scene, c.settings, out.Map, l.Map)
	render.Temporal(c.scene, c.settings, out.Temporal, l.Temporal)

	ApplyFontSize(l.FontSize, out.Map, out.Temporal)
	return out, nil
}

// ApplyFontSize sets font-size on every text element to its
// text-multiplier times base.
func ApplyFontSize(base float64, roots ...*svg.Element) {
	for _, root := range roots {
		root.Walk(func(e *svg.Element) {
			if e.Name != "text" {
				return
			}
			mult := 1.0
			if v, ok := e.Get(render.TextMultiplier); ok {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					mult = f
				}
			}
			e.SetNum("font-size", mult*base)
		})
	}
}
