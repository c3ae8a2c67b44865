package imagegen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/lox/bcwildfires/internal/colour"
	"github.com/lox/bcwildfires/internal/config"
	"github.com/lox/bcwildfires/internal/metrics"
	"github.com/lox/bcwildfires/internal/projection"
	"github.com/lox/bcwildfires/internal/scene"
)

var (
	fontRegular font.Face
	fontOnce    sync.Once
	fontErr     error
)

func loadFonts() {
	fontOnce.Do(func() {
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			fontErr = fmt.Errorf("parse goregular: %w", err)
			return
		}

		fontRegular, err = opentype.NewFace(regular, &opentype.FaceOptions{
			Size:    24,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			fontErr = fmt.Errorf("create regular face: %w", err)
		}
	})
}

// OGImageCache caches the generated preview image for a short period.
type OGImageCache struct {
	mu        sync.RWMutex
	data      []byte
	expiresAt time.Time
	cacheTTL  time.Duration
}

// NewOGImageCache creates a new preview cache with the specified TTL.
func NewOGImageCache(ttl time.Duration) *OGImageCache {
	return &OGImageCache{
		cacheTTL: ttl,
	}
}

// Get returns the cached image if still valid.
func (c *OGImageCache) Get() ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.data, true
}

// Set stores a new image in the cache.
func (c *OGImageCache) Set(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = data
	c.expiresAt = time.Now().Add(c.cacheTTL)
}

// OGWidth and OGHeight are the preview dimensions, 15:11 like the map.
const (
	OGWidth  = 1200
	OGHeight = 880
)

// RenderMapPNG rasterises the map: province outline, fires at the
// configured opacity, and the legend tick years. Strokes and the swatch
// strip are left out.
func RenderMapPNG(sc *scene.Scene, s config.Settings, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", width, height)
	}
	loadFonts()
	if fontErr != nil {
		return nil, fmt.Errorf("load fonts: %w", fontErr)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(rgba(s.Background, 1)), image.Point{}, draw.Src)

	// same margins as the svg map, with the bottom strip holding the tick labels
	left := float64(width) * s.MapMargins.Left
	mapW := float64(width) - left - float64(width)*s.MapMargins.Right
	labelStrip := float64(height) * s.MapMargins.Bottom
	mapH := float64(height) - labelStrip
	proj := projection.New(s.Bounds, mapW, mapH)

	if p, ok := sc.Province(); ok {
		for _, r := range projection.OuterRings(p.Geometry) {
			fillRing(dst, proj.ProjectRing(r), left, rgba(s.ProvinceFill, 1))
		}
	}

	ramp := colour.Ramp{FirstYear: s.FirstYear, LastYear: s.LastYear}
	for _, f := range sc.Fires {
		r, ok := projection.OuterRing(f.Geometry)
		if !ok {
			continue
		}
		fillRing(dst, proj.ProjectRing(r), left, nrgba(ramp.Year(f.Year), s.FireOpacity))
	}

	slots := s.YearSpan() + 1
	for _, year := range s.LegendTicks {
		x := left + (float64(year-s.FirstYear)+0.5)*mapW/slots
		drawCentred(dst, fmt.Sprint(year), x, mapH+labelStrip*4/5, rgba(s.LabelColour, 1))
	}

	metrics.PreviewRendersTotal.Inc()

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// fillRing fills the polygon through pts, shifted right by dx.
func fillRing(dst *image.RGBA, pts []projection.Pixel, dx float64, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].X+dx), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X+dx), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// drawCentred draws text horizontally centred on x with its baseline
// roughly centred on y.
func drawCentred(img *image.RGBA, text string, x, y float64, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: fontRegular,
	}
	w := d.MeasureString(text)
	m := fontRegular.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(x*64) - w/2,
		Y: fixed.Int26_6(y*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}

// rgba resolves the handful of named colours the settings use, and hex
// strings otherwise.
func rgba(name string, alpha float64) color.NRGBA {
	switch name {
	case "white":
		name = "#ffffff"
	case "grey", "gray":
		name = "#808080"
	case "black":
		name = "#000000"
	}
	return nrgba(colour.Hex(name), alpha)
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(alpha*255 + 0.5),
	}
}
