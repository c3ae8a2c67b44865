package layout

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bcwildfires/internal/config"
	"github.com/lox/bcwildfires/internal/models"
	"github.com/lox/bcwildfires/internal/render"
	"github.com/lox/bcwildfires/internal/scene"
	"github.com/lox/bcwildfires/internal/svg"
)

func testController() *Controller {
	sc := &scene.Scene{
		Fires: []models.FireFeature{
			{Year: 1998, AreaSqm: 100, Geometry: orb.Polygon{{{-125, 50}, {-124, 50}, {-124, 51}, {-125, 50}}}},
			{Year: 2017, AreaSqm: 900, Geometry: orb.Polygon{{{-121, 52}, {-120, 52}, {-120, 53}, {-121, 52}}}},
		},
		Provinces: []models.ProvinceFeature{{
			Name:     "British Columbia",
			Geometry: orb.Polygon{{{-139, 60}, {-120, 60}, {-114, 49}, {-139, 60}}},
		}},
	}
	sc.Groups = scene.GroupByYear(sc.Fires)
	return NewController(sc, config.Default())
}

func TestCompute_HeightBound(t *testing.T) {
	l := Compute(config.Default(), Viewport{Width: 2000, Height: 1100, ContainerWidth: 2000})

	assert.InDelta(t, 770, l.Map.Height, 1e-9)
	assert.InDelta(t, 1050, l.Map.Width, 1e-9)
	assert.Equal(t, 2000.0, l.Temporal.Width)
	assert.InDelta(t, 440, l.Temporal.Height, 1e-9)
	assert.InDelta(t, 13.2, l.FontSize, 1e-9)
}

func TestCompute_WidthBound(t *testing.T) {
	l := Compute(config.Default(), Viewport{Width: 800, Height: 1100, ContainerWidth: 600})

	assert.InDelta(t, 600, l.Map.Width, 1e-9)
	assert.InDelta(t, 440, l.Map.Height, 1e-9)
	assert.InDelta(t, 15.0/11.0, l.Map.Width/l.Map.Height, 1e-9)
	assert.Equal(t, 800.0, l.Temporal.Width)
}

func TestCompute_ContainerDefaultsToWidth(t *testing.T) {
	a := Compute(config.Default(), Viewport{Width: 500, Height: 1000})
	b := Compute(config.Default(), Viewport{Width: 500, Height: 1000, ContainerWidth: 500})
	assert.Equal(t, b, a)
}

func TestRebuild_InvalidViewport(t *testing.T) {
	c := testController()
	for _, v := range []Viewport{{}, {Width: -1, Height: 10}, {Width: 10, Height: 0}, {Width: 10, Height: 10, ContainerWidth: -5},
		{Width: math.Inf(1), Height: 10},
		{Width: 10, Height: math.Inf(1)},
		{Width: 10, Height: 10, ContainerWidth: math.Inf(1)},
		{Width: math.NaN(), Height: 10},
	} {
		_, err := c.Rebuild(v)
		assert.ErrorIs(t, err, ErrInvalidViewport, "%+v", v)
	}
}

func TestRebuild(t *testing.T) {
	c := testController()
	out, err := c.Rebuild(Viewport{Width: 1200, Height: 800, ContainerWidth: 1200})
	require.NoError(t, err)

	mapDoc, err := goquery.NewDocumentFromReader(strings.NewReader(out.Map.String()))
	require.NoError(t, err)
	assert.Equal(t, 1, mapDoc.Find("svg#"+render.MapID).Length())
	assert.Equal(t, 1, mapDoc.Find("path.province").Length())
	assert.Equal(t, 2, mapDoc.Find("path.fire").Length())

	temporalDoc, err := goquery.NewDocumentFromReader(strings.NewReader(out.Temporal.String()))
	require.NoError(t, err)
	assert.Equal(t, 1, temporalDoc.Find("svg#"+render.TemporalID).Length())
	assert.Equal(t, 1, temporalDoc.Find("path.curve-count").Length())

	// 0.03 * 0.4 * 800
	want := svg.Num(out.Layout.FontSize)
	assert.Equal(t, "9.6", want)
	texts := mapDoc.Find("text").AddSelection(temporalDoc.Find("text"))
	require.Equal(t, 9, texts.Length())
	texts.Each(func(_ int, s *goquery.Selection) {
		assert.Equal(t, want, s.AttrOr("font-size", ""))
	})
}

func TestRebuild_Idempotent(t *testing.T) {
	c := testController()
	v := Viewport{Width: 1024, Height: 768, ContainerWidth: 900}

	first, err := c.Rebuild(v)
	require.NoError(t, err)
	second, err := c.Rebuild(v)
	require.NoError(t, err)

	assert.Equal(t, first.Map.Bytes(), second.Map.Bytes())
	assert.Equal(t, first.Temporal.Bytes(), second.Temporal.Bytes())
	assert.Equal(t, first.Layout, second.Layout)
}

func TestRebuild_Concurrent(t *testing.T) {
	c := testController()
	v := Viewport{Width: 640, Height: 480}
	want, err := c.Rebuild(v)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := c.Rebuild(v)
			if err == nil {
				results[i] = out.Map.Bytes()
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want.Map.Bytes(), r)
	}
}

func TestApplyFontSize(t *testing.T) {
	root := svg.New("svg").Append(
		svg.New("text").Set(render.TextMultiplier, "2"),
		svg.New("g").Append(svg.New("text")),
		svg.New("rect"),
	)

	ApplyFontSize(10, root)

	v, _ := root.Children[0].Get("font-size")
	assert.Equal(t, "20", v)
	v, _ = root.Children[1].Children[0].Get("font-size")
	assert.Equal(t, "10", v)
	_, ok := root.Children[2].Get("font-size")
	assert.False(t, ok)
}
