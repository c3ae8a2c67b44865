package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bcwildfires/internal/config"
	"github.com/lox/bcwildfires/internal/models"
	"github.com/lox/bcwildfires/internal/scene"
	"github.com/lox/bcwildfires/internal/svg"
)

func testScene(fires ...models.FireFeature) *scene.Scene {
	sc := &scene.Scene{
		Fires: fires,
		Provinces: []models.ProvinceFeature{{
			Name: "British Columbia",
			Geometry: orb.MultiPolygon{
				{{{-139, 60}, {-120, 60}, {-114, 49}, {-139, 60}}},
				{{{-128, 50.8}, {-124, 48.4}, {-123.3, 48.4}, {-128, 50.8}}},
			},
		}},
	}
	sc.Groups = scene.GroupByYear(sc.Fires)
	return sc
}

func testFire(year int, area float64) models.FireFeature {
	return models.FireFeature{
		Year:     year,
		AreaSqm:  area,
		Geometry: orb.Polygon{{{-125, 50}, {-124, 50}, {-124, 51}, {-125, 50}}},
	}
}

func parse(t *testing.T, el *svg.Element) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(el.String()))
	require.NoError(t, err)
	return doc
}

func TestMap(t *testing.T) {
	sc := testScene(
		testFire(1998, 100),
		testFire(2024, 50),
		models.FireFeature{Year: 2010, Geometry: orb.Point{-125, 50}},
	)
	s := config.Default()
	surface := NewSurface(MapID, Size{Width: 1000, Height: 500})

	Map(sc, s, surface, Size{Width: 1000, Height: 500})
	doc := parse(t, surface)

	root := doc.Find("svg#map-visualization")
	require.Equal(t, 1, root.Length())
	assert.Equal(t, "1000", root.AttrOr("width", ""))
	assert.Equal(t, "translate(25,0)", doc.Find("svg > g").AttrOr("transform", ""))

	provinces := doc.Find("path.province")
	assert.Equal(t, 2, provinces.Length(), "one outline per island")
	provinces.Each(func(_ int, p *goquery.Selection) {
		assert.Equal(t, "white", p.AttrOr("fill", ""))
		_, hasStroke := p.Attr("stroke")
		assert.False(t, hasStroke)
		assert.True(t, strings.HasSuffix(p.AttrOr("d", ""), "Z"))
	})

	fires := doc.Find("path.fire")
	require.Equal(t, 2, fires.Length(), "non-polygon fires are not drawn")
	assert.Equal(t, "#23171b", fires.Eq(0).AttrOr("fill", ""))
	assert.Equal(t, "#900c00", fires.Eq(1).AttrOr("fill", ""))
	fires.Each(func(_ int, p *goquery.Selection) {
		assert.Equal(t, "0.5", p.AttrOr("fill-opacity", ""))
		assert.Equal(t, "grey", p.AttrOr("stroke", ""))
		assert.Equal(t, "1", p.AttrOr("stroke-width", ""))
	})

	// province is drawn beneath the fires
	html, err := doc.Find("svg > g").Html()
	require.NoError(t, err)
	assert.Less(t, strings.Index(html, `class="province"`), strings.Index(html, `class="fire"`))

	swatches := doc.Find("rect.legend-swatches")
	require.Equal(t, 300, swatches.Length())
	first := swatches.First()
	assert.Equal(t, "0", first.AttrOr("x", ""))
	assert.Equal(t, "475", first.AttrOr("y", ""))
	assert.Equal(t, "3.17", first.AttrOr("width", ""))
	assert.Equal(t, "12.5", first.AttrOr("height", ""))
	assert.Equal(t, "#23171b", first.AttrOr("fill", ""))

	labels := doc.Find("text.legend-labels")
	require.Equal(t, 3, labels.Length())
	assert.Equal(t, []string{"1998", "2011", "2024"}, labels.Map(func(_ int, s *goquery.Selection) string { return s.Text() }))
	assert.Equal(t, "translate(17.59,495)", labels.First().AttrOr("transform", ""))
	assert.Equal(t, "1", labels.First().AttrOr("text-multiplier", ""))
	assert.Equal(t, "#EEEEEE", labels.First().AttrOr("fill", ""))
}

func TestMap_NoProvince(t *testing.T) {
	sc := testScene(testFire(2000, 1))
	sc.Provinces = nil
	surface := NewSurface(MapID, Size{Width: 300, Height: 220})

	Map(sc, config.Default(), surface, Size{Width: 300, Height: 220})
	doc := parse(t, surface)

	assert.Equal(t, 0, doc.Find("path.province").Length())
	assert.Equal(t, 1, doc.Find("path.fire").Length())
}

func TestTemporal(t *testing.T) {
	sc := testScene(testFire(1998, 100), testFire(1998, 50), testFire(2024, 50))
	surface := NewSurface(TemporalID, Size{Width: 1000, Height: 400})

	Temporal(sc, config.Default(), surface, Size{Width: 1000, Height: 400})
	doc := parse(t, surface)

	assert.Equal(t, "translate(50,0)", doc.Find("svg > g").AttrOr("transform", ""))
	assert.Equal(t, 2, doc.Find("defs > *").Length())
	assert.Equal(t, "top", doc.Find("defs > *").Eq(0).AttrOr("id", ""))
	assert.Contains(t, doc.Find("defs stop").First().AttrOr("style", ""), "#900c00")

	count := doc.Find("path.curve-count")
	require.Equal(t, 1, count.Length())
	assert.Equal(t, "url(#top)", count.AttrOr("fill", ""))
	assert.Equal(t, "M0,0C450,0,450,94,900,94L900,188C450,188,450,188,0,188Z", count.AttrOr("d", ""))

	size := doc.Find("path.curve-size")
	require.Equal(t, 1, size.Length())
	assert.Equal(t, "url(#bot)", size.AttrOr("fill", ""))
	assert.Equal(t, "M0,400C450,400,450,274.67,900,274.67L900,212C450,212,450,212,0,212Z", size.AttrOr("d", ""))

	labels := doc.Find("text.legend-labels")
	require.Equal(t, 6, labels.Length())
	assert.Equal(t, "1998", labels.First().Text())
	assert.Equal(t, "translate(0,200)", labels.First().AttrOr("transform", ""))
	assert.Equal(t, "2023", labels.Last().Text())
}

func TestTemporal_Degenerate(t *testing.T) {
	t.Run("empty scene", func(t *testing.T) {
		surface := NewSurface(TemporalID, Size{Width: 100, Height: 100})
		Temporal(testScene(), config.Default(), surface, Size{Width: 100, Height: 100})
		doc := parse(t, surface)

		assert.Equal(t, "", doc.Find("path.curve-count").AttrOr("d", "missing"))
		assert.Equal(t, "", doc.Find("path.curve-size").AttrOr("d", "missing"))
		assert.NotContains(t, surface.String(), "NaN")
	})

	t.Run("zero burned area", func(t *testing.T) {
		surface := NewSurface(TemporalID, Size{Width: 1000, Height: 100})
		Temporal(testScene(testFire(2000, 0), testFire(2010, 0)), config.Default(), surface, Size{Width: 1000, Height: 100})

		d := parse(t, surface).Find("path.curve-size").AttrOr("d", "")
		assert.NotContains(t, d, "NaN")
		assert.NotContains(t, d, "Inf")
		for _, seg := range strings.FieldsFunc(d, func(r rune) bool { return r == 'M' || r == 'C' || r == 'L' || r == 'Z' }) {
			parts := strings.Split(seg, ",")
			assert.Equal(t, "53", parts[len(parts)-1], "flat at the baseline")
		}
	})
}

func TestArea(t *testing.T) {
	assert.True(t, Area(nil, nil, 10).Empty())
	assert.True(t, Area([]float64{1}, nil, 10).Empty())

	single := Area([]float64{5}, []float64{2}, 10)
	assert.Equal(t, "M5,2L5,10Z", single.String())

	p := Area([]float64{0, 10, 20}, []float64{5, 0, 5}, 10)
	assert.Equal(t, "M0,5C5,5,5,0,10,0C15,0,15,5,20,5L20,10C15,10,15,10,10,10C5,10,5,10,0,10Z", p.String())
	assert.True(t, p.Closed())
}
