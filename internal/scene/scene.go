// Package scene turns the raw datasets into the immutable data both
// renderers draw from.
package scene

import (
	"log"
	"math"
	"sort"

	"github.com/paulmach/orb/geojson"

	"github.com/lox/bcwildfires/internal/config"
	"github.com/lox/bcwildfires/internal/ingest"
	"github.com/lox/bcwildfires/internal/metrics"
	"github.com/lox/bcwildfires/internal/models"
)

// Scene is built once after load and only read afterwards. Every fire has
// Year >= FirstYear and every province has the configured name.
type Scene struct {
	Fires     []models.FireFeature
	Provinces []models.ProvinceFeature
	Groups    models.YearGroup
}

// New filters and groups both datasets.
func New(ds *ingest.Datasets, s config.Settings) *Scene {
	sc := &Scene{
		Fires:     FilterFires(ds.Fires.Features, s.FirstYear),
		Provinces: FilterProvince(ds.Provinces.Features, s.Province),
	}
	sc.Groups = GroupByYear(sc.Fires)

	metrics.FeaturesLoaded.WithLabelValues("fires").Set(float64(len(sc.Fires)))
	metrics.FeaturesLoaded.WithLabelValues("provinces").Set(float64(len(sc.Provinces)))
	if len(sc.Provinces) != 1 {
		log.Printf("expected one province named %q, found %d", s.Province, len(sc.Provinces))
	}
	return sc
}

// FilterFires keeps features whose FIRE_YEAR is at least minYear, in input
// order. A missing or non-numeric year never passes the filter. Year is an
// integer, so a fractional FIRE_YEAR is truncated toward zero and groups
// with its whole year.
func FilterFires(raw []*geojson.Feature, minYear int) []models.FireFeature {
	fires := make([]models.FireFeature, 0, len(raw))
	for _, f := range raw {
		if f == nil {
			continue
		}
		year := numberProp(f.Properties, models.PropFireYear, math.NaN())
		if !(year >= float64(minYear)) {
			continue
		}
		fires = append(fires, models.FireFeature{
			Year:       int(year),
			AreaSqm:    numberProp(f.Properties, models.PropAreaSqm, 0),
			Geometry:   f.Geometry,
			Properties: f.Properties,
		})
	}
	return fires
}

// FilterProvince keeps features whose NAME equals name. Zero or several
// matches are returned as found.
func FilterProvince(raw []*geojson.Feature, name string) []models.ProvinceFeature {
	var provinces []models.ProvinceFeature
	for _, f := range raw {
		if f == nil {
			continue
		}
		n, _ := f.Properties[models.PropName].(string)
		if n != name {
			continue
		}
		provinces = append(provinces, models.ProvinceFeature{Name: n, Geometry: f.Geometry})
	}
	return provinces
}

// GroupByYear partitions fires by year, keeping input order within a year.
func GroupByYear(fires []models.FireFeature) models.YearGroup {
	groups := make(models.YearGroup)
	for _, f := range fires {
		groups[f.Year] = append(groups[f.Year], f)
	}
	return groups
}

// DeriveCounts returns the number of fires per year, ascending by year.
func DeriveCounts(groups models.YearGroup) []models.SeriesPoint {
	return derive(groups, func(fs []models.FireFeature) float64 {
		return float64(len(fs))
	})
}

// DeriveSizes returns the summed FEATURE_AREA_SQM per year, ascending by year.
func DeriveSizes(groups models.YearGroup) []models.SeriesPoint {
	return derive(groups, func(fs []models.FireFeature) float64 {
		var total float64
		for _, f := range fs {
			total += f.AreaSqm
		}
		return total
	})
}

func derive(groups models.YearGroup, value func([]models.FireFeature) float64) []models.SeriesPoint {
	series := make([]models.SeriesPoint, 0, len(groups))
	for _, year := range sortedYears(groups) {
		series = append(series, models.SeriesPoint{Year: year, Value: value(groups[year])})
	}
	return series
}

func sortedYears(groups models.YearGroup) []int {
	years := make([]int, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Counts is DeriveCounts over the scene's groups.
func (s *Scene) Counts() []models.SeriesPoint { return DeriveCounts(s.Groups) }

// Sizes is DeriveSizes over the scene's groups.
func (s *Scene) Sizes() []models.SeriesPoint { return DeriveSizes(s.Groups) }

// Years lists the years with at least one fire, ascending.
func (s *Scene) Years() []int { return sortedYears(s.Groups) }

// Province returns the first matching province, if any.
func (s *Scene) Province() (models.ProvinceFeature, bool) {
	if len(s.Provinces) == 0 {
		return models.ProvinceFeature{}, false
	}
	return s.Provinces[0], true
}

func numberProp(p geojson.Properties, key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}
