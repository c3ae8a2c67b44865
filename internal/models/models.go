package models

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON property keys read from the source datasets.
const (
	PropFireYear = "FIRE_YEAR"
	PropAreaSqm  = "FEATURE_AREA_SQM"
	PropName     = "NAME"
)

type FireFeature struct {
	Year       int
	AreaSqm    float64
	Geometry   orb.Geometry
	Properties geojson.Properties
}

type ProvinceFeature struct {
	Name     string
	Geometry orb.Geometry
}

// YearGroup maps FIRE_YEAR to every fire recorded in that year. Map order
// carries no meaning; sort keys before use.
type YearGroup map[int][]FireFeature

// SeriesPoint is one (year, value) pair of a derived series.
type SeriesPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}
