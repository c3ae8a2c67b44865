package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned when a settings file describes a layout
// that cannot be drawn.
var ErrInvalidSettings = errors.New("invalid settings")

// Bounds is the geographic window drawn by the map, in degrees.
type Bounds struct {
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
}

// Margins are fractions of the surface size.
type Margins struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Gradient is a top-to-bottom two stop fill.
type Gradient struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Settings holds every constant that shapes the two visualizations.
// Changing the dataset span should only ever need an edit here.
type Settings struct {
	// FirstYear is both the load filter (fires before it are dropped) and
	// the start of the colour ramp and temporal axis.
	FirstYear int `yaml:"first_year"`
	// LastYear is the end of the colour ramp and temporal axis.
	LastYear int `yaml:"last_year"`
	// Province is the NAME of the province feature to keep.
	Province string `yaml:"province"`

	// LegendTicks are the years labelled under the map's colour strip.
	LegendTicks []int `yaml:"legend_ticks"`
	// TemporalLabels are the years labelled along the temporal midline.
	TemporalLabels []int `yaml:"temporal_labels"`
	// SwatchCount is the number of discrete rects in the colour strip.
	SwatchCount int `yaml:"swatch_count"`

	Bounds Bounds `yaml:"bounds"`

	MapMargins      Margins `yaml:"map_margins"`
	TemporalMargins Margins `yaml:"temporal_margins"`

	// CountBaseline and SizeBaseline are fractions of the temporal height.
	CountBaseline float64 `yaml:"count_baseline"`
	SizeBaseline  float64 `yaml:"size_baseline"`

	CountGradient Gradient `yaml:"count_gradient"`
	SizeGradient  Gradient `yaml:"size_gradient"`

	ProvinceFill    string  `yaml:"province_fill"`
	FireOpacity     float64 `yaml:"fire_opacity"`
	FireStroke      string  `yaml:"fire_stroke"`
	FireStrokeWidth float64 `yaml:"fire_stroke_width"`
	LabelColour     string  `yaml:"label_colour"`
	Background      string  `yaml:"background"`

	// MapAspect is width over height of the map surface.
	MapAspect float64 `yaml:"map_aspect"`
	// MapHeightFraction and TemporalHeightFraction are fractions of the
	// viewport height.
	MapHeightFraction      float64 `yaml:"map_height_fraction"`
	TemporalHeightFraction float64 `yaml:"temporal_height_fraction"`
	// FontScale times the temporal surface height gives the base font size.
	FontScale float64 `yaml:"font_scale"`
}

// Default returns the settings for the 1998-2024 British Columbia dataset.
func Default() Settings {
	return Settings{
		FirstYear:      1998,
		LastYear:       2024,
		Province:       "British Columbia",
		LegendTicks:    []int{1998, 2011, 2024},
		TemporalLabels: []int{1998, 2009, 2015, 2018, 2021, 2023},
		SwatchCount:    300,
		Bounds: Bounds{
			MinLon: -139,
			MaxLon: -113,
			MinLat: 48.2,
			MaxLat: 60.5,
		},
		MapMargins:      Margins{Top: 0, Right: 0.025, Bottom: 0.05, Left: 0.025},
		TemporalMargins: Margins{Top: 0, Right: 0.05, Bottom: 0, Left: 0.05},
		CountBaseline:   0.47,
		SizeBaseline:    0.53,
		CountGradient:   Gradient{From: "#900c00", To: "#f1cb2c"},
		SizeGradient:    Gradient{From: "#f1cb2c", To: "#900c00"},

		ProvinceFill:    "white",
		FireOpacity:     0.5,
		FireStroke:      "grey",
		FireStrokeWidth: 1,
		LabelColour:     "#EEEEEE",
		Background:      "#0f0f1a",

		MapAspect:              15.0 / 11.0,
		MapHeightFraction:      0.7,
		TemporalHeightFraction: 0.4,
		FontScale:              0.03,
	}
}

// YearSpan is the width of the colour ramp domain in years.
func (s Settings) YearSpan() float64 {
	return float64(s.LastYear - s.FirstYear)
}

// Validate reports settings that would divide by zero or draw nothing.
func (s Settings) Validate() error {
	switch {
	case s.LastYear <= s.FirstYear:
		return fmt.Errorf("%w: last_year %d must be after first_year %d", ErrInvalidSettings, s.LastYear, s.FirstYear)
	case s.SwatchCount <= 0:
		return fmt.Errorf("%w: swatch_count must be positive", ErrInvalidSettings)
	case s.Bounds.MaxLon <= s.Bounds.MinLon || s.Bounds.MaxLat <= s.Bounds.MinLat:
		return fmt.Errorf("%w: empty geographic bounds", ErrInvalidSettings)
	case s.MapAspect <= 0:
		return fmt.Errorf("%w: map_aspect must be positive", ErrInvalidSettings)
	case s.Province == "":
		return fmt.Errorf("%w: province is required", ErrInvalidSettings)
	}
	return nil
}

// LoadSettings reads a YAML file over Default. Fields missing from the file
// keep their default value. An empty path returns Default.
func LoadSettings(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
