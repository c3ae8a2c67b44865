package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bcwildfires_dataset_loads_total",
			Help: "Total dataset loads by outcome",
		},
		[]string{"dataset", "status"},
	)

	DatasetLoadLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bcwildfires_dataset_load_seconds",
			Help:    "Dataset fetch and decode latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dataset"},
	)

	FeaturesLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bcwildfires_features_loaded",
			Help: "Features kept after load filtering",
		},
		[]string{"kind"},
	)

	RebuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bcwildfires_rebuilds_total",
			Help: "Total full visualization rebuilds",
		},
	)

	RebuildLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bcwildfires_rebuild_seconds",
			Help:    "Full rebuild latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	PreviewRendersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bcwildfires_preview_renders_total",
			Help: "Total raster map previews rendered",
		},
	)
)
