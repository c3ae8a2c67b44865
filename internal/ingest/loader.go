package ingest

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"

	"github.com/lox/bcwildfires/internal/metrics"
)

const (
	DefaultFiresPath     = "data/historical_fire_data.geojson"
	DefaultProvincesPath = "data/canada_provinces.geojson"
)

// Datasets holds the two raw feature collections, unfiltered.
type Datasets struct {
	Fires     *geojson.FeatureCollection
	Provinces *geojson.FeatureCollection
}

// Loader fetches the fire and province datasets.
type Loader struct {
	fires     Source
	provinces Source
}

// NewLoader parses both locations with ParseSource.
func NewLoader(fires, provinces string, client *http.Client) (*Loader, error) {
	fs, err := ParseSource(fires, client)
	if err != nil {
		return nil, fmt.Errorf("fires: %w", err)
	}
	ps, err := ParseSource(provinces, client)
	if err != nil {
		return nil, fmt.Errorf("provinces: %w", err)
	}
	return &Loader{fires: fs, provinces: ps}, nil
}

// Load fetches both datasets concurrently and returns only when both have
// been read and decoded. The first failure cancels the other fetch and is
// returned as is; there is no retry and no partial result.
func (l *Loader) Load(ctx context.Context) (*Datasets, error) {
	var ds Datasets
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fc, err := fetch(gctx, "fires", l.fires)
		ds.Fires = fc
		return err
	})
	g.Go(func() error {
		fc, err := fetch(gctx, "provinces", l.provinces)
		ds.Provinces = fc
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func fetch(ctx context.Context, name string, src Source) (*geojson.FeatureCollection, error) {
	start := time.Now()
	fc, err := fetchCollection(ctx, src)
	metrics.DatasetLoadLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatasetLoadsTotal.WithLabelValues(name, "error").Inc()
		return nil, fmt.Errorf("load %s from %s: %w", name, src, err)
	}
	metrics.DatasetLoadsTotal.WithLabelValues(name, "ok").Inc()
	log.Printf("loaded %s: %d features in %v", name, len(fc.Features), time.Since(start).Round(time.Millisecond))
	return fc, nil
}

func fetchCollection(ctx context.Context, src Source) (*geojson.FeatureCollection, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return Decode(body)
}

// Decode parses a GeoJSON FeatureCollection.
func Decode(body []byte) (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	return fc, nil
}
