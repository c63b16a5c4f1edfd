// Package loader gathers the topology and every result dataset before
// the first render.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/robinmackenzie/uk-election-map/internal/app"
	"github.com/robinmackenzie/uk-election-map/internal/metrics"
	"github.com/robinmackenzie/uk-election-map/internal/results"
	"github.com/robinmackenzie/uk-election-map/internal/topology"
)

// DatasetSpec names one result document and the year it belongs to.
type DatasetSpec struct {
	Year     string
	Location string
}

// Request describes everything needed to build an app.State.
type Request struct {
	Topology    string
	Options     topology.Options
	Datasets    []DatasetSpec
	DefaultYear string
}

// ResultSource supplies datasets by year instead of reading documents.
// The SQLite result store satisfies it.
type ResultSource interface {
	LoadDataset(ctx context.Context, year string) (*results.Dataset, error)
}

// Loader reads documents from local paths or http(s) URLs.
type Loader struct {
	client *http.Client
	logger *zap.Logger
	source ResultSource
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) locations.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithResultSource reads datasets from src rather than from their
// locations.
func WithResultSource(src ResultSource) Option {
	return func(l *Loader) { l.source = src }
}

// New creates a Loader.
func New(logger *zap.Logger, opts ...Option) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{client: http.DefaultClient, logger: logger}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load fetches the topology and all datasets concurrently. Either every
// document loads or none is used: the first failure cancels the others
// and is returned.
func (l *Loader) Load(ctx context.Context, req Request) (*app.State, error) {
	if len(req.Datasets) == 0 {
		return nil, errors.New("no result datasets configured")
	}
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)

	var features *topology.Collection
	g.Go(func() error {
		c, err := l.loadTopology(gctx, req.Topology, req.Options)
		if err != nil {
			return err
		}
		features = c
		return nil
	})

	datasets := make([]*results.Dataset, len(req.Datasets))
	for i, spec := range req.Datasets {
		g.Go(func() error {
			ds, err := l.loadDataset(gctx, spec)
			if err != nil {
				return err
			}
			datasets[i] = ds
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	state, err := app.NewState(features, datasets, req.DefaultYear)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.LoadDurationMs.Observe(float64(elapsed.Milliseconds()))
	l.logger.Info("map data loaded",
		zap.Int("features", features.Len()),
		zap.Strings("years", state.Years),
		zap.Duration("elapsed", elapsed),
	)
	return state, nil
}

func (l *Loader) loadTopology(ctx context.Context, location string, opts topology.Options) (*topology.Collection, error) {
	rc, err := l.open(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("loading topology: %w", err)
	}
	defer rc.Close()

	topo, err := topology.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("loading topology %s: %w", location, err)
	}
	c, err := topo.Features(opts)
	if err != nil {
		return nil, fmt.Errorf("loading topology %s: %w", location, err)
	}
	l.logger.Debug("topology decoded", zap.String("location", location), zap.Int("features", c.Len()))
	return c, nil
}

// Dataset loads a single result document, outside of a full Load.
func (l *Loader) Dataset(ctx context.Context, spec DatasetSpec) (*results.Dataset, error) {
	return l.loadDataset(ctx, spec)
}

func (l *Loader) loadDataset(ctx context.Context, spec DatasetSpec) (*results.Dataset, error) {
	if l.source != nil {
		ds, err := l.source.LoadDataset(ctx, spec.Year)
		if err != nil {
			return nil, fmt.Errorf("loading %s results from store: %w", spec.Year, err)
		}
		l.logger.Debug("dataset loaded", zap.String("year", spec.Year), zap.String("source", "sqlite"), zap.Int("records", ds.Len()))
		return ds, nil
	}

	rc, err := l.open(ctx, spec.Location)
	if err != nil {
		return nil, fmt.Errorf("loading %s results: %w", spec.Year, err)
	}
	defer rc.Close()

	ds, err := results.Decode(rc, spec.Year)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", spec.Location, err)
	}
	l.logger.Debug("dataset loaded", zap.String("year", spec.Year), zap.String("location", spec.Location), zap.Int("records", ds.Len()))
	return ds, nil
}

// open returns a reader for a local path or an http(s) URL.
func (l *Loader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if location == "" {
		return nil, errors.New("empty document location")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsURL(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", location, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", location, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status %s", location, resp.Status)
	}
	return resp.Body, nil
}

// IsURL reports whether location is fetched over http(s).
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
