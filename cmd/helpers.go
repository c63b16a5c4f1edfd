package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/robinmackenzie/uk-election-map/internal/app"
	"github.com/robinmackenzie/uk-election-map/internal/config"
	"github.com/robinmackenzie/uk-election-map/internal/db"
	"github.com/robinmackenzie/uk-election-map/internal/loader"
	"github.com/robinmackenzie/uk-election-map/internal/logging"
	"github.com/robinmackenzie/uk-election-map/internal/render"
	"github.com/robinmackenzie/uk-election-map/internal/topology"
)

// loadConfig loads and validates the config, providing a user-friendly error.
// A missing config file is not an error; defaults apply.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `electionmap init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the command logger. --verbose forces debug level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logging.New(level, cfg.Log.Format)
}

// loadState runs the loader over the configured documents, reading results
// from the SQLite store instead when source is sqlite.
func loadState(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app.State, error) {
	var opts []loader.Option
	var specs []loader.DatasetSpec

	if cfg.Source == config.SourceSQLite {
		database, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("opening result store: %w", err)
		}
		defer database.Close()

		store := db.NewResultStore(database)
		years, err := store.Years(ctx)
		if err != nil {
			return nil, err
		}
		if len(years) == 0 {
			return nil, fmt.Errorf("result store %s is empty\nRun `electionmap import` first", cfg.DatabasePath)
		}
		for _, y := range years {
			specs = append(specs, loader.DatasetSpec{Year: y})
		}
		opts = append(opts, loader.WithResultSource(store))
	} else {
		var err error
		specs, err = cfg.DatasetSpecs()
		if err != nil {
			return nil, err
		}
	}

	l := loader.New(logger, opts...)
	return l.Load(ctx, loader.Request{
		Topology: cfg.Resolve(cfg.Topology),
		Options: topology.Options{
			Object:       cfg.TopologyObject,
			IDProperty:   cfg.IDProperty,
			NameProperty: cfg.NameProperty,
		},
		Datasets:    specs,
		DefaultYear: cfg.DefaultYear,
	})
}

// newRenderer projects the loaded features into the configured viewport.
func newRenderer(cfg *config.Config, state *app.State) *render.Renderer {
	proj := render.Projection{
		Scale:     cfg.Map.Scale,
		Center:    cfg.Map.Center,
		Rotate:    cfg.Map.Rotate,
		Translate: [2]float64{float64(cfg.Map.Width) / 2, float64(cfg.Map.Height) / 2},
	}
	return render.NewRenderer(state.Features, proj, cfg.Map.Width, cfg.Map.Height)
}
