// Package dashboard serves the live map page, its JSON API and the
// per-viewer websocket session.
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/robinmackenzie/uk-election-map/internal/app"
	"github.com/robinmackenzie/uk-election-map/internal/interaction"
	"github.com/robinmackenzie/uk-election-map/internal/join"
	"github.com/robinmackenzie/uk-election-map/internal/render"
)

// Dashboard holds the loaded map data shared by every request. Per-year
// layers are joined once because the state never changes after load.
type Dashboard struct {
	state    *app.State
	renderer *render.Renderer
	opts     interaction.Options
	logger   *zap.Logger
	layers   map[string]*join.Layer
}

// New creates a Dashboard over loaded state.
func New(state *app.State, renderer *render.Renderer, opts interaction.Options, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dashboard{
		state:    state,
		renderer: renderer,
		opts:     opts,
		logger:   logger,
		layers:   make(map[string]*join.Layer, len(state.Years)),
	}
	for _, year := range state.Years {
		d.layers[year] = app.Join(state.Datasets[year], state)
	}
	return d
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/map.svg", d.handleMapSVG)
	r.Get("/summary", d.handleSummary)
	r.Get("/api/years", d.handleYears)
	r.Get("/api/fills", d.handleFills)
	r.Get("/api/summary", d.handleSummaryJSON)
	r.Get("/api/features.geojson", d.handleGeoJSON)
	r.Get("/api/constituencies/{id}", d.handleConstituency)
	r.Get("/api/constituencies/{id}/panel", d.handlePanel)
	r.Get("/ws/session", d.handleWebSocket)
}

// layer returns the joined layer for a requested year, where "" means the
// default year.
func (d *Dashboard) layer(year string) (*join.Layer, error) {
	year = d.state.ResolveYear(year)
	l, ok := d.layers[year]
	if !ok {
		_, err := d.state.Dataset(year)
		return nil, err
	}
	return l, nil
}
