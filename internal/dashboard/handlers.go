package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/robinmackenzie/uk-election-map/internal/app"
	"github.com/robinmackenzie/uk-election-map/internal/metrics"
	"github.com/robinmackenzie/uk-election-map/internal/panel"
	"github.com/robinmackenzie/uk-election-map/internal/render"
	"github.com/robinmackenzie/uk-election-map/internal/summary"
	"github.com/robinmackenzie/uk-election-map/internal/topology"
)

// yearsResponse is the JSON response for the years endpoint.
type yearsResponse struct {
	Years   []string `json:"years"`
	Default string   `json:"default"`
}

func (d *Dashboard) handleYears(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, yearsResponse{Years: d.state.Years, Default: d.state.DefaultYear})
}

func (d *Dashboard) handleFills(w http.ResponseWriter, r *http.Request) {
	layer, err := d.layer(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, render.Repaint(layer, d.state.Features))
}

func (d *Dashboard) handleMapSVG(w http.ResponseWriter, r *http.Request) {
	layer, err := d.layer(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, err)
		return
	}
	svg, err := d.renderer.SVG(layer)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

func (d *Dashboard) handleConstituency(w http.ResponseWriter, r *http.Request) {
	layer, err := d.layer(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, err)
		return
	}
	a, ok := layer.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no result for constituency"})
		return
	}
	writeJSON(w, http.StatusOK, a.Result)
}

func (d *Dashboard) handlePanel(w http.ResponseWriter, r *http.Request) {
	layer, err := d.layer(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, err)
		return
	}
	a, ok := layer.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no result for constituency"})
		return
	}
	html, err := panel.Render(a.Result)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.PanelRendersTotal.Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (d *Dashboard) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	layer, err := d.layer(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, err)
		return
	}
	fc := d.state.Features.GeoJSON(func(f *topology.Feature) map[string]any {
		a, ok := layer.Get(f.ID)
		if !ok {
			return nil
		}
		return map[string]any{
			"year":  layer.Year,
			"color": a.Color,
			"link":  a.Link,
		}
	})
	data, err := fc.MarshalJSON()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}

func (d *Dashboard) handleSummaryJSON(w http.ResponseWriter, r *http.Request) {
	ds, err := d.state.Dataset(d.state.ResolveYear(r.URL.Query().Get("year")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary.Compute(ds))
}

func (d *Dashboard) handleSummary(w http.ResponseWriter, r *http.Request) {
	sums := make([]summary.Summary, 0, len(d.state.Years))
	for _, year := range d.state.Years {
		sums = append(sums, summary.Compute(d.state.Datasets[year]))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := summary.RenderPage(w, sums...); err != nil {
		d.logger.Error("summary page", zap.Error(err))
	}
}

// writeError maps an error to a JSON error response.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, app.ErrUnknownYear) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
