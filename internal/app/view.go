package app

import (
	"github.com/robinmackenzie/uk-election-map/internal/join"
	"github.com/robinmackenzie/uk-election-map/internal/metrics"
	"github.com/robinmackenzie/uk-election-map/internal/render"
	"github.com/robinmackenzie/uk-election-map/internal/results"
)

// View is one viewer's active dataset and its joined layer. A View is
// owned by a single goroutine.
type View struct {
	state *State
	year  string
	layer *join.Layer
}

// NewView opens a view on year (empty means the default year).
func NewView(s *State, year string) (*View, error) {
	v := &View{state: s}
	if _, err := v.Switch(s.ResolveYear(year)); err != nil {
		return nil, err
	}
	return v, nil
}

// Year returns the active election year.
func (v *View) Year() string { return v.year }

// Layer returns the layer joined for the active year.
func (v *View) Layer() *join.Layer { return v.layer }

// State returns the shared loaded data.
func (v *View) State() *State { return v.state }

// Switch makes year the active dataset, re-runs the join over the
// unchanged topology, and returns the fill of every shape. On error the
// view keeps its previous year and layer.
func (v *View) Switch(year string) (render.Paint, error) {
	ds, err := v.state.Dataset(year)
	if err != nil {
		return render.Paint{}, err
	}
	if v.year != "" && v.year != year {
		metrics.DatasetSwitchesTotal.WithLabelValues(year).Inc()
	}
	v.year = year
	v.layer = Join(ds, v.state)
	return render.Repaint(v.layer, v.state.Features), nil
}

// Record returns the result joined to a feature.
func (v *View) Record(id string) (*results.Record, bool) {
	a, ok := v.layer.Get(id)
	if !ok {
		return nil, false
	}
	return a.Result, true
}

// Link returns the profile link joined to a feature, or "".
func (v *View) Link(id string) string {
	a, _ := v.layer.Get(id)
	return a.Link
}

// Join joins a dataset to the state's features and counts the join.
func Join(ds *results.Dataset, s *State) *join.Layer {
	metrics.JoinsTotal.WithLabelValues(ds.Year).Inc()
	return join.Join(ds, s.Features)
}
