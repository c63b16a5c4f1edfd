// Package metrics holds the Prometheus collectors for the map server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	JoinsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "electionmap_joins_total",
		Help: "Feature joins performed, by election year",
	}, []string{"year"})
	DatasetSwitchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "electionmap_dataset_switches_total",
		Help: "Active dataset changes, by target year",
	}, []string{"year"})
	PanelRendersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "electionmap_panel_renders_total",
		Help: "Info panels rendered",
	})
	LinkOpensTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "electionmap_link_opens_total",
		Help: "Profile links opened from a map click",
	})
	SessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "electionmap_sessions_active",
		Help: "Open live map sessions",
	})
	LoadDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "electionmap_load_duration_ms",
		Help:    "Time to load topology and result datasets",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
	})
)

func init() {
	prometheus.MustRegister(JoinsTotal)
	prometheus.MustRegister(DatasetSwitchesTotal)
	prometheus.MustRegister(PanelRendersTotal)
	prometheus.MustRegister(LinkOpensTotal)
	prometheus.MustRegister(SessionsActive)
	prometheus.MustRegister(LoadDurationMs)
}

// Handler serves the registered collectors for scraping.
func Handler() http.Handler { return promhttp.Handler() }
