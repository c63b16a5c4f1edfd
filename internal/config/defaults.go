package config

import (
	"path/filepath"

	"github.com/robinmackenzie/uk-election-map/internal/loader"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:        "data",
		Topology:       "topo_wpc_uk_10pc.topo.json",
		TopologyObject: "uk",
		IDProperty:     "PCON13CD",
		NameProperty:   "PCON13NM",
		Datasets: []DatasetConfig{
			{Year: "2015", File: "uk_ge_2015_v2.json"},
			{Year: "2017", File: "uk_ge_2017_v2.json"},
		},
		DefaultYear:      "2017",
		Source:           SourceJSON,
		DatabasePath:     ".electionmap/results.db",
		HidePanelOnLeave: true,
		Map: MapConfig{
			Width:  960,
			Height: 720,
			Scale:  1200,
			Center: [2]float64{1.5491, 53.8008},
			Rotate: [2]float64{12, 0},
		},
		Server: ServerConfig{Port: 8080},
		Site:   SiteConfig{OutputDir: "site"},
		Log:    LogConfig{Level: "info", Format: "console"},
	}
}

// Resolve returns location as-is when it is absolute or a URL, and
// relative to DataDir otherwise.
func (c *Config) Resolve(location string) string {
	if location == "" || loader.IsURL(location) || filepath.IsAbs(location) || c.DataDir == "" {
		return location
	}
	return filepath.Join(c.DataDir, location)
}

// DatasetSpecs returns the configured result documents with resolved
// locations. When ResultsGlob is set, discovered files are used instead.
func (c *Config) DatasetSpecs() ([]loader.DatasetSpec, error) {
	if c.ResultsGlob != "" {
		return loader.Discover(c.Resolve(c.ResultsGlob))
	}
	specs := make([]loader.DatasetSpec, 0, len(c.Datasets))
	for _, d := range c.Datasets {
		specs = append(specs, loader.DatasetSpec{Year: d.Year, Location: c.Resolve(d.File)})
	}
	return specs, nil
}
