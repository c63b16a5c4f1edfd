package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "2017", cfg.DefaultYear)
	assert.Equal(t, SourceJSON, cfg.Source)
	assert.True(t, cfg.HidePanelOnLeave)
	assert.Equal(t, 1200.0, cfg.Map.Scale)
	assert.Equal(t, [2]float64{1.5491, 53.8008}, cfg.Map.Center)
	assert.Equal(t, [2]float64{12, 0}, cfg.Map.Rotate)
	assert.Equal(t, 960, cfg.Map.Width)
	assert.Equal(t, 720, cfg.Map.Height)
	require.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.electionmap.yml")

	original := DefaultConfig()
	original.DataDir = "/srv/maps"
	original.Datasets = []DatasetConfig{{Year: "2019", File: "uk_ge_2019.json"}}
	original.DefaultYear = "2019"
	original.HidePanelOnLeave = false
	original.Map.Scale = 2400
	original.Server.Port = 9090

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	require.NoError(t, DefaultConfig().Save(path))

	t.Setenv("ELECTIONMAP_DEFAULT_YEAR", "2015")
	t.Setenv("ELECTIONMAP_SERVER__PORT", "9999")
	t.Setenv("ELECTIONMAP_HIDE_PANEL_ON_LEAVE", "false")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2015", loaded.DefaultYear)
	assert.Equal(t, 9999, loaded.Server.Port)
	assert.False(t, loaded.HidePanelOnLeave)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty topology", func(c *Config) { c.Topology = "" }},
		{"bad source", func(c *Config) { c.Source = "postgres" }},
		{"sqlite without database", func(c *Config) { c.Source = SourceSQLite; c.DatabasePath = "" }},
		{"default year without dataset", func(c *Config) { c.DefaultYear = "2010" }},
		{"duplicate year", func(c *Config) { c.Datasets = append(c.Datasets, DatasetConfig{Year: "2015", File: "x.json"}) }},
		{"bad year", func(c *Config) { c.Datasets[0].Year = "15" }},
		{"no datasets", func(c *Config) { c.Datasets = nil }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"zero width", func(c *Config) { c.Map.Width = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateWithGlob(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Datasets = nil
	cfg.ResultsGlob = "**/uk_ge_*.json"
	cfg.DefaultYear = "2019"
	assert.NoError(t, cfg.Validate())
}

func TestResolve(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("data", "topo.json"), cfg.Resolve("topo.json"))
	assert.Equal(t, "https://example.org/topo.json", cfg.Resolve("https://example.org/topo.json"))
	assert.Equal(t, "/abs/topo.json", cfg.Resolve("/abs/topo.json"))
}

func TestDatasetSpecs(t *testing.T) {
	cfg := DefaultConfig()
	specs, err := cfg.DatasetSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, filepath.Join("data", "uk_ge_2015_v2.json"), specs[0].Location)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uk_ge_2019.json"), []byte("[]"), 0o644))
	cfg.DataDir = dir
	cfg.ResultsGlob = "*.json"
	specs, err = cfg.DatasetSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "2019", specs[0].Year)
}

func TestDetectDatasets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uk_ge_2010.json"), []byte("[]"), 0o644))
	assert.Equal(t, []DatasetConfig{{Year: "2010", File: "uk_ge_2010.json"}}, detectDatasets(dir))
	assert.Equal(t, DefaultConfig().Datasets, detectDatasets(filepath.Join(dir, "missing")))
}
