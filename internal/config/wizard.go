package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/robinmackenzie/uk-election-map/internal/loader"
)

// detectDatasets looks for result documents in dataDir and returns them
// as dataset entries, falling back to the defaults when none are found.
func detectDatasets(dataDir string) []DatasetConfig {
	specs, err := loader.Discover(filepath.Join(dataDir, "*.json"))
	if err != nil || len(specs) == 0 {
		return DefaultConfig().Datasets
	}
	out := make([]DatasetConfig, 0, len(specs))
	for _, s := range specs {
		rel, err := filepath.Rel(dataDir, s.Location)
		if err != nil {
			rel = s.Location
		}
		out = append(out, DatasetConfig{Year: s.Year, File: rel})
	}
	return out
}

// RunWizard runs an interactive configuration wizard, saves the result
// to path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to electionmap! Let's configure your map.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Directory holding the topology and result files",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	// 2. Topology file.
	topoPrompt := promptui.Prompt{
		Label:   "Topology file (path inside the data directory, or URL)",
		Default: cfg.Topology,
	}
	topo, err := topoPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("topology file: %w", err)
	}
	cfg.Topology = topo

	cfg.Datasets = detectDatasets(dataDir)
	years := make([]string, 0, len(cfg.Datasets))
	for _, d := range cfg.Datasets {
		years = append(years, d.Year)
		fmt.Printf("Found %s results: %s\n", d.Year, d.File)
	}
	sort.Strings(years)

	// 3. Default year.
	yearPrompt := promptui.Select{
		Label:     "Year shown when the map first opens",
		Items:     years,
		CursorPos: len(years) - 1,
	}
	_, year, err := yearPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("default year selection: %w", err)
	}
	cfg.DefaultYear = year

	// 4. Result source.
	sourcePrompt := promptui.Select{
		Label: "Read results from",
		Items: []string{"json files", "sqlite store (run electionmap import first)"},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source selection: %w", err)
	}
	cfg.Source = []SourceType{SourceJSON, SourceSQLite}[sourceIdx]

	// 5. Panel behaviour.
	leavePrompt := promptui.Select{
		Label: "When the pointer leaves the map",
		Items: []string{"hide the info panel", "keep the last panel"},
	}
	leaveIdx, _, err := leavePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("panel behaviour: %w", err)
	}
	cfg.HidePanelOnLeave = leaveIdx == 0

	// 6. Port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
