// Package app holds the loaded map data and the per-viewer view over it.
//
// State is built once at startup and never modified. Each viewer owns a
// View recording its active election year and the layer joined for it.
package app

import (
	"errors"
	"fmt"
	"sort"

	"github.com/robinmackenzie/uk-election-map/internal/results"
	"github.com/robinmackenzie/uk-election-map/internal/topology"
)

// ErrUnknownYear is returned when a year has no loaded dataset.
var ErrUnknownYear = errors.New("unknown election year")

// State is the loaded topology plus one dataset per election year.
type State struct {
	Features    *topology.Collection
	Datasets    map[string]*results.Dataset
	Years       []string
	DefaultYear string
}

// NewState validates and indexes loaded data. defaultYear must be one of
// the dataset years.
func NewState(features *topology.Collection, datasets []*results.Dataset, defaultYear string) (*State, error) {
	if features == nil {
		return nil, errors.New("no topology features loaded")
	}
	s := &State{
		Features:    features,
		Datasets:    make(map[string]*results.Dataset, len(datasets)),
		DefaultYear: defaultYear,
	}
	for _, ds := range datasets {
		if _, dup := s.Datasets[ds.Year]; dup {
			return nil, fmt.Errorf("dataset for %s loaded twice", ds.Year)
		}
		s.Datasets[ds.Year] = ds
		s.Years = append(s.Years, ds.Year)
	}
	sort.Strings(s.Years)
	if _, ok := s.Datasets[defaultYear]; !ok {
		return nil, fmt.Errorf("default year %q: %w", defaultYear, ErrUnknownYear)
	}
	return s, nil
}

// Dataset returns the dataset for year.
func (s *State) Dataset(year string) (*results.Dataset, error) {
	ds, ok := s.Datasets[year]
	if !ok {
		return nil, fmt.Errorf("%q: %w", year, ErrUnknownYear)
	}
	return ds, nil
}

// ResolveYear maps an empty year to the default.
func (s *State) ResolveYear(year string) string {
	if year == "" {
		return s.DefaultYear
	}
	return year
}
