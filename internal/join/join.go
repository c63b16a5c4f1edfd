// Package join matches constituency result records to topology features.
//
// The result of a join is a Layer: a side table keyed by feature identifier
// that carries the derived display attributes. Features themselves are left
// untouched, so the same topology can back any number of layers.
package join

import (
	"github.com/robinmackenzie/uk-election-map/internal/results"
	"github.com/robinmackenzie/uk-election-map/internal/topology"
)

// Annotation is what a feature gains from its matching result record.
type Annotation struct {
	Color  string
	Link   string
	Result *results.Record
}

// Layer maps feature identifiers to annotations for one dataset.
type Layer struct {
	Year  string
	byID  map[string]Annotation
	order []string
}

// Join annotates every feature whose identifier equals the identifier of
// some record. When several records share an identifier the first one in
// list order wins. Records with no matching feature are ignored.
func Join(ds *results.Dataset, features *topology.Collection) *Layer {
	first := make(map[string]int, ds.Len())
	if ds != nil {
		for i := range ds.Records {
			if _, seen := first[ds.Records[i].ID]; !seen {
				first[ds.Records[i].ID] = i
			}
		}
	}

	l := &Layer{byID: make(map[string]Annotation, len(first))}
	if ds != nil {
		l.Year = ds.Year
	}
	if features == nil {
		return l
	}
	for _, f := range features.Features {
		i, ok := first[f.ID]
		if !ok {
			continue
		}
		if _, done := l.byID[f.ID]; done {
			continue
		}
		rec := &ds.Records[i]
		l.byID[f.ID] = Annotation{
			Color:  rec.Summary.PartyColour,
			Link:   rec.Summary.TheyWorkForYouLink,
			Result: rec,
		}
		l.order = append(l.order, f.ID)
	}
	return l
}

// Get returns the annotation for a feature.
func (l *Layer) Get(id string) (Annotation, bool) {
	if l == nil {
		return Annotation{}, false
	}
	a, ok := l.byID[id]
	return a, ok
}

// Fill returns the display colour for a feature. ok is false for
// unmatched features, whose fill stays unset.
func (l *Layer) Fill(id string) (string, bool) {
	a, ok := l.Get(id)
	if !ok {
		return "", false
	}
	return a.Color, true
}

// Matched returns the annotated feature identifiers in feature order.
func (l *Layer) Matched() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of annotated features.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.byID)
}

// Unmatched returns the identifiers of features the layer does not cover.
func (l *Layer) Unmatched(features *topology.Collection) []string {
	if features == nil {
		return nil
	}
	var out []string
	for _, f := range features.Features {
		if _, ok := l.Get(f.ID); !ok {
			out = append(out, f.ID)
		}
	}
	return out
}
