package topology

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

// Topology is a decoded TopoJSON document. Coordinates shared between
// neighbouring shapes live once in Arcs; geometries reference arcs by index.
type Topology struct {
	Type      string             `json:"type"`
	Transform *Transform         `json:"transform,omitempty"`
	BBox      []float64          `json:"bbox,omitempty"`
	Arcs      [][][]float64      `json:"arcs"`
	Objects   map[string]*Object `json:"objects"`
}

// Transform describes quantized arc coordinates. When present, arc
// positions are delta-encoded integers.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Object is a TopoJSON geometry object. Arcs holds the raw arc index
// nesting, whose depth depends on Type.
type Object struct {
	Type       string          `json:"type"`
	ID         any             `json:"id,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
	Arcs       json.RawMessage `json:"arcs,omitempty"`
	Geometries []*Object       `json:"geometries,omitempty"`
}

// Options selects which object to extract and how to identify features.
type Options struct {
	Object       string
	IDProperty   string
	NameProperty string
}

// DefaultOptions matches the Westminster constituency boundary file.
func DefaultOptions() Options {
	return Options{
		Object:       "uk",
		IDProperty:   "PCON13CD",
		NameProperty: "PCON13NM",
	}
}

// Feature is one constituency shape. Features are never modified after
// extraction; derived display attributes live in a separate layer.
type Feature struct {
	ID         string
	Name       string
	Properties map[string]any
	Geometry   orb.MultiPolygon
}

// Collection is the ordered feature list of one topology object.
type Collection struct {
	Object   string
	Features []Feature
	Bound    orb.Bound

	index map[string]int
}

// Len returns the number of features.
func (c *Collection) Len() int { return len(c.Features) }

// ByID returns the feature with the given identifier.
func (c *Collection) ByID(id string) (*Feature, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.Features[i], true
}

// IDs returns the feature identifiers in document order.
func (c *Collection) IDs() []string {
	ids := make([]string, len(c.Features))
	for i, f := range c.Features {
		ids[i] = f.ID
	}
	return ids
}
