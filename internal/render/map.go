// Package render draws the constituency map as SVG.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/robinmackenzie/uk-election-map/internal/join"
	"github.com/robinmackenzie/uk-election-map/internal/topology"
)

// Shape styling. Hover changes opacity and stroke over TransitionMS; fill
// changes are applied immediately.
const (
	Stroke           = "#e6e6e6"
	HighlightStroke  = "#242424"
	StrokeWidth      = "0.8px"
	Opacity          = 1.0
	HighlightOpacity = 0.4
	TransitionMS     = 200
	MinZoom          = 0.1
	MaxZoom          = 100
)

// Renderer draws one path per feature. Path data is computed once; only
// fills depend on the joined layer.
type Renderer struct {
	width    int
	height   int
	features *topology.Collection
	paths    []string
}

// NewRenderer projects every feature of the collection.
func NewRenderer(features *topology.Collection, proj Projection, width, height int) *Renderer {
	r := &Renderer{
		width:    width,
		height:   height,
		features: features,
		paths:    make([]string, features.Len()),
	}
	for i := range features.Features {
		r.paths[i] = PathData(features.Features[i].Geometry, proj)
	}
	return r
}

// Shape is one rendered path.
type Shape struct {
	ID   string
	Name string
	D    string
	Fill string
	// HasFill is false for features the layer does not cover.
	HasFill bool
}

// Shapes returns the shapes in feature order, filled from the layer.
func (r *Renderer) Shapes(layer *join.Layer) []Shape {
	out := make([]Shape, len(r.paths))
	for i, f := range r.features.Features {
		fill, ok := layer.Fill(f.ID)
		out[i] = Shape{ID: f.ID, Name: f.Name, D: r.paths[i], Fill: fill, HasFill: ok}
	}
	return out
}

var mapTemplate = template.Must(template.New("map").Parse(`<svg xmlns="http://www.w3.org/2000/svg" id="map-svg" width="100%" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" data-min-zoom="{{.MinZoom}}" data-max-zoom="{{.MaxZoom}}">
<g class="features">
{{- range .Shapes}}
<path data-id="{{.ID}}" d="{{.D}}"{{if .HasFill}} fill="{{.Fill}}"{{end}}><title>{{.Name}}</title></path>
{{- end}}
</g>
</svg>`))

// SVG renders the whole map with fills from layer.
func (r *Renderer) SVG(layer *join.Layer) (template.HTML, error) {
	var buf bytes.Buffer
	err := mapTemplate.Execute(&buf, struct {
		Width, Height    int
		MinZoom, MaxZoom float64
		Shapes           []Shape
	}{r.width, r.height, MinZoom, MaxZoom, r.Shapes(layer)})
	if err != nil {
		return "", fmt.Errorf("rendering map: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Paint is a full fill repaint: every matched shape's fill plus the shapes
// whose fill must be left unset.
type Paint struct {
	Year  string            `json:"year"`
	Fills map[string]string `json:"fills"`
	Unset []string          `json:"unset"`
}

// Repaint computes the fill of every feature for a layer.
func Repaint(layer *join.Layer, features *topology.Collection) Paint {
	p := Paint{Fills: make(map[string]string, layer.Len()), Unset: []string{}}
	if layer != nil {
		p.Year = layer.Year
	}
	for _, f := range features.Features {
		if fill, ok := layer.Fill(f.ID); ok {
			p.Fills[f.ID] = fill
		} else {
			p.Unset = append(p.Unset, f.ID)
		}
	}
	return p
}
