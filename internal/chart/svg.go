package chart

import (
	"bytes"
	"fmt"
	"html/template"
)

var svgTemplate = template.Must(template.New("votes").Parse(`<svg id="svgVotes" class="votes-chart" width="{{.Width}}" height="{{printf "%.0f" .Chart.SVGHeight}}">
<g transform="translate({{.Left}},{{.Top}})">
<g class="y axis"><path class="domain" stroke="currentColor" d="M0,0V{{printf "%.2f" .Chart.PlotHeight}}"></path>
{{- range .Chart.Bars}}
<text class="tick" x="-9" y="{{printf "%.2f" .LabelY}}" dy=".32em" text-anchor="end">{{.Party}}</text>
{{- end}}
</g>
{{- range .Chart.Bars}}
<rect class="bar" data-party="{{.Party}}" fill="{{.Color}}" x="0" y="{{printf "%.2f" .Y}}" width="{{printf "%.2f" .Width}}" height="{{printf "%.2f" .Height}}"></rect>
<text class="label" x="{{printf "%.2f" .LabelX}}" y="{{printf "%.2f" .LabelY}}" dy=".35em">{{.Label}}</text>
{{- end}}
</g>
</svg>`))

// SVG renders the chart as a standalone <svg> element. Each call produces
// a complete chart; nothing from a previous rendering is reused.
func (c BarChart) SVG() (template.HTML, error) {
	var buf bytes.Buffer
	err := svgTemplate.Execute(&buf, struct {
		Chart BarChart
		Width int
		Left  int
		Top   int
	}{c, PlotWidth + MarginLeft + 60, MarginLeft, MarginTop})
	if err != nil {
		return "", fmt.Errorf("rendering votes chart: %w", err)
	}
	return template.HTML(buf.String()), nil
}
