package dashboard

import (
	_ "embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/robinmackenzie/uk-election-map/internal/render"
)

//go:embed page.html
var pageHTML string

//go:embed live.js
var liveJS string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// pageData fills page.html.
type pageData struct {
	Year  string
	Years []string
	Map   template.HTML
	Style template.CSS
	Zoom  template.JS
	Live  template.JS
}

// ServeIndex serves the map page for ?year= (default year when absent).
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	year := d.state.ResolveYear(r.URL.Query().Get("year"))
	layer, err := d.layer(year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	svg, err := d.renderer.SVG(layer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTemplate.Execute(w, pageData{
		Year:  year,
		Years: d.state.Years,
		Map:   svg,
		Style: template.CSS(render.StyleSheet()),
		Zoom:  template.JS(render.ZoomScript()),
		Live:  template.JS(liveJS),
	})
	if err != nil {
		d.logger.Error("rendering map page", zap.Error(err))
	}
}
