package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.uber.org/zap"

	"github.com/robinmackenzie/uk-election-map/internal/app"
	"github.com/robinmackenzie/uk-election-map/internal/join"
	"github.com/robinmackenzie/uk-election-map/internal/panel"
	"github.com/robinmackenzie/uk-election-map/internal/render"
	"github.com/robinmackenzie/uk-election-map/internal/summary"
)

// SiteGenerator writes a self-contained static copy of the map: one page
// per election year with every info panel rendered in advance.
type SiteGenerator struct {
	State            *app.State
	Renderer         *render.Renderer
	OutputDir        string
	NotesFile        string // optional markdown rendered to about.html
	HidePanelOnLeave bool
	Logger           *zap.Logger
}

// NewSiteGenerator creates a SiteGenerator writing into outputDir.
func NewSiteGenerator(state *app.State, renderer *render.Renderer, outputDir string) *SiteGenerator {
	return &SiteGenerator{
		State:     state,
		Renderer:  renderer,
		OutputDir: outputDir,
		Logger:    zap.NewNop(),
	}
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Year             string
	Years            []string
	Map              template.HTML
	Panels           []template.HTML
	Links            template.JS
	PieFile          string
	HasAbout         bool
	HidePanelOnLeave bool
}

// PageFile is the file name of a year's page.
func PageFile(year string) string { return year + ".html" }

// Generate builds the full static site. Returns the number of pages generated.
func (g *SiteGenerator) Generate() (int, error) {
	if g.Logger == nil {
		g.Logger = zap.NewNop()
	}
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	// Write static assets.
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(render.StyleSheet()+cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(render.ZoomScript()+jsContent), 0o644); err != nil {
		return 0, err
	}

	pages := 0
	hasAbout := g.NotesFile != ""
	if hasAbout {
		if err := g.writeAbout(); err != nil {
			return 0, err
		}
		pages++
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}

	for _, year := range g.State.Years {
		page, err := g.renderYear(tmpl, year, hasAbout)
		if err != nil {
			return 0, fmt.Errorf("rendering %s: %w", year, err)
		}
		if err := os.WriteFile(filepath.Join(g.OutputDir, PageFile(year)), page, 0o644); err != nil {
			return 0, err
		}
		pages++
		if year == g.State.DefaultYear {
			if err := os.WriteFile(filepath.Join(g.OutputDir, "index.html"), page, 0o644); err != nil {
				return 0, err
			}
			pages++
		}
	}

	return pages, nil
}

func (g *SiteGenerator) renderYear(tmpl *template.Template, year string, hasAbout bool) ([]byte, error) {
	ds, err := g.State.Dataset(year)
	if err != nil {
		return nil, err
	}
	layer := app.Join(ds, g.State)

	svg, err := g.Renderer.SVG(layer)
	if err != nil {
		return nil, err
	}
	panels, links, err := g.panels(layer)
	if err != nil {
		return nil, err
	}

	pieFile := fmt.Sprintf("votes-%s.svg", year)
	if err := g.writePie(pieFile, summary.Compute(ds)); err != nil {
		g.Logger.Warn("skipping vote share chart", zap.String("year", year), zap.Error(err))
		pieFile = ""
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, pageData{
		Year:             year,
		Years:            g.State.Years,
		Map:              svg,
		Panels:           panels,
		Links:            links,
		PieFile:          pieFile,
		HasAbout:         hasAbout,
		HidePanelOnLeave: g.HidePanelOnLeave,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// panels renders the info panel of every matched feature, plus the
// feature -> profile link table the click handler reads.
func (g *SiteGenerator) panels(layer *join.Layer) ([]template.HTML, template.JS, error) {
	ids := layer.Matched()
	out := make([]template.HTML, 0, len(ids))
	links := make(map[string]string, len(ids))
	for _, id := range ids {
		a, _ := layer.Get(id)
		html, err := panel.Render(a.Result)
		if err != nil {
			return nil, "", err
		}
		out = append(out, html)
		if a.Link != "" {
			links[id] = a.Link
		}
	}
	data, err := json.Marshal(links)
	if err != nil {
		return nil, "", err
	}
	return out, template.JS(data), nil
}

func (g *SiteGenerator) writePie(name string, s summary.Summary) error {
	f, err := os.Create(filepath.Join(g.OutputDir, name))
	if err != nil {
		return err
	}
	if err := summary.VoteSharePie(f, s); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	return f.Close()
}

func (g *SiteGenerator) writeAbout() error {
	src, err := os.ReadFile(g.NotesFile)
	if err != nil {
		return fmt.Errorf("reading notes %s: %w", g.NotesFile, err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	var body bytes.Buffer
	if err := md.Convert(src, &body); err != nil {
		return fmt.Errorf("converting notes: %w", err)
	}

	tmpl, err := template.New("about").Parse(aboutTemplate)
	if err != nil {
		return fmt.Errorf("parsing about template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct {
		Content template.HTML
		Default string
	}{template.HTML(body.String()), PageFile(g.State.DefaultYear)}); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.OutputDir, "about.html"), buf.Bytes(), 0o644)
}
