// Package panel renders the constituency info panel.
package panel

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/robinmackenzie/uk-election-map/internal/chart"
	"github.com/robinmackenzie/uk-election-map/internal/locale"
	"github.com/robinmackenzie/uk-election-map/internal/results"
)

// Panel holds the display text for one constituency.
type Panel struct {
	ID               string
	Constituency     string
	WinningCandidate string
	WinningParty     string
	PartyColour      string
	Electorate       string
	Turnout          string
	WinnerVotes      string
	Share            string
	Chart            chart.BarChart
}

// Build derives the panel fields and votes chart from a result record.
func Build(rec *results.Record) Panel {
	s := rec.Summary
	return Panel{
		ID:               rec.ID,
		Constituency:     s.Constituency,
		WinningCandidate: "Winner: " + s.WinningCandidate,
		WinningParty:     "Winner: " + s.WinningPartyName,
		PartyColour:      s.PartyColour,
		Electorate:       "Electorate: " + locale.Count(s.Electorate),
		Turnout:          "Turnout: " + locale.Count(s.ValidVotes),
		WinnerVotes:      "Votes for winner: " + locale.Count(s.WinningVoteCount),
		Share:            "Winning share: " + locale.Percent(s.ValidVotePercent),
		Chart:            chart.Layout(chart.Entries(rec.CandidateVoteInfo)),
	}
}

// skeleton mirrors the page's info panel template element.
var skeleton = template.Must(template.New("panel").Parse(`<div class="infoPanel" data-id="{{.ID}}">
<h4 id="constituencyName">{{.Constituency}}</h4>
<p id="winningCandidateName">{{.WinningCandidate}}</p>
<p id="winningPartyName">{{.WinningParty}}</p>
<div id="partyColourBlock" data-colour="{{.PartyColour}}" style="background-color: {{.PartyColour}}; height: 5px; width: 100%"></div>
<p id="electorate">{{.Electorate}}</p>
<p id="turnout">{{.Turnout}}</p>
<p id="votes">{{.WinnerVotes}}</p>
<p id="share">{{.Share}}</p>
{{.ChartSVG}}
</div>`))

// HTML renders the panel fragment. The chart is rebuilt from scratch on
// every call.
func (p Panel) HTML() (template.HTML, error) {
	svg, err := p.Chart.SVG()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := skeleton.Execute(&buf, struct {
		Panel
		ChartSVG template.HTML
	}{p, svg}); err != nil {
		return "", fmt.Errorf("rendering info panel for %s: %w", p.ID, err)
	}
	return template.HTML(buf.String()), nil
}

// Render builds and renders the panel for a record in one step.
func Render(rec *results.Record) (template.HTML, error) {
	return Build(rec).HTML()
}
