package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinmackenzie/uk-election-map/internal/app"
	"github.com/robinmackenzie/uk-election-map/internal/interaction"
	"github.com/robinmackenzie/uk-election-map/internal/render"
	"github.com/robinmackenzie/uk-election-map/internal/results"
	"github.com/robinmackenzie/uk-election-map/internal/topology"
)

const aldershotLink = "https://www.theyworkforyou.com/mp/25691/leo_docherty/aldershot"

func square(x, y float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y}}}}
}

func setupTest(t *testing.T) *Dashboard {
	t.Helper()

	features := &topology.Collection{Features: []topology.Feature{
		{ID: "E14000530", Name: "Aldershot", Geometry: square(-1, 51)},
		{ID: "E14000531", Name: "Aldridge-Brownhills", Geometry: square(-2, 52)},
		{ID: "N06000001", Name: "Belfast East", Geometry: square(-6, 54)},
	}}
	ds2015 := &results.Dataset{Year: "2015", Records: []results.Record{
		{ID: "E14000530", Summary: results.Summary{Constituency: "Aldershot", WinningPartyName: "Conservative", PartyColour: "#0087DC"}},
	}}
	ds2017 := &results.Dataset{Year: "2017", Records: []results.Record{
		{
			ID: "E14000530",
			Summary: results.Summary{
				Constituency: "Aldershot", WinningCandidate: "Leo Docherty", WinningPartyName: "Conservative",
				PartyColour: "#0087DC", Electorate: 76205, ValidVotes: 50592, WinningVoteCount: 26950,
				ValidVotePercent: 0.533, TheyWorkForYouLink: aldershotLink,
			},
			CandidateVoteInfo: []results.CandidateVote{
				{PartyAbbrevTransformed: "CON", Votes: 26950, PartyColour: "#0087DC"},
				{PartyAbbrevTransformed: "LAB", Votes: 15477, PartyColour: "#DC241f"},
			},
		},
		{ID: "E14000531", Summary: results.Summary{Constituency: "Aldridge-Brownhills", WinningPartyName: "Labour", PartyColour: "#DC241f"}},
	}}

	state, err := app.NewState(features, []*results.Dataset{ds2015, ds2017}, "2017")
	require.NoError(t, err)

	proj := render.Projection{Scale: 1200, Center: [2]float64{1.5491, 53.8008}, Rotate: [2]float64{12, 0}, Translate: [2]float64{480, 360}}
	return New(state, render.NewRenderer(features, proj, 960, 720), interaction.Options{HidePanelOnLeave: true}, nil)
}

func setupRouter(d *Dashboard) chi.Router {
	r := chi.NewRouter()
	d.RegisterRoutes(r)
	return r
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestIndexPage(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/?year=2015")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	active := doc.Find(`.result-button[data-resultsyear="2015"]`)
	assert.True(t, active.HasClass("btn-primary"))
	other := doc.Find(`.result-button[data-resultsyear="2017"]`)
	assert.True(t, other.HasClass("btn-default"))
	assert.False(t, other.HasClass("btn-primary"))

	assert.Equal(t, "#0087DC", doc.Find(`path[data-id="E14000530"]`).AttrOr("fill", ""))
	_, filled := doc.Find(`path[data-id="E14000531"]`).Attr("fill")
	assert.False(t, filled)
	assert.True(t, doc.Find("#panel-host").HasClass("hide"))
	assert.Equal(t, "2015", doc.Find("#map").AttrOr("data-year", ""))
}

func TestIndexDefaultsToDefaultYear(t *testing.T) {
	r := setupRouter(setupTest(t))

	doc, err := goquery.NewDocumentFromReader(get(t, r, "/").Body)
	require.NoError(t, err)
	assert.True(t, doc.Find(`.result-button[data-resultsyear="2017"]`).HasClass("btn-primary"))
	assert.Equal(t, "#DC241f", doc.Find(`path[data-id="E14000531"]`).AttrOr("fill", ""))
}

func TestIndexUnknownYear(t *testing.T) {
	r := setupRouter(setupTest(t))
	assert.Equal(t, http.StatusNotFound, get(t, r, "/?year=1997").Code)
}

func TestYearsEndpoint(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/api/years")
	require.Equal(t, http.StatusOK, w.Code)
	var resp yearsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"2015", "2017"}, resp.Years)
	assert.Equal(t, "2017", resp.Default)
}

func TestFillsEndpoint(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/api/fills?year=2015")
	require.Equal(t, http.StatusOK, w.Code)
	var p render.Paint
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	assert.Equal(t, "2015", p.Year)
	assert.Equal(t, map[string]string{"E14000530": "#0087DC"}, p.Fills)
	assert.Equal(t, []string{"E14000531", "N06000001"}, p.Unset)

	w = get(t, r, "/api/fills?year=2019")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestConstituencyEndpoint(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/api/constituencies/E14000530")
	require.Equal(t, http.StatusOK, w.Code)
	var rec results.Record
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rec))
	assert.Equal(t, "Leo Docherty", rec.Summary.WinningCandidate)

	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/constituencies/N06000001").Code)
}

func TestPanelEndpoint(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/api/constituencies/E14000530/panel")
	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "Aldershot", doc.Find("#constituencyName").Text())
	assert.Equal(t, "Electorate: 76,205", doc.Find("#electorate").Text())
	assert.Equal(t, 2, doc.Find("#svgVotes rect.bar").Length())
}

func TestMapSVGEndpoint(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/map.svg")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, 3, strings.Count(w.Body.String(), "<path "))
}

func TestGeoJSONEndpoint(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/api/features.geojson?year=2017")
	require.Equal(t, http.StatusOK, w.Code)
	fc, err := geojson.UnmarshalFeatureCollection(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, "#0087DC", fc.Features[0].Properties["color"])
	assert.Equal(t, aldershotLink, fc.Features[0].Properties["link"])
	_, ok := fc.Features[2].Properties["color"]
	assert.False(t, ok)
}

func TestSummaryEndpoints(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/summary")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Seats won, 2017")

	w = get(t, r, "/api/summary?year=2017")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"constituencies":2`)
}

func types(resps []sessionResponse) []string {
	out := make([]string, len(resps))
	for i, r := range resps {
		out[i] = r.Type
	}
	return out
}

func TestSessionHandle(t *testing.T) {
	d := setupTest(t)
	s, err := d.newSession("")
	require.NoError(t, err)

	resps := s.handle(sessionRequest{Type: "enter", ID: "E14000530"})
	require.Equal(t, []string{"highlight", "panel"}, types(resps))
	assert.Contains(t, resps[1].HTML, "Winner: Leo Docherty")

	// Unmatched shapes highlight but leave the panel alone.
	resps = s.handle(sessionRequest{Type: "enter", ID: "N06000001"})
	assert.Equal(t, []string{"unhighlight", "highlight"}, types(resps))

	assert.Equal(t, []string{"unhighlight"}, types(s.handle(sessionRequest{Type: "exit", ID: "N06000001"})))

	resps = s.handle(sessionRequest{Type: "click", ID: "E14000530"})
	require.Equal(t, []string{"open"}, types(resps))
	assert.Equal(t, aldershotLink, resps[0].URL)

	assert.Empty(t, s.handle(sessionRequest{Type: "click", ID: "E14000531"}))
	assert.Empty(t, s.handle(sessionRequest{Type: "click", ID: "N06000001"}))

	assert.Equal(t, []string{"hide_panel"}, types(s.handle(sessionRequest{Type: "leave"})))

	resps = s.handle(sessionRequest{Type: "switch", Year: "2015"})
	require.Equal(t, []string{"fills"}, types(resps))
	assert.Equal(t, "2015", resps[0].Paint.Year)
	assert.Equal(t, "2015", s.view.Year())

	resps = s.handle(sessionRequest{Type: "switch", Year: "1997"})
	assert.Equal(t, []string{"error"}, types(resps))
	assert.Equal(t, "2015", s.view.Year())

	resps = s.handle(sessionRequest{Type: "switch"})
	require.Equal(t, []string{"fills"}, types(resps))
	assert.Equal(t, "2017", resps[0].Paint.Year, "empty year switches to the default")
	assert.Equal(t, "2017", s.view.Year())

	assert.Equal(t, []string{"error"}, types(s.handle(sessionRequest{Type: "enter"})))
	assert.Equal(t, []string{"error"}, types(s.handle(sessionRequest{Type: "wave"})))
}

func TestSessionKeepsPanelOnLeave(t *testing.T) {
	d := setupTest(t)
	d.opts = interaction.Options{HidePanelOnLeave: false}
	s, err := d.newSession("2017")
	require.NoError(t, err)

	s.handle(sessionRequest{Type: "enter", ID: "E14000530"})
	assert.Equal(t, []string{"unhighlight"}, types(s.handle(sessionRequest{Type: "leave"})))
}

func TestWebSocketSession(t *testing.T) {
	srv := httptest.NewServer(setupRouter(setupTest(t)))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/session?year=2017"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() sessionResponse {
		t.Helper()
		var resp sessionResponse
		require.NoError(t, conn.ReadJSON(&resp))
		return resp
	}

	first := read()
	require.Equal(t, "fills", first.Type)
	assert.NotEmpty(t, first.Session)
	assert.Equal(t, "2017", first.Paint.Year)

	require.NoError(t, conn.WriteJSON(sessionRequest{Type: "enter", ID: "E14000530"}))
	assert.Equal(t, "highlight", read().Type)
	p := read()
	assert.Equal(t, "panel", p.Type)
	assert.Contains(t, p.HTML, "Aldershot")

	// Empty link: nothing is sent, so the next message answers "leave".
	require.NoError(t, conn.WriteJSON(sessionRequest{Type: "click", ID: "E14000531"}))
	require.NoError(t, conn.WriteJSON(sessionRequest{Type: "leave"}))
	assert.Equal(t, "unhighlight", read().Type)
	assert.Equal(t, "hide_panel", read().Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	e := read()
	assert.Equal(t, "error", e.Type)
	assert.Equal(t, "invalid message format", e.Error)
}

func TestWebSocketUnknownYear(t *testing.T) {
	srv := httptest.NewServer(setupRouter(setupTest(t)))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/session?year=1997"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
