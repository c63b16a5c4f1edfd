package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/robinmackenzie/uk-election-map/internal/app"
	"github.com/robinmackenzie/uk-election-map/internal/interaction"
	"github.com/robinmackenzie/uk-election-map/internal/metrics"
	"github.com/robinmackenzie/uk-election-map/internal/panel"
	"github.com/robinmackenzie/uk-election-map/internal/render"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// sessionRequest is the incoming WebSocket message format.
type sessionRequest struct {
	Type string `json:"type"` // enter, exit, click, leave or switch
	ID   string `json:"id,omitempty"`
	Year string `json:"year,omitempty"`
}

// sessionResponse is the outgoing WebSocket message format.
type sessionResponse struct {
	Type    string        `json:"type"` // panel, highlight, unhighlight, hide_panel, open, fills or error
	Session string        `json:"session,omitempty"`
	ID      string        `json:"id,omitempty"`
	HTML    string        `json:"html,omitempty"`
	URL     string        `json:"url,omitempty"`
	Paint   *render.Paint `json:"paint,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// session is one viewer: its active dataset and pointer state.
type session struct {
	id      string
	view    *app.View
	machine *interaction.Machine
	logger  *zap.Logger
}

func (d *Dashboard) newSession(year string) (*session, error) {
	view, err := app.NewView(d.state, year)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &session{
		id:      id,
		view:    view,
		machine: interaction.New(d.opts),
		logger:  d.logger.With(zap.String("session", id)),
	}, nil
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := d.newSession(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	metrics.SessionsActive.Inc()
	defer metrics.SessionsActive.Dec()
	sess.logger.Debug("session opened", zap.String("year", sess.view.Year()))

	paint := render.Repaint(sess.view.Layer(), d.state.Features)
	if !sess.send(conn, sessionResponse{Type: "fills", Session: sess.id, Paint: &paint}) {
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var req sessionRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			if !sess.send(conn, errorResponse("invalid message format")) {
				return
			}
			continue
		}

		for _, resp := range sess.handle(req) {
			if !sess.send(conn, resp) {
				return
			}
		}
	}
}

// handle runs one pointer or switch event and returns the messages to
// send, in order.
func (s *session) handle(req sessionRequest) []sessionResponse {
	switch req.Type {
	case "enter", "exit", "click":
		if req.ID == "" {
			return []sessionResponse{errorResponse("id is required")}
		}
	}

	switch req.Type {
	case "enter":
		return s.apply(s.machine.Enter(req.ID))
	case "exit":
		return s.apply(s.machine.Exit(req.ID))
	case "click":
		return s.apply(s.machine.Click(req.ID, s.view.Link(req.ID)))
	case "leave":
		return s.apply(s.machine.LeaveMap())
	case "switch":
		paint, err := s.view.Switch(s.view.State().ResolveYear(req.Year))
		if err != nil {
			return []sessionResponse{errorResponse(err.Error())}
		}
		return []sessionResponse{{Type: "fills", Paint: &paint}}
	default:
		return []sessionResponse{errorResponse("unknown message type: " + req.Type)}
	}
}

// apply turns machine effects into messages.
func (s *session) apply(effects []interaction.Effect) []sessionResponse {
	out := make([]sessionResponse, 0, len(effects))
	for _, fx := range effects {
		switch fx.Kind {
		case interaction.Highlight, interaction.Unhighlight:
			out = append(out, sessionResponse{Type: string(fx.Kind), ID: fx.FeatureID})
		case interaction.HidePanel:
			out = append(out, sessionResponse{Type: string(fx.Kind)})
		case interaction.ShowPanel:
			rec, ok := s.view.Record(fx.FeatureID)
			if !ok {
				// Unmatched shapes keep whatever panel was showing.
				continue
			}
			html, err := panel.Render(rec)
			if err != nil {
				s.logger.Error("rendering panel", zap.String("id", fx.FeatureID), zap.Error(err))
				out = append(out, errorResponse("rendering panel failed"))
				continue
			}
			metrics.PanelRendersTotal.Inc()
			out = append(out, sessionResponse{Type: "panel", ID: fx.FeatureID, HTML: string(html)})
		case interaction.OpenLink:
			metrics.LinkOpensTotal.Inc()
			out = append(out, sessionResponse{Type: string(fx.Kind), ID: fx.FeatureID, URL: fx.URL})
		}
	}
	return out
}

func (s *session) send(conn *websocket.Conn, resp sessionResponse) bool {
	if err := conn.WriteJSON(resp); err != nil {
		s.logger.Warn("websocket write", zap.Error(err))
		return false
	}
	return true
}

func errorResponse(message string) sessionResponse {
	return sessionResponse{Type: "error", Error: message}
}
