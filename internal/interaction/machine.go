// Package interaction tracks pointer state for one map viewer and decides
// which visual effects each pointer event causes.
//
// Hover state (idle or hovering one feature) and panel visibility are
// independent. Entering a feature shows the panel; exiting a feature does
// not hide it. The panel is hidden only when the pointer leaves the map
// area and the machine was built with HidePanelOnLeave.
package interaction

// EffectKind names a visual change the transport must apply.
type EffectKind string

const (
	Highlight   EffectKind = "highlight"
	Unhighlight EffectKind = "unhighlight"
	ShowPanel   EffectKind = "show_panel"
	HidePanel   EffectKind = "hide_panel"
	OpenLink    EffectKind = "open"
)

// Effect is one visual change. FeatureID is set for highlight, unhighlight
// and panel effects; URL for OpenLink.
type Effect struct {
	Kind      EffectKind
	FeatureID string
	URL       string
}

// State is a snapshot of the machine.
type State struct {
	Hovering     string
	PanelVisible bool
}

// Idle reports whether no feature is hovered.
func (s State) Idle() bool { return s.Hovering == "" }

// Options configures a Machine.
type Options struct {
	HidePanelOnLeave bool
}

// Machine is the interaction state of a single viewer. It is not safe for
// concurrent use; each viewer owns one.
type Machine struct {
	opts  Options
	state State
}

// New returns an idle machine with the panel hidden.
func New(opts Options) *Machine {
	return &Machine{opts: opts}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Enter handles the pointer entering a feature.
func (m *Machine) Enter(id string) []Effect {
	var fx []Effect
	if m.state.Hovering != "" && m.state.Hovering != id {
		fx = append(fx, Effect{Kind: Unhighlight, FeatureID: m.state.Hovering})
	}
	m.state.Hovering = id
	m.state.PanelVisible = true
	return append(fx,
		Effect{Kind: Highlight, FeatureID: id},
		Effect{Kind: ShowPanel, FeatureID: id},
	)
}

// Exit handles the pointer leaving a feature. The panel stays as it is.
func (m *Machine) Exit(id string) []Effect {
	if m.state.Hovering == id {
		m.state.Hovering = ""
	}
	return []Effect{{Kind: Unhighlight, FeatureID: id}}
}

// Click handles a click on a feature whose profile link is link. Only a
// non-empty link opens anything. Clicks do not change hover state.
func (m *Machine) Click(id, link string) []Effect {
	if link == "" {
		return nil
	}
	return []Effect{{Kind: OpenLink, FeatureID: id, URL: link}}
}

// LeaveMap handles the pointer leaving the whole map area.
func (m *Machine) LeaveMap() []Effect {
	var fx []Effect
	if m.state.Hovering != "" {
		fx = append(fx, Effect{Kind: Unhighlight, FeatureID: m.state.Hovering})
		m.state.Hovering = ""
	}
	if m.opts.HidePanelOnLeave && m.state.PanelVisible {
		m.state.PanelVisible = false
		fx = append(fx, Effect{Kind: HidePanel})
	}
	return fx
}
