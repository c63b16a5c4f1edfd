package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnterShowsPanel(t *testing.T) {
	m := New(Options{})
	assert.True(t, m.State().Idle())
	assert.False(t, m.State().PanelVisible)

	fx := m.Enter("A")
	assert.Equal(t, []Effect{
		{Kind: Highlight, FeatureID: "A"},
		{Kind: ShowPanel, FeatureID: "A"},
	}, fx)
	assert.Equal(t, State{Hovering: "A", PanelVisible: true}, m.State())
}

func TestExitKeepsPanel(t *testing.T) {
	m := New(Options{})
	m.Enter("A")

	fx := m.Exit("A")
	assert.Equal(t, []Effect{{Kind: Unhighlight, FeatureID: "A"}}, fx)
	assert.True(t, m.State().Idle())
	assert.True(t, m.State().PanelVisible)
}

func TestEnterWithoutExitUnhighlightsPrevious(t *testing.T) {
	m := New(Options{})
	m.Enter("A")

	fx := m.Enter("B")
	assert.Equal(t, Effect{Kind: Unhighlight, FeatureID: "A"}, fx[0])
	assert.Equal(t, "B", m.State().Hovering)
}

func TestStaleExitIgnored(t *testing.T) {
	m := New(Options{})
	m.Enter("A")
	m.Enter("B")
	m.Exit("A")
	assert.Equal(t, "B", m.State().Hovering)
}

func TestClick(t *testing.T) {
	m := New(Options{})

	assert.Empty(t, m.Click("A", ""))
	assert.Equal(t, []Effect{{Kind: OpenLink, FeatureID: "A", URL: "https://example.org/mp"}},
		m.Click("A", "https://example.org/mp"))
	assert.True(t, m.State().Idle(), "click does not touch hover state")
}

func TestLeaveMap(t *testing.T) {
	keep := New(Options{})
	keep.Enter("A")
	fx := keep.LeaveMap()
	assert.Equal(t, []Effect{{Kind: Unhighlight, FeatureID: "A"}}, fx)
	assert.True(t, keep.State().PanelVisible)

	hide := New(Options{HidePanelOnLeave: true})
	hide.Enter("A")
	hide.Exit("A")
	fx = hide.LeaveMap()
	assert.Equal(t, []Effect{{Kind: HidePanel}}, fx)
	assert.False(t, hide.State().PanelVisible)

	assert.Empty(t, hide.LeaveMap(), "already hidden")
}
