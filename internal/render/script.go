package render

import _ "embed"

//go:embed zoom.js
var zoomJS string

// ZoomScript returns the pan and zoom script for the map SVG. The zoom
// extent is read from the SVG's data-min-zoom and data-max-zoom.
func ZoomScript() string { return zoomJS }
