package render

import "fmt"

// StyleSheet returns the CSS shared by the live page and the static site.
func StyleSheet() string {
	return fmt.Sprintf(`#map { position: relative; }
#map-svg { cursor: grab; }
#map-svg .features path {
  stroke: %[1]s;
  stroke-width: %[2]s;
  vector-effect: non-scaling-stroke;
  opacity: %[3]g;
  transition: opacity %[6]dms, stroke %[6]dms;
}
#map-svg .features path.highlight {
  stroke: %[4]s;
  opacity: %[5]g;
}
.infoPanel { position: absolute; top: 10px; right: 10px; width: 260px; padding: 8px 12px;
  background: rgba(255,255,255,0.95); border: 1px solid #ccc; border-radius: 4px; }
.infoPanel.hide, .panel-host.hide { display: none; }
.votes-chart text { font-size: 10px; font-family: sans-serif; }
.btn { padding: 4px 10px; border: 1px solid #ccc; border-radius: 3px; background: #fff; cursor: pointer; }
.btn-primary { background: #337ab7; border-color: #2e6da4; color: #fff; }
`, Stroke, StrokeWidth, Opacity, HighlightStroke, HighlightOpacity, TransitionMS)
}
