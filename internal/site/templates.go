package site

const pageTemplate = `<!DOCTYPE html>
<html lang="en-GB">
<head>
<meta charset="utf-8">
<title>UK general election {{.Year}}</title>
<link rel="stylesheet" href="style.css">
</head>
<body>
<nav class="toolbar">
{{- range .Years}}
<a class="btn result-button {{if eq . $.Year}}btn-primary{{else}}btn-default{{end}}" data-resultsyear="{{.}}" href="{{.}}.html">{{.}}</a>
{{- end}}
{{- if .HasAbout}}
<a class="btn btn-default" href="about.html">About</a>
{{- end}}
</nav>
<div id="map" data-year="{{.Year}}" data-hide-panel-on-leave="{{.HidePanelOnLeave}}">
{{.Map}}
<div id="panel-host" class="panel-host hide"></div>
</div>
{{- if .PieFile}}
<section class="vote-share">
<img src="{{.PieFile}}" alt="Vote share {{.Year}}">
</section>
{{- end}}
<div id="panels" hidden>
{{- range .Panels}}
{{.}}
{{- end}}
</div>
<script type="application/json" id="links">{{.Links}}</script>
<script src="script.js"></script>
</body>
</html>
`

const aboutTemplate = `<!DOCTYPE html>
<html lang="en-GB">
<head>
<meta charset="utf-8">
<title>About this map</title>
<link rel="stylesheet" href="style.css">
</head>
<body>
<nav class="toolbar"><a class="btn btn-default" href="{{.Default}}">Back to the map</a></nav>
<article class="notes">
{{.Content}}
</article>
</body>
</html>
`

const cssContent = `
body { font-family: sans-serif; margin: 0; }
.toolbar { padding: 8px; }
.vote-share { padding: 8px; }
.notes { max-width: 760px; margin: 0 auto; padding: 16px; line-height: 1.5; }
`

// jsContent handles hover and click locally using the panels rendered
// into the page.
const jsContent = `
(function () {
  var root = document.getElementById("map");
  var layer = document.querySelector("#map-svg g.features");
  var host = document.getElementById("panel-host");
  var links = JSON.parse(document.getElementById("links").textContent);
  var hideOnLeave = root.dataset.hidePanelOnLeave === "true";
  var hovering = null;

  function shapeOf(e) {
    return e.target.closest("path[data-id]");
  }

  layer.addEventListener("mouseover", function (e) {
    var p = shapeOf(e);
    if (!p) return;
    if (hovering && hovering !== p) hovering.classList.remove("highlight");
    hovering = p;
    p.classList.add("highlight");
    var src = document.querySelector('#panels .infoPanel[data-id="' + CSS.escape(p.dataset.id) + '"]');
    if (src) {
      host.innerHTML = src.outerHTML;
      host.classList.remove("hide");
    }
  });
  layer.addEventListener("mouseout", function (e) {
    var p = shapeOf(e);
    if (!p) return;
    p.classList.remove("highlight");
    if (hovering === p) hovering = null;
  });
  layer.addEventListener("click", function (e) {
    var p = shapeOf(e);
    if (!p || electionMap.dragged()) return;
    var link = links[p.dataset.id];
    if (link) {
      var w = window.open(link, "_blank");
      if (w) w.focus();
    }
  });
  document.getElementById("map-svg").addEventListener("mouseleave", function () {
    if (hovering) hovering.classList.remove("highlight");
    hovering = null;
    if (hideOnLeave) host.classList.add("hide");
  });
})();
`
