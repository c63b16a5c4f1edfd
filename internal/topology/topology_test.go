package topology

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two unit squares sharing the edge x=1, plus a multipolygon made of both.
const plainDoc = `{
  "type": "Topology",
  "arcs": [
    [[1,0],[1,1]],
    [[1,1],[0,1],[0,0],[1,0]],
    [[1,0],[2,0],[2,1],[1,1]]
  ],
  "objects": {
    "uk": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Polygon", "arcs": [[0,1]], "properties": {"PCON13CD": "A01", "PCON13NM": "West"}},
        {"type": "Polygon", "arcs": [[2,-1]], "properties": {"PCON13CD": "B02", "PCON13NM": "East"}},
        {"type": "MultiPolygon", "arcs": [[[0,1]],[[2,-1]]], "id": "C03"},
        {"type": "Point", "coordinates": [0,0], "properties": {"PCON13CD": "D04"}}
      ]
    }
  }
}`

func decodeString(t *testing.T, doc string) *Topology {
	t.Helper()
	topo, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return topo
}

func TestFeaturesStitchesArcs(t *testing.T) {
	c, err := decodeString(t, plainDoc).Features(DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 4, c.Len())

	west := c.Features[0]
	assert.Equal(t, "A01", west.ID)
	assert.Equal(t, "West", west.Name)
	require.Len(t, west.Geometry, 1)
	assert.Equal(t, orb.Ring{{1, 0}, {1, 1}, {0, 1}, {0, 0}, {1, 0}}, west.Geometry[0][0])

	east := c.Features[1]
	assert.Equal(t, orb.Ring{{1, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 0}}, east.Geometry[0][0])
	assert.True(t, east.Geometry[0][0].Closed())
}

func TestFeaturesMultiPolygonAndFallbackID(t *testing.T) {
	c, err := decodeString(t, plainDoc).Features(DefaultOptions())
	require.NoError(t, err)

	multi, ok := c.ByID("C03")
	require.True(t, ok)
	assert.Len(t, multi.Geometry, 2)

	point, ok := c.ByID("D04")
	require.True(t, ok)
	assert.Empty(t, point.Geometry)

	assert.Equal(t, []string{"A01", "B02", "C03", "D04"}, c.IDs())
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 1}}, c.Bound)
}

func TestFeaturesQuantized(t *testing.T) {
	doc := `{
	  "type": "Topology",
	  "transform": {"scale": [0.5, 0.5], "translate": [10, 50]},
	  "arcs": [[[2,0],[0,2],[-2,0],[0,-2]]],
	  "objects": {"uk": {"type": "GeometryCollection", "geometries": [
	    {"type": "Polygon", "arcs": [[0]], "properties": {"PCON13CD": "Q"}}
	  ]}}
	}`
	c, err := decodeString(t, doc).Features(DefaultOptions())
	require.NoError(t, err)

	f, ok := c.ByID("Q")
	require.True(t, ok)
	assert.Equal(t, orb.Ring{{11, 50}, {11, 51}, {10, 51}, {10, 50}}, f.Geometry[0][0])
}

func TestFeaturesErrors(t *testing.T) {
	topo := decodeString(t, plainDoc)

	_, err := topo.Features(Options{Object: "missing"})
	require.Error(t, err)

	bad := decodeString(t, `{"type":"Topology","arcs":[],"objects":{"uk":{"type":"Polygon","arcs":[[5]]}}}`)
	_, err = bad.Features(DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	withNull := decodeString(t, `{"type":"Topology","arcs":[[[0,0],[1,0],[0,1],[0,0]]],
	  "objects":{"uk":{"type":"GeometryCollection","geometries":[{"type":"Polygon","arcs":[[0]]},null]}}}`)
	_, err = withNull.Features(DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geometry 1 is null")

	_, err = Decode(strings.NewReader(`{"type":"FeatureCollection"}`))
	require.Error(t, err)
}

func TestGeoJSONExport(t *testing.T) {
	c, err := decodeString(t, plainDoc).Features(DefaultOptions())
	require.NoError(t, err)

	fc := c.GeoJSON(func(f *Feature) map[string]any {
		if f.ID == "A01" {
			return map[string]any{"fill": "#FF0000"}
		}
		return nil
	})
	require.Len(t, fc.Features, 4)
	assert.Equal(t, "#FF0000", fc.Features[0].Properties["fill"])
	assert.Nil(t, fc.Features[1].Properties["fill"])

	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"FeatureCollection"`)
}
