package topology

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Decode reads a TopoJSON document.
func Decode(r io.Reader) (*Topology, error) {
	var t Topology
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding topology: %w", err)
	}
	if !strings.EqualFold(t.Type, "Topology") {
		return nil, fmt.Errorf("decoding topology: unexpected type %q", t.Type)
	}
	return &t, nil
}

// Features converts the named object into a feature collection.
// A GeometryCollection yields one feature per member geometry; any other
// object type yields a single feature.
func (t *Topology) Features(opts Options) (*Collection, error) {
	obj, ok := t.Objects[opts.Object]
	if !ok || obj == nil {
		return nil, fmt.Errorf("topology has no object %q", opts.Object)
	}

	arcs := t.absoluteArcs()
	members := []*Object{obj}
	if strings.EqualFold(obj.Type, "GeometryCollection") {
		members = obj.Geometries
	}

	c := &Collection{
		Object:   opts.Object,
		Features: make([]Feature, 0, len(members)),
		Bound:    orb.Bound{Min: orb.Point{180, 90}, Max: orb.Point{-180, -90}},
		index:    make(map[string]int, len(members)),
	}
	for i, g := range members {
		if g == nil {
			return nil, fmt.Errorf("object %q: geometry %d is null", opts.Object, i)
		}
		geom, err := geometry(g, arcs)
		if err != nil {
			return nil, err
		}
		f := Feature{
			ID:         featureID(g, opts.IDProperty),
			Name:       stringProp(g.Properties, opts.NameProperty),
			Properties: g.Properties,
			Geometry:   geom,
		}
		if len(geom) > 0 {
			c.Bound = c.Bound.Union(geom.Bound())
		}
		if _, dup := c.index[f.ID]; !dup {
			c.index[f.ID] = len(c.Features)
		}
		c.Features = append(c.Features, f)
	}
	return c, nil
}

// absoluteArcs resolves quantized, delta-encoded arcs into positions.
func (t *Topology) absoluteArcs() [][]orb.Point {
	out := make([][]orb.Point, len(t.Arcs))
	for i, arc := range t.Arcs {
		pts := make([]orb.Point, 0, len(arc))
		var x, y float64
		for _, pos := range arc {
			if len(pos) < 2 {
				continue
			}
			if t.Transform == nil {
				pts = append(pts, orb.Point{pos[0], pos[1]})
				continue
			}
			x += pos[0]
			y += pos[1]
			pts = append(pts, orb.Point{
				x*t.Transform.Scale[0] + t.Transform.Translate[0],
				y*t.Transform.Scale[1] + t.Transform.Translate[1],
			})
		}
		out[i] = pts
	}
	return out
}

func geometry(g *Object, arcs [][]orb.Point) (orb.MultiPolygon, error) {
	switch strings.ToLower(g.Type) {
	case "polygon":
		var idx [][]int
		if err := json.Unmarshal(g.Arcs, &idx); err != nil {
			return nil, fmt.Errorf("polygon arcs: %w", err)
		}
		poly, err := polygon(idx, arcs)
		if err != nil {
			return nil, err
		}
		return orb.MultiPolygon{poly}, nil
	case "multipolygon":
		var idx [][][]int
		if err := json.Unmarshal(g.Arcs, &idx); err != nil {
			return nil, fmt.Errorf("multipolygon arcs: %w", err)
		}
		mp := make(orb.MultiPolygon, 0, len(idx))
		for _, p := range idx {
			poly, err := polygon(p, arcs)
			if err != nil {
				return nil, err
			}
			mp = append(mp, poly)
		}
		return mp, nil
	default:
		return orb.MultiPolygon{}, nil
	}
}

func polygon(rings [][]int, arcs [][]orb.Point) (orb.Polygon, error) {
	poly := make(orb.Polygon, 0, len(rings))
	for _, r := range rings {
		ring, err := stitch(r, arcs)
		if err != nil {
			return nil, err
		}
		poly = append(poly, ring)
	}
	return poly, nil
}

// stitch joins arcs into one ring. Consecutive arcs share an endpoint, so
// the first position of every arc after the first is dropped. A negative
// index ~i walks arc i backwards.
func stitch(indices []int, arcs [][]orb.Point) (orb.Ring, error) {
	var ring orb.Ring
	for k, i := range indices {
		reversed := i < 0
		if reversed {
			i = ^i
		}
		if i >= len(arcs) {
			return nil, fmt.Errorf("arc index %d out of range (%d arcs)", i, len(arcs))
		}
		src := arcs[i]
		pts := make([]orb.Point, len(src))
		copy(pts, src)
		if reversed {
			for a, b := 0, len(pts)-1; a < b; a, b = a+1, b-1 {
				pts[a], pts[b] = pts[b], pts[a]
			}
		}
		if k > 0 && len(pts) > 0 {
			pts = pts[1:]
		}
		ring = append(ring, pts...)
	}
	return ring, nil
}

func featureID(g *Object, prop string) string {
	if id := stringProp(g.Properties, prop); id != "" {
		return id
	}
	switch v := g.ID.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func stringProp(props map[string]any, key string) string {
	if props == nil || key == "" {
		return ""
	}
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
