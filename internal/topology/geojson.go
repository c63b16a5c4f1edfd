package topology

import (
	"github.com/paulmach/orb/geojson"
)

// GeoJSON exports the collection as a FeatureCollection. extra, when set,
// returns additional properties per feature (for example a joined fill).
func (c *Collection) GeoJSON(extra func(f *Feature) map[string]any) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range c.Features {
		f := &c.Features[i]
		gf := geojson.NewFeature(f.Geometry)
		gf.ID = f.ID
		for k, v := range f.Properties {
			gf.Properties[k] = v
		}
		if extra != nil {
			for k, v := range extra(f) {
				gf.Properties[k] = v
			}
		}
		fc.Append(gf)
	}
	return fc
}
