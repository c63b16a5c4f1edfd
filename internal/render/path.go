package render

import (
	"strconv"

	"github.com/paulmach/orb"
)

// PathData builds an SVG path "d" attribute for a multipolygon: one
// closed subpath per ring.
func PathData(mp orb.MultiPolygon, p Projection) string {
	buf := make([]byte, 0, 64)
	for _, poly := range mp {
		for _, ring := range poly {
			if len(ring) == 0 {
				continue
			}
			for i, pt := range ring {
				if i == 0 {
					buf = append(buf, 'M')
				} else {
					buf = append(buf, 'L')
				}
				x, y := p.Project(pt)
				buf = strconv.AppendFloat(buf, x, 'f', 2, 64)
				buf = append(buf, ',')
				buf = strconv.AppendFloat(buf, y, 'f', 2, 64)
			}
			buf = append(buf, 'Z')
		}
	}
	return string(buf)
}
