package render

import (
	"math"

	"github.com/paulmach/orb"
)

const radians = math.Pi / 180

// Projection is a spherical Mercator projection parameterised like
// d3.geoMercator: points are rotated, projected, scaled, and translated so
// that Center lands on Translate.
type Projection struct {
	Scale     float64
	Center    [2]float64 // lon, lat in degrees
	Rotate    [2]float64 // lambda, phi in degrees
	Translate [2]float64
}

// Project maps a lon/lat position to screen coordinates.
func (p Projection) Project(pt orb.Point) (float64, float64) {
	lambda, phi := p.rotate(pt[0]*radians, pt[1]*radians)
	x, y := mercator(lambda, phi)
	cx, cy := mercator(p.Center[0]*radians, p.Center[1]*radians)
	return p.Translate[0] + p.Scale*(x-cx), p.Translate[1] - p.Scale*(y-cy)
}

func (p Projection) rotate(lambda, phi float64) (float64, float64) {
	if dl := p.Rotate[0] * radians; dl != 0 {
		lambda += dl
		if lambda > math.Pi {
			lambda -= 2 * math.Pi
		} else if lambda < -math.Pi {
			lambda += 2 * math.Pi
		}
	}
	dp := p.Rotate[1] * radians
	if dp == 0 {
		return lambda, phi
	}
	cosDp, sinDp := math.Cos(dp), math.Sin(dp)
	cosPhi := math.Cos(phi)
	x := math.Cos(lambda) * cosPhi
	y := math.Sin(lambda) * cosPhi
	z := math.Sin(phi)
	k := z*cosDp + x*sinDp
	return math.Atan2(y, x*cosDp-z*sinDp), math.Asin(k)
}

// mercator is the raw projection; latitudes are clamped short of the poles.
func mercator(lambda, phi float64) (float64, float64) {
	const limit = math.Pi/2 - 1e-6
	phi = math.Max(-limit, math.Min(limit, phi))
	return lambda, math.Log(math.Tan((math.Pi/2 + phi) / 2))
}
