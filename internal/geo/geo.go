// Package geo holds the distance approximation used for place lookups.
package geo

import "math"

// EarthRadiusMeters is the mean earth radius.
const EarthRadiusMeters = 6371000.0

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the approximate distance in meters between a and b using the
// equirectangular projection. It is accurate for the short distances used as
// lookup thresholds and degrades over long distances or near the poles.
func Distance(a, b Point) float64 {
	lat1, lon1 := radians(a.Lat), radians(a.Lon)
	lat2, lon2 := radians(b.Lat), radians(b.Lon)

	x := (lon2 - lon1) * math.Cos(0.5*(lat1+lat2))
	y := lat2 - lat1
	return EarthRadiusMeters * math.Sqrt(x*x+y*y)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
