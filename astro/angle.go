package astro

import "math"

// Wrap normalizes an angle in degrees to the range [0, 360).
func Wrap(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// AngularDistance returns the shortest arc between two ecliptic longitudes,
// in the range [0, 180]. Raw numeric difference is wrong across the 0°/360°
// seam; always go through this helper.
func AngularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
