// Package ephemeris defines the time coordinate and the oracle contracts the
// rest of Stellium is written against, plus a built-in analytic
// implementation of both oracles. The search engine and chart store depend
// only on the contracts: deterministic, continuous in time, velocity sign
// included for retrograde detection.
package ephemeris

import (
	"github.com/stelliumhq/stellium/astro"
)

// Position is the state of a body at one instant as seen from Earth.
type Position struct {
	// Longitude is the ecliptic longitude in degrees, [0, 360).
	Longitude float64
	// Latitude is the ecliptic latitude in degrees.
	Latitude float64
	// Distance is the geocentric distance in AU.
	Distance float64
	// SpeedLongitude is the rate of change of longitude in degrees per day;
	// negative means apparent retrograde motion.
	SpeedLongitude float64
	SpeedLatitude  float64
	SpeedDistance  float64
}

// Retrograde reports whether the body is in apparent retrograde motion at
// this position. Bodies that cannot retrograde always report false,
// whatever the velocity says.
func (p Position) Retrograde(body astro.Body) bool {
	return body.CanRetrograde() && p.SpeedLongitude < 0
}

// ZodiacPosition converts the longitude to a sign-relative position.
func (p Position) ZodiacPosition() astro.ZodiacPosition {
	return astro.PositionFromLongitude(p.Longitude)
}

// Oracle supplies body positions. Implementations must be deterministic and
// continuous in time: a failure indicates an out-of-range instant or an
// internal data error, never a transient fault, so callers do not retry.
type Oracle interface {
	Position(body astro.Body, jd float64) (Position, error)
}

// HousePositions is the output of a house calculation.
type HousePositions struct {
	// Ascendant is the 1st house cusp longitude.
	Ascendant float64
	// Midheaven is the 10th house cusp longitude.
	Midheaven float64
	// Cusps holds the 12 house cusp longitudes, index 0 = 1st house. The
	// sequence is cyclic, not numerically increasing: arcs may straddle the
	// 0°/360° seam.
	Cusps [12]float64
	// ARMC is the right ascension of the midheaven (local sidereal time in
	// degrees).
	ARMC float64
	// Vertex is the vertex point longitude.
	Vertex float64
}

// HouseOracle supplies house cusps for an instant and geographic location.
type HouseOracle interface {
	Houses(jd, latitude, longitude float64, system HouseSystem) (HousePositions, error)
}

// SunMoonAngle returns the Moon-minus-Sun elongation normalized to
// [0, 360): 0° at new moon, 180° at full moon.
func SunMoonAngle(o Oracle, jd float64) (float64, error) {
	sun, err := o.Position(astro.Sun, jd)
	if err != nil {
		return 0, err
	}
	moon, err := o.Position(astro.Moon, jd)
	if err != nil {
		return 0, err
	}
	return astro.Wrap(moon.Longitude - sun.Longitude), nil
}

// HouseOf returns the house number (1-12) containing an ecliptic longitude.
// Containment is cyclic: a house arc runs from its cusp forward to the next
// cusp, possibly across the 0°/360° seam, so the test uses forward angular
// offsets rather than numeric comparison.
func HouseOf(longitude float64, cusps [12]float64) int {
	lon := astro.Wrap(longitude)
	for i := 0; i < 12; i++ {
		start := astro.Wrap(cusps[i])
		end := astro.Wrap(cusps[(i+1)%12])
		span := astro.Wrap(end - start)
		offset := astro.Wrap(lon - start)
		if offset < span {
			return i + 1
		}
	}
	// Degenerate cusp table (all cusps equal); callers never build one, but
	// the function still has to answer.
	return 1
}
