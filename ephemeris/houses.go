package ephemeris

import (
	"math"

	"github.com/stelliumhq/stellium/astro"
	"github.com/stelliumhq/stellium/errors"
)

// HouseSystem selects how the ecliptic is partitioned into houses.
type HouseSystem byte

const (
	WholeSign HouseSystem = 'W'
	Equal     HouseSystem = 'E'
	Porphyry  HouseSystem = 'O'
)

// Name returns the display label for the system.
func (h HouseSystem) Name() string {
	switch h {
	case WholeSign:
		return "Whole Sign"
	case Equal:
		return "Equal"
	case Porphyry:
		return "Porphyry"
	}
	return "Unknown"
}

// ParseHouseSystem maps a config key to a house system.
func ParseHouseSystem(key string) (HouseSystem, error) {
	switch key {
	case "whole_sign", "W":
		return WholeSign, nil
	case "equal", "E":
		return Equal, nil
	case "porphyry", "O":
		return Porphyry, nil
	}
	return 0, errors.Newf("unknown house system %q", key)
}

// Houses implements HouseOracle using local sidereal time and the standard
// ascendant/midheaven formulas, then partitioning per system.
func (a *AnalyticOracle) Houses(jd, latitude, longitude float64, system HouseSystem) (HousePositions, error) {
	if jd < MinJD || jd > MaxJD {
		return HousePositions{}, errors.Newf(
			"instant %.4f outside supported ephemeris range [%.1f, %.1f]", jd, MinJD, MaxJD)
	}
	if math.Abs(latitude) >= 89.9 {
		return HousePositions{}, errors.Newf("latitude %.2f too close to the pole for house calculation", latitude)
	}

	t := (jd - J2000) / 36525

	// Greenwich mean sidereal time, degrees.
	gmst := 280.46061837 + 360.98564736629*(jd-J2000) + 0.000387933*t*t
	// ARMC: local sidereal time, east longitude positive.
	armc := astro.Wrap(gmst + longitude)

	// Mean obliquity of the ecliptic.
	eps := (23.4392911 - 0.0130042*t) * degToRad
	armcRad := armc * degToRad
	latRad := latitude * degToRad

	mc := astro.Wrap(math.Atan2(math.Sin(armcRad), math.Cos(armcRad)*math.Cos(eps)) / degToRad)

	asc := astro.Wrap(math.Atan2(
		-math.Cos(armcRad),
		math.Sin(eps)*math.Tan(latRad)+math.Cos(eps)*math.Sin(armcRad),
	) / degToRad)
	// The ascendant sits on the eastern horizon: in the half-circle of the
	// zodiac that follows the midheaven. Flip when the arctangent picked the
	// descendant branch.
	if astro.Wrap(asc-mc) >= 180 {
		asc = astro.Wrap(asc + 180)
	}

	// Vertex: ascendant formula evaluated at ARMC+180° with the co-latitude.
	vx := armcRad + math.Pi
	colat := (90 - latitude) * degToRad
	vertex := astro.Wrap(math.Atan2(
		-math.Cos(vx),
		math.Sin(eps)*math.Tan(colat)+math.Cos(eps)*math.Sin(vx),
	) / degToRad)

	hp := HousePositions{
		Ascendant: asc,
		Midheaven: mc,
		ARMC:      armc,
		Vertex:    vertex,
	}

	switch system {
	case WholeSign:
		start := astro.SignFromLongitude(asc).StartDegree()
		for i := 0; i < 12; i++ {
			hp.Cusps[i] = astro.Wrap(start + float64(i)*30)
		}
	case Equal:
		for i := 0; i < 12; i++ {
			hp.Cusps[i] = astro.Wrap(asc + float64(i)*30)
		}
	case Porphyry:
		hp.Cusps = porphyryCusps(asc, mc)
	default:
		return HousePositions{}, errors.Newf("unsupported house system %q", string(rune(system)))
	}

	return hp, nil
}

// porphyryCusps trisects each quadrant between the angles. Cusps are built
// for houses 10..12 and 1..3, then the opposite cusps by adding 180°.
func porphyryCusps(asc, mc float64) [12]float64 {
	var cusps [12]float64
	ic := astro.Wrap(mc + 180)

	eastArc := astro.Wrap(asc - mc)  // MC to Asc, houses 11 and 12
	southArc := astro.Wrap(ic - asc) // Asc to IC, houses 2 and 3

	cusps[9] = mc
	cusps[10] = astro.Wrap(mc + eastArc/3)
	cusps[11] = astro.Wrap(mc + 2*eastArc/3)
	cusps[0] = asc
	cusps[1] = astro.Wrap(asc + southArc/3)
	cusps[2] = astro.Wrap(asc + 2*southArc/3)
	for i := 3; i < 9; i++ {
		cusps[i] = astro.Wrap(cusps[(i+6)%12] + 180)
	}
	return cusps
}
