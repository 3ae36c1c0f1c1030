package ephemeris

import (
	"math"

	"github.com/stelliumhq/stellium/astro"
	"github.com/stelliumhq/stellium/errors"
)

// AnalyticOracle is the built-in Position Oracle: truncated analytic series
// for the Sun and Moon, mean Keplerian elements for the planets, and the
// mean lunar node. It needs no external data files. Precision is on the
// order of arcminutes for the luminaries and a fraction of a degree for the
// planets, which is ample for sign-level work and event bracketing.
type AnalyticOracle struct{}

// NewAnalyticOracle returns the built-in analytic oracle.
func NewAnalyticOracle() *AnalyticOracle {
	return &AnalyticOracle{}
}

// Supported range of the analytic series. Outside it the truncated terms
// drift badly, so the oracle refuses rather than degrade silently.
const (
	// MinJD is 1500-01-01 UT.
	MinJD = 2268933.5
	// MaxJD is 2500-01-01 UT.
	MaxJD = 2634166.5
)

const (
	degToRad = math.Pi / 180
	kmPerAU  = 149597870.7
	// speedStep is the finite-difference half-step, in days, used to derive
	// velocities from the longitude series.
	speedStep = 0.01
)

// Position implements Oracle.
func (a *AnalyticOracle) Position(body astro.Body, jd float64) (Position, error) {
	if jd < MinJD || jd > MaxJD {
		return Position{}, errors.Newf(
			"instant %.4f outside supported ephemeris range [%.1f, %.1f]", jd, MinJD, MaxJD)
	}

	lon0, lat0, dist0 := eclipticState(body, jd-speedStep)
	lon1, lat1, dist1 := eclipticState(body, jd)
	lon2, lat2, dist2 := eclipticState(body, jd+speedStep)

	return Position{
		Longitude:      astro.Wrap(lon1),
		Latitude:       lat1,
		Distance:       dist1,
		SpeedLongitude: signedDelta(lon0, lon2) / (2 * speedStep),
		SpeedLatitude:  (lat2 - lat0) / (2 * speedStep),
		SpeedDistance:  (dist2 - dist0) / (2 * speedStep),
	}, nil
}

// signedDelta returns the signed angular change from a to b, in (-180, 180].
func signedDelta(a, b float64) float64 {
	return astro.Wrap(b-a+180) - 180
}

// eclipticState returns geocentric ecliptic longitude (degrees, unwrapped),
// latitude (degrees) and distance (AU) for a body.
func eclipticState(body astro.Body, jd float64) (lon, lat, dist float64) {
	t := (jd - J2000) / 36525

	switch body {
	case astro.Sun:
		return solarState(t)
	case astro.Moon:
		return lunarState(t)
	case astro.NorthNode:
		// Mean ascending node of the lunar orbit. Always retrograde.
		return 125.0445479 - 1934.1362891*t, 0, 0.00257
	default:
		return planetState(body, t)
	}
}

// solarState is the low-precision solar theory from Meeus, truncated to the
// equation-of-center terms.
func solarState(t float64) (lon, lat, dist float64) {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := (357.52911 + 35999.05029*t - 0.0001537*t*t) * degToRad
	e := 0.016708634 - 0.000042037*t

	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)

	nu := m + c*degToRad
	r := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(nu))

	return l0 + c, 0, r
}

// lunarState is the principal-term lunar theory (Meeus ch. 47, largest
// periodic terms only).
func lunarState(t float64) (lon, lat, dist float64) {
	lp := 218.3164477 + 481267.88123421*t // mean longitude
	d := (297.8501921 + 445267.1114034*t) * degToRad
	m := (357.5291092 + 35999.0502909*t) * degToRad
	mp := (134.9633964 + 477198.8675055*t) * degToRad
	f := (93.2720950 + 483202.0175233*t) * degToRad

	lon = lp +
		6.288774*math.Sin(mp) +
		1.274027*math.Sin(2*d-mp) +
		0.658314*math.Sin(2*d) +
		0.213618*math.Sin(2*mp) -
		0.185116*math.Sin(m) -
		0.114332*math.Sin(2*f) +
		0.058793*math.Sin(2*d-2*mp) +
		0.057066*math.Sin(2*d-m-mp) +
		0.053322*math.Sin(2*d+mp) +
		0.045758*math.Sin(2*d-m)

	lat = 5.128122*math.Sin(f) +
		0.280602*math.Sin(mp+f) +
		0.277693*math.Sin(mp-f)

	distKM := 385000.56 - 20905.355*math.Cos(mp) - 3699.111*math.Cos(2*d-mp)
	return lon, lat, distKM / kmPerAU
}

// elements holds mean Keplerian elements at J2000 and per-century rates:
// semi-major axis (AU), eccentricity, inclination, mean longitude,
// longitude of perihelion, longitude of ascending node (degrees).
type elements struct {
	a, aDot       float64
	e, eDot       float64
	i, iDot       float64
	l, lDot       float64
	peri, periDot float64
	node, nodeDot float64
}

// Mean elements for the major planets and the Earth-Moon barycenter,
// valid 1800-2050 and usable well beyond at sign-level precision.
var planetElements = map[astro.Body]elements{
	astro.Mercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	astro.Venus: {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	astro.Mars: {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	astro.Jupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	astro.Saturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	astro.Uranus: {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939,
		313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	astro.Neptune: {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372,
		-55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
	astro.Pluto: {39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818,
		238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482},
}

var earthElements = elements{1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
	100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0, 0}

// planetState yields the geocentric ecliptic state of a planet: the
// heliocentric rectangular position of the planet minus that of the
// Earth-Moon barycenter.
func planetState(body astro.Body, t float64) (lon, lat, dist float64) {
	el, ok := planetElements[body]
	if !ok {
		return 0, 0, 0
	}

	px, py, pz := heliocentric(el, t)
	ex, ey, ez := heliocentric(earthElements, t)

	x := px - ex
	y := py - ey
	z := pz - ez

	lon = math.Atan2(y, x) / degToRad
	dist = math.Sqrt(x*x + y*y + z*z)
	lat = math.Asin(z/dist) / degToRad
	return lon, lat, dist
}

// heliocentric computes J2000-ecliptic rectangular coordinates from mean
// elements via a Kepler solve.
func heliocentric(el elements, t float64) (x, y, z float64) {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	inc := (el.i + el.iDot*t) * degToRad
	l := el.l + el.lDot*t
	peri := el.peri + el.periDot*t
	node := el.node + el.nodeDot*t

	m := astro.Wrap(l-peri) * degToRad
	omega := (peri - node) * degToRad
	nodeRad := node * degToRad

	// Kepler's equation, Newton iteration. Converges in a handful of steps
	// for every solar-system eccentricity.
	ecc := m
	for i := 0; i < 12; i++ {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-9 {
			break
		}
	}

	// In-plane coordinates with the x axis toward perihelion.
	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cosO, sinO := math.Cos(nodeRad), math.Sin(nodeRad)
	cosI, sinI := math.Cos(inc), math.Sin(inc)
	cosW, sinW := math.Cos(omega), math.Sin(omega)

	x = (cosW*cosO-sinW*sinO*cosI)*xp + (-sinW*cosO-cosW*sinO*cosI)*yp
	y = (cosW*sinO+sinW*cosO*cosI)*xp + (-sinW*sinO+cosW*cosO*cosI)*yp
	z = (sinW*sinI)*xp + (cosW*sinI)*yp
	return x, y, z
}
