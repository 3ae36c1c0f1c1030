// Package search locates astronomical events in time: sign ingresses,
// retrograde stations and lunar phase crossings. Every search is the same
// shape — a coarse forward scan over a boolean condition sampled through a
// position oracle, then bisection refinement of the bracketing interval —
// and runs purely in the Julian-day coordinate. The package holds no state
// and is safe for concurrent use over a re-entrant oracle.
package search

import (
	"github.com/stelliumhq/stellium/astro"
	"github.com/stelliumhq/stellium/ephemeris"
	"github.com/stelliumhq/stellium/errors"
)

// condition samples a boolean signal at an instant. It must be
// deterministic; an error aborts the whole search.
type condition func(jd float64) (bool, error)

// findCrossing scans forward from start in fixed steps until the condition
// differs from its value at start, then bisects the bracketing interval
// down to tol and returns its high end. found is false when the horizon is
// exhausted without a transition; that is a normal outcome, not an error.
func findCrossing(cond condition, start, step, horizon, tol float64) (jd float64, found bool, err error) {
	initial, err := cond(start)
	if err != nil {
		return 0, false, err
	}

	end := start + horizon
	for cur := start + step; cur-step < end; cur += step {
		state, err := cond(cur)
		if err != nil {
			return 0, false, err
		}
		if state != initial {
			high, err := bisect(cond, initial, cur-step, cur, tol)
			if err != nil {
				return 0, false, err
			}
			return high, true, nil
		}
	}
	return 0, false, nil
}

// bisect narrows [low, high], where the condition equals before at low and
// differs at high, until the interval is below tol. Returns the high end,
// the first instant known to be past the crossing.
func bisect(cond condition, before bool, low, high, tol float64) (float64, error) {
	for high-low > tol {
		mid := (low + high) / 2
		state, err := cond(mid)
		if err != nil {
			return 0, err
		}
		if state == before {
			low = mid
		} else {
			high = mid
		}
	}
	return high, nil
}

// Coarse step sizes in days. Fast movers need small steps so a crossing
// cannot be skipped inside one step.
func ingressStep(body astro.Body) float64 {
	switch body {
	case astro.Moon:
		return 0.5
	case astro.Sun, astro.Mercury, astro.Venus:
		return 1
	case astro.Mars:
		return 2
	default:
		return 5
	}
}

// Bisection tolerances in days, per signal. Sign changes are steep near the
// crossing so they refine tightly; velocity near a station is nearly flat,
// so a looser tolerance is honest.
const (
	ingressTolerance = 0.001 // ~1.4 minutes
	stationTolerance = 0.01  // ~15 minutes
	phaseTolerance   = 0.001
)

// Ingress is a sign-boundary crossing.
type Ingress struct {
	// JD is the crossing instant.
	JD float64
	// Sign is the sign being entered.
	Sign astro.ZodiacSign
}

// NextSignIngress finds the first instant at or after start when the body's
// longitude enters a new zodiac sign, within horizonDays. found is false
// when no ingress occurs inside the horizon.
func NextSignIngress(o ephemeris.Oracle, body astro.Body, start, horizonDays float64) (Ingress, bool, error) {
	startPos, err := o.Position(body, start)
	if err != nil {
		return Ingress{}, false, errors.Wrapf(err, "sign ingress search for %s", body)
	}
	startSign := astro.SignFromLongitude(startPos.Longitude)

	inStartSign := func(jd float64) (bool, error) {
		pos, err := o.Position(body, jd)
		if err != nil {
			return false, err
		}
		return astro.SignFromLongitude(pos.Longitude) == startSign, nil
	}

	jd, found, err := findCrossing(inStartSign, start, ingressStep(body), horizonDays, ingressTolerance)
	if err != nil {
		return Ingress{}, false, errors.Wrapf(err, "sign ingress search for %s", body)
	}
	if !found {
		return Ingress{}, false, nil
	}

	pos, err := o.Position(body, jd)
	if err != nil {
		return Ingress{}, false, errors.Wrapf(err, "sign ingress search for %s", body)
	}
	return Ingress{JD: jd, Sign: astro.SignFromLongitude(pos.Longitude)}, true, nil
}

// Station is a reversal of apparent motion.
type Station struct {
	// JD is the station instant.
	JD float64
	// Retrograde is the motion state after the station: true when the body
	// is entering retrograde, false when returning direct.
	Retrograde bool
}

// NextStation finds the first instant at or after start when the body's
// apparent motion reverses, within horizonDays. Bodies that never
// retrograde return found=false immediately, without touching the oracle.
func NextStation(o ephemeris.Oracle, body astro.Body, start, horizonDays float64) (Station, bool, error) {
	if !body.CanRetrograde() {
		return Station{}, false, nil
	}

	startPos, err := o.Position(body, start)
	if err != nil {
		return Station{}, false, errors.Wrapf(err, "station search for %s", body)
	}
	startRetro := startPos.Retrograde(body)

	sameMotion := func(jd float64) (bool, error) {
		pos, err := o.Position(body, jd)
		if err != nil {
			return false, err
		}
		return pos.Retrograde(body) == startRetro, nil
	}

	jd, found, err := findCrossing(sameMotion, start, 1, horizonDays, stationTolerance)
	if err != nil {
		return Station{}, false, errors.Wrapf(err, "station search for %s", body)
	}
	if !found {
		return Station{}, false, nil
	}
	return Station{JD: jd, Retrograde: !startRetro}, true, nil
}
