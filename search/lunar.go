package search

import (
	"github.com/stelliumhq/stellium/astro"
	"github.com/stelliumhq/stellium/ephemeris"
	"github.com/stelliumhq/stellium/errors"
)

// Lunar phase searches track the Moon-minus-Sun elongation passing forward
// through a target angle (0° new moon, 180° full moon). The signal is
// monotonically increasing at ~12.2°/day but is sampled modulo 360, so the
// crossing test near 0° cannot be the plain ascending comparison: the
// signal drops discontinuously from the high tail to the low head there.

const phaseStep = 0.5 // days between coarse samples, ~6° of elongation

// seam bounds for the wrap-around test at the 0°/360° discontinuity.
const (
	seamHigh = 350.0
	seamLow  = 10.0
)

// nearSeam reports whether a target angle needs the wrap-around test.
func nearSeam(target float64) bool {
	return target < seamLow || target > seamHigh
}

// NextLunarPhase finds the first instant at or after start when the
// elongation crosses forward through targetAngle, within horizonDays.
// found is false when the horizon is exhausted.
func NextLunarPhase(o ephemeris.Oracle, start, targetAngle, horizonDays float64) (float64, bool, error) {
	target := astro.Wrap(targetAngle)
	end := start + horizonDays

	prev, err := ephemeris.SunMoonAngle(o, start)
	if err != nil {
		return 0, false, errors.Wrap(err, "lunar phase search")
	}

	for jd := start; jd < end; {
		jd += phaseStep
		cur, err := ephemeris.SunMoonAngle(o, jd)
		if err != nil {
			return 0, false, errors.Wrap(err, "lunar phase search")
		}

		// The signal ascends a few degrees per step, so the crossing sits in
		// [jd-step, jd] exactly when the forward arc from prev to target is
		// no longer than the forward arc from prev to cur. Measuring both
		// arcs forward makes the test indifferent to the 0°/360° seam and
		// keeps a start just past the target from matching until the next
		// cycle comes around.
		if astro.Wrap(target-prev) <= astro.Wrap(cur-prev) {
			high, err := bisect(beforePhase(o, target), true, jd-phaseStep, jd, phaseTolerance)
			if err != nil {
				return 0, false, errors.Wrap(err, "lunar phase search")
			}
			return high, true, nil
		}
		prev = cur
	}
	return 0, false, nil
}

// PreviousLunarPhase is the backward-searching variant: the most recent
// crossing of targetAngle at or before start, looking back horizonDays.
// The coarse test mirrors the forward one — stepping backward, the signal
// re-enters the high tail from the low head at the crossing.
func PreviousLunarPhase(o ephemeris.Oracle, start, targetAngle, horizonDays float64) (float64, bool, error) {
	target := astro.Wrap(targetAngle)
	end := start - horizonDays

	prev, err := ephemeris.SunMoonAngle(o, start)
	if err != nil {
		return 0, false, errors.Wrap(err, "lunar phase search")
	}

	for jd := start; jd > end; {
		jd -= phaseStep
		cur, err := ephemeris.SunMoonAngle(o, jd)
		if err != nil {
			return 0, false, errors.Wrap(err, "lunar phase search")
		}

		// cur is the earlier sample here and prev the later one, so the
		// forward-crossing test reads with the roles swapped.
		if astro.Wrap(target-cur) <= astro.Wrap(prev-cur) {
			// jd is just before the crossing in forward time; refine the
			// forward bracket [jd, jd+step] the same way the forward search
			// does.
			high, err := bisect(beforePhase(o, target), true, jd, jd+phaseStep, phaseTolerance)
			if err != nil {
				return 0, false, errors.Wrap(err, "lunar phase search")
			}
			return high, true, nil
		}
		prev = cur
	}
	return 0, false, nil
}

// beforePhase builds the bisection predicate: true while the elongation is
// still approaching the target. Near the seam "approaching" means the high
// half of the cycle, since the plain comparison is meaningless there.
func beforePhase(o ephemeris.Oracle, target float64) condition {
	return func(jd float64) (bool, error) {
		angle, err := ephemeris.SunMoonAngle(o, jd)
		if err != nil {
			return false, err
		}
		if nearSeam(target) {
			return angle > 180, nil
		}
		return angle < target, nil
	}
}

// NextNewMoon finds the next Sun-Moon conjunction.
func NextNewMoon(o ephemeris.Oracle, start, horizonDays float64) (float64, bool, error) {
	return NextLunarPhase(o, start, 0, horizonDays)
}

// NextFullMoon finds the next Sun-Moon opposition.
func NextFullMoon(o ephemeris.Oracle, start, horizonDays float64) (float64, bool, error) {
	return NextLunarPhase(o, start, 180, horizonDays)
}
