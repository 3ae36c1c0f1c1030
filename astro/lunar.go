package astro

import "math"

// LunarPhaseName is one of the eight conventional phase octants.
type LunarPhaseName string

const (
	NewMoon        LunarPhaseName = "new_moon"
	WaxingCrescent LunarPhaseName = "waxing_crescent"
	FirstQuarter   LunarPhaseName = "first_quarter"
	WaxingGibbous  LunarPhaseName = "waxing_gibbous"
	FullMoon       LunarPhaseName = "full_moon"
	WaningGibbous  LunarPhaseName = "waning_gibbous"
	LastQuarter    LunarPhaseName = "last_quarter"
	WaningCrescent LunarPhaseName = "waning_crescent"
)

// PhaseNameFromAngle names the phase for a Moon-minus-Sun elongation.
// Octants are 45° wide, centered on the cardinal angles, so the new moon
// band covers [337.5, 360) plus [0, 22.5).
func PhaseNameFromAngle(angle float64) LunarPhaseName {
	a := Wrap(angle)
	switch {
	case a < 22.5:
		return NewMoon
	case a < 67.5:
		return WaxingCrescent
	case a < 112.5:
		return FirstQuarter
	case a < 157.5:
		return WaxingGibbous
	case a < 202.5:
		return FullMoon
	case a < 247.5:
		return WaningGibbous
	case a < 292.5:
		return LastQuarter
	case a < 337.5:
		return WaningCrescent
	default:
		return NewMoon
	}
}

// IlluminationFromAngle returns the illuminated fraction of the lunar disc
// for a Moon-minus-Sun elongation: 0 at new moon, 1 at full.
func IlluminationFromAngle(angle float64) float64 {
	return (1 - math.Cos(Wrap(angle)*math.Pi/180)) / 2
}
