package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stelliumhq/stellium/astro"
	"github.com/stelliumhq/stellium/ephemeris"
)

// luminaries is a linear Sun/Moon oracle whose elongation grows at the mean
// synodic rate, so phase instants are exactly predictable.
func luminaries(elongationAtZero float64) *linearOracle {
	return &linearOracle{
		start: map[astro.Body]float64{astro.Sun: 100, astro.Moon: astro.Wrap(100 + elongationAtZero)},
		rate:  map[astro.Body]float64{astro.Sun: 0.9856, astro.Moon: 13.1764},
	}
}

// elongationRate is the Moon-minus-Sun rate of the luminaries oracle.
const elongationRate = 13.1764 - 0.9856

func TestNextLunarPhase_FullMoon(t *testing.T) {
	// Starting at elongation 90°, the 180° crossing comes after 90° of
	// relative motion.
	oracle := luminaries(90)

	jd, found, err := NextLunarPhase(oracle, 0, 180, 45)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 90/elongationRate, jd, phaseTolerance)

	angle, err := ephemeris.SunMoonAngle(oracle, jd)
	require.NoError(t, err)
	assert.Less(t, astro.AngularDistance(angle, 180), 0.1)
}

func TestNextNewMoon_AcrossSeam(t *testing.T) {
	// Starting at elongation 300°, the 0° crossing is 60° of motion away
	// and sits on the modular seam.
	oracle := luminaries(300)

	jd, found, err := NextNewMoon(oracle, 0, 45)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 60/elongationRate, jd, phaseTolerance)

	angle, err := ephemeris.SunMoonAngle(oracle, jd)
	require.NoError(t, err)
	assert.Less(t, astro.AngularDistance(angle, 0), 0.1)
}

func TestNextNewMoon_JustPastOneWaitsFullCycle(t *testing.T) {
	// Half a degree past a new moon, the next one is a whole synodic month
	// away, not now.
	oracle := luminaries(0.5)

	jd, found, err := NextNewMoon(oracle, 0, 45)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 359.5/elongationRate, jd, 2*phaseTolerance)
	assert.Greater(t, jd, 29.0)
}

func TestNextLunarPhase_SuccessiveCrossingsSynodic(t *testing.T) {
	oracle := luminaries(37)

	first, found, err := NextFullMoon(oracle, 0, 45)
	require.NoError(t, err)
	require.True(t, found)

	second, found, err := NextFullMoon(oracle, first+phaseTolerance, 45)
	require.NoError(t, err)
	require.True(t, found)

	assert.InDelta(t, 360/elongationRate, second-first, 0.01)
}

func TestPreviousLunarPhase_BracketsStart(t *testing.T) {
	oracle := luminaries(123.4)

	// The previous and next crossings of any mid-range target straddle the
	// start instant by exactly one synodic month.
	for _, target := range []float64{45, 90, 180, 270} {
		next, found, err := NextLunarPhase(oracle, 50, target, 45)
		require.NoError(t, err)
		require.True(t, found, "target %v", target)

		prev, found, err := PreviousLunarPhase(oracle, 50, target, 45)
		require.NoError(t, err)
		require.True(t, found, "target %v", target)

		assert.LessOrEqual(t, prev, 50.0)
		assert.GreaterOrEqual(t, next, 50.0)
		assert.InDelta(t, 360/elongationRate, next-prev, 0.01, "target %v", target)
	}
}

func TestPreviousLunarPhase_NewMoonSeam(t *testing.T) {
	// Starting at elongation 25°, the previous new moon was 25° of motion
	// ago.
	oracle := luminaries(0)

	start := 25 / elongationRate
	jd, found, err := PreviousLunarPhase(oracle, start, 0, 45)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 0, jd, 2*phaseTolerance)
}

func TestNextLunarPhase_HorizonExhausted(t *testing.T) {
	// Two days is less than the distance to the crossing.
	oracle := luminaries(90)

	_, found, err := NextLunarPhase(oracle, 0, 180, 2)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = PreviousLunarPhase(oracle, 0, 180, 2)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNextLunarPhase_OracleErrorPropagates(t *testing.T) {
	oracle := &failingOracle{inner: luminaries(90), cutoff: 1}

	_, _, err := NextLunarPhase(oracle, 0, 180, 45)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lunar phase search")
}

func TestNextLunarPhase_AgainstAnalyticOracle(t *testing.T) {
	// End to end against the built-in oracle: the first new moon of 2000
	// was January 6, 18:14 UT.
	oracle := ephemeris.NewAnalyticOracle()

	start, err := ephemeris.ParseDate("2000-01-01")
	require.NoError(t, err)

	jd, found, err := NextNewMoon(oracle, start, 30)
	require.NoError(t, err)
	require.True(t, found)

	want, err := ephemeris.ParseCivil("2000-01-06", "18:14:00", "UTC")
	require.NoError(t, err)
	assert.InDelta(t, want, jd, 0.25)

	// And the following full moon on January 21, 04:40 UT.
	jd, found, err = NextFullMoon(oracle, start, 30)
	require.NoError(t, err)
	require.True(t, found)

	want, err = ephemeris.ParseCivil("2000-01-21", "04:40:00", "UTC")
	require.NoError(t, err)
	assert.InDelta(t, want, jd, 0.25)
}
