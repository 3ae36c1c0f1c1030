package ephemeris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stelliumhq/stellium/astro"
)

func TestAnalyticOracle_SunAtJ2000(t *testing.T) {
	oracle := NewAnalyticOracle()

	// The Sun sits near 280° (early Capricorn) at J2000.0.
	pos, err := oracle.Position(astro.Sun, J2000)
	require.NoError(t, err)
	assert.InDelta(t, 280.0, pos.Longitude, 1.0)
	assert.Equal(t, astro.Capricorn, pos.ZodiacPosition().Sign)
	assert.InDelta(t, 0.983, pos.Distance, 0.01, "Earth is near perihelion in January")

	// The Sun moves forward roughly one degree per day, every day.
	assert.InDelta(t, 1.0, pos.SpeedLongitude, 0.1)
	assert.False(t, pos.Retrograde(astro.Sun))
}

func TestAnalyticOracle_SunSolstices(t *testing.T) {
	oracle := NewAnalyticOracle()

	// June solstice 2020 was June 20, 21:43 UT; the Sun enters Cancer (90°).
	jd, err := ParseCivil("2020-06-20", "21:43:00", "UTC")
	require.NoError(t, err)
	pos, err := oracle.Position(astro.Sun, jd)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, pos.Longitude, 0.1)

	// March equinox 2024 was March 20, 03:06 UT; the Sun enters Aries (0°).
	jd, err = ParseCivil("2024-03-20", "03:06:00", "UTC")
	require.NoError(t, err)
	pos, err = oracle.Position(astro.Sun, jd)
	require.NoError(t, err)
	assert.Less(t, astro.AngularDistance(pos.Longitude, 0), 0.1)
}

func TestAnalyticOracle_MoonMotion(t *testing.T) {
	oracle := NewAnalyticOracle()

	pos, err := oracle.Position(astro.Moon, J2000)
	require.NoError(t, err)

	// Mean lunar motion is ~13.2°/day; the true rate stays within ~11-15.
	assert.Greater(t, pos.SpeedLongitude, 11.0)
	assert.Less(t, pos.SpeedLongitude, 15.5)
	assert.False(t, pos.Retrograde(astro.Moon))

	// Lunar latitude never exceeds ~5.3°.
	for jd := J2000; jd < J2000+30; jd++ {
		p, err := oracle.Position(astro.Moon, jd)
		require.NoError(t, err)
		assert.LessOrEqual(t, p.Latitude, 6.0)
		assert.GreaterOrEqual(t, p.Latitude, -6.0)
	}
}

func TestAnalyticOracle_NorthNodeAlwaysRetrograde(t *testing.T) {
	oracle := NewAnalyticOracle()

	for jd := J2000; jd < J2000+1000; jd += 100 {
		pos, err := oracle.Position(astro.NorthNode, jd)
		require.NoError(t, err)
		assert.Negative(t, pos.SpeedLongitude)
		assert.True(t, pos.Retrograde(astro.NorthNode))
	}
}

func TestAnalyticOracle_MercuryRetrogradesSometimes(t *testing.T) {
	oracle := NewAnalyticOracle()

	direct, retro := 0, 0
	// Sample one Mercury synodic year; it retrogrades roughly three weeks
	// out of every ~116 days.
	for jd := J2000; jd < J2000+120; jd++ {
		pos, err := oracle.Position(astro.Mercury, jd)
		require.NoError(t, err)
		if pos.Retrograde(astro.Mercury) {
			retro++
		} else {
			direct++
		}
	}
	assert.Greater(t, retro, 5)
	assert.Greater(t, direct, 60)
}

func TestAnalyticOracle_OuterPlanetSigns(t *testing.T) {
	oracle := NewAnalyticOracle()

	// Slow movers at J2000: Pluto was in Sagittarius, Neptune in Aquarius,
	// Saturn in Taurus.
	tests := []struct {
		body astro.Body
		want astro.ZodiacSign
	}{
		{astro.Pluto, astro.Sagittarius},
		{astro.Neptune, astro.Aquarius},
		{astro.Saturn, astro.Taurus},
		{astro.Jupiter, astro.Aries},
	}
	for _, tt := range tests {
		pos, err := oracle.Position(tt.body, J2000)
		require.NoError(t, err)
		assert.Equal(t, tt.want, pos.ZodiacPosition().Sign, "%s at J2000", tt.body)
	}
}

func TestAnalyticOracle_RangeLimits(t *testing.T) {
	oracle := NewAnalyticOracle()

	_, err := oracle.Position(astro.Sun, MinJD-1)
	assert.Error(t, err)

	_, err = oracle.Position(astro.Sun, MaxJD+1)
	assert.Error(t, err)

	_, err = oracle.Position(astro.Sun, MinJD)
	assert.NoError(t, err)

	_, err = oracle.Houses(MaxJD+1, 40, -74, WholeSign)
	assert.Error(t, err)
}

func TestAnalyticOracle_Deterministic(t *testing.T) {
	oracle := NewAnalyticOracle()

	for _, body := range astro.Bodies() {
		p1, err := oracle.Position(body, J2000+1234.5678)
		require.NoError(t, err)
		p2, err := oracle.Position(body, J2000+1234.5678)
		require.NoError(t, err)
		assert.Equal(t, p1, p2, "%s", body)
	}
}

func TestSunMoonAngle(t *testing.T) {
	oracle := NewAnalyticOracle()

	// 2000-01-06 18:14 UT was a new moon.
	jd, err := ParseCivil("2000-01-06", "18:14:00", "UTC")
	require.NoError(t, err)
	angle, err := SunMoonAngle(oracle, jd)
	require.NoError(t, err)
	assert.Less(t, astro.AngularDistance(angle, 0), 1.5)

	// 2000-01-21 04:40 UT was a full moon.
	jd, err = ParseCivil("2000-01-21", "04:40:00", "UTC")
	require.NoError(t, err)
	angle, err = SunMoonAngle(oracle, jd)
	require.NoError(t, err)
	assert.Less(t, astro.AngularDistance(angle, 180), 1.5)
}
