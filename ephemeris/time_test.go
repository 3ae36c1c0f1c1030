package ephemeris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJulianDay_KnownEpochs(t *testing.T) {
	// Unix epoch.
	assert.InDelta(t, JulianDayUnixEpoch,
		JulianDay(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)), 1e-9)

	// J2000.0 is noon on 2000-01-01.
	assert.InDelta(t, J2000,
		JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)), 1e-9)

	// Midnight the same day is half a day earlier.
	assert.InDelta(t, 2451544.5,
		JulianDay(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)), 1e-9)
}

func TestJulianDay_RoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(1969, 7, 20, 20, 17, 40, 0, time.UTC),
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 8, 18, 17, 21, 0, time.UTC),
		time.Date(1815, 12, 10, 6, 30, 0, 0, time.UTC),
	}
	for _, in := range times {
		out := TimeFromJulianDay(JulianDay(in))
		assert.WithinDuration(t, in, out, time.Millisecond, "round trip of %v", in)
	}
}

func TestParseDate(t *testing.T) {
	jd, err := ParseDate("2000-01-01")
	require.NoError(t, err)
	assert.InDelta(t, 2451544.5, jd, 1e-9)

	_, err = ParseDate("01/01/2000")
	assert.Error(t, err)

	_, err = ParseDate("2000-13-40")
	assert.Error(t, err)
}

func TestParseCivil(t *testing.T) {
	// Noon in New York in January is 17:00 UT.
	jd, err := ParseCivil("2000-01-01", "12:00:00", "America/New_York")
	require.NoError(t, err)
	utc, err := ParseCivil("2000-01-01", "17:00:00", "UTC")
	require.NoError(t, err)
	assert.InDelta(t, utc, jd, 1e-9)

	_, err = ParseCivil("2000-01-01", "12:00:00", "Mars/Olympus_Mons")
	assert.Error(t, err)

	_, err = ParseCivil("2000-01-01", "noonish", "UTC")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2000-01-01", FormatDate(2451544.5))
	assert.Equal(t, "2000-01-01 12:00", FormatDateTime(J2000))
}
