package ephemeris

import (
	"time"

	"github.com/stelliumhq/stellium/errors"
)

// The continuous time coordinate used throughout the search engine is the
// Julian day in Universal Time: elapsed days since the Julian epoch, with
// the fractional part carrying the time of day. All searches operate purely
// in this coordinate; civil calendar fields never appear inside search math.

// JulianDayUnixEpoch is the Julian day of 1970-01-01T00:00:00 UT.
const JulianDayUnixEpoch = 2440587.5

// J2000 is the Julian day of the J2000.0 epoch (2000-01-01T12:00:00 TT,
// treated as UT here; the difference is irrelevant at this precision).
const J2000 = 2451545.0

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// JulianDay converts a time.Time to a Julian day in UT.
func JulianDay(t time.Time) float64 {
	return JulianDayUnixEpoch + float64(t.UnixMilli())/86400000.0
}

// TimeFromJulianDay converts a Julian day back to a time.Time in UTC.
func TimeFromJulianDay(jd float64) time.Time {
	ms := (jd - JulianDayUnixEpoch) * 86400000.0
	return time.UnixMilli(int64(ms)).UTC()
}

// ParseDate converts a "YYYY-MM-DD" civil date to the Julian day at
// midnight UT.
func ParseDate(date string) (float64, error) {
	t, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid date %q, expected YYYY-MM-DD", date)
	}
	return JulianDay(t), nil
}

// ParseCivil converts a local "YYYY-MM-DD" date and "HH:MM:SS" time in the
// named IANA zone to a Julian day in UT.
func ParseCivil(date, timeOfDay, timezone string) (float64, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid timezone %q", timezone)
	}
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+timeOfDay, loc)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid date/time %q %q, expected YYYY-MM-DD and HH:MM:SS", date, timeOfDay)
	}
	return JulianDay(t), nil
}

// FormatDate renders the civil date of a Julian day as "YYYY-MM-DD" (UT).
func FormatDate(jd float64) string {
	return TimeFromJulianDay(jd).Format(dateLayout)
}

// FormatDateTime renders a Julian day as "YYYY-MM-DD HH:MM" (UT).
func FormatDateTime(jd float64) string {
	return TimeFromJulianDay(jd).Format("2006-01-02 15:04")
}
