// Package astro holds the pure astrological value types shared by the
// ephemeris, search engine, chart store and tool surface: zodiac signs,
// celestial bodies, aspects and lunar phases. Nothing in here touches an
// ephemeris or the clock.
package astro

import (
	"fmt"
	"math"

	"github.com/stelliumhq/stellium/errors"
)

// ZodiacSign is one of the 12 fixed 30°-wide sectors of the ecliptic,
// starting at longitude 0 (Aries). Sector boundaries are half-open
// [start, start+30), so every longitude maps to exactly one sign.
type ZodiacSign int

const (
	Aries ZodiacSign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signKeys = [12]string{
	"aries", "taurus", "gemini", "cancer", "leo", "virgo",
	"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
}

// SignFromLongitude derives the sign from an ecliptic longitude in degrees.
// Any real value is accepted; the longitude is wrapped into [0, 360) first.
func SignFromLongitude(longitude float64) ZodiacSign {
	return ZodiacSign(int(math.Floor(Wrap(longitude)/30)) % 12)
}

// StartDegree returns the ecliptic longitude at which this sign begins.
func (s ZodiacSign) StartDegree() float64 {
	return float64(s) * 30
}

// Next returns the following sign, wrapping from Pisces back to Aries.
func (s ZodiacSign) Next() ZodiacSign {
	return (s + 1) % 12
}

func (s ZodiacSign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return fmt.Sprintf("ZodiacSign(%d)", int(s))
	}
	return signNames[s]
}

// MarshalText serializes the sign as its lowercase wire name ("aries").
func (s ZodiacSign) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(signKeys) {
		return nil, errors.Newf("invalid zodiac sign: %d", int(s))
	}
	return []byte(signKeys[s]), nil
}

// UnmarshalText parses the lowercase wire name back into a sign.
func (s *ZodiacSign) UnmarshalText(text []byte) error {
	for i, key := range signKeys {
		if key == string(text) {
			*s = ZodiacSign(i)
			return nil
		}
	}
	return errors.Newf("unknown zodiac sign: %q", string(text))
}

// ZodiacPosition is a point on the ecliptic expressed both as a full
// longitude and as a degree within its sign.
type ZodiacPosition struct {
	Sign ZodiacSign `json:"sign"`
	// Degree within the sign, [0, 30)
	Degree float64 `json:"degree"`
	// Full ecliptic longitude, [0, 360)
	Longitude float64 `json:"longitude"`
}

// PositionFromLongitude builds a ZodiacPosition from an ecliptic longitude.
func PositionFromLongitude(longitude float64) ZodiacPosition {
	normalized := Wrap(longitude)
	sign := SignFromLongitude(normalized)
	return ZodiacPosition{
		Sign:      sign,
		Degree:    normalized - sign.StartDegree(),
		Longitude: normalized,
	}
}

// FormatDegreeSign renders the position as "X° Sign", e.g. "28° Scorpio".
func (p ZodiacPosition) FormatDegreeSign() string {
	return fmt.Sprintf("%d° %s", int(math.Round(p.Degree)), p.Sign)
}
