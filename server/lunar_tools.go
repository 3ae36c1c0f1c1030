package server

import (
	"context"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stelliumhq/stellium/astro"
	"github.com/stelliumhq/stellium/ephemeris"
	"github.com/stelliumhq/stellium/errors"
	"github.com/stelliumhq/stellium/search"
)

func (s *Server) handleGetLunarInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	jd, err := ephemeris.ParseDate(date)
	if err != nil {
		return errorResult(err)
	}

	moon, err := s.oracle.Position(astro.Moon, jd)
	if err != nil {
		return errorResult(errors.Wrap(err, "failed to calculate Moon position"))
	}

	angle, err := ephemeris.SunMoonAngle(s.oracle, jd)
	if err != nil {
		return errorResult(errors.Wrap(err, "failed to calculate phase angle"))
	}

	moonZodiac := moon.ZodiacPosition()
	info := LunarPhaseInfo{
		PhaseName:    astro.PhaseNameFromAngle(angle),
		PhasePercent: int(math.Round(angle / 360 * 100)),
		Illumination: round2(astro.IlluminationFromAngle(angle)),
		MoonSign:     moonZodiac.Sign,
		MoonDegree:   round1(moonZodiac.Degree),
	}

	horizon := float64(s.cfg.Search.LunarHorizonDays)

	// Each search can come back empty near the edge of the horizon; fall
	// back to mean-cycle offsets rather than omitting a field.
	prevNew := jd - 14.0
	if found, ok, err := search.PreviousLunarPhase(s.oracle, jd, 0, horizon); err == nil && ok {
		prevNew = found
	}
	prevFull := jd - 7.0
	if found, ok, err := search.PreviousLunarPhase(s.oracle, jd, 180, horizon); err == nil && ok {
		prevFull = found
	}
	nextNew := jd + 29.5
	if found, ok, err := search.NextNewMoon(s.oracle, jd, horizon); err == nil && ok {
		nextNew = found
	}
	nextFull := jd + 14.0
	if found, ok, err := search.NextFullMoon(s.oracle, jd, horizon); err == nil && ok {
		nextFull = found
	}

	return jsonResult(LunarInfoResponse{
		Date:       date,
		LunarPhase: info,
		// Void-of-course detection needs the full lunar aspect calendar;
		// the field is reported but always inactive.
		VoidOfCourse: VoidOfCourse{IsVoid: false},
		LunarCycle: LunarCycle{
			NewMoon:      ephemeris.FormatDate(prevNew),
			FullMoon:     ephemeris.FormatDate(prevFull),
			NextNewMoon:  ephemeris.FormatDate(nextNew),
			NextFullMoon: ephemeris.FormatDate(nextFull),
		},
	})
}
