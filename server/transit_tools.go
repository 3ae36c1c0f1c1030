package server

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stelliumhq/stellium/astro"
	"github.com/stelliumhq/stellium/ephemeris"
	"github.com/stelliumhq/stellium/errors"
	"github.com/stelliumhq/stellium/search"
)

func (s *Server) handleGetDailyTransits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	jd, err := ephemeris.ParseDate(date)
	if err != nil {
		return errorResult(err)
	}

	// Aspects are read against the default stored chart; without one the
	// transits still come back, just bare.
	natal, _ := s.store.Default()

	transits := make([]Transit, 0, len(astro.Bodies()))
	for _, body := range astro.Bodies() {
		pos, err := s.oracle.Position(body, jd)
		if err != nil {
			return errorResult(errors.Wrapf(err, "failed to calculate position of %s", body))
		}

		aspects := []astro.Aspect{}
		if natal != nil {
			for _, natalBody := range astro.Bodies() {
				natalPos, ok := natal.Planets[natalBody]
				if !ok {
					continue
				}
				if aspectType, orb, ok := astro.FindAspect(pos.Longitude, natalPos.Longitude, false); ok {
					aspects = append(aspects, astro.NewAspect(natalBody.String(), aspectType, round1(orb)))
				}
			}
		}

		zodiac := pos.ZodiacPosition()
		transits = append(transits, Transit{
			Planet:         body.String(),
			Sign:           zodiac.Sign,
			Degree:         round1(zodiac.Degree),
			Retrograde:     pos.Retrograde(body),
			AspectsToNatal: aspects,
		})
	}

	return jsonResult(DailyTransitsResponse{Date: date, Transits: transits})
}

func (s *Server) handleGetRetrogradeStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	includeUpcoming := request.GetBool("include_upcoming", true)
	daysAhead := request.GetFloat("days_ahead", float64(s.cfg.Search.StationHorizonDays))

	jd, err := ephemeris.ParseDate(date)
	if err != nil {
		return errorResult(err)
	}

	currently := []RetrogradeInfo{}
	upcoming := []UpcomingRetrograde{}

	for _, body := range astro.Bodies() {
		if !body.CanRetrograde() {
			continue
		}

		pos, err := s.oracle.Position(body, jd)
		if err != nil {
			return errorResult(errors.Wrapf(err, "failed to calculate position of %s", body))
		}

		if pos.Retrograde(body) {
			info := RetrogradeInfo{Planet: body.String(), Retrograde: true}
			if station, ok, err := search.NextStation(s.oracle, body, jd, daysAhead); err == nil && ok {
				end := ephemeris.FormatDate(station.JD)
				info.RetrogradeEnd = end
				info.DirectStation = end
			}
			currently = append(currently, info)
			continue
		}

		if !includeUpcoming {
			continue
		}
		station, ok, err := search.NextStation(s.oracle, body, jd, daysAhead)
		if err != nil || !ok || !station.Retrograde {
			continue
		}

		// Look past the retrograde station for the matching direct station;
		// a typical retrograde lasts three weeks to a few months.
		endJD := station.JD + 21
		if direct, ok, err := search.NextStation(s.oracle, body, station.JD+1, 120); err == nil && ok {
			endJD = direct.JD
		}

		upcoming = append(upcoming, UpcomingRetrograde{
			Planet:          body.String(),
			RetrogradeStart: ephemeris.FormatDate(station.JD),
			RetrogradeEnd:   ephemeris.FormatDate(endJD),
			DaysUntil:       int(math.Round(station.JD - jd)),
		})
	}

	return jsonResult(RetrogradeStatusResponse{
		Date:                date,
		CurrentlyRetrograde: currently,
		UpcomingRetrogrades: upcoming,
	})
}

func (s *Server) handleGetTransitReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startDate, err := request.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endDate, err := request.RequireString("end_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	includeMinor := request.GetBool("include_minor_aspects", false)

	startJD, err := ephemeris.ParseDate(startDate)
	if err != nil {
		return errorResult(err)
	}
	endJD, err := ephemeris.ParseDate(endDate)
	if err != nil {
		return errorResult(err)
	}
	if endJD < startJD {
		return errorResultf("end_date %s is before start_date %s", endDate, startDate)
	}
	days := endJD - startJD

	majorEvents := []MajorEvent{}
	retroEvents := []MajorEvent{}
	lunarEvents := []LunarEvent{}

	for _, body := range astro.Bodies() {
		ingress, ok, err := search.NextSignIngress(s.oracle, body, startJD, days)
		if err != nil {
			return errorResult(err)
		}
		if ok && ingress.JD <= endJD {
			majorEvents = append(majorEvents, MajorEvent{
				Date:            ephemeris.FormatDate(ingress.JD),
				Event:           ingressDescription(body, ingress.Sign),
				EventType:       "sign_change",
				AffectedPlanets: []string{body.String()},
			})
		}

		station, ok, err := search.NextStation(s.oracle, body, startJD, days)
		if err != nil {
			return errorResult(err)
		}
		if ok && station.JD <= endJD {
			desc := fmt.Sprintf("%s stations direct", body)
			if station.Retrograde {
				desc = fmt.Sprintf("%s stations retrograde", body)
			}
			retroEvents = append(retroEvents, MajorEvent{
				Date:            ephemeris.FormatDate(station.JD),
				Event:           desc,
				EventType:       "station",
				AffectedPlanets: []string{body.String()},
			})
		}
	}

	if natal, ok := s.store.Default(); ok {
		events, err := s.tightTransits(natal.Planets, startJD, endJD, includeMinor)
		if err != nil {
			return errorResult(err)
		}
		majorEvents = append(majorEvents, events...)
	}

	lunar, err := s.lunarEventsInRange(startJD, endJD)
	if err != nil {
		return errorResult(err)
	}
	lunarEvents = append(lunarEvents, lunar...)

	sortEventsByDate(majorEvents)
	sortEventsByDate(retroEvents)
	sort.Slice(lunarEvents, func(i, j int) bool { return lunarEvents[i].Date < lunarEvents[j].Date })

	return jsonResult(TransitReportResponse{
		Period:           DateRange{StartDate: startDate, EndDate: endDate},
		MajorEvents:      majorEvents,
		LunarEvents:      lunarEvents,
		RetrogradeEvents: retroEvents,
	})
}

// ingressDescription labels Sun ingresses into cardinal signs with their
// season markers.
func ingressDescription(body astro.Body, sign astro.ZodiacSign) string {
	if body == astro.Sun {
		var special string
		switch sign {
		case astro.Aries:
			special = "Spring Equinox"
		case astro.Cancer:
			special = "Summer Solstice"
		case astro.Libra:
			special = "Fall Equinox"
		case astro.Capricorn:
			special = "Winter Solstice"
		}
		if special != "" {
			return fmt.Sprintf("%s enters %s (%s)", body, sign, special)
		}
	}
	return fmt.Sprintf("%s enters %s", body, sign)
}

// tightTransits samples daily and reports transiting aspects to the natal
// chart within half a degree of exact.
func (s *Server) tightTransits(natal map[astro.Body]astro.ZodiacPosition, startJD, endJD float64, includeMinor bool) ([]MajorEvent, error) {
	const tightOrb = 0.5

	events := []MajorEvent{}
	for jd := startJD; jd <= endJD; jd++ {
		for _, body := range astro.Bodies() {
			pos, err := s.oracle.Position(body, jd)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to calculate position of %s", body)
			}
			for _, natalBody := range astro.Bodies() {
				natalPos, ok := natal[natalBody]
				if !ok {
					continue
				}
				aspectType, orb, ok := astro.FindAspect(pos.Longitude, natalPos.Longitude, includeMinor)
				if !ok || orb >= tightOrb {
					continue
				}
				rounded := round1(orb)
				events = append(events, MajorEvent{
					Date:            ephemeris.FormatDate(jd),
					Event:           fmt.Sprintf("%s %s natal %s", body, aspectType, natalBody),
					EventType:       "aspect",
					Orb:             &rounded,
					AffectedPlanets: []string{body.String(), natalBody.String()},
				})
			}
		}
	}
	return events, nil
}

// lunarEventsInRange walks the range collecting every new and full moon.
func (s *Server) lunarEventsInRange(startJD, endJD float64) ([]LunarEvent, error) {
	events := []LunarEvent{}

	type phase struct {
		target float64
		label  string
	}
	for _, p := range []phase{{0, "New Moon"}, {180, "Full Moon"}} {
		for jd := startJD; jd <= endJD; {
			crossing, ok, err := search.NextLunarPhase(s.oracle, jd, p.target, endJD-jd+1)
			if err != nil {
				return nil, err
			}
			if !ok || crossing > endJD {
				break
			}
			events = append(events, LunarEvent{
				Date:      ephemeris.FormatDate(crossing),
				Event:     p.label,
				EventType: "lunar_phase",
			})
			jd = crossing + 1
		}
	}
	return events, nil
}

func sortEventsByDate(events []MajorEvent) {
	sort.Slice(events, func(i, j int) bool { return events[i].Date < events[j].Date })
}
