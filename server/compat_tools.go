package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stelliumhq/stellium/astro"
	"github.com/stelliumhq/stellium/chartstore"
)

func (s *Server) handleGetCompatibility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	person1, err := request.RequireString("person1_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	person2, err := request.RequireString("person2_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	includeMinor := request.GetBool("include_minor_aspects", false)

	chart1, ok := s.store.GetByName(person1)
	if !ok {
		return errorResultf("Natal chart '%s' not found", person1)
	}
	chart2, ok := s.store.GetByName(person2)
	if !ok {
		return errorResultf("Natal chart '%s' not found", person2)
	}

	aspects := []SynastryAspect{}
	exact := []ExactAspect{}
	var counts AspectCounts

	// Full cross product: every body of chart1 against every body of
	// chart2. A body missing from either chart is skipped silently.
	for _, body1 := range astro.Bodies() {
		pos1, ok := chart1.Planets[body1]
		if !ok {
			continue
		}
		for _, body2 := range astro.Bodies() {
			pos2, ok := chart2.Planets[body2]
			if !ok {
				continue
			}

			aspectType, orb, ok := astro.FindAspect(pos1.Longitude, pos2.Longitude, includeMinor)
			if !ok {
				continue
			}

			isExact := orb < 1
			aspects = append(aspects, SynastryAspect{
				Person1Planet:   body1.String(),
				Person1Position: pos1.FormatDegreeSign(),
				Person1House:    chart1.HouseOf(body1),
				Person2Planet:   body2.String(),
				Person2Position: pos2.FormatDegreeSign(),
				Person2House:    chart2.HouseOf(body2),
				Aspect:          aspectType,
				Orb:             round2(orb),
				IsExact:         isExact,
				IsMajor:         aspectType.IsMajor(),
			})

			if isExact {
				exact = append(exact, ExactAspect{
					Aspect: fmt.Sprintf("%s %s %s (%s)", person1, body1, aspectType, body2),
					Description: fmt.Sprintf("%s's %s %s %s's %s (orb: %.2f°)",
						person1, body1, aspectType, person2, body2, orb),
				})
			}

			switch aspectType {
			case astro.Conjunction:
				counts.Conjunctions++
			case astro.Trine:
				counts.Trines++
			case astro.Sextile:
				counts.Sextiles++
			case astro.Square:
				counts.Squares++
			case astro.Opposition:
				counts.Oppositions++
			}
		}
	}

	return jsonResult(CompatibilityResponse{
		Success: true,
		Person1: personSummary(chart1),
		Person2: personSummary(chart2),
		Aspects: aspects,
		Summary: CompatibilitySummary{
			TotalAspects:       len(aspects),
			ExactAspectsCount:  len(exact),
			ExactAspects:       exact,
			AspectCounts:       counts,
			HarmoniousAspects:  counts.Trines + counts.Sextiles + counts.Conjunctions,
			ChallengingAspects: counts.Squares + counts.Oppositions,
		},
	})
}

func personSummary(chart *chartstore.NatalChart) PersonSummary {
	format := func(body astro.Body) string {
		if pos, ok := chart.Planets[body]; ok {
			return pos.FormatDegreeSign()
		}
		return "Unknown"
	}
	return PersonSummary{
		Name:      chart.Name,
		BirthDate: chart.BirthDate,
		Sun:       format(astro.Sun),
		Moon:      format(astro.Moon),
		Ascendant: formatOptional(chart.Ascendant),
		Venus:     format(astro.Venus),
		Mars:      format(astro.Mars),
	}
}
