package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stelliumhq/stellium/astro"
	"github.com/stelliumhq/stellium/chartstore"
	"github.com/stelliumhq/stellium/ephemeris"
	"github.com/stelliumhq/stellium/errors"
	"github.com/stelliumhq/stellium/logger"
)

func (s *Server) handleStoreNatalChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	birthDate, err := request.RequireString("birth_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	birthTime, err := request.RequireString("birth_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	birthLocation, err := request.RequireString("birth_location")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	latitude, err := request.RequireFloat("latitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	longitude, err := request.RequireFloat("longitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timezone, err := request.RequireString("timezone")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	jd, err := ephemeris.ParseCivil(birthDate, birthTime, timezone)
	if err != nil {
		return errorResult(err)
	}

	chart := &chartstore.NatalChart{
		Name:          name,
		BirthDate:     birthDate,
		BirthTime:     birthTime,
		BirthLocation: birthLocation,
		Latitude:      latitude,
		Longitude:     longitude,
		Timezone:      timezone,
		Planets:       make(map[astro.Body]astro.ZodiacPosition),
		Placements:    make(map[astro.Body]chartstore.BodyPlacement),
	}

	if err := s.populateChart(chart, jd); err != nil {
		return errorResult(err)
	}

	if err := s.store.Save(chart); err != nil {
		return errorResult(errors.Wrap(err, "failed to save chart"))
	}

	logger.Infow("natal chart stored", "name", name, "birth_date", birthDate)

	return jsonResult(StoreChartResponse{
		Success:    true,
		Message:    "Natal chart stored successfully",
		NatalChart: summarizeChart(chart),
	})
}

// populateChart queries both oracles and fills in positions, placements,
// angles and cusps for the birth instant.
func (s *Server) populateChart(chart *chartstore.NatalChart, jd float64) error {
	houseData, err := s.houses.Houses(jd, chart.Latitude, chart.Longitude, s.houseSystem)
	if err != nil {
		return errors.Wrap(err, "failed to calculate houses")
	}

	cusps := make([]astro.ZodiacPosition, 0, len(houseData.Cusps))
	for _, cusp := range houseData.Cusps {
		cusps = append(cusps, astro.PositionFromLongitude(cusp))
	}
	chart.Houses = &chartstore.HouseCusps{Cusps: cusps, System: s.houseSystem.Name()}

	asc := astro.PositionFromLongitude(houseData.Ascendant)
	mc := astro.PositionFromLongitude(houseData.Midheaven)
	vertex := astro.PositionFromLongitude(houseData.Vertex)
	chart.Ascendant = &asc
	chart.Midheaven = &mc
	chart.Vertex = &vertex

	for _, body := range astro.Bodies() {
		pos, err := s.oracle.Position(body, jd)
		if err != nil {
			return errors.Wrapf(err, "failed to calculate position of %s", body)
		}
		zodiac := pos.ZodiacPosition()
		chart.Planets[body] = zodiac
		chart.Placements[body] = chartstore.BodyPlacement{
			Position:     zodiac,
			House:        ephemeris.HouseOf(pos.Longitude, houseData.Cusps),
			IsRetrograde: pos.Retrograde(body),
		}
	}
	return nil
}

func (s *Server) handleGetNatalChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	chart, ok := s.store.GetByName(name)
	if !ok {
		return errorResultf("Natal chart '%s' not found", name)
	}

	return jsonResult(GetChartResponse{
		Name:          chart.Name,
		BirthDate:     chart.BirthDate,
		BirthTime:     chart.BirthTime,
		BirthLocation: chart.BirthLocation,
		Positions:     summarizeChart(chart),
	})
}

func (s *Server) handleListNatalCharts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	charts := s.store.List()
	return jsonResult(ListChartsResponse{Charts: charts, Count: len(charts)})
}

func (s *Server) handleSearchNatalCharts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := s.store.Search(query)
	return jsonResult(SearchChartsResponse{Query: query, Results: results, Count: len(results)})
}

func (s *Server) handleDeleteNatalChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	birthDate, err := request.RequireString("birth_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	chart, ok := s.store.GetExact(name, birthDate)
	if !ok {
		// Help the caller when the name exists under another birth date:
		// deletion deliberately requires the exact composite key.
		if existing, ok := s.store.GetByName(name); ok {
			return errorResultf(
				"Chart '%s' exists but with birth date '%s'. You provided '%s'. Please use the correct birth date to delete.",
				name, existing.BirthDate, birthDate)
		}
		return errorResultf("Natal chart '%s' not found", name)
	}

	removed, err := s.store.DeleteExact(name, birthDate)
	if err != nil {
		return errorResult(errors.Wrap(err, "failed to delete chart"))
	}
	if !removed {
		return errorResultf("Natal chart '%s' not found", name)
	}

	logger.Infow("natal chart deleted", "name", name, "birth_date", birthDate)

	return jsonResult(DeleteChartResponse{
		Success: true,
		Message: fmt.Sprintf("Natal chart '%s' (born %s) has been deleted", chart.Name, chart.BirthDate),
	})
}
