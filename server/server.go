// Package server exposes Stellium's calculations as MCP tools over stdio.
// It is thin dispatch: parse tool arguments, call the oracles, the search
// engine or the chart store, and render JSON. All real behavior lives in
// those packages.
package server

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stelliumhq/stellium/chartstore"
	"github.com/stelliumhq/stellium/config"
	"github.com/stelliumhq/stellium/ephemeris"
	"github.com/stelliumhq/stellium/errors"
	"github.com/stelliumhq/stellium/logger"
	"github.com/stelliumhq/stellium/version"
)

// Server wires the chart store and the oracles to the MCP tool surface.
type Server struct {
	store       *chartstore.Store
	oracle      ephemeris.Oracle
	houses      ephemeris.HouseOracle
	houseSystem ephemeris.HouseSystem
	cfg         *config.Config
	mcp         *mcpserver.MCPServer
}

// New builds the server from configuration, loading the chart store and
// using the built-in analytic oracle for both positions and houses.
func New(cfg *config.Config) (*Server, error) {
	store, err := chartstore.Load(cfg.Storage.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load chart store")
	}

	system, err := ephemeris.ParseHouseSystem(cfg.Houses.System)
	if err != nil {
		return nil, err
	}

	oracle := ephemeris.NewAnalyticOracle()
	return NewWithOracles(cfg, store, oracle, oracle, system), nil
}

// NewWithOracles builds the server against explicit collaborators. Tests
// use it to substitute synthetic oracles and throwaway stores.
func NewWithOracles(cfg *config.Config, store *chartstore.Store, oracle ephemeris.Oracle, houses ephemeris.HouseOracle, system ephemeris.HouseSystem) *Server {
	s := &Server{
		store:       store,
		oracle:      oracle,
		houses:      houses,
		houseSystem: system,
		cfg:         cfg,
	}

	s.mcp = mcpserver.NewMCPServer(
		"stellium",
		version.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithInstructions(
			"Stellium provides ephemeris data and astrological calculations. "+
				"Store your natal chart first with store_natal_chart, then use "+
				"get_daily_transits to see how current planetary positions aspect your chart.",
		),
	)

	s.registerTools()
	return s
}

// Serve runs the MCP server over stdio until the client disconnects.
func (s *Server) Serve() error {
	logger.Infow("stellium server ready",
		"storage", s.store.Path(),
		"house_system", s.houseSystem.Name())
	return mcpserver.ServeStdio(s.mcp)
}

// jsonResult renders any value as an indented-JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// failure is the uniform error payload: a descriptive message plus a
// success flag, reported verbatim to the client.
type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	return jsonResult(failure{Success: false, Error: err.Error()})
}

func errorResultf(format string, args ...any) (*mcp.CallToolResult, error) {
	return errorResult(errors.Newf(format, args...))
}
