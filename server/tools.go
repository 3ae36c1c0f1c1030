package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools declares the tool surface. Handlers live in the *_tools.go
// files next to this one.
func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("store_natal_chart",
		mcp.WithDescription("Store a natal chart with birth data for future transit calculations. The chart will be saved permanently and used for aspect calculations."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the person for this natal chart"),
		),
		mcp.WithString("birth_date",
			mcp.Required(),
			mcp.Description("Birth date in YYYY-MM-DD format"),
		),
		mcp.WithString("birth_time",
			mcp.Required(),
			mcp.Description("Birth time in HH:MM:SS format"),
		),
		mcp.WithString("birth_location",
			mcp.Required(),
			mcp.Description("Birth location name (e.g., 'Panama City, Panama')"),
		),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude of birth location in decimal degrees"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude of birth location in decimal degrees"),
		),
		mcp.WithString("timezone",
			mcp.Required(),
			mcp.Description("Timezone identifier (e.g., 'America/Panama')"),
		),
	), s.handleStoreNatalChart)

	s.mcp.AddTool(mcp.NewTool("get_natal_chart",
		mcp.WithDescription("Get a stored natal chart by name."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the person whose chart to retrieve"),
		),
	), s.handleGetNatalChart)

	s.mcp.AddTool(mcp.NewTool("list_natal_charts",
		mcp.WithDescription("List all stored natal charts."),
	), s.handleListNatalCharts)

	s.mcp.AddTool(mcp.NewTool("search_natal_charts",
		mcp.WithDescription("Search for natal charts by name (case-insensitive partial match)."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Substring to match against chart names"),
		),
	), s.handleSearchNatalCharts)

	s.mcp.AddTool(mcp.NewTool("delete_natal_chart",
		mcp.WithDescription("Delete a stored natal chart. Requires both name and birth date for confirmation."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the person whose chart to delete"),
		),
		mcp.WithString("birth_date",
			mcp.Required(),
			mcp.Description("Birth date of the chart to delete, YYYY-MM-DD"),
		),
	), s.handleDeleteNatalChart)

	s.mcp.AddTool(mcp.NewTool("get_daily_transits",
		mcp.WithDescription("Get current planetary positions and their aspects to your natal chart for a specific date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date to get transits for in YYYY-MM-DD format"),
		),
	), s.handleGetDailyTransits)

	s.mcp.AddTool(mcp.NewTool("get_retrograde_status",
		mcp.WithDescription("Get which planets are currently retrograde and upcoming retrograde periods."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date to check retrograde status for in YYYY-MM-DD format"),
		),
		mcp.WithBoolean("include_upcoming",
			mcp.Description("Whether to include upcoming retrograde periods (default: true)"),
		),
		mcp.WithNumber("days_ahead",
			mcp.Description("Number of days to look ahead for upcoming retrogrades (default: 90)"),
		),
	), s.handleGetRetrogradeStatus)

	s.mcp.AddTool(mcp.NewTool("get_lunar_info",
		mcp.WithDescription("Get current lunar phase, void-of-course status, and lunar cycle dates."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date to get lunar information for in YYYY-MM-DD format"),
		),
	), s.handleGetLunarInfo)

	s.mcp.AddTool(mcp.NewTool("get_transit_report",
		mcp.WithDescription("Get a summary of major astrological events over a specified date range including sign changes, aspects to natal chart, and lunar events."),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Start date in YYYY-MM-DD format"),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("End date in YYYY-MM-DD format"),
		),
		mcp.WithBoolean("include_minor_aspects",
			mcp.Description("Whether to include minor aspects (default: false)"),
		),
	), s.handleGetTransitReport)

	s.mcp.AddTool(mcp.NewTool("get_compatibility",
		mcp.WithDescription("Analyze synastry/compatibility between two natal charts. Compares all planetary aspects between two people."),
		mcp.WithString("person1_name",
			mcp.Required(),
			mcp.Description("Name of the first person (chart must be stored)"),
		),
		mcp.WithString("person2_name",
			mcp.Required(),
			mcp.Description("Name of the second person (chart must be stored)"),
		),
		mcp.WithBoolean("include_minor_aspects",
			mcp.Description("Whether to include minor aspects (default: false)"),
		),
	), s.handleGetCompatibility)
}
