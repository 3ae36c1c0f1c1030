package server

import (
	"math"

	"github.com/stelliumhq/stellium/astro"
	"github.com/stelliumhq/stellium/chartstore"
)

// Response shapes for the tool surface. Everything here is presentation:
// strings pre-formatted for a chat client, numbers rounded for display.

// BodySummary is one body's line in a chart summary.
type BodySummary struct {
	// Position as "X° Sign" format.
	Position string `json:"position"`
	// House number 1-12, 0 when unknown.
	House int `json:"house,omitempty"`
	// Retrograde at the birth instant.
	Retrograde bool `json:"retrograde"`
}

// HouseSummary is one house cusp line.
type HouseSummary struct {
	House int    `json:"house"`
	Cusp  string `json:"cusp"`
}

// ChartSummary is the display form of a natal chart.
type ChartSummary struct {
	Bodies    map[string]BodySummary `json:"planets"`
	Ascendant string                 `json:"ascendant"`
	Midheaven string                 `json:"midheaven"`
	Houses    []HouseSummary         `json:"houses,omitempty"`
}

// summarizeChart renders a chart for display.
func summarizeChart(chart *chartstore.NatalChart) ChartSummary {
	bodies := make(map[string]BodySummary, len(chart.Planets))
	for _, body := range astro.Bodies() {
		pos, ok := chart.Planets[body]
		if !ok {
			continue
		}
		summary := BodySummary{Position: pos.FormatDegreeSign()}
		if placement, ok := chart.Placements[body]; ok {
			summary.House = placement.House
			summary.Retrograde = placement.IsRetrograde
		}
		bodies[wireName(body)] = summary
	}

	out := ChartSummary{
		Bodies:    bodies,
		Ascendant: formatOptional(chart.Ascendant),
		Midheaven: formatOptional(chart.Midheaven),
	}

	if chart.Houses != nil {
		for i, cusp := range chart.Houses.Cusps {
			out.Houses = append(out.Houses, HouseSummary{House: i + 1, Cusp: cusp.FormatDegreeSign()})
		}
	}
	return out
}

func wireName(body astro.Body) string {
	text, err := body.MarshalText()
	if err != nil {
		return body.String()
	}
	return string(text)
}

func formatOptional(pos *astro.ZodiacPosition) string {
	if pos == nil {
		return "Unknown"
	}
	return pos.FormatDegreeSign()
}

// round1 rounds for display to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// StoreChartResponse confirms a stored chart.
type StoreChartResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	NatalChart ChartSummary `json:"natal_chart"`
}

// GetChartResponse returns a stored chart with its summary.
type GetChartResponse struct {
	Name          string       `json:"name"`
	BirthDate     string       `json:"birth_date"`
	BirthTime     string       `json:"birth_time"`
	BirthLocation string       `json:"birth_location"`
	Positions     ChartSummary `json:"positions"`
}

// ListChartsResponse lists stored chart summaries.
type ListChartsResponse struct {
	Charts []chartstore.Summary `json:"charts"`
	Count  int                  `json:"count"`
}

// SearchChartsResponse carries search results.
type SearchChartsResponse struct {
	Query   string               `json:"query"`
	Results []chartstore.Summary `json:"results"`
	Count   int                  `json:"count"`
}

// DeleteChartResponse confirms a deletion.
type DeleteChartResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Transit is one body's position for a day plus its natal aspects.
type Transit struct {
	Planet         string           `json:"planet"`
	Sign           astro.ZodiacSign `json:"sign"`
	Degree         float64          `json:"degree"`
	Retrograde     bool             `json:"retrograde"`
	AspectsToNatal []astro.Aspect   `json:"aspects_to_natal"`
}

// DailyTransitsResponse lists transits for one date.
type DailyTransitsResponse struct {
	Date     string    `json:"date"`
	Transits []Transit `json:"transits"`
}

// RetrogradeInfo describes a body currently in retrograde.
type RetrogradeInfo struct {
	Planet        string `json:"planet"`
	Retrograde    bool   `json:"retrograde"`
	RetrogradeEnd string `json:"retrograde_end,omitempty"`
	DirectStation string `json:"direct_station,omitempty"`
}

// UpcomingRetrograde describes a station inside the look-ahead window.
type UpcomingRetrograde struct {
	Planet          string `json:"planet"`
	RetrogradeStart string `json:"retrograde_start"`
	RetrogradeEnd   string `json:"retrograde_end"`
	DaysUntil       int    `json:"days_until"`
}

// RetrogradeStatusResponse answers get_retrograde_status.
type RetrogradeStatusResponse struct {
	Date                string               `json:"date"`
	CurrentlyRetrograde []RetrogradeInfo     `json:"currently_retrograde"`
	UpcomingRetrogrades []UpcomingRetrograde `json:"upcoming_retrogrades"`
}

// LunarPhaseInfo describes the phase at one date.
type LunarPhaseInfo struct {
	PhaseName    astro.LunarPhaseName `json:"phase_name"`
	PhasePercent int                  `json:"phase_percent"`
	Illumination float64              `json:"illumination"`
	MoonSign     astro.ZodiacSign     `json:"moon_sign"`
	MoonDegree   float64              `json:"moon_degree"`
}

// VoidOfCourse is reported but not computed; see the lunar handler.
type VoidOfCourse struct {
	IsVoid         bool    `json:"is_void"`
	LastAspectTime *string `json:"last_aspect_time"`
	NextAspectTime *string `json:"next_aspect_time"`
}

// LunarCycle brackets the date with the surrounding new and full moons.
type LunarCycle struct {
	NewMoon      string `json:"new_moon"`
	FullMoon     string `json:"full_moon"`
	NextNewMoon  string `json:"next_new_moon"`
	NextFullMoon string `json:"next_full_moon"`
}

// LunarInfoResponse answers get_lunar_info.
type LunarInfoResponse struct {
	Date         string         `json:"date"`
	LunarPhase   LunarPhaseInfo `json:"lunar_phase"`
	VoidOfCourse VoidOfCourse   `json:"void_of_course"`
	LunarCycle   LunarCycle     `json:"lunar_cycle"`
}

// MajorEvent is a dated event in a transit report.
type MajorEvent struct {
	Date            string   `json:"date"`
	Event           string   `json:"event"`
	EventType       string   `json:"type"`
	Orb             *float64 `json:"orb,omitempty"`
	AffectedPlanets []string `json:"affected_planets"`
}

// LunarEvent is a dated lunar phase event.
type LunarEvent struct {
	Date      string `json:"date"`
	Event     string `json:"event"`
	EventType string `json:"type"`
}

// DateRange is a closed civil date interval.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// TransitReportResponse answers get_transit_report.
type TransitReportResponse struct {
	Period           DateRange    `json:"period"`
	MajorEvents      []MajorEvent `json:"major_events"`
	LunarEvents      []LunarEvent `json:"lunar_events"`
	RetrogradeEvents []MajorEvent `json:"retrograde_events"`
}

// SynastryAspect is one cross-chart aspect in a compatibility reading.
type SynastryAspect struct {
	Person1Planet   string           `json:"person1_planet"`
	Person1Position string           `json:"person1_position"`
	Person1House    int              `json:"person1_house,omitempty"`
	Person2Planet   string           `json:"person2_planet"`
	Person2Position string           `json:"person2_position"`
	Person2House    int              `json:"person2_house,omitempty"`
	Aspect          astro.AspectType `json:"aspect"`
	Orb             float64          `json:"orb"`
	IsExact         bool             `json:"is_exact"`
	IsMajor         bool             `json:"is_major"`
}

// PersonSummary is the short chart digest in a compatibility reading.
type PersonSummary struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Sun       string `json:"sun"`
	Moon      string `json:"moon"`
	Ascendant string `json:"ascendant"`
	Venus     string `json:"venus"`
	Mars      string `json:"mars"`
}

// ExactAspect highlights a near-exact synastry contact.
type ExactAspect struct {
	Aspect      string `json:"aspect"`
	Description string `json:"description"`
}

// AspectCounts tallies the major aspect types.
type AspectCounts struct {
	Conjunctions int `json:"conjunctions"`
	Trines       int `json:"trines"`
	Sextiles     int `json:"sextiles"`
	Squares      int `json:"squares"`
	Oppositions  int `json:"oppositions"`
}

// CompatibilitySummary aggregates a synastry reading.
type CompatibilitySummary struct {
	TotalAspects       int           `json:"total_aspects"`
	ExactAspectsCount  int           `json:"exact_aspects_count"`
	ExactAspects       []ExactAspect `json:"exact_aspects"`
	AspectCounts       AspectCounts  `json:"aspect_counts"`
	HarmoniousAspects  int           `json:"harmonious_aspects"`
	ChallengingAspects int           `json:"challenging_aspects"`
}

// CompatibilityResponse answers get_compatibility.
type CompatibilityResponse struct {
	Success bool                 `json:"success"`
	Person1 PersonSummary        `json:"person1"`
	Person2 PersonSummary        `json:"person2"`
	Aspects []SynastryAspect     `json:"aspects"`
	Summary CompatibilitySummary `json:"summary"`
}
