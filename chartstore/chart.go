// Package chartstore is the durable repository of natal charts. Identity is
// the composite key (name, birth date): two charts sharing a name but not a
// birth date are distinct, and re-saving the same key overwrites in place.
// The whole table is mirrored to a single JSON file after every mutation.
package chartstore

import (
	"github.com/stelliumhq/stellium/astro"
)

// HouseCusps records the 12 cusp positions and the system that produced
// them.
type HouseCusps struct {
	// Cusps holds the cusp of house 1 through 12, in order.
	Cusps []astro.ZodiacPosition `json:"cusps"`
	// System is the display label of the house system, e.g. "Whole Sign".
	System string `json:"system"`
}

// BodyPlacement is a body's position together with its house and motion.
type BodyPlacement struct {
	Position astro.ZodiacPosition `json:"position"`
	// House the body occupies, 1-12.
	House int `json:"house"`
	// IsRetrograde captures the motion state at the birth instant.
	IsRetrograde bool `json:"is_retrograde"`
}

// NatalChart is a stored chart. Birth date, time, location and timezone are
// kept verbatim as the caller supplied them; they are never re-parsed on
// read.
type NatalChart struct {
	Name          string  `json:"name"`
	BirthDate     string  `json:"birth_date"`
	BirthTime     string  `json:"birth_time"`
	BirthLocation string  `json:"birth_location"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Timezone      string  `json:"timezone"`

	// Planets maps each body to its zodiac position at birth.
	Planets map[astro.Body]astro.ZodiacPosition `json:"planets"`

	// Placements adds house number and retrograde flag per body.
	Placements map[astro.Body]BodyPlacement `json:"planet_positions"`

	Ascendant *astro.ZodiacPosition `json:"ascendant,omitempty"`
	Midheaven *astro.ZodiacPosition `json:"midheaven,omitempty"`
	Vertex    *astro.ZodiacPosition `json:"vertex,omitempty"`

	Houses *HouseCusps `json:"houses,omitempty"`
}

// Key returns the composite identity of the chart.
func (c *NatalChart) Key() string {
	return chartKey(c.Name, c.BirthDate)
}

func chartKey(name, birthDate string) string {
	return name + "_" + birthDate
}

// HouseOf returns the house number for a body, or 0 when unknown.
func (c *NatalChart) HouseOf(body astro.Body) int {
	if p, ok := c.Placements[body]; ok {
		return p.House
	}
	return 0
}

// Summary is the lightweight listing form of a chart.
type Summary struct {
	Name          string `json:"name"`
	BirthDate     string `json:"birth_date"`
	BirthLocation string `json:"birth_location"`
}
