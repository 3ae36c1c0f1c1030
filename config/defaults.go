package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.path", defaultStoragePath())

	v.SetDefault("houses.system", "whole_sign")

	// Horizons bound every search; there is no other guard against
	// unbounded scanning.
	v.SetDefault("search.ingress_horizon_days", 365)
	v.SetDefault("search.station_horizon_days", 90)
	v.SetDefault("search.lunar_horizon_days", 30)

	v.SetDefault("log.json", false)
}

// defaultStoragePath places the chart snapshot under the user config
// directory, falling back to the working directory when none is known.
func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "natal_charts.json"
	}
	return filepath.Join(dir, "stellium", "natal_charts.json")
}
