// Package config loads Stellium configuration via Viper: defaults, then a
// TOML file discovered by walking up from the working directory, then
// STELLIUM_-prefixed environment variables.
package config

// Config is the root Stellium configuration.
type Config struct {
	Storage Storage `mapstructure:"storage"`
	Houses  Houses  `mapstructure:"houses"`
	Search  Search  `mapstructure:"search"`
	Log     Log     `mapstructure:"log"`
}

// Storage configures chart persistence.
type Storage struct {
	// Path of the natal chart snapshot file.
	Path string `mapstructure:"path"`
}

// Houses configures house calculation.
type Houses struct {
	// System key: whole_sign, equal or porphyry.
	System string `mapstructure:"system"`
}

// Search configures the default time horizons, in days, for event searches.
type Search struct {
	IngressHorizonDays int `mapstructure:"ingress_horizon_days"`
	StationHorizonDays int `mapstructure:"station_horizon_days"`
	LunarHorizonDays   int `mapstructure:"lunar_horizon_days"`
}

// Log configures logging output.
type Log struct {
	// JSON switches log lines to structured JSON on stderr.
	JSON bool `mapstructure:"json"`
}
