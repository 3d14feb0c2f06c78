// Package config provides configuration loading and defaults for fitwatch.
package config

import "time"

// DefaultDataDir is the default location of the fitness export directory.
const DefaultDataDir = "~/.fitwatch/export"

// DefaultConfigDir is the default location for fitwatch configuration.
const DefaultConfigDir = "~/.config/fitwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "fitwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. FITWATCH_DATA_DIR.
const EnvPrefix = "FITWATCH"

// DefaultTarget is empty so the profile document's goal and
// calorie target apply unless the user configures their own.
var DefaultTarget = Target{}

// DefaultWindows holds the default analysis windows.
var DefaultWindows = Windows{
	ConsistencyDays: 30,
	AdherenceDays:   7,
	TrendWeeks:      4,
}

// DefaultInsights holds the default insight presentation settings.
var DefaultInsights = Insights{
	Limit: 3,
}

// DefaultWatch holds the default watch daemon settings.
var DefaultWatch = Watch{
	Interval:  10 * time.Minute,
	ScoreDrop: 5,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
