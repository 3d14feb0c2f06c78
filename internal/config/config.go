package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

// Config is the top-level fitwatch configuration.
type Config struct {
	DataDir  string   `mapstructure:"data_dir"`
	Target   Target   `mapstructure:"target"`
	Windows  Windows  `mapstructure:"windows"`
	Insights Insights `mapstructure:"insights"`
	Watch    Watch    `mapstructure:"watch"`
	Output   Output   `mapstructure:"output"`
}

// Target is the configured daily calorie target and fitness goal. Zero
// values defer to the user's profile document.
type Target struct {
	Calories float64 `mapstructure:"calories"`
	Goal     string  `mapstructure:"goal"`
}

// Windows defines the analysis window sizes.
type Windows struct {
	ConsistencyDays int `mapstructure:"consistency_days"`
	AdherenceDays   int `mapstructure:"adherence_days"`
	TrendWeeks      int `mapstructure:"trend_weeks"`
}

// Insights defines how many insights are shown by default.
type Insights struct {
	Limit int `mapstructure:"limit"`
}

// Watch defines the watch daemon polling interval and alert threshold.
type Watch struct {
	Interval  time.Duration `mapstructure:"interval"`
	ScoreDrop int           `mapstructure:"score_drop"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// FitnessTarget converts the configured target to the analyzer's input type.
func (c *Config) FitnessTarget() fitness.Target {
	return fitness.Target{TargetCalories: c.Target.Calories, Goal: c.Target.Goal}
}

// AnalyzerOptions converts the configured windows to analyzer options.
func (c *Config) AnalyzerOptions() analyzer.Options {
	return analyzer.Options{
		ConsistencyDays: c.Windows.ConsistencyDays,
		AdherenceDays:   c.Windows.AdherenceDays,
		TrendWeeks:      c.Windows.TrendWeeks,
	}
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location),
// applies FITWATCH_* environment overrides and returns a Config with all
// defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("target.calories", DefaultTarget.Calories)
	v.SetDefault("target.goal", DefaultTarget.Goal)
	v.SetDefault("windows.consistency_days", DefaultWindows.ConsistencyDays)
	v.SetDefault("windows.adherence_days", DefaultWindows.AdherenceDays)
	v.SetDefault("windows.trend_weeks", DefaultWindows.TrendWeeks)
	v.SetDefault("insights.limit", DefaultInsights.Limit)
	v.SetDefault("watch.interval", DefaultWatch.Interval)
	v.SetDefault("watch.score_drop", DefaultWatch.ScoreDrop)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	if cfg.Insights.Limit < 0 {
		cfg.Insights.Limit = 0
	}
	if cfg.Watch.Interval <= 0 {
		cfg.Watch.Interval = DefaultWatch.Interval
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
