// Package app contains the Cobra command tree for fitwatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/blackwell-systems/fitwatch/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
	flagDataDir string
	flagLogFile string
)

// logger is built in PersistentPreRunE and shared by every subcommand.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "fitwatch",
	Short: "Progress analysis for workout, nutrition and weight logs",
	Long: `fitwatch reads a fitness tracker export (workouts, calorie days, weight
samples, profile and training plan), scores consistency, calorie adherence,
weight trend and training performance, and surfaces insights.

Run 'fitwatch' with no arguments to run the summary command.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runSummary,
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/fitwatch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Fitness export directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Also write JSON logs to this file, rotated at 10 MB (useful with watch)")
}

// setup builds the logger and applies color settings before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	l, err := newLogger(flagVerbose, flagLogFile)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = l

	if output.ShouldDisableColor(flagNoColor, os.Stdout) {
		output.SetNoColor(true)
	}
	return nil
}

// newLogger returns a development logger at debug level when verbose, and a
// production logger that only reports warnings otherwise. Both write to stderr
// so stdout stays clean for --json. A non-empty logFile adds a rotating JSON
// log at info level, or debug when verbose.
func newLogger(verbose bool, logFile string) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Sampling = nil
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil || logFile == "" {
		return l, err
	}

	fileLevel := zapcore.InfoLevel
	if verbose {
		fileLevel = zapcore.DebugLevel
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			Compress:   true,
		}),
		fileLevel,
	)
	return l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	})), nil
}
