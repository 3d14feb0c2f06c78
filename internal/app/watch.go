package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fitwatch/internal/output"
	"github.com/blackwell-systems/fitwatch/internal/watcher"
)

var (
	watchInterval  time.Duration
	watchScoreDrop int
	watchQuiet     bool
)

// minWatchInterval keeps the watcher from re-reading the export in a tight loop.
const minWatchInterval = 30 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor the export directory and alert on progress changes",
	Long: `Periodically re-read the fitness export and recompute progress. When
something notable happens (overall score drops, new insights, a broken
streak, newly logged workouts, a completed plan week), desktop
notifications and terminal alerts are emitted.

Examples:
  fitwatch watch                   # check every 10 minutes (ctrl-c to stop)
  fitwatch watch --interval 1m     # check every minute
  fitwatch watch --score-drop 10   # only warn on drops of 10 points or more`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Check interval as duration string (default from config, 10m)")
	watchCmd.Flags().IntVar(&watchScoreDrop, "score-drop", 0, "Overall score decrease that raises a warning (default from config, 5)")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interval := cfg.Watch.Interval
	if watchInterval > 0 {
		interval = watchInterval
	}
	if interval < minWatchInterval {
		return fmt.Errorf("interval must be at least %s, got %s", minWatchInterval, interval)
	}

	scoreDrop := cfg.Watch.ScoreDrop
	if watchScoreDrop > 0 {
		scoreDrop = watchScoreDrop
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	alertFn := func(a watcher.Alert) {
		_ = watcher.Notify(a)
		if !watchQuiet {
			printAlert(a)
		}
	}

	w := watcher.New(watcher.Config{
		DataDir:   cfg.DataDir,
		Interval:  interval,
		Target:    cfg.FitnessTarget(),
		Options:   cfg.AnalyzerOptions(),
		ScoreDrop: scoreDrop,
	}, logger, alertFn)

	if !watchQuiet {
		initial, err := w.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("initial snapshot failed: %w", err)
		}
		fmt.Printf("fitwatch watching %s (checking every %s)\n", cfg.DataDir, interval)
		fmt.Printf("[%s] %s Score %d/100 (%d workouts, %d-day streak)\n",
			time.Now().Format("15:04:05"),
			checkMark(),
			initial.Summary.OverallScore,
			initial.WorkoutCount,
			initial.Streak)
	}

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		if !watchQuiet {
			fmt.Println("\nStopped.")
		}
		return nil
	}
	return err
}

// printAlert formats and prints an alert to the terminal.
func printAlert(a watcher.Alert) {
	fmt.Printf("[%s] %s %s\n", a.Time.Format("15:04:05"), alertIcon(a.Level), output.StyleBold.Render(a.Title))
	if a.Message != "" {
		fmt.Printf("           %s\n", output.StyleMuted.Render(a.Message))
	}
}

// alertIcon returns the styled terminal indicator for an alert level.
func alertIcon(level string) string {
	switch level {
	case watcher.LevelCritical:
		return output.StyleError.Render("●")
	case watcher.LevelWarning:
		return output.StyleWarning.Render("▲")
	case watcher.LevelInfo:
		return output.StyleSuccess.Render("✓")
	}
	return " "
}

func checkMark() string {
	return output.StyleSuccess.Render("✓")
}
