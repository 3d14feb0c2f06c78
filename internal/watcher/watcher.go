// Package watcher polls the fitness export directory, recomputes progress at a
// regular interval and emits alerts when scores drop or insights change.
package watcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

// DefaultScoreDrop is the overall score decrease that raises a warning.
const DefaultScoreDrop = 5

// WatchState captures a point-in-time progress summary of the export directory.
type WatchState struct {
	Timestamp       time.Time
	Summary         analyzer.ProgressSummary
	WorkoutCount    int
	CalorieDayCount int
	WeightCount     int
	Streak          int

	// WeekCompletion is the current plan week's completion, or -1 without a plan.
	WeekCompletion int

	workouts []fitness.Workout
}

// Alert levels, most severe first.
const (
	LevelCritical = "critical"
	LevelWarning  = "warning"
	LevelInfo     = "info"
)

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // LevelInfo, LevelWarning or LevelCritical
	Title   string
	Message string
	Time    time.Time
}

// Config configures a Watcher.
type Config struct {
	DataDir   string
	Interval  time.Duration
	Target    fitness.Target
	Options   analyzer.Options
	ScoreDrop int
}

// Watcher monitors the export directory at a regular interval and emits
// alerts when notable changes are detected.
type Watcher struct {
	cfg           Config
	logger        *zap.Logger
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
	now           func() time.Time
}

// New creates a Watcher for cfg. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger, alertFn func(Alert)) *Watcher {
	if cfg.ScoreDrop <= 0 {
		cfg.ScoreDrop = DefaultScoreDrop
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		cfg:           cfg,
		logger:        logger,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
		now:           time.Now,
	}
}

// Run starts the watch loop. It takes an initial snapshot, then checks at
// every interval. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	initial, err := w.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial
	w.logger.Info("watching export directory",
		zap.String("dir", w.cfg.DataDir),
		zap.Duration("interval", w.cfg.Interval),
		zap.Int("overall_score", initial.Summary.OverallScore),
	)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, a := range w.Check(ctx) {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.Snapshot(ctx)
	if err != nil {
		w.logger.Warn("snapshot failed", zap.Error(err))
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read fitness data: %v", err),
			Time:    w.now(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr, w.cfg.ScoreDrop)
	}

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.logger.Debug("check complete",
		zap.Int("overall_score", curr.Summary.OverallScore),
		zap.Int("alerts", len(alerts)),
		zap.Int("suppressed", len(raw)-len(alerts)),
	)

	w.previous = curr
	return alerts
}

// Snapshot loads the export directory and computes the current progress.
func (w *Watcher) Snapshot(ctx context.Context) (*WatchState, error) {
	h, err := fitness.LoadHistory(ctx, w.cfg.DataDir, w.logger)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	now := w.now()
	state := &WatchState{
		Timestamp:       now,
		Summary:         analyzer.SummarizeAt(h, w.cfg.Target, w.cfg.Options, now),
		WorkoutCount:    len(h.Workouts),
		CalorieDayCount: len(h.CalorieDays),
		WeightCount:     len(h.Weights),
		Streak:          analyzer.WorkoutStreak(h.Workouts, now),
		WeekCompletion:  -1,
		workouts:        h.Workouts,
	}

	plan, err := fitness.LoadPlan(w.cfg.DataDir)
	if err != nil {
		// A broken plan must not stop progress monitoring.
		w.logger.Warn("skipping training plan", zap.Error(err))
	} else if plan != nil {
		if week, ok := plan.Week(plan.CurrentWeek); ok {
			state.WeekCompletion = analyzer.WeeklyCompletion(week)
		}
	}

	return state, nil
}
