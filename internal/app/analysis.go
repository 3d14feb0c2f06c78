package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/config"
	"github.com/blackwell-systems/fitwatch/internal/fitness"
	"github.com/blackwell-systems/fitwatch/internal/output"
	"github.com/blackwell-systems/fitwatch/internal/store"
)

// analysis is everything the commands render: the loaded export, the resolved
// target and windows, and the computed summary.
type analysis struct {
	cfg     *config.Config
	history *fitness.History
	plan    *fitness.TrainingPlan
	target  fitness.Target
	opts    analyzer.Options
	summary analyzer.ProgressSummary
	now     time.Time
}

// loadConfig reads the configuration and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if !cfg.Output.Color {
		output.SetNoColor(true)
	}
	output.SetWidth(cfg.Output.Width)

	logger.Debug("config loaded",
		zap.String("data_dir", cfg.DataDir),
		zap.String("goal", cfg.Target.Goal),
	)
	return cfg, nil
}

// runAnalysis loads the export directory and summarizes it. Positive fields
// in override replace the configured windows.
func runAnalysis(ctx context.Context, cfg *config.Config, override analyzer.Options) (*analysis, error) {
	h, err := fitness.LoadHistory(ctx, cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	plan, err := fitness.LoadPlan(cfg.DataDir)
	if err != nil {
		logger.Warn("skipping training plan", zap.Error(err))
		plan = nil
	}

	opts := mergeOptions(cfg.AnalyzerOptions(), override)
	target := analyzer.ResolveTarget(cfg.FitnessTarget(), h.Profile)
	now := time.Now()

	return &analysis{
		cfg:     cfg,
		history: h,
		plan:    plan,
		target:  target,
		opts:    opts,
		summary: analyzer.SummarizeAt(h, target, opts, now),
		now:     now,
	}, nil
}

// mergeOptions returns base with every positive field of override applied.
func mergeOptions(base, override analyzer.Options) analyzer.Options {
	if override.ConsistencyDays > 0 {
		base.ConsistencyDays = override.ConsistencyDays
	}
	if override.AdherenceDays > 0 {
		base.AdherenceDays = override.AdherenceDays
	}
	if override.TrendWeeks > 0 {
		base.TrendWeeks = override.TrendWeeks
	}
	return base
}

// streak returns the current consecutive-day workout streak.
func (a *analysis) streak() int {
	return analyzer.WorkoutStreak(a.history.Workouts, a.now)
}

// nutrition returns the macro breakdown over the adherence window.
func (a *analysis) nutrition() analyzer.NutritionBreakdown {
	return analyzer.Nutrition(a.history.CalorieDays, a.target.TargetCalories, a.opts.AdherenceDays)
}

// weekCompletion returns the current plan week's completion, or -1 when there
// is no usable plan.
func (a *analysis) weekCompletion() int {
	if a.plan == nil {
		return -1
	}
	week, ok := a.plan.Week(a.plan.CurrentWeek)
	if !ok {
		return -1
	}
	return analyzer.WeeklyCompletion(week)
}

// completionRows flattens the current plan week into persisted rows: one per
// day followed by the week total.
func completionRows(plan *fitness.TrainingPlan) []store.CompletionRow {
	if plan == nil {
		return nil
	}
	week, ok := plan.Week(plan.CurrentWeek)
	if !ok {
		return nil
	}

	rows := make([]store.CompletionRow, 0, len(week.Days)+1)
	for i, d := range week.Days {
		label := d.Day
		if label == "" {
			label = fmt.Sprintf("day %d", i+1)
		}
		rows = append(rows, store.CompletionRow{
			Scope:   store.ScopeDay,
			Label:   label,
			Percent: analyzer.DailyCompletion(d),
		})
	}
	rows = append(rows, store.CompletionRow{
		Scope:   store.ScopeWeek,
		Label:   fmt.Sprintf("week %d", plan.CurrentWeek),
		Percent: analyzer.WeeklyCompletion(week),
	})
	return rows
}

// writeJSON writes v to stdout as indented JSON.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
