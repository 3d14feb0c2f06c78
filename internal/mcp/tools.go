package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/fitness"
	"github.com/blackwell-systems/fitwatch/internal/insight"
)

// ProgressSummaryResult is the progress summary plus the resolved target and
// supplementary nutrition and streak figures.
type ProgressSummaryResult struct {
	analyzer.ProgressSummary
	Goal           string                      `json:"goal"`
	TargetCalories float64                     `json:"target_calories"`
	Nutrition      analyzer.NutritionBreakdown `json:"nutrition"`
	StreakDays     int                         `json:"streak_days"`
}

// InsightsResult holds the insights in rule order.
type InsightsResult struct {
	Insights []insight.Insight `json:"insights"`
	Total    int               `json:"total"`
}

// CompletionResult holds completion percentages for one plan week.
type CompletionResult struct {
	Week        int             `json:"week"`
	WeekPercent int             `json:"week_percent"`
	Days        []DayCompletion `json:"days"`
}

// DayCompletion is one day's completion within a week.
type DayCompletion struct {
	Day     string `json:"day"`
	Type    string `json:"type"`
	Percent int    `json:"percent"`
}

// SummaryInput holds the optional window overrides for get_progress_summary.
type SummaryInput struct {
	ConsistencyDays int `json:"consistency_days,omitempty" jsonschema:"Consistency window in days (default 30)"`
	AdherenceDays   int `json:"adherence_days,omitempty" jsonschema:"Calorie adherence window in logged days (default 7)"`
	TrendWeeks      int `json:"trend_weeks,omitempty" jsonschema:"Weight and performance window in weeks (default 4)"`
}

// InsightsInput is the input for get_insights.
type InsightsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum insights to return (default all)"`
}

// CompletionInput is the input for get_completion.
type CompletionInput struct {
	Week *int `json:"week,omitempty" jsonschema:"Zero-based plan week (default current week)"`
}

// errNoPlan is returned by get_completion when the export has no plan.json.
var errNoPlan = errors.New("no training plan found in export directory")

// toolNames lists the registered tools in registration order.
var toolNames = []string{"get_progress_summary", "get_insights", "get_completion"}

func addTools(srv *mcp.Server, s *Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        toolNames[0],
		Description: "Overall progress score with consistency, calorie adherence, weight trend, performance improvement and insights. Optional window overrides: consistency_days, adherence_days, trend_weeks.",
	}, toolHandler(s, toolNames[0], s.progressSummary))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        toolNames[1],
		Description: "Progress insights in rule order: consistency, nutrition, goal weight progress, strength. Optional limit.",
	}, toolHandler(s, toolNames[1], s.insights))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        toolNames[2],
		Description: "Per-day and weekly task completion percentages for a training plan week. Optional zero-based week, default the current week.",
	}, toolHandler(s, toolNames[2], s.completion))
}

// progress is a loaded history together with the summary computed from it.
type progress struct {
	history *fitness.History
	target  fitness.Target
	opts    analyzer.Options
	summary analyzer.ProgressSummary
}

// summarize loads the export directory and computes the summary. Zero fields
// in opts fall back to the configured windows.
func (s *Server) summarize(ctx context.Context, opts analyzer.Options) (*progress, error) {
	h, err := fitness.LoadHistory(ctx, s.cfg.DataDir, s.logger)
	if err != nil {
		return nil, err
	}

	base := s.cfg.AnalyzerOptions()
	if opts.ConsistencyDays <= 0 {
		opts.ConsistencyDays = base.ConsistencyDays
	}
	if opts.AdherenceDays <= 0 {
		opts.AdherenceDays = base.AdherenceDays
	}
	if opts.TrendWeeks <= 0 {
		opts.TrendWeeks = base.TrendWeeks
	}

	target := analyzer.ResolveTarget(s.cfg.FitnessTarget(), h.Profile)
	return &progress{
		history: h,
		target:  target,
		opts:    opts,
		summary: analyzer.SummarizeAt(h, target, opts, s.now()),
	}, nil
}

// progressSummary returns the full progress summary.
func (s *Server) progressSummary(ctx context.Context, in SummaryInput) (ProgressSummaryResult, error) {
	p, err := s.summarize(ctx, analyzer.Options{
		ConsistencyDays: in.ConsistencyDays,
		AdherenceDays:   in.AdherenceDays,
		TrendWeeks:      in.TrendWeeks,
	})
	if err != nil {
		return ProgressSummaryResult{}, err
	}

	return ProgressSummaryResult{
		ProgressSummary: p.summary,
		Goal:            p.target.Goal,
		TargetCalories:  p.target.TargetCalories,
		Nutrition:       analyzer.Nutrition(p.history.CalorieDays, p.target.TargetCalories, p.opts.AdherenceDays),
		StreakDays:      analyzer.WorkoutStreak(p.history.Workouts, s.now()),
	}, nil
}

// insights returns the insights, optionally truncated.
func (s *Server) insights(ctx context.Context, in InsightsInput) (InsightsResult, error) {
	p, err := s.summarize(ctx, analyzer.Options{})
	if err != nil {
		return InsightsResult{}, err
	}

	return InsightsResult{
		Insights: insight.Limit(p.summary.Insights, in.Limit),
		Total:    len(p.summary.Insights),
	}, nil
}

// completion returns completion for the requested or current week.
func (s *Server) completion(_ context.Context, in CompletionInput) (CompletionResult, error) {
	plan, err := fitness.LoadPlan(s.cfg.DataDir)
	if err != nil {
		return CompletionResult{}, err
	}
	if plan == nil {
		return CompletionResult{}, errNoPlan
	}

	idx := plan.CurrentWeek
	if in.Week != nil {
		idx = *in.Week
	}
	week, ok := plan.Week(idx)
	if !ok {
		return CompletionResult{}, fmt.Errorf("week %d out of range (plan has %d weeks)", idx, len(plan.Weeks))
	}

	result := CompletionResult{
		Week:        idx,
		WeekPercent: analyzer.WeeklyCompletion(week),
		Days:        make([]DayCompletion, 0, len(week.Days)),
	}
	for _, d := range week.Days {
		result.Days = append(result.Days, DayCompletion{
			Day:     d.Day,
			Type:    d.Type,
			Percent: analyzer.DailyCompletion(d),
		})
	}
	return result, nil
}
