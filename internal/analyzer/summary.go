package analyzer

import (
	"math"
	"time"

	"github.com/blackwell-systems/fitwatch/internal/fitness"
	"github.com/blackwell-systems/fitwatch/internal/insight"
)

// Summarize computes every progress metric, the overall score and the
// insights for h against target t.
func Summarize(h *fitness.History, t fitness.Target, opts Options) ProgressSummary {
	return SummarizeAt(h, t, opts, time.Now())
}

// SummarizeAt is Summarize evaluated at now.
func SummarizeAt(h *fitness.History, t fitness.Target, opts Options, now time.Time) ProgressSummary {
	if h == nil {
		h = &fitness.History{}
	}
	opts = opts.withDefaults()
	t = ResolveTarget(t, h.Profile)

	s := ProgressSummary{
		ConsistencyScore:       ConsistencyScoreAt(h.Workouts, opts.ConsistencyDays, now),
		CalorieAdherence:       CalorieAdherence(h.CalorieDays, t.TargetCalories, opts.AdherenceDays),
		WeightTrend:            WeightTrend(h.Weights, opts.TrendWeeks),
		PerformanceImprovement: PerformanceImprovementAt(h.Workouts, opts.TrendWeeks, now),
	}
	s.OverallScore = OverallScore(s.ConsistencyScore, s.CalorieAdherence, s.WeightTrend, s.PerformanceImprovement)
	s.Insights = insight.NewEngine().Run(&insight.Context{
		ConsistencyScore:       s.ConsistencyScore,
		CalorieAdherence:       s.CalorieAdherence,
		WeightTrend:            s.WeightTrend,
		PerformanceImprovement: s.PerformanceImprovement,
		Goal:                   t.Goal,
		Weeks:                  opts.TrendWeeks,
	})
	return s
}

// OverallScore combines the four metrics into a 0-100 composite.
//
// Weight change contributes |trend| x 10 capped at 100, and only performance
// gains count; regressions surface as insights instead.
func OverallScore(consistency, adherence int, weightTrend float64, performance int) int {
	trendPart := math.Min(math.Abs(weightTrend)*10, 100)
	perfPart := math.Max(0, float64(performance))

	score := roundHalfUp(float64(consistency)*scoreWeightConsistency +
		float64(adherence)*scoreWeightAdherence +
		trendPart*scoreWeightTrend +
		perfPart*scoreWeightPerformance)
	return clampPercent(score)
}

// ResolveTarget fills unset target fields from the profile, falling back to
// DefaultTargetCalories.
func ResolveTarget(t fitness.Target, p fitness.Profile) fitness.Target {
	if t.TargetCalories <= 0 {
		t.TargetCalories = p.TargetCalories
	}
	if t.TargetCalories <= 0 {
		t.TargetCalories = DefaultTargetCalories
	}
	if t.Goal == "" {
		t.Goal = p.Goal
	}
	return t
}
