// Package analyzer turns workout, calorie and weight histories into progress
// scores, trends, insights and task completion percentages. Every function is
// pure: inputs are read, never modified.
package analyzer

import "github.com/blackwell-systems/fitwatch/internal/insight"

// Default analysis windows.
const (
	DefaultConsistencyDays = 30
	DefaultAdherenceDays   = 7
	DefaultTrendWeeks      = 4
	DefaultTargetCalories  = 2000
)

// WorkoutsPerWeekTarget is the weekly workout cadence treated as full compliance.
const WorkoutsPerWeekTarget = 4

// Overall score weights.
const (
	scoreWeightConsistency = 0.40
	scoreWeightAdherence   = 0.30
	scoreWeightTrend       = 0.15
	scoreWeightPerformance = 0.15
)

// ProgressSummary is the result of aggregating all progress metrics.
type ProgressSummary struct {
	// OverallScore is the weighted composite score (0-100).
	OverallScore int `json:"overall_score"`

	// ConsistencyScore is the share of expected workouts completed (0-100).
	ConsistencyScore int `json:"consistency_score"`

	// CalorieAdherence is how close daily intake stayed to target (0-100).
	CalorieAdherence int `json:"calorie_adherence"`

	// WeightTrend is the weight change in kg, rounded to one decimal.
	WeightTrend float64 `json:"weight_trend"`

	// PerformanceImprovement is the signed training volume change in percent.
	PerformanceImprovement int `json:"performance_improvement"`

	// Insights are all qualifying insights in rule order.
	Insights []insight.Insight `json:"insights"`
}

// Options overrides the analysis windows. Zero fields use the defaults.
type Options struct {
	ConsistencyDays int `json:"consistency_days"`
	AdherenceDays   int `json:"adherence_days"`
	TrendWeeks      int `json:"trend_weeks"`
}

func (o Options) withDefaults() Options {
	if o.ConsistencyDays <= 0 {
		o.ConsistencyDays = DefaultConsistencyDays
	}
	if o.AdherenceDays <= 0 {
		o.AdherenceDays = DefaultAdherenceDays
	}
	if o.TrendWeeks <= 0 {
		o.TrendWeeks = DefaultTrendWeeks
	}
	return o
}

// NutritionBreakdown holds per-day averages over the adherence window.
type NutritionBreakdown struct {
	Days          int     `json:"days"`
	AvgIntake     float64 `json:"avg_intake"`
	AvgBurned     float64 `json:"avg_burned"`
	AvgNet        float64 `json:"avg_net"`
	AvgProteinG   float64 `json:"avg_protein_g"`
	AvgCarbsG     float64 `json:"avg_carbs_g"`
	AvgFatsG      float64 `json:"avg_fats_g"`
	TargetCalorie float64 `json:"target_calories"`
}
