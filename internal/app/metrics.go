package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/output"
)

var (
	metricsDays          int
	metricsAdherenceDays int
	metricsWeeks         int
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show each progress metric in detail",
	Long: `Compute and display the individual progress metrics: workout
consistency over a day window, calorie adherence and macro averages over the
most recent logged days, and weight and training volume trends over a week
window.

Window flags override the configured defaults for this run only.`,
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().IntVar(&metricsDays, "days", 0, "Consistency window in days (default from config, 30)")
	metricsCmd.Flags().IntVar(&metricsAdherenceDays, "adherence-days", 0, "Calorie adherence window in logged days (default from config, 7)")
	metricsCmd.Flags().IntVar(&metricsWeeks, "weeks", 0, "Weight and performance window in weeks (default from config, 4)")
	rootCmd.AddCommand(metricsCmd)
}

// metricsOutput is the JSON-serializable output for the metrics command.
type metricsOutput struct {
	Windows     analyzer.Options   `json:"windows"`
	Consistency consistencyMetrics `json:"consistency"`
	Nutrition   nutritionMetrics   `json:"nutrition"`
	Weight      weightMetrics      `json:"weight"`
	Performance performanceMetrics `json:"performance"`
	Overall     int                `json:"overall_score"`
}

type consistencyMetrics struct {
	Score            int `json:"score"`
	WorkoutsInWindow int `json:"workouts_in_window"`
	Expected         int `json:"expected"`
	StreakDays       int `json:"streak_days"`
}

type nutritionMetrics struct {
	Adherence int `json:"adherence"`
	analyzer.NutritionBreakdown
}

type weightMetrics struct {
	Goal    string  `json:"goal"`
	Samples int     `json:"samples"`
	TrendKg float64 `json:"trend_kg"`
}

type performanceMetrics struct {
	ImprovementPercent int `json:"improvement_percent"`
	WorkoutsInWindow   int `json:"workouts_in_window"`
}

func runMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := runAnalysis(cmd.Context(), cfg, analyzer.Options{
		ConsistencyDays: metricsDays,
		AdherenceDays:   metricsAdherenceDays,
		TrendWeeks:      metricsWeeks,
	})
	if err != nil {
		return err
	}

	out := buildMetrics(a)

	if flagJSON {
		return writeJSON(out)
	}

	renderConsistency(out.Consistency, a.opts.ConsistencyDays)
	renderNutrition(out.Nutrition)
	renderWeight(out.Weight, a.opts.TrendWeeks)
	renderPerformance(out.Performance, a.opts.TrendWeeks)

	fmt.Printf(" %s %s\n\n",
		output.StyleLabel.Render("Overall score"),
		output.ScoreBar(float64(out.Overall), 30))
	return nil
}

// buildMetrics gathers the detailed metric figures from a completed analysis.
func buildMetrics(a *analysis) metricsOutput {
	s := a.summary
	return metricsOutput{
		Windows: a.opts,
		Consistency: consistencyMetrics{
			Score:            s.ConsistencyScore,
			WorkoutsInWindow: len(analyzer.WorkoutsWithinDays(a.history.Workouts, a.opts.ConsistencyDays, a.now)),
			Expected:         analyzer.ExpectedWorkouts(a.opts.ConsistencyDays),
			StreakDays:       a.streak(),
		},
		Nutrition: nutritionMetrics{
			Adherence:          s.CalorieAdherence,
			NutritionBreakdown: a.nutrition(),
		},
		Weight: weightMetrics{
			Goal:    a.target.Goal,
			Samples: len(a.history.Weights),
			TrendKg: s.WeightTrend,
		},
		Performance: performanceMetrics{
			ImprovementPercent: s.PerformanceImprovement,
			WorkoutsInWindow:   len(analyzer.WorkoutsWithinDays(a.history.Workouts, a.opts.TrendWeeks*7, a.now)),
		},
		Overall: s.OverallScore,
	}
}

func renderConsistency(c consistencyMetrics, days int) {
	fmt.Println(output.Section(fmt.Sprintf("Consistency (last %d days)", days)))

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Workouts logged"),
		output.StyleValue.Render(fmt.Sprintf("%d of %d", c.WorkoutsInWindow, c.Expected)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Current streak"),
		output.StyleValue.Render(fmt.Sprintf("%d days", c.StreakDays)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Score"),
		output.ScoreBar(float64(c.Score), 20))
	fmt.Println()
}

func renderNutrition(n nutritionMetrics) {
	fmt.Println(output.Section(fmt.Sprintf("Nutrition (last %d logged days)", n.Days)))

	if n.Days == 0 {
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("No calorie days logged."))
		return
	}

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Avg intake"),
		output.StyleValue.Render(fmt.Sprintf("%.0f kcal", n.AvgIntake)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Target"),
		output.StyleValue.Render(fmt.Sprintf("%.0f kcal", n.TargetCalorie)))
	if n.AvgBurned > 0 {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Avg burned"),
			output.StyleValue.Render(fmt.Sprintf("%.0f kcal", n.AvgBurned)))
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Avg net"),
			output.StyleValue.Render(fmt.Sprintf("%.0f kcal", n.AvgNet)))
	}
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Macros (P/C/F)"),
		output.StyleValue.Render(fmt.Sprintf("%.0f/%.0f/%.0f g", n.AvgProteinG, n.AvgCarbsG, n.AvgFatsG)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Adherence"),
		output.ScoreBar(float64(n.Adherence), 20))
	fmt.Println()
}

func renderWeight(w weightMetrics, weeks int) {
	fmt.Println(output.Section(fmt.Sprintf("Weight (last %d samples)", weeks)))

	if w.Samples < 2 {
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("At least two weight samples are needed for a trend."))
		return
	}
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Change"),
		output.WeightChange(w.TrendKg, w.Goal))
	if w.Goal != "" {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Goal"),
			output.StyleValue.Render(w.Goal))
	}
	fmt.Println()
}

func renderPerformance(p performanceMetrics, weeks int) {
	fmt.Println(output.Section(fmt.Sprintf("Performance (last %d weeks, second half vs first)", weeks)))

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Recent workouts"),
		output.StyleValue.Render(fmt.Sprintf("%d", p.WorkoutsInWindow)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Volume change"),
		output.TrendArrowPercent(float64(p.ImprovementPercent), true))
	fmt.Println()
}
