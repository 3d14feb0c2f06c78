package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/insight"
	"github.com/blackwell-systems/fitwatch/internal/output"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the overall progress score and top insights",
	Long: `Load the fitness export, compute the weighted overall score from
consistency (40%), calorie adherence (30%), weight trend (15%) and
performance improvement (15%), and show the top insights.`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

// summaryOutput is the JSON-serializable output for the summary command.
type summaryOutput struct {
	analyzer.ProgressSummary
	Goal           string  `json:"goal"`
	TargetCalories float64 `json:"target_calories"`
	StreakDays     int     `json:"streak_days"`
	WeekCompletion *int    `json:"week_completion,omitempty"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := runAnalysis(cmd.Context(), cfg, analyzer.Options{})
	if err != nil {
		return err
	}

	if flagJSON {
		out := summaryOutput{
			ProgressSummary: a.summary,
			Goal:            a.target.Goal,
			TargetCalories:  a.target.TargetCalories,
			StreakDays:      a.streak(),
		}
		if wc := a.weekCompletion(); wc >= 0 {
			out.WeekCompletion = &wc
		}
		return writeJSON(out)
	}

	renderSummary(a)
	return nil
}

func renderSummary(a *analysis) {
	s := a.summary

	fmt.Println(output.Section(fmt.Sprintf("fitwatch %s", appVersion)))
	fmt.Println()
	fmt.Printf(" %-24s %s\n", "Overall score", output.ScoreBar(float64(s.OverallScore), 30))
	fmt.Println()
	fmt.Printf(" %-24s %s\n", "Consistency", output.ScoreBar(float64(s.ConsistencyScore), 20))
	fmt.Printf(" %-24s %s\n", "Calorie adherence", output.ScoreBar(float64(s.CalorieAdherence), 20))
	fmt.Printf(" %-24s %s\n", "Weight trend", output.WeightChange(s.WeightTrend, a.target.Goal))
	fmt.Printf(" %-24s %s\n", "Performance", output.TrendArrowPercent(float64(s.PerformanceImprovement), true))
	fmt.Printf(" %-24s %d days\n", "Workout streak", a.streak())
	if wc := a.weekCompletion(); wc >= 0 {
		fmt.Printf(" %-24s %s\n", "This week", output.ScoreBar(float64(wc), 20))
	}

	top := insight.Limit(s.Insights, a.cfg.Insights.Limit)
	if len(top) > 0 {
		fmt.Println(output.Section("Insights"))
		fmt.Println()
		for _, in := range top {
			fmt.Println(output.Insight(in))
		}
		if more := len(s.Insights) - len(top); more > 0 {
			fmt.Printf("\n %s\n", output.StyleMuted.Render(fmt.Sprintf("%d more; run 'fitwatch insights' to see all.", more)))
		}
	}
	fmt.Println()
}
