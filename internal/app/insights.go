package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/insight"
	"github.com/blackwell-systems/fitwatch/internal/output"
)

var insightsLimit int

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "List progress insights in rule order",
	Long: `Evaluate the insight rules against the current progress metrics and
list every insight that applies: consistency first, then nutrition, goal
weight progress and strength gains.

Examples:
  fitwatch insights             # all insights
  fitwatch insights --limit 3   # the first three, as shown on the dashboard`,
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().IntVar(&insightsLimit, "limit", 0, "Maximum number of insights to show (0 = all)")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := runAnalysis(cmd.Context(), cfg, analyzer.Options{})
	if err != nil {
		return err
	}

	shown := insight.Limit(a.summary.Insights, insightsLimit)

	if flagJSON {
		return writeJSON(map[string]any{
			"insights": shown,
			"total":    len(a.summary.Insights),
		})
	}

	fmt.Println(output.Section("Insights"))
	fmt.Println()
	if len(shown) == 0 {
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("No insights apply to the current data."))
		return nil
	}
	for _, in := range shown {
		fmt.Println(output.Insight(in))
		fmt.Println()
	}
	return nil
}
