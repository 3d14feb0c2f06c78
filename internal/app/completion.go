package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/fitness"
	"github.com/blackwell-systems/fitwatch/internal/output"
)

var (
	completionWeek int
	completionDay  string
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Show task completion for the training plan",
	Long: `Show how many of the planned tasks have been completed for each day of
a plan week and for the week as a whole.

A day counts its workout (if scheduled), each meal and hydration. The week
counts workouts on workout days and every meal.

Examples:
  fitwatch completion              # current plan week
  fitwatch completion --week 0     # first plan week
  fitwatch completion --day Mon    # a single day of the current week`,
	RunE: runCompletion,
}

func init() {
	completionCmd.Flags().IntVar(&completionWeek, "week", -1, "Zero-based plan week (default: current week)")
	completionCmd.Flags().StringVar(&completionDay, "day", "", "Show a single day by name (case-insensitive)")
	rootCmd.AddCommand(completionCmd)
}

// errNoPlan is returned when the export directory has no training plan.
var errNoPlan = errors.New("no training plan found; expected plan.json in the export directory")

// weekCompletion is the JSON-serializable completion of one plan week.
type weekCompletion struct {
	Week    int             `json:"week"`
	Percent int             `json:"percent"`
	Days    []dayCompletion `json:"days"`
}

type dayCompletion struct {
	Day     string `json:"day"`
	Type    string `json:"type"`
	Percent int    `json:"percent"`
}

func runCompletion(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	plan, err := fitness.LoadPlan(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}
	if plan == nil {
		return errNoPlan
	}

	idx := plan.CurrentWeek
	if completionWeek >= 0 {
		idx = completionWeek
	}

	wc, err := buildWeekCompletion(plan, idx, completionDay)
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(wc)
	}

	renderCompletion(wc)
	return nil
}

// buildWeekCompletion computes completion for week idx. A non-empty day
// restricts the day list to that day; the week percentage is unaffected.
func buildWeekCompletion(plan *fitness.TrainingPlan, idx int, day string) (*weekCompletion, error) {
	week, ok := plan.Week(idx)
	if !ok {
		return nil, fmt.Errorf("week %d out of range (plan has %d weeks)", idx, len(plan.Weeks))
	}

	wc := &weekCompletion{
		Week:    idx,
		Percent: analyzer.WeeklyCompletion(week),
	}
	for _, d := range week.Days {
		if day != "" && !strings.EqualFold(d.Day, day) {
			continue
		}
		wc.Days = append(wc.Days, dayCompletion{
			Day:     d.Day,
			Type:    d.Type,
			Percent: analyzer.DailyCompletion(d),
		})
	}
	if day != "" && len(wc.Days) == 0 {
		return nil, fmt.Errorf("day %q not found in week %d", day, idx)
	}
	return wc, nil
}

func renderCompletion(wc *weekCompletion) {
	fmt.Println(output.Section(fmt.Sprintf("Plan Completion: Week %d", wc.Week)))
	fmt.Println()

	tbl := output.NewTable("Day", "Type", "Completion")
	for _, d := range wc.Days {
		tbl.AddRow(d.Day, d.Type, output.ScoreBar(float64(d.Percent), 10))
	}
	tbl.Print()

	fmt.Println()
	fmt.Printf(" %s %s\n\n",
		output.StyleLabel.Render("Week total"),
		output.ScoreBar(float64(wc.Percent), 20))
}
