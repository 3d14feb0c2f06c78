package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/config"
	"github.com/blackwell-systems/fitwatch/internal/fitness"
	"github.com/blackwell-systems/fitwatch/internal/output"
	"github.com/blackwell-systems/fitwatch/internal/store"
)

var (
	trackCompare int
	trackHistory int
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Snapshot and compare progress over time",
	Long: `Compute the current progress summary, store it as a snapshot in the
local database, and compare it against a previous snapshot to show deltas
with trend arrows.

Weight trend direction follows the goal: a falling trend is an improvement
for weight_loss and a rising one for muscle_gain.`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackCompare, "compare", 1, "Compare against Nth previous snapshot (1 = most recent)")
	trackCmd.Flags().IntVar(&trackHistory, "history", 0, "Show metric trends across N most recent snapshots")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := runAnalysis(cmd.Context(), cfg, analyzer.Options{})
	if err != nil {
		return err
	}

	db, err := store.Open(config.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	snapshotID, err := db.SaveSummary("track", appVersion, a.target.Goal, a.summary, completionRows(a.plan))
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	logger.Debug("snapshot recorded", zap.Int64("snapshot_id", snapshotID))

	if trackHistory > 0 {
		entries, err := loadHistory(db, trackHistory)
		if err != nil {
			return err
		}
		if flagJSON {
			return writeJSON(map[string]any{"history": entries})
		}
		renderHistory(entries, a.target.Goal)
		return nil
	}

	current, err := db.GetSnapshot(snapshotID)
	if err != nil {
		return fmt.Errorf("loading current snapshot: %w", err)
	}

	diff, err := buildDiff(db, current, trackCompare, a.target.Goal)
	if err != nil {
		return err
	}

	if flagJSON {
		result := map[string]any{"snapshot": current}
		if diff != nil {
			result["diff"] = diff
		}
		return writeJSON(result)
	}

	renderTrackOutput(current, diff, a.target.Goal)
	return nil
}

// buildDiff compares current against the snapshot compare steps before it.
// It returns nil when no such snapshot exists yet.
func buildDiff(db *store.DB, current *store.Snapshot, compare int, goal string) (*store.SnapshotDiff, error) {
	if compare < 1 {
		compare = 1
	}
	// compare=1 is the immediate predecessor, offset 2 from the newest.
	prev, err := db.GetSnapshotN(compare + 1)
	if errors.Is(err, store.ErrNoSnapshots) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading previous snapshot: %w", err)
	}

	prevMetrics, err := db.GetMetrics(prev.ID)
	if err != nil {
		return nil, fmt.Errorf("loading previous metrics: %w", err)
	}
	currMetrics, err := db.GetMetrics(current.ID)
	if err != nil {
		return nil, fmt.Errorf("loading current metrics: %w", err)
	}

	return &store.SnapshotDiff{
		Previous: prev,
		Current:  current,
		Deltas:   computeDeltas(prevMetrics, currMetrics, goal),
	}, nil
}

// metricDirection reports whether a higher value of the named metric is
// better. directional is false when the metric has no better direction for
// the goal, as with weight trend under general fitness.
func metricDirection(name, goal string) (higherIsBetter, directional bool) {
	if name != store.MetricWeightTrend {
		return true, true
	}
	switch goal {
	case fitness.GoalWeightLoss:
		return false, true
	case fitness.GoalMuscleGain:
		return true, true
	}
	return true, false
}

// computeDeltas compares two sets of progress metrics and returns MetricDelta entries.
func computeDeltas(prev, curr []store.ProgressMetric, goal string) []store.MetricDelta {
	prevMap := make(map[string]float64, len(prev))
	for _, m := range prev {
		prevMap[m.MetricName] = m.MetricValue
	}

	deltas := make([]store.MetricDelta, 0, len(curr))
	for _, m := range curr {
		prevVal := prevMap[m.MetricName]
		delta := m.MetricValue - prevVal

		direction := "unchanged"
		if delta != 0 {
			higherIsBetter, directional := metricDirection(m.MetricName, goal)
			switch {
			case !directional:
				direction = "changed"
			case (delta > 0) == higherIsBetter:
				direction = "improved"
			default:
				direction = "regressed"
			}
		}

		deltas = append(deltas, store.MetricDelta{
			Name:      m.MetricName,
			Previous:  prevVal,
			Current:   m.MetricValue,
			Delta:     delta,
			Direction: direction,
		})
	}
	return deltas
}

// trendCell renders a delta with an arrow styled by the metric's direction.
func trendCell(name, goal string, delta float64) string {
	higherIsBetter, directional := metricDirection(name, goal)
	if !directional {
		if delta == 0 {
			return output.StyleMuted.Render("─")
		}
		return output.StyleMuted.Render(fmt.Sprintf("%+.1f", delta))
	}
	return output.TrendArrow(delta, higherIsBetter)
}

func renderTrackOutput(current *store.Snapshot, diff *store.SnapshotDiff, goal string) {
	fmt.Println(output.Section("Track: Snapshot Comparison"))
	fmt.Println()
	fmt.Printf(" Snapshot #%d taken at %s\n\n", current.ID, current.TakenAt.Local().Format("2006-01-02 15:04:05"))

	if diff == nil {
		fmt.Println(" First snapshot recorded. Run 'fitwatch track' again later to see trends.")
		return
	}

	fmt.Printf(" Comparing against snapshot #%d (%s)\n\n",
		diff.Previous.ID, diff.Previous.TakenAt.Local().Format("2006-01-02 15:04:05"))

	tbl := output.NewTable("Metric", "Previous", "Current", "Delta", "Trend").AlignRight(1, 2, 3)
	for _, d := range diff.Deltas {
		tbl.AddRow(
			metricShortName(d.Name),
			fmt.Sprintf("%.1f", d.Previous),
			fmt.Sprintf("%.1f", d.Current),
			fmt.Sprintf("%+.1f", d.Delta),
			trendCell(d.Name, goal, d.Delta),
		)
	}
	tbl.Print()
}

// metricDisplayOrder defines the order metrics appear in history output.
var metricDisplayOrder = []string{
	store.MetricOverallScore,
	store.MetricConsistencyScore,
	store.MetricCalorieAdherence,
	store.MetricWeightTrend,
	store.MetricPerformanceImprovement,
}

// metricShortName returns a compact label for display in tables.
func metricShortName(name string) string {
	short := map[string]string{
		store.MetricOverallScore:           "Overall",
		store.MetricConsistencyScore:       "Consistency",
		store.MetricCalorieAdherence:       "Calorie Adherence",
		store.MetricWeightTrend:            "Weight Trend (kg)",
		store.MetricPerformanceImprovement: "Performance %",
	}
	if s, ok := short[name]; ok {
		return s
	}
	return name
}

// historyEntry is one snapshot with its metrics, for --history output.
type historyEntry struct {
	Snapshot store.Snapshot         `json:"snapshot"`
	Metrics  []store.ProgressMetric `json:"metrics"`
}

// loadHistory returns up to n snapshots with metrics, oldest first.
func loadHistory(db *store.DB, n int) ([]historyEntry, error) {
	snapshots, err := db.ListSnapshots(n)
	if err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}

	entries := make([]historyEntry, 0, len(snapshots))
	for i := len(snapshots) - 1; i >= 0; i-- {
		s := snapshots[i]
		metrics, err := db.GetMetrics(s.ID)
		if err != nil {
			return nil, fmt.Errorf("loading metrics for snapshot #%d: %w", s.ID, err)
		}
		entries = append(entries, historyEntry{Snapshot: s, Metrics: metrics})
	}
	return entries, nil
}

// renderHistory shows a multi-snapshot timeline table.
func renderHistory(entries []historyEntry, goal string) {
	fmt.Println(output.Section("Track: Progress History"))
	fmt.Println()
	fmt.Printf(" Showing %d most recent snapshots\n\n", len(entries))

	headers := []string{"Metric"}
	values := make([]map[string]float64, len(entries))
	for i, e := range entries {
		headers = append(headers, fmt.Sprintf("#%d %s", e.Snapshot.ID, e.Snapshot.TakenAt.Local().Format("Jan 02")))
		values[i] = make(map[string]float64, len(e.Metrics))
		for _, m := range e.Metrics {
			values[i][m.MetricName] = m.MetricValue
		}
	}
	headers = append(headers, "Trend")
	tbl := output.NewTable(headers...)
	for i := range entries {
		tbl.AlignRight(i + 1)
	}

	for _, name := range metricDisplayOrder {
		row := []string{metricShortName(name)}
		for _, v := range values {
			row = append(row, fmt.Sprintf("%.1f", v[name]))
		}

		trend := ""
		if len(values) >= 2 {
			trend = trendCell(name, goal, values[len(values)-1][name]-values[0][name])
		}
		row = append(row, trend)
		tbl.AddRow(row...)
	}

	tbl.Print()
}
