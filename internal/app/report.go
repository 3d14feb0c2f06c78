package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/report"
)

var (
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the progress summary as PDF or CSV",
	Long: `Write the current progress summary, nutrition averages and insights to
a PDF or CSV file.

Examples:
  fitwatch report                               # fitwatch-report.pdf
  fitwatch report --format csv --out week.csv`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", string(report.FormatPDF), "Output format: pdf or csv")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Output file path (default: fitwatch-report.<format>)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(reportFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := runAnalysis(cmd.Context(), cfg, analyzer.Options{})
	if err != nil {
		return err
	}

	data, err := report.NewGenerator(logger).Generate(reportData(a), format)
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}

	path := reportOut
	if path == "" {
		path = "fitwatch-report." + string(format)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	logger.Info("report written", zap.String("path", path), zap.Int("bytes", len(data)))

	if flagJSON {
		return writeJSON(map[string]any{"path": path, "format": format, "bytes": len(data)})
	}
	fmt.Printf(" %s Report written to %s\n", checkMark(), path)
	return nil
}

// reportData assembles the report contents from a completed analysis.
func reportData(a *analysis) *report.Data {
	return &report.Data{
		Name:           a.history.Profile.Name,
		Goal:           a.target.Goal,
		GeneratedAt:    a.now,
		Summary:        a.summary,
		Nutrition:      a.nutrition(),
		StreakDays:     a.streak(),
		WeekCompletion: a.weekCompletion(),
	}
}
