// Package report exports a progress summary as a PDF or CSV document.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
)

// Format is an export format.
type Format string

// Supported formats.
const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPDF, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format: %q (want pdf or csv)", s)
}

// Data contains everything a report shows.
type Data struct {
	Name        string
	Goal        string
	GeneratedAt time.Time
	Summary     analyzer.ProgressSummary
	Nutrition   analyzer.NutritionBreakdown
	StreakDays  int

	// WeekCompletion is the current plan week's completion, or -1 without a plan.
	WeekCompletion int
}

// Generator renders reports.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a Generator. A nil logger disables logging.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate renders data in the given format.
func (g *Generator) Generate(data *Data, format Format) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatPDF:
		out, err = g.generatePDF(data)
	case FormatCSV:
		out, err = g.generateCSV(data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	g.logger.Debug("report generated",
		zap.String("format", string(format)),
		zap.Int("size_bytes", len(out)),
	)
	return out, nil
}

// metricRows returns the metric table shared by both formats.
func metricRows(data *Data) [][2]string {
	s := data.Summary
	rows := [][2]string{
		{"overall_score", strconv.Itoa(s.OverallScore)},
		{"consistency_score", strconv.Itoa(s.ConsistencyScore)},
		{"calorie_adherence", strconv.Itoa(s.CalorieAdherence)},
		{"weight_trend_kg", strconv.FormatFloat(s.WeightTrend, 'f', 1, 64)},
		{"performance_improvement", strconv.Itoa(s.PerformanceImprovement)},
		{"streak_days", strconv.Itoa(data.StreakDays)},
		{"avg_intake_kcal", fmt.Sprintf("%.0f", data.Nutrition.AvgIntake)},
		{"target_kcal", fmt.Sprintf("%.0f", data.Nutrition.TargetCalorie)},
		{"avg_protein_g", fmt.Sprintf("%.0f", data.Nutrition.AvgProteinG)},
		{"avg_carbs_g", fmt.Sprintf("%.0f", data.Nutrition.AvgCarbsG)},
		{"avg_fats_g", fmt.Sprintf("%.0f", data.Nutrition.AvgFatsG)},
	}
	if data.WeekCompletion >= 0 {
		rows = append(rows, [2]string{"week_completion", strconv.Itoa(data.WeekCompletion)})
	}
	return rows
}

// generateCSV writes metric,value rows followed by insight rows.
func (g *Generator) generateCSV(data *Data) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"metric", "value"}); err != nil {
		return nil, err
	}
	for _, row := range metricRows(data) {
		if err := w.Write(row[:]); err != nil {
			return nil, err
		}
	}

	if len(data.Summary.Insights) > 0 {
		if err := w.Write([]string{"insight_type", "title", "message"}); err != nil {
			return nil, err
		}
		for _, in := range data.Summary.Insights {
			if err := w.Write([]string{string(in.Type), in.Title, in.Message}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var metricLabels = map[string]string{
	"overall_score":           "Overall score",
	"consistency_score":       "Consistency",
	"calorie_adherence":       "Calorie adherence",
	"weight_trend_kg":         "Weight trend (kg)",
	"performance_improvement": "Performance change (%)",
	"streak_days":             "Workout streak (days)",
	"avg_intake_kcal":         "Avg intake (kcal)",
	"target_kcal":             "Target (kcal)",
	"avg_protein_g":           "Avg protein (g)",
	"avg_carbs_g":             "Avg carbs (g)",
	"avg_fats_g":              "Avg fats (g)",
	"week_completion":         "Week completion (%)",
}

// generatePDF renders a single-page report with core fonts.
func (g *Generator) generatePDF(data *Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, "Progress Report", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	if data.Name != "" {
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Athlete: %s", data.Name)), "", 1, "L", false, 0, "")
	}
	if data.Goal != "" {
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Goal: %s", data.Goal)), "", 1, "L", false, 0, "")
	}
	generated := data.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	addSectionHeader(pdf, "Metrics")
	for _, row := range metricRows(data) {
		pdf.CellFormat(80, 7, metricLabels[row[0]], "B", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row[1], "B", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	addSectionHeader(pdf, "Insights")
	if len(data.Summary.Insights) == 0 {
		pdf.CellFormat(0, 8, "No insights for this period.", "", 1, "L", false, 0, "")
	}
	for _, in := range data.Summary.Insights {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("[%s] %s", in.Type, in.Title)), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(in.Message), "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}
