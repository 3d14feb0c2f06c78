package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
	"github.com/blackwell-systems/fitwatch/internal/insight"
)

func sampleData() *Data {
	return &Data{
		Name:        "Sam",
		Goal:        "weight_loss",
		GeneratedAt: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
		Summary: analyzer.ProgressSummary{
			OverallScore:     68,
			ConsistencyScore: 88,
			CalorieAdherence: 100,
			WeightTrend:      -2,
			Insights: []insight.Insight{
				{Type: insight.TypeSuccess, Title: "Excellent Consistency", Message: "You've completed 88% of your expected workouts."},
				{Type: insight.TypeSuccess, Title: "Weight Loss Progress", Message: "You've lost 2 kg over the last 4 weeks!"},
			},
		},
		Nutrition:      analyzer.NutritionBreakdown{Days: 7, AvgIntake: 1810.4, TargetCalorie: 1800, AvgProteinG: 150},
		StreakDays:     3,
		WeekCompletion: -1,
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestGenerate_PDF(t *testing.T) {
	out, err := NewGenerator(zap.NewNop()).Generate(sampleData(), FormatPDF)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]), "should be a valid PDF file")
}

func TestGenerate_PDFNoInsights(t *testing.T) {
	data := sampleData()
	data.Summary.Insights = nil
	data.GeneratedAt = time.Time{}

	out, err := NewGenerator(nil).Generate(data, FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_CSV(t *testing.T) {
	out, err := NewGenerator(zap.NewNop()).Generate(sampleData(), FormatCSV)
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"metric", "value"}, records[0])
	assert.Equal(t, []string{"overall_score", "68"}, records[1])
	assert.Contains(t, records, []string{"weight_trend_kg", "-2.0"})
	assert.Contains(t, records, []string{"avg_intake_kcal", "1810"})
	assert.NotContains(t, records, []string{"week_completion", "-1"})

	last := records[len(records)-1]
	assert.Equal(t, []string{"success", "Weight Loss Progress", "You've lost 2 kg over the last 4 weeks!"}, last)
}

func TestGenerate_CSVWeekCompletion(t *testing.T) {
	data := sampleData()
	data.WeekCompletion = 75

	out, err := NewGenerator(nil).Generate(data, FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(out), "week_completion,75\n")
}

func TestGenerate_UnknownFormat(t *testing.T) {
	_, err := NewGenerator(nil).Generate(sampleData(), Format("docx"))
	assert.Error(t, err)
}
