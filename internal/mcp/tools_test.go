package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blackwell-systems/fitwatch/internal/config"
	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

var toolsNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func writeExportFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestServer(t *testing.T, dir string) *Server {
	t.Helper()
	cfg := &config.Config{
		DataDir: dir,
		Target:  config.Target{Goal: fitness.GoalWeightLoss},
		Windows: config.DefaultWindows,
	}
	s := NewServer(cfg, "test", zap.NewNop())
	s.now = func() time.Time { return toolsNow }
	return s
}

func seedExport(t *testing.T) string {
	dir := t.TempDir()
	writeExportFile(t, dir, fitness.WorkoutsJSONLFile,
		`{"timestamp":"2026-10-19T07:00:00Z","name":"Push","exercises":[{"name":"Bench","sets":3,"reps":10,"weight":60}]}
{"timestamp":"2026-10-18T07:00:00Z","name":"Pull"}
`)
	writeExportFile(t, dir, fitness.CaloriesFile, `[{"date":"2026-10-18","intake":1800,"protein":140},{"date":"2026-10-19","intake":1800,"protein":160}]`)
	writeExportFile(t, dir, fitness.WeightsFile, `[{"date":"Week 1","weight":82},{"date":"Week 2","weight":80}]`)
	writeExportFile(t, dir, fitness.ProfileFile, `{"targetCalories":1800}`)
	return dir
}

func TestGetProgressSummary_EmptyExport(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	r, err := s.progressSummary(context.Background(), SummaryInput{})
	require.NoError(t, err)

	assert.Equal(t, 0, r.OverallScore)
	assert.Equal(t, 2000.0, r.TargetCalories)
	assert.Len(t, r.Insights, 2)
}

func TestGetProgressSummary_WithData(t *testing.T) {
	s := newTestServer(t, seedExport(t))

	r, err := s.progressSummary(context.Background(), SummaryInput{})
	require.NoError(t, err)

	assert.Equal(t, fitness.GoalWeightLoss, r.Goal)
	assert.Equal(t, 1800.0, r.TargetCalories, "profile target fills the unset config target")
	assert.Equal(t, 100, r.CalorieAdherence)
	assert.Equal(t, -2.0, r.WeightTrend)
	assert.Equal(t, 2, r.StreakDays)
	assert.Equal(t, 2, r.Nutrition.Days)
	assert.InDelta(t, 150, r.Nutrition.AvgProteinG, 1e-9)

	// Embedded summary fields are flattened in the JSON payload.
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"overall_score":`)
	assert.Contains(t, string(data), `"streak_days":2`)
}

func TestGetProgressSummary_WindowOverride(t *testing.T) {
	s := newTestServer(t, seedExport(t))

	r, err := s.progressSummary(context.Background(), SummaryInput{ConsistencyDays: 7})
	require.NoError(t, err)
	// Two workouts against four expected in one week.
	assert.Equal(t, 50, r.ConsistencyScore)
}

func TestGetInsights_Limit(t *testing.T) {
	s := newTestServer(t, seedExport(t))

	r, err := s.insights(context.Background(), InsightsInput{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, r.Insights, 1)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, "Improve Consistency", r.Insights[0].Title)

	r, err = s.insights(context.Background(), InsightsInput{})
	require.NoError(t, err)
	require.Len(t, r.Insights, 3)
	assert.Equal(t, "Weight Loss Progress", r.Insights[2].Title)
}

func TestGetCompletion(t *testing.T) {
	dir := t.TempDir()
	writeExportFile(t, dir, fitness.PlanFile, `{"current_week":1,"weeks":[
		{"days":[{"day":"Mon","type":"rest","meals":[{"name":"a","completed":false}]}]},
		{"days":[
			{"day":"Mon","type":"workout","workout":{"name":"Push","completed":true},"meals":[{"name":"a","completed":true}],"hydration":{"completed":false}},
			{"day":"Tue","type":"rest","meals":[{"name":"b","completed":true}]}
		]}
	]}`)
	s := newTestServer(t, dir)

	r, err := s.completion(context.Background(), CompletionInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Week)
	assert.Equal(t, 100, r.WeekPercent)
	require.Len(t, r.Days, 2)
	assert.Equal(t, 67, r.Days[0].Percent)
	assert.Equal(t, 100, r.Days[1].Percent)

	week := 0
	r, err = s.completion(context.Background(), CompletionInput{Week: &week})
	require.NoError(t, err)
	assert.Equal(t, 0, r.WeekPercent)

	week = 5
	_, err = s.completion(context.Background(), CompletionInput{Week: &week})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestGetCompletion_NoPlan(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	_, err := s.completion(context.Background(), CompletionInput{})
	assert.ErrorIs(t, err, errNoPlan)
}
