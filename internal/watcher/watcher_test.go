package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

// TestMain fails the package if a watcher or loader goroutine outlives its test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestWatcher(dir string, alertFn func(Alert)) *Watcher {
	w := New(Config{DataDir: dir, Interval: 10 * time.Millisecond, Target: fitness.Target{TargetCalories: 2000}}, zap.NewNop(), alertFn)
	w.now = func() time.Time { return fixedNow }
	return w
}

func writeExport(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestSnapshot_EmptyDirectory(t *testing.T) {
	w := newTestWatcher(t.TempDir(), nil)

	s, err := w.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, s.WorkoutCount)
	assert.Equal(t, 0, s.Summary.OverallScore)
	assert.Equal(t, -1, s.WeekCompletion)
	assert.Equal(t, fixedNow, s.Timestamp)
}

func TestSnapshot_WithExport(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, fitness.WorkoutsJSONLFile, `{"timestamp":"2026-10-19T08:00:00Z","name":"Push"}
{"timestamp":"2026-10-18T08:00:00Z","name":"Pull"}
`)
	writeExport(t, dir, fitness.CaloriesFile, `[{"date":"2026-10-18","intake":2000}]`)
	writeExport(t, dir, fitness.PlanFile, `{"current_week":0,"weeks":[{"days":[{"day":"Mon","type":"rest","meals":[{"name":"Oats","completed":true},{"name":"Rice","completed":false}]}]}]}`)

	s, err := newTestWatcher(dir, nil).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.WorkoutCount)
	assert.Equal(t, 1, s.CalorieDayCount)
	assert.Equal(t, 100, s.Summary.CalorieAdherence)
	assert.Equal(t, 2, s.Streak)
	assert.Equal(t, 50, s.WeekCompletion)
}

func TestSnapshot_BrokenPlanIgnored(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, fitness.PlanFile, `{not json`)

	s, err := newTestWatcher(dir, nil).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -1, s.WeekCompletion)
}

func TestCheck_AlertsOnceThenDeduplicates(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(dir, nil)

	// First check establishes the baseline.
	assert.Empty(t, w.Check(context.Background()))

	writeExport(t, dir, fitness.WorkoutsJSONLFile, `{"timestamp":"2026-10-19T08:00:00Z","name":"Legs"}
`)
	alerts := w.Check(context.Background())
	require.NotEmpty(t, alerts)
	assert.Equal(t, "Workout logged: Legs", alerts[len(alerts)-1].Title)

	assert.Empty(t, w.Check(context.Background()))
}

func TestCheck_SnapshotFailure(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, fitness.CaloriesFile, `{"broken":true}`)

	alerts := newTestWatcher(dir, nil).Check(context.Background())
	require.Len(t, alerts, 1)
	assert.Equal(t, "Snapshot failed", alerts[0].Title)
}

func TestRun_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	var got []Alert
	w := newTestWatcher(dir, func(a Alert) { got = append(got, a) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := w.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, got)
}

func TestRun_InitialSnapshotError(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, fitness.WeightsFile, `"nope"`)

	err := newTestWatcher(dir, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial snapshot")
}

func TestNew_Defaults(t *testing.T) {
	w := New(Config{}, nil, nil)
	assert.Equal(t, DefaultScoreDrop, w.cfg.ScoreDrop)
	assert.Equal(t, 10*time.Minute, w.cfg.Interval)
	assert.NotNil(t, w.logger)
}
