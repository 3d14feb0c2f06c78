package fitness

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadHistory_EmptyDir(t *testing.T) {
	h, err := LoadHistory(context.Background(), t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, h.Workouts)
	assert.Empty(t, h.CalorieDays)
	assert.Empty(t, h.Weights)
	assert.Equal(t, Profile{}, h.Profile)
}

func TestLoadHistory_NormalizesDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, WorkoutsJSONLFile, `{"timestamp":"2026-03-01T10:00:00Z","name":"Push","exercises":[{"name":"Bench","sets":3,"reps":"8-10","weight":60},{"name":"Dips","sets":"3","reps":12}]}
not json at all

{"completedAt":1772359200000,"workoutName":"Pull"}
{"timestamp":"someday","name":"Legs","exercises":null}
`)
	writeFile(t, dir, CaloriesFile, `[
		{"date":"3/1/2026","intake":2100,"burned":300,"protein_g":150,"carbs":200,"fat_g":70},
		{"date":"3/2/2026","intake":"1800"}
	]`)
	writeFile(t, dir, WeightsFile, `[{"date":"Week 1","weight":80},{"week":2,"weight":79.5},{"date":"Week 3"}]`)
	writeFile(t, dir, ProfileFile, `{"name":"Sam","fitnessGoal":"weight_loss","dailyCalories":1900,"daysPerWeek":4}`)

	h, err := LoadHistory(context.Background(), dir, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, h.Workouts, 3)
	push := h.Workouts[0]
	assert.Equal(t, "Push", push.Name)
	assert.False(t, push.CompletedAt.IsZero())
	require.Len(t, push.Exercises, 2)
	assert.Equal(t, 3, push.Exercises[0].Sets)
	assert.Equal(t, 8, push.Exercises[0].Reps.Leading())
	assert.Equal(t, 60.0, push.Exercises[0].Weight)
	assert.Equal(t, 3, push.Exercises[1].Sets)
	assert.Equal(t, 1.0, push.Exercises[1].Weight, "missing weight defaults to 1")

	pull := h.Workouts[1]
	assert.Equal(t, "Pull", pull.Name)
	assert.False(t, pull.CompletedAt.IsZero())
	assert.Empty(t, pull.Exercises)

	legs := h.Workouts[2]
	assert.True(t, legs.CompletedAt.IsZero(), "unparseable timestamp yields zero time")

	require.Len(t, h.CalorieDays, 2)
	assert.Equal(t, CalorieDay{Date: "3/1/2026", Intake: 2100, Burned: 300, Protein: 150, Carbs: 200, Fats: 70}, h.CalorieDays[0])
	assert.Equal(t, CalorieDay{Date: "3/2/2026", Intake: 1800}, h.CalorieDays[1])

	require.Len(t, h.Weights, 2)
	assert.Equal(t, WeightSample{Date: "Week 1", Weight: 80}, h.Weights[0])
	assert.Equal(t, WeightSample{Date: "2", Weight: 79.5}, h.Weights[1])

	assert.Equal(t, Profile{Name: "Sam", Goal: GoalWeightLoss, TargetCalories: 1900, DaysPerWeek: 4}, h.Profile)
}

func TestLoadHistory_GeneratedWorkouts(t *testing.T) {
	faker := gofakeit.New(42)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	type exercise struct {
		Name   string  `json:"name"`
		Sets   int     `json:"sets"`
		Reps   int     `json:"reps"`
		Weight float64 `json:"weight"`
	}
	type workout struct {
		Timestamp string     `json:"timestamp"`
		Name      string     `json:"name"`
		Exercises []exercise `json:"exercises"`
	}

	var want []workout
	var lines []string
	for i := 0; i < 25; i++ {
		w := workout{
			Timestamp: faker.DateRange(start, end).Format(time.RFC3339),
			Name:      faker.Word(),
		}
		for j := faker.Number(0, 4); j > 0; j-- {
			w.Exercises = append(w.Exercises, exercise{
				Name:   faker.Word(),
				Sets:   faker.Number(1, 5),
				Reps:   faker.Number(1, 15),
				Weight: float64(faker.Number(5, 120)),
			})
		}
		line, err := json.Marshal(w)
		require.NoError(t, err)
		want = append(want, w)
		lines = append(lines, string(line))
	}

	dir := t.TempDir()
	writeFile(t, dir, WorkoutsJSONLFile, strings.Join(lines, "\n")+"\n")

	h, err := LoadHistory(context.Background(), dir, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, h.Workouts, len(want))

	for i, w := range want {
		got := h.Workouts[i]
		assert.Equal(t, w.Name, got.Name)
		assert.Equal(t, w.Timestamp, got.CompletedAt.UTC().Format(time.RFC3339))
		require.Len(t, got.Exercises, len(w.Exercises))
		for j, ex := range w.Exercises {
			assert.Equal(t, ex.Sets, got.Exercises[j].Sets)
			assert.Equal(t, ex.Reps, got.Exercises[j].Reps.Leading())
			assert.Equal(t, ex.Weight, got.Exercises[j].Weight)
		}
	}
}

func TestLoadHistory_WorkoutArrayFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, WorkoutsJSONFile, `[{"timestamp":"2026-03-01","name":"A"},{"timestamp":"2026-03-02","name":"B"}]`)

	h, err := LoadHistory(context.Background(), dir, nil)
	require.NoError(t, err)
	require.Len(t, h.Workouts, 2)
	assert.Equal(t, "B", h.Workouts[1].Name)
}

func TestLoadHistory_MalformedCaloriesIsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CaloriesFile, `{"not":"an array"}`)

	_, err := LoadHistory(context.Background(), dir, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), CaloriesFile)
}

func TestLoadPlan(t *testing.T) {
	dir := t.TempDir()

	plan, err := LoadPlan(dir)
	require.NoError(t, err)
	assert.Nil(t, plan)

	writeFile(t, dir, PlanFile, `{"current_week":1,"weeks":[
		{"days":[{"day":"Mon","type":"workout","workout":{"name":"Push","completed":true},"meals":[{"name":"Oats","completed":true}],"hydration":{"completed":false}}]},
		{"days":[{"day":"Mon","type":"rest","meals":[]}]}
	]}`)

	plan, err = LoadPlan(dir)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, 1, plan.CurrentWeek)
	require.Len(t, plan.Weeks, 2)

	day := plan.Weeks[0].Days[0]
	require.NotNil(t, day.Workout)
	assert.True(t, day.Workout.Completed)
	require.NotNil(t, day.Hydration)
	assert.False(t, day.Hydration.Completed)
	assert.Nil(t, day.Sleep)
}
