package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

func meals(done ...bool) []fitness.PlannedMeal {
	out := make([]fitness.PlannedMeal, 0, len(done))
	for _, d := range done {
		out = append(out, fitness.PlannedMeal{Name: "meal", Completed: d})
	}
	return out
}

func TestDailyCompletion(t *testing.T) {
	tests := []struct {
		name string
		day  fitness.DayPlan
		want int
	}{
		{"empty day", fitness.DayPlan{}, 0},
		{
			"all done",
			fitness.DayPlan{
				Type:      fitness.DayTypeWorkout,
				Workout:   &fitness.PlannedWorkout{Completed: true},
				Meals:     meals(true, true),
				Hydration: &fitness.Task{Completed: true},
			},
			100,
		},
		{
			"two of three",
			fitness.DayPlan{
				Workout: &fitness.PlannedWorkout{Completed: false},
				Meals:   meals(true, true),
			},
			67,
		},
		{
			"sleep is not a task",
			fitness.DayPlan{
				Meals: meals(true),
				Sleep: &fitness.Task{Completed: false},
			},
			100,
		},
		{
			"hydration only",
			fitness.DayPlan{Hydration: &fitness.Task{Completed: false}},
			0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DailyCompletion(tc.day))
		})
	}
}

func TestWeeklyCompletion_RestDaysNotPenalised(t *testing.T) {
	week := fitness.WeekPlan{Days: []fitness.DayPlan{
		{Day: "Mon", Type: fitness.DayTypeRest, Meals: meals(true, true, true)},
		{Day: "Tue", Type: fitness.DayTypeRest, Meals: meals(true)},
		{Day: "Wed", Type: fitness.DayTypeRest, Hydration: &fitness.Task{Completed: false}},
	}}
	assert.Equal(t, 100, WeeklyCompletion(week))
}

func TestWeeklyCompletion_WorkoutOnRestDayIgnored(t *testing.T) {
	week := fitness.WeekPlan{Days: []fitness.DayPlan{
		{Type: fitness.DayTypeRest, Workout: &fitness.PlannedWorkout{Completed: false}, Meals: meals(true)},
		{Type: fitness.DayTypeWorkout, Workout: &fitness.PlannedWorkout{Completed: true}, Meals: meals(false)},
	}}
	// Counted: rest meal (done), workout (done), workout-day meal (not done).
	assert.Equal(t, 67, WeeklyCompletion(week))
}

func TestWeeklyCompletion_Empty(t *testing.T) {
	assert.Equal(t, 0, WeeklyCompletion(fitness.WeekPlan{}))
	assert.Equal(t, 0, WeeklyCompletion(fitness.WeekPlan{Days: []fitness.DayPlan{{Type: fitness.DayTypeRest}}}))
}
