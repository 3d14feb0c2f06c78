package analyzer

import "github.com/blackwell-systems/fitwatch/internal/fitness"

// DailyCompletion returns the percentage of a day's tasks completed. Tasks are
// the workout (if scheduled), each meal, and hydration (if tracked). A day
// with no tasks is 0%.
func DailyCompletion(day fitness.DayPlan) int {
	total, completed := 0, 0

	if day.Workout != nil {
		total++
		if day.Workout.Completed {
			completed++
		}
	}

	for _, m := range day.Meals {
		total++
		if m.Completed {
			completed++
		}
	}

	if day.Hydration != nil {
		total++
		if day.Hydration.Completed {
			completed++
		}
	}

	return percentOf(completed, total)
}

// WeeklyCompletion returns the percentage of a week's workout and meal tasks
// completed. A workout only counts on days of type "workout", so rest days
// are never penalised for having no session. A week with no tasks is 0%.
func WeeklyCompletion(week fitness.WeekPlan) int {
	total, completed := 0, 0

	for _, day := range week.Days {
		if day.Type == fitness.DayTypeWorkout && day.Workout != nil {
			total++
			if day.Workout.Completed {
				completed++
			}
		}
		for _, m := range day.Meals {
			total++
			if m.Completed {
				completed++
			}
		}
	}

	return percentOf(completed, total)
}

func percentOf(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return clampPercent(roundHalfUp(float64(completed) / float64(total) * 100))
}
