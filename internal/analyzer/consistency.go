package analyzer

import (
	"math"
	"time"

	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

// ConsistencyScore scores the workouts completed in the trailing days days
// against a cadence of four workouts per week.
func ConsistencyScore(workouts []fitness.Workout, days int) int {
	return ConsistencyScoreAt(workouts, days, time.Now())
}

// ConsistencyScoreAt is ConsistencyScore evaluated at now.
//
// score = min(100, round(count / expected * 100)). A window too short to
// expect a single workout scores 0.
func ConsistencyScoreAt(workouts []fitness.Workout, days int, now time.Time) int {
	expected := ExpectedWorkouts(days)
	if expected == 0 {
		return 0
	}
	count := len(WorkoutsWithinDays(workouts, days, now))
	return clampPercent(roundHalfUp(float64(count) / float64(expected) * 100))
}

// ExpectedWorkouts returns the number of workouts a full-compliance user
// completes in days days at four per week, rounded down: 30 days expects 17.
func ExpectedWorkouts(days int) int {
	if days <= 0 {
		return 0
	}
	return int(math.Floor(float64(days) / 7 * WorkoutsPerWeekTarget))
}

// WorkoutStreak counts consecutive calendar days, ending today or yesterday in
// now's location, with at least one completed workout.
func WorkoutStreak(workouts []fitness.Workout, now time.Time) int {
	days := make(map[string]bool, len(workouts))
	for _, w := range workouts {
		if w.CompletedAt.IsZero() || w.CompletedAt.After(now) {
			continue
		}
		days[w.CompletedAt.In(now.Location()).Format("2006-01-02")] = true
	}

	day := now
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
