package analyzer

import (
	"time"

	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

// PerformanceImprovement compares mean training volume in the second half of
// the last weeks weeks of workouts against the first half, as a signed
// percentage.
func PerformanceImprovement(workouts []fitness.Workout, weeks int) int {
	return PerformanceImprovementAt(workouts, weeks, time.Now())
}

// PerformanceImprovementAt is PerformanceImprovement evaluated at now.
//
// The windowed workouts are split at floor(len/2). With fewer than two
// workouts, or a first half with zero mean volume, the result is 0.
func PerformanceImprovementAt(workouts []fitness.Workout, weeks int, now time.Time) int {
	window := WorkoutsWithinDays(workouts, weeks*7, now)
	if len(window) < 2 {
		return 0
	}

	mid := len(window) / 2
	first := meanVolume(window[:mid])
	second := meanVolume(window[mid:])
	if first == 0 {
		return 0
	}
	return roundHalfUp((second - first) / first * 100)
}

func meanVolume(workouts []fitness.Workout) float64 {
	if len(workouts) == 0 {
		return 0
	}
	total := 0.0
	for _, w := range workouts {
		total += w.Volume()
	}
	return total / float64(len(workouts))
}
