package analyzer

import (
	"time"

	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

const msPerDay = 86_400_000

// WorkoutsWithinDays returns the workouts completed in [now - days, now], in
// their original order. Workouts dated after now or with an unparseable (zero)
// timestamp are outside the window.
func WorkoutsWithinDays(workouts []fitness.Workout, days int, now time.Time) []fitness.Workout {
	var window []fitness.Workout
	for _, w := range workouts {
		if w.CompletedAt.IsZero() {
			continue
		}
		elapsed := float64(now.Sub(w.CompletedAt).Milliseconds()) / msPerDay
		if elapsed >= 0 && elapsed <= float64(days) {
			window = append(window, w)
		}
	}
	return window
}

// Last returns the trailing n elements of items, or all of them when there are
// fewer than n. It returns nil for n <= 0. The result shares items' backing array.
func Last[T any](items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
