package watcher

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/fitwatch/internal/insight"
)

// Compare detects notable changes between two watch states and returns alerts
// ordered critical, warning, info. scoreDrop is the overall score decrease
// that triggers a warning; twice that is critical.
func Compare(prev, curr *WatchState, scoreDrop int) []Alert {
	if scoreDrop <= 0 {
		scoreDrop = DefaultScoreDrop
	}

	var alerts []Alert
	alerts = append(alerts, compareCritical(prev, curr, scoreDrop)...)
	alerts = append(alerts, compareWarning(prev, curr, scoreDrop)...)
	alerts = append(alerts, compareInfo(prev, curr)...)
	return alerts
}

func compareCritical(prev, curr *WatchState, scoreDrop int) []Alert {
	var alerts []Alert
	now := curr.Timestamp

	drop := prev.Summary.OverallScore - curr.Summary.OverallScore
	if drop >= 2*scoreDrop {
		alerts = append(alerts, scoreDropAlert(LevelCritical, prev, curr, now))
	}

	for _, in := range newInsights(prev, curr, insight.TypeAlert) {
		alerts = append(alerts, Alert{Level: LevelCritical, Title: in.Title, Message: in.Message, Time: now})
	}

	return alerts
}

func compareWarning(prev, curr *WatchState, scoreDrop int) []Alert {
	var alerts []Alert
	now := curr.Timestamp

	drop := prev.Summary.OverallScore - curr.Summary.OverallScore
	if drop >= scoreDrop && drop < 2*scoreDrop {
		alerts = append(alerts, scoreDropAlert(LevelWarning, prev, curr, now))
	}

	for _, in := range newInsights(prev, curr, insight.TypeWarning) {
		alerts = append(alerts, Alert{Level: LevelWarning, Title: in.Title, Message: in.Message, Time: now})
	}

	// A streak of two or more days was broken.
	if prev.Streak >= 2 && curr.Streak == 0 {
		alerts = append(alerts, Alert{
			Level:   LevelWarning,
			Title:   "Workout streak broken",
			Message: fmt.Sprintf("Your %d-day streak ended. A short session today restarts it.", prev.Streak),
			Time:    now,
		})
	}

	return alerts
}

func compareInfo(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := curr.Timestamp

	for _, in := range newInsights(prev, curr, insight.TypeSuccess) {
		alerts = append(alerts, Alert{Level: LevelInfo, Title: in.Title, Message: in.Message, Time: now})
	}

	if curr.WorkoutCount > prev.WorkoutCount {
		for _, w := range curr.workouts[min(prev.WorkoutCount, len(curr.workouts)):] {
			name := w.Name
			if name == "" {
				name = "Workout"
			}
			alerts = append(alerts, Alert{
				Level:   LevelInfo,
				Title:   fmt.Sprintf("Workout logged: %s", name),
				Message: fmt.Sprintf("%d exercises, %.0f kg volume", len(w.Exercises), w.Volume()),
				Time:    now,
			})
		}
	}

	if curr.WeekCompletion == 100 && prev.WeekCompletion != 100 {
		alerts = append(alerts, Alert{
			Level:   LevelInfo,
			Title:   "Week complete",
			Message: "Every planned workout and meal this week is done.",
			Time:    now,
		})
	}

	return alerts
}

func scoreDropAlert(level string, prev, curr *WatchState, now time.Time) Alert {
	return Alert{
		Level: level,
		Title: "Overall score dropped",
		Message: fmt.Sprintf("Overall score fell from %d to %d (consistency %d, nutrition %d)",
			prev.Summary.OverallScore, curr.Summary.OverallScore,
			curr.Summary.ConsistencyScore, curr.Summary.CalorieAdherence),
		Time: now,
	}
}

// newInsights returns the insights of type t present in curr but not in prev,
// matched by title.
func newInsights(prev, curr *WatchState, t insight.Type) []insight.Insight {
	seen := make(map[string]bool, len(prev.Summary.Insights))
	for _, in := range prev.Summary.Insights {
		seen[in.Title] = true
	}

	var out []insight.Insight
	for _, in := range curr.Summary.Insights {
		if in.Type == t && !seen[in.Title] {
			out = append(out, in)
		}
	}
	return out
}
