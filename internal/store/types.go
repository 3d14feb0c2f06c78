// Package store provides SQLite persistence for fitwatch progress snapshots.
package store

import (
	"errors"
	"time"
)

// ErrNoSnapshots is returned when a requested snapshot does not exist.
var ErrNoSnapshots = errors.New("no snapshots recorded")

// Metric names persisted for every snapshot.
const (
	MetricOverallScore           = "overall_score"
	MetricConsistencyScore       = "consistency_score"
	MetricCalorieAdherence       = "calorie_adherence"
	MetricWeightTrend            = "weight_trend"
	MetricPerformanceImprovement = "performance_improvement"
)

// Completion scopes.
const (
	ScopeDay  = "day"
	ScopeWeek = "week"
)

// Snapshot is a point-in-time record of a progress summary.
type Snapshot struct {
	ID      int64     `json:"id"`
	TakenAt time.Time `json:"taken_at"`
	Command string    `json:"command"`
	Version string    `json:"version"`
	Goal    string    `json:"goal,omitempty"`
}

// ProgressMetric is a named metric value within a snapshot.
type ProgressMetric struct {
	ID          int64   `json:"id"`
	SnapshotID  int64   `json:"snapshot_id"`
	MetricName  string  `json:"metric_name"`
	MetricValue float64 `json:"metric_value"`
}

// InsightRow is an insight recorded with a snapshot. Position preserves the
// rule evaluation order.
type InsightRow struct {
	ID         int64  `json:"id"`
	SnapshotID int64  `json:"snapshot_id"`
	Position   int    `json:"position"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
}

// CompletionRow is a day or week completion percentage recorded with a snapshot.
type CompletionRow struct {
	ID         int64  `json:"id"`
	SnapshotID int64  `json:"snapshot_id"`
	Scope      string `json:"scope"`
	Label      string `json:"label"`
	Percent    int    `json:"percent"`
}

// SnapshotDiff represents the comparison between two snapshots.
type SnapshotDiff struct {
	Previous *Snapshot     `json:"previous"`
	Current  *Snapshot     `json:"current"`
	Deltas   []MetricDelta `json:"deltas"`
}

// MetricDelta represents the change in a single metric between snapshots.
type MetricDelta struct {
	Name      string  `json:"name"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "improved", "regressed", "unchanged"
}
