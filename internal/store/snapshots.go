package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/fitwatch/internal/analyzer"
)

const snapshotColumns = "id, taken_at, command, version, goal"

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// CreateSnapshot inserts a new snapshot and returns its ID.
func (db *DB) CreateSnapshot(command, version, goal string) (int64, error) {
	return createSnapshot(db.conn, command, version, goal)
}

func createSnapshot(x execer, command, version, goal string) (int64, error) {
	result, err := x.Exec(
		"INSERT INTO snapshots (taken_at, command, version, goal) VALUES (?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339Nano), command, version, goal,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLatestSnapshot returns the most recent snapshot, or ErrNoSnapshots.
func (db *DB) GetLatestSnapshot() (*Snapshot, error) {
	return db.GetSnapshotN(1)
}

// GetSnapshot returns a snapshot by ID, or ErrNoSnapshots.
func (db *DB) GetSnapshot(id int64) (*Snapshot, error) {
	row := db.conn.QueryRow("SELECT "+snapshotColumns+" FROM snapshots WHERE id = ?", id)
	return scanSnapshot(row)
}

// GetSnapshotN returns the Nth most recent snapshot (1 = latest, 2 = previous,
// etc.), or ErrNoSnapshots when fewer than n exist.
func (db *DB) GetSnapshotN(n int) (*Snapshot, error) {
	if n < 1 {
		return nil, ErrNoSnapshots
	}
	row := db.conn.QueryRow(
		"SELECT "+snapshotColumns+" FROM snapshots ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return scanSnapshot(row)
}

// ListSnapshots returns up to n snapshots, newest first.
func (db *DB) ListSnapshots(n int) ([]Snapshot, error) {
	rows, err := db.conn.Query("SELECT "+snapshotColumns+" FROM snapshots ORDER BY id DESC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snapshots []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *s)
	}
	return snapshots, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Command, &s.Version, &s.Goal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshots
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339Nano, takenAt)
	return &s, nil
}

// InsertMetric inserts a progress metric for a snapshot.
func (db *DB) InsertMetric(snapshotID int64, name string, value float64) error {
	return insertMetric(db.conn, snapshotID, name, value)
}

func insertMetric(x execer, snapshotID int64, name string, value float64) error {
	_, err := x.Exec(
		"INSERT INTO progress_metrics (snapshot_id, metric_name, metric_value) VALUES (?, ?, ?)",
		snapshotID, name, value,
	)
	return err
}

// GetMetrics returns all progress metrics for a snapshot in insertion order.
func (db *DB) GetMetrics(snapshotID int64) ([]ProgressMetric, error) {
	rows, err := db.conn.Query(
		"SELECT id, snapshot_id, metric_name, metric_value FROM progress_metrics WHERE snapshot_id = ? ORDER BY id",
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var metrics []ProgressMetric
	for rows.Next() {
		var m ProgressMetric
		if err := rows.Scan(&m.ID, &m.SnapshotID, &m.MetricName, &m.MetricValue); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// InsertInsight inserts an insight for a snapshot.
func (db *DB) InsertInsight(in *InsightRow) error {
	return insertInsight(db.conn, in)
}

func insertInsight(x execer, in *InsightRow) error {
	_, err := x.Exec(
		`INSERT INTO insights (snapshot_id, position, type, title, message)
		VALUES (?, ?, ?, ?, ?)`,
		in.SnapshotID, in.Position, in.Type, in.Title, in.Message,
	)
	return err
}

// GetInsights returns the insights of a snapshot in their original order.
func (db *DB) GetInsights(snapshotID int64) ([]InsightRow, error) {
	rows, err := db.conn.Query(
		`SELECT id, snapshot_id, position, type, title, message
		 FROM insights WHERE snapshot_id = ? ORDER BY position`,
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []InsightRow
	for rows.Next() {
		var in InsightRow
		if err := rows.Scan(&in.ID, &in.SnapshotID, &in.Position, &in.Type, &in.Title, &in.Message); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// InsertCompletion inserts a completion percentage for a snapshot.
func (db *DB) InsertCompletion(c *CompletionRow) error {
	return insertCompletion(db.conn, c)
}

func insertCompletion(x execer, c *CompletionRow) error {
	_, err := x.Exec(
		"INSERT INTO completion (snapshot_id, scope, label, percent) VALUES (?, ?, ?, ?)",
		c.SnapshotID, c.Scope, c.Label, c.Percent,
	)
	return err
}

// GetCompletion returns the completion rows of a snapshot.
func (db *DB) GetCompletion(snapshotID int64) ([]CompletionRow, error) {
	rows, err := db.conn.Query(
		"SELECT id, snapshot_id, scope, label, percent FROM completion WHERE snapshot_id = ? ORDER BY id",
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []CompletionRow
	for rows.Next() {
		var c CompletionRow
		if err := rows.Scan(&c.ID, &c.SnapshotID, &c.Scope, &c.Label, &c.Percent); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SummaryMetrics flattens a summary into its persisted metric rows.
func SummaryMetrics(s analyzer.ProgressSummary) []ProgressMetric {
	return []ProgressMetric{
		{MetricName: MetricOverallScore, MetricValue: float64(s.OverallScore)},
		{MetricName: MetricConsistencyScore, MetricValue: float64(s.ConsistencyScore)},
		{MetricName: MetricCalorieAdherence, MetricValue: float64(s.CalorieAdherence)},
		{MetricName: MetricWeightTrend, MetricValue: s.WeightTrend},
		{MetricName: MetricPerformanceImprovement, MetricValue: float64(s.PerformanceImprovement)},
	}
}

// SaveSummary records a snapshot with its metrics, insights and completion
// rows in a single transaction and returns the snapshot ID.
func (db *DB) SaveSummary(command, version, goal string, s analyzer.ProgressSummary, completion []CompletionRow) (id int64, err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer rollback(tx, &err)

	id, err = createSnapshot(tx, command, version, goal)
	if err != nil {
		return 0, fmt.Errorf("creating snapshot: %w", err)
	}

	for _, m := range SummaryMetrics(s) {
		if err := insertMetric(tx, id, m.MetricName, m.MetricValue); err != nil {
			return 0, fmt.Errorf("inserting metric %s: %w", m.MetricName, err)
		}
	}

	for i, in := range s.Insights {
		row := &InsightRow{
			SnapshotID: id,
			Position:   i,
			Type:       string(in.Type),
			Title:      in.Title,
			Message:    in.Message,
		}
		if err := insertInsight(tx, row); err != nil {
			return 0, fmt.Errorf("inserting insight %q: %w", in.Title, err)
		}
	}

	for _, c := range completion {
		c.SnapshotID = id
		if err := insertCompletion(tx, &c); err != nil {
			return 0, fmt.Errorf("inserting completion %s/%s: %w", c.Scope, c.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	db.logger.Debug("saved snapshot",
		zap.Int64("id", id),
		zap.String("command", command),
		zap.Int("insights", len(s.Insights)),
		zap.Int("completion", len(completion)),
	)
	return id, nil
}
