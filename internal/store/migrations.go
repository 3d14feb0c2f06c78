package store

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// migration moves the schema to version by running stmts in one transaction.
type migration struct {
	version int
	stmts   []string
}

// migrations are applied in order; never edit a released entry, append a new
// one instead.
var migrations = []migration{
	{version: 1, stmts: []string{
		`CREATE TABLE snapshots (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at TEXT NOT NULL,
			command  TEXT NOT NULL,
			version  TEXT NOT NULL,
			goal     TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE progress_metrics (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id  INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			metric_name  TEXT NOT NULL,
			metric_value REAL NOT NULL
		)`,
		`CREATE TABLE insights (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			position    INTEGER NOT NULL,
			type        TEXT NOT NULL,
			title       TEXT NOT NULL,
			message     TEXT NOT NULL
		)`,
		`CREATE TABLE completion (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			scope       TEXT NOT NULL,
			label       TEXT NOT NULL,
			percent     INTEGER NOT NULL
		)`,
		`CREATE INDEX idx_progress_metrics_snapshot ON progress_metrics(snapshot_id)`,
		`CREATE INDEX idx_progress_metrics_name ON progress_metrics(metric_name)`,
		`CREATE INDEX idx_insights_snapshot ON insights(snapshot_id)`,
		`CREATE INDEX idx_completion_snapshot ON completion(snapshot_id)`,
	}},
}

// currentSchemaVersion is the version reached after every migration.
var currentSchemaVersion = migrations[len(migrations)-1].version

// Migrate applies every migration newer than the recorded schema version.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var version int
	err := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if err := db.apply(m); err != nil {
			return fmt.Errorf("migration v%d: %w", m.version, err)
		}
		db.logger.Debug("applied migration", zap.Int("version", m.version))
	}
	return nil
}

func (db *DB) apply(m migration) (err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer rollback(tx, &err)

	for i, stmt := range m.stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
		return err
	}
	return tx.Commit()
}
