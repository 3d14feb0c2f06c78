package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DB is the fitwatch snapshot database.
type DB struct {
	conn   *sql.DB
	logger *zap.Logger
}

// Open opens or creates the SQLite database at dbPath, creating its parent
// directory, and migrates it to the current schema. A nil logger disables
// logging.
func Open(dbPath string, logger *zap.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return open(dsn(dbPath, "journal_mode(WAL)", "busy_timeout(5000)"), 0, logger.With(zap.String("db", dbPath)))
}

// OpenInMemory opens a migrated in-memory database for tests.
func OpenInMemory() (*DB, error) {
	// Every pooled connection to :memory: is a separate database.
	return open(dsn(":memory:"), 1, zap.NewNop())
}

// dsn builds a modernc.org/sqlite data source name. Foreign keys are always
// enforced so snapshot deletes cascade.
func dsn(path string, pragmas ...string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	return path + "?" + q.Encode()
}

func open(dataSource string, maxConns int, logger *zap.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite", dataSource)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		conn.SetMaxOpenConns(maxConns)
	}

	db := &DB{conn: conn, logger: logger}
	if err := db.Migrate(); err != nil {
		return nil, multierr.Append(err, conn.Close())
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// rollback undoes tx unless it was already committed, folding a rollback
// failure into *errp.
func rollback(tx *sql.Tx, errp *error) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		*errp = multierr.Append(*errp, fmt.Errorf("rollback: %w", err))
	}
}
