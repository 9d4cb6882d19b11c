package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kartu/internal/logging"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database and hands out repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	log *logrus.Entry
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for migrations and slow paths.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Store) { s.log = l }
}

// Open connects to the SQLite database at dsn, applies pragmas and
// migrates the schema to SchemaVersion.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps per-connection pragmas in force and serialises
	// writers, which is all a single learner needs.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{
		db:  db,
		drv: entsql.OpenDB(dialect.SQLite, db),
		log: logging.Component(nil, "store"),
	}
	for _, o := range opts {
		o(s)
	}

	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// ItemStats returns the per-item mastery repository.
func (s *Store) ItemStats() ItemStatsRepo {
	return &itemStatsRepo{drv: s.drv}
}

// Progress returns the module and lifetime stats repository.
func (s *Store) Progress() ProgressRepo {
	return &progressRepo{drv: s.drv}
}

// Settings returns the key/value settings repository.
func (s *Store) Settings() SettingsRepo {
	return &settingsRepo{drv: s.drv}
}

// EventRepo returns the LLM event log.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. KARTU_DB environment variable
// 2. $XDG_DATA_HOME/kartu/kartu.db
// 3. ~/.local/share/kartu/kartu.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("KARTU_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "kartu", "kartu.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// query runs a select and hands each row to scan. Rows are closed before
// it returns, which matters with a single pooled connection.
func query(ctx context.Context, drv dialect.ExecQuerier, q string, args []any, scan func(*entsql.Rows) error) error {
	rows := &entsql.Rows{}
	if err := drv.Query(ctx, q, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// exec runs a statement built by the dialect builder.
func exec(ctx context.Context, drv dialect.ExecQuerier, q string, args []any) error {
	return drv.Exec(ctx, q, args, nil)
}
