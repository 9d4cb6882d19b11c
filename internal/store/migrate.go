package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"golang.org/x/mod/semver"
)

// SchemaVersion is the schema the code expects.
const SchemaVersion = "v1.1.0"

type migration struct {
	version string
	stmts   []string
}

// migrations are applied in order, each one at most once.
var migrations = []migration{
	{
		version: "v1.0.0",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS item_stats (
				mode TEXT NOT NULL,
				item_id TEXT NOT NULL,
				points INTEGER NOT NULL,
				weight INTEGER NOT NULL,
				fail_streak INTEGER NOT NULL DEFAULT 0,
				updated_at INTEGER NOT NULL,
				PRIMARY KEY (mode, item_id)
			)`,
			`CREATE TABLE IF NOT EXISTS module_stats (
				mode TEXT NOT NULL,
				module TEXT NOT NULL,
				attempted INTEGER NOT NULL DEFAULT 0,
				correct INTEGER NOT NULL DEFAULT 0,
				current_streak INTEGER NOT NULL DEFAULT 0,
				best_streak INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (mode, module)
			)`,
			`CREATE TABLE IF NOT EXISTS lifetime_stats (
				mode TEXT PRIMARY KEY,
				total INTEGER NOT NULL DEFAULT 0,
				complete INTEGER NOT NULL DEFAULT 0,
				failed INTEGER NOT NULL DEFAULT 0,
				best_streak INTEGER NOT NULL DEFAULT 0,
				word_correct INTEGER NOT NULL DEFAULT 0,
				word_total INTEGER NOT NULL DEFAULT 0,
				sentence_correct INTEGER NOT NULL DEFAULT 0,
				sentence_total INTEGER NOT NULL DEFAULT 0
			)`,
			`CREATE TABLE IF NOT EXISTS streaks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				mode TEXT NOT NULL,
				length INTEGER NOT NULL,
				ended_at INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)`,
		},
	},
	{
		version: "v1.1.0",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS llm_events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp INTEGER NOT NULL,
				session_id TEXT NOT NULL DEFAULT '',
				provider TEXT NOT NULL,
				model TEXT NOT NULL,
				purpose TEXT NOT NULL DEFAULT '',
				input_tokens INTEGER NOT NULL DEFAULT 0,
				output_tokens INTEGER NOT NULL DEFAULT 0,
				latency_ms INTEGER NOT NULL DEFAULT 0,
				success INTEGER NOT NULL DEFAULT 0,
				error_message TEXT NOT NULL DEFAULT '',
				request_body TEXT NOT NULL DEFAULT '',
				response_body TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX IF NOT EXISTS llm_events_timestamp ON llm_events (timestamp)`,
		},
	},
}

// migrate brings the schema up to SchemaVersion. The applied version is
// kept in the meta table; a database newer than the code is refused.
func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if current != "" && semver.Compare(current, SchemaVersion) > 0 {
		return fmt.Errorf("database schema %s is newer than supported %s", current, SchemaVersion)
	}

	for _, m := range migrations {
		if current != "" && semver.Compare(m.version, current) <= 0 {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return fmt.Errorf("migration %s: %w", m.version, err)
		}
		s.log.WithField("version", m.version).Info("applied schema migration")
		current = m.version
	}
	return nil
}

func (s *Store) apply(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	query, args := builder().
		Insert("meta").
		Columns("key", "value").
		Values("schema_version", m.version).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// schemaVersion returns the recorded schema version, or "" for a fresh
// database.
func (s *Store) schemaVersion(ctx context.Context) (string, error) {
	query, args := builder().
		Select("value").
		From(entsql.Table("meta")).
		Where(entsql.EQ("key", "schema_version")).
		Query()

	var v string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read schema version: %w", err)
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid schema version %q", v)
	}
	return v, nil
}
