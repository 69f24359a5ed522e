package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id         TEXT PRIMARY KEY,
			label      TEXT NOT NULL DEFAULT '',
			source     TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at)`,

		// Amounts are stored as decimal text so no precision is lost.
		`CREATE TABLE IF NOT EXISTS snapshot_lines (
			snapshot_id      TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			seq              INTEGER NOT NULL,
			line_id          INTEGER NOT NULL,
			journal_entry_id INTEGER NOT NULL,
			account_id       INTEGER NOT NULL DEFAULT 0,
			date             TEXT NOT NULL DEFAULT '',
			entry_desc       TEXT NOT NULL DEFAULT '',
			account_name     TEXT NOT NULL DEFAULT '',
			vendor_name      TEXT NOT NULL DEFAULT '',
			debit            TEXT NOT NULL DEFAULT '0',
			credit           TEXT NOT NULL DEFAULT '0',
			PRIMARY KEY (snapshot_id, seq)
		)`,

		// Snapshots are immutable once written.
		`CREATE TRIGGER IF NOT EXISTS trg_snapshot_lines_immutable
		BEFORE UPDATE ON snapshot_lines
		BEGIN
			SELECT RAISE(ABORT, 'snapshot lines are immutable');
		END`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	for i, c := range stmt {
		if c == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
